package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/awsembako/backoffice/internal/model"
	"github.com/awsembako/backoffice/pkg/pg"
	"gorm.io/gorm"
)

type UserEntity struct {
	ID           int64     `db:"id"            gorm:"primaryKey;autoIncrement;column:id"`
	Username     string    `db:"username"      gorm:"column:username;not null;unique"`
	Nama         string    `db:"nama"          gorm:"column:nama;not null"`
	PasswordHash string    `db:"password_hash" gorm:"column:password_hash;not null"`
	Role         string    `db:"role"          gorm:"column:role;not null"`
	TotpSecret   string    `db:"totp_secret"   gorm:"column:totp_secret"`
	TotpEnabled  bool      `db:"totp_enabled"  gorm:"column:totp_enabled;not null;default:false"`
	CreatedAt    time.Time `db:"created_at"    gorm:"column:created_at"`
}

func (UserEntity) TableName() string {
	return "users"
}

type UserRepository struct {
	*pg.DB
}

func NewUserRepository(db *pg.DB) *UserRepository {
	return &UserRepository{
		db,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *model.User) (*model.User, error) {
	entity := toUserEntity(u)
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "duplicate") {
			return nil, ErrKodeDuplikat
		}
		return nil, err
	}
	return toUserModel(entity), nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var entity UserEntity
	err := r.Read(ctx).Where("username = ?", username).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toUserModel(&entity), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var entity UserEntity
	err := r.Read(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toUserModel(&entity), nil
}

func (r *UserRepository) SetTotp(ctx context.Context, id int64, secret string, enabled bool) error {
	result := r.Write(ctx).Model(&UserEntity{}).Where("id = ?", id).Updates(map[string]any{
		"totp_secret":  secret,
		"totp_enabled": enabled,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func toUserEntity(m *model.User) *UserEntity {
	if m == nil {
		return nil
	}
	return &UserEntity{
		ID:           m.ID,
		Username:     m.Username,
		Nama:         m.Nama,
		PasswordHash: m.PasswordHash,
		Role:         string(m.Role),
		TotpSecret:   m.TotpSecret,
		TotpEnabled:  m.TotpEnabled,
		CreatedAt:    m.CreatedAt,
	}
}

func toUserModel(e *UserEntity) *model.User {
	if e == nil {
		return nil
	}
	return &model.User{
		ID:           e.ID,
		Username:     e.Username,
		Nama:         e.Nama,
		PasswordHash: e.PasswordHash,
		Role:         model.Role(e.Role),
		TotpSecret:   e.TotpSecret,
		TotpEnabled:  e.TotpEnabled,
		CreatedAt:    e.CreatedAt,
	}
}
