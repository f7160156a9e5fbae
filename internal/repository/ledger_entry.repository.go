package repository

import (
	"context"
	"errors"
	"time"

	"github.com/awsembako/backoffice/internal/model"
	"github.com/awsembako/backoffice/pkg/pg"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LedgerEntryEntity struct {
	ID        int64     `db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	OwnerKind string    `db:"owner_kind" gorm:"column:owner_kind;not null;index:idx_ledger_owner"`
	OwnerID   int64     `db:"owner_id"   gorm:"column:owner_id;not null;index:idx_ledger_owner"`
	Kind      string    `db:"kind"       gorm:"column:kind;not null"`
	Amount    int64     `db:"amount"     gorm:"column:amount;not null"`
	Note      string    `db:"note"       gorm:"column:note"`
	CreatedAt time.Time `db:"created_at" gorm:"column:created_at"`
}

func (LedgerEntryEntity) TableName() string {
	return "ledger_entries"
}

type LedgerEntryRepository struct {
	*pg.DB
}

func NewLedgerEntryRepository(db *pg.DB) *LedgerEntryRepository {
	return &LedgerEntryRepository{
		db,
	}
}

func (r *LedgerEntryRepository) Create(ctx context.Context, e *model.LedgerEntry) (*model.LedgerEntry, error) {
	entity := toLedgerEntryEntity(e)
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toLedgerEntryModel(entity), nil
}

// GetForUpdate locks the entry row for an amount edit. The surrounding
// transaction also holds the owner row lock, so edit order is total
// per owner.
func (r *LedgerEntryRepository) GetForUpdate(ctx context.Context, id int64) (*model.LedgerEntry, error) {
	var entity LedgerEntryEntity
	err := r.Write(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toLedgerEntryModel(&entity), nil
}

func (r *LedgerEntryRepository) GetByID(ctx context.Context, id int64) (*model.LedgerEntry, error) {
	var entity LedgerEntryEntity
	err := r.Read(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toLedgerEntryModel(&entity), nil
}

func (r *LedgerEntryRepository) UpdateAmount(ctx context.Context, id int64, amount int64) error {
	result := r.Write(ctx).Model(&LedgerEntryEntity{}).Where("id = ?", id).Update("amount", amount)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *LedgerEntryRepository) List(ctx context.Context, f model.LedgerFilter) ([]*model.LedgerEntry, int64, error) {
	q := r.Read(ctx).Model(&LedgerEntryEntity{})
	if f.OwnerKind != nil {
		q = q.Where("owner_kind = ?", string(*f.OwnerKind))
	}
	if f.OwnerID != nil {
		q = q.Where("owner_id = ?", *f.OwnerID)
	}
	if f.Kind != nil {
		q = q.Where("kind = ?", string(*f.Kind))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var entities []*LedgerEntryEntity
	if err := q.Order("id DESC").Find(&entities).Error; err != nil {
		return nil, 0, err
	}
	out := make([]*model.LedgerEntry, len(entities))
	for i, e := range entities {
		out[i] = toLedgerEntryModel(e)
	}
	return out, total, nil
}

func toLedgerEntryEntity(m *model.LedgerEntry) *LedgerEntryEntity {
	if m == nil {
		return nil
	}
	return &LedgerEntryEntity{
		ID:        m.ID,
		OwnerKind: string(m.OwnerKind),
		OwnerID:   m.OwnerID,
		Kind:      string(m.Kind),
		Amount:    m.Amount,
		Note:      m.Note,
		CreatedAt: m.CreatedAt,
	}
}

func toLedgerEntryModel(e *LedgerEntryEntity) *model.LedgerEntry {
	if e == nil {
		return nil
	}
	return &model.LedgerEntry{
		ID:        e.ID,
		OwnerKind: model.AccountKind(e.OwnerKind),
		OwnerID:   e.OwnerID,
		Kind:      model.EntryKind(e.Kind),
		Amount:    e.Amount,
		Note:      e.Note,
		CreatedAt: e.CreatedAt,
	}
}
