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

type AbsensiEntity struct {
	ID         int64     `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	KaryawanID int64     `db:"karyawan_id" gorm:"column:karyawan_id;not null;uniqueIndex:idx_absensi_hari"`
	Tanggal    string    `db:"tanggal"     gorm:"column:tanggal;not null;uniqueIndex:idx_absensi_hari"`
	Status     string    `db:"status"      gorm:"column:status;not null"`
	Keterangan string    `db:"keterangan"  gorm:"column:keterangan"`
	CreatedAt  time.Time `db:"created_at"  gorm:"column:created_at"`
}

func (AbsensiEntity) TableName() string {
	return "absensi"
}

type KaryawanRepository struct {
	*pg.DB
}

func NewKaryawanRepository(db *pg.DB) *KaryawanRepository {
	return &KaryawanRepository{
		db,
	}
}

func (r *KaryawanRepository) Create(ctx context.Context, k *model.Karyawan) (*model.Karyawan, error) {
	entity := &KaryawanEntity{
		Nama:    k.Nama,
		Jabatan: string(k.Jabatan),
		Telepon: k.Telepon,
		Gaji:    k.Gaji,
		Aktif:   true,
	}
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toKaryawanModel(entity), nil
}

func (r *KaryawanRepository) Update(ctx context.Context, k *model.Karyawan) (*model.Karyawan, error) {
	updates := map[string]any{
		"nama":    k.Nama,
		"jabatan": string(k.Jabatan),
		"telepon": k.Telepon,
		"gaji":    k.Gaji,
		"aktif":   k.Aktif,
	}
	result := r.Write(ctx).Model(&KaryawanEntity{}).Where("id = ?", k.ID).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, k.ID)
}

func (r *KaryawanRepository) GetByID(ctx context.Context, id int64) (*model.Karyawan, error) {
	var entity KaryawanEntity
	err := r.Read(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toKaryawanModel(&entity), nil
}

func (r *KaryawanRepository) List(ctx context.Context, f model.MitraFilter) ([]*model.Karyawan, int64, error) {
	q := r.Read(ctx).Model(&KaryawanEntity{})
	if f.Keyword != nil && *f.Keyword != "" {
		kw := "%" + strings.ToLower(*f.Keyword) + "%"
		q = q.Where("LOWER(nama) LIKE ?", kw)
	}
	if f.Aktif != nil {
		q = q.Where("aktif = ?", *f.Aktif)
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

	var entities []*KaryawanEntity
	if err := q.Order("nama ASC").Find(&entities).Error; err != nil {
		return nil, 0, err
	}
	out := make([]*model.Karyawan, len(entities))
	for i, e := range entities {
		out[i] = toKaryawanModel(e)
	}
	return out, total, nil
}

// CheckIn writes the single attendance row of the day. The unique
// index on (karyawan_id, tanggal) turns a second check-in into
// ErrSudahAbsen, which the handler maps to a conflict.
func (r *KaryawanRepository) CheckIn(ctx context.Context, a *model.Absensi) (*model.Absensi, error) {
	entity := &AbsensiEntity{
		KaryawanID: a.KaryawanID,
		Tanggal:    a.Tanggal,
		Status:     string(a.Status),
		Keterangan: a.Keterangan,
	}
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "duplicate") {
			return nil, ErrSudahAbsen
		}
		return nil, err
	}
	return toAbsensiModel(entity), nil
}

func (r *KaryawanRepository) ListAbsensi(ctx context.Context, karyawanID int64, bulan string) ([]*model.Absensi, error) {
	q := r.Read(ctx).Model(&AbsensiEntity{}).Where("karyawan_id = ?", karyawanID)
	if bulan != "" {
		q = q.Where("tanggal LIKE ?", bulan+"%")
	}

	var entities []*AbsensiEntity
	if err := q.Order("tanggal ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	out := make([]*model.Absensi, len(entities))
	for i, e := range entities {
		out[i] = toAbsensiModel(e)
	}
	return out, nil
}

func toAbsensiModel(e *AbsensiEntity) *model.Absensi {
	if e == nil {
		return nil
	}
	return &model.Absensi{
		ID:         e.ID,
		KaryawanID: e.KaryawanID,
		Tanggal:    e.Tanggal,
		Status:     model.AbsensiStatus(e.Status),
		Keterangan: e.Keterangan,
		CreatedAt:  e.CreatedAt,
	}
}
