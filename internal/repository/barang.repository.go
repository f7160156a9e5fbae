package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/awsembako/backoffice/internal/model"
	"github.com/awsembako/backoffice/pkg/pg"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BarangRepository struct {
	*pg.DB
}

func NewBarangRepository(db *pg.DB) *BarangRepository {
	return &BarangRepository{
		db,
	}
}

func (r *BarangRepository) Create(ctx context.Context, b *model.Barang) (*model.Barang, error) {
	entity := toBarangEntity(b)
	entity.Aktif = true

	if err := r.Write(ctx).Create(entity).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "duplicate") {
			return nil, ErrKodeDuplikat
		}
		return nil, err
	}
	return toBarangModel(entity), nil
}

func (r *BarangRepository) Update(ctx context.Context, b *model.Barang) (*model.Barang, error) {
	var entity BarangEntity
	if err := r.Write(ctx).Where("id = ?", b.ID).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates := map[string]any{
		"nama":           b.Nama,
		"satuan":         b.Satuan,
		"isi_per_satuan": b.IsiPerSatuan,
		"harga_beli":     b.HargaBeli,
		"harga_jual":     b.HargaJual,
		"stok_minimal":   b.StokMinimal,
		"aktif":          b.Aktif,
	}
	if err := r.Write(ctx).Model(&BarangEntity{}).Where("id = ?", b.ID).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, b.ID)
}

func (r *BarangRepository) GetByID(ctx context.Context, id int64) (*model.Barang, error) {
	var entity BarangEntity
	err := r.Read(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toBarangModel(&entity), nil
}

func (r *BarangRepository) List(ctx context.Context, f model.BarangFilter) ([]*model.Barang, int64, error) {
	q := r.Read(ctx).Model(&BarangEntity{})

	if f.Keyword != nil && *f.Keyword != "" {
		kw := "%" + strings.ToLower(*f.Keyword) + "%"
		q = q.Where("LOWER(kode) LIKE ? OR LOWER(nama) LIKE ?", kw, kw)
	}
	if f.Aktif != nil {
		q = q.Where("aktif = ?", *f.Aktif)
	}
	if f.LowStock {
		q = q.Where("stok < stok_minimal")
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

	var entities []*BarangEntity
	if err := q.Order("nama ASC").Find(&entities).Error; err != nil {
		return nil, 0, err
	}
	return toBarangModels(entities), total, nil
}

// Deactivate is the soft form of delete: the item stays referenced by
// historical transaction lines but disappears from sale screens.
func (r *BarangRepository) Deactivate(ctx context.Context, id int64) error {
	result := r.Write(ctx).Model(&BarangEntity{}).Where("id = ?", id).Update("aktif", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustStock applies delta (negative for a sale, positive for a
// restock) under a row lock. A committed stock value is never
// negative; an insufficient balance aborts with ErrStokKurang and the
// surrounding transaction rolls back.
func (r *BarangRepository) AdjustStock(ctx context.Context, barangID int64, delta int64) (*model.Barang, error) {
	var entity BarangEntity

	err := r.Write(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", barangID).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	newStok := entity.Stok + delta
	if newStok < 0 {
		return nil, ErrStokKurang
	}

	result := r.Write(ctx).
		Model(&BarangEntity{}).
		Where("id = ?", barangID).
		Update("stok", gorm.Expr("stok + ?", delta))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrConcurrentUpdate
	}

	entity.Stok = newStok
	return toBarangModel(&entity), nil
}
