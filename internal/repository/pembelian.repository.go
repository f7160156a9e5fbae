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

type PembelianRepository struct {
	*pg.DB
}

func NewPembelianRepository(db *pg.DB) *PembelianRepository {
	return &PembelianRepository{
		db,
	}
}

func (r *PembelianRepository) Create(ctx context.Context, h *model.PembelianHeader) (*model.PembelianHeader, error) {
	entity := toPembelianHeaderEntity(h)
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toPembelianHeaderModel(entity), nil
}

func (r *PembelianRepository) GetWithItems(ctx context.Context, id int64) (*model.PembelianHeader, error) {
	var entity PembelianHeaderEntity
	err := r.Read(ctx).Preload("Items").Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toPembelianHeaderModel(&entity), nil
}

func (r *PembelianRepository) GetForUpdate(ctx context.Context, id int64) (*model.PembelianHeader, error) {
	var entity PembelianHeaderEntity
	err := r.Write(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items").
		Where("id = ?", id).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toPembelianHeaderModel(&entity), nil
}

func (r *PembelianRepository) List(ctx context.Context, f model.TransaksiFilter) ([]*model.PembelianHeader, int64, error) {
	q := r.Read(ctx).Model(&PembelianHeaderEntity{}).Where("deleted_at IS NULL")
	q = applyTransaksiFilter(q, f)

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

	var entities []*PembelianHeaderEntity
	if err := q.Preload("Items").Order("id DESC").Find(&entities).Error; err != nil {
		return nil, 0, err
	}
	return toPembelianHeaderModels(entities), total, nil
}

func (r *PembelianRepository) UpdatePayment(ctx context.Context, id int64, jumlahDibayar int64, statusBayar model.StatusBayar) error {
	result := r.Write(ctx).
		Model(&PembelianHeaderEntity{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]any{
			"jumlah_dibayar": jumlahDibayar,
			"status_bayar":   string(statusBayar),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PembelianRepository) MarkDeleted(ctx context.Context, id int64, at time.Time) error {
	result := r.Write(ctx).
		Model(&PembelianHeaderEntity{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConcurrentUpdate
	}
	return nil
}
