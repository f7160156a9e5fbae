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

type PenjualanRepository struct {
	*pg.DB
}

func NewPenjualanRepository(db *pg.DB) *PenjualanRepository {
	return &PenjualanRepository{
		db,
	}
}

func (r *PenjualanRepository) Create(ctx context.Context, h *model.PenjualanHeader) (*model.PenjualanHeader, error) {
	entity := toPenjualanHeaderEntity(h)
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toPenjualanHeaderModel(entity), nil
}

func (r *PenjualanRepository) GetWithItems(ctx context.Context, id int64) (*model.PenjualanHeader, error) {
	var entity PenjualanHeaderEntity
	err := r.Read(ctx).Preload("Items").Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toPenjualanHeaderModel(&entity), nil
}

// GetForUpdate locks the header row; used by the soft-delete reversal
// so two concurrent deletes of the same sale serialize and the second
// one observes DeletedAt already set.
func (r *PenjualanRepository) GetForUpdate(ctx context.Context, id int64) (*model.PenjualanHeader, error) {
	var entity PenjualanHeaderEntity
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
	return toPenjualanHeaderModel(&entity), nil
}

func (r *PenjualanRepository) List(ctx context.Context, f model.TransaksiFilter) ([]*model.PenjualanHeader, int64, error) {
	q := r.Read(ctx).Model(&PenjualanHeaderEntity{}).Where("deleted_at IS NULL")
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

	var entities []*PenjualanHeaderEntity
	if err := q.Preload("Items").Order("id DESC").Find(&entities).Error; err != nil {
		return nil, 0, err
	}
	return toPenjualanHeaderModels(entities), total, nil
}

// MarkDeleted stamps DeletedAt. The caller has already performed the
// reversal steps in the same transaction.
func (r *PenjualanRepository) MarkDeleted(ctx context.Context, id int64, at time.Time) error {
	result := r.Write(ctx).
		Model(&PenjualanHeaderEntity{}).
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

func applyTransaksiFilter(q *gorm.DB, f model.TransaksiFilter) *gorm.DB {
	if f.Status != nil {
		q = q.Where("status = ?", string(*f.Status))
	}
	if f.StatusBayar != nil {
		q = q.Where("status_bayar = ?", string(*f.StatusBayar))
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}
	return q
}
