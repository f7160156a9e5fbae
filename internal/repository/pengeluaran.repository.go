package repository

import (
	"context"
	"time"

	"github.com/awsembako/backoffice/internal/model"
	"github.com/awsembako/backoffice/pkg/pg"
)

type PengeluaranEntity struct {
	ID         int64     `db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	Keterangan string    `db:"keterangan" gorm:"column:keterangan;not null"`
	Jumlah     int64     `db:"jumlah"     gorm:"column:jumlah;not null"`
	Tanggal    string    `db:"tanggal"    gorm:"column:tanggal;not null;index"`
	CreatedAt  time.Time `db:"created_at" gorm:"column:created_at"`
}

func (PengeluaranEntity) TableName() string {
	return "pengeluaran"
}

type PengeluaranRepository struct {
	*pg.DB
}

func NewPengeluaranRepository(db *pg.DB) *PengeluaranRepository {
	return &PengeluaranRepository{
		db,
	}
}

func (r *PengeluaranRepository) Create(ctx context.Context, p *model.Pengeluaran) (*model.Pengeluaran, error) {
	entity := &PengeluaranEntity{
		Keterangan: p.Keterangan,
		Jumlah:     p.Jumlah,
		Tanggal:    p.Tanggal,
	}
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toPengeluaranModel(entity), nil
}

func (r *PengeluaranRepository) List(ctx context.Context, f model.PengeluaranFilter) ([]*model.Pengeluaran, int64, error) {
	q := r.Read(ctx).Model(&PengeluaranEntity{})
	if f.From != nil {
		q = q.Where("tanggal >= ?", f.From.Format("2006-01-02"))
	}
	if f.To != nil {
		q = q.Where("tanggal < ?", f.To.Format("2006-01-02"))
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

	var entities []*PengeluaranEntity
	if err := q.Order("tanggal DESC, id DESC").Find(&entities).Error; err != nil {
		return nil, 0, err
	}
	out := make([]*model.Pengeluaran, len(entities))
	for i, e := range entities {
		out[i] = toPengeluaranModel(e)
	}
	return out, total, nil
}

func toPengeluaranModel(e *PengeluaranEntity) *model.Pengeluaran {
	if e == nil {
		return nil
	}
	return &model.Pengeluaran{
		ID:         e.ID,
		Keterangan: e.Keterangan,
		Jumlah:     e.Jumlah,
		Tanggal:    e.Tanggal,
		CreatedAt:  e.CreatedAt,
	}
}
