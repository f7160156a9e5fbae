package services

import (
	"context"
	"fmt"
	"time"

	"github.com/awsembako/backoffice/internal/model"
)

type PengeluaranRepository interface {
	Create(ctx context.Context, p *model.Pengeluaran) (*model.Pengeluaran, error)
	List(ctx context.Context, f model.PengeluaranFilter) ([]*model.Pengeluaran, int64, error)
}

type PengeluaranService struct {
	pengeluaran PengeluaranRepository
}

func NewPengeluaranService(pengeluaran PengeluaranRepository) *PengeluaranService {
	return &PengeluaranService{pengeluaran: pengeluaran}
}

func (s *PengeluaranService) Create(ctx context.Context, p *model.Pengeluaran) (*model.Pengeluaran, error) {
	if p.Keterangan == "" || p.Jumlah <= 0 {
		return nil, ErrInvalidAmount
	}
	if p.Tanggal == "" {
		p.Tanggal = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", p.Tanggal); err != nil {
		return nil, fmt.Errorf("%w: format tanggal harus YYYY-MM-DD", ErrInvalidAmount)
	}
	created, err := s.pengeluaran.Create(ctx, p)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return created, nil
}

func (s *PengeluaranService) List(ctx context.Context, f model.PengeluaranFilter) ([]*model.Pengeluaran, int64, error) {
	return s.pengeluaran.List(ctx, f)
}
