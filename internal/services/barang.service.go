package services

import (
	"context"

	"github.com/awsembako/backoffice/internal/model"
)

type BarangStore interface {
	Create(ctx context.Context, b *model.Barang) (*model.Barang, error)
	Update(ctx context.Context, b *model.Barang) (*model.Barang, error)
	GetByID(ctx context.Context, id int64) (*model.Barang, error)
	List(ctx context.Context, f model.BarangFilter) ([]*model.Barang, int64, error)
	Deactivate(ctx context.Context, id int64) error
}

type BarangService struct {
	barang BarangStore
}

func NewBarangService(barang BarangStore) *BarangService {
	return &BarangService{barang: barang}
}

func (s *BarangService) Create(ctx context.Context, req model.BarangCreateRequest) (*model.Barang, error) {
	if req.Kode == "" || req.Nama == "" {
		return nil, ErrInvalidAmount
	}
	if req.IsiPerSatuan <= 0 || req.HargaBeli < 0 || req.HargaJual < 0 || req.Stok < 0 || req.StokMinimal < 0 {
		return nil, ErrInvalidAmount
	}
	b := &model.Barang{
		Kode:         req.Kode,
		Nama:         req.Nama,
		Satuan:       req.Satuan,
		IsiPerSatuan: req.IsiPerSatuan,
		HargaBeli:    req.HargaBeli,
		HargaJual:    req.HargaJual,
		Stok:         req.Stok,
		StokMinimal:  req.StokMinimal,
		Aktif:        true,
	}
	created, err := s.barang.Create(ctx, b)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return created, nil
}

func (s *BarangService) Update(ctx context.Context, b *model.Barang) (*model.Barang, error) {
	if b.IsiPerSatuan <= 0 {
		return nil, ErrInvalidAmount
	}
	updated, err := s.barang.Update(ctx, b)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return updated, nil
}

func (s *BarangService) Get(ctx context.Context, id int64) (*model.Barang, error) {
	b, err := s.barang.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return b, nil
}

func (s *BarangService) List(ctx context.Context, f model.BarangFilter) ([]*model.Barang, int64, error) {
	return s.barang.List(ctx, f)
}

// Deactivate retires an item from sale without touching its history.
func (s *BarangService) Deactivate(ctx context.Context, id int64) error {
	if err := s.barang.Deactivate(ctx, id); err != nil {
		return mapRepoErr(err)
	}
	return nil
}
