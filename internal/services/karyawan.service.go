package services

import (
	"context"
	"fmt"
	"time"

	"github.com/awsembako/backoffice/internal/model"
)

type KaryawanRepository interface {
	Create(ctx context.Context, k *model.Karyawan) (*model.Karyawan, error)
	Update(ctx context.Context, k *model.Karyawan) (*model.Karyawan, error)
	GetByID(ctx context.Context, id int64) (*model.Karyawan, error)
	List(ctx context.Context, f model.MitraFilter) ([]*model.Karyawan, int64, error)
	CheckIn(ctx context.Context, a *model.Absensi) (*model.Absensi, error)
	ListAbsensi(ctx context.Context, karyawanID int64, bulan string) ([]*model.Absensi, error)
}

type KaryawanService struct {
	karyawan KaryawanRepository
	ledger   *LedgerService
}

func NewKaryawanService(karyawan KaryawanRepository, ledger *LedgerService) *KaryawanService {
	return &KaryawanService{karyawan: karyawan, ledger: ledger}
}

func (s *KaryawanService) Create(ctx context.Context, k *model.Karyawan) (*model.Karyawan, error) {
	if k.Nama == "" || k.Gaji < 0 {
		return nil, ErrInvalidAmount
	}
	if k.Jabatan != model.JabatanStaf && k.Jabatan != model.JabatanSales {
		return nil, ErrStatusSalah
	}
	k.Aktif = true
	created, err := s.karyawan.Create(ctx, k)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return created, nil
}

func (s *KaryawanService) Update(ctx context.Context, k *model.Karyawan) (*model.Karyawan, error) {
	updated, err := s.karyawan.Update(ctx, k)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return updated, nil
}

func (s *KaryawanService) Get(ctx context.Context, id int64) (*model.Karyawan, error) {
	k, err := s.karyawan.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return k, nil
}

func (s *KaryawanService) List(ctx context.Context, f model.MitraFilter) ([]*model.Karyawan, int64, error) {
	return s.karyawan.List(ctx, f)
}

// Pinjam disburses a loan or salary advance, raising total_pinjaman.
func (s *KaryawanService) Pinjam(ctx context.Context, karyawanID int64, amount int64, note string) (*model.AdjustResult, error) {
	if note == "" {
		note = "Pinjaman karyawan"
	}
	return s.ledger.Disburse(ctx, model.AccountEmployee, karyawanID, amount, note)
}

// BayarPinjaman repays part of an outstanding loan. Overpayment is
// capped and the excess returned as kembalian.
func (s *KaryawanService) BayarPinjaman(ctx context.Context, karyawanID int64, amount int64, note string) (*model.AdjustResult, error) {
	if note == "" {
		note = "Pembayaran pinjaman"
	}
	return s.ledger.Pay(ctx, model.AccountEmployee, karyawanID, amount, note)
}

func (s *KaryawanService) EditPinjaman(ctx context.Context, entryID int64, newAmount int64) (*model.AdjustResult, error) {
	return s.ledger.EditEntryAmount(ctx, entryID, newAmount)
}

func (s *KaryawanService) RiwayatPinjaman(ctx context.Context, karyawanID int64, f model.LedgerFilter) ([]*model.LedgerEntry, int64, error) {
	kind := model.AccountEmployee
	f.OwnerKind = &kind
	f.OwnerID = &karyawanID
	return s.ledger.Entries(ctx, f)
}

// CheckIn records one attendance row per employee per day. The date
// defaults to today; a second check-in for the same day is rejected.
func (s *KaryawanService) CheckIn(ctx context.Context, a *model.Absensi) (*model.Absensi, error) {
	switch a.Status {
	case model.AbsensiHadir, model.AbsensiIzin, model.AbsensiSakit:
	default:
		return nil, ErrStatusSalah
	}
	if a.Tanggal == "" {
		a.Tanggal = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", a.Tanggal); err != nil {
		return nil, fmt.Errorf("%w: format tanggal harus YYYY-MM-DD", ErrInvalidAmount)
	}

	if _, err := s.karyawan.GetByID(ctx, a.KaryawanID); err != nil {
		return nil, mapRepoErr(err)
	}

	created, err := s.karyawan.CheckIn(ctx, a)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return created, nil
}

// ListAbsensi returns attendance for one employee in a month (bulan is
// YYYY-MM; empty means all).
func (s *KaryawanService) ListAbsensi(ctx context.Context, karyawanID int64, bulan string) ([]*model.Absensi, error) {
	if bulan != "" {
		if _, err := time.Parse("2006-01", bulan); err != nil {
			return nil, fmt.Errorf("%w: format bulan harus YYYY-MM", ErrInvalidAmount)
		}
	}
	rows, err := s.karyawan.ListAbsensi(ctx, karyawanID, bulan)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return rows, nil
}
