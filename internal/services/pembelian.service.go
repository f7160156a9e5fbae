package services

import (
	"context"
	"time"

	"github.com/awsembako/backoffice/internal/model"
	"github.com/awsembako/backoffice/pkg/logger"
	"github.com/awsembako/backoffice/pkg/prom"
)

type PembelianRepository interface {
	Create(ctx context.Context, h *model.PembelianHeader) (*model.PembelianHeader, error)
	GetWithItems(ctx context.Context, id int64) (*model.PembelianHeader, error)
	GetForUpdate(ctx context.Context, id int64) (*model.PembelianHeader, error)
	List(ctx context.Context, f model.TransaksiFilter) ([]*model.PembelianHeader, int64, error)
	UpdatePayment(ctx context.Context, id int64, jumlahDibayar int64, statusBayar model.StatusBayar) error
	MarkDeleted(ctx context.Context, id int64, at time.Time) error
}

type SupplierReconciler interface {
	RecalculateDebt(ctx context.Context, supplierID int64) (*model.SupplierDebtReport, error)
	ListIDs(ctx context.Context) ([]int64, error)
}

const prefixPembelian = "PBL"

type PembelianService struct {
	db        TxRunner
	purchases PembelianRepository
	barang    BarangRepository
	sequence  SequenceRepository
	accounts  AccountRepository
	entries   LedgerEntryRepository
	suppliers SupplierReconciler
}

func NewPembelianService(db TxRunner, purchases PembelianRepository, barang BarangRepository, sequence SequenceRepository, accounts AccountRepository, entries LedgerEntryRepository, suppliers SupplierReconciler) *PembelianService {
	return &PembelianService{
		db:        db,
		purchases: purchases,
		barang:    barang,
		sequence:  sequence,
		accounts:  accounts,
		entries:   entries,
		suppliers: suppliers,
	}
}

// Create books an incoming purchase: PBL code, stock increments, and
// the supplier payable for the unpaid remainder when debt-financed.
func (s *PembelianService) Create(ctx context.Context, req model.PurchaseRequest) (*model.PembelianHeader, error) {
	if len(req.Items) == 0 {
		return nil, ErrItemKosong
	}
	for _, it := range req.Items {
		if it.Qty <= 0 || it.Harga <= 0 {
			return nil, ErrInvalidAmount
		}
	}
	if req.DiskonNota < 0 || req.JumlahDibayar < 0 {
		return nil, ErrInvalidAmount
	}
	if req.StatusBayar != model.BayarLunas && req.StatusBayar != model.BayarHutang {
		return nil, ErrStatusSalah
	}

	start := time.Now()
	var created *model.PembelianHeader

	err := s.db.WithinTransactionTimeout(ctx, 0, func(ctx context.Context) error {
		kode, err := s.sequence.NextCode(ctx, "pembelian_headers", codePrefix(prefixPembelian, time.Now()))
		if err != nil {
			return err
		}

		header := &model.PembelianHeader{
			Kode:        kode,
			SupplierID:  req.SupplierID,
			Status:      model.StatusSelesai,
			StatusBayar: req.StatusBayar,
			DiskonNota:  req.DiskonNota,
		}

		for _, it := range req.Items {
			b, err := s.barang.GetByID(ctx, it.BarangID)
			if err != nil {
				return err
			}

			if _, err := s.barang.AdjustStock(ctx, b.ID, it.Qty*b.IsiPerSatuan); err != nil {
				return err
			}

			line := model.PembelianItem{
				BarangID:     b.ID,
				NamaBarang:   b.Nama,
				Qty:          it.Qty,
				IsiPerSatuan: b.IsiPerSatuan,
				Harga:        it.Harga,
				Total:        it.Qty * it.Harga,
			}
			header.Items = append(header.Items, line)
			header.Subtotal += line.Total
		}

		header.TotalHarga = header.Subtotal - header.DiskonNota
		if header.TotalHarga < 0 {
			return ErrInvalidAmount
		}
		header.JumlahDibayar = req.JumlahDibayar

		switch header.StatusBayar {
		case model.BayarLunas:
			if req.JumlahDibayar < header.TotalHarga {
				return ErrBayarKurang
			}
			header.Kembalian = req.JumlahDibayar - header.TotalHarga
		case model.BayarHutang:
			outstanding := header.TotalHarga - req.JumlahDibayar
			if outstanding <= 0 {
				return ErrStatusSalah
			}
			balance, err := s.accounts.LockBalance(ctx, model.AccountSupplier, req.SupplierID)
			if err != nil {
				return err
			}
			if err := s.accounts.SetBalance(ctx, model.AccountSupplier, req.SupplierID, balance+outstanding); err != nil {
				return err
			}
			if _, err := s.entries.Create(ctx, &model.LedgerEntry{
				OwnerKind: model.AccountSupplier,
				OwnerID:   req.SupplierID,
				Kind:      model.EntryDebtAdjustment,
				Amount:    outstanding,
				Note:      "Pembelian " + kode,
			}); err != nil {
				return err
			}
		}

		created, err = s.purchases.Create(ctx, header)
		return err
	})
	if err != nil {
		return nil, mapRepoErr(err)
	}
	prom.AddCodeGenDuration(time.Since(start).Seconds(), prefixPembelian)
	return created, nil
}

// PayHeader settles part of a debt-financed purchase. The effective
// payment is capped at the header's outstanding amount; the excess is
// returned as kembalian. The supplier payable and the header move in
// the same transaction.
func (s *PembelianService) PayHeader(ctx context.Context, headerID int64, amount int64) (*model.AdjustResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var result *model.AdjustResult
	err := s.db.WithinTransactionTimeout(ctx, 0, func(ctx context.Context) error {
		header, err := s.purchases.GetForUpdate(ctx, headerID)
		if err != nil {
			return err
		}
		if header.DeletedAt != nil || header.Status != model.StatusSelesai {
			return ErrStatusSalah
		}
		if header.StatusBayar != model.BayarHutang {
			return ErrStatusSalah
		}

		outstanding := header.Outstanding()
		effective := amount
		kembalian := int64(0)
		if effective > outstanding {
			kembalian = effective - outstanding
			effective = outstanding
		}

		balance, err := s.accounts.LockBalance(ctx, model.AccountSupplier, header.SupplierID)
		if err != nil {
			return err
		}
		newBalance := balance - effective
		if newBalance < 0 {
			newBalance = 0
		}
		if err := s.accounts.SetBalance(ctx, model.AccountSupplier, header.SupplierID, newBalance); err != nil {
			return err
		}

		entry, err := s.entries.Create(ctx, &model.LedgerEntry{
			OwnerKind: model.AccountSupplier,
			OwnerID:   header.SupplierID,
			Kind:      model.EntryPayment,
			Amount:    effective,
			Note:      "Pembayaran pembelian " + header.Kode,
		})
		if err != nil {
			return err
		}

		paid := header.JumlahDibayar + effective
		statusBayar := header.StatusBayar
		if paid >= header.TotalHarga {
			statusBayar = model.BayarLunas
		}
		if err := s.purchases.UpdatePayment(ctx, header.ID, paid, statusBayar); err != nil {
			return err
		}

		result = &model.AdjustResult{
			OwnerKind:     model.AccountSupplier,
			OwnerID:       header.SupplierID,
			BalanceBefore: balance,
			BalanceAfter:  newBalance,
			Entry:         entry,
			Kembalian:     kembalian,
		}
		return nil
	})
	if err != nil {
		return nil, mapRepoErr(err)
	}
	prom.IncBalanceAdjustment(string(model.AccountSupplier), string(model.EntryPayment))
	return result, nil
}

// SoftDelete reverses a purchase: stock is taken back out (which can
// legitimately fail when the goods were already sold) and the supplier
// payable drops by the unpaid remainder, floored at zero. Idempotent.
func (s *PembelianService) SoftDelete(ctx context.Context, id int64) (*model.PembelianHeader, error) {
	var result *model.PembelianHeader
	err := s.db.WithinTransactionTimeout(ctx, 0, func(ctx context.Context) error {
		header, err := s.purchases.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if header.DeletedAt != nil {
			result = header
			return nil
		}
		if header.Status != model.StatusSelesai {
			return ErrStatusSalah
		}

		for _, it := range header.Items {
			if _, err := s.barang.AdjustStock(ctx, it.BarangID, -it.QtyBaseUnits()); err != nil {
				return err
			}
		}

		if header.StatusBayar == model.BayarHutang {
			outstanding := header.Outstanding()
			if outstanding > 0 {
				balance, err := s.accounts.LockBalance(ctx, model.AccountSupplier, header.SupplierID)
				if err != nil {
					return err
				}
				newBalance := balance - outstanding
				if newBalance < 0 {
					newBalance = 0
				}
				if err := s.accounts.SetBalance(ctx, model.AccountSupplier, header.SupplierID, newBalance); err != nil {
					return err
				}
				if _, err := s.entries.Create(ctx, &model.LedgerEntry{
					OwnerKind: model.AccountSupplier,
					OwnerID:   header.SupplierID,
					Kind:      model.EntryDebtAdjustment,
					Amount:    balance - newBalance,
					Note:      "Pembatalan pembelian " + header.Kode,
				}); err != nil {
					return err
				}
			}
		}

		now := time.Now()
		if err := s.purchases.MarkDeleted(ctx, header.ID, now); err != nil {
			return err
		}
		header.DeletedAt = &now
		header.Status = model.StatusDibatalkan
		result = header
		return nil
	})
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return result, nil
}

func (s *PembelianService) Get(ctx context.Context, id int64) (*model.PembelianHeader, error) {
	header, err := s.purchases.GetWithItems(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return header, nil
}

func (s *PembelianService) List(ctx context.Context, f model.TransaksiFilter) ([]*model.PembelianHeader, int64, error) {
	return s.purchases.List(ctx, f)
}

// RecalculateAllSupplierDebt is the reconciliation pass: each supplier
// is recomputed in its own transaction, so the operation is eventually
// consistent with purchases committed while it runs.
func (s *PembelianService) RecalculateAllSupplierDebt(ctx context.Context) ([]*model.SupplierDebtReport, error) {
	ids, err := s.suppliers.ListIDs(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]*model.SupplierDebtReport, 0, len(ids))
	for _, id := range ids {
		var report *model.SupplierDebtReport
		err := s.db.WithinTransaction(ctx, func(ctx context.Context) error {
			var err error
			report, err = s.suppliers.RecalculateDebt(ctx, id)
			return err
		})
		if err != nil {
			logger.Warn("supplier debt recalculation failed", "supplier_id", id, "error", err)
			continue
		}
		reports = append(reports, report)
	}
	return reports, nil
}
