package services

import (
	"context"
	"time"

	"github.com/awsembako/backoffice/internal/model"
	"github.com/awsembako/backoffice/pkg/logger"
	"github.com/awsembako/backoffice/pkg/prom"
)

type BarangRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Barang, error)
	AdjustStock(ctx context.Context, barangID int64, delta int64) (*model.Barang, error)
}

type PenjualanRepository interface {
	Create(ctx context.Context, h *model.PenjualanHeader) (*model.PenjualanHeader, error)
	GetWithItems(ctx context.Context, id int64) (*model.PenjualanHeader, error)
	GetForUpdate(ctx context.Context, id int64) (*model.PenjualanHeader, error)
	List(ctx context.Context, f model.TransaksiFilter) ([]*model.PenjualanHeader, int64, error)
	MarkDeleted(ctx context.Context, id int64, at time.Time) error
}

type SequenceRepository interface {
	NextCode(ctx context.Context, table string, prefix string) (string, error)
}

type AlertPublisher interface {
	PublishJSON(ctx context.Context, data interface{}, metadata map[string]string) (string, error)
}

const prefixPenjualan = "PNJ"

type PenjualanService struct {
	db       TxRunner
	sales    PenjualanRepository
	barang   BarangRepository
	sequence SequenceRepository
	accounts AccountRepository
	entries  LedgerEntryRepository
	alerts   AlertPublisher
}

func NewPenjualanService(db TxRunner, sales PenjualanRepository, barang BarangRepository, sequence SequenceRepository, accounts AccountRepository, entries LedgerEntryRepository, alerts AlertPublisher) *PenjualanService {
	return &PenjualanService{
		db:       db,
		sales:    sales,
		barang:   barang,
		sequence: sequence,
		accounts: accounts,
		entries:  entries,
		alerts:   alerts,
	}
}

// Checkout completes a sale in a single transaction: stamp a daily
// sequential code, deduct stock per line under row locks, recompute
// totals from the lines, and book the customer receivable when the
// sale is debt-financed. Any failed step rolls back all of it.
func (s *PenjualanService) Checkout(ctx context.Context, req model.CheckoutRequest) (*model.PenjualanHeader, error) {
	if len(req.Items) == 0 {
		return nil, ErrItemKosong
	}
	for _, it := range req.Items {
		if it.Qty <= 0 || it.Diskon < 0 {
			return nil, ErrInvalidAmount
		}
	}
	if req.DiskonNota < 0 || req.JumlahDibayar < 0 {
		return nil, ErrInvalidAmount
	}
	if req.StatusBayar != model.BayarLunas && req.StatusBayar != model.BayarHutang {
		return nil, ErrStatusSalah
	}
	if req.StatusBayar == model.BayarHutang && req.CustomerID == nil {
		return nil, ErrCustomerWajib
	}

	start := time.Now()
	var created *model.PenjualanHeader
	var lowStock []model.StockAlert

	err := s.db.WithinTransactionTimeout(ctx, 0, func(ctx context.Context) error {
		kode, err := s.sequence.NextCode(ctx, "penjualan_headers", codePrefix(prefixPenjualan, time.Now()))
		if err != nil {
			return err
		}

		header := &model.PenjualanHeader{
			Kode:        kode,
			CustomerID:  req.CustomerID,
			SalesID:     req.SalesID,
			Status:      model.StatusSelesai,
			StatusBayar: req.StatusBayar,
			DiskonNota:  req.DiskonNota,
		}

		for _, it := range req.Items {
			b, err := s.barang.GetByID(ctx, it.BarangID)
			if err != nil {
				return err
			}
			if !b.Aktif {
				return ErrInactive
			}

			updated, err := s.barang.AdjustStock(ctx, b.ID, -it.Qty*b.IsiPerSatuan)
			if err != nil {
				return err
			}

			line := model.PenjualanItem{
				BarangID:     b.ID,
				NamaBarang:   b.Nama,
				Qty:          it.Qty,
				IsiPerSatuan: b.IsiPerSatuan,
				Harga:        b.HargaJual,
				Diskon:       it.Diskon,
				Total:        it.Qty*b.HargaJual - it.Diskon,
			}
			if line.Total < 0 {
				return ErrInvalidAmount
			}
			header.Items = append(header.Items, line)
			header.Subtotal += line.Total

			if updated.Stok <= updated.StokMinimal {
				lowStock = append(lowStock, model.StockAlert{
					BarangID:    updated.ID,
					Kode:        updated.Kode,
					Nama:        updated.Nama,
					Stok:        updated.Stok,
					StokMinimal: updated.StokMinimal,
					KodeNota:    kode,
				})
			}
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
			balance, err := s.accounts.LockBalance(ctx, model.AccountCustomer, *req.CustomerID)
			if err != nil {
				return err
			}
			if err := s.accounts.SetBalance(ctx, model.AccountCustomer, *req.CustomerID, balance+outstanding); err != nil {
				return err
			}
			if _, err := s.entries.Create(ctx, &model.LedgerEntry{
				OwnerKind: model.AccountCustomer,
				OwnerID:   *req.CustomerID,
				Kind:      model.EntryDebtAdjustment,
				Amount:    outstanding,
				Note:      "Penjualan " + kode,
			}); err != nil {
				return err
			}
		}

		created, err = s.sales.Create(ctx, header)
		return err
	})
	if err != nil {
		return nil, mapRepoErr(err)
	}

	prom.AddCodeGenDuration(time.Since(start).Seconds(), prefixPenjualan)
	prom.IncCheckout(string(created.StatusBayar))
	s.publishAlerts(ctx, lowStock)
	return created, nil
}

// SoftDelete cancels a completed sale and reverses its side effects:
// every line is restocked and, for a debt-financed sale, the customer
// receivable is reduced by the unpaid remainder, floored at zero.
// Deleting an already-deleted sale is a no-op.
func (s *PenjualanService) SoftDelete(ctx context.Context, id int64) (*model.PenjualanHeader, error) {
	var result *model.PenjualanHeader
	err := s.db.WithinTransactionTimeout(ctx, 0, func(ctx context.Context) error {
		header, err := s.sales.GetForUpdate(ctx, id)
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
			if _, err := s.barang.AdjustStock(ctx, it.BarangID, it.QtyBaseUnits()); err != nil {
				return err
			}
		}

		if header.StatusBayar == model.BayarHutang && header.CustomerID != nil {
			outstanding := header.Outstanding()
			if outstanding > 0 {
				balance, err := s.accounts.LockBalance(ctx, model.AccountCustomer, *header.CustomerID)
				if err != nil {
					return err
				}
				newBalance := balance - outstanding
				if newBalance < 0 {
					newBalance = 0
				}
				if err := s.accounts.SetBalance(ctx, model.AccountCustomer, *header.CustomerID, newBalance); err != nil {
					return err
				}
				if _, err := s.entries.Create(ctx, &model.LedgerEntry{
					OwnerKind: model.AccountCustomer,
					OwnerID:   *header.CustomerID,
					Kind:      model.EntryDebtAdjustment,
					Amount:    balance - newBalance,
					Note:      "Pembatalan penjualan " + header.Kode,
				}); err != nil {
					return err
				}
			}
		}

		now := time.Now()
		if err := s.sales.MarkDeleted(ctx, header.ID, now); err != nil {
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
	prom.IncCounter(prom.SystemSales, prom.MetricSoftDeleteReversal)
	return result, nil
}

func (s *PenjualanService) Get(ctx context.Context, id int64) (*model.PenjualanHeader, error) {
	header, err := s.sales.GetWithItems(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return header, nil
}

func (s *PenjualanService) List(ctx context.Context, f model.TransaksiFilter) ([]*model.PenjualanHeader, int64, error) {
	return s.sales.List(ctx, f)
}

func (s *PenjualanService) publishAlerts(ctx context.Context, alerts []model.StockAlert) {
	if s.alerts == nil {
		return
	}
	for _, a := range alerts {
		if _, err := s.alerts.PublishJSON(ctx, a, nil); err != nil {
			// Alerting is best effort; the sale is already committed.
			logger.Warn("failed to publish low-stock alert", "barang_id", a.BarangID, "error", err)
			continue
		}
		prom.IncCounter(prom.SystemSales, prom.MetricLowStockAlert)
	}
}

// codePrefix builds the date-scoped code prefix, e.g. PNJ-20250101.
func codePrefix(domain string, t time.Time) string {
	return domain + "-" + t.Format("20060102")
}
