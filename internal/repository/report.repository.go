package repository

import (
	"context"
	"time"

	"github.com/awsembako/backoffice/internal/model"
	"github.com/awsembako/backoffice/pkg/pg"
)

type ReportRepository struct {
	*pg.DB
}

func NewReportRepository(db *pg.DB) *ReportRepository {
	return &ReportRepository{
		db,
	}
}

// TopProducts ranks items by base-unit quantity sold on completed,
// non-deleted sales since the cutoff.
func (r *ReportRepository) TopProducts(ctx context.Context, since time.Time, limit int) ([]*model.TopProduct, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows []*model.TopProduct
	err := r.Read(ctx).
		Table("penjualan_items").
		Select("penjualan_items.barang_id AS barang_id, penjualan_items.nama_barang AS nama_barang, SUM(penjualan_items.qty * penjualan_items.isi_per_satuan) AS total_qty, SUM(penjualan_items.total) AS total_omzet").
		Joins("JOIN penjualan_headers ON penjualan_headers.id = penjualan_items.header_id").
		Where("penjualan_headers.status = ? AND penjualan_headers.deleted_at IS NULL AND penjualan_headers.created_at >= ?",
			string(model.StatusSelesai), since).
		Group("penjualan_items.barang_id, penjualan_items.nama_barang").
		Order("total_qty DESC").
		Limit(limit).
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type dailyAmount struct {
	CreatedAt time.Time
	Amount    int64
}

// DailySales returns (created_at, total_harga) pairs of completed
// sales since the cutoff. Bucketing by calendar day happens in the
// service so the query stays portable across the postgres and sqlite
// dialects.
func (r *ReportRepository) DailySales(ctx context.Context, since time.Time) ([]model.DailySummary, error) {
	return r.dailyTotals(ctx, "penjualan_headers", since, func(d *model.DailySummary, amount int64) {
		d.Penjualan += amount
	})
}

func (r *ReportRepository) DailyPurchases(ctx context.Context, since time.Time) ([]model.DailySummary, error) {
	return r.dailyTotals(ctx, "pembelian_headers", since, func(d *model.DailySummary, amount int64) {
		d.Pembelian += amount
	})
}

func (r *ReportRepository) dailyTotals(ctx context.Context, table string, since time.Time, add func(*model.DailySummary, int64)) ([]model.DailySummary, error) {
	var rows []dailyAmount
	err := r.Read(ctx).
		Table(table).
		Select("created_at, total_harga AS amount").
		Where("status = ? AND deleted_at IS NULL AND created_at >= ?", string(model.StatusSelesai), since).
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}

	byDay := map[string]*model.DailySummary{}
	for _, row := range rows {
		day := row.CreatedAt.Format("2006-01-02")
		if byDay[day] == nil {
			byDay[day] = &model.DailySummary{Tanggal: day}
		}
		add(byDay[day], row.Amount)
	}

	out := make([]model.DailySummary, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, *d)
	}
	return out, nil
}

func (r *ReportRepository) DailyExpenses(ctx context.Context, since time.Time) ([]model.DailySummary, error) {
	var rows []PengeluaranEntity
	err := r.Read(ctx).
		Model(&PengeluaranEntity{}).
		Where("tanggal >= ?", since.Format("2006-01-02")).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	byDay := map[string]*model.DailySummary{}
	for _, row := range rows {
		if byDay[row.Tanggal] == nil {
			byDay[row.Tanggal] = &model.DailySummary{Tanggal: row.Tanggal}
		}
		byDay[row.Tanggal].Pengeluaran += row.Jumlah
	}

	out := make([]model.DailySummary, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, *d)
	}
	return out, nil
}
