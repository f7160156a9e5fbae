package services

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/awsembako/backoffice/internal/model"
	"github.com/awsembako/backoffice/pkg/logger"
)

type ReportRepository interface {
	TopProducts(ctx context.Context, since time.Time, limit int) ([]*model.TopProduct, error)
	DailySales(ctx context.Context, since time.Time) ([]model.DailySummary, error)
	DailyPurchases(ctx context.Context, since time.Time) ([]model.DailySummary, error)
	DailyExpenses(ctx context.Context, since time.Time) ([]model.DailySummary, error)
}

// ReportCache is the subset of the redis adapter the report service
// needs. A nil cache disables caching entirely.
type ReportCache interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte, ttl time.Duration) error
}

const (
	reportWindowDays = 30
	cacheKeySummary  = "report:summary"
	cacheKeyTop      = "report:top_products"
)

type ReportService struct {
	reports ReportRepository
	cache   ReportCache
	ttl     time.Duration
}

func NewReportService(reports ReportRepository, cache ReportCache, ttl time.Duration) *ReportService {
	return &ReportService{reports: reports, cache: cache, ttl: ttl}
}

// Summary builds the 30-day sales/purchases/expenses report. Reads go
// through the cache; a cache failure degrades to a direct query.
func (s *ReportService) Summary(ctx context.Context) (*model.SummaryReport, error) {
	var cached model.SummaryReport
	if s.fromCache(cacheKeySummary, &cached) {
		return &cached, nil
	}

	since := time.Now().AddDate(0, 0, -reportWindowDays)

	sales, err := s.reports.DailySales(ctx, since)
	if err != nil {
		return nil, err
	}
	purchases, err := s.reports.DailyPurchases(ctx, since)
	if err != nil {
		return nil, err
	}
	expenses, err := s.reports.DailyExpenses(ctx, since)
	if err != nil {
		return nil, err
	}

	report := mergeDaily(sales, purchases, expenses)
	report.MarginPersen = marginPersen(report.TotalLaba, report.TotalPenjualan)

	s.toCache(cacheKeySummary, report)
	return report, nil
}

func (s *ReportService) TopProducts(ctx context.Context, limit int) ([]*model.TopProduct, error) {
	if limit <= 0 {
		limit = 10
	}

	var cached []*model.TopProduct
	if s.fromCache(cacheKeyTop, &cached) {
		return cached, nil
	}

	since := time.Now().AddDate(0, 0, -reportWindowDays)
	products, err := s.reports.TopProducts(ctx, since, limit)
	if err != nil {
		return nil, err
	}

	s.toCache(cacheKeyTop, products)
	return products, nil
}

func (s *ReportService) fromCache(key string, out any) bool {
	if s.cache == nil {
		return false
	}
	raw, err := s.cache.Get(key)
	if err != nil || len(raw) == 0 {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		logger.Warn("discarding unreadable report cache entry", "key", key, "error", err)
		return false
	}
	return true
}

func (s *ReportService) toCache(key string, v any) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(key, raw, s.ttl); err != nil {
		logger.Warn("failed to cache report", "key", key, "error", err)
	}
}

// mergeDaily joins the three per-day series on the date key and sorts
// the result chronologically.
func mergeDaily(sales, purchases, expenses []model.DailySummary) *model.SummaryReport {
	byDay := map[string]*model.DailySummary{}
	day := func(tanggal string) *model.DailySummary {
		if d, ok := byDay[tanggal]; ok {
			return d
		}
		d := &model.DailySummary{Tanggal: tanggal}
		byDay[tanggal] = d
		return d
	}

	for _, r := range sales {
		day(r.Tanggal).Penjualan += r.Penjualan
	}
	for _, r := range purchases {
		day(r.Tanggal).Pembelian += r.Pembelian
	}
	for _, r := range expenses {
		day(r.Tanggal).Pengeluaran += r.Pengeluaran
	}

	dates := make([]string, 0, len(byDay))
	for tanggal := range byDay {
		dates = append(dates, tanggal)
	}
	sort.Strings(dates)

	report := &model.SummaryReport{Days: make([]model.DailySummary, 0, len(dates))}
	for _, tanggal := range dates {
		d := byDay[tanggal]
		d.Laba = d.Penjualan - d.Pembelian - d.Pengeluaran
		report.Days = append(report.Days, *d)
		report.TotalPenjualan += d.Penjualan
		report.TotalPembelian += d.Pembelian
		report.TotalPengeluaran += d.Pengeluaran
		report.TotalLaba += d.Laba
	}
	return report
}

// marginPersen renders laba/penjualan as a percentage with two decimal
// places. Transaction amounts stay int64 rupiah everywhere; decimals
// appear only at this display boundary.
func marginPersen(laba, penjualan int64) string {
	if penjualan == 0 {
		return "0.00"
	}
	return decimal.NewFromInt(laba).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(penjualan), 2).
		StringFixed(2)
}
