package repository

import (
	"context"
	"testing"
	"time"

	"github.com/awsembako/backoffice/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSupplier(t *testing.T, db *testDB, nama string, hutang int64) *SupplierEntity {
	t.Helper()
	s := &SupplierEntity{Nama: nama, Hutang: hutang, Aktif: true}
	require.NoError(t, db.rawDB.Create(s).Error)
	return s
}

func seedPembelianHeader(t *testing.T, db *testDB, supplierID int64, kode string, total, dibayar int64, status model.StatusTransaksi, deleted bool) {
	t.Helper()
	h := &PembelianHeaderEntity{
		Kode:          kode,
		SupplierID:    supplierID,
		Status:        string(status),
		StatusBayar:   string(model.BayarHutang),
		Subtotal:      total,
		TotalHarga:    total,
		JumlahDibayar: dibayar,
	}
	if deleted {
		now := time.Now()
		h.DeletedAt = &now
	}
	require.NoError(t, db.rawDB.Create(h).Error)
}

func TestSupplierRepository_RecalculateDebt(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSupplierRepository(db.DB)
	ctx := context.Background()

	sup := seedSupplier(t, db, "PT Grosir Jaya", 777)

	// Two live debt headers, one overpaid, one cancelled, one deleted.
	seedPembelianHeader(t, db, sup.ID, "PBL-20250101-001", 10000, 4000, model.StatusSelesai, false)
	seedPembelianHeader(t, db, sup.ID, "PBL-20250101-002", 5000, 0, model.StatusSelesai, false)
	seedPembelianHeader(t, db, sup.ID, "PBL-20250101-003", 3000, 9000, model.StatusSelesai, false)
	seedPembelianHeader(t, db, sup.ID, "PBL-20250101-004", 8000, 0, model.StatusDibatalkan, false)
	seedPembelianHeader(t, db, sup.ID, "PBL-20250101-005", 2000, 0, model.StatusSelesai, true)

	report, err := repo.RecalculateDebt(ctx, sup.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(777), report.OldHutang)
	assert.Equal(t, int64(11000), report.NewHutang)
	assert.True(t, report.Adjusted)

	got, err := repo.GetByID(ctx, sup.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(11000), got.Hutang)

	// Already consistent: reported but not rewritten.
	report, err = repo.RecalculateDebt(ctx, sup.ID)
	require.NoError(t, err)
	assert.False(t, report.Adjusted)
}

func TestSupplierRepository_RecalculateDebtNoHeaders(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSupplierRepository(db.DB)

	sup := seedSupplier(t, db, "Baru", 500)

	report, err := repo.RecalculateDebt(context.Background(), sup.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), report.NewHutang)
	assert.True(t, report.Adjusted)
}

func TestSupplierRepository_ListIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSupplierRepository(db.DB)

	a := seedSupplier(t, db, "A", 0)
	b := seedSupplier(t, db, "B", 0)

	ids, err := repo.ListIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{a.ID, b.ID}, ids)
}

func TestCustomerRepository_ListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCustomerRepository(db.DB)
	ctx := context.Background()

	_, err := repo.Create(ctx, &model.Customer{Nama: "Warung Bu Sri", Aktif: true})
	require.NoError(t, err)
	closed, err := repo.Create(ctx, &model.Customer{Nama: "Toko Tutup", Aktif: false})
	require.NoError(t, err)

	aktif := true
	list, total, err := repo.List(ctx, model.MitraFilter{Aktif: &aktif})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "Warung Bu Sri", list[0].Nama)

	kw := "tutup"
	list, _, err = repo.List(ctx, model.MitraFilter{Keyword: &kw})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, closed.ID, list[0].ID)
}
