package repository

import (
	"context"
	"testing"

	"github.com/awsembako/backoffice/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBarang(t *testing.T, db *testDB, kode string, stok, minimal int64) *BarangEntity {
	t.Helper()
	b := &BarangEntity{
		Kode:         kode,
		Nama:         "Barang " + kode,
		Satuan:       "pcs",
		IsiPerSatuan: 1,
		HargaBeli:    500,
		HargaJual:    800,
		Stok:         stok,
		StokMinimal:  minimal,
		Aktif:        true,
	}
	require.NoError(t, db.rawDB.Create(b).Error)
	return b
}

func TestBarangRepository_AdjustStock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBarangRepository(db.DB)
	ctx := context.Background()

	b := seedBarang(t, db, "BRG-001", 10, 2)

	updated, err := repo.AdjustStock(ctx, b.ID, -4)
	require.NoError(t, err)
	assert.Equal(t, int64(6), updated.Stok)

	updated, err = repo.AdjustStock(ctx, b.ID, 14)
	require.NoError(t, err)
	assert.Equal(t, int64(20), updated.Stok)
}

func TestBarangRepository_AdjustStockInsufficient(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBarangRepository(db.DB)
	ctx := context.Background()

	b := seedBarang(t, db, "BRG-001", 3, 0)

	_, err := repo.AdjustStock(ctx, b.ID, -4)
	assert.ErrorIs(t, err, ErrStokKurang)

	// The failed adjustment leaves the stored value untouched.
	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Stok)
}

func TestBarangRepository_ListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBarangRepository(db.DB)
	ctx := context.Background()

	seedBarang(t, db, "BRG-001", 10, 2)
	low := seedBarang(t, db, "BRG-002", 1, 5)
	inactive := seedBarang(t, db, "BRG-003", 7, 0)
	require.NoError(t, repo.Deactivate(ctx, inactive.ID))

	items, total, err := repo.List(ctx, model.BarangFilter{LowStock: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, low.ID, items[0].ID)

	aktif := true
	_, total, err = repo.List(ctx, model.BarangFilter{Aktif: &aktif})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	kw := "brg-003"
	items, _, err = repo.List(ctx, model.BarangFilter{Keyword: &kw})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, inactive.ID, items[0].ID)
}

func TestBarangRepository_DeactivateUnknown(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBarangRepository(db.DB)

	err := repo.Deactivate(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}
