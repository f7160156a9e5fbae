package repository

import (
	"context"
	"testing"
	"time"

	"github.com/awsembako/backoffice/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPenjualan(t *testing.T, repo *PenjualanRepository, kode string, statusBayar model.StatusBayar) *model.PenjualanHeader {
	t.Helper()
	h, err := repo.Create(context.Background(), &model.PenjualanHeader{
		Kode:        kode,
		Status:      model.StatusSelesai,
		StatusBayar: statusBayar,
		Subtotal:    5000,
		TotalHarga:  5000,
		Items: []model.PenjualanItem{
			{BarangID: 1, NamaBarang: "Beras", Qty: 5, IsiPerSatuan: 1, Harga: 1000, Total: 5000},
		},
	})
	require.NoError(t, err)
	return h
}

func TestPenjualanRepository_CreateAndGetWithItems(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPenjualanRepository(db.DB)

	created := seedPenjualan(t, repo, "PNJ-20250101-001", model.BayarLunas)
	require.NotZero(t, created.ID)

	got, err := repo.GetWithItems(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "PNJ-20250101-001", got.Kode)
	require.Len(t, got.Items, 1)
	assert.Equal(t, created.ID, got.Items[0].HeaderID)
	assert.Equal(t, int64(5000), got.Items[0].Total)
}

func TestPenjualanRepository_GetWithItemsUnknown(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPenjualanRepository(db.DB)

	_, err := repo.GetWithItems(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPenjualanRepository_MarkDeletedOnce(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPenjualanRepository(db.DB)
	ctx := context.Background()

	h := seedPenjualan(t, repo, "PNJ-20250101-001", model.BayarLunas)

	require.NoError(t, repo.MarkDeleted(ctx, h.ID, time.Now()))

	// A second stamp means another writer got there first.
	err := repo.MarkDeleted(ctx, h.ID, time.Now())
	assert.ErrorIs(t, err, ErrConcurrentUpdate)
}

func TestPenjualanRepository_ListExcludesDeleted(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPenjualanRepository(db.DB)
	ctx := context.Background()

	kept := seedPenjualan(t, repo, "PNJ-20250101-001", model.BayarHutang)
	gone := seedPenjualan(t, repo, "PNJ-20250101-002", model.BayarLunas)
	require.NoError(t, repo.MarkDeleted(ctx, gone.ID, time.Now()))

	list, total, err := repo.List(ctx, model.TransaksiFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, kept.ID, list[0].ID)

	hutang := model.BayarHutang
	_, total, err = repo.List(ctx, model.TransaksiFilter{StatusBayar: &hutang})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	lunas := model.BayarLunas
	_, total, err = repo.List(ctx, model.TransaksiFilter{StatusBayar: &lunas})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}
