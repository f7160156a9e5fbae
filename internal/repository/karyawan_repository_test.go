package repository

import (
	"context"
	"testing"

	"github.com/awsembako/backoffice/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKaryawanRepository_CheckInOncePerDay(t *testing.T) {
	db := setupTestDB(t)
	repo := NewKaryawanRepository(db.DB)
	ctx := context.Background()

	k, err := repo.Create(ctx, &model.Karyawan{Nama: "Budi", Jabatan: model.JabatanStaf, Aktif: true})
	require.NoError(t, err)

	first, err := repo.CheckIn(ctx, &model.Absensi{KaryawanID: k.ID, Tanggal: "2025-01-01", Status: model.AbsensiHadir})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	// Same employee, same day: rejected regardless of status.
	_, err = repo.CheckIn(ctx, &model.Absensi{KaryawanID: k.ID, Tanggal: "2025-01-01", Status: model.AbsensiSakit})
	assert.ErrorIs(t, err, ErrSudahAbsen)

	// Next day is fine.
	_, err = repo.CheckIn(ctx, &model.Absensi{KaryawanID: k.ID, Tanggal: "2025-01-02", Status: model.AbsensiIzin})
	require.NoError(t, err)
}

func TestKaryawanRepository_ListAbsensiByMonth(t *testing.T) {
	db := setupTestDB(t)
	repo := NewKaryawanRepository(db.DB)
	ctx := context.Background()

	k, err := repo.Create(ctx, &model.Karyawan{Nama: "Budi", Jabatan: model.JabatanSales, Aktif: true})
	require.NoError(t, err)

	for _, tanggal := range []string{"2025-01-30", "2025-01-31", "2025-02-01"} {
		_, err = repo.CheckIn(ctx, &model.Absensi{KaryawanID: k.ID, Tanggal: tanggal, Status: model.AbsensiHadir})
		require.NoError(t, err)
	}

	januari, err := repo.ListAbsensi(ctx, k.ID, "2025-01")
	require.NoError(t, err)
	require.Len(t, januari, 2)
	assert.Equal(t, "2025-01-30", januari[0].Tanggal)

	all, err := repo.ListAbsensi(ctx, k.ID, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
