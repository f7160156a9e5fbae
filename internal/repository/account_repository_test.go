package repository

import (
	"context"
	"testing"

	"github.com/awsembako/backoffice/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository_LockAndSetBalance(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepository(db.DB)
	ctx := context.Background()

	customer := &CustomerEntity{Nama: "Warung Bu Sri", Piutang: 500, Aktif: true}
	require.NoError(t, db.rawDB.Create(customer).Error)

	balance, err := repo.LockBalance(ctx, model.AccountCustomer, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(500), balance)

	require.NoError(t, repo.SetBalance(ctx, model.AccountCustomer, customer.ID, 1200))

	balance, err = repo.GetBalance(ctx, model.AccountCustomer, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1200), balance)
}

func TestAccountRepository_EachKindTargetsItsOwnTable(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepository(db.DB)
	ctx := context.Background()

	customer := &CustomerEntity{Nama: "A", Piutang: 10, Aktif: true}
	supplier := &SupplierEntity{Nama: "B", Hutang: 20, Aktif: true}
	karyawan := &KaryawanEntity{Nama: "C", Jabatan: "STAF", TotalPinjaman: 30, Aktif: true}
	require.NoError(t, db.rawDB.Create(customer).Error)
	require.NoError(t, db.rawDB.Create(supplier).Error)
	require.NoError(t, db.rawDB.Create(karyawan).Error)

	for _, tc := range []struct {
		kind model.AccountKind
		id   int64
		want int64
	}{
		{model.AccountCustomer, customer.ID, 10},
		{model.AccountSupplier, supplier.ID, 20},
		{model.AccountEmployee, karyawan.ID, 30},
	} {
		got, err := repo.GetBalance(ctx, tc.kind, tc.id)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, string(tc.kind))
	}
}

func TestAccountRepository_SetBalanceRejectsNegative(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepository(db.DB)

	customer := &CustomerEntity{Nama: "Warung", Aktif: true}
	require.NoError(t, db.rawDB.Create(customer).Error)

	err := repo.SetBalance(context.Background(), model.AccountCustomer, customer.ID, -1)
	assert.ErrorIs(t, err, ErrSaldoNegatif)
}

func TestAccountRepository_LockBalanceInactiveOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepository(db.DB)

	customer := &CustomerEntity{Nama: "Tutup", Aktif: false}
	require.NoError(t, db.rawDB.Create(customer).Error)

	_, err := repo.LockBalance(context.Background(), model.AccountCustomer, customer.ID)
	assert.ErrorIs(t, err, ErrInactive)
}

func TestAccountRepository_UnknownOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAccountRepository(db.DB)

	_, err := repo.LockBalance(context.Background(), model.AccountCustomer, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.SetBalance(context.Background(), model.AccountKind("UNKNOWN"), 1, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}
