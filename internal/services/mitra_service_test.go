package services

import (
	"context"
	"testing"

	"github.com/awsembako/backoffice/internal/model"
	"github.com/awsembako/backoffice/test/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMitraService(t *testing.T) (*MitraService, *pgFixture) {
	f := setupFixture(t)
	ledger := NewLedgerService(f.db, f.accounts, f.entries)
	return NewMitraService(f.customers, f.suppliers, ledger), f
}

func TestMitraCreate_ForcesCleanState(t *testing.T) {
	svc, _ := setupMitraService(t)
	ctx := context.Background()

	_, err := svc.CreateCustomer(ctx, &model.Customer{})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	// Balances are never seeded through create.
	customer, err := svc.CreateCustomer(ctx, &model.Customer{Nama: "Warung", Piutang: 99999, Aktif: false})
	require.NoError(t, err)
	assert.True(t, customer.Aktif)
	assert.Equal(t, int64(0), customer.Piutang)

	supplier, err := svc.CreateSupplier(ctx, &model.Supplier{Nama: "PT Grosir", Hutang: 5000})
	require.NoError(t, err)
	assert.Equal(t, int64(0), supplier.Hutang)
}

func TestMitraBayarPiutang(t *testing.T) {
	svc, f := setupMitraService(t)
	ctx := context.Background()

	customer := helpers.CreateTestCustomer(t, f.db, "Warung", 10000)

	paid, err := svc.BayarPiutang(ctx, customer.ID, 4000)
	require.NoError(t, err)
	assert.Equal(t, int64(6000), paid.BalanceAfter)
	assert.Equal(t, "Pembayaran piutang", paid.Entry.Note)
}

func TestMitraRiwayatLedger_ScopesToOwner(t *testing.T) {
	svc, f := setupMitraService(t)
	ctx := context.Background()

	a := helpers.CreateTestCustomer(t, f.db, "A", 1000)
	b := helpers.CreateTestCustomer(t, f.db, "B", 1000)

	_, err := svc.BayarPiutang(ctx, a.ID, 500)
	require.NoError(t, err)
	_, err = svc.BayarPiutang(ctx, b.ID, 200)
	require.NoError(t, err)

	entries, total, err := svc.RiwayatLedger(ctx, model.AccountCustomer, a.ID, model.LedgerFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, entries, 1)
	assert.Equal(t, a.ID, entries[0].OwnerID)
}
