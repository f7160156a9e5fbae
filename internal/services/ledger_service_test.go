package services

import (
	"context"
	"testing"

	"github.com/awsembako/backoffice/internal/model"
	"github.com/awsembako/backoffice/internal/repository"
	"github.com/awsembako/backoffice/pkg/pg"
	"github.com/awsembako/backoffice/test/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLedgerService(t *testing.T) (*LedgerService, *pgFixture) {
	f := setupFixture(t)
	return NewLedgerService(f.db, f.accounts, f.entries), f
}

func TestLedgerService_LoanThenOverpay(t *testing.T) {
	svc, f := setupLedgerService(t)
	ctx := context.Background()

	k := helpers.CreateTestKaryawan(t, f.db, "Budi", "STAF", 2000000)

	loan, err := svc.Disburse(ctx, model.AccountEmployee, k.ID, 1000, "Pinjaman karyawan")
	require.NoError(t, err)
	assert.Equal(t, int64(0), loan.BalanceBefore)
	assert.Equal(t, int64(1000), loan.BalanceAfter)
	assert.Equal(t, model.EntryLoan, loan.Entry.Kind)

	paid, err := svc.Pay(ctx, model.AccountEmployee, k.ID, 400, "")
	require.NoError(t, err)
	assert.Equal(t, int64(600), paid.BalanceAfter)
	assert.Equal(t, int64(0), paid.Kembalian)

	// 900 against 600 outstanding: 600 applied, 300 back as change,
	// and the entry records the effective amount.
	paid, err = svc.Pay(ctx, model.AccountEmployee, k.ID, 900, "")
	require.NoError(t, err)
	assert.Equal(t, int64(600), paid.Entry.Amount)
	assert.Equal(t, int64(300), paid.Kembalian)
	assert.Equal(t, int64(0), paid.BalanceAfter)

	balance, err := svc.Balance(ctx, model.AccountEmployee, k.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)

	entries, total, err := svc.Entries(ctx, model.LedgerFilter{
		OwnerKind: helpers.Ptr(model.AccountEmployee),
		OwnerID:   &k.ID,
		Limit:     10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, entries, 3)
}

func TestLedgerService_RejectsNonPositiveAmounts(t *testing.T) {
	svc, f := setupLedgerService(t)
	ctx := context.Background()

	k := helpers.CreateTestKaryawan(t, f.db, "Budi", "STAF", 0)

	_, err := svc.Disburse(ctx, model.AccountEmployee, k.ID, 0, "")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.Pay(ctx, model.AccountEmployee, k.ID, -5, "")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.EditEntryAmount(ctx, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestLedgerService_EditEntryAmountPatchesByDifference(t *testing.T) {
	svc, f := setupLedgerService(t)
	ctx := context.Background()

	k := helpers.CreateTestKaryawan(t, f.db, "Budi", "STAF", 0)

	loan, err := svc.Disburse(ctx, model.AccountEmployee, k.ID, 1000, "")
	require.NoError(t, err)

	// Raising the loan raises the balance by the difference.
	edited, err := svc.EditEntryAmount(ctx, loan.Entry.ID, 1500)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), edited.BalanceAfter)
	assert.Equal(t, int64(1500), edited.Entry.Amount)

	paid, err := svc.Pay(ctx, model.AccountEmployee, k.ID, 500, "")
	require.NoError(t, err)

	// Raising a payment lowers the balance.
	edited, err = svc.EditEntryAmount(ctx, paid.Entry.ID, 700)
	require.NoError(t, err)
	assert.Equal(t, int64(800), edited.BalanceAfter)

	// An edit that would push the balance negative is rejected.
	_, err = svc.EditEntryAmount(ctx, paid.Entry.ID, 2000)
	assert.ErrorIs(t, err, ErrSaldoNegatif)

	// The rejected edit changed nothing.
	balance, err := svc.Balance(ctx, model.AccountEmployee, k.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(800), balance)
}

func TestLedgerService_EditUnknownEntry(t *testing.T) {
	svc, _ := setupLedgerService(t)

	_, err := svc.EditEntryAmount(context.Background(), 404, 100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLedgerService_InactiveOwner(t *testing.T) {
	svc, f := setupLedgerService(t)
	ctx := context.Background()

	k := helpers.CreateTestKaryawan(t, f.db, "Budi", "STAF", 0)
	require.NoError(t, f.db.Write(ctx).Table("karyawan").Where("id = ?", k.ID).Update("aktif", false).Error)

	_, err := svc.Disburse(ctx, model.AccountEmployee, k.ID, 100, "")
	assert.ErrorIs(t, err, ErrInactive)
}

// pgFixture bundles the sqlite-backed repositories most service tests
// need.
type pgFixture struct {
	db        *pg.DB
	accounts  *repository.AccountRepository
	entries   *repository.LedgerEntryRepository
	barang    *repository.BarangRepository
	sequence  *repository.SequenceRepository
	sales     *repository.PenjualanRepository
	purchases *repository.PembelianRepository
	suppliers *repository.SupplierRepository
	customers *repository.CustomerRepository
	karyawan  *repository.KaryawanRepository
	users     *repository.UserRepository
}

func setupFixture(t *testing.T) *pgFixture {
	db := helpers.SetupTestDB(t)
	return &pgFixture{
		db:        db,
		accounts:  repository.NewAccountRepository(db),
		entries:   repository.NewLedgerEntryRepository(db),
		barang:    repository.NewBarangRepository(db),
		sequence:  repository.NewSequenceRepository(db),
		sales:     repository.NewPenjualanRepository(db),
		purchases: repository.NewPembelianRepository(db),
		suppliers: repository.NewSupplierRepository(db),
		customers: repository.NewCustomerRepository(db),
		karyawan:  repository.NewKaryawanRepository(db),
		users:     repository.NewUserRepository(db),
	}
}
