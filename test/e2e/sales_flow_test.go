package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/awsembako/backoffice/internal/model"
	"github.com/awsembako/backoffice/internal/queue"
	"github.com/awsembako/backoffice/internal/repository"
	"github.com/awsembako/backoffice/internal/services"
	"github.com/awsembako/backoffice/pkg/pg"
	"github.com/awsembako/backoffice/pkg/redis"
	"github.com/awsembako/backoffice/test/fixtures"
	"github.com/awsembako/backoffice/test/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type TestEnvironment struct {
	DB           *pg.DB
	Redis        *miniredis.Miniredis
	RedisAdapter redis.RedisAdapter
	AlertQueue   *queue.Queue

	BarangRepo    *repository.BarangRepository
	CustomerRepo  *repository.CustomerRepository
	SupplierRepo  *repository.SupplierRepository
	KaryawanRepo  *repository.KaryawanRepository
	LedgerRepo    *repository.LedgerEntryRepository
	AccountRepo   *repository.AccountRepository
	SequenceRepo  *repository.SequenceRepository
	PenjualanRepo *repository.PenjualanRepository
	PembelianRepo *repository.PembelianRepository

	Ledger    *services.LedgerService
	Penjualan *services.PenjualanService
	Pembelian *services.PembelianService
	Mitra     *services.MitraService
	Karyawan  *services.KaryawanService
}

func setupE2EEnvironment(t *testing.T) *TestEnvironment {
	db := helpers.SetupTestDB(t)
	mr, adapter := helpers.SetupTestRedis(t)

	alertQueue, err := queue.NewQueue(adapter, queue.QueueConfig{
		Name:          fmt.Sprintf("test:alerts:%d", time.Now().UnixNano()),
		ConsumerGroup: "test-group",
		ConsumerName:  "test-consumer",
	})
	require.NoError(t, err)

	env := &TestEnvironment{
		DB:           db,
		Redis:        mr,
		RedisAdapter: adapter,
		AlertQueue:   alertQueue,

		BarangRepo:    repository.NewBarangRepository(db),
		CustomerRepo:  repository.NewCustomerRepository(db),
		SupplierRepo:  repository.NewSupplierRepository(db),
		KaryawanRepo:  repository.NewKaryawanRepository(db),
		LedgerRepo:    repository.NewLedgerEntryRepository(db),
		AccountRepo:   repository.NewAccountRepository(db),
		SequenceRepo:  repository.NewSequenceRepository(db),
		PenjualanRepo: repository.NewPenjualanRepository(db),
		PembelianRepo: repository.NewPembelianRepository(db),
	}

	env.Ledger = services.NewLedgerService(db, env.AccountRepo, env.LedgerRepo)
	env.Penjualan = services.NewPenjualanService(db, env.PenjualanRepo, env.BarangRepo, env.SequenceRepo, env.AccountRepo, env.LedgerRepo, alertQueue)
	env.Pembelian = services.NewPembelianService(db, env.PembelianRepo, env.BarangRepo, env.SequenceRepo, env.AccountRepo, env.LedgerRepo, env.SupplierRepo)
	env.Mitra = services.NewMitraService(env.CustomerRepo, env.SupplierRepo, env.Ledger)
	env.Karyawan = services.NewKaryawanService(env.KaryawanRepo, env.Ledger)

	t.Cleanup(func() {
		alertQueue.Stop(time.Second)
		mr.Close()
	})

	return env
}

func TestSalesFlow_HutangLifecycle(t *testing.T) {
	env := setupE2EEnvironment(t)
	ctx := context.Background()

	barang := helpers.CreateTestBarang(t, env.DB, "BRG-001", 50, 10000)
	customer := helpers.CreateTestCustomer(t, env.DB, "Warung Bu Sri", 0)

	// Debt-financed sale: 5 units, 20000 down.
	sale, err := env.Penjualan.Checkout(ctx, fixtures.CheckoutHutang(customer.ID, barang.ID, 5, 20000))
	require.NoError(t, err)

	wantPrefix := "PNJ-" + time.Now().Format("20060102") + "-"
	assert.Equal(t, wantPrefix+"001", sale.Kode)
	assert.Equal(t, model.StatusSelesai, sale.Status)
	assert.Equal(t, int64(50000), sale.TotalHarga)

	updated, err := env.BarangRepo.GetByID(ctx, barang.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(45), updated.Stok)

	piutang, err := env.Ledger.Balance(ctx, model.AccountCustomer, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(30000), piutang)

	entries, _, err := env.Mitra.RiwayatLedger(ctx, model.AccountCustomer, customer.ID, model.LedgerFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, model.EntryDebtAdjustment, entries[0].Kind)
	assert.Equal(t, int64(30000), entries[0].Amount)
	assert.Equal(t, "Penjualan "+sale.Kode, entries[0].Note)

	// Second sale on the same day continues the sequence.
	sale2, err := env.Penjualan.Checkout(ctx, fixtures.CheckoutTunai(barang.ID, 1, 10000))
	require.NoError(t, err)
	assert.Equal(t, wantPrefix+"002", sale2.Kode)

	// Overpayment settles the receivable and reports change due.
	paid, err := env.Mitra.BayarPiutang(ctx, customer.ID, 40000)
	require.NoError(t, err)
	assert.Equal(t, int64(30000), paid.Entry.Amount)
	assert.Equal(t, int64(10000), paid.Kembalian)
	assert.Equal(t, int64(0), paid.BalanceAfter)

	// Cancelling the sale restocks but cannot take the settled
	// receivable below zero.
	deleted, err := env.Penjualan.SoftDelete(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDibatalkan, deleted.Status)
	require.NotNil(t, deleted.DeletedAt)

	restocked, err := env.BarangRepo.GetByID(ctx, barang.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(49), restocked.Stok)

	piutang, err = env.Ledger.Balance(ctx, model.AccountCustomer, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), piutang)

	// Repeating the delete is a no-op.
	again, err := env.Penjualan.SoftDelete(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(49), mustStok(t, env, ctx, barang.ID))
	assert.NotNil(t, again.DeletedAt)
}

func TestSalesFlow_ChecksRollBackAtomically(t *testing.T) {
	env := setupE2EEnvironment(t)
	ctx := context.Background()

	barang := helpers.CreateTestBarang(t, env.DB, "BRG-001", 3, 10000)
	customer := helpers.CreateTestCustomer(t, env.DB, "Warung Bu Sri", 0)

	// Second line exceeds stock; the first line's deduction must not
	// survive the rollback.
	_, err := env.Penjualan.Checkout(ctx, model.CheckoutRequest{
		CustomerID:  &customer.ID,
		StatusBayar: model.BayarHutang,
		Items: []model.CheckoutItem{
			{BarangID: barang.ID, Qty: 2},
			{BarangID: barang.ID, Qty: 2},
		},
	})
	require.ErrorIs(t, err, services.ErrStokKurang)

	assert.Equal(t, int64(3), mustStok(t, env, ctx, barang.ID))
	piutang, err := env.Ledger.Balance(ctx, model.AccountCustomer, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), piutang)

	// A failed attempt leaves no gap in the daily sequence.
	sale, err := env.Penjualan.Checkout(ctx, fixtures.CheckoutTunai(barang.ID, 1, 10000))
	require.NoError(t, err)
	assert.Equal(t, "PNJ-"+time.Now().Format("20060102")+"-001", sale.Kode)
}

func TestSalesFlow_LowStockAlertPublished(t *testing.T) {
	env := setupE2EEnvironment(t)
	ctx := context.Background()

	// StokMinimal is 2 in the fixture; selling down to 2 must alert.
	barang := helpers.CreateTestBarang(t, env.DB, "BRG-001", 5, 10000)

	var got model.StockAlert
	received := make(chan struct{}, 1)
	err := env.AlertQueue.Consume(func(ctx context.Context, msg *queue.Message) error {
		if err := json.Unmarshal(msg.Data, &got); err != nil {
			return err
		}
		received <- struct{}{}
		return nil
	})
	require.NoError(t, err)

	sale, err := env.Penjualan.Checkout(ctx, fixtures.CheckoutTunai(barang.ID, 3, 30000))
	require.NoError(t, err)

	select {
	case <-received:
	case <-time.After(5 * time.Second):
		t.Fatal("no low-stock alert received")
	}
	assert.Equal(t, barang.ID, got.BarangID)
	assert.Equal(t, int64(2), got.Stok)
	assert.Equal(t, sale.Kode, got.KodeNota)
}

func TestPurchaseFlow_HutangLifecycle(t *testing.T) {
	env := setupE2EEnvironment(t)
	ctx := context.Background()

	barang := helpers.CreateTestBarang(t, env.DB, "BRG-001", 10, 10000)
	supplier := helpers.CreateTestSupplier(t, env.DB, "PT Grosir Jaya", 0)

	purchase, err := env.Pembelian.Create(ctx, fixtures.PurchaseHutang(supplier.ID, barang.ID, 20, 5000, 0))
	require.NoError(t, err)
	assert.Equal(t, "PBL-"+time.Now().Format("20060102")+"-001", purchase.Kode)
	assert.Equal(t, int64(100000), purchase.TotalHarga)

	assert.Equal(t, int64(30), mustStok(t, env, ctx, barang.ID))

	hutang, err := env.Ledger.Balance(ctx, model.AccountSupplier, supplier.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100000), hutang)

	// Payment above the outstanding amount is capped.
	paid, err := env.Pembelian.PayHeader(ctx, purchase.ID, 120000)
	require.NoError(t, err)
	assert.Equal(t, int64(100000), paid.Entry.Amount)
	assert.Equal(t, int64(20000), paid.Kembalian)

	settled, err := env.Pembelian.Get(ctx, purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BayarLunas, settled.StatusBayar)
	assert.Equal(t, int64(100000), settled.JumlahDibayar)

	hutang, err = env.Ledger.Balance(ctx, model.AccountSupplier, supplier.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), hutang)
}

func TestPurchaseFlow_RecalculateRepairsDrift(t *testing.T) {
	env := setupE2EEnvironment(t)
	ctx := context.Background()

	barang := helpers.CreateTestBarang(t, env.DB, "BRG-001", 0, 10000)
	supplier := helpers.CreateTestSupplier(t, env.DB, "PT Grosir Jaya", 0)

	_, err := env.Pembelian.Create(ctx, fixtures.PurchaseHutang(supplier.ID, barang.ID, 10, 5000, 20000))
	require.NoError(t, err)

	// Corrupt the stored balance to simulate drift.
	err = env.DB.Write(ctx).Table("suppliers").Where("id = ?", supplier.ID).Update("hutang", 999).Error
	require.NoError(t, err)

	reports, err := env.Pembelian.RecalculateAllSupplierDebt(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.True(t, reports[0].Adjusted)
	assert.Equal(t, int64(999), reports[0].OldHutang)
	assert.Equal(t, int64(30000), reports[0].NewHutang)

	hutang, err := env.Ledger.Balance(ctx, model.AccountSupplier, supplier.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(30000), hutang)
}

func TestEmployeeLoanFlow(t *testing.T) {
	env := setupE2EEnvironment(t)
	ctx := context.Background()

	karyawan := helpers.CreateTestKaryawan(t, env.DB, "Budi", "SALES", 2500000)

	loan, err := env.Karyawan.Pinjam(ctx, karyawan.ID, 1000, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), loan.BalanceAfter)

	paid, err := env.Karyawan.BayarPinjaman(ctx, karyawan.ID, 400, "")
	require.NoError(t, err)
	assert.Equal(t, int64(600), paid.BalanceAfter)

	// Overpayment settles and reports change.
	paid, err = env.Karyawan.BayarPinjaman(ctx, karyawan.ID, 900, "")
	require.NoError(t, err)
	assert.Equal(t, int64(600), paid.Entry.Amount)
	assert.Equal(t, int64(300), paid.Kembalian)
	assert.Equal(t, int64(0), paid.BalanceAfter)

	entries, _, err := env.Karyawan.RiwayatPinjaman(ctx, karyawan.ID, model.LedgerFilter{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func mustStok(t *testing.T, env *TestEnvironment, ctx context.Context, barangID int64) int64 {
	t.Helper()
	b, err := env.BarangRepo.GetByID(ctx, barangID)
	require.NoError(t, err)
	return b.Stok
}
