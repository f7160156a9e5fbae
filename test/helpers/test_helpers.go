package helpers

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/awsembako/backoffice/internal/repository"
	"github.com/awsembako/backoffice/pkg/pg"
	"github.com/awsembako/backoffice/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func SetupTestDB(t *testing.T) *pg.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&repository.UserEntity{},
		&repository.BarangEntity{},
		&repository.CustomerEntity{},
		&repository.SupplierEntity{},
		&repository.KaryawanEntity{},
		&repository.AbsensiEntity{},
		&repository.LedgerEntryEntity{},
		&repository.PenjualanHeaderEntity{},
		&repository.PenjualanItemEntity{},
		&repository.PembelianHeaderEntity{},
		&repository.PembelianItemEntity{},
		&repository.PengeluaranEntity{},
	)
	require.NoError(t, err)

	pgDB := &pg.DB{}
	pgDBValue := reflect.ValueOf(pgDB).Elem()

	readField := pgDBValue.FieldByName("read")
	writeField := pgDBValue.FieldByName("write")

	readField = reflect.NewAt(readField.Type(), readField.Addr().UnsafePointer()).Elem()
	writeField = reflect.NewAt(writeField.Type(), writeField.Addr().UnsafePointer()).Elem()

	readField.Set(reflect.ValueOf(db))
	writeField.Set(reflect.ValueOf(db))

	return pgDB
}

func SetupTestRedis(t *testing.T) (*miniredis.Miniredis, redis.RedisAdapter) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	// Unique connection name per test; the adapter registry caches by
	// name.
	connName := fmt.Sprintf("test-%d", time.Now().UnixNano())
	adapter, err := redis.NewRedisAdapter(connName, "", &goredis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	require.NoError(t, err)

	return mr, adapter
}

func CreateTestBarang(t *testing.T, db *pg.DB, kode string, stok, hargaJual int64) *repository.BarangEntity {
	ctx := context.Background()
	b := &repository.BarangEntity{
		Kode:         kode,
		Nama:         "Barang " + kode,
		Satuan:       "dus",
		IsiPerSatuan: 1,
		HargaBeli:    hargaJual / 2,
		HargaJual:    hargaJual,
		Stok:         stok,
		StokMinimal:  2,
		Aktif:        true,
	}
	err := db.Write(ctx).Create(b).Error
	require.NoError(t, err)
	return b
}

func CreateTestCustomer(t *testing.T, db *pg.DB, nama string, piutang int64) *repository.CustomerEntity {
	ctx := context.Background()
	c := &repository.CustomerEntity{
		Nama:    nama,
		Piutang: piutang,
		Aktif:   true,
	}
	err := db.Write(ctx).Create(c).Error
	require.NoError(t, err)
	return c
}

func CreateTestSupplier(t *testing.T, db *pg.DB, nama string, hutang int64) *repository.SupplierEntity {
	ctx := context.Background()
	s := &repository.SupplierEntity{
		Nama:   nama,
		Hutang: hutang,
		Aktif:  true,
	}
	err := db.Write(ctx).Create(s).Error
	require.NoError(t, err)
	return s
}

func CreateTestKaryawan(t *testing.T, db *pg.DB, nama, jabatan string, gaji int64) *repository.KaryawanEntity {
	ctx := context.Background()
	k := &repository.KaryawanEntity{
		Nama:    nama,
		Jabatan: jabatan,
		Gaji:    gaji,
		Aktif:   true,
	}
	err := db.Write(ctx).Create(k).Error
	require.NoError(t, err)
	return k
}

func WaitForCondition(t *testing.T, timeout time.Duration, condition func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func AssertEventually(t *testing.T, timeout time.Duration, condition func() bool, msg string) {
	if !WaitForCondition(t, timeout, condition) {
		t.Fatal(msg)
	}
}

func ContextWithTimeout(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func Ptr[T any](v T) *T {
	return &v
}
