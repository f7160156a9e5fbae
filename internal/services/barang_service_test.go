package services

import (
	"context"
	"testing"

	"github.com/awsembako/backoffice/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBarangCreate_Validation(t *testing.T) {
	f := setupFixture(t)
	svc := NewBarangService(f.barang)
	ctx := context.Background()

	cases := []struct {
		name string
		req  model.BarangCreateRequest
	}{
		{"empty kode", model.BarangCreateRequest{Nama: "Beras", IsiPerSatuan: 1}},
		{"empty nama", model.BarangCreateRequest{Kode: "BRG-001", IsiPerSatuan: 1}},
		{"zero isi per satuan", model.BarangCreateRequest{Kode: "BRG-001", Nama: "Beras"}},
		{"negative harga", model.BarangCreateRequest{Kode: "BRG-001", Nama: "Beras", IsiPerSatuan: 1, HargaJual: -1}},
		{"negative stok", model.BarangCreateRequest{Kode: "BRG-001", Nama: "Beras", IsiPerSatuan: 1, Stok: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.req)
			assert.ErrorIs(t, err, ErrInvalidAmount)
		})
	}

	created, err := svc.Create(ctx, model.BarangCreateRequest{
		Kode:         "BRG-001",
		Nama:         "Beras Rojolele",
		Satuan:       "karung",
		IsiPerSatuan: 1,
		HargaBeli:    62000,
		HargaJual:    68000,
		Stok:         40,
		StokMinimal:  5,
	})
	require.NoError(t, err)
	assert.True(t, created.Aktif)
	assert.NotZero(t, created.ID)
}

func TestBarangUpdate_Validation(t *testing.T) {
	f := setupFixture(t)
	svc := NewBarangService(f.barang)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.BarangCreateRequest{
		Kode: "BRG-001", Nama: "Beras", IsiPerSatuan: 1, HargaJual: 1000,
	})
	require.NoError(t, err)

	created.IsiPerSatuan = 0
	_, err = svc.Update(ctx, created)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}
