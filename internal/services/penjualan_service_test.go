package services

import (
	"context"
	"testing"

	"github.com/awsembako/backoffice/internal/model"
	"github.com/awsembako/backoffice/test/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPenjualanService(t *testing.T) (*PenjualanService, *pgFixture) {
	f := setupFixture(t)
	svc := NewPenjualanService(f.db, f.sales, f.barang, f.sequence, f.accounts, f.entries, nil)
	return svc, f
}

func TestCheckout_Validation(t *testing.T) {
	svc, f := setupPenjualanService(t)
	ctx := context.Background()

	barang := helpers.CreateTestBarang(t, f.db, "BRG-001", 10, 1000)
	customerID := int64(1)

	cases := []struct {
		name string
		req  model.CheckoutRequest
		want error
	}{
		{
			name: "no items",
			req:  model.CheckoutRequest{StatusBayar: model.BayarLunas},
			want: ErrItemKosong,
		},
		{
			name: "zero qty",
			req: model.CheckoutRequest{
				StatusBayar: model.BayarLunas,
				Items:       []model.CheckoutItem{{BarangID: barang.ID, Qty: 0}},
			},
			want: ErrInvalidAmount,
		},
		{
			name: "negative diskon",
			req: model.CheckoutRequest{
				StatusBayar: model.BayarLunas,
				Items:       []model.CheckoutItem{{BarangID: barang.ID, Qty: 1, Diskon: -1}},
			},
			want: ErrInvalidAmount,
		},
		{
			name: "unknown status bayar",
			req: model.CheckoutRequest{
				StatusBayar: "CICILAN",
				Items:       []model.CheckoutItem{{BarangID: barang.ID, Qty: 1}},
			},
			want: ErrStatusSalah,
		},
		{
			name: "hutang without customer",
			req: model.CheckoutRequest{
				StatusBayar: model.BayarHutang,
				Items:       []model.CheckoutItem{{BarangID: barang.ID, Qty: 1}},
			},
			want: ErrCustomerWajib,
		},
		{
			name: "lunas underpaid",
			req: model.CheckoutRequest{
				StatusBayar:   model.BayarLunas,
				JumlahDibayar: 500,
				Items:         []model.CheckoutItem{{BarangID: barang.ID, Qty: 1}},
			},
			want: ErrBayarKurang,
		},
		{
			name: "hutang fully paid is lunas",
			req: model.CheckoutRequest{
				CustomerID:    &customerID,
				StatusBayar:   model.BayarHutang,
				JumlahDibayar: 1000,
				Items:         []model.CheckoutItem{{BarangID: barang.ID, Qty: 1}},
			},
			want: ErrStatusSalah,
		},
		{
			name: "unknown barang",
			req: model.CheckoutRequest{
				StatusBayar: model.BayarLunas,
				Items:       []model.CheckoutItem{{BarangID: 404, Qty: 1}},
			},
			want: ErrNotFound,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Checkout(ctx, tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	// Nothing above touched the stock.
	b, err := f.barang.GetByID(ctx, barang.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), b.Stok)
}

func TestCheckout_InactiveBarang(t *testing.T) {
	svc, f := setupPenjualanService(t)
	ctx := context.Background()

	barang := helpers.CreateTestBarang(t, f.db, "BRG-001", 10, 1000)
	require.NoError(t, f.barang.Deactivate(ctx, barang.ID))

	_, err := svc.Checkout(ctx, model.CheckoutRequest{
		StatusBayar:   model.BayarLunas,
		JumlahDibayar: 1000,
		Items:         []model.CheckoutItem{{BarangID: barang.ID, Qty: 1}},
	})
	assert.ErrorIs(t, err, ErrInactive)
}

func TestCheckout_LunasWithChange(t *testing.T) {
	svc, f := setupPenjualanService(t)
	ctx := context.Background()

	barang := helpers.CreateTestBarang(t, f.db, "BRG-001", 10, 1000)

	sale, err := svc.Checkout(ctx, model.CheckoutRequest{
		StatusBayar:   model.BayarLunas,
		DiskonNota:    500,
		JumlahDibayar: 3000,
		Items:         []model.CheckoutItem{{BarangID: barang.ID, Qty: 3, Diskon: 100}},
	})
	require.NoError(t, err)

	// 3*1000 - 100 line discount = 2900, minus 500 nota = 2400.
	assert.Equal(t, int64(2900), sale.Subtotal)
	assert.Equal(t, int64(2400), sale.TotalHarga)
	assert.Equal(t, int64(600), sale.Kembalian)
	assert.Equal(t, model.BayarLunas, sale.StatusBayar)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, int64(2900), sale.Items[0].Total)
}

func TestCheckout_LineDiscountCannotExceedLineTotal(t *testing.T) {
	svc, f := setupPenjualanService(t)
	ctx := context.Background()

	barang := helpers.CreateTestBarang(t, f.db, "BRG-001", 10, 1000)

	_, err := svc.Checkout(ctx, model.CheckoutRequest{
		StatusBayar:   model.BayarLunas,
		JumlahDibayar: 0,
		Items:         []model.CheckoutItem{{BarangID: barang.ID, Qty: 1, Diskon: 2000}},
	})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	// The aborted sale must not leak its stock deduction.
	b, err := f.barang.GetByID(ctx, barang.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), b.Stok)
}

func TestSoftDelete_RequiresCompletedSale(t *testing.T) {
	svc, _ := setupPenjualanService(t)

	_, err := svc.SoftDelete(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}
