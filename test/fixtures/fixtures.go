package fixtures

import (
	"github.com/awsembako/backoffice/internal/model"
)

var (
	TestBarangBeras = model.Barang{
		Kode:         "BRG-001",
		Nama:         "Beras Rojolele 5kg",
		Satuan:       "karung",
		IsiPerSatuan: 1,
		HargaBeli:    62000,
		HargaJual:    68000,
		Stok:         40,
		StokMinimal:  5,
		Aktif:        true,
	}

	TestBarangMinyak = model.Barang{
		Kode:         "BRG-002",
		Nama:         "Minyak Goreng 1L",
		Satuan:       "dus",
		IsiPerSatuan: 12,
		HargaBeli:    14000,
		HargaJual:    16500,
		Stok:         240,
		StokMinimal:  24,
		Aktif:        true,
	}

	TestCustomerWarung = model.Customer{
		Nama:    "Warung Bu Sri",
		Telepon: "081234567890",
		Alamat:  "Jl. Melati No. 3",
		Aktif:   true,
	}

	TestSupplierGrosir = model.Supplier{
		Nama:    "PT Grosir Jaya",
		Telepon: "021555667",
		Alamat:  "Kawasan Industri Blok C2",
		Aktif:   true,
	}

	TestKaryawanSales = model.Karyawan{
		Nama:    "Budi Santoso",
		Jabatan: model.JabatanSales,
		Gaji:    2500000,
		Aktif:   true,
	}
)

func CheckoutTunai(barangID, qty, jumlahDibayar int64) model.CheckoutRequest {
	return model.CheckoutRequest{
		StatusBayar:   model.BayarLunas,
		JumlahDibayar: jumlahDibayar,
		Items: []model.CheckoutItem{
			{BarangID: barangID, Qty: qty},
		},
	}
}

func CheckoutHutang(customerID, barangID, qty, jumlahDibayar int64) model.CheckoutRequest {
	return model.CheckoutRequest{
		CustomerID:    &customerID,
		StatusBayar:   model.BayarHutang,
		JumlahDibayar: jumlahDibayar,
		Items: []model.CheckoutItem{
			{BarangID: barangID, Qty: qty},
		},
	}
}

func PurchaseLunas(supplierID, barangID, qty, harga int64) model.PurchaseRequest {
	return model.PurchaseRequest{
		SupplierID:    supplierID,
		StatusBayar:   model.BayarLunas,
		JumlahDibayar: qty * harga,
		Items: []model.PurchaseItem{
			{BarangID: barangID, Qty: qty, Harga: harga},
		},
	}
}

func PurchaseHutang(supplierID, barangID, qty, harga, jumlahDibayar int64) model.PurchaseRequest {
	return model.PurchaseRequest{
		SupplierID:    supplierID,
		StatusBayar:   model.BayarHutang,
		JumlahDibayar: jumlahDibayar,
		Items: []model.PurchaseItem{
			{BarangID: barangID, Qty: qty, Harga: harga},
		},
	}
}
