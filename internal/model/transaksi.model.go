package model

import "time"

type StatusTransaksi string

const (
	StatusKeranjang  StatusTransaksi = "KERANJANG"
	StatusSelesai    StatusTransaksi = "SELESAI"
	StatusDibatalkan StatusTransaksi = "DIBATALKAN"
)

type StatusBayar string

const (
	BayarLunas  StatusBayar = "LUNAS"
	BayarHutang StatusBayar = "HUTANG"
)

// PenjualanHeader owns its items exclusively. Totals are always a pure
// function of the items plus the header-level discount and payment
// fields, recomputed on every mutation.
type PenjualanHeader struct {
	ID            int64           `json:"id"`
	Kode          string          `json:"kode"`
	CustomerID    *int64          `json:"customer_id"`
	SalesID       *int64          `json:"sales_id"` // karyawan with jabatan SALES
	Status        StatusTransaksi `json:"status"`
	StatusBayar   StatusBayar     `json:"status_bayar"`
	Subtotal      int64           `json:"subtotal"`
	DiskonNota    int64           `json:"diskon_nota"`
	TotalHarga    int64           `json:"total_harga"`
	JumlahDibayar int64           `json:"jumlah_dibayar"`
	Kembalian     int64           `json:"kembalian"`
	Items         []PenjualanItem `json:"items"`
	CreatedAt     time.Time       `json:"created_at"`
	DeletedAt     *time.Time      `json:"deleted_at,omitempty"`
}

type PenjualanItem struct {
	ID           int64  `json:"id"`
	HeaderID     int64  `json:"header_id"`
	BarangID     int64  `json:"barang_id"`
	NamaBarang   string `json:"nama_barang"`
	Qty          int64  `json:"qty"`
	IsiPerSatuan int64  `json:"isi_per_satuan"`
	Harga        int64  `json:"harga"`
	Diskon       int64  `json:"diskon"`
	Total        int64  `json:"total"`
}

// QtyBaseUnits is the stock effect of one line: packaging quantity
// times base units per package.
func (i PenjualanItem) QtyBaseUnits() int64 { return i.Qty * i.IsiPerSatuan }

type PembelianHeader struct {
	ID            int64           `json:"id"`
	Kode          string          `json:"kode"`
	SupplierID    int64           `json:"supplier_id"`
	Status        StatusTransaksi `json:"status"`
	StatusBayar   StatusBayar     `json:"status_bayar"`
	Subtotal      int64           `json:"subtotal"`
	DiskonNota    int64           `json:"diskon_nota"`
	TotalHarga    int64           `json:"total_harga"`
	JumlahDibayar int64           `json:"jumlah_dibayar"`
	Kembalian     int64           `json:"kembalian"`
	Items         []PembelianItem `json:"items"`
	CreatedAt     time.Time       `json:"created_at"`
	DeletedAt     *time.Time      `json:"deleted_at,omitempty"`
}

type PembelianItem struct {
	ID           int64  `json:"id"`
	HeaderID     int64  `json:"header_id"`
	BarangID     int64  `json:"barang_id"`
	NamaBarang   string `json:"nama_barang"`
	Qty          int64  `json:"qty"`
	IsiPerSatuan int64  `json:"isi_per_satuan"`
	Harga        int64  `json:"harga"`
	Total        int64  `json:"total"`
}

func (i PembelianItem) QtyBaseUnits() int64 { return i.Qty * i.IsiPerSatuan }

// Outstanding is the unpaid remainder of a debt-financed header,
// floored at zero.
func (h PenjualanHeader) Outstanding() int64 {
	if out := h.TotalHarga - h.JumlahDibayar; out > 0 {
		return out
	}
	return 0
}

func (h PembelianHeader) Outstanding() int64 {
	if out := h.TotalHarga - h.JumlahDibayar; out > 0 {
		return out
	}
	return 0
}

type TransaksiFilter struct {
	Status      *StatusTransaksi
	StatusBayar *StatusBayar
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

type CheckoutItem struct {
	BarangID int64 `json:"barang_id"`
	Qty      int64 `json:"qty"`
	Diskon   int64 `json:"diskon"`
}

type CheckoutRequest struct {
	CustomerID    *int64         `json:"customer_id"`
	SalesID       *int64         `json:"sales_id"`
	StatusBayar   StatusBayar    `json:"status_bayar"`
	DiskonNota    int64          `json:"diskon_nota"`
	JumlahDibayar int64          `json:"jumlah_dibayar"`
	Items         []CheckoutItem `json:"items"`
}

type PurchaseItem struct {
	BarangID int64 `json:"barang_id"`
	Qty      int64 `json:"qty"`
	Harga    int64 `json:"harga"`
}

type PurchaseRequest struct {
	SupplierID    int64          `json:"supplier_id"`
	StatusBayar   StatusBayar    `json:"status_bayar"`
	DiskonNota    int64          `json:"diskon_nota"`
	JumlahDibayar int64          `json:"jumlah_dibayar"`
	Items         []PurchaseItem `json:"items"`
}
