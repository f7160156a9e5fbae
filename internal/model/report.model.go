package model

// TopProduct is one row of the best-seller report, quantities in base
// units over the report window.
type TopProduct struct {
	BarangID   int64  `json:"barang_id"`
	NamaBarang string `json:"nama_barang"`
	TotalQty   int64  `json:"total_qty"`
	TotalOmzet int64  `json:"total_omzet"`
}

// DailySummary is one day of the 30-day report.
type DailySummary struct {
	Tanggal     string `json:"tanggal"` // YYYY-MM-DD
	Penjualan   int64  `json:"penjualan"`
	Pembelian   int64  `json:"pembelian"`
	Pengeluaran int64  `json:"pengeluaran"`
	Laba        int64  `json:"laba"`
}

// SummaryReport aggregates the last 30 days. MarginPersen is the
// profit margin in percent with two decimal places, already rendered
// for display.
type SummaryReport struct {
	Days             []DailySummary `json:"days"`
	TotalPenjualan   int64          `json:"total_penjualan"`
	TotalPembelian   int64          `json:"total_pembelian"`
	TotalPengeluaran int64          `json:"total_pengeluaran"`
	TotalLaba        int64          `json:"total_laba"`
	MarginPersen     string         `json:"margin_persen"`
}

// StockAlert is the payload published to the alert stream when a sale
// drives an item at or below its minimum stock.
type StockAlert struct {
	BarangID    int64  `json:"barang_id"`
	Kode        string `json:"kode"`
	Nama        string `json:"nama"`
	Stok        int64  `json:"stok"`
	StokMinimal int64  `json:"stok_minimal"`
	KodeNota    string `json:"kode_nota"`
}
