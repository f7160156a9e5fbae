package model

import "time"

// Barang is an inventory item. Stok is counted in base units; satuan
// packaging (e.g. "dus" of IsiPerSatuan units) is resolved to base
// units on every transaction line.
type Barang struct {
	ID           int64     `json:"id"`
	Kode         string    `json:"kode"`
	Nama         string    `json:"nama"`
	Satuan       string    `json:"satuan"`
	IsiPerSatuan int64     `json:"isi_per_satuan"`
	HargaBeli    int64     `json:"harga_beli"`
	HargaJual    int64     `json:"harga_jual"`
	Stok         int64     `json:"stok"`
	StokMinimal  int64     `json:"stok_minimal"`
	Aktif        bool      `json:"aktif"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type BarangFilter struct {
	Keyword  *string // matches kode or nama
	Aktif    *bool
	LowStock bool // stok < stok_minimal
	Limit    int
	Offset   int
}

type BarangCreateRequest struct {
	Kode         string `json:"kode"`
	Nama         string `json:"nama"`
	Satuan       string `json:"satuan"`
	IsiPerSatuan int64  `json:"isi_per_satuan"`
	HargaBeli    int64  `json:"harga_beli"`
	HargaJual    int64  `json:"harga_jual"`
	Stok         int64  `json:"stok"`
	StokMinimal  int64  `json:"stok_minimal"`
}
