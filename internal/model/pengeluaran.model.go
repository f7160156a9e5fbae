package model

import "time"

// Pengeluaran is an operating-expense entry.
type Pengeluaran struct {
	ID         int64     `json:"id"`
	Keterangan string    `json:"keterangan"`
	Jumlah     int64     `json:"jumlah"`
	Tanggal    string    `json:"tanggal"` // YYYY-MM-DD
	CreatedAt  time.Time `json:"created_at"`
}

type PengeluaranFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}
