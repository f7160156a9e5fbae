package model

import "time"

type Jabatan string

const (
	JabatanStaf  Jabatan = "STAF"
	JabatanSales Jabatan = "SALES"
)

// Karyawan is an employee. TotalPinjaman is the outstanding loan and
// advance balance, mutated only through the ledger service.
type Karyawan struct {
	ID            int64     `json:"id"`
	Nama          string    `json:"nama"`
	Jabatan       Jabatan   `json:"jabatan"`
	Telepon       string    `json:"telepon"`
	Gaji          int64     `json:"gaji"`
	TotalPinjaman int64     `json:"total_pinjaman"`
	Aktif         bool      `json:"aktif"`
	CreatedAt     time.Time `json:"created_at"`
}

type AbsensiStatus string

const (
	AbsensiHadir AbsensiStatus = "HADIR"
	AbsensiIzin  AbsensiStatus = "IZIN"
	AbsensiSakit AbsensiStatus = "SAKIT"
)

// Absensi records one attendance entry per employee per calendar day.
type Absensi struct {
	ID         int64         `json:"id"`
	KaryawanID int64         `json:"karyawan_id"`
	Tanggal    string        `json:"tanggal"` // YYYY-MM-DD
	Status     AbsensiStatus `json:"status"`
	Keterangan string        `json:"keterangan"`
	CreatedAt  time.Time     `json:"created_at"`
}
