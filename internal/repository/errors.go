package repository

import "errors"

var (
	ErrNotFound         = errors.New("data tidak ditemukan")
	ErrInactive         = errors.New("data sudah nonaktif")
	ErrStokKurang       = errors.New("stok tidak cukup")
	ErrSaldoNegatif     = errors.New("saldo tidak boleh negatif")
	ErrSudahAbsen       = errors.New("sudah absen hari ini")
	ErrKodeDuplikat     = errors.New("kode sudah terpakai")
	ErrLockTimeout      = errors.New("antrian penguncian penuh, coba lagi")
	ErrConcurrentUpdate = errors.New("perubahan bersamaan terdeteksi")
)
