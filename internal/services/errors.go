package services

import (
	"context"
	"errors"
	"strings"

	"github.com/awsembako/backoffice/internal/repository"
)

var (
	ErrNotFound       = errors.New("data tidak ditemukan")
	ErrInactive       = errors.New("data sudah nonaktif")
	ErrInvalidAmount  = errors.New("jumlah harus lebih dari nol")
	ErrSaldoNegatif   = errors.New("saldo tidak boleh negatif")
	ErrStokKurang     = errors.New("stok tidak cukup")
	ErrBayarKurang    = errors.New("pembayaran kurang dari total")
	ErrItemKosong     = errors.New("item transaksi kosong")
	ErrCustomerWajib  = errors.New("customer wajib untuk transaksi hutang")
	ErrSudahAbsen     = errors.New("sudah absen hari ini")
	ErrStatusSalah    = errors.New("status transaksi tidak valid")
	ErrLockTimeout    = errors.New("sistem sibuk, silakan coba lagi")
	ErrLoginGagal     = errors.New("username atau password salah")
	ErrPasscodeSalah  = errors.New("kode otentikasi salah")
	ErrPasscodeWajib  = errors.New("kode otentikasi wajib diisi")
)

// mapRepoErr translates repository sentinels into the service
// taxonomy so handlers only ever switch on service errors.
func mapRepoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrInactive):
		return ErrInactive
	case errors.Is(err, repository.ErrStokKurang):
		return ErrStokKurang
	case errors.Is(err, repository.ErrSaldoNegatif):
		return ErrSaldoNegatif
	case errors.Is(err, repository.ErrSudahAbsen):
		return ErrSudahAbsen
	case isLockTimeout(err):
		return ErrLockTimeout
	}
	return err
}

// isLockTimeout detects both postgres lock_timeout expiry (SQLSTATE
// 55P03) and a transaction that ran out of its context budget. Both
// are retryable for the caller.
func isLockTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "55P03") || strings.Contains(msg, "lock timeout") || strings.Contains(msg, "canceling statement due to lock timeout")
}
