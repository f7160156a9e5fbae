package repository

import (
	"context"
	"errors"

	"github.com/awsembako/backoffice/internal/model"
	"github.com/awsembako/backoffice/pkg/pg"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AccountRepository is the single mutation path for every named
// balance: customer piutang, supplier hutang, employee total_pinjaman.
// The three owner tables differ only in balance column, so the closed
// AccountKind variant selects the table and the locking and
// non-negativity rules are enforced in exactly one place.
type AccountRepository struct {
	*pg.DB
}

func NewAccountRepository(db *pg.DB) *AccountRepository {
	return &AccountRepository{
		db,
	}
}

type accountRow struct {
	ID      int64
	Nama    string
	Balance int64
	Aktif   bool
}

func accountTable(kind model.AccountKind) (table string, column string) {
	switch kind {
	case model.AccountCustomer:
		return "customers", "piutang"
	case model.AccountSupplier:
		return "suppliers", "hutang"
	case model.AccountEmployee:
		return "karyawan", "total_pinjaman"
	}
	return "", ""
}

// LockBalance loads the owner row FOR UPDATE. Must run inside a
// transaction; the row lock serializes concurrent adjustments to the
// same owner between the read and the write.
func (r *AccountRepository) LockBalance(ctx context.Context, kind model.AccountKind, ownerID int64) (int64, error) {
	table, column := accountTable(kind)
	if table == "" {
		return 0, ErrNotFound
	}

	var row accountRow
	err := r.Write(ctx).
		Table(table).
		Select("id, nama, "+column+" AS balance, aktif").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", ownerID).
		Take(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	if !row.Aktif {
		return 0, ErrInactive
	}
	return row.Balance, nil
}

// SetBalance writes the already-validated balance. Callers must hold
// the row lock from LockBalance in the same transaction.
func (r *AccountRepository) SetBalance(ctx context.Context, kind model.AccountKind, ownerID int64, balance int64) error {
	if balance < 0 {
		return ErrSaldoNegatif
	}
	table, column := accountTable(kind)
	if table == "" {
		return ErrNotFound
	}

	result := r.Write(ctx).
		Table(table).
		Where("id = ?", ownerID).
		Update(column, balance)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConcurrentUpdate
	}
	return nil
}

func (r *AccountRepository) GetBalance(ctx context.Context, kind model.AccountKind, ownerID int64) (int64, error) {
	table, column := accountTable(kind)
	if table == "" {
		return 0, ErrNotFound
	}

	var row accountRow
	err := r.Read(ctx).
		Table(table).
		Select("id, "+column+" AS balance, aktif").
		Where("id = ?", ownerID).
		Take(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return row.Balance, nil
}
