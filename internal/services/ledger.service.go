package services

import (
	"context"
	"time"

	"github.com/awsembako/backoffice/internal/model"
	"github.com/awsembako/backoffice/pkg/prom"
)

type AccountRepository interface {
	LockBalance(ctx context.Context, kind model.AccountKind, ownerID int64) (int64, error)
	SetBalance(ctx context.Context, kind model.AccountKind, ownerID int64, balance int64) error
	GetBalance(ctx context.Context, kind model.AccountKind, ownerID int64) (int64, error)
}

type LedgerEntryRepository interface {
	Create(ctx context.Context, e *model.LedgerEntry) (*model.LedgerEntry, error)
	GetForUpdate(ctx context.Context, id int64) (*model.LedgerEntry, error)
	UpdateAmount(ctx context.Context, id int64, amount int64) error
	List(ctx context.Context, f model.LedgerFilter) ([]*model.LedgerEntry, int64, error)
}

type TxRunner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	WithinTransactionTimeout(ctx context.Context, budget time.Duration, fn func(ctx context.Context) error) error
}

// LedgerService is the single write path for the named balances
// (customer piutang, supplier hutang, employee total_pinjaman). Every
// mutation runs the same read-validate-write sequence under the owner
// row lock and pairs the balance write with a ledger entry in one
// transaction; no caller patches a balance directly.
type LedgerService struct {
	db       TxRunner
	accounts AccountRepository
	entries  LedgerEntryRepository
}

func NewLedgerService(db TxRunner, accounts AccountRepository, entries LedgerEntryRepository) *LedgerService {
	return &LedgerService{
		db:       db,
		accounts: accounts,
		entries:  entries,
	}
}

// Disburse increases the owner balance by amount and records a LOAN
// entry. Used for employee loans and advances.
func (s *LedgerService) Disburse(ctx context.Context, kind model.AccountKind, ownerID int64, amount int64, note string) (*model.AdjustResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var result *model.AdjustResult
	err := s.db.WithinTransactionTimeout(ctx, 0, func(ctx context.Context) error {
		var err error
		result, err = s.adjustLocked(ctx, kind, ownerID, amount, model.EntryLoan, note)
		return err
	})
	if err != nil {
		return nil, mapRepoErr(err)
	}
	prom.IncBalanceAdjustment(string(kind), string(model.EntryLoan))
	return result, nil
}

// Pay decreases the owner balance. When the requested amount exceeds
// the outstanding balance, only the outstanding part is applied and
// the excess is returned as kembalian; the ledger entry records the
// effective payment, never the raw request.
func (s *LedgerService) Pay(ctx context.Context, kind model.AccountKind, ownerID int64, amount int64, note string) (*model.AdjustResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var result *model.AdjustResult
	err := s.db.WithinTransactionTimeout(ctx, 0, func(ctx context.Context) error {
		balance, err := s.accounts.LockBalance(ctx, kind, ownerID)
		if err != nil {
			return err
		}

		effective := amount
		kembalian := int64(0)
		if effective > balance {
			kembalian = effective - balance
			effective = balance
		}

		result, err = s.writeAdjustment(ctx, kind, ownerID, balance, balance-effective, effective, model.EntryPayment, note)
		if err != nil {
			return err
		}
		result.Kembalian = kembalian
		return nil
	})
	if err != nil {
		return nil, mapRepoErr(err)
	}
	prom.IncBalanceAdjustment(string(kind), string(model.EntryPayment))
	return result, nil
}

// EditEntryAmount corrects a previously recorded entry. The owner
// balance is patched by the difference between the new and the old
// amount, not re-derived from the full entry history; concurrent edits
// serialize on the owner row lock.
func (s *LedgerService) EditEntryAmount(ctx context.Context, entryID int64, newAmount int64) (*model.AdjustResult, error) {
	if newAmount <= 0 {
		return nil, ErrInvalidAmount
	}

	var result *model.AdjustResult
	err := s.db.WithinTransactionTimeout(ctx, 0, func(ctx context.Context) error {
		entry, err := s.entries.GetForUpdate(ctx, entryID)
		if err != nil {
			return err
		}

		balance, err := s.accounts.LockBalance(ctx, entry.OwnerKind, entry.OwnerID)
		if err != nil {
			return err
		}

		// A bigger loan raises the balance; a bigger payment lowers it.
		diff := newAmount - entry.Amount
		if entry.Kind == model.EntryPayment {
			diff = -diff
		}

		newBalance := balance + diff
		if newBalance < 0 {
			return ErrSaldoNegatif
		}
		if err := s.accounts.SetBalance(ctx, entry.OwnerKind, entry.OwnerID, newBalance); err != nil {
			return err
		}
		if err := s.entries.UpdateAmount(ctx, entryID, newAmount); err != nil {
			return err
		}

		entry.Amount = newAmount
		result = &model.AdjustResult{
			OwnerKind:     entry.OwnerKind,
			OwnerID:       entry.OwnerID,
			BalanceBefore: balance,
			BalanceAfter:  newBalance,
			Entry:         entry,
		}
		return nil
	})
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return result, nil
}

func (s *LedgerService) Entries(ctx context.Context, f model.LedgerFilter) ([]*model.LedgerEntry, int64, error) {
	return s.entries.List(ctx, f)
}

func (s *LedgerService) Balance(ctx context.Context, kind model.AccountKind, ownerID int64) (int64, error) {
	balance, err := s.accounts.GetBalance(ctx, kind, ownerID)
	if err != nil {
		return 0, mapRepoErr(err)
	}
	return balance, nil
}

// adjustLocked applies a signed delta under the owner lock. Must run
// inside a transaction.
func (s *LedgerService) adjustLocked(ctx context.Context, kind model.AccountKind, ownerID int64, delta int64, entryKind model.EntryKind, note string) (*model.AdjustResult, error) {
	balance, err := s.accounts.LockBalance(ctx, kind, ownerID)
	if err != nil {
		return nil, err
	}

	newBalance := balance + delta
	if newBalance < 0 {
		return nil, ErrSaldoNegatif
	}

	amount := delta
	if amount < 0 {
		amount = -amount
	}
	return s.writeAdjustment(ctx, kind, ownerID, balance, newBalance, amount, entryKind, note)
}

func (s *LedgerService) writeAdjustment(ctx context.Context, kind model.AccountKind, ownerID int64, before int64, after int64, amount int64, entryKind model.EntryKind, note string) (*model.AdjustResult, error) {
	if err := s.accounts.SetBalance(ctx, kind, ownerID, after); err != nil {
		return nil, err
	}

	entry, err := s.entries.Create(ctx, &model.LedgerEntry{
		OwnerKind: kind,
		OwnerID:   ownerID,
		Kind:      entryKind,
		Amount:    amount,
		Note:      note,
	})
	if err != nil {
		return nil, err
	}

	return &model.AdjustResult{
		OwnerKind:     kind,
		OwnerID:       ownerID,
		BalanceBefore: before,
		BalanceAfter:  after,
		Entry:         entry,
	}, nil
}
