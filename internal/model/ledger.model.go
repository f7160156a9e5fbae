package model

import "time"

// AccountKind is the closed set of owners a ledger balance can belong
// to. Stock follows the same locking rules but lives on barang rows.
type AccountKind string

const (
	AccountCustomer AccountKind = "CUSTOMER"
	AccountSupplier AccountKind = "SUPPLIER"
	AccountEmployee AccountKind = "EMPLOYEE"
)

type EntryKind string

const (
	EntryLoan           EntryKind = "LOAN"
	EntryPayment        EntryKind = "PAYMENT"
	EntryDebtAdjustment EntryKind = "DEBT_ADJUSTMENT"
)

// LedgerEntry is the immutable record of one balance-affecting event.
// Amount is always positive; the entry kind determines direction.
// The only permitted mutation is the explicit amount-edit operation,
// which patches the owner balance by the difference.
type LedgerEntry struct {
	ID        int64       `json:"id"`
	OwnerKind AccountKind `json:"owner_kind"`
	OwnerID   int64       `json:"owner_id"`
	Kind      EntryKind   `json:"kind"`
	Amount    int64       `json:"amount"`
	Note      string      `json:"note"`
	CreatedAt time.Time   `json:"created_at"`
}

// AdjustResult reports a committed balance adjustment: both balances,
// the entry written, and the change due when a payment exceeded the
// outstanding balance.
type AdjustResult struct {
	OwnerKind     AccountKind  `json:"owner_kind"`
	OwnerID       int64        `json:"owner_id"`
	BalanceBefore int64        `json:"balance_before"`
	BalanceAfter  int64        `json:"balance_after"`
	Entry         *LedgerEntry `json:"entry"`
	Kembalian     int64        `json:"kembalian"`
}

type LedgerFilter struct {
	OwnerKind *AccountKind
	OwnerID   *int64
	Kind      *EntryKind
	Limit     int
	Offset    int
}
