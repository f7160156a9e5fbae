package model

import "time"

// Customer carries a receivable (piutang) balance: what the customer
// still owes the store. Never negative at a committed state.
type Customer struct {
	ID        int64     `json:"id"`
	Nama      string    `json:"nama"`
	Telepon   string    `json:"telepon"`
	Alamat    string    `json:"alamat"`
	Piutang   int64     `json:"piutang"`
	Aktif     bool      `json:"aktif"`
	CreatedAt time.Time `json:"created_at"`
}

// Supplier carries a payable (hutang) balance: what the store still
// owes the supplier.
type Supplier struct {
	ID        int64     `json:"id"`
	Nama      string    `json:"nama"`
	Telepon   string    `json:"telepon"`
	Alamat    string    `json:"alamat"`
	Hutang    int64     `json:"hutang"`
	Aktif     bool      `json:"aktif"`
	CreatedAt time.Time `json:"created_at"`
}

type MitraFilter struct {
	Keyword *string
	Aktif   *bool
	Limit   int
	Offset  int
}

// SupplierDebtReport is one row of the reconciliation pass over all
// suppliers.
type SupplierDebtReport struct {
	SupplierID int64  `json:"supplier_id"`
	Nama       string `json:"nama"`
	OldHutang  int64  `json:"old_hutang"`
	NewHutang  int64  `json:"new_hutang"`
	Adjusted   bool   `json:"adjusted"`
}
