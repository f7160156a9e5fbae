package services

import (
	"context"

	"github.com/awsembako/backoffice/internal/model"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) (*model.Customer, error)
	Update(ctx context.Context, c *model.Customer) (*model.Customer, error)
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	List(ctx context.Context, f model.MitraFilter) ([]*model.Customer, int64, error)
}

type SupplierRepository interface {
	Create(ctx context.Context, s *model.Supplier) (*model.Supplier, error)
	Update(ctx context.Context, s *model.Supplier) (*model.Supplier, error)
	GetByID(ctx context.Context, id int64) (*model.Supplier, error)
	List(ctx context.Context, f model.MitraFilter) ([]*model.Supplier, int64, error)
}

// MitraService covers the customer and supplier masters. Balance
// mutations go through the ledger service; this service only does
// master data plus the receivable/payable payment entry points.
type MitraService struct {
	customers CustomerRepository
	suppliers SupplierRepository
	ledger    *LedgerService
}

func NewMitraService(customers CustomerRepository, suppliers SupplierRepository, ledger *LedgerService) *MitraService {
	return &MitraService{customers: customers, suppliers: suppliers, ledger: ledger}
}

func (s *MitraService) CreateCustomer(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	if c.Nama == "" {
		return nil, ErrInvalidAmount
	}
	c.Aktif = true
	c.Piutang = 0
	created, err := s.customers.Create(ctx, c)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return created, nil
}

func (s *MitraService) UpdateCustomer(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	updated, err := s.customers.Update(ctx, c)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return updated, nil
}

func (s *MitraService) GetCustomer(ctx context.Context, id int64) (*model.Customer, error) {
	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return c, nil
}

func (s *MitraService) ListCustomers(ctx context.Context, f model.MitraFilter) ([]*model.Customer, int64, error) {
	return s.customers.List(ctx, f)
}

// BayarPiutang settles a customer receivable. Overpayment is capped
// and returned as kembalian.
func (s *MitraService) BayarPiutang(ctx context.Context, customerID int64, amount int64) (*model.AdjustResult, error) {
	return s.ledger.Pay(ctx, model.AccountCustomer, customerID, amount, "Pembayaran piutang")
}

func (s *MitraService) CreateSupplier(ctx context.Context, sup *model.Supplier) (*model.Supplier, error) {
	if sup.Nama == "" {
		return nil, ErrInvalidAmount
	}
	sup.Aktif = true
	sup.Hutang = 0
	created, err := s.suppliers.Create(ctx, sup)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return created, nil
}

func (s *MitraService) UpdateSupplier(ctx context.Context, sup *model.Supplier) (*model.Supplier, error) {
	updated, err := s.suppliers.Update(ctx, sup)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return updated, nil
}

func (s *MitraService) GetSupplier(ctx context.Context, id int64) (*model.Supplier, error) {
	sup, err := s.suppliers.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return sup, nil
}

func (s *MitraService) ListSuppliers(ctx context.Context, f model.MitraFilter) ([]*model.Supplier, int64, error) {
	return s.suppliers.List(ctx, f)
}

func (s *MitraService) RiwayatLedger(ctx context.Context, kind model.AccountKind, ownerID int64, f model.LedgerFilter) ([]*model.LedgerEntry, int64, error) {
	f.OwnerKind = &kind
	f.OwnerID = &ownerID
	return s.ledger.Entries(ctx, f)
}
