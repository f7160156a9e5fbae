package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/awsembako/backoffice/internal/model"
	"github.com/awsembako/backoffice/pkg/pg"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomerRepository struct {
	*pg.DB
}

func NewCustomerRepository(db *pg.DB) *CustomerRepository {
	return &CustomerRepository{
		db,
	}
}

func (r *CustomerRepository) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	entity := &CustomerEntity{
		Nama:    c.Nama,
		Telepon: c.Telepon,
		Alamat:  c.Alamat,
		Aktif:   true,
	}
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toCustomerModel(entity), nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	updates := map[string]any{
		"nama":    c.Nama,
		"telepon": c.Telepon,
		"alamat":  c.Alamat,
		"aktif":   c.Aktif,
	}
	result := r.Write(ctx).Model(&CustomerEntity{}).Where("id = ?", c.ID).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, c.ID)
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	var entity CustomerEntity
	err := r.Read(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toCustomerModel(&entity), nil
}

func (r *CustomerRepository) List(ctx context.Context, f model.MitraFilter) ([]*model.Customer, int64, error) {
	q := r.Read(ctx).Model(&CustomerEntity{})
	q = applyMitraFilter(q, f)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var entities []*CustomerEntity
	if err := q.Order("nama ASC").Find(&entities).Error; err != nil {
		return nil, 0, err
	}
	out := make([]*model.Customer, len(entities))
	for i, e := range entities {
		out[i] = toCustomerModel(e)
	}
	return out, total, nil
}

type SupplierRepository struct {
	*pg.DB
}

func NewSupplierRepository(db *pg.DB) *SupplierRepository {
	return &SupplierRepository{
		db,
	}
}

func (r *SupplierRepository) Create(ctx context.Context, s *model.Supplier) (*model.Supplier, error) {
	entity := &SupplierEntity{
		Nama:    s.Nama,
		Telepon: s.Telepon,
		Alamat:  s.Alamat,
		Aktif:   true,
	}
	if err := r.Write(ctx).Create(entity).Error; err != nil {
		return nil, err
	}
	return toSupplierModel(entity), nil
}

func (r *SupplierRepository) Update(ctx context.Context, s *model.Supplier) (*model.Supplier, error) {
	updates := map[string]any{
		"nama":    s.Nama,
		"telepon": s.Telepon,
		"alamat":  s.Alamat,
		"aktif":   s.Aktif,
	}
	result := r.Write(ctx).Model(&SupplierEntity{}).Where("id = ?", s.ID).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, s.ID)
}

func (r *SupplierRepository) GetByID(ctx context.Context, id int64) (*model.Supplier, error) {
	var entity SupplierEntity
	err := r.Read(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toSupplierModel(&entity), nil
}

func (r *SupplierRepository) List(ctx context.Context, f model.MitraFilter) ([]*model.Supplier, int64, error) {
	q := r.Read(ctx).Model(&SupplierEntity{})
	q = applyMitraFilter(q, f)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var entities []*SupplierEntity
	if err := q.Order("nama ASC").Find(&entities).Error; err != nil {
		return nil, 0, err
	}
	out := make([]*model.Supplier, len(entities))
	for i, e := range entities {
		out[i] = toSupplierModel(e)
	}
	return out, total, nil
}

// RecalculateDebt overwrites one supplier's hutang with the sum of
// outstanding amounts over completed, debt-financed, non-deleted
// purchase headers, floored at zero. Reconciliation path, not the
// steady-state transaction path.
func (r *SupplierRepository) RecalculateDebt(ctx context.Context, supplierID int64) (*model.SupplierDebtReport, error) {
	var entity SupplierEntity
	err := r.Write(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", supplierID).
		First(&entity).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var total *int64
	err = r.Write(ctx).
		Model(&PembelianHeaderEntity{}).
		Select("SUM(CASE WHEN total_harga - jumlah_dibayar > 0 THEN total_harga - jumlah_dibayar ELSE 0 END)").
		Where("supplier_id = ? AND status = ? AND status_bayar = ? AND deleted_at IS NULL",
			supplierID, string(model.StatusSelesai), string(model.BayarHutang)).
		Scan(&total).
		Error
	if err != nil {
		return nil, err
	}

	newHutang := int64(0)
	if total != nil {
		newHutang = *total
	}

	report := &model.SupplierDebtReport{
		SupplierID: entity.ID,
		Nama:       entity.Nama,
		OldHutang:  entity.Hutang,
		NewHutang:  newHutang,
		Adjusted:   newHutang != entity.Hutang,
	}
	if !report.Adjusted {
		return report, nil
	}

	if err := r.Write(ctx).Model(&SupplierEntity{}).Where("id = ?", supplierID).Update("hutang", newHutang).Error; err != nil {
		return nil, err
	}
	return report, nil
}

func (r *SupplierRepository) ListIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := r.Read(ctx).Model(&SupplierEntity{}).Order("id ASC").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func applyMitraFilter(q *gorm.DB, f model.MitraFilter) *gorm.DB {
	if f.Keyword != nil && *f.Keyword != "" {
		kw := "%" + strings.ToLower(*f.Keyword) + "%"
		q = q.Where("LOWER(nama) LIKE ? OR telepon LIKE ?", kw, "%"+*f.Keyword+"%")
	}
	if f.Aktif != nil {
		q = q.Where("aktif = ?", *f.Aktif)
	}
	return q
}
