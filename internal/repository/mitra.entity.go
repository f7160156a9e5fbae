package repository

import (
	"time"

	"github.com/awsembako/backoffice/internal/model"
)

type CustomerEntity struct {
	ID        int64     `db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	Nama      string    `db:"nama"       gorm:"column:nama;not null;index"`
	Telepon   string    `db:"telepon"    gorm:"column:telepon"`
	Alamat    string    `db:"alamat"     gorm:"column:alamat"`
	Piutang   int64     `db:"piutang"    gorm:"column:piutang;not null;default:0"`
	Aktif     bool      `db:"aktif"      gorm:"column:aktif;not null;default:true"`
	CreatedAt time.Time `db:"created_at" gorm:"column:created_at"`
}

func (CustomerEntity) TableName() string {
	return "customers"
}

type SupplierEntity struct {
	ID        int64     `db:"id"         gorm:"primaryKey;autoIncrement;column:id"`
	Nama      string    `db:"nama"       gorm:"column:nama;not null;index"`
	Telepon   string    `db:"telepon"    gorm:"column:telepon"`
	Alamat    string    `db:"alamat"     gorm:"column:alamat"`
	Hutang    int64     `db:"hutang"     gorm:"column:hutang;not null;default:0"`
	Aktif     bool      `db:"aktif"      gorm:"column:aktif;not null;default:true"`
	CreatedAt time.Time `db:"created_at" gorm:"column:created_at"`
}

func (SupplierEntity) TableName() string {
	return "suppliers"
}

type KaryawanEntity struct {
	ID            int64     `db:"id"             gorm:"primaryKey;autoIncrement;column:id"`
	Nama          string    `db:"nama"           gorm:"column:nama;not null;index"`
	Jabatan       string    `db:"jabatan"        gorm:"column:jabatan;not null"`
	Telepon       string    `db:"telepon"        gorm:"column:telepon"`
	Gaji          int64     `db:"gaji"           gorm:"column:gaji;not null;default:0"`
	TotalPinjaman int64     `db:"total_pinjaman" gorm:"column:total_pinjaman;not null;default:0"`
	Aktif         bool      `db:"aktif"          gorm:"column:aktif;not null;default:true"`
	CreatedAt     time.Time `db:"created_at"     gorm:"column:created_at"`
}

func (KaryawanEntity) TableName() string {
	return "karyawan"
}

func toCustomerModel(e *CustomerEntity) *model.Customer {
	if e == nil {
		return nil
	}
	return &model.Customer{
		ID:        e.ID,
		Nama:      e.Nama,
		Telepon:   e.Telepon,
		Alamat:    e.Alamat,
		Piutang:   e.Piutang,
		Aktif:     e.Aktif,
		CreatedAt: e.CreatedAt,
	}
}

func toSupplierModel(e *SupplierEntity) *model.Supplier {
	if e == nil {
		return nil
	}
	return &model.Supplier{
		ID:        e.ID,
		Nama:      e.Nama,
		Telepon:   e.Telepon,
		Alamat:    e.Alamat,
		Hutang:    e.Hutang,
		Aktif:     e.Aktif,
		CreatedAt: e.CreatedAt,
	}
}

func toKaryawanModel(e *KaryawanEntity) *model.Karyawan {
	if e == nil {
		return nil
	}
	return &model.Karyawan{
		ID:            e.ID,
		Nama:          e.Nama,
		Jabatan:       model.Jabatan(e.Jabatan),
		Telepon:       e.Telepon,
		Gaji:          e.Gaji,
		TotalPinjaman: e.TotalPinjaman,
		Aktif:         e.Aktif,
		CreatedAt:     e.CreatedAt,
	}
}
