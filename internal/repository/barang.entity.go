package repository

import (
	"time"

	"github.com/awsembako/backoffice/internal/model"
)

type BarangEntity struct {
	ID           int64     `db:"id"             gorm:"primaryKey;autoIncrement;column:id"`
	Kode         string    `db:"kode"           gorm:"column:kode;not null;unique"`
	Nama         string    `db:"nama"           gorm:"column:nama;not null;index"`
	Satuan       string    `db:"satuan"         gorm:"column:satuan;not null"`
	IsiPerSatuan int64     `db:"isi_per_satuan" gorm:"column:isi_per_satuan;not null;default:1"`
	HargaBeli    int64     `db:"harga_beli"     gorm:"column:harga_beli;not null"`
	HargaJual    int64     `db:"harga_jual"     gorm:"column:harga_jual;not null"`
	Stok         int64     `db:"stok"           gorm:"column:stok;not null;default:0"`
	StokMinimal  int64     `db:"stok_minimal"   gorm:"column:stok_minimal;not null;default:0"`
	Aktif        bool      `db:"aktif"          gorm:"column:aktif;not null;default:true"`
	CreatedAt    time.Time `db:"created_at"     gorm:"column:created_at"`
	UpdatedAt    time.Time `db:"updated_at"     gorm:"column:updated_at"`
}

func (BarangEntity) TableName() string {
	return "barang"
}

func toBarangEntity(m *model.Barang) *BarangEntity {
	if m == nil {
		return nil
	}
	return &BarangEntity{
		ID:           m.ID,
		Kode:         m.Kode,
		Nama:         m.Nama,
		Satuan:       m.Satuan,
		IsiPerSatuan: m.IsiPerSatuan,
		HargaBeli:    m.HargaBeli,
		HargaJual:    m.HargaJual,
		Stok:         m.Stok,
		StokMinimal:  m.StokMinimal,
		Aktif:        m.Aktif,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toBarangModel(e *BarangEntity) *model.Barang {
	if e == nil {
		return nil
	}
	return &model.Barang{
		ID:           e.ID,
		Kode:         e.Kode,
		Nama:         e.Nama,
		Satuan:       e.Satuan,
		IsiPerSatuan: e.IsiPerSatuan,
		HargaBeli:    e.HargaBeli,
		HargaJual:    e.HargaJual,
		Stok:         e.Stok,
		StokMinimal:  e.StokMinimal,
		Aktif:        e.Aktif,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func toBarangModels(entities []*BarangEntity) []*model.Barang {
	if entities == nil {
		return nil
	}
	models := make([]*model.Barang, len(entities))
	for i, e := range entities {
		models[i] = toBarangModel(e)
	}
	return models
}
