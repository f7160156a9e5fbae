package repository

import (
	"time"

	"github.com/awsembako/backoffice/internal/model"
)

type PenjualanHeaderEntity struct {
	ID            int64                 `db:"id"             gorm:"primaryKey;autoIncrement;column:id"`
	Kode          string                `db:"kode"           gorm:"column:kode;not null;unique"`
	CustomerID    *int64                `db:"customer_id"    gorm:"column:customer_id;index"`
	SalesID       *int64                `db:"sales_id"       gorm:"column:sales_id;index"`
	Status        string                `db:"status"         gorm:"column:status;not null"`
	StatusBayar   string                `db:"status_bayar"   gorm:"column:status_bayar;not null"`
	Subtotal      int64                 `db:"subtotal"       gorm:"column:subtotal;not null;default:0"`
	DiskonNota    int64                 `db:"diskon_nota"    gorm:"column:diskon_nota;not null;default:0"`
	TotalHarga    int64                 `db:"total_harga"    gorm:"column:total_harga;not null;default:0"`
	JumlahDibayar int64                 `db:"jumlah_dibayar" gorm:"column:jumlah_dibayar;not null;default:0"`
	Kembalian     int64                 `db:"kembalian"      gorm:"column:kembalian;not null;default:0"`
	Items         []PenjualanItemEntity `gorm:"foreignKey:HeaderID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time             `db:"created_at"     gorm:"column:created_at"`
	DeletedAt     *time.Time            `db:"deleted_at"     gorm:"column:deleted_at;index"`
}

func (PenjualanHeaderEntity) TableName() string {
	return "penjualan_headers"
}

type PenjualanItemEntity struct {
	ID           int64  `db:"id"             gorm:"primaryKey;autoIncrement;column:id"`
	HeaderID     int64  `db:"header_id"      gorm:"column:header_id;not null;index"`
	BarangID     int64  `db:"barang_id"      gorm:"column:barang_id;not null;index"`
	NamaBarang   string `db:"nama_barang"    gorm:"column:nama_barang;not null"`
	Qty          int64  `db:"qty"            gorm:"column:qty;not null"`
	IsiPerSatuan int64  `db:"isi_per_satuan" gorm:"column:isi_per_satuan;not null;default:1"`
	Harga        int64  `db:"harga"          gorm:"column:harga;not null"`
	Diskon       int64  `db:"diskon"         gorm:"column:diskon;not null;default:0"`
	Total        int64  `db:"total"          gorm:"column:total;not null"`
}

func (PenjualanItemEntity) TableName() string {
	return "penjualan_items"
}

func toPenjualanHeaderEntity(m *model.PenjualanHeader) *PenjualanHeaderEntity {
	if m == nil {
		return nil
	}
	e := &PenjualanHeaderEntity{
		ID:            m.ID,
		Kode:          m.Kode,
		CustomerID:    m.CustomerID,
		SalesID:       m.SalesID,
		Status:        string(m.Status),
		StatusBayar:   string(m.StatusBayar),
		Subtotal:      m.Subtotal,
		DiskonNota:    m.DiskonNota,
		TotalHarga:    m.TotalHarga,
		JumlahDibayar: m.JumlahDibayar,
		Kembalian:     m.Kembalian,
		CreatedAt:     m.CreatedAt,
		DeletedAt:     m.DeletedAt,
	}
	for _, it := range m.Items {
		e.Items = append(e.Items, PenjualanItemEntity{
			ID:           it.ID,
			HeaderID:     it.HeaderID,
			BarangID:     it.BarangID,
			NamaBarang:   it.NamaBarang,
			Qty:          it.Qty,
			IsiPerSatuan: it.IsiPerSatuan,
			Harga:        it.Harga,
			Diskon:       it.Diskon,
			Total:        it.Total,
		})
	}
	return e
}

func toPenjualanHeaderModel(e *PenjualanHeaderEntity) *model.PenjualanHeader {
	if e == nil {
		return nil
	}
	m := &model.PenjualanHeader{
		ID:            e.ID,
		Kode:          e.Kode,
		CustomerID:    e.CustomerID,
		SalesID:       e.SalesID,
		Status:        model.StatusTransaksi(e.Status),
		StatusBayar:   model.StatusBayar(e.StatusBayar),
		Subtotal:      e.Subtotal,
		DiskonNota:    e.DiskonNota,
		TotalHarga:    e.TotalHarga,
		JumlahDibayar: e.JumlahDibayar,
		Kembalian:     e.Kembalian,
		CreatedAt:     e.CreatedAt,
		DeletedAt:     e.DeletedAt,
	}
	for _, it := range e.Items {
		m.Items = append(m.Items, model.PenjualanItem{
			ID:           it.ID,
			HeaderID:     it.HeaderID,
			BarangID:     it.BarangID,
			NamaBarang:   it.NamaBarang,
			Qty:          it.Qty,
			IsiPerSatuan: it.IsiPerSatuan,
			Harga:        it.Harga,
			Diskon:       it.Diskon,
			Total:        it.Total,
		})
	}
	return m
}

func toPenjualanHeaderModels(entities []*PenjualanHeaderEntity) []*model.PenjualanHeader {
	if entities == nil {
		return nil
	}
	models := make([]*model.PenjualanHeader, len(entities))
	for i, e := range entities {
		models[i] = toPenjualanHeaderModel(e)
	}
	return models
}
