package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// KegiatanModel = kegiatan survei/sensus yang bisa dialokasikan ke mitra.
type KegiatanModel struct {
	KegiatanID uuid.UUID `gorm:"column:kegiatan_id;type:uuid;primaryKey" json:"kegiatan_id"`

	KegiatanKode string `gorm:"column:kegiatan_kode;type:varchar(30);not null;uniqueIndex" json:"kegiatan_kode"`
	KegiatanNama string `gorm:"column:kegiatan_nama;type:varchar(160);not null" json:"kegiatan_nama"`

	// Akun belanja default untuk honor kegiatan ini
	KegiatanAkunID uuid.UUID `gorm:"column:kegiatan_akun_id;type:uuid;not null;index" json:"kegiatan_akun_id"`

	// Tarif honor default per satuan volume
	KegiatanTarifIDR int `gorm:"column:kegiatan_tarif_idr;not null;default:0;check:kegiatan_tarif_idr >= 0" json:"kegiatan_tarif_idr"`

	KegiatanIsActive bool `gorm:"column:kegiatan_is_active;not null;default:true" json:"kegiatan_is_active"`

	CreatedAt time.Time      `gorm:"column:kegiatan_created_at;autoCreateTime" json:"kegiatan_created_at"`
	UpdatedAt time.Time      `gorm:"column:kegiatan_updated_at;autoUpdateTime" json:"kegiatan_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:kegiatan_deleted_at;index" json:"kegiatan_deleted_at,omitempty"`
}

func (KegiatanModel) TableName() string { return "kegiatans" }

func (m *KegiatanModel) BeforeCreate(tx *gorm.DB) error {
	if m.KegiatanID == uuid.Nil {
		m.KegiatanID = uuid.New()
	}
	return nil
}
