package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AkunModel = mata anggaran (kode akun belanja) yang dibekukan
// ke detail alokasi saat SPK disetujui.
type AkunModel struct {
	AkunID uuid.UUID `gorm:"column:akun_id;type:uuid;primaryKey" json:"akun_id"`

	AkunKode string `gorm:"column:akun_kode;type:varchar(20);not null;uniqueIndex" json:"akun_kode"`
	AkunNama string `gorm:"column:akun_nama;type:varchar(120);not null" json:"akun_nama"`

	CreatedAt time.Time      `gorm:"column:akun_created_at;autoCreateTime" json:"akun_created_at"`
	UpdatedAt time.Time      `gorm:"column:akun_updated_at;autoUpdateTime" json:"akun_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:akun_deleted_at;index" json:"akun_deleted_at,omitempty"`
}

func (AkunModel) TableName() string { return "akuns" }

func (m *AkunModel) BeforeCreate(tx *gorm.DB) error {
	if m.AkunID == uuid.Nil {
		m.AkunID = uuid.New()
	}
	return nil
}
