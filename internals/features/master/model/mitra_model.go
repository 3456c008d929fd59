package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===================== Model ===================== */

type MitraModel struct {
	MitraID uuid.UUID `gorm:"column:mitra_id;type:uuid;primaryKey" json:"mitra_id"`

	// Unik di antara baris hidup; baris soft-deleted tidak memblok nama lama.
	MitraNama   string  `gorm:"column:mitra_nama;type:varchar(120);not null;uniqueIndex:uq_mitras_nama,where:mitra_deleted_at IS NULL" json:"mitra_nama"`
	MitraNIK    *string `gorm:"column:mitra_nik;type:varchar(20)" json:"mitra_nik,omitempty"`
	MitraAlamat *string `gorm:"column:mitra_alamat" json:"mitra_alamat,omitempty"`
	MitraTelp   *string `gorm:"column:mitra_telp;type:varchar(20)" json:"mitra_telp,omitempty"`

	// Rekening untuk pembayaran honor
	MitraBank       *string `gorm:"column:mitra_bank;type:varchar(40)" json:"mitra_bank,omitempty"`
	MitraNoRekening *string `gorm:"column:mitra_no_rekening;type:varchar(40)" json:"mitra_no_rekening,omitempty"`

	MitraIsActive bool `gorm:"column:mitra_is_active;not null;default:true" json:"mitra_is_active"`

	CreatedAt time.Time      `gorm:"column:mitra_created_at;autoCreateTime" json:"mitra_created_at"`
	UpdatedAt time.Time      `gorm:"column:mitra_updated_at;autoUpdateTime" json:"mitra_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:mitra_deleted_at;index" json:"mitra_deleted_at,omitempty"`
}

func (MitraModel) TableName() string { return "mitras" }

func (m *MitraModel) BeforeCreate(tx *gorm.DB) error {
	if m.MitraID == uuid.Nil {
		m.MitraID = uuid.New()
	}
	return nil
}
