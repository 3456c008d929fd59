package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */

const (
	SpkStatusPending  = "pending"
	SpkStatusApproved = "approved"
	SpkStatusRejected = "rejected"
)

/* ===================== Model ===================== */

// SpkDocumentModel = header Surat Perintah Kerja per (mitra, periode).
// Nomor resmi (SpkNomor) NULL sampai approve; nomor draft hanya tampilan
// sementara dan tidak pernah menggantikan nomor resmi.
type SpkDocumentModel struct {
	SpkID uuid.UUID `gorm:"column:spk_id;type:uuid;primaryKey" json:"spk_id"`

	// Satu SPK hidup per (mitra, periode): dokumen rejected dikecualikan
	// dari index supaya penerbitan ulang jalur koreksi tetap bisa.
	SpkMitraID uuid.UUID `gorm:"column:spk_mitra_id;type:uuid;not null;index;uniqueIndex:uq_spk_documents_periode,where:spk_status <> 'rejected'" json:"spk_mitra_id"`

	SpkTahun int16 `gorm:"column:spk_tahun;not null;index;uniqueIndex:uq_spk_documents_periode" json:"spk_tahun"`
	SpkBulan int16 `gorm:"column:spk_bulan;not null;uniqueIndex:uq_spk_documents_periode" json:"spk_bulan"`

	SpkStatus string `gorm:"column:spk_status;type:varchar(16);not null;default:'pending'" json:"spk_status"`

	SpkNomorDraft string  `gorm:"column:spk_nomor_draft;type:varchar(60);not null" json:"spk_nomor_draft"`
	SpkNomor      *string `gorm:"column:spk_nomor;type:varchar(60)" json:"spk_nomor,omitempty"`

	SpkTotalHonorIDR int `gorm:"column:spk_total_honor_idr;not null;default:0" json:"spk_total_honor_idr"`

	SpkApprovedBy    *uuid.UUID `gorm:"column:spk_approved_by;type:uuid" json:"spk_approved_by,omitempty"`
	SpkApprovedAt    *time.Time `gorm:"column:spk_approved_at" json:"spk_approved_at,omitempty"`
	SpkRejectionNote *string    `gorm:"column:spk_rejection_note" json:"spk_rejection_note,omitempty"`

	CreatedAt time.Time      `gorm:"column:spk_created_at;autoCreateTime" json:"spk_created_at"`
	UpdatedAt time.Time      `gorm:"column:spk_updated_at;autoUpdateTime" json:"spk_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:spk_deleted_at;index" json:"spk_deleted_at,omitempty"`
}

func (SpkDocumentModel) TableName() string { return "spk_documents" }

func (m *SpkDocumentModel) BeforeCreate(tx *gorm.DB) error {
	if m.SpkID == uuid.Nil {
		m.SpkID = uuid.New()
	}
	return nil
}

/* ===================== Helpers ===================== */

func (m *SpkDocumentModel) IsPending() bool  { return m.SpkStatus == SpkStatusPending }
func (m *SpkDocumentModel) IsApproved() bool { return m.SpkStatus == SpkStatusApproved }
func (m *SpkDocumentModel) IsRejected() bool { return m.SpkStatus == SpkStatusRejected }

/* ===================== Item ===================== */

// SpkDocumentItemModel = rincian pekerjaan di dalam SPK.
// Hanya boleh ditambah/dihapus selagi dokumen pending.
type SpkDocumentItemModel struct {
	SpkItemID uuid.UUID `gorm:"column:spk_item_id;type:uuid;primaryKey" json:"spk_item_id"`

	SpkItemSpkID      uuid.UUID `gorm:"column:spk_item_spk_id;type:uuid;not null;index" json:"spk_item_spk_id"`
	SpkItemKegiatanID uuid.UUID `gorm:"column:spk_item_kegiatan_id;type:uuid;not null;index" json:"spk_item_kegiatan_id"`

	SpkItemVolume   float64 `gorm:"column:spk_item_volume;type:numeric(12,2);not null;check:spk_item_volume > 0" json:"spk_item_volume"`
	SpkItemTarifIDR int     `gorm:"column:spk_item_tarif_idr;not null;check:spk_item_tarif_idr >= 0" json:"spk_item_tarif_idr"`
	SpkItemNilaiIDR int     `gorm:"column:spk_item_nilai_idr;not null" json:"spk_item_nilai_idr"` // volume * tarif, dihitung server

	CreatedAt time.Time `gorm:"column:spk_item_created_at;autoCreateTime" json:"spk_item_created_at"`
	UpdatedAt time.Time `gorm:"column:spk_item_updated_at;autoUpdateTime" json:"spk_item_updated_at"`
}

func (SpkDocumentItemModel) TableName() string { return "spk_document_items" }

func (m *SpkDocumentItemModel) BeforeCreate(tx *gorm.DB) error {
	if m.SpkItemID == uuid.Nil {
		m.SpkItemID = uuid.New()
	}
	return nil
}
