package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */

const (
	AlokasiStatusDraft    = "draft"
	AlokasiStatusApproved = "approved"
)

/* ===================== Model ===================== */

// AlokasiModel = alokasi kegiatan ke mitra untuk satu periode (pra-SPK).
// Hanya baris ber-status approved yang ikut agregasi penilaian & total honor SPK.
type AlokasiModel struct {
	AlokasiID uuid.UUID `gorm:"column:alokasi_id;type:uuid;primaryKey" json:"alokasi_id"`

	AlokasiMitraID    uuid.UUID `gorm:"column:alokasi_mitra_id;type:uuid;not null;index" json:"alokasi_mitra_id"`
	AlokasiKegiatanID uuid.UUID `gorm:"column:alokasi_kegiatan_id;type:uuid;not null;index" json:"alokasi_kegiatan_id"`

	// Periode evaluasi
	AlokasiTahun int16 `gorm:"column:alokasi_tahun;not null;index" json:"alokasi_tahun"`
	AlokasiBulan int16 `gorm:"column:alokasi_bulan;not null" json:"alokasi_bulan"`

	AlokasiVolume    float64 `gorm:"column:alokasi_volume;type:numeric(12,2);not null;check:alokasi_volume > 0" json:"alokasi_volume"`
	AlokasiTarifIDR  int     `gorm:"column:alokasi_tarif_idr;not null;check:alokasi_tarif_idr >= 0" json:"alokasi_tarif_idr"`
	AlokasiJumlahIDR int     `gorm:"column:alokasi_jumlah_idr;not null" json:"alokasi_jumlah_idr"` // volume * tarif, dihitung server

	AlokasiStatus string `gorm:"column:alokasi_status;type:varchar(16);not null;default:'draft'" json:"alokasi_status"`

	CreatedAt time.Time      `gorm:"column:alokasi_created_at;autoCreateTime" json:"alokasi_created_at"`
	UpdatedAt time.Time      `gorm:"column:alokasi_updated_at;autoUpdateTime" json:"alokasi_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:alokasi_deleted_at;index" json:"alokasi_deleted_at,omitempty"`
}

func (AlokasiModel) TableName() string { return "alokasis" }

func (m *AlokasiModel) BeforeCreate(tx *gorm.DB) error {
	if m.AlokasiID == uuid.Nil {
		m.AlokasiID = uuid.New()
	}
	return nil
}

/* ===================== Helpers ===================== */

func (m *AlokasiModel) IsDraft() bool    { return m.AlokasiStatus == AlokasiStatusDraft }
func (m *AlokasiModel) IsApproved() bool { return m.AlokasiStatus == AlokasiStatusApproved }
