package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ===================== Enums (string) ===================== */

const (
	KriteriaJenisBenefit = "benefit"
	KriteriaJenisCost    = "cost"
)

/* ===================== Model ===================== */

// KriteriaModel = kriteria penilaian SAW (bobot 0..1, arah benefit/cost).
type KriteriaModel struct {
	KriteriaID uuid.UUID `gorm:"column:kriteria_id;type:uuid;primaryKey" json:"kriteria_id"`

	// Key dipakai untuk mencocokkan nilai kandidat (mis. total_volume)
	KriteriaKey   string  `gorm:"column:kriteria_key;type:varchar(60);not null;uniqueIndex" json:"kriteria_key"`
	KriteriaNama  string  `gorm:"column:kriteria_nama;type:varchar(120);not null" json:"kriteria_nama"`
	KriteriaBobot float64 `gorm:"column:kriteria_bobot;type:numeric(6,4);not null;check:kriteria_bobot >= 0 AND kriteria_bobot <= 1" json:"kriteria_bobot"`
	KriteriaJenis string  `gorm:"column:kriteria_jenis;type:varchar(10);not null" json:"kriteria_jenis"`

	CreatedAt time.Time      `gorm:"column:kriteria_created_at;autoCreateTime" json:"kriteria_created_at"`
	UpdatedAt time.Time      `gorm:"column:kriteria_updated_at;autoUpdateTime" json:"kriteria_updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:kriteria_deleted_at;index" json:"kriteria_deleted_at,omitempty"`
}

func (KriteriaModel) TableName() string { return "kriterias" }

func (m *KriteriaModel) BeforeCreate(tx *gorm.DB) error {
	if m.KriteriaID == uuid.Nil {
		m.KriteriaID = uuid.New()
	}
	return nil
}
