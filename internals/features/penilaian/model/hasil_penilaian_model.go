package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	PenilaianSourceWorkload = "workload"
	PenilaianSourceManual   = "manual"
)

// HasilPenilaianModel menyimpan OUTPUT satu run perankingan (bukan kandidatnya).
// Entries = array RankingEntry ter-serialize (JSONB), beku setelah disimpan.
type HasilPenilaianModel struct {
	PenilaianID uuid.UUID `gorm:"column:penilaian_id;type:uuid;primaryKey" json:"penilaian_id"`

	PenilaianTahun  int16  `gorm:"column:penilaian_tahun;not null;index" json:"penilaian_tahun"`
	PenilaianBulan  int16  `gorm:"column:penilaian_bulan;not null" json:"penilaian_bulan"`
	PenilaianSource string `gorm:"column:penilaian_source;type:varchar(16);not null" json:"penilaian_source"` // workload|manual

	PenilaianEntries datatypes.JSON `gorm:"column:penilaian_entries;type:jsonb;not null" json:"penilaian_entries"`

	CreatedAt time.Time `gorm:"column:penilaian_created_at;autoCreateTime" json:"penilaian_created_at"`
}

func (HasilPenilaianModel) TableName() string { return "hasil_penilaians" }

func (m *HasilPenilaianModel) BeforeCreate(tx *gorm.DB) error {
	if m.PenilaianID == uuid.Nil {
		m.PenilaianID = uuid.New()
	}
	return nil
}
