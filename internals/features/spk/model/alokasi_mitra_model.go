package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AlokasiMitraModel = snapshot resmi hasil approve SPK (catatan audit).
// Dibuat tepat satu kali di dalam transaksi approve dan tidak pernah diubah,
// sekalipun master kegiatan/akun berubah setelahnya.
type AlokasiMitraModel struct {
	AlokasiMitraID uuid.UUID `gorm:"column:alokasi_mitra_id;type:uuid;primaryKey" json:"alokasi_mitra_id"`

	AlokasiMitraSpkID   uuid.UUID `gorm:"column:alokasi_mitra_spk_id;type:uuid;not null;uniqueIndex" json:"alokasi_mitra_spk_id"`
	AlokasiMitraMitraID uuid.UUID `gorm:"column:alokasi_mitra_mitra_id;type:uuid;not null;index" json:"alokasi_mitra_mitra_id"`

	AlokasiMitraTahun int16 `gorm:"column:alokasi_mitra_tahun;not null;index" json:"alokasi_mitra_tahun"`
	AlokasiMitraBulan int16 `gorm:"column:alokasi_mitra_bulan;not null" json:"alokasi_mitra_bulan"`

	// Nomor urut per tahun anggaran + nomor resmi terkomposisi
	AlokasiMitraNomorUrut int    `gorm:"column:alokasi_mitra_nomor_urut;not null;uniqueIndex:uq_alokasi_mitra_nomor" json:"alokasi_mitra_nomor_urut"`
	AlokasiMitraNomorSpk  string `gorm:"column:alokasi_mitra_nomor_spk;type:varchar(60);not null" json:"alokasi_mitra_nomor_spk"`

	AlokasiMitraTotalIDR int    `gorm:"column:alokasi_mitra_total_idr;not null" json:"alokasi_mitra_total_idr"`
	AlokasiMitraStatus   string `gorm:"column:alokasi_mitra_status;type:varchar(16);not null;default:'approved'" json:"alokasi_mitra_status"`

	// Tahun ikut unique index nomor urut: nomor di-scope per tahun anggaran
	AlokasiMitraTahunScope int16 `gorm:"column:alokasi_mitra_tahun_scope;not null;uniqueIndex:uq_alokasi_mitra_nomor" json:"-"`

	CreatedAt time.Time `gorm:"column:alokasi_mitra_created_at;autoCreateTime" json:"alokasi_mitra_created_at"`
}

func (AlokasiMitraModel) TableName() string { return "alokasi_mitras" }

func (m *AlokasiMitraModel) BeforeCreate(tx *gorm.DB) error {
	if m.AlokasiMitraID == uuid.Nil {
		m.AlokasiMitraID = uuid.New()
	}
	m.AlokasiMitraTahunScope = m.AlokasiMitraTahun
	return nil
}

// AlokasiMitraDetailModel = baris beku per item SPK pada saat approve.
type AlokasiMitraDetailModel struct {
	AlokasiMitraDetailID uuid.UUID `gorm:"column:alokasi_mitra_detail_id;type:uuid;primaryKey" json:"alokasi_mitra_detail_id"`

	AlokasiMitraDetailHeaderID uuid.UUID `gorm:"column:alokasi_mitra_detail_header_id;type:uuid;not null;index" json:"alokasi_mitra_detail_header_id"`
	AlokasiMitraDetailSpkID    uuid.UUID `gorm:"column:alokasi_mitra_detail_spk_id;type:uuid;not null;index" json:"alokasi_mitra_detail_spk_id"`
	AlokasiMitraDetailMitraID  uuid.UUID `gorm:"column:alokasi_mitra_detail_mitra_id;type:uuid;not null" json:"alokasi_mitra_detail_mitra_id"`

	// Referensi beku (copy), bukan join-on-read
	AlokasiMitraDetailKegiatanID uuid.UUID `gorm:"column:alokasi_mitra_detail_kegiatan_id;type:uuid;not null" json:"alokasi_mitra_detail_kegiatan_id"`
	AlokasiMitraDetailAkunID     uuid.UUID `gorm:"column:alokasi_mitra_detail_akun_id;type:uuid;not null" json:"alokasi_mitra_detail_akun_id"`

	AlokasiMitraDetailNilaiIDR int `gorm:"column:alokasi_mitra_detail_nilai_idr;not null" json:"alokasi_mitra_detail_nilai_idr"`

	CreatedAt time.Time `gorm:"column:alokasi_mitra_detail_created_at;autoCreateTime" json:"alokasi_mitra_detail_created_at"`
}

func (AlokasiMitraDetailModel) TableName() string { return "alokasi_mitra_details" }

func (m *AlokasiMitraDetailModel) BeforeCreate(tx *gorm.DB) error {
	if m.AlokasiMitraDetailID == uuid.Nil {
		m.AlokasiMitraDetailID = uuid.New()
	}
	return nil
}
