package dto

import (
	"github.com/google/uuid"
)

// Create: tarif 0 = pakai tarif default kegiatan (diisi service).
type AlokasiCreateDTO struct {
	AlokasiMitraID    uuid.UUID `json:"alokasi_mitra_id" validate:"required"`
	AlokasiKegiatanID uuid.UUID `json:"alokasi_kegiatan_id" validate:"required"`
	AlokasiTahun      int16     `json:"alokasi_tahun" validate:"required,min=2000,max=2100"`
	AlokasiBulan      int16     `json:"alokasi_bulan" validate:"required,min=1,max=12"`
	AlokasiVolume     float64   `json:"alokasi_volume" validate:"required,gt=0"`
	AlokasiTarifIDR   int       `json:"alokasi_tarif_idr" validate:"min=0"`
}

// Update (partial): hanya selama draft.
type AlokasiUpdateDTO struct {
	AlokasiVolume   *float64 `json:"alokasi_volume,omitempty" validate:"omitempty,gt=0"`
	AlokasiTarifIDR *int     `json:"alokasi_tarif_idr,omitempty" validate:"omitempty,min=0"`
}
