// File: internals/features/spk/dto/spk_dto.go
package dto

import (
	"github.com/google/uuid"

	spkmodel "spkmitra_backend/internals/features/spk/model"
)

/* ===============================
   Requests
=================================*/

type SpkIssueDTO struct {
	SpkMitraID uuid.UUID `json:"spk_mitra_id" validate:"required"`
	SpkTahun   int16     `json:"spk_tahun" validate:"required,min=2000,max=2100"`
	SpkBulan   int16     `json:"spk_bulan" validate:"required,min=1,max=12"`
}

// Generate dari hasil ranking: urutan mitra mengikuti rank.
type SpkGenerateDTO struct {
	SpkTahun int16       `json:"spk_tahun" validate:"required,min=2000,max=2100"`
	SpkBulan int16       `json:"spk_bulan" validate:"required,min=1,max=12"`
	MitraIDs []uuid.UUID `json:"mitra_ids" validate:"required,min=1"`
}

type SpkItemCreateDTO struct {
	SpkItemKegiatanID uuid.UUID `json:"spk_item_kegiatan_id" validate:"required"`
	SpkItemVolume     float64   `json:"spk_item_volume" validate:"required,gt=0"`
	SpkItemTarifIDR   int       `json:"spk_item_tarif_idr" validate:"min=0"` // 0 = tarif default kegiatan
}

type SpkRejectDTO struct {
	Note string `json:"note" validate:"required"`
}

/* ===============================
   Responses
=================================*/

type SpkDetailResponse struct {
	Spk   spkmodel.SpkDocumentModel       `json:"spk"`
	Items []spkmodel.SpkDocumentItemModel `json:"items"`
}
