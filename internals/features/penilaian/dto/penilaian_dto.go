// File: internals/features/penilaian/dto/penilaian_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	penilaianmodel "spkmitra_backend/internals/features/penilaian/model"
)

/* ===============================
   KRITERIA
=================================*/

type KriteriaCreateDTO struct {
	KriteriaKey   string  `json:"kriteria_key" validate:"required,max=60"`
	KriteriaNama  string  `json:"kriteria_nama" validate:"required,max=120"`
	KriteriaBobot float64 `json:"kriteria_bobot" validate:"min=0,max=1"`
	KriteriaJenis string  `json:"kriteria_jenis" validate:"required,oneof=benefit cost"`
}

type KriteriaUpdateDTO struct {
	KriteriaNama  *string  `json:"kriteria_nama,omitempty" validate:"omitempty,max=120"`
	KriteriaBobot *float64 `json:"kriteria_bobot,omitempty" validate:"omitempty,min=0,max=1"`
	KriteriaJenis *string  `json:"kriteria_jenis,omitempty" validate:"omitempty,oneof=benefit cost"`
}

func (in KriteriaCreateDTO) ToModel() penilaianmodel.KriteriaModel {
	return penilaianmodel.KriteriaModel{
		KriteriaKey:   strings.TrimSpace(in.KriteriaKey),
		KriteriaNama:  strings.TrimSpace(in.KriteriaNama),
		KriteriaBobot: in.KriteriaBobot,
		KriteriaJenis: in.KriteriaJenis,
	}
}

// ApplyKriteriaUpdate: key sengaja tidak bisa diganti — edit kriteria hanya
// berlaku prospektif, run historis yang tersimpan tetap beku.
func ApplyKriteriaUpdate(m *penilaianmodel.KriteriaModel, in KriteriaUpdateDTO) {
	if in.KriteriaNama != nil {
		m.KriteriaNama = strings.TrimSpace(*in.KriteriaNama)
	}
	if in.KriteriaBobot != nil {
		m.KriteriaBobot = *in.KriteriaBobot
	}
	if in.KriteriaJenis != nil {
		m.KriteriaJenis = *in.KriteriaJenis
	}
}

/* ===============================
   RANKING
=================================*/

type RankWorkloadDTO struct {
	Tahun int16 `json:"tahun" validate:"required,min=2000,max=2100"`
	Bulan int16 `json:"bulan" validate:"required,min=1,max=12"`
	Save  bool  `json:"save"`
}

type ManualCandidateDTO struct {
	MitraID   uuid.UUID          `json:"mitra_id" validate:"required"`
	MitraNama string             `json:"mitra_nama" validate:"required"`
	Values    map[string]float64 `json:"values" validate:"required,min=1"`
}

type RankManualDTO struct {
	Tahun        int16                `json:"tahun" validate:"required,min=2000,max=2100"`
	Bulan        int16                `json:"bulan" validate:"required,min=1,max=12"`
	KriteriaKeys []string             `json:"kriteria_keys,omitempty"`
	Candidates   []ManualCandidateDTO `json:"candidates" validate:"required,min=1,dive"`
	Save         bool                 `json:"save"`
}
