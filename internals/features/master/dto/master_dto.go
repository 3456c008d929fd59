// File: internals/features/master/dto/master_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	mastermodel "spkmitra_backend/internals/features/master/model"
)

/* ===============================
   MITRA
=================================*/

type MitraCreateDTO struct {
	MitraNama       string  `json:"mitra_nama" validate:"required,min=3,max=120"`
	MitraNIK        *string `json:"mitra_nik,omitempty" validate:"omitempty,len=16"`
	MitraAlamat     *string `json:"mitra_alamat,omitempty"`
	MitraTelp       *string `json:"mitra_telp,omitempty" validate:"omitempty,max=20"`
	MitraBank       *string `json:"mitra_bank,omitempty" validate:"omitempty,max=40"`
	MitraNoRekening *string `json:"mitra_no_rekening,omitempty" validate:"omitempty,max=40"`
}

type MitraUpdateDTO struct {
	MitraNama       *string `json:"mitra_nama,omitempty" validate:"omitempty,min=3,max=120"`
	MitraNIK        *string `json:"mitra_nik,omitempty" validate:"omitempty,len=16"`
	MitraAlamat     *string `json:"mitra_alamat,omitempty"`
	MitraTelp       *string `json:"mitra_telp,omitempty" validate:"omitempty,max=20"`
	MitraBank       *string `json:"mitra_bank,omitempty" validate:"omitempty,max=40"`
	MitraNoRekening *string `json:"mitra_no_rekening,omitempty" validate:"omitempty,max=40"`
	MitraIsActive   *bool   `json:"mitra_is_active,omitempty"`
}

func (in MitraCreateDTO) ToModel() mastermodel.MitraModel {
	return mastermodel.MitraModel{
		MitraNama:       strings.TrimSpace(in.MitraNama),
		MitraNIK:        in.MitraNIK,
		MitraAlamat:     in.MitraAlamat,
		MitraTelp:       in.MitraTelp,
		MitraBank:       in.MitraBank,
		MitraNoRekening: in.MitraNoRekening,
		MitraIsActive:   true,
	}
}

func ApplyMitraUpdate(m *mastermodel.MitraModel, in MitraUpdateDTO) {
	if in.MitraNama != nil {
		m.MitraNama = strings.TrimSpace(*in.MitraNama)
	}
	if in.MitraNIK != nil {
		m.MitraNIK = in.MitraNIK
	}
	if in.MitraAlamat != nil {
		m.MitraAlamat = in.MitraAlamat
	}
	if in.MitraTelp != nil {
		m.MitraTelp = in.MitraTelp
	}
	if in.MitraBank != nil {
		m.MitraBank = in.MitraBank
	}
	if in.MitraNoRekening != nil {
		m.MitraNoRekening = in.MitraNoRekening
	}
	if in.MitraIsActive != nil {
		m.MitraIsActive = *in.MitraIsActive
	}
}

/* ===============================
   AKUN
=================================*/

type AkunCreateDTO struct {
	AkunKode string `json:"akun_kode" validate:"required,max=20"`
	AkunNama string `json:"akun_nama" validate:"required,max=120"`
}

func (in AkunCreateDTO) ToModel() mastermodel.AkunModel {
	return mastermodel.AkunModel{
		AkunKode: strings.TrimSpace(in.AkunKode),
		AkunNama: strings.TrimSpace(in.AkunNama),
	}
}

/* ===============================
   KEGIATAN
=================================*/

type KegiatanCreateDTO struct {
	KegiatanKode     string    `json:"kegiatan_kode" validate:"required,max=30"`
	KegiatanNama     string    `json:"kegiatan_nama" validate:"required,max=160"`
	KegiatanAkunID   uuid.UUID `json:"kegiatan_akun_id" validate:"required"`
	KegiatanTarifIDR int       `json:"kegiatan_tarif_idr" validate:"min=0"`
}

type KegiatanUpdateDTO struct {
	KegiatanNama     *string    `json:"kegiatan_nama,omitempty" validate:"omitempty,max=160"`
	KegiatanAkunID   *uuid.UUID `json:"kegiatan_akun_id,omitempty"`
	KegiatanTarifIDR *int       `json:"kegiatan_tarif_idr,omitempty" validate:"omitempty,min=0"`
	KegiatanIsActive *bool      `json:"kegiatan_is_active,omitempty"`
}

func (in KegiatanCreateDTO) ToModel() mastermodel.KegiatanModel {
	return mastermodel.KegiatanModel{
		KegiatanKode:     strings.TrimSpace(in.KegiatanKode),
		KegiatanNama:     strings.TrimSpace(in.KegiatanNama),
		KegiatanAkunID:   in.KegiatanAkunID,
		KegiatanTarifIDR: in.KegiatanTarifIDR,
		KegiatanIsActive: true,
	}
}

func ApplyKegiatanUpdate(m *mastermodel.KegiatanModel, in KegiatanUpdateDTO) {
	if in.KegiatanNama != nil {
		m.KegiatanNama = strings.TrimSpace(*in.KegiatanNama)
	}
	if in.KegiatanAkunID != nil {
		m.KegiatanAkunID = *in.KegiatanAkunID
	}
	if in.KegiatanTarifIDR != nil {
		m.KegiatanTarifIDR = *in.KegiatanTarifIDR
	}
	if in.KegiatanIsActive != nil {
		m.KegiatanIsActive = *in.KegiatanIsActive
	}
}
