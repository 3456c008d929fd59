package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	alokasimodel "spkmitra_backend/internals/features/alokasi/model"
	mastermodel "spkmitra_backend/internals/features/master/model"
	helper "spkmitra_backend/internals/helpers"
)

// AlokasiService mengelola alokasi draft sebelum masuk pipeline SPK.
type AlokasiService struct {
	DB *gorm.DB
}

type CreateInput struct {
	MitraID    uuid.UUID
	KegiatanID uuid.UUID
	Tahun      int16
	Bulan      int16
	Volume     float64
	TarifIDR   int // 0 = pakai tarif default kegiatan
}

func (s *AlokasiService) Create(ctx context.Context, in CreateInput) (*alokasimodel.AlokasiModel, error) {
	if in.Volume <= 0 {
		return nil, fmt.Errorf("%w: volume harus > 0", helper.ErrValidation)
	}

	var row alokasimodel.AlokasiModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var mitra mastermodel.MitraModel
		if err := tx.First(&mitra, "mitra_id = ?", in.MitraID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: mitra %s", helper.ErrNotFound, in.MitraID)
			}
			return err
		}
		var kegiatan mastermodel.KegiatanModel
		if err := tx.First(&kegiatan, "kegiatan_id = ?", in.KegiatanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: kegiatan %s", helper.ErrNotFound, in.KegiatanID)
			}
			return err
		}

		tarif := in.TarifIDR
		if tarif == 0 {
			tarif = kegiatan.KegiatanTarifIDR
		}

		row = alokasimodel.AlokasiModel{
			AlokasiMitraID:    in.MitraID,
			AlokasiKegiatanID: in.KegiatanID,
			AlokasiTahun:      in.Tahun,
			AlokasiBulan:      in.Bulan,
			AlokasiVolume:     in.Volume,
			AlokasiTarifIDR:   tarif,
			AlokasiJumlahIDR:  int(math.Round(in.Volume * float64(tarif))),
			AlokasiStatus:     alokasimodel.AlokasiStatusDraft,
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

type UpdateInput struct {
	Volume   *float64
	TarifIDR *int
}

// Update hanya boleh selagi draft.
func (s *AlokasiService) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*alokasimodel.AlokasiModel, error) {
	var row alokasimodel.AlokasiModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := s.lockDraft(tx, id)
		if err != nil {
			return err
		}
		row = *locked

		if in.Volume != nil {
			if *in.Volume <= 0 {
				return fmt.Errorf("%w: volume harus > 0", helper.ErrValidation)
			}
			row.AlokasiVolume = *in.Volume
		}
		if in.TarifIDR != nil {
			if *in.TarifIDR < 0 {
				return fmt.Errorf("%w: tarif tidak boleh negatif", helper.ErrValidation)
			}
			row.AlokasiTarifIDR = *in.TarifIDR
		}
		row.AlokasiJumlahIDR = int(math.Round(row.AlokasiVolume * float64(row.AlokasiTarifIDR)))
		return tx.Save(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *AlokasiService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := s.lockDraft(tx, id)
		if err != nil {
			return err
		}
		return tx.Delete(row).Error
	})
}

// ApproveDraft: draft → approved, terminal. Baris approved yang dihitung
// agregator penilaian dan total honor penerbitan SPK.
func (s *AlokasiService) ApproveDraft(ctx context.Context, id uuid.UUID) (*alokasimodel.AlokasiModel, error) {
	var row alokasimodel.AlokasiModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := s.lockDraft(tx, id)
		if err != nil {
			return err
		}
		row = *locked
		row.AlokasiStatus = alokasimodel.AlokasiStatusApproved
		return tx.Save(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

type ListFilter struct {
	MitraID *uuid.UUID
	Tahun   int16
	Bulan   int16
	Status  string
}

func (s *AlokasiService) List(ctx context.Context, f ListFilter, limit, offset int) ([]alokasimodel.AlokasiModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&alokasimodel.AlokasiModel{})
	if f.MitraID != nil {
		q = q.Where("alokasi_mitra_id = ?", *f.MitraID)
	}
	if f.Tahun > 0 {
		q = q.Where("alokasi_tahun = ?", f.Tahun)
	}
	if f.Bulan > 0 {
		q = q.Where("alokasi_bulan = ?", f.Bulan)
	}
	if f.Status != "" {
		q = q.Where("alokasi_status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []alokasimodel.AlokasiModel
	if err := q.Order("alokasi_created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *AlokasiService) lockDraft(tx *gorm.DB, id uuid.UUID) (*alokasimodel.AlokasiModel, error) {
	var row alokasimodel.AlokasiModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&row, "alokasi_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: alokasi %s", helper.ErrNotFound, id)
		}
		return nil, err
	}
	if !row.IsDraft() {
		return nil, fmt.Errorf("%w: alokasi %s sudah %s dan tidak bisa diubah",
			helper.ErrInvalidState, id, row.AlokasiStatus)
	}
	return &row, nil
}
