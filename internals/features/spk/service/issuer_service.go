package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	alokasimodel "spkmitra_backend/internals/features/alokasi/model"
	mastermodel "spkmitra_backend/internals/features/master/model"
	spkmodel "spkmitra_backend/internals/features/spk/model"
	helper "spkmitra_backend/internals/helpers"
)

// IssuerService menerbitkan header SPK pending per (mitra, periode).
// UnitCode = kode satuan kerja untuk komposisi nomor (dari SPK_UNIT_CODE).
type IssuerService struct {
	DB       *gorm.DB
	UnitCode string
}

// GenerateResult = hasil batch generate dari ranking: yang berhasil dibuat
// dan mitra yang dilewati karena sudah punya SPK periode tsb.
type GenerateResult struct {
	Created []spkmodel.SpkDocumentModel `json:"created"`
	Skipped []uuid.UUID                 `json:"skipped"`
}

// Issue membuat satu SPK pending. Gagal dengan:
//   - ErrNotFound              : mitra tidak ada
//   - ErrDuplicate             : sudah ada SPK hidup (pending/approved) periode itu
//   - ErrNoApprovedAllocation  : tidak ada alokasi approved yang bisa ditagihkan
//
// Baris mitra di-lock FOR UPDATE sebelum cek duplikat supaya dua Issue
// paralel untuk mitra yang sama terserialisasi; index unik parsial di
// spk_documents jadi jaring pengaman terakhirnya.
func (s *IssuerService) Issue(ctx context.Context, mitraID uuid.UUID, tahun, bulan int16) (*spkmodel.SpkDocumentModel, error) {
	var doc spkmodel.SpkDocumentModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var mitra mastermodel.MitraModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&mitra, "mitra_id = ?", mitraID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: mitra %s", helper.ErrNotFound, mitraID)
			}
			return err
		}

		// SPK rejected tidak memblokir penerbitan ulang (jalur koreksi satu-satunya).
		var existing int64
		if err := tx.Model(&spkmodel.SpkDocumentModel{}).
			Where("spk_mitra_id = ? AND spk_tahun = ? AND spk_bulan = ? AND spk_status <> ?",
				mitraID, tahun, bulan, spkmodel.SpkStatusRejected).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return fmt.Errorf("%w: mitra %s sudah punya SPK periode %d-%02d",
				helper.ErrDuplicate, mitraID, tahun, bulan)
		}

		var total int64
		if err := tx.Model(&alokasimodel.AlokasiModel{}).
			Where("alokasi_mitra_id = ? AND alokasi_tahun = ? AND alokasi_bulan = ? AND alokasi_status = ?",
				mitraID, tahun, bulan, alokasimodel.AlokasiStatusApproved).
			Select("COALESCE(SUM(alokasi_jumlah_idr), 0)").
			Scan(&total).Error; err != nil {
			return err
		}
		if total <= 0 {
			return fmt.Errorf("%w: mitra %s periode %d-%02d",
				helper.ErrNoApprovedAllocation, mitraID, tahun, bulan)
		}

		doc = spkmodel.SpkDocumentModel{
			SpkMitraID:       mitraID,
			SpkTahun:         tahun,
			SpkBulan:         bulan,
			SpkStatus:        spkmodel.SpkStatusPending,
			SpkNomorDraft:    fmt.Sprintf("DRAFT/%s/%d", s.UnitCode, tahun),
			SpkTotalHonorIDR: int(total),
		}
		if err := tx.Create(&doc).Error; err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: mitra %s sudah punya SPK periode %d-%02d",
					helper.ErrDuplicate, mitraID, tahun, bulan)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// GenerateFromRanking menerbitkan SPK untuk tiap mitra hasil ranking.
// Duplikat per mitra tidak menggagalkan batch: mitra tsb masuk Skipped dan
// sisanya tetap diproses. Error lain menghentikan batch.
func (s *IssuerService) GenerateFromRanking(ctx context.Context, tahun, bulan int16, mitraIDs []uuid.UUID) (*GenerateResult, error) {
	if len(mitraIDs) == 0 {
		return nil, fmt.Errorf("%w: daftar mitra hasil ranking kosong", helper.ErrValidation)
	}

	result := &GenerateResult{
		Created: make([]spkmodel.SpkDocumentModel, 0, len(mitraIDs)),
		Skipped: make([]uuid.UUID, 0),
	}
	for _, mitraID := range mitraIDs {
		doc, err := s.Issue(ctx, mitraID, tahun, bulan)
		if err != nil {
			if errors.Is(err, helper.ErrDuplicate) {
				result.Skipped = append(result.Skipped, mitraID)
				continue
			}
			return nil, err
		}
		result.Created = append(result.Created, *doc)
	}
	return result, nil
}
