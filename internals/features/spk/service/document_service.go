package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	mastermodel "spkmitra_backend/internals/features/master/model"
	spkmodel "spkmitra_backend/internals/features/spk/model"
	helper "spkmitra_backend/internals/helpers"
)

// DocumentService = query & mutasi rincian SPK di luar state machine approve.
type DocumentService struct {
	DB *gorm.DB
}

type ListFilter struct {
	MitraID *uuid.UUID
	Tahun   int16
	Bulan   int16
	Status  string
}

func (s *DocumentService) List(ctx context.Context, f ListFilter, limit, offset int) ([]spkmodel.SpkDocumentModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&spkmodel.SpkDocumentModel{})
	if f.MitraID != nil {
		q = q.Where("spk_mitra_id = ?", *f.MitraID)
	}
	if f.Tahun > 0 {
		q = q.Where("spk_tahun = ?", f.Tahun)
	}
	if f.Bulan > 0 {
		q = q.Where("spk_bulan = ?", f.Bulan)
	}
	if f.Status != "" {
		q = q.Where("spk_status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var docs []spkmodel.SpkDocumentModel
	if err := q.Order("spk_created_at DESC").Limit(limit).Offset(offset).Find(&docs).Error; err != nil {
		return nil, 0, err
	}
	return docs, total, nil
}

func (s *DocumentService) Get(ctx context.Context, spkID uuid.UUID) (*spkmodel.SpkDocumentModel, []spkmodel.SpkDocumentItemModel, error) {
	var doc spkmodel.SpkDocumentModel
	if err := s.DB.WithContext(ctx).First(&doc, "spk_id = ?", spkID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: spk %s", helper.ErrNotFound, spkID)
		}
		return nil, nil, err
	}
	var items []spkmodel.SpkDocumentItemModel
	if err := s.DB.WithContext(ctx).
		Where("spk_item_spk_id = ?", spkID).
		Order("spk_item_created_at ASC").
		Find(&items).Error; err != nil {
		return nil, nil, err
	}
	return &doc, items, nil
}

// AddItem menambah rincian selagi dokumen pending; nilai dihitung server
// (volume × tarif) dan total header ikut diperbarui.
func (s *DocumentService) AddItem(ctx context.Context, spkID, kegiatanID uuid.UUID, volume float64, tarifIDR int) (*spkmodel.SpkDocumentItemModel, error) {
	if volume <= 0 {
		return nil, fmt.Errorf("%w: volume harus > 0", helper.ErrValidation)
	}
	if tarifIDR < 0 {
		return nil, fmt.Errorf("%w: tarif tidak boleh negatif", helper.ErrValidation)
	}

	var item spkmodel.SpkDocumentItemModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := s.lockPending(tx, spkID)
		if err != nil {
			return err
		}

		var kegiatan mastermodel.KegiatanModel
		if err := tx.First(&kegiatan, "kegiatan_id = ?", kegiatanID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: kegiatan %s", helper.ErrNotFound, kegiatanID)
			}
			return err
		}
		if tarifIDR == 0 {
			tarifIDR = kegiatan.KegiatanTarifIDR
		}

		item = spkmodel.SpkDocumentItemModel{
			SpkItemSpkID:      doc.SpkID,
			SpkItemKegiatanID: kegiatanID,
			SpkItemVolume:     volume,
			SpkItemTarifIDR:   tarifIDR,
			SpkItemNilaiIDR:   int(math.Round(volume * float64(tarifIDR))),
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return s.refreshTotal(tx, doc)
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *DocumentService) RemoveItem(ctx context.Context, spkID, itemID uuid.UUID) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := s.lockPending(tx, spkID)
		if err != nil {
			return err
		}

		res := tx.Where("spk_item_id = ? AND spk_item_spk_id = ?", itemID, spkID).
			Delete(&spkmodel.SpkDocumentItemModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: item %s di spk %s", helper.ErrNotFound, itemID, spkID)
		}
		return s.refreshTotal(tx, doc)
	})
}

/* ===============================
   Snapshot view (read-only)
=================================*/

// SnapshotView = potret beku SPK approved untuk renderer dokumen hilir.
// Hanya baca — tidak ada jalan dari sini untuk memutasi dokumen.
type SnapshotView struct {
	NomorSpk   string                             `json:"nomor_spk"`
	NomorUrut  int                                `json:"nomor_urut"`
	MitraID    uuid.UUID                          `json:"mitra_id"`
	MitraNama  string                             `json:"mitra_nama"`
	Tahun      int16                              `json:"tahun"`
	Bulan      int16                              `json:"bulan"`
	TotalIDR   int                                `json:"total_idr"`
	Details    []spkmodel.AlokasiMitraDetailModel `json:"details"`
	ApprovedAt string                             `json:"approved_at"`
}

func (s *DocumentService) Snapshot(ctx context.Context, spkID uuid.UUID) (*SnapshotView, error) {
	var doc spkmodel.SpkDocumentModel
	if err := s.DB.WithContext(ctx).First(&doc, "spk_id = ?", spkID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: spk %s", helper.ErrNotFound, spkID)
		}
		return nil, err
	}
	if !doc.IsApproved() {
		return nil, fmt.Errorf("%w: spk %s belum approved, snapshot belum ada",
			helper.ErrInvalidState, spkID)
	}

	var header spkmodel.AlokasiMitraModel
	if err := s.DB.WithContext(ctx).First(&header, "alokasi_mitra_spk_id = ?", spkID).Error; err != nil {
		return nil, err
	}
	var details []spkmodel.AlokasiMitraDetailModel
	if err := s.DB.WithContext(ctx).
		Where("alokasi_mitra_detail_header_id = ?", header.AlokasiMitraID).
		Find(&details).Error; err != nil {
		return nil, err
	}

	var mitraNama string
	if err := s.DB.WithContext(ctx).Table("mitras").
		Select("mitra_nama").
		Where("mitra_id = ?", doc.SpkMitraID).
		Scan(&mitraNama).Error; err != nil {
		return nil, err
	}

	approvedAt := ""
	if doc.SpkApprovedAt != nil {
		approvedAt = doc.SpkApprovedAt.Format("2006-01-02T15:04:05Z")
	}
	return &SnapshotView{
		NomorSpk:   header.AlokasiMitraNomorSpk,
		NomorUrut:  header.AlokasiMitraNomorUrut,
		MitraID:    doc.SpkMitraID,
		MitraNama:  mitraNama,
		Tahun:      header.AlokasiMitraTahun,
		Bulan:      header.AlokasiMitraBulan,
		TotalIDR:   header.AlokasiMitraTotalIDR,
		Details:    details,
		ApprovedAt: approvedAt,
	}, nil
}

/* ===============================
   Internal
=================================*/

func (s *DocumentService) lockPending(tx *gorm.DB, spkID uuid.UUID) (*spkmodel.SpkDocumentModel, error) {
	var doc spkmodel.SpkDocumentModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&doc, "spk_id = ?", spkID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: spk %s", helper.ErrNotFound, spkID)
		}
		return nil, err
	}
	if !doc.IsPending() {
		return nil, fmt.Errorf("%w: rincian spk %s terkunci karena status %s",
			helper.ErrInvalidState, spkID, doc.SpkStatus)
	}
	return &doc, nil
}

func (s *DocumentService) refreshTotal(tx *gorm.DB, doc *spkmodel.SpkDocumentModel) error {
	var total int64
	if err := tx.Model(&spkmodel.SpkDocumentItemModel{}).
		Where("spk_item_spk_id = ?", doc.SpkID).
		Select("COALESCE(SUM(spk_item_nilai_idr), 0)").
		Scan(&total).Error; err != nil {
		return err
	}
	return tx.Model(&spkmodel.SpkDocumentModel{}).
		Where("spk_id = ?", doc.SpkID).
		Update("spk_total_honor_idr", total).Error
}
