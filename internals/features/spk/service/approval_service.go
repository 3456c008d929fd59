package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	spkmodel "spkmitra_backend/internals/features/spk/model"
	helper "spkmitra_backend/internals/helpers"
)

// ApprovalService = state machine SPK: pending → approved | rejected,
// dua-duanya terminal. Approve = hitung total item + mint nomor urut +
// tulis snapshot + finalisasi header, semuanya dalam SATU transaksi.
type ApprovalService struct {
	DB       *gorm.DB
	UnitCode string
}

// Approve menyetujui SPK pending atas nama approver.
//
// Urutan di dalam transaksi:
//  1. lock & load dokumen (ErrNotFound bila tak ada)
//  2. guard status pending (ErrInvalidState — approve ulang tidak mengulang efek)
//  3. load item (ErrEmptyDocument bila kosong)
//  4. total dari nilai item tersimpan, TANPA rekalkulasi dari tarif master
//  5. mint nomor urut tahun anggaran via counter row ter-lock
//  6. insert snapshot header + detail beku per item
//  7. update header: approved + nomor resmi + approver + timestamp UTC
//
// Gagal di titik mana pun = rollback total; nomor tidak ikut terpakai.
func (s *ApprovalService) Approve(ctx context.Context, spkID, approverID uuid.UUID) (*spkmodel.SpkDocumentModel, error) {
	var doc spkmodel.SpkDocumentModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&doc, "spk_id = ?", spkID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: spk %s", helper.ErrNotFound, spkID)
			}
			return err
		}
		if !doc.IsPending() {
			return fmt.Errorf("%w: spk %s berstatus %s, hanya pending yang bisa disetujui",
				helper.ErrInvalidState, spkID, doc.SpkStatus)
		}

		// Item + akun kegiatan (akun dibekukan ke detail snapshot).
		type itemRow struct {
			KegiatanID uuid.UUID `gorm:"column:spk_item_kegiatan_id"`
			AkunID     uuid.UUID `gorm:"column:kegiatan_akun_id"`
			NilaiIDR   int       `gorm:"column:spk_item_nilai_idr"`
		}
		var items []itemRow
		if err := tx.Table("spk_document_items").
			Select("spk_document_items.spk_item_kegiatan_id, kegiatans.kegiatan_akun_id, spk_document_items.spk_item_nilai_idr").
			Joins("JOIN kegiatans ON kegiatans.kegiatan_id = spk_document_items.spk_item_kegiatan_id").
			Where("spk_document_items.spk_item_spk_id = ?", spkID).
			Scan(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return fmt.Errorf("%w: spk %s tidak punya rincian pekerjaan", helper.ErrEmptyDocument, spkID)
		}

		total := 0
		for _, it := range items {
			total += it.NilaiIDR
		}

		nomorUrut, err := s.nextNomorUrut(tx, doc.SpkTahun)
		if err != nil {
			return err
		}
		nomorSpk := fmt.Sprintf("%d/%s/%d", nomorUrut, s.UnitCode, doc.SpkTahun)

		header := spkmodel.AlokasiMitraModel{
			AlokasiMitraSpkID:     doc.SpkID,
			AlokasiMitraMitraID:   doc.SpkMitraID,
			AlokasiMitraTahun:     doc.SpkTahun,
			AlokasiMitraBulan:     doc.SpkBulan,
			AlokasiMitraNomorUrut: nomorUrut,
			AlokasiMitraNomorSpk:  nomorSpk,
			AlokasiMitraTotalIDR:  total,
			AlokasiMitraStatus:    spkmodel.SpkStatusApproved,
		}
		if err := tx.Create(&header).Error; err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: nomor urut %d/%d bentrok", helper.ErrConcurrency, nomorUrut, doc.SpkTahun)
			}
			return err
		}

		details := make([]spkmodel.AlokasiMitraDetailModel, 0, len(items))
		for _, it := range items {
			details = append(details, spkmodel.AlokasiMitraDetailModel{
				AlokasiMitraDetailHeaderID:   header.AlokasiMitraID,
				AlokasiMitraDetailSpkID:      doc.SpkID,
				AlokasiMitraDetailMitraID:    doc.SpkMitraID,
				AlokasiMitraDetailKegiatanID: it.KegiatanID,
				AlokasiMitraDetailAkunID:     it.AkunID,
				AlokasiMitraDetailNilaiIDR:   it.NilaiIDR,
			})
		}
		if err := tx.Create(&details).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		doc.SpkStatus = spkmodel.SpkStatusApproved
		doc.SpkNomor = &nomorSpk
		doc.SpkTotalHonorIDR = total
		doc.SpkApprovedBy = &approverID
		doc.SpkApprovedAt = &now
		return tx.Save(&doc).Error
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Reject menolak SPK pending dengan catatan wajib. Tanpa snapshot, tanpa nomor.
func (s *ApprovalService) Reject(ctx context.Context, spkID uuid.UUID, note string) (*spkmodel.SpkDocumentModel, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return nil, fmt.Errorf("%w: catatan penolakan wajib diisi", helper.ErrValidation)
	}

	var doc spkmodel.SpkDocumentModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&doc, "spk_id = ?", spkID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: spk %s", helper.ErrNotFound, spkID)
			}
			return err
		}
		if !doc.IsPending() {
			return fmt.Errorf("%w: spk %s berstatus %s, hanya pending yang bisa ditolak",
				helper.ErrInvalidState, spkID, doc.SpkStatus)
		}

		doc.SpkStatus = spkmodel.SpkStatusRejected
		doc.SpkRejectionNote = &note
		return tx.Save(&doc).Error
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// nextNomorUrut: counter khusus per tahun anggaran, dibaca FOR UPDATE lalu
// di-increment — bukan scan max(nomor_urut), supaya dua approve paralel
// terserialisasi di baris counter dan tidak pernah dapat nomor sama.
// Nomor mulai dari 1 tiap tahun baru dan tidak pernah didaur ulang.
func (s *ApprovalService) nextNomorUrut(tx *gorm.DB, tahun int16) (int, error) {
	var ctr spkmodel.SpkNumberCounterModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ctr, "spk_counter_tahun = ?", tahun).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		ctr = spkmodel.SpkNumberCounterModel{SpkCounterTahun: tahun}
		if err := tx.Create(&ctr).Error; err != nil {
			if isUniqueViolation(err) {
				// baris counter baru saja dibuat transaksi lain
				return 0, fmt.Errorf("%w: counter tahun %d", helper.ErrConcurrency, tahun)
			}
			return 0, err
		}
	case err != nil:
		return 0, err
	}

	next := ctr.SpkCounterLastValue + 1
	if err := tx.Model(&spkmodel.SpkNumberCounterModel{}).
		Where("spk_counter_tahun = ?", tahun).
		Update("spk_counter_last_value", next).Error; err != nil {
		return 0, err
	}
	return next, nil
}

func isUniqueViolation(err error) bool {
	return err != nil &&
		(strings.Contains(err.Error(), "duplicate key value") ||
			strings.Contains(err.Error(), "UNIQUE constraint") ||
			strings.Contains(err.Error(), "unique constraint"))
}
