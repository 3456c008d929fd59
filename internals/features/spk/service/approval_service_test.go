package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	spkmodel "spkmitra_backend/internals/features/spk/model"
	helper "spkmitra_backend/internals/helpers"
)

func seedPendingSpk(t *testing.T, db *gorm.DB, mitraID uuid.UUID, tahun, bulan int16) spkmodel.SpkDocumentModel {
	t.Helper()
	doc := spkmodel.SpkDocumentModel{
		SpkMitraID:    mitraID,
		SpkTahun:      tahun,
		SpkBulan:      bulan,
		SpkStatus:     spkmodel.SpkStatusPending,
		SpkNomorDraft: fmt.Sprintf("DRAFT/%s/%d", testUnitCode, tahun),
	}
	require.NoError(t, db.Create(&doc).Error)
	return doc
}

func TestApproveHappyPath(t *testing.T) {
	db := newTestDB(t)
	svc := &ApprovalService{DB: db, UnitCode: testUnitCode}
	ctx := context.Background()

	mitra := seedMitra(t, db, "Andi")
	akun := seedAkun(t, db, "521213")
	keg1 := seedKegiatan(t, db, akun.AkunID, "ST2026", 15000)
	keg2 := seedKegiatan(t, db, akun.AkunID, "SUSENAS", 20000)

	doc := seedPendingSpk(t, db, mitra.MitraID, 2026, 3)
	seedItem(t, db, doc.SpkID, keg1.KegiatanID, 100, 15000) // 1_500_000
	seedItem(t, db, doc.SpkID, keg2.KegiatanID, 10, 20000)  //   200_000

	approverID := uuid.New()
	before := time.Now().UTC()
	approved, err := svc.Approve(ctx, doc.SpkID, approverID)
	require.NoError(t, err)

	assert.Equal(t, spkmodel.SpkStatusApproved, approved.SpkStatus)
	require.NotNil(t, approved.SpkNomor)
	assert.Equal(t, "1/SPK-MITRA/2026", *approved.SpkNomor)
	assert.Equal(t, 1_700_000, approved.SpkTotalHonorIDR)
	require.NotNil(t, approved.SpkApprovedBy)
	assert.Equal(t, approverID, *approved.SpkApprovedBy)
	require.NotNil(t, approved.SpkApprovedAt)
	assert.False(t, approved.SpkApprovedAt.Before(before))

	var header spkmodel.AlokasiMitraModel
	require.NoError(t, db.First(&header, "alokasi_mitra_spk_id = ?", doc.SpkID).Error)
	assert.Equal(t, 1, header.AlokasiMitraNomorUrut)
	assert.Equal(t, "1/SPK-MITRA/2026", header.AlokasiMitraNomorSpk)
	assert.Equal(t, 1_700_000, header.AlokasiMitraTotalIDR)
	assert.Equal(t, mitra.MitraID, header.AlokasiMitraMitraID)

	var details []spkmodel.AlokasiMitraDetailModel
	require.NoError(t, db.Where("alokasi_mitra_detail_header_id = ?", header.AlokasiMitraID).Find(&details).Error)
	require.Len(t, details, 2)
	for _, d := range details {
		assert.Equal(t, akun.AkunID, d.AlokasiMitraDetailAkunID)
		assert.Equal(t, mitra.MitraID, d.AlokasiMitraDetailMitraID)
	}

	var ctr spkmodel.SpkNumberCounterModel
	require.NoError(t, db.First(&ctr, "spk_counter_tahun = ?", int16(2026)).Error)
	assert.Equal(t, 1, ctr.SpkCounterLastValue)
}

func TestApproveTotalFromStoredItemValues(t *testing.T) {
	db := newTestDB(t)
	svc := &ApprovalService{DB: db, UnitCode: testUnitCode}

	mitra := seedMitra(t, db, "Budi")
	akun := seedAkun(t, db, "521213")
	keg := seedKegiatan(t, db, akun.AkunID, "ST2026", 15000)

	doc := seedPendingSpk(t, db, mitra.MitraID, 2026, 3)
	item := seedItem(t, db, doc.SpkID, keg.KegiatanID, 10, 15000) // nilai 150_000

	// Tarif master berubah setelah item tersimpan: total approve tetap
	// memakai nilai item, bukan rekalkulasi dari kegiatan.
	require.NoError(t, db.Model(&keg).Update("kegiatan_tarif_idr", 99999).Error)

	approved, err := svc.Approve(context.Background(), doc.SpkID, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, item.SpkItemNilaiIDR, approved.SpkTotalHonorIDR)
}

func TestApproveSequencePerFiscalYear(t *testing.T) {
	db := newTestDB(t)
	svc := &ApprovalService{DB: db, UnitCode: testUnitCode}
	ctx := context.Background()

	akun := seedAkun(t, db, "521213")
	keg := seedKegiatan(t, db, akun.AkunID, "ST2026", 10000)

	approve := func(nama string, tahun, bulan int16) string {
		mitra := seedMitra(t, db, nama)
		doc := seedPendingSpk(t, db, mitra.MitraID, tahun, bulan)
		seedItem(t, db, doc.SpkID, keg.KegiatanID, 1, 10000)
		out, err := svc.Approve(ctx, doc.SpkID, uuid.New())
		require.NoError(t, err)
		require.NotNil(t, out.SpkNomor)
		return *out.SpkNomor
	}

	assert.Equal(t, "1/SPK-MITRA/2026", approve("Andi", 2026, 1))
	assert.Equal(t, "2/SPK-MITRA/2026", approve("Budi", 2026, 2))
	// Tahun anggaran baru: urutan mulai lagi dari 1.
	assert.Equal(t, "1/SPK-MITRA/2027", approve("Cici", 2027, 1))
	// Kembali ke 2026: lanjut, nomor lama tidak didaur ulang.
	assert.Equal(t, "3/SPK-MITRA/2026", approve("Dedi", 2026, 3))
}

func TestApproveTwiceIsInvalid(t *testing.T) {
	db := newTestDB(t)
	svc := &ApprovalService{DB: db, UnitCode: testUnitCode}
	ctx := context.Background()

	mitra := seedMitra(t, db, "Andi")
	akun := seedAkun(t, db, "521213")
	keg := seedKegiatan(t, db, akun.AkunID, "ST2026", 10000)
	doc := seedPendingSpk(t, db, mitra.MitraID, 2026, 3)
	seedItem(t, db, doc.SpkID, keg.KegiatanID, 5, 10000)

	first, err := svc.Approve(ctx, doc.SpkID, uuid.New())
	require.NoError(t, err)

	_, err = svc.Approve(ctx, doc.SpkID, uuid.New())
	require.ErrorIs(t, err, helper.ErrInvalidState)

	// Tidak ada efek ganda: satu snapshot, counter tidak bergerak.
	var headers int64
	require.NoError(t, db.Model(&spkmodel.AlokasiMitraModel{}).
		Where("alokasi_mitra_spk_id = ?", doc.SpkID).Count(&headers).Error)
	assert.EqualValues(t, 1, headers)

	var ctr spkmodel.SpkNumberCounterModel
	require.NoError(t, db.First(&ctr, "spk_counter_tahun = ?", int16(2026)).Error)
	assert.Equal(t, 1, ctr.SpkCounterLastValue)

	var reloaded spkmodel.SpkDocumentModel
	require.NoError(t, db.First(&reloaded, "spk_id = ?", doc.SpkID).Error)
	assert.Equal(t, *first.SpkNomor, *reloaded.SpkNomor)
}

func TestApproveEmptyDocumentRollsBack(t *testing.T) {
	db := newTestDB(t)
	svc := &ApprovalService{DB: db, UnitCode: testUnitCode}
	ctx := context.Background()

	mitra := seedMitra(t, db, "Andi")
	akun := seedAkun(t, db, "521213")
	keg := seedKegiatan(t, db, akun.AkunID, "ST2026", 10000)

	empty := seedPendingSpk(t, db, mitra.MitraID, 2026, 3)
	_, err := svc.Approve(ctx, empty.SpkID, uuid.New())
	require.ErrorIs(t, err, helper.ErrEmptyDocument)

	// Dokumen tetap pending, tanpa snapshot, tanpa nomor terpakai.
	var reloaded spkmodel.SpkDocumentModel
	require.NoError(t, db.First(&reloaded, "spk_id = ?", empty.SpkID).Error)
	assert.Equal(t, spkmodel.SpkStatusPending, reloaded.SpkStatus)
	assert.Nil(t, reloaded.SpkNomor)

	var headers int64
	require.NoError(t, db.Model(&spkmodel.AlokasiMitraModel{}).Count(&headers).Error)
	assert.EqualValues(t, 0, headers)

	// Approve berikutnya tetap dapat nomor 1.
	mitra2 := seedMitra(t, db, "Budi")
	doc2 := seedPendingSpk(t, db, mitra2.MitraID, 2026, 3)
	seedItem(t, db, doc2.SpkID, keg.KegiatanID, 1, 10000)
	out, err := svc.Approve(ctx, doc2.SpkID, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "1/SPK-MITRA/2026", *out.SpkNomor)
}

func TestRejectRequiresNote(t *testing.T) {
	db := newTestDB(t)
	svc := &ApprovalService{DB: db, UnitCode: testUnitCode}
	ctx := context.Background()

	mitra := seedMitra(t, db, "Andi")
	doc := seedPendingSpk(t, db, mitra.MitraID, 2026, 3)

	_, err := svc.Reject(ctx, doc.SpkID, "   ")
	require.ErrorIs(t, err, helper.ErrValidation)

	var reloaded spkmodel.SpkDocumentModel
	require.NoError(t, db.First(&reloaded, "spk_id = ?", doc.SpkID).Error)
	assert.Equal(t, spkmodel.SpkStatusPending, reloaded.SpkStatus)
	assert.Nil(t, reloaded.SpkRejectionNote)
}

func TestRejectThenApproveIsInvalid(t *testing.T) {
	db := newTestDB(t)
	svc := &ApprovalService{DB: db, UnitCode: testUnitCode}
	ctx := context.Background()

	mitra := seedMitra(t, db, "Andi")
	akun := seedAkun(t, db, "521213")
	keg := seedKegiatan(t, db, akun.AkunID, "ST2026", 10000)
	doc := seedPendingSpk(t, db, mitra.MitraID, 2026, 3)
	seedItem(t, db, doc.SpkID, keg.KegiatanID, 1, 10000)

	rejected, err := svc.Reject(ctx, doc.SpkID, "volume tidak sesuai lapangan")
	require.NoError(t, err)
	assert.Equal(t, spkmodel.SpkStatusRejected, rejected.SpkStatus)
	require.NotNil(t, rejected.SpkRejectionNote)
	assert.Equal(t, "volume tidak sesuai lapangan", *rejected.SpkRejectionNote)

	_, err = svc.Approve(ctx, doc.SpkID, uuid.New())
	require.ErrorIs(t, err, helper.ErrInvalidState)

	_, err = svc.Reject(ctx, doc.SpkID, "tolak lagi")
	require.ErrorIs(t, err, helper.ErrInvalidState)
}

func TestApproveUnknownSpk(t *testing.T) {
	db := newTestDB(t)
	svc := &ApprovalService{DB: db, UnitCode: testUnitCode}

	_, err := svc.Approve(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, helper.ErrNotFound)
}

func TestApproveSnapshotFrozenAgainstMasterEdits(t *testing.T) {
	db := newTestDB(t)
	svc := &ApprovalService{DB: db, UnitCode: testUnitCode}
	ctx := context.Background()

	mitra := seedMitra(t, db, "Andi")
	akunLama := seedAkun(t, db, "521213")
	keg := seedKegiatan(t, db, akunLama.AkunID, "ST2026", 10000)
	doc := seedPendingSpk(t, db, mitra.MitraID, 2026, 3)
	seedItem(t, db, doc.SpkID, keg.KegiatanID, 2, 10000)

	_, err := svc.Approve(ctx, doc.SpkID, uuid.New())
	require.NoError(t, err)

	// Master berubah setelah approve: snapshot tidak ikut bergeser.
	akunBaru := seedAkun(t, db, "521219")
	require.NoError(t, db.Model(&keg).Update("kegiatan_akun_id", akunBaru.AkunID).Error)

	var detail spkmodel.AlokasiMitraDetailModel
	require.NoError(t, db.First(&detail, "alokasi_mitra_detail_spk_id = ?", doc.SpkID).Error)
	assert.Equal(t, akunLama.AkunID, detail.AlokasiMitraDetailAkunID)
	assert.Equal(t, 20000, detail.AlokasiMitraDetailNilaiIDR)
}

func TestApproveConcurrentUniqueNumbers(t *testing.T) {
	db := newTestDB(t)
	svc := &ApprovalService{DB: db, UnitCode: testUnitCode}
	ctx := context.Background()

	akun := seedAkun(t, db, "521213")
	keg := seedKegiatan(t, db, akun.AkunID, "ST2026", 10000)

	const n = 6
	docIDs := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		mitra := seedMitra(t, db, fmt.Sprintf("Mitra-%02d", i))
		doc := seedPendingSpk(t, db, mitra.MitraID, 2026, 3)
		seedItem(t, db, doc.SpkID, keg.KegiatanID, 1, 10000)
		docIDs = append(docIDs, doc.SpkID)
	}

	var wg sync.WaitGroup
	errCh := make(chan error, n)
	for _, id := range docIDs {
		wg.Add(1)
		go func(spkID uuid.UUID) {
			defer wg.Done()
			_, err := svc.Approve(ctx, spkID, uuid.New())
			errCh <- err
		}(id)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}

	var headers []spkmodel.AlokasiMitraModel
	require.NoError(t, db.Order("alokasi_mitra_nomor_urut ASC").Find(&headers).Error)
	require.Len(t, headers, n)
	for i, h := range headers {
		assert.Equal(t, i+1, h.AlokasiMitraNomorUrut, "nomor urut harus 1..N tanpa duplikat")
		assert.Equal(t, fmt.Sprintf("%d/SPK-MITRA/2026", i+1), h.AlokasiMitraNomorSpk)
	}

	var ctr spkmodel.SpkNumberCounterModel
	require.NoError(t, db.First(&ctr, "spk_counter_tahun = ?", int16(2026)).Error)
	assert.Equal(t, n, ctr.SpkCounterLastValue)
}
