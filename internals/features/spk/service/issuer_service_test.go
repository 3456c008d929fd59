package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	spkmodel "spkmitra_backend/internals/features/spk/model"
	helper "spkmitra_backend/internals/helpers"
)

func TestIssueHappyPath(t *testing.T) {
	db := newTestDB(t)
	svc := &IssuerService{DB: db, UnitCode: testUnitCode}
	ctx := context.Background()

	mitra := seedMitra(t, db, "Andi")
	akun := seedAkun(t, db, "521213")
	keg1 := seedKegiatan(t, db, akun.AkunID, "ST2026", 15000)
	keg2 := seedKegiatan(t, db, akun.AkunID, "SUSENAS", 20000)
	seedApprovedAlokasi(t, db, mitra.MitraID, keg1.KegiatanID, 2026, 3, 100, 15000) // 1_500_000
	seedApprovedAlokasi(t, db, mitra.MitraID, keg2.KegiatanID, 2026, 3, 10, 20000)  //   200_000

	doc, err := svc.Issue(ctx, mitra.MitraID, 2026, 3)
	require.NoError(t, err)

	assert.Equal(t, spkmodel.SpkStatusPending, doc.SpkStatus)
	assert.Equal(t, 1_700_000, doc.SpkTotalHonorIDR)
	assert.Equal(t, "DRAFT/SPK-MITRA/2026", doc.SpkNomorDraft)
	assert.Nil(t, doc.SpkNomor, "nomor resmi belum boleh ada sebelum approve")
	assert.NotEqual(t, uuid.Nil, doc.SpkID)
}

func TestIssueIgnoresDraftAndOtherPeriodAllocations(t *testing.T) {
	db := newTestDB(t)
	svc := &IssuerService{DB: db, UnitCode: testUnitCode}
	ctx := context.Background()

	mitra := seedMitra(t, db, "Budi")
	akun := seedAkun(t, db, "521213")
	keg := seedKegiatan(t, db, akun.AkunID, "ST2026", 10000)

	seedApprovedAlokasi(t, db, mitra.MitraID, keg.KegiatanID, 2026, 3, 50, 10000) // masuk
	seedApprovedAlokasi(t, db, mitra.MitraID, keg.KegiatanID, 2026, 4, 99, 10000) // bulan lain
	draft := seedApprovedAlokasi(t, db, mitra.MitraID, keg.KegiatanID, 2026, 3, 77, 10000)
	require.NoError(t, db.Model(&draft).Update("alokasi_status", "draft").Error)

	doc, err := svc.Issue(ctx, mitra.MitraID, 2026, 3)
	require.NoError(t, err)
	assert.Equal(t, 500_000, doc.SpkTotalHonorIDR)
}

func TestIssueDuplicatePeriodRejected(t *testing.T) {
	db := newTestDB(t)
	svc := &IssuerService{DB: db, UnitCode: testUnitCode}
	ctx := context.Background()

	mitra := seedMitra(t, db, "Cici")
	akun := seedAkun(t, db, "521213")
	keg := seedKegiatan(t, db, akun.AkunID, "ST2026", 10000)
	seedApprovedAlokasi(t, db, mitra.MitraID, keg.KegiatanID, 2026, 3, 10, 10000)

	_, err := svc.Issue(ctx, mitra.MitraID, 2026, 3)
	require.NoError(t, err)

	_, err = svc.Issue(ctx, mitra.MitraID, 2026, 3)
	require.ErrorIs(t, err, helper.ErrDuplicate)

	// Periode berbeda tetap boleh.
	seedApprovedAlokasi(t, db, mitra.MitraID, keg.KegiatanID, 2026, 4, 10, 10000)
	_, err = svc.Issue(ctx, mitra.MitraID, 2026, 4)
	require.NoError(t, err)
}

func TestIssueAfterRejectionAllowed(t *testing.T) {
	db := newTestDB(t)
	issuer := &IssuerService{DB: db, UnitCode: testUnitCode}
	approval := &ApprovalService{DB: db, UnitCode: testUnitCode}
	ctx := context.Background()

	mitra := seedMitra(t, db, "Dedi")
	akun := seedAkun(t, db, "521213")
	keg := seedKegiatan(t, db, akun.AkunID, "ST2026", 10000)
	seedApprovedAlokasi(t, db, mitra.MitraID, keg.KegiatanID, 2026, 3, 10, 10000)

	doc, err := issuer.Issue(ctx, mitra.MitraID, 2026, 3)
	require.NoError(t, err)

	_, err = approval.Reject(ctx, doc.SpkID, "alokasi salah")
	require.NoError(t, err)

	// SPK rejected tidak memblokir penerbitan ulang.
	_, err = issuer.Issue(ctx, mitra.MitraID, 2026, 3)
	require.NoError(t, err)
}

func TestIssueWithoutApprovedAllocation(t *testing.T) {
	db := newTestDB(t)
	svc := &IssuerService{DB: db, UnitCode: testUnitCode}

	mitra := seedMitra(t, db, "Eka")
	_, err := svc.Issue(context.Background(), mitra.MitraID, 2026, 3)
	require.ErrorIs(t, err, helper.ErrNoApprovedAllocation)
}

func TestIssueUnknownMitra(t *testing.T) {
	db := newTestDB(t)
	svc := &IssuerService{DB: db, UnitCode: testUnitCode}

	_, err := svc.Issue(context.Background(), uuid.New(), 2026, 3)
	require.ErrorIs(t, err, helper.ErrNotFound)
}

func TestGenerateFromRankingSkipsDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := &IssuerService{DB: db, UnitCode: testUnitCode}
	ctx := context.Background()

	akun := seedAkun(t, db, "521213")
	keg := seedKegiatan(t, db, akun.AkunID, "ST2026", 10000)

	m1 := seedMitra(t, db, "Andi")
	m2 := seedMitra(t, db, "Budi")
	m3 := seedMitra(t, db, "Cici")
	for _, id := range []uuid.UUID{m1.MitraID, m2.MitraID, m3.MitraID} {
		seedApprovedAlokasi(t, db, id, keg.KegiatanID, 2026, 3, 10, 10000)
	}

	// m2 sudah punya SPK periode ini.
	_, err := svc.Issue(ctx, m2.MitraID, 2026, 3)
	require.NoError(t, err)

	res, err := svc.GenerateFromRanking(ctx, 2026, 3, []uuid.UUID{m1.MitraID, m2.MitraID, m3.MitraID})
	require.NoError(t, err)
	assert.Len(t, res.Created, 2)
	assert.Equal(t, []uuid.UUID{m2.MitraID}, res.Skipped)

	var count int64
	require.NoError(t, db.Model(&spkmodel.SpkDocumentModel{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestIssueConcurrentSamePeriodCreatesOne(t *testing.T) {
	db := newTestDB(t)
	svc := &IssuerService{DB: db, UnitCode: testUnitCode}
	ctx := context.Background()

	mitra := seedMitra(t, db, "Andi")
	akun := seedAkun(t, db, "521213")
	keg := seedKegiatan(t, db, akun.AkunID, "ST2026", 10000)
	seedApprovedAlokasi(t, db, mitra.MitraID, keg.KegiatanID, 2026, 3, 10, 10000)

	const n = 4
	var wg sync.WaitGroup
	errCh := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Issue(ctx, mitra.MitraID, 2026, 3)
			errCh <- err
		}()
	}
	wg.Wait()
	close(errCh)

	created := 0
	for err := range errCh {
		if err == nil {
			created++
			continue
		}
		require.ErrorIs(t, err, helper.ErrDuplicate)
	}
	assert.Equal(t, 1, created, "hanya satu Issue yang boleh lolos")

	var count int64
	require.NoError(t, db.Model(&spkmodel.SpkDocumentModel{}).
		Where("spk_mitra_id = ? AND spk_tahun = ? AND spk_bulan = ?", mitra.MitraID, 2026, 3).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLiveDocumentUniquePerPeriodAtSchemaLevel(t *testing.T) {
	db := newTestDB(t)

	mitra := seedMitra(t, db, "Budi")
	live := spkmodel.SpkDocumentModel{
		SpkMitraID:    mitra.MitraID,
		SpkTahun:      2026,
		SpkBulan:      3,
		SpkStatus:     spkmodel.SpkStatusPending,
		SpkNomorDraft: "DRAFT/SPK-MITRA/2026",
	}
	require.NoError(t, db.Create(&live).Error)

	// Insert langsung (melewati service) tetap ditolak schema.
	dup := spkmodel.SpkDocumentModel{
		SpkMitraID:    mitra.MitraID,
		SpkTahun:      2026,
		SpkBulan:      3,
		SpkStatus:     spkmodel.SpkStatusPending,
		SpkNomorDraft: "DRAFT/SPK-MITRA/2026",
	}
	err := db.Create(&dup).Error
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err), "err: %v", err)

	// Baris rejected di luar index parsial: tidak memblok dokumen hidup baru.
	rejected := spkmodel.SpkDocumentModel{
		SpkMitraID:    mitra.MitraID,
		SpkTahun:      2026,
		SpkBulan:      4,
		SpkStatus:     spkmodel.SpkStatusRejected,
		SpkNomorDraft: "DRAFT/SPK-MITRA/2026",
	}
	require.NoError(t, db.Create(&rejected).Error)
	after := spkmodel.SpkDocumentModel{
		SpkMitraID:    mitra.MitraID,
		SpkTahun:      2026,
		SpkBulan:      4,
		SpkStatus:     spkmodel.SpkStatusPending,
		SpkNomorDraft: "DRAFT/SPK-MITRA/2026",
	}
	require.NoError(t, db.Create(&after).Error)
}

func TestGenerateFromRankingEmptyList(t *testing.T) {
	db := newTestDB(t)
	svc := &IssuerService{DB: db, UnitCode: testUnitCode}

	_, err := svc.GenerateFromRanking(context.Background(), 2026, 3, nil)
	require.ErrorIs(t, err, helper.ErrValidation)
}
