package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	database "spkmitra_backend/internals/databases"
	alokasimodel "spkmitra_backend/internals/features/alokasi/model"
	mastermodel "spkmitra_backend/internals/features/master/model"
	spkmodel "spkmitra_backend/internals/features/spk/model"
)

const testUnitCode = "SPK-MITRA"

// newTestDB = sqlite in-memory per test. MaxOpenConns(1) supaya transaksi
// paralel terserialisasi di satu koneksi dan DB shared-cache tetap hidup
// selama test berjalan.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func seedMitra(t *testing.T, db *gorm.DB, nama string) mastermodel.MitraModel {
	t.Helper()
	m := mastermodel.MitraModel{MitraNama: nama, MitraIsActive: true}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func seedAkun(t *testing.T, db *gorm.DB, kode string) mastermodel.AkunModel {
	t.Helper()
	a := mastermodel.AkunModel{AkunKode: kode, AkunNama: "Akun " + kode}
	require.NoError(t, db.Create(&a).Error)
	return a
}

func seedKegiatan(t *testing.T, db *gorm.DB, akunID uuid.UUID, kode string, tarif int) mastermodel.KegiatanModel {
	t.Helper()
	k := mastermodel.KegiatanModel{
		KegiatanKode:     kode,
		KegiatanNama:     "Kegiatan " + kode,
		KegiatanAkunID:   akunID,
		KegiatanTarifIDR: tarif,
		KegiatanIsActive: true,
	}
	require.NoError(t, db.Create(&k).Error)
	return k
}

func seedApprovedAlokasi(t *testing.T, db *gorm.DB, mitraID, kegiatanID uuid.UUID, tahun, bulan int16, volume float64, tarif int) alokasimodel.AlokasiModel {
	t.Helper()
	row := alokasimodel.AlokasiModel{
		AlokasiMitraID:    mitraID,
		AlokasiKegiatanID: kegiatanID,
		AlokasiTahun:      tahun,
		AlokasiBulan:      bulan,
		AlokasiVolume:     volume,
		AlokasiTarifIDR:   tarif,
		AlokasiJumlahIDR:  int(volume * float64(tarif)),
		AlokasiStatus:     alokasimodel.AlokasiStatusApproved,
	}
	require.NoError(t, db.Create(&row).Error)
	return row
}

func seedItem(t *testing.T, db *gorm.DB, spkID, kegiatanID uuid.UUID, volume float64, tarif int) spkmodel.SpkDocumentItemModel {
	t.Helper()
	item := spkmodel.SpkDocumentItemModel{
		SpkItemSpkID:      spkID,
		SpkItemKegiatanID: kegiatanID,
		SpkItemVolume:     volume,
		SpkItemTarifIDR:   tarif,
		SpkItemNilaiIDR:   int(volume * float64(tarif)),
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}
