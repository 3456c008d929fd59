package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"spkmitra_backend/internals/configs"
	alokasimodel "spkmitra_backend/internals/features/alokasi/model"
	mastermodel "spkmitra_backend/internals/features/master/model"
	penilaianmodel "spkmitra_backend/internals/features/penilaian/model"
	spkmodel "spkmitra_backend/internals/features/spk/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=spkmitra&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate menjalankan AutoMigrate untuk semua model inti.
func Migrate() {
	if err := AutoMigrate(DB); err != nil {
		log.Fatalf("❌ Gagal migrate: %v", err)
	}
	log.Println("✅ Migrasi schema selesai.")
}

// AutoMigrate dipisah supaya bisa dipakai juga oleh test DB (sqlite in-memory).
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&mastermodel.MitraModel{},
		&mastermodel.AkunModel{},
		&mastermodel.KegiatanModel{},
		&alokasimodel.AlokasiModel{},
		&penilaianmodel.KriteriaModel{},
		&penilaianmodel.HasilPenilaianModel{},
		&spkmodel.SpkDocumentModel{},
		&spkmodel.SpkDocumentItemModel{},
		&spkmodel.AlokasiMitraModel{},
		&spkmodel.AlokasiMitraDetailModel{},
		&spkmodel.SpkNumberCounterModel{},
	)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
