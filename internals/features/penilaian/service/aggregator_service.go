package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	alokasimodel "spkmitra_backend/internals/features/alokasi/model"
	helper "spkmitra_backend/internals/helpers"
)

// Key metrik beban kerja yang dihasilkan agregator. Registry kriteria untuk
// perankingan workload harus memakai key ini.
const (
	MetricTotalVolume    = "total_volume"
	MetricTotalNilai     = "total_nilai"
	MetricJumlahKegiatan = "jumlah_kegiatan"
)

type AggregatorService struct {
	DB *gorm.DB
}

// Aggregate membaca alokasi APPROVED satu periode, group by mitra, dan
// menurunkan metrik untuk mesin SAW: total volume, total nilai honor, dan
// jumlah kegiatan distinct. Read-only & deterministik.
func (s *AggregatorService) Aggregate(ctx context.Context, tahun, bulan int16) ([]CandidateRow, error) {
	type aggRow struct {
		MitraID        uuid.UUID `gorm:"column:mitra_id"`
		MitraNama      string    `gorm:"column:mitra_nama"`
		TotalVolume    float64   `gorm:"column:total_volume"`
		TotalNilai     int64     `gorm:"column:total_nilai"`
		JumlahKegiatan int64     `gorm:"column:jumlah_kegiatan"`
	}

	var rows []aggRow
	err := s.DB.WithContext(ctx).
		Table("alokasis").
		Select(`alokasis.alokasi_mitra_id AS mitra_id,
			mitras.mitra_nama AS mitra_nama,
			COALESCE(SUM(alokasis.alokasi_volume), 0) AS total_volume,
			COALESCE(SUM(alokasis.alokasi_jumlah_idr), 0) AS total_nilai,
			COUNT(DISTINCT alokasis.alokasi_kegiatan_id) AS jumlah_kegiatan`).
		Joins("JOIN mitras ON mitras.mitra_id = alokasis.alokasi_mitra_id").
		Where("alokasis.alokasi_status = ? AND alokasis.alokasi_tahun = ? AND alokasis.alokasi_bulan = ? AND alokasis.alokasi_deleted_at IS NULL",
			alokasimodel.AlokasiStatusApproved, tahun, bulan).
		Group("alokasis.alokasi_mitra_id, mitras.mitra_nama").
		Order("mitras.mitra_nama ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: tidak ada alokasi approved untuk periode %d-%02d",
			helper.ErrNoData, tahun, bulan)
	}

	out := make([]CandidateRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, CandidateRow{
			MitraID:   r.MitraID,
			MitraNama: r.MitraNama,
			Values: map[string]decimal.Decimal{
				MetricTotalVolume:    decimal.NewFromFloat(r.TotalVolume),
				MetricTotalNilai:     decimal.NewFromInt(r.TotalNilai),
				MetricJumlahKegiatan: decimal.NewFromInt(r.JumlahKegiatan),
			},
		})
	}
	return out, nil
}
