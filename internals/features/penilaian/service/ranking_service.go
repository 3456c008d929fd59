package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	penilaianmodel "spkmitra_backend/internals/features/penilaian/model"
	helper "spkmitra_backend/internals/helpers"
)

// RankingService = dua instansiasi mesin SAW yang sama: metrik beban kerja
// dari agregator, atau skor kinerja yang dientri manual. Algoritmanya satu.
type RankingService struct {
	DB         *gorm.DB
	Aggregator *AggregatorService
}

func NewRankingService(db *gorm.DB) *RankingService {
	return &RankingService{DB: db, Aggregator: &AggregatorService{DB: db}}
}

// ManualCandidate = input skor kinerja yang dientri manual.
type ManualCandidate struct {
	MitraID   uuid.UUID
	MitraNama string
	Values    map[string]float64
}

func (s *RankingService) loadCriteria(ctx context.Context, keys []string) ([]Criterion, error) {
	q := s.DB.WithContext(ctx).Model(&penilaianmodel.KriteriaModel{})
	if len(keys) > 0 {
		q = q.Where("kriteria_key IN ?", keys)
	}
	var rows []penilaianmodel.KriteriaModel
	if err := q.Order("kriteria_key ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: registry kriteria kosong", helper.ErrNoData)
	}
	return CriteriaFromModels(rows), nil
}

// RankWorkload: agregasi alokasi approved periode tsb → SAW.
func (s *RankingService) RankWorkload(ctx context.Context, tahun, bulan int16, save bool) ([]RankingEntry, error) {
	candidates, err := s.Aggregator.Aggregate(ctx, tahun, bulan)
	if err != nil {
		return nil, err
	}
	criteria, err := s.loadCriteria(ctx, []string{MetricTotalVolume, MetricTotalNilai, MetricJumlahKegiatan})
	if err != nil {
		return nil, err
	}
	entries, err := Rank(candidates, criteria)
	if err != nil {
		return nil, err
	}
	if save {
		if err := s.saveRun(ctx, tahun, bulan, penilaianmodel.PenilaianSourceWorkload, entries); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// RankManual: kandidat + skor datang dari request body; kriteria bisa subset
// registry (keys kosong = semua kriteria terdaftar).
func (s *RankingService) RankManual(ctx context.Context, tahun, bulan int16, manual []ManualCandidate, keys []string, save bool) ([]RankingEntry, error) {
	criteria, err := s.loadCriteria(ctx, keys)
	if err != nil {
		return nil, err
	}

	candidates := make([]CandidateRow, 0, len(manual))
	for _, m := range manual {
		values := make(map[string]decimal.Decimal, len(m.Values))
		for k, v := range m.Values {
			values[k] = decimal.NewFromFloat(v)
		}
		candidates = append(candidates, CandidateRow{
			MitraID:   m.MitraID,
			MitraNama: m.MitraNama,
			Values:    values,
		})
	}

	entries, err := Rank(candidates, criteria)
	if err != nil {
		return nil, err
	}
	if save {
		if err := s.saveRun(ctx, tahun, bulan, penilaianmodel.PenilaianSourceManual, entries); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

func (s *RankingService) saveRun(ctx context.Context, tahun, bulan int16, source string, entries []RankingEntry) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	run := penilaianmodel.HasilPenilaianModel{
		PenilaianTahun:   tahun,
		PenilaianBulan:   bulan,
		PenilaianSource:  source,
		PenilaianEntries: payload,
	}
	return s.DB.WithContext(ctx).Create(&run).Error
}

// ListRuns mengembalikan run tersimpan, terbaru dulu.
func (s *RankingService) ListRuns(ctx context.Context, tahun, bulan int16, limit, offset int) ([]penilaianmodel.HasilPenilaianModel, int64, error) {
	q := s.DB.WithContext(ctx).Model(&penilaianmodel.HasilPenilaianModel{})
	if tahun > 0 {
		q = q.Where("penilaian_tahun = ?", tahun)
	}
	if bulan > 0 {
		q = q.Where("penilaian_bulan = ?", bulan)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []penilaianmodel.HasilPenilaianModel
	if err := q.Order("penilaian_created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *RankingService) GetRun(ctx context.Context, id uuid.UUID) (*penilaianmodel.HasilPenilaianModel, error) {
	var run penilaianmodel.HasilPenilaianModel
	if err := s.DB.WithContext(ctx).First(&run, "penilaian_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: hasil penilaian %s", helper.ErrNotFound, id)
		}
		return nil, err
	}
	return &run, nil
}
