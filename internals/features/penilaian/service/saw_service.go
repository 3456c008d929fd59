package service

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	penilaianmodel "spkmitra_backend/internals/features/penilaian/model"
	helper "spkmitra_backend/internals/helpers"
)

/* ===============================
   Tipe input/output
=================================*/

// Criterion = satu kriteria SAW yang sudah dinormalisasi dari registry
// (atau dirakit manual oleh caller).
type Criterion struct {
	Key   string          `json:"key"`
	Nama  string          `json:"nama"`
	Bobot decimal.Decimal `json:"bobot"`
	Jenis string          `json:"jenis"` // benefit|cost
}

// CandidateRow = satu mitra + nilai mentah per key kriteria.
// Transien: dirakit ulang setiap invokasi, tidak pernah dipersist.
type CandidateRow struct {
	MitraID   uuid.UUID
	MitraNama string
	Values    map[string]decimal.Decimal
}

// CriterionDetail = rincian kontribusi satu kriteria untuk satu kandidat.
type CriterionDetail struct {
	Key          string          `json:"key"`
	Raw          decimal.Decimal `json:"raw"`
	Normalized   decimal.Decimal `json:"normalized"`
	Bobot        decimal.Decimal `json:"bobot"`
	Contribution decimal.Decimal `json:"contribution"`
}

// RankingEntry = hasil akhir per kandidat. Score dibulatkan 4 desimal
// (half away from zero), rank 1..N tanpa duplikat/gap.
type RankingEntry struct {
	MitraID   uuid.UUID         `json:"mitra_id"`
	MitraNama string            `json:"mitra_nama"`
	Details   []CriterionDetail `json:"details"`
	Score     decimal.Decimal   `json:"score"`
	Rank      int               `json:"rank"`
}

/* ===============================
   Mesin SAW
=================================*/

// CriteriaFromModels mengubah baris registry jadi kriteria engine.
func CriteriaFromModels(rows []penilaianmodel.KriteriaModel) []Criterion {
	out := make([]Criterion, 0, len(rows))
	for _, r := range rows {
		out = append(out, Criterion{
			Key:   r.KriteriaKey,
			Nama:  r.KriteriaNama,
			Bobot: decimal.NewFromFloat(r.KriteriaBobot),
			Jenis: r.KriteriaJenis,
		})
	}
	return out
}

// Rank menjalankan Simple Additive Weighting: normalisasi per kriteria,
// kali bobot, jumlahkan, urutkan. Murni — tanpa side effect.
//
// Normalisasi:
//   - benefit: v/max (max == 0 => semua 0)
//   - cost:    min/v (v == 0 ditolak sebagai error validasi; tidak boleh ada
//     Inf/NaN yang lolos ke skor tersimpan)
//
// Tie-break: skor sama diurutkan by mitra_id ascending supaya deterministik.
func Rank(candidates []CandidateRow, criteria []Criterion) ([]RankingEntry, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: tidak ada alternatif untuk dinilai", helper.ErrValidation)
	}
	if len(criteria) == 0 {
		return nil, fmt.Errorf("%w: tidak ada kriteria penilaian", helper.ErrValidation)
	}

	// Prakondisi: setiap kandidat punya nilai untuk semua key kriteria.
	for _, cand := range candidates {
		for _, crit := range criteria {
			if _, ok := cand.Values[crit.Key]; !ok {
				return nil, fmt.Errorf("%w: mitra %s tidak punya nilai kriteria %q",
					helper.ErrValidation, cand.MitraID, crit.Key)
			}
		}
	}

	// max/min per kriteria dihitung sekali di muka.
	maxByKey := make(map[string]decimal.Decimal, len(criteria))
	minByKey := make(map[string]decimal.Decimal, len(criteria))
	for _, crit := range criteria {
		first := true
		for _, cand := range candidates {
			v := cand.Values[crit.Key]
			if crit.Jenis == penilaianmodel.KriteriaJenisCost && v.IsZero() {
				return nil, fmt.Errorf("%w: nilai kriteria cost %q untuk mitra %s harus > 0",
					helper.ErrValidation, crit.Key, cand.MitraID)
			}
			if first {
				maxByKey[crit.Key] = v
				minByKey[crit.Key] = v
				first = false
				continue
			}
			if v.GreaterThan(maxByKey[crit.Key]) {
				maxByKey[crit.Key] = v
			}
			if v.LessThan(minByKey[crit.Key]) {
				minByKey[crit.Key] = v
			}
		}
	}

	entries := make([]RankingEntry, 0, len(candidates))
	for _, cand := range candidates {
		details := make([]CriterionDetail, 0, len(criteria))
		score := decimal.Zero
		for _, crit := range criteria {
			raw := cand.Values[crit.Key]

			var normalized decimal.Decimal
			switch crit.Jenis {
			case penilaianmodel.KriteriaJenisBenefit:
				max := maxByKey[crit.Key]
				if max.IsZero() {
					normalized = decimal.Zero
				} else {
					normalized = raw.Div(max)
				}
			case penilaianmodel.KriteriaJenisCost:
				normalized = minByKey[crit.Key].Div(raw)
			default:
				return nil, fmt.Errorf("%w: jenis kriteria %q tidak dikenal (%s)",
					helper.ErrValidation, crit.Key, crit.Jenis)
			}

			contribution := normalized.Mul(crit.Bobot)
			score = score.Add(contribution)
			details = append(details, CriterionDetail{
				Key:          crit.Key,
				Raw:          raw,
				Normalized:   normalized,
				Bobot:        crit.Bobot,
				Contribution: contribution,
			})
		}

		entries = append(entries, RankingEntry{
			MitraID:   cand.MitraID,
			MitraNama: cand.MitraNama,
			Details:   details,
			Score:     score.Round(4), // half away from zero
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		cmp := entries[i].Score.Cmp(entries[j].Score)
		if cmp != 0 {
			return cmp > 0
		}
		return entries[i].MitraID.String() < entries[j].MitraID.String()
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
