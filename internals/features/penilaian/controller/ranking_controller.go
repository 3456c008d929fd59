package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "spkmitra_backend/internals/features/penilaian/dto"
	service "spkmitra_backend/internals/features/penilaian/service"
	helper "spkmitra_backend/internals/helpers"
)

// =======================================================
// RANKING (SAW)
// =======================================================

type RankingHandler struct {
	Service *service.RankingService
}

func NewRankingHandler(db *gorm.DB) *RankingHandler {
	return &RankingHandler{Service: service.NewRankingService(db)}
}

// POST /api/a/penilaian/ranking/workload
// Metrik beban kerja dari agregasi alokasi approved.
func (h *RankingHandler) RankWorkload(c *fiber.Ctx) error {
	var in dto.RankWorkloadDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.ValidationError(c, err)
	}

	entries, err := h.Service.RankWorkload(c.UserContext(), in.Tahun, in.Bulan, in.Save)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "hasil ranking beban kerja", entries)
}

// POST /api/a/penilaian/ranking/manual
// Skor kinerja dientri manual; mesin SAW yang sama.
func (h *RankingHandler) RankManual(c *fiber.Ctx) error {
	var in dto.RankManualDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.ValidationError(c, err)
	}

	manual := make([]service.ManualCandidate, 0, len(in.Candidates))
	for _, cand := range in.Candidates {
		manual = append(manual, service.ManualCandidate{
			MitraID:   cand.MitraID,
			MitraNama: cand.MitraNama,
			Values:    cand.Values,
		})
	}

	entries, err := h.Service.RankManual(c.UserContext(), in.Tahun, in.Bulan, manual, in.KriteriaKeys, in.Save)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "hasil ranking manual", entries)
}

// GET /api/a/penilaian/hasil?tahun=&bulan=
func (h *RankingHandler) ListRuns(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)
	tahun, _ := strconv.Atoi(c.Query("tahun", "0"))
	bulan, _ := strconv.Atoi(c.Query("bulan", "0"))

	rows, total, err := h.Service.ListRuns(c.UserContext(), int16(tahun), int16(bulan), paging.Limit, paging.Offset)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "hasil penilaian tersimpan", rows, helper.BuildPagination(paging, total, len(rows)))
}

// GET /api/a/penilaian/hasil/:id
func (h *RankingHandler) GetRun(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	run, err := h.Service.GetRun(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "detail hasil penilaian", run)
}
