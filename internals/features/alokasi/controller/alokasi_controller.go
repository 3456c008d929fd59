package controller

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "spkmitra_backend/internals/features/alokasi/dto"
	service "spkmitra_backend/internals/features/alokasi/service"
	helper "spkmitra_backend/internals/helpers"
)

var validate = validator.New()

type AlokasiHandler struct {
	Service *service.AlokasiService
}

func NewAlokasiHandler(db *gorm.DB) *AlokasiHandler {
	return &AlokasiHandler{Service: &service.AlokasiService{DB: db}}
}

// POST /api/a/alokasi
func (h *AlokasiHandler) Create(c *fiber.Ctx) error {
	var in dto.AlokasiCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.ValidationError(c, err)
	}

	row, err := h.Service.Create(c.UserContext(), service.CreateInput{
		MitraID:    in.AlokasiMitraID,
		KegiatanID: in.AlokasiKegiatanID,
		Tahun:      in.AlokasiTahun,
		Bulan:      in.AlokasiBulan,
		Volume:     in.AlokasiVolume,
		TarifIDR:   in.AlokasiTarifIDR,
	})
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "alokasi created", row)
}

// PATCH /api/a/alokasi/:id
func (h *AlokasiHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var in dto.AlokasiUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.ValidationError(c, err)
	}

	row, err := h.Service.Update(c.UserContext(), id, service.UpdateInput{
		Volume:   in.AlokasiVolume,
		TarifIDR: in.AlokasiTarifIDR,
	})
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonUpdated(c, "alokasi updated", row)
}

// DELETE /api/a/alokasi/:id
func (h *AlokasiHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	if err := h.Service.Delete(c.UserContext(), id); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "alokasi deleted", fiber.Map{"alokasi_id": id})
}

// POST /api/a/alokasi/:id/approve
func (h *AlokasiHandler) ApproveDraft(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	row, err := h.Service.ApproveDraft(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "alokasi approved", row)
}

// GET /api/a/alokasi?tahun=&bulan=&mitra_id=&status=
func (h *AlokasiHandler) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	f := service.ListFilter{
		Tahun:  queryInt16(c, "tahun"),
		Bulan:  queryInt16(c, "bulan"),
		Status: strings.TrimSpace(c.Query("status")),
	}
	if raw := c.Query("mitra_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "invalid mitra_id")
		}
		f.MitraID = &id
	}

	rows, total, err := h.Service.List(c.UserContext(), f, paging.Limit, paging.Offset)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "daftar alokasi", rows, helper.BuildPagination(paging, total, len(rows)))
}

func queryInt16(c *fiber.Ctx, key string) int16 {
	v, _ := strconv.Atoi(c.Query(key, "0"))
	return int16(v)
}
