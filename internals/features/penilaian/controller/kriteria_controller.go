package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "spkmitra_backend/internals/features/penilaian/dto"
	penilaianmodel "spkmitra_backend/internals/features/penilaian/model"
	helper "spkmitra_backend/internals/helpers"
)

var validate = validator.New()

func isUniqueViolation(err error) bool {
	return err != nil &&
		(strings.Contains(err.Error(), "duplicate key value") ||
			strings.Contains(err.Error(), "UNIQUE constraint") ||
			strings.Contains(err.Error(), "unique constraint"))
}

// =======================================================
// KRITERIA (registry SAW)
// =======================================================

type KriteriaHandler struct {
	DB *gorm.DB
}

// POST /api/a/penilaian/kriteria
func (h *KriteriaHandler) Create(c *fiber.Ctx) error {
	var in dto.KriteriaCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.ValidationError(c, err)
	}

	m := in.ToModel()
	if err := h.DB.Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "kriteria key sudah terdaftar")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "internal server error")
	}
	return helper.JsonCreated(c, "kriteria created", m)
}

// PATCH /api/a/penilaian/kriteria/:id
func (h *KriteriaHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var in dto.KriteriaUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.ValidationError(c, err)
	}

	var m penilaianmodel.KriteriaModel
	if err := h.DB.First(&m, "kriteria_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "kriteria not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "internal server error")
	}

	dto.ApplyKriteriaUpdate(&m, in)
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "internal server error")
	}
	return helper.JsonUpdated(c, "kriteria updated", m)
}

// DELETE /api/a/penilaian/kriteria/:id
func (h *KriteriaHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	res := h.DB.Where("kriteria_id = ?", id).Delete(&penilaianmodel.KriteriaModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "internal server error")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "kriteria not found")
	}
	return helper.JsonDeleted(c, "kriteria deleted", fiber.Map{"kriteria_id": id})
}

// GET /api/a/penilaian/kriteria
func (h *KriteriaHandler) List(c *fiber.Ctx) error {
	var rows []penilaianmodel.KriteriaModel
	if err := h.DB.Order("kriteria_key ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "internal server error")
	}
	return helper.JsonOK(c, "daftar kriteria", rows)
}
