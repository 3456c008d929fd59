package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "spkmitra_backend/internals/features/master/dto"
	mastermodel "spkmitra_backend/internals/features/master/model"
	helper "spkmitra_backend/internals/helpers"
)

var validate = validator.New()

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

func isUniqueViolation(err error) bool {
	return err != nil &&
		(strings.Contains(err.Error(), "duplicate key value") ||
			strings.Contains(err.Error(), "UNIQUE constraint") ||
			strings.Contains(err.Error(), "unique constraint"))
}

// =======================================================
// MITRA
// =======================================================

type MitraHandler struct {
	DB *gorm.DB
}

// POST /api/a/mitra
func (h *MitraHandler) Create(c *fiber.Ctx) error {
	var in dto.MitraCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.ValidationError(c, err)
	}

	m := in.ToModel()
	if err := h.DB.Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "mitra dengan nama tersebut sudah ada")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "internal server error")
	}
	return helper.JsonCreated(c, "mitra created", m)
}

// PATCH /api/a/mitra/:id
func (h *MitraHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var in dto.MitraUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.ValidationError(c, err)
	}

	var m mastermodel.MitraModel
	if err := h.DB.First(&m, "mitra_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "mitra not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "internal server error")
	}

	dto.ApplyMitraUpdate(&m, in)
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "internal server error")
	}
	return helper.JsonUpdated(c, "mitra updated", m)
}

// DELETE /api/a/mitra/:id (soft delete)
func (h *MitraHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	res := h.DB.Where("mitra_id = ?", id).Delete(&mastermodel.MitraModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "internal server error")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "mitra not found")
	}
	return helper.JsonDeleted(c, "mitra deleted", fiber.Map{"mitra_id": id})
}

// GET /api/a/mitra
func (h *MitraHandler) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&mastermodel.MitraModel{})
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		q = q.Where("mitra_nama LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "internal server error")
	}

	var rows []mastermodel.MitraModel
	if err := q.Order("mitra_nama ASC").Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "internal server error")
	}
	return helper.JsonList(c, "daftar mitra", rows, helper.BuildPagination(paging, total, len(rows)))
}

// GET /api/a/mitra/:id
func (h *MitraHandler) Get(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var m mastermodel.MitraModel
	if err := h.DB.First(&m, "mitra_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "mitra not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "internal server error")
	}
	return helper.JsonOK(c, "detail mitra", m)
}
