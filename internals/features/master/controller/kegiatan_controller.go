package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "spkmitra_backend/internals/features/master/dto"
	mastermodel "spkmitra_backend/internals/features/master/model"
	helper "spkmitra_backend/internals/helpers"
)

// =======================================================
// AKUN (mata anggaran)
// =======================================================

type AkunHandler struct {
	DB *gorm.DB
}

// POST /api/a/akun
func (h *AkunHandler) Create(c *fiber.Ctx) error {
	var in dto.AkunCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.ValidationError(c, err)
	}

	m := in.ToModel()
	if err := h.DB.Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "kode akun sudah terdaftar")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "internal server error")
	}
	return helper.JsonCreated(c, "akun created", m)
}

// GET /api/a/akun
func (h *AkunHandler) List(c *fiber.Ctx) error {
	var rows []mastermodel.AkunModel
	if err := h.DB.Order("akun_kode ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "internal server error")
	}
	return helper.JsonOK(c, "daftar akun", rows)
}

// =======================================================
// KEGIATAN
// =======================================================

type KegiatanHandler struct {
	DB *gorm.DB
}

// POST /api/a/kegiatan
func (h *KegiatanHandler) Create(c *fiber.Ctx) error {
	var in dto.KegiatanCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.ValidationError(c, err)
	}

	// akun harus ada
	var count int64
	if err := h.DB.Model(&mastermodel.AkunModel{}).
		Where("akun_id = ?", in.KegiatanAkunID).
		Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "internal server error")
	}
	if count == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "kegiatan_akun_id tidak terdaftar")
	}

	m := in.ToModel()
	if err := h.DB.Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "kode kegiatan sudah terdaftar")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "internal server error")
	}
	return helper.JsonCreated(c, "kegiatan created", m)
}

// PATCH /api/a/kegiatan/:id
func (h *KegiatanHandler) Update(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var in dto.KegiatanUpdateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.ValidationError(c, err)
	}

	var m mastermodel.KegiatanModel
	if err := h.DB.First(&m, "kegiatan_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "kegiatan not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "internal server error")
	}

	dto.ApplyKegiatanUpdate(&m, in)
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "internal server error")
	}
	return helper.JsonUpdated(c, "kegiatan updated", m)
}

// GET /api/a/kegiatan
func (h *KegiatanHandler) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&mastermodel.KegiatanModel{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "internal server error")
	}
	var rows []mastermodel.KegiatanModel
	if err := q.Order("kegiatan_kode ASC").Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "internal server error")
	}
	return helper.JsonList(c, "daftar kegiatan", rows, helper.BuildPagination(paging, total, len(rows)))
}
