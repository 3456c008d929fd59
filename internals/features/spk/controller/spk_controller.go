package controller

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "spkmitra_backend/internals/features/spk/dto"
	service "spkmitra_backend/internals/features/spk/service"
	helper "spkmitra_backend/internals/helpers"
	helperAuth "spkmitra_backend/internals/helpers/auth"
)

var validate = validator.New()

// =======================================================
// BOOTSTRAP
// =======================================================

type SpkHandler struct {
	Issuer    *service.IssuerService
	Approval  *service.ApprovalService
	Documents *service.DocumentService
}

func NewSpkHandler(db *gorm.DB, unitCode string) *SpkHandler {
	return &SpkHandler{
		Issuer:    &service.IssuerService{DB: db, UnitCode: unitCode},
		Approval:  &service.ApprovalService{DB: db, UnitCode: unitCode},
		Documents: &service.DocumentService{DB: db},
	}
}

// =======================================================
// ISSUE / GENERATE
// =======================================================

// POST /api/a/spk
func (h *SpkHandler) Issue(c *fiber.Ctx) error {
	var in dto.SpkIssueDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.ValidationError(c, err)
	}

	doc, err := h.Issuer.Issue(c.UserContext(), in.SpkMitraID, in.SpkTahun, in.SpkBulan)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "spk created", doc)
}

// POST /api/a/spk/generate
// Batch dari hasil ranking: mitra yang sudah punya SPK periode itu dilewati.
func (h *SpkHandler) Generate(c *fiber.Ctx) error {
	var in dto.SpkGenerateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.ValidationError(c, err)
	}

	result, err := h.Issuer.GenerateFromRanking(c.UserContext(), in.SpkTahun, in.SpkBulan, in.MitraIDs)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "spk generated", result)
}

// =======================================================
// ITEMS (hanya selagi pending)
// =======================================================

// POST /api/a/spk/:id/items
func (h *SpkHandler) AddItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var in dto.SpkItemCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := validate.Struct(in); err != nil {
		return helper.ValidationError(c, err)
	}

	item, err := h.Documents.AddItem(c.UserContext(), id, in.SpkItemKegiatanID, in.SpkItemVolume, in.SpkItemTarifIDR)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonCreated(c, "item added", item)
}

// DELETE /api/a/spk/:id/items/:itemId
func (h *SpkHandler) RemoveItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid item id")
	}

	if err := h.Documents.RemoveItem(c.UserContext(), id, itemID); err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonDeleted(c, "item removed", fiber.Map{"spk_item_id": itemID})
}

// =======================================================
// APPROVE / REJECT
// =======================================================

// POST /api/a/spk/:id/approve
func (h *SpkHandler) Approve(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	approverID, err := helperAuth.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}

	doc, err := h.Approval.Approve(c.UserContext(), id, approverID)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "spk approved", doc)
}

// POST /api/a/spk/:id/reject
func (h *SpkHandler) Reject(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var in dto.SpkRejectDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}

	doc, err := h.Approval.Reject(c.UserContext(), id, in.Note)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "spk rejected", doc)
}

// =======================================================
// READ
// =======================================================

// GET /api/a/spk?tahun=&bulan=&mitra_id=&status=
func (h *SpkHandler) List(c *fiber.Ctx) error {
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

	docs, total, err := h.Documents.List(c.UserContext(), f, paging.Limit, paging.Offset)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "daftar spk", docs, helper.BuildPagination(paging, total, len(docs)))
}

// GET /api/a/spk/:id
func (h *SpkHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	doc, items, err := h.Documents.Get(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "detail spk", dto.SpkDetailResponse{Spk: *doc, Items: items})
}

// GET /api/a/spk/:id/snapshot
// View beku untuk renderer dokumen (BAST dsb) — read only.
func (h *SpkHandler) Snapshot(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}
	view, err := h.Documents.Snapshot(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonOK(c, "snapshot spk", view)
}

// =======================================================
// READ — PORTAL MITRA (identitas dari token, bukan query)
// =======================================================

// GET /api/u/spk
// Filter mitra dipaksa ke user_id token: mitra tidak bisa melihat SPK
// mitra lain lewat query param.
func (h *SpkHandler) ListMine(c *fiber.Ctx) error {
	mitraID, err := helperAuth.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	paging := helper.ResolvePaging(c, 20, 100)

	f := service.ListFilter{
		MitraID: &mitraID,
		Tahun:   queryInt16(c, "tahun"),
		Bulan:   queryInt16(c, "bulan"),
		Status:  strings.TrimSpace(c.Query("status")),
	}
	docs, total, err := h.Documents.List(c.UserContext(), f, paging.Limit, paging.Offset)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	return helper.JsonList(c, "daftar spk saya", docs, helper.BuildPagination(paging, total, len(docs)))
}

// GET /api/u/spk/:id
// SPK milik mitra lain dijawab 404, bukan 403, supaya keberadaannya
// tidak bocor.
func (h *SpkHandler) GetMine(c *fiber.Ctx) error {
	mitraID, err := helperAuth.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	doc, items, err := h.Documents.Get(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	if doc.SpkMitraID != mitraID {
		return helper.JsonError(c, fiber.StatusNotFound, "spk tidak ditemukan")
	}
	return helper.JsonOK(c, "detail spk", dto.SpkDetailResponse{Spk: *doc, Items: items})
}

// GET /api/u/spk/:id/snapshot
func (h *SpkHandler) SnapshotMine(c *fiber.Ctx) error {
	mitraID, err := helperAuth.GetUserIDFromLocals(c)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	view, err := h.Documents.Snapshot(c.UserContext(), id)
	if err != nil {
		return helper.FromServiceError(c, err)
	}
	if view.MitraID != mitraID {
		return helper.JsonError(c, fiber.StatusNotFound, "spk tidak ditemukan")
	}
	return helper.JsonOK(c, "snapshot spk", view)
}

func queryInt16(c *fiber.Ctx, key string) int16 {
	v, _ := strconv.Atoi(c.Query(key, "0"))
	return int16(v)
}
