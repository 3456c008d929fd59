package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

/* ===============================
   Taksonomi error service layer
=================================*/

// Sentinel errors yang dikembalikan service. Controller memetakan ke HTTP
// status lewat FromServiceError, jadi service tidak perlu tahu soal fiber.
var (
	ErrValidation           = errors.New("validation failed")
	ErrNotFound             = errors.New("not found")
	ErrDuplicate            = errors.New("duplicate")
	ErrInvalidState         = errors.New("invalid state")
	ErrEmptyDocument        = errors.New("document has no items")
	ErrNoData               = errors.New("no data")
	ErrNoApprovedAllocation = errors.New("no approved allocation")
	ErrConcurrency          = errors.New("concurrent update conflict")
)

// FromServiceError mengubah error hasil service/Transaction menjadi response
// JSON konsisten. Error bisnis (4xx) membawa pesan aslinya; error tak dikenal
// jatuh ke 500 generik tanpa membocorkan detail internal.
func FromServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrValidation):
		return JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		return JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrInvalidState):
		return JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, ErrConcurrency):
		// aman di-retry sekali oleh caller
		return JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, ErrEmptyDocument), errors.Is(err, ErrNoData), errors.Is(err, ErrNoApprovedAllocation):
		return JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	default:
		return JsonError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
