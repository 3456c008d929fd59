package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	alokasiapi "spkmitra_backend/internals/features/alokasi/controller"
)

// AlokasiAdminRoutes: CRUD draft alokasi + approve draft.
func AlokasiAdminRoutes(admin fiber.Router, db *gorm.DB) {
	h := alokasiapi.NewAlokasiHandler(db)

	{
		admin.Post("/alokasi", h.Create)
		admin.Get("/alokasi", h.List)
		admin.Patch("/alokasi/:id", h.Update)
		admin.Delete("/alokasi/:id", h.Delete)
		admin.Post("/alokasi/:id/approve", h.ApproveDraft)
	}
}
