package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	spkapi "spkmitra_backend/internals/features/spk/controller"
	"spkmitra_backend/internals/middlewares"
)

// SpkAdminRoutes: penerbitan, rincian, approve/reject, dan snapshot SPK.
func SpkAdminRoutes(admin fiber.Router, db *gorm.DB, unitCode string) {
	h := spkapi.NewSpkHandler(db, unitCode)

	grp := admin.Group("/spk")
	{
		grp.Post("/", h.Issue)
		grp.Post("/generate", h.Generate)

		grp.Get("/", h.List)
		grp.Get("/:id", h.Get)
		grp.Get("/:id/snapshot", h.Snapshot)

		grp.Post("/:id/items", h.AddItem)
		grp.Delete("/:id/items/:itemId", h.RemoveItem)

		grp.Post("/:id/approve", middlewares.ApprovalRateLimiter(), h.Approve)
		grp.Post("/:id/reject", middlewares.ApprovalRateLimiter(), h.Reject)
	}
}
