package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	spkapi "spkmitra_backend/internals/features/spk/controller"
)

// SpkUserRoutes: portal mitra, read-only. Identitas mitra diambil dari
// user_id token — query param tidak bisa dipakai untuk melihat SPK mitra
// lain, detail/snapshot milik orang lain dijawab 404.
func SpkUserRoutes(user fiber.Router, db *gorm.DB, unitCode string) {
	h := spkapi.NewSpkHandler(db, unitCode)

	grp := user.Group("/spk")
	{
		grp.Get("/", h.ListMine)
		grp.Get("/:id", h.GetMine)
		grp.Get("/:id/snapshot", h.SnapshotMine)
	}
}
