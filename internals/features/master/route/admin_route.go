package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	masterapi "spkmitra_backend/internals/features/master/controller"
)

// MasterAdminRoutes: CRUD master data (mitra, akun, kegiatan).
func MasterAdminRoutes(admin fiber.Router, db *gorm.DB) {
	mitra := &masterapi.MitraHandler{DB: db}
	akun := &masterapi.AkunHandler{DB: db}
	kegiatan := &masterapi.KegiatanHandler{DB: db}

	{
		admin.Post("/mitra", mitra.Create)
		admin.Get("/mitra", mitra.List)
		admin.Get("/mitra/:id", mitra.Get)
		admin.Patch("/mitra/:id", mitra.Update)
		admin.Delete("/mitra/:id", mitra.Delete)

		admin.Post("/akun", akun.Create)
		admin.Get("/akun", akun.List)

		admin.Post("/kegiatan", kegiatan.Create)
		admin.Get("/kegiatan", kegiatan.List)
		admin.Patch("/kegiatan/:id", kegiatan.Update)
	}
}
