// file: internals/route/index.go
package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"spkmitra_backend/internals/configs"
	"spkmitra_backend/internals/constants"
	alokasiRoute "spkmitra_backend/internals/features/alokasi/route"
	masterRoute "spkmitra_backend/internals/features/master/route"
	penilaianRoute "spkmitra_backend/internals/features/penilaian/route"
	spkRoute "spkmitra_backend/internals/features/spk/route"
	authMiddleware "spkmitra_backend/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
		authMiddleware.RequireRoles(constants.AdminAndAbove...),
	)

	masterRoute.MasterAdminRoutes(admin, db)
	alokasiRoute.AlokasiAdminRoutes(admin, db)
	penilaianRoute.PenilaianAdminRoutes(admin, db)
	spkRoute.SpkAdminRoutes(admin, db, configs.SpkUnitCode)

	// ===================== USER (mitra, read-only) =====================
	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
	)
	spkRoute.SpkUserRoutes(user, db, configs.SpkUnitCode)
}
