package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	penilaianapi "spkmitra_backend/internals/features/penilaian/controller"
)

// PenilaianAdminRoutes: registry kriteria + eksekusi ranking SAW.
func PenilaianAdminRoutes(admin fiber.Router, db *gorm.DB) {
	kriteria := &penilaianapi.KriteriaHandler{DB: db}
	ranking := penilaianapi.NewRankingHandler(db)

	grp := admin.Group("/penilaian")
	{
		grp.Post("/kriteria", kriteria.Create)
		grp.Get("/kriteria", kriteria.List)
		grp.Patch("/kriteria/:id", kriteria.Update)
		grp.Delete("/kriteria/:id", kriteria.Delete)

		grp.Post("/ranking/workload", ranking.RankWorkload)
		grp.Post("/ranking/manual", ranking.RankManual)
		grp.Get("/hasil", ranking.ListRuns)
		grp.Get("/hasil/:id", ranking.GetRun)
	}
}
