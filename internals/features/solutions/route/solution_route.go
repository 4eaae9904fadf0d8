package route

import (
	"hatatakip_backend/internals/features/solutions/controller"
	helper "hatatakip_backend/internals/helpers"
	"hatatakip_backend/internals/helpers/events"
	"hatatakip_backend/internals/helpers/uploads"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SolutionRoutes mounts create under a hatalar group, e.g. /api/errors/:id/solutions.
func SolutionRoutes(r fiber.Router, path string, db *gorm.DB, records controller.ErrorRecordChecker, v *helper.Validator, up *uploads.Uploader, pub events.Publisher) {
	ctrl := controller.NewSolutionController(db, records, v, up, pub)

	r.Post("/:id/"+path, ctrl.CreateSolution) // ➕ çözüm ekle (+ görsel)
}
