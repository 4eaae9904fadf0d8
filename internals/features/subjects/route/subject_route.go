package route

import (
	"hatatakip_backend/internals/features/subjects/controller"
	helper "hatatakip_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SubjectRoutes(r fiber.Router, db *gorm.DB, v *helper.Validator) {
	ctrl := controller.NewSubjectController(db, v)

	r.Get("/", ctrl.ListSubjects)
	r.Post("/", ctrl.CreateSubject)
	r.Get("/:id/usage", ctrl.GetSubjectUsage)
	r.Delete("/:id", ctrl.DeleteSubject)
}
