package route

import (
	"hatatakip_backend/internals/features/students/controller"
	helper "hatatakip_backend/internals/helpers"
	"hatatakip_backend/internals/helpers/events"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func StudentRoutes(r fiber.Router, db *gorm.DB, v *helper.Validator, pub events.Publisher) {
	ctrl := controller.NewStudentController(db, v, pub)

	r.Get("/", ctrl.ListStudents)        // 📄 aktif öğrenciler
	r.Post("/", ctrl.CreateStudent)      // ➕ kayıt
	r.Get("/:id", ctrl.GetStudent)       // 🔍 detay
	r.Put("/:id", ctrl.UpdateStudent)    // ✏️ güncelle
	r.Delete("/:id", ctrl.DeleteStudent) // ❌ pasifleştir
}
