package route

import (
	"hatatakip_backend/internals/features/error_records/controller"
	"hatatakip_backend/internals/features/error_records/service"
	helper "hatatakip_backend/internals/helpers"
	"hatatakip_backend/internals/helpers/uploads"

	"github.com/gofiber/fiber/v2"
)

// ErrorRecordRoutes mounts the hatalar endpoints. statusPath is "status" on
// /api/errors and "durum" on the legacy /api/hatalar group.
func ErrorRecordRoutes(r fiber.Router, svc *service.ErrorRecordService, v *helper.Validator, up *uploads.Uploader, statusPath string) {
	ctrl := controller.NewErrorRecordController(svc, v, up)

	r.Get("/", ctrl.ListErrorRecords)                         // 📄 filtreli liste
	r.Post("/", ctrl.CreateErrorRecord)                       // ➕ kayıt (+ görsel)
	r.Get("/:id", ctrl.GetErrorRecord)                        // 🔍 detay + çözümler
	r.Put("/:id", ctrl.UpdateErrorRecord)                     // ✏️ güncelle
	r.Patch("/:id/"+statusPath, ctrl.UpdateErrorRecordStatus) // 🔁 durum
	r.Delete("/:id", ctrl.DeleteErrorRecord)                  // ❌ sil (görsel + satır)
}
