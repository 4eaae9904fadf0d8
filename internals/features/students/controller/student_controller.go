package controller

import (
	"log"

	database "hatatakip_backend/internals/databases"
	"hatatakip_backend/internals/features/students/dto"
	"hatatakip_backend/internals/features/students/model"
	helper "hatatakip_backend/internals/helpers"
	"hatatakip_backend/internals/helpers/events"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	msgStudentNotFound = "Öğrenci bulunamadı"
	msgEmailTaken      = "Bu email adresi zaten kullanılıyor"
)

type StudentController struct {
	DB        *gorm.DB
	Validator *helper.Validator
	Events    events.Publisher
}

func NewStudentController(db *gorm.DB, v *helper.Validator, pub events.Publisher) *StudentController {
	return &StudentController{DB: db, Validator: v, Events: pub}
}

// ======================
// List (aktif only)
// ======================
func (ctrl *StudentController) ListStudents(c *fiber.Ctx) error {
	var rows []model.StudentModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("aktif = ?", true).
		Order("kayit_tarihi DESC").
		Order("id DESC").
		Find(&rows).Error; err != nil {
		return helper.Internal("Öğrenciler listelenirken hata oluştu", err)
	}
	return c.JSON(dto.FromModels(rows))
}

// ======================
// Get by id (ignores aktif)
// ======================
func (ctrl *StudentController) GetStudent(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return err
	}

	var m model.StudentModel
	if err := ctrl.DB.WithContext(c.UserContext()).First(&m, "id = ?", id).Error; err != nil {
		if database.IsNotFound(err) {
			return helper.NotFound(msgStudentNotFound)
		}
		return helper.Internal("Öğrenci getirilirken hata oluştu", err)
	}
	return c.JSON(dto.FromModel(m))
}

// emailTaken is a best-effort pre-check over all rows, active or not.
func (ctrl *StudentController) emailTaken(db *gorm.DB, email *string, exceptID int64) (bool, error) {
	if email == nil {
		return false, nil
	}
	q := db.Model(&model.StudentModel{}).Where("email = ?", *email)
	if exceptID > 0 {
		q = q.Where("id <> ?", exceptID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (ctrl *StudentController) parseBody(c *fiber.Ctx) (dto.StudentRequest, error) {
	var body dto.StudentRequest
	if err := c.BodyParser(&body); err != nil {
		return body, helper.NewHTTPError(fiber.StatusBadRequest, "Geçersiz istek gövdesi", err)
	}
	body.Normalize()
	if err := ctrl.Validator.Struct(&body); err != nil {
		return body, err
	}
	return body, nil
}

// ======================
// Create
// ======================
func (ctrl *StudentController) CreateStudent(c *fiber.Ctx) error {
	body, err := ctrl.parseBody(c)
	if err != nil {
		return err
	}
	db := ctrl.DB.WithContext(c.UserContext())

	taken, err := ctrl.emailTaken(db, body.StudentEmail, 0)
	if err != nil {
		return helper.Internal("Öğrenci kaydedilirken hata oluştu", err)
	}
	if taken {
		return helper.BadRequest(msgEmailTaken)
	}

	m := body.ToModel()
	if err := db.Create(&m).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return helper.NewHTTPError(fiber.StatusBadRequest, msgEmailTaken, err)
		}
		return helper.Internal("Öğrenci kaydedilirken hata oluştu", err)
	}
	log.Printf("[STUDENTS][CREATE] id=%d", m.StudentID)

	events.Emit(c.UserContext(), ctrl.Events, events.New(events.StudentCreated, m.StudentID, dto.FromModel(m)))
	return helper.JsonCreated(c, dto.FromModel(m))
}

// ======================
// Update (full replace)
// ======================
func (ctrl *StudentController) UpdateStudent(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	body, err := ctrl.parseBody(c)
	if err != nil {
		return err
	}
	db := ctrl.DB.WithContext(c.UserContext())

	var m model.StudentModel
	if err := db.First(&m, "id = ?", id).Error; err != nil {
		if database.IsNotFound(err) {
			return helper.NotFound(msgStudentNotFound)
		}
		return helper.Internal("Öğrenci güncellenirken hata oluştu", err)
	}

	taken, err := ctrl.emailTaken(db, body.StudentEmail, id)
	if err != nil {
		return helper.Internal("Öğrenci güncellenirken hata oluştu", err)
	}
	if taken {
		return helper.BadRequest(msgEmailTaken)
	}

	body.ApplyTo(&m)
	if err := db.Model(&m).Select("ad", "soyad", "okul", "sinif", "telefon", "email").Updates(&m).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return helper.NewHTTPError(fiber.StatusBadRequest, msgEmailTaken, err)
		}
		return helper.Internal("Öğrenci güncellenirken hata oluştu", err)
	}
	return c.JSON(dto.FromModel(m))
}

// ======================
// Delete (soft)
// ======================
func (ctrl *StudentController) DeleteStudent(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return err
	}

	res := ctrl.DB.WithContext(c.UserContext()).
		Model(&model.StudentModel{}).
		Where("id = ?", id).
		Update("aktif", false)
	if res.Error != nil {
		return helper.Internal("Öğrenci silinirken hata oluştu", res.Error)
	}
	if res.RowsAffected > 0 {
		log.Printf("[STUDENTS][DELETE] id=%d deactivated", id)
		events.Emit(c.UserContext(), ctrl.Events, events.New(events.StudentDeactivated, id, nil))
	}
	return helper.JsonMessage(c, "Öğrenci başarıyla silindi")
}
