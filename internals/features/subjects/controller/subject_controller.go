package controller

import (
	"fmt"
	"log"

	database "hatatakip_backend/internals/databases"
	errorRecordModel "hatatakip_backend/internals/features/error_records/model"
	"hatatakip_backend/internals/features/subjects/dto"
	"hatatakip_backend/internals/features/subjects/model"
	helper "hatatakip_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SubjectController struct {
	DB        *gorm.DB
	Validator *helper.Validator
}

func NewSubjectController(db *gorm.DB, v *helper.Validator) *SubjectController {
	return &SubjectController{DB: db, Validator: v}
}

func inUseMessage(m model.SubjectModel) string {
	return fmt.Sprintf("\"%s - %s\" daha önce kullanıldığı için silinemez", m.SubjectCategory, m.SubjectSubTopic)
}

// ======================
// List
// ======================
func (ctrl *SubjectController) ListSubjects(c *fiber.Ctx) error {
	var rows []model.SubjectModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Order("kategori ASC").
		Order("alt_konu ASC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return helper.Internal("Konular listelenirken hata oluştu", err)
	}
	return c.JSON(dto.FromModels(rows))
}

// ======================
// Create
// ======================
func (ctrl *SubjectController) CreateSubject(c *fiber.Ctx) error {
	var body dto.CreateSubjectRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.NewHTTPError(fiber.StatusBadRequest, "Geçersiz istek gövdesi", err)
	}
	body.Normalize()
	if err := ctrl.Validator.Struct(&body); err != nil {
		return err
	}

	m := body.ToModel()
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.Internal("Konu eklenirken hata oluştu", err)
	}
	log.Printf("[SUBJECTS][CREATE] id=%d %s / %s", m.SubjectID, m.SubjectCategory, m.SubjectSubTopic)
	return helper.JsonCreated(c, dto.FromModel(m))
}

func (ctrl *SubjectController) usageCount(db *gorm.DB, id int64) (int64, error) {
	var n int64
	err := db.Model(&errorRecordModel.ErrorRecordModel{}).Where("konu_id = ?", id).Count(&n).Error
	return n, err
}

// ======================
// Usage (delete guard preview)
// ======================
func (ctrl *SubjectController) GetSubjectUsage(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	db := ctrl.DB.WithContext(c.UserContext())

	var m model.SubjectModel
	if err := db.First(&m, "id = ?", id).Error; err != nil {
		if database.IsNotFound(err) {
			return helper.NotFound("Konu bulunamadı")
		}
		return helper.Internal("Konu getirilirken hata oluştu", err)
	}

	n, err := ctrl.usageCount(db, id)
	if err != nil {
		return helper.Internal("Konu getirilirken hata oluştu", err)
	}
	return c.JSON(dto.SubjectUsageDTO{SubjectID: id, ErrorRecordCount: n, InUse: n > 0})
}

// ======================
// Delete (guarded hard delete)
// ======================
func (ctrl *SubjectController) DeleteSubject(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	db := ctrl.DB.WithContext(c.UserContext())

	var m model.SubjectModel
	if err := db.First(&m, "id = ?", id).Error; err != nil && !database.IsNotFound(err) {
		return helper.Internal("Konu silinirken hata oluştu", err)
	}

	n, err := ctrl.usageCount(db, id)
	if err != nil {
		return helper.Internal("Konu silinirken hata oluştu", err)
	}
	if n > 0 {
		return helper.BadRequest(inUseMessage(m))
	}

	if err := db.Delete(&model.SubjectModel{}, "id = ?", id).Error; err != nil {
		// a record may have referenced it after the guard ran
		if database.IsForeignKeyViolation(err) {
			return helper.NewHTTPError(fiber.StatusBadRequest, inUseMessage(m), err)
		}
		return helper.Internal("Konu silinirken hata oluştu", err)
	}
	log.Printf("[SUBJECTS][DELETE] id=%d", id)
	return helper.JsonMessage(c, "Ders/Konu başarıyla silindi")
}
