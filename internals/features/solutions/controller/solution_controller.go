package controller

import (
	"context"
	"log"
	"mime/multipart"

	database "hatatakip_backend/internals/databases"
	"hatatakip_backend/internals/features/solutions/dto"
	helper "hatatakip_backend/internals/helpers"
	"hatatakip_backend/internals/helpers/events"
	"hatatakip_backend/internals/helpers/uploads"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const msgErrorRecordNotFound = "Hata bulunamadı"

var imageFields = []string{"gorsel", "image"}

// ErrorRecordChecker reports whether a parent hatalar row exists.
type ErrorRecordChecker interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type SolutionController struct {
	DB        *gorm.DB
	Records   ErrorRecordChecker
	Validator *helper.Validator
	Uploader  *uploads.Uploader
	Events    events.Publisher
}

func NewSolutionController(db *gorm.DB, records ErrorRecordChecker, v *helper.Validator, up *uploads.Uploader, pub events.Publisher) *SolutionController {
	return &SolutionController{DB: db, Records: records, Validator: v, Uploader: up, Events: pub}
}

// ======================
// Create (JSON or multipart)
// ======================
func (ctrl *SolutionController) CreateSolution(c *fiber.Ctx) error {
	errorRecordID, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return err
	}

	var body dto.CreateSolutionRequest
	var form *multipart.Form
	if helper.IsMultipart(c) {
		f, err := c.MultipartForm()
		if err != nil {
			return helper.NewHTTPError(fiber.StatusBadRequest, "Geçersiz form verisi", err)
		}
		fields, err := helper.NewFormFields(f, dto.CreateFields, imageFields)
		if err != nil {
			return err
		}
		body.FromForm(fields)
		form = f
	} else if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return helper.NewHTTPError(fiber.StatusBadRequest, "Geçersiz istek gövdesi", err)
		}
	}
	body.Normalize()
	if err := ctrl.Validator.Struct(&body); err != nil {
		return err
	}

	// parent check before anything reaches the blob store
	ok, err := ctrl.Records.Exists(c.UserContext(), errorRecordID)
	if err != nil {
		return helper.Internal("Çözüm kaydedilirken hata oluştu", err)
	}
	if !ok {
		return helper.NotFound(msgErrorRecordNotFound)
	}

	m := body.ToModel(errorRecordID)
	if form != nil {
		if fh := helper.FirstFile(form, imageFields...); fh != nil {
			obj, err := ctrl.Uploader.Upload(c.UserContext(), uploads.FolderSolutions, fh)
			if err != nil {
				log.Printf("[SOLUTIONS][CREATE] upload failed: %v", err)
				return uploads.AsHTTPError(errors.Wrap(err, "upload solution image"))
			}
			m.SolutionImageURL = helper.StrPtr(obj.URL)
			m.SolutionImageKey = helper.StrPtr(obj.Key)
		}
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Omit("ErrorRecord").Create(&m).Error; err != nil {
		if m.SolutionImageKey != nil {
			log.Printf("[SOLUTIONS][CREATE] insert failed, orphaned object %s", *m.SolutionImageKey)
		}
		if database.IsForeignKeyViolation(err) {
			return helper.NewHTTPError(fiber.StatusNotFound, msgErrorRecordNotFound, err)
		}
		return helper.Internal("Çözüm kaydedilirken hata oluştu", err)
	}
	log.Printf("[SOLUTIONS][CREATE] id=%d hata_id=%d", m.SolutionID, errorRecordID)

	events.Emit(c.UserContext(), ctrl.Events, events.New(events.SolutionAdded, m.SolutionID, dto.FromModel(m)))
	return helper.JsonCreated(c, dto.FromModel(m))
}
