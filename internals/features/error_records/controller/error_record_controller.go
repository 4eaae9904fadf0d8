package controller

import (
	"log"

	"hatatakip_backend/internals/features/error_records/dto"
	"hatatakip_backend/internals/features/error_records/model"
	"hatatakip_backend/internals/features/error_records/service"
	helper "hatatakip_backend/internals/helpers"
	"hatatakip_backend/internals/helpers/storage"
	"hatatakip_backend/internals/helpers/uploads"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

const (
	msgErrorRecordNotFound = "Hata bulunamadı"
	msgInvalidReference    = "Öğrenci veya ders/konu bulunamadı"
)

var imageFields = []string{"gorsel", "image"}

type ErrorRecordController struct {
	Service   *service.ErrorRecordService
	Validator *helper.Validator
	Uploader  *uploads.Uploader
}

func NewErrorRecordController(svc *service.ErrorRecordService, v *helper.Validator, up *uploads.Uploader) *ErrorRecordController {
	return &ErrorRecordController{Service: svc, Validator: v, Uploader: up}
}

// mapServiceError turns service sentinels into client errors.
func mapServiceError(err error, fallback string) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return helper.NotFound(msgErrorRecordNotFound)
	case errors.Is(err, service.ErrInvalidReference):
		return helper.NewHTTPError(fiber.StatusBadRequest, msgInvalidReference, err)
	case errors.Is(err, service.ErrBlobDelete):
		return helper.Internal("Görsel silinemedi, hata kaydı silinmedi", err)
	}
	return helper.Internal(fallback, err)
}

// ======================
// List
// ======================
func (ctrl *ErrorRecordController) ListErrorRecords(c *fiber.Ctx) error {
	studentID, err := helper.QueryInt64(c, "student_id", "ogrenci_id")
	if err != nil {
		return err
	}
	subjectID, err := helper.QueryInt64(c, "subject_id", "konu_id")
	if err != nil {
		return err
	}
	status := helper.QueryString(c, "status", "durum")
	if status != "" && !model.IsValidStatus(status) {
		return helper.BadRequest("Geçersiz durum değeri: " + status)
	}

	rows, err := ctrl.Service.List(c.UserContext(), service.ListFilter{
		StudentID: studentID,
		SubjectID: subjectID,
		Status:    status,
		Search:    helper.QueryString(c, "search", "arama"),
	})
	if err != nil {
		return helper.Internal("Hatalar listelenirken hata oluştu", err)
	}
	return c.JSON(rows)
}

// ======================
// Get (with solutions)
// ======================
func (ctrl *ErrorRecordController) GetErrorRecord(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	detail, err := ctrl.Service.Get(c.UserContext(), id)
	if err != nil {
		return mapServiceError(err, "Hata getirilirken hata oluştu")
	}
	return c.JSON(detail)
}

// ======================
// Create (JSON or multipart)
// ======================
func (ctrl *ErrorRecordController) CreateErrorRecord(c *fiber.Ctx) error {
	var body dto.CreateErrorRecordRequest
	var object *storage.Object

	if helper.IsMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			return helper.NewHTTPError(fiber.StatusBadRequest, "Geçersiz form verisi", err)
		}
		fields, err := helper.NewFormFields(form, dto.CreateFields, imageFields)
		if err != nil {
			return err
		}
		if err := body.FromForm(fields); err != nil {
			return err
		}
		body.Normalize()
		if err := ctrl.Validator.Struct(&body); err != nil {
			return err
		}

		if fh := helper.FirstFile(form, imageFields...); fh != nil {
			obj, err := ctrl.Uploader.Upload(c.UserContext(), uploads.FolderErrorRecords, fh)
			if err != nil {
				log.Printf("[ERRORS][CREATE] upload failed: %v", err)
				return uploads.AsHTTPError(errors.Wrap(err, "upload error image"))
			}
			object = &obj
		}
	} else {
		if err := c.BodyParser(&body); err != nil {
			return helper.NewHTTPError(fiber.StatusBadRequest, "Geçersiz istek gövdesi", err)
		}
		body.Normalize()
		if err := ctrl.Validator.Struct(&body); err != nil {
			return err
		}
	}

	m := body.ToModel(ctrl.Service.Now())
	if object != nil {
		m.ErrorRecordImageURL = helper.StrPtr(object.URL)
		m.ErrorRecordImageKey = helper.StrPtr(object.Key)
	}
	if err := ctrl.Service.Create(c.UserContext(), &m); err != nil {
		return mapServiceError(err, "Hata kaydedilirken hata oluştu")
	}
	return helper.JsonCreated(c, dto.FromModel(m))
}

// ======================
// Update (full replace)
// ======================
func (ctrl *ErrorRecordController) UpdateErrorRecord(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	var body dto.UpdateErrorRecordRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.NewHTTPError(fiber.StatusBadRequest, "Geçersiz istek gövdesi", err)
	}
	body.Normalize()
	if err := ctrl.Validator.Struct(&body); err != nil {
		return err
	}

	m, err := ctrl.Service.Update(c.UserContext(), id, body)
	if err != nil {
		return mapServiceError(err, "Hata güncellenirken hata oluştu")
	}
	return c.JSON(dto.FromModel(*m))
}

// ======================
// Status
// ======================
func (ctrl *ErrorRecordController) UpdateErrorRecordStatus(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	var body dto.UpdateStatusRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.NewHTTPError(fiber.StatusBadRequest, "Geçersiz istek gövdesi", err)
	}
	if err := ctrl.Validator.Struct(&body); err != nil {
		return err
	}

	m, err := ctrl.Service.UpdateStatus(c.UserContext(), id, body.ErrorRecordStatus)
	if err != nil {
		return mapServiceError(err, "Durum güncellenirken hata oluştu")
	}
	return c.JSON(dto.FromModel(*m))
}

// ======================
// Delete (image first, then row)
// ======================
func (ctrl *ErrorRecordController) DeleteErrorRecord(c *fiber.Ctx) error {
	id, err := helper.ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := ctrl.Service.Delete(c.UserContext(), id); err != nil {
		return mapServiceError(err, "Hata silinirken hata oluştu")
	}
	return helper.JsonMessage(c, "Hata başarıyla silindi")
}
