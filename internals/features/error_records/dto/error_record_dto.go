package dto

import (
	"strings"
	"time"

	"hatatakip_backend/internals/features/error_records/model"
	solutionDTO "hatatakip_backend/internals/features/solutions/dto"
	helper "hatatakip_backend/internals/helpers"
)

// ====================
// Response DTO
// ====================

// ErrorRecordDTO is the raw hatalar row (create/update responses).
type ErrorRecordDTO struct {
	ErrorRecordID          int64      `gorm:"column:id" json:"id"`
	ErrorRecordStudentID   int64      `gorm:"column:ogrenci_id" json:"ogrenci_id"`
	ErrorRecordSubjectID   *int64     `gorm:"column:konu_id" json:"konu_id"`
	ErrorRecordTitle       string     `gorm:"column:baslik" json:"baslik"`
	ErrorRecordDescription *string    `gorm:"column:aciklama" json:"aciklama"`
	ErrorRecordImageURL    *string    `gorm:"column:gorsel_url" json:"gorsel_url"`
	ErrorRecordImageKey    *string    `gorm:"column:gorsel_s3_key" json:"gorsel_s3_key"`
	ErrorRecordStatus      string     `gorm:"column:durum" json:"durum"`
	ErrorRecordNotes       *string    `gorm:"column:notlar" json:"notlar"`
	ErrorRecordCreatedAt   time.Time  `gorm:"column:olusturma_tarihi" json:"olusturma_tarihi"`
	ErrorRecordResolvedAt  *time.Time `gorm:"column:cozum_tarihi" json:"cozum_tarihi"`
}

func FromModel(m model.ErrorRecordModel) ErrorRecordDTO {
	return ErrorRecordDTO{
		ErrorRecordID:          m.ErrorRecordID,
		ErrorRecordStudentID:   m.ErrorRecordStudentID,
		ErrorRecordSubjectID:   m.ErrorRecordSubjectID,
		ErrorRecordTitle:       m.ErrorRecordTitle,
		ErrorRecordDescription: m.ErrorRecordDescription,
		ErrorRecordImageURL:    m.ErrorRecordImageURL,
		ErrorRecordImageKey:    m.ErrorRecordImageKey,
		ErrorRecordStatus:      m.ErrorRecordStatus,
		ErrorRecordNotes:       m.ErrorRecordNotes,
		ErrorRecordCreatedAt:   m.ErrorRecordCreatedAt,
		ErrorRecordResolvedAt:  m.ErrorRecordResolvedAt,
	}
}

// ErrorRecordRow is one list entry: the row plus the joined student and
// subject display fields, flattened. Join misses leave them null.
type ErrorRecordRow struct {
	ErrorRecordDTO
	StudentFirstName *string `gorm:"column:ogrenci_ad" json:"ogrenci_ad"`
	StudentLastName  *string `gorm:"column:ogrenci_soyad" json:"ogrenci_soyad"`
	SubjectCategory  *string `gorm:"column:kategori" json:"kategori"`
	SubjectSubTopic  *string `gorm:"column:alt_konu" json:"alt_konu"`
}

type ErrorRecordDetail struct {
	ErrorRecordRow
	Solutions []solutionDTO.SolutionDTO `json:"cozumler"`
}

// ====================
// Request DTO
// ====================

// Form/JSON field names accepted by create.
var CreateFields = []string{"ogrenci_id", "konu_id", "baslik", "aciklama", "durum", "notlar"}

type CreateErrorRecordRequest struct {
	ErrorRecordStudentID   *int64  `json:"ogrenci_id" validate:"required,gt=0"`
	ErrorRecordSubjectID   *int64  `json:"konu_id" validate:"omitempty,gt=0"`
	ErrorRecordTitle       string  `json:"baslik" validate:"notblank,max=255"`
	ErrorRecordDescription *string `json:"aciklama" validate:"omitempty,max=10000"`
	ErrorRecordStatus      *string `json:"durum" validate:"omitempty,record_status"`
	ErrorRecordNotes       *string `json:"notlar" validate:"omitempty,max=10000"`
}

func (r *CreateErrorRecordRequest) FromForm(f *helper.FormFields) error {
	var err error
	if r.ErrorRecordStudentID, err = f.Int64("ogrenci_id"); err != nil {
		return err
	}
	if r.ErrorRecordSubjectID, err = f.Int64("konu_id"); err != nil {
		return err
	}
	if s := f.String("baslik"); s != nil {
		r.ErrorRecordTitle = *s
	}
	r.ErrorRecordDescription = f.String("aciklama")
	r.ErrorRecordStatus = f.String("durum")
	r.ErrorRecordNotes = f.String("notlar")
	return nil
}

func (r *CreateErrorRecordRequest) Normalize() {
	r.ErrorRecordTitle = strings.TrimSpace(r.ErrorRecordTitle)
	r.ErrorRecordDescription = helper.TrimPtr(r.ErrorRecordDescription)
	r.ErrorRecordStatus = helper.TrimPtr(r.ErrorRecordStatus)
	r.ErrorRecordNotes = helper.TrimPtr(r.ErrorRecordNotes)
}

func (r CreateErrorRecordRequest) ToModel(now time.Time) model.ErrorRecordModel {
	m := model.ErrorRecordModel{
		ErrorRecordSubjectID:   r.ErrorRecordSubjectID,
		ErrorRecordTitle:       r.ErrorRecordTitle,
		ErrorRecordDescription: r.ErrorRecordDescription,
		ErrorRecordNotes:       r.ErrorRecordNotes,
		ErrorRecordStatus:      model.StatusUnresolved,
	}
	if r.ErrorRecordStudentID != nil {
		m.ErrorRecordStudentID = *r.ErrorRecordStudentID
	}
	status := model.StatusUnresolved
	if r.ErrorRecordStatus != nil {
		status = *r.ErrorRecordStatus
	}
	m.ApplyStatus(status, now)
	return m
}

// UpdateErrorRecordRequest replaces the editable fields.
type UpdateErrorRecordRequest struct {
	ErrorRecordSubjectID   *int64  `json:"konu_id" validate:"omitempty,gt=0"`
	ErrorRecordTitle       string  `json:"baslik" validate:"notblank,max=255"`
	ErrorRecordDescription *string `json:"aciklama" validate:"omitempty,max=10000"`
	ErrorRecordStatus      string  `json:"durum" validate:"record_status"`
	ErrorRecordNotes       *string `json:"notlar" validate:"omitempty,max=10000"`
}

func (r *UpdateErrorRecordRequest) Normalize() {
	r.ErrorRecordTitle = strings.TrimSpace(r.ErrorRecordTitle)
	r.ErrorRecordDescription = helper.TrimPtr(r.ErrorRecordDescription)
	r.ErrorRecordStatus = strings.TrimSpace(r.ErrorRecordStatus)
	r.ErrorRecordNotes = helper.TrimPtr(r.ErrorRecordNotes)
}

func (r UpdateErrorRecordRequest) ApplyTo(m *model.ErrorRecordModel, now time.Time) {
	m.ErrorRecordSubjectID = r.ErrorRecordSubjectID
	m.ErrorRecordTitle = r.ErrorRecordTitle
	m.ErrorRecordDescription = r.ErrorRecordDescription
	m.ErrorRecordNotes = r.ErrorRecordNotes
	m.ApplyStatus(r.ErrorRecordStatus, now)
}

type UpdateStatusRequest struct {
	ErrorRecordStatus string `json:"durum" validate:"record_status"`
}
