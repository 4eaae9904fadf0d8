package dto

import (
	"strings"
	"time"

	"hatatakip_backend/internals/features/students/model"
	helper "hatatakip_backend/internals/helpers"
)

// ====================
// Response DTO
// ====================

type StudentDTO struct {
	StudentID           int64     `json:"id"`
	StudentFirstName    string    `json:"ad"`
	StudentLastName     string    `json:"soyad"`
	StudentSchool       *string   `json:"okul"`
	StudentGrade        *string   `json:"sinif"`
	StudentPhone        *string   `json:"telefon"`
	StudentEmail        *string   `json:"email"`
	StudentIsActive     bool      `json:"aktif"`
	StudentRegisteredAt time.Time `json:"kayit_tarihi"`
}

func FromModel(m model.StudentModel) StudentDTO {
	return StudentDTO{
		StudentID:           m.StudentID,
		StudentFirstName:    m.StudentFirstName,
		StudentLastName:     m.StudentLastName,
		StudentSchool:       m.StudentSchool,
		StudentGrade:        m.StudentGrade,
		StudentPhone:        m.StudentPhone,
		StudentEmail:        m.StudentEmail,
		StudentIsActive:     m.StudentIsActive,
		StudentRegisteredAt: m.StudentRegisteredAt,
	}
}

func FromModels(ms []model.StudentModel) []StudentDTO {
	out := make([]StudentDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromModel(m))
	}
	return out
}

// ====================
// Request DTO
// ====================

// StudentRequest is the body of both create and update (full replace).
type StudentRequest struct {
	StudentFirstName string  `json:"ad" validate:"notblank,max=100"`
	StudentLastName  string  `json:"soyad" validate:"notblank,max=100"`
	StudentSchool    *string `json:"okul" validate:"omitempty,max=150"`
	StudentGrade     *string `json:"sinif" validate:"omitempty,max=50"`
	StudentPhone     *string `json:"telefon" validate:"omitempty,max=30"`
	StudentEmail     *string `json:"email" validate:"omitempty,email,max=150"`
}

func (r *StudentRequest) Normalize() {
	r.StudentFirstName = strings.TrimSpace(r.StudentFirstName)
	r.StudentLastName = strings.TrimSpace(r.StudentLastName)
	r.StudentSchool = helper.TrimPtr(r.StudentSchool)
	r.StudentGrade = helper.TrimPtr(r.StudentGrade)
	r.StudentPhone = helper.TrimPtr(r.StudentPhone)
	r.StudentEmail = helper.TrimPtr(r.StudentEmail)
}

func (r StudentRequest) ToModel() model.StudentModel {
	m := model.StudentModel{StudentIsActive: true}
	r.ApplyTo(&m)
	return m
}

// ApplyTo overwrites every mutable field; nothing is merged.
func (r StudentRequest) ApplyTo(m *model.StudentModel) {
	m.StudentFirstName = r.StudentFirstName
	m.StudentLastName = r.StudentLastName
	m.StudentSchool = r.StudentSchool
	m.StudentGrade = r.StudentGrade
	m.StudentPhone = r.StudentPhone
	m.StudentEmail = r.StudentEmail
}
