package model

import (
	"time"

	studentModel "hatatakip_backend/internals/features/students/model"
	subjectModel "hatatakip_backend/internals/features/subjects/model"
)

// Wire values of hatalar.durum.
const (
	StatusUnresolved  = "çözülmedi"
	StatusUnderReview = "inceleniyor"
	StatusResolved    = "çözüldü"
)

var Statuses = []string{StatusUnresolved, StatusUnderReview, StatusResolved}

func IsValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

type ErrorRecordModel struct {
	ErrorRecordID          int64      `gorm:"column:id;primaryKey;autoIncrement"`
	ErrorRecordStudentID   int64      `gorm:"column:ogrenci_id;not null;index"`
	ErrorRecordSubjectID   *int64     `gorm:"column:konu_id;index"`
	ErrorRecordTitle       string     `gorm:"column:baslik;not null"`
	ErrorRecordDescription *string    `gorm:"column:aciklama"`
	ErrorRecordImageURL    *string    `gorm:"column:gorsel_url"`
	ErrorRecordImageKey    *string    `gorm:"column:gorsel_s3_key"`
	ErrorRecordStatus      string     `gorm:"column:durum;not null;default:çözülmedi;index"`
	ErrorRecordNotes       *string    `gorm:"column:notlar"`
	ErrorRecordCreatedAt   time.Time  `gorm:"column:olusturma_tarihi;autoCreateTime"`
	ErrorRecordResolvedAt  *time.Time `gorm:"column:cozum_tarihi"`

	// Relations (constraints only, never preloaded)
	Student *studentModel.StudentModel `gorm:"foreignKey:ErrorRecordStudentID;references:StudentID;constraint:OnDelete:RESTRICT"`
	Subject *subjectModel.SubjectModel `gorm:"foreignKey:ErrorRecordSubjectID;references:SubjectID;constraint:OnDelete:RESTRICT"`
}

func (ErrorRecordModel) TableName() string {
	return "hatalar"
}

// ApplyStatus sets durum and keeps cozum_tarihi consistent with it.
// A record that is already resolved keeps its original resolution time.
func (m *ErrorRecordModel) ApplyStatus(status string, now time.Time) {
	wasResolved := m.ErrorRecordStatus == StatusResolved && m.ErrorRecordResolvedAt != nil
	m.ErrorRecordStatus = status

	switch {
	case status != StatusResolved:
		m.ErrorRecordResolvedAt = nil
	case !wasResolved:
		t := now
		m.ErrorRecordResolvedAt = &t
	}
}

// StampStatus always restamps cozum_tarihi on resolve.
func (m *ErrorRecordModel) StampStatus(status string, now time.Time) {
	m.ErrorRecordStatus = status
	if status == StatusResolved {
		t := now
		m.ErrorRecordResolvedAt = &t
		return
	}
	m.ErrorRecordResolvedAt = nil
}
