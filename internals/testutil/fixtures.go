package testutil

import (
	"testing"
	"time"

	errorRecordModel "hatatakip_backend/internals/features/error_records/model"
	solutionModel "hatatakip_backend/internals/features/solutions/model"
	studentModel "hatatakip_backend/internals/features/students/model"
	subjectModel "hatatakip_backend/internals/features/subjects/model"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func CreateStudent(t *testing.T, db *gorm.DB, ad, soyad string, email *string) studentModel.StudentModel {
	t.Helper()
	m := studentModel.StudentModel{
		StudentFirstName: ad,
		StudentLastName:  soyad,
		StudentEmail:     email,
		StudentIsActive:  true,
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func CreateSubject(t *testing.T, db *gorm.DB, kategori, altKonu string) subjectModel.SubjectModel {
	t.Helper()
	m := subjectModel.SubjectModel{SubjectCategory: kategori, SubjectSubTopic: altKonu}
	require.NoError(t, db.Create(&m).Error)
	return m
}

// ErrorRecordOpt tweaks a record before insert.
type ErrorRecordOpt func(*errorRecordModel.ErrorRecordModel)

func WithSubject(id int64) ErrorRecordOpt {
	return func(m *errorRecordModel.ErrorRecordModel) { m.ErrorRecordSubjectID = &id }
}

func WithDescription(s string) ErrorRecordOpt {
	return func(m *errorRecordModel.ErrorRecordModel) { m.ErrorRecordDescription = &s }
}

func WithImage(key, url string) ErrorRecordOpt {
	return func(m *errorRecordModel.ErrorRecordModel) {
		m.ErrorRecordImageKey = &key
		m.ErrorRecordImageURL = &url
	}
}

func WithStatus(status string) ErrorRecordOpt {
	return func(m *errorRecordModel.ErrorRecordModel) { m.StampStatus(status, time.Now()) }
}

// WithResolvedAt marks the record çözüldü at ts.
func WithResolvedAt(ts time.Time) ErrorRecordOpt {
	return func(m *errorRecordModel.ErrorRecordModel) {
		m.ErrorRecordStatus = errorRecordModel.StatusResolved
		m.ErrorRecordResolvedAt = &ts
	}
}

func WithCreatedAt(ts time.Time) ErrorRecordOpt {
	return func(m *errorRecordModel.ErrorRecordModel) { m.ErrorRecordCreatedAt = ts }
}

func CreateErrorRecord(t *testing.T, db *gorm.DB, studentID int64, baslik string, opts ...ErrorRecordOpt) errorRecordModel.ErrorRecordModel {
	t.Helper()
	m := errorRecordModel.ErrorRecordModel{
		ErrorRecordStudentID: studentID,
		ErrorRecordTitle:     baslik,
		ErrorRecordStatus:    errorRecordModel.StatusUnresolved,
	}
	for _, opt := range opts {
		opt(&m)
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func CreateSolution(t *testing.T, db *gorm.DB, errorRecordID int64, text string, createdAt time.Time) solutionModel.SolutionModel {
	t.Helper()
	m := solutionModel.SolutionModel{
		SolutionErrorRecordID: errorRecordID,
		SolutionText:          &text,
		SolutionCreatedAt:     createdAt,
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}
