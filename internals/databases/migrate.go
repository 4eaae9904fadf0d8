package database

import (
	errorRecordModel "hatatakip_backend/internals/features/error_records/model"
	solutionModel "hatatakip_backend/internals/features/solutions/model"
	studentModel "hatatakip_backend/internals/features/students/model"
	subjectModel "hatatakip_backend/internals/features/subjects/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Models in dependency order.
func Models() []interface{} {
	return []interface{}{
		&studentModel.StudentModel{},
		&subjectModel.SubjectModel{},
		&errorRecordModel.ErrorRecordModel{},
		&solutionModel.SolutionModel{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return errors.Wrap(db.AutoMigrate(Models()...), "auto migrate")
}
