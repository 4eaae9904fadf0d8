package service

import (
	"context"

	errorRecordModel "hatatakip_backend/internals/features/error_records/model"
	"hatatakip_backend/internals/features/stats/dto"
	studentModel "hatatakip_backend/internals/features/students/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

// Snapshot runs four independent counts; they are not read in one
// transaction, so totals may drift under concurrent writes.
func (s *StatsService) Snapshot(ctx context.Context) (dto.StatsDTO, error) {
	var out dto.StatsDTO
	db := s.DB.WithContext(ctx)

	if err := db.Model(&studentModel.StudentModel{}).Where("aktif = ?", true).Count(&out.TotalStudents).Error; err != nil {
		return out, errors.Wrap(err, "count students")
	}
	if err := db.Model(&errorRecordModel.ErrorRecordModel{}).Count(&out.TotalErrors).Error; err != nil {
		return out, errors.Wrap(err, "count error records")
	}
	if err := db.Model(&errorRecordModel.ErrorRecordModel{}).Where("durum = ?", errorRecordModel.StatusResolved).Count(&out.ResolvedErrors).Error; err != nil {
		return out, errors.Wrap(err, "count resolved")
	}
	if err := db.Model(&errorRecordModel.ErrorRecordModel{}).Where("durum = ?", errorRecordModel.StatusUnresolved).Count(&out.UnresolvedErrors).Error; err != nil {
		return out, errors.Wrap(err, "count unresolved")
	}
	return out, nil
}
