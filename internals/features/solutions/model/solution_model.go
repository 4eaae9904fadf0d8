package model

import (
	"time"

	errorRecordModel "hatatakip_backend/internals/features/error_records/model"
)

type SolutionModel struct {
	SolutionID            int64     `gorm:"column:id;primaryKey;autoIncrement"`
	SolutionErrorRecordID int64     `gorm:"column:hata_id;not null;index"`
	SolutionText          *string   `gorm:"column:cozum_metni"`
	SolutionImageURL      *string   `gorm:"column:gorsel_url"`
	SolutionImageKey      *string   `gorm:"column:gorsel_s3_key"`
	SolutionAuthor        *string   `gorm:"column:olusturan"`
	SolutionCreatedAt     time.Time `gorm:"column:olusturma_tarihi;autoCreateTime"`

	ErrorRecord *errorRecordModel.ErrorRecordModel `gorm:"foreignKey:SolutionErrorRecordID;references:ErrorRecordID;constraint:OnDelete:CASCADE"`
}

func (SolutionModel) TableName() string {
	return "cozumler"
}
