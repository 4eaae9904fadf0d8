package model

import "time"

type StudentModel struct {
	StudentID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	StudentFirstName    string    `gorm:"column:ad;not null"`
	StudentLastName     string    `gorm:"column:soyad;not null"`
	StudentSchool       *string   `gorm:"column:okul"`
	StudentGrade        *string   `gorm:"column:sinif"`
	StudentPhone        *string   `gorm:"column:telefon"`
	StudentEmail        *string   `gorm:"column:email;index:idx_ogrenciler_email"`
	StudentIsActive     bool      `gorm:"column:aktif;not null;default:true"`
	StudentRegisteredAt time.Time `gorm:"column:kayit_tarihi;autoCreateTime"`
}

func (StudentModel) TableName() string {
	return "ogrenciler"
}
