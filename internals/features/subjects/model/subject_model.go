package model

type SubjectModel struct {
	SubjectID          int64   `gorm:"column:id;primaryKey;autoIncrement"`
	SubjectCategory    string  `gorm:"column:kategori;not null;index:idx_konular_kategori_alt_konu,priority:1"`
	SubjectSubTopic    string  `gorm:"column:alt_konu;not null;index:idx_konular_kategori_alt_konu,priority:2"`
	SubjectDescription *string `gorm:"column:aciklama"`
}

func (SubjectModel) TableName() string {
	return "konular"
}
