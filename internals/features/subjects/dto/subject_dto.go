package dto

import (
	"strings"

	"hatatakip_backend/internals/features/subjects/model"
	helper "hatatakip_backend/internals/helpers"
)

type SubjectDTO struct {
	SubjectID          int64   `json:"id"`
	SubjectCategory    string  `json:"kategori"`
	SubjectSubTopic    string  `json:"alt_konu"`
	SubjectDescription *string `json:"aciklama"`
}

func FromModel(m model.SubjectModel) SubjectDTO {
	return SubjectDTO{
		SubjectID:          m.SubjectID,
		SubjectCategory:    m.SubjectCategory,
		SubjectSubTopic:    m.SubjectSubTopic,
		SubjectDescription: m.SubjectDescription,
	}
}

func FromModels(ms []model.SubjectModel) []SubjectDTO {
	out := make([]SubjectDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromModel(m))
	}
	return out
}

type CreateSubjectRequest struct {
	SubjectCategory    string  `json:"kategori" validate:"notblank,max=100"`
	SubjectSubTopic    string  `json:"alt_konu" validate:"notblank,max=150"`
	SubjectDescription *string `json:"aciklama" validate:"omitempty,max=1000"`
}

func (r *CreateSubjectRequest) Normalize() {
	r.SubjectCategory = strings.TrimSpace(r.SubjectCategory)
	r.SubjectSubTopic = strings.TrimSpace(r.SubjectSubTopic)
	r.SubjectDescription = helper.TrimPtr(r.SubjectDescription)
}

func (r CreateSubjectRequest) ToModel() model.SubjectModel {
	return model.SubjectModel{
		SubjectCategory:    r.SubjectCategory,
		SubjectSubTopic:    r.SubjectSubTopic,
		SubjectDescription: r.SubjectDescription,
	}
}

// SubjectUsageDTO tells the UI whether a delete would be refused.
type SubjectUsageDTO struct {
	SubjectID        int64 `json:"konu_id"`
	ErrorRecordCount int64 `json:"hata_sayisi"`
	InUse            bool  `json:"kullaniliyor"`
}
