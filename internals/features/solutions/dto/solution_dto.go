package dto

import (
	"time"

	"hatatakip_backend/internals/features/solutions/model"
	helper "hatatakip_backend/internals/helpers"
)

type SolutionDTO struct {
	SolutionID            int64     `json:"id"`
	SolutionErrorRecordID int64     `json:"hata_id"`
	SolutionText          *string   `json:"cozum_metni"`
	SolutionImageURL      *string   `json:"gorsel_url"`
	SolutionImageKey      *string   `json:"gorsel_s3_key"`
	SolutionAuthor        *string   `json:"olusturan"`
	SolutionCreatedAt     time.Time `json:"olusturma_tarihi"`
}

func FromModel(m model.SolutionModel) SolutionDTO {
	return SolutionDTO{
		SolutionID:            m.SolutionID,
		SolutionErrorRecordID: m.SolutionErrorRecordID,
		SolutionText:          m.SolutionText,
		SolutionImageURL:      m.SolutionImageURL,
		SolutionImageKey:      m.SolutionImageKey,
		SolutionAuthor:        m.SolutionAuthor,
		SolutionCreatedAt:     m.SolutionCreatedAt,
	}
}

func FromModels(ms []model.SolutionModel) []SolutionDTO {
	out := make([]SolutionDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromModel(m))
	}
	return out
}

// Form/JSON field names accepted by create.
var CreateFields = []string{"cozum_metni", "olusturan"}

// CreateSolutionRequest: both fields optional, an empty solution is allowed.
type CreateSolutionRequest struct {
	SolutionText   *string `json:"cozum_metni" validate:"omitempty,max=10000"`
	SolutionAuthor *string `json:"olusturan" validate:"omitempty,max=100"`
}

func (r *CreateSolutionRequest) Normalize() {
	r.SolutionText = helper.TrimPtr(r.SolutionText)
	r.SolutionAuthor = helper.TrimPtr(r.SolutionAuthor)
}

func (r *CreateSolutionRequest) FromForm(f *helper.FormFields) {
	r.SolutionText = f.String("cozum_metni")
	r.SolutionAuthor = f.String("olusturan")
}

func (r CreateSolutionRequest) ToModel(errorRecordID int64) model.SolutionModel {
	return model.SolutionModel{
		SolutionErrorRecordID: errorRecordID,
		SolutionText:          r.SolutionText,
		SolutionAuthor:        r.SolutionAuthor,
	}
}
