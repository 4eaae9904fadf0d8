package dto

type StatsDTO struct {
	TotalStudents    int64 `json:"toplam_ogrenci"`
	TotalErrors      int64 `json:"toplam_hata"`
	ResolvedErrors   int64 `json:"cozulmus_hata"`
	UnresolvedErrors int64 `json:"cozulmemis_hata"`
}
