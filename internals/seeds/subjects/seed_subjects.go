package subjects

import (
	"log"
	"os"
	"strings"

	"hatatakip_backend/internals/features/subjects/model"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type SubjectSeed struct {
	Kategori string  `json:"kategori"`
	AltKonu  string  `json:"alt_konu"`
	Aciklama *string `json:"aciklama"`
}

func seedKey(kategori, altKonu string) string {
	return strings.ToLower(strings.TrimSpace(kategori)) + "|" + strings.ToLower(strings.TrimSpace(altKonu))
}

// SeedSubjectsFromJSON inserts every kategori/alt_konu pair from filePath that
// is not in konular yet and returns how many rows were added.
func SeedSubjectsFromJSON(db *gorm.DB, filePath string) (int, error) {
	log.Println("📥 Dosya okunuyor:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		return 0, errors.Wrap(err, "read subject seeds")
	}

	var seeds []SubjectSeed
	if err := sonic.Unmarshal(file, &seeds); err != nil {
		return 0, errors.Wrap(err, "decode subject seeds")
	}

	var existing []model.SubjectModel
	if err := db.Select("kategori", "alt_konu").Find(&existing).Error; err != nil {
		return 0, errors.Wrap(err, "load existing subjects")
	}
	seen := make(map[string]bool, len(existing))
	for _, s := range existing {
		seen[seedKey(s.SubjectCategory, s.SubjectSubTopic)] = true
	}

	var rows []model.SubjectModel
	for _, s := range seeds {
		k := seedKey(s.Kategori, s.AltKonu)
		if strings.TrimSpace(s.Kategori) == "" || strings.TrimSpace(s.AltKonu) == "" {
			log.Printf("ℹ️ Boş kategori/alt_konu atlandı: %+v", s)
			continue
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		rows = append(rows, model.SubjectModel{
			SubjectCategory:    strings.TrimSpace(s.Kategori),
			SubjectSubTopic:    strings.TrimSpace(s.AltKonu),
			SubjectDescription: s.Aciklama,
		})
	}

	if len(rows) == 0 {
		log.Println("ℹ️ Eklenecek yeni konu yok.")
		return 0, nil
	}
	if err := db.Create(&rows).Error; err != nil {
		return 0, errors.Wrap(err, "insert subjects")
	}
	log.Printf("✅ %d konu eklendi", len(rows))
	return len(rows), nil
}
