package seeds

import (
	"hatatakip_backend/internals/seeds/subjects"

	"gorm.io/gorm"
)

const SubjectsFile = "internals/seeds/subjects/data_subjects.json"

// RunAllSeeds is idempotent; rows that already exist are skipped.
func RunAllSeeds(db *gorm.DB) error {
	//* Konular
	if _, err := subjects.SeedSubjectsFromJSON(db, SubjectsFile); err != nil {
		return err
	}
	return nil
}
