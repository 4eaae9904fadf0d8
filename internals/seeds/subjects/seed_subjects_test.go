package subjects

import (
	"os"
	"path/filepath"
	"testing"

	"hatatakip_backend/internals/features/subjects/model"
	"hatatakip_backend/internals/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedSubjectsFromJSON(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.CreateSubject(t, db, "Matematik", "Kesirler")

	path := filepath.Join(t.TempDir(), "subjects.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"kategori": "Matematik", "alt_konu": "kesirler"},
		{"kategori": "Matematik", "alt_konu": "Denklemler", "aciklama": "Birinci derece"},
		{"kategori": "Matematik", "alt_konu": "Denklemler"},
		{"kategori": " ", "alt_konu": "Boş"}
	]`), 0o644))

	n, err := SeedSubjectsFromJSON(db, path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// second run adds nothing
	n, err = SeedSubjectsFromJSON(db, path)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	var rows []model.SubjectModel
	require.NoError(t, db.Order("id").Find(&rows).Error)
	require.Len(t, rows, 2)
	assert.Equal(t, "Denklemler", rows[1].SubjectSubTopic)
	require.NotNil(t, rows[1].SubjectDescription)
	assert.Equal(t, "Birinci derece", *rows[1].SubjectDescription)
}

func TestSeedSubjectsBundledFile(t *testing.T) {
	db := testutil.NewDB(t)

	n, err := SeedSubjectsFromJSON(db, "data_subjects.json")
	require.NoError(t, err)
	assert.Greater(t, n, 0)
}

func TestSeedSubjectsMissingFile(t *testing.T) {
	db := testutil.NewDB(t)

	_, err := SeedSubjectsFromJSON(db, filepath.Join(t.TempDir(), "yok.json"))
	assert.Error(t, err)
}
