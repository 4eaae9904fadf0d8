package controller_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	errorRecordService "hatatakip_backend/internals/features/error_records/service"
	"hatatakip_backend/internals/features/solutions/model"
	"hatatakip_backend/internals/features/solutions/route"
	"hatatakip_backend/internals/helpers/events"
	"hatatakip_backend/internals/helpers/imagex"
	"hatatakip_backend/internals/helpers/storage"
	"hatatakip_backend/internals/helpers/uploads"
	"hatatakip_backend/internals/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*fiber.App, *gorm.DB, *storage.MemoryStore, *events.Recorder) {
	t.Helper()
	db := testutil.NewDB(t)
	store := storage.NewMemoryStore("mem://b")
	rec := &events.Recorder{}
	records := errorRecordService.NewErrorRecordService(db, store, rec)

	app := testutil.NewApp()
	route.SolutionRoutes(app.Group("/api/errors"), "solutions", db, records, testutil.NewValidator(), uploads.New(store, 0, imagex.Options{}), rec)
	return app, db, store, rec
}

func TestCreateSolution(t *testing.T) {
	app, db, store, rec := setup(t)
	s := testutil.CreateStudent(t, db, "Ayşe", "Yılmaz", nil)
	r := testutil.CreateErrorRecord(t, db, s.StudentID, "Kesir hatası")
	path := fmt.Sprintf("/api/errors/%d/solutions", r.ErrorRecordID)

	t.Run("json", func(t *testing.T) {
		code, raw := testutil.DoJSON(t, app, http.MethodPost, path, `{"cozum_metni": "Paydaları eşitle", "olusturan": "Öğretmen"}`)
		require.Equal(t, http.StatusCreated, code, string(raw))

		var got map[string]interface{}
		testutil.DecodeJSON(t, raw, &got)
		assert.Equal(t, float64(r.ErrorRecordID), got["hata_id"])
		assert.Equal(t, "Paydaları eşitle", got["cozum_metni"])
		assert.Nil(t, got["gorsel_url"])
	})

	t.Run("empty solution is allowed", func(t *testing.T) {
		code, raw := testutil.DoJSON(t, app, http.MethodPost, path, `{}`)
		require.Equal(t, http.StatusCreated, code, string(raw))
	})

	t.Run("multipart with image", func(t *testing.T) {
		req := testutil.MultipartRequest(t, http.MethodPost, path, map[string]string{"cozum_metni": "Şekil çiz"}, "gorsel", "cizim.png", testutil.TinyPNG(t))
		code, raw := testutil.Do(t, app, req)
		require.Equal(t, http.StatusCreated, code, string(raw))

		var got map[string]interface{}
		testutil.DecodeJSON(t, raw, &got)
		key, _ := got["gorsel_s3_key"].(string)
		assert.True(t, strings.HasPrefix(key, "cozumler/"), key)
		assert.True(t, store.Has(key))
	})

	var n int64
	require.NoError(t, db.Model(&model.SolutionModel{}).Where("hata_id = ?", r.ErrorRecordID).Count(&n).Error)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, []string{events.SolutionAdded, events.SolutionAdded, events.SolutionAdded}, rec.Types())
}

func TestCreateSolutionMissingParent(t *testing.T) {
	app, _, store, _ := setup(t)

	req := testutil.MultipartRequest(t, http.MethodPost, "/api/errors/9999/solutions", map[string]string{"cozum_metni": "x"}, "gorsel", "a.png", testutil.TinyPNG(t))
	code, raw := testutil.Do(t, app, req)
	assert.Equal(t, http.StatusNotFound, code)
	assert.JSONEq(t, `{"error":"Hata bulunamadı"}`, string(raw))
	assert.Empty(t, store.Uploads, "nothing is uploaded for a missing parent")
}

func TestCreateSolutionRejects(t *testing.T) {
	app, db, store, _ := setup(t)
	s := testutil.CreateStudent(t, db, "Ayşe", "Yılmaz", nil)
	r := testutil.CreateErrorRecord(t, db, s.StudentID, "Kesir hatası")
	path := fmt.Sprintf("/api/errors/%d/solutions", r.ErrorRecordID)

	code, _ := testutil.DoJSON(t, app, http.MethodPost, path, `{"cozum": "x"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	req := testutil.MultipartRequest(t, http.MethodPost, path, map[string]string{"cozum_metni": "x"}, "gorsel", "a.txt", []byte("metin"))
	code, raw := testutil.Do(t, app, req)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, string(raw), "Sadece resim dosyaları yüklenebilir!")

	req = testutil.MultipartRequest(t, http.MethodPost, path, map[string]string{"yazar": "x"}, "", "", nil)
	code, _ = testutil.Do(t, app, req)
	assert.Equal(t, http.StatusBadRequest, code)

	assert.Empty(t, store.Uploads)
}
