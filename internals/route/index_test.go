package routes

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"hatatakip_backend/internals/configs"
	helper "hatatakip_backend/internals/helpers"
	"hatatakip_backend/internals/helpers/events"
	"hatatakip_backend/internals/helpers/imagex"
	"hatatakip_backend/internals/helpers/storage"
	"hatatakip_backend/internals/helpers/uploads"
	routeDetails "hatatakip_backend/internals/route/details"
	"hatatakip_backend/internals/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T, cfg *configs.Config) (*fiber.App, *gorm.DB, *storage.MemoryStore) {
	t.Helper()
	db := testutil.NewDB(t)
	store := storage.NewMemoryStore("mem://b")
	app := NewApp(Deps{
		Deps: routeDetails.Deps{
			DB:        db,
			Validator: helper.NewValidator(),
			Store:     store,
			Uploader:  uploads.New(store, 0, imagex.Options{}),
			Events:    events.Noop{},
		},
		Config: cfg,
	})
	return app, db, store
}

func TestHealth(t *testing.T) {
	app, _, _ := newTestApp(t, nil)

	code, raw := testutil.DoJSON(t, app, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, code)

	var got struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
	}
	testutil.DecodeJSON(t, raw, &got)
	assert.Equal(t, "OK", got.Status)
	_, err := time.Parse(time.RFC3339, got.Timestamp)
	assert.NoError(t, err)
}

func TestUnknownEndpoint(t *testing.T) {
	app, _, _ := newTestApp(t, nil)

	for _, path := range []string{"/api/nope", "/api/students/1/extra"} {
		code, raw := testutil.DoJSON(t, app, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, code, path)
		assert.JSONEq(t, `{"error":"Endpoint bulunamadı"}`, string(raw), path)
	}
}

func TestLegacyAliases(t *testing.T) {
	app, db, _ := newTestApp(t, nil)
	ayse := testutil.CreateStudent(t, db, "Ayşe", "Yılmaz", nil)
	r := testutil.CreateErrorRecord(t, db, ayse.StudentID, "Kesir hatası")

	code, _ := testutil.DoJSON(t, app, http.MethodGet, "/api/ogrenciler", "")
	assert.Equal(t, http.StatusOK, code)
	code, _ = testutil.DoJSON(t, app, http.MethodGet, "/api/konular", "")
	assert.Equal(t, http.StatusOK, code)
	code, _ = testutil.DoJSON(t, app, http.MethodGet, "/api/istatistikler", "")
	assert.Equal(t, http.StatusOK, code)

	code, raw := testutil.DoJSON(t, app, http.MethodPatch, fmt.Sprintf("/api/hatalar/%d/durum", r.ErrorRecordID), `{"durum": "çözüldü"}`)
	require.Equal(t, http.StatusOK, code, string(raw))

	code, raw = testutil.DoJSON(t, app, http.MethodPost, fmt.Sprintf("/api/hatalar/%d/cozumler", r.ErrorRecordID), `{"cozum_metni": "tamam"}`)
	require.Equal(t, http.StatusCreated, code, string(raw))

	code, raw = testutil.DoJSON(t, app, http.MethodGet, fmt.Sprintf("/api/errors/%d", r.ErrorRecordID), "")
	require.Equal(t, http.StatusOK, code)
	var detail struct {
		Durum    string        `json:"durum"`
		Cozumler []interface{} `json:"cozumler"`
	}
	testutil.DecodeJSON(t, raw, &detail)
	assert.Equal(t, "çözüldü", detail.Durum)
	assert.Len(t, detail.Cozumler, 1)
}
