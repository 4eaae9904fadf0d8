package controller_test

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"hatatakip_backend/internals/features/error_records/model"
	"hatatakip_backend/internals/features/error_records/route"
	"hatatakip_backend/internals/features/error_records/service"
	"hatatakip_backend/internals/helpers/events"
	"hatatakip_backend/internals/helpers/imagex"
	"hatatakip_backend/internals/helpers/storage"
	"hatatakip_backend/internals/helpers/uploads"
	"hatatakip_backend/internals/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type env struct {
	app   *fiber.App
	db    *gorm.DB
	store *storage.MemoryStore
}

func setup(t *testing.T) env {
	t.Helper()
	db := testutil.NewDB(t)
	store := storage.NewMemoryStore("mem://b")
	svc := service.NewErrorRecordService(db, store, &events.Recorder{})

	app := testutil.NewApp()
	route.ErrorRecordRoutes(app.Group("/api/errors"), svc, testutil.NewValidator(), uploads.New(store, 0, imagex.Options{}), "status")
	return env{app: app, db: db, store: store}
}

type object = map[string]interface{}

func TestCreateJSON(t *testing.T) {
	e := setup(t)
	s := testutil.CreateStudent(t, e.db, "Ayşe", "Yılmaz", nil)

	code, raw := testutil.DoJSON(t, e.app, http.MethodPost, "/api/errors",
		fmt.Sprintf(`{"ogrenci_id": %d, "baslik": "  Kesir hatası ", "durum": "çözüldü"}`, s.StudentID))
	require.Equal(t, http.StatusCreated, code, string(raw))

	var got object
	testutil.DecodeJSON(t, raw, &got)
	assert.Equal(t, "Kesir hatası", got["baslik"])
	assert.Equal(t, "çözüldü", got["durum"])
	assert.NotNil(t, got["cozum_tarihi"])
	assert.NotContains(t, got, "ogrenci_ad", "create returns the raw row")

	code, raw = testutil.DoJSON(t, e.app, http.MethodPost, "/api/errors",
		fmt.Sprintf(`{"ogrenci_id": %d, "baslik": "Varsayılan"}`, s.StudentID))
	require.Equal(t, http.StatusCreated, code, string(raw))
	testutil.DecodeJSON(t, raw, &got)
	assert.Equal(t, "çözülmedi", got["durum"])
	assert.Nil(t, got["cozum_tarihi"])
}

func TestCreateRejects(t *testing.T) {
	e := setup(t)
	s := testutil.CreateStudent(t, e.db, "Ayşe", "Yılmaz", nil)

	cases := []struct {
		name  string
		body  string
		field string
	}{
		{"blank title", fmt.Sprintf(`{"ogrenci_id": %d, "baslik": "   "}`, s.StudentID), "baslik"},
		{"missing student", `{"baslik": "x"}`, "ogrenci_id"},
		{"bad status", fmt.Sprintf(`{"ogrenci_id": %d, "baslik": "x", "durum": "bitti"}`, s.StudentID), "durum"},
		{"unknown field", fmt.Sprintf(`{"ogrenci_id": %d, "baslik": "x", "puan": 3}`, s.StudentID), ""},
		{"unknown student", `{"ogrenci_id": 9999, "baslik": "x"}`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, raw := testutil.DoJSON(t, e.app, http.MethodPost, "/api/errors", tc.body)
			require.Equal(t, http.StatusBadRequest, code, string(raw))

			var got struct {
				Error  string            `json:"error"`
				Fields map[string]string `json:"fields"`
			}
			testutil.DecodeJSON(t, raw, &got)
			assert.NotEmpty(t, got.Error)
			if tc.field != "" {
				assert.Contains(t, got.Fields, tc.field)
			}
		})
	}

	var n int64
	require.NoError(t, e.db.Model(&model.ErrorRecordModel{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCreateMultipart(t *testing.T) {
	e := setup(t)
	s := testutil.CreateStudent(t, e.db, "Ayşe", "Yılmaz", nil)
	fields := map[string]string{"ogrenci_id": fmt.Sprint(s.StudentID), "baslik": "Soru 5", "konu_id": ""}

	t.Run("with image", func(t *testing.T) {
		req := testutil.MultipartRequest(t, http.MethodPost, "/api/errors", fields, "gorsel", "soru.jpg", testutil.TinyPNG(t))
		code, raw := testutil.Do(t, e.app, req)
		require.Equal(t, http.StatusCreated, code, string(raw))

		var got object
		testutil.DecodeJSON(t, raw, &got)
		key, _ := got["gorsel_s3_key"].(string)
		assert.True(t, strings.HasPrefix(key, "hatalar/"), key)
		assert.True(t, strings.HasSuffix(key, ".png"), key)
		assert.Equal(t, "mem://b/"+key, got["gorsel_url"])
		assert.Nil(t, got["konu_id"])
		assert.True(t, e.store.Has(key))
	})

	t.Run("not an image", func(t *testing.T) {
		req := testutil.MultipartRequest(t, http.MethodPost, "/api/errors", fields, "gorsel", "notlar.txt", []byte("sadece metin"))
		code, raw := testutil.Do(t, e.app, req)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Contains(t, string(raw), "Sadece resim dosyaları yüklenebilir!")
	})

	t.Run("unknown field", func(t *testing.T) {
		bad := map[string]string{"ogrenci_id": fmt.Sprint(s.StudentID), "baslik": "x", "puan": "3"}
		req := testutil.MultipartRequest(t, http.MethodPost, "/api/errors", bad, "", "", nil)
		code, raw := testutil.Do(t, e.app, req)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Contains(t, string(raw), "puan")
	})

	t.Run("storage failure is a 500", func(t *testing.T) {
		e.store.UploadErr = errors.New("bucket gone")
		defer func() { e.store.UploadErr = nil }()

		req := testutil.MultipartRequest(t, http.MethodPost, "/api/errors", fields, "image", "soru.png", testutil.TinyPNG(t))
		code, raw := testutil.Do(t, e.app, req)
		assert.Equal(t, http.StatusInternalServerError, code)
		assert.NotContains(t, string(raw), "bucket gone")
	})

	assert.Len(t, e.store.Uploads, 1)
}

func TestListAndGet(t *testing.T) {
	e := setup(t)
	ayse := testutil.CreateStudent(t, e.db, "Ayşe", "Yılmaz", nil)
	mat := testutil.CreateSubject(t, e.db, "Matematik", "Kesirler")
	r := testutil.CreateErrorRecord(t, e.db, ayse.StudentID, "Kesir hatası", testutil.WithSubject(mat.SubjectID))
	testutil.CreateErrorRecord(t, e.db, ayse.StudentID, "Paragraf")

	code, raw := testutil.DoJSON(t, e.app, http.MethodGet, "/api/errors?search=kesir", "")
	require.Equal(t, http.StatusOK, code, string(raw))
	var rows []object
	testutil.DecodeJSON(t, raw, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ayşe", rows[0]["ogrenci_ad"])
	assert.Equal(t, "Matematik", rows[0]["kategori"])
	assert.NotContains(t, rows[0], "ogrenciler")

	code, raw = testutil.DoJSON(t, e.app, http.MethodGet, fmt.Sprintf("/api/errors?ogrenci_id=%d&durum=%s", ayse.StudentID, url.QueryEscape("çözülmedi")), "")
	require.Equal(t, http.StatusOK, code, string(raw))
	testutil.DecodeJSON(t, raw, &rows)
	assert.Len(t, rows, 2)

	code, _ = testutil.DoJSON(t, e.app, http.MethodGet, "/api/errors?status=bitti", "")
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = testutil.DoJSON(t, e.app, http.MethodGet, "/api/errors?student_id=abc", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, raw = testutil.DoJSON(t, e.app, http.MethodGet, fmt.Sprintf("/api/errors/%d", r.ErrorRecordID), "")
	require.Equal(t, http.StatusOK, code, string(raw))
	var detail object
	testutil.DecodeJSON(t, raw, &detail)
	assert.Equal(t, "Kesirler", detail["alt_konu"])
	assert.Equal(t, []interface{}{}, detail["cozumler"])

	code, raw = testutil.DoJSON(t, e.app, http.MethodGet, "/api/errors/9999", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.JSONEq(t, `{"error":"Hata bulunamadı"}`, string(raw))
}

func TestUpdateAndStatus(t *testing.T) {
	e := setup(t)
	s := testutil.CreateStudent(t, e.db, "Ayşe", "Yılmaz", nil)
	r := testutil.CreateErrorRecord(t, e.db, s.StudentID, "Kesir hatası")
	path := fmt.Sprintf("/api/errors/%d", r.ErrorRecordID)

	code, raw := testutil.DoJSON(t, e.app, http.MethodPut, path, `{"baslik": "Kesir", "durum": "çözüldü", "notlar": "tekrar edildi"}`)
	require.Equal(t, http.StatusOK, code, string(raw))
	var got object
	testutil.DecodeJSON(t, raw, &got)
	assert.Equal(t, "Kesir", got["baslik"])
	assert.NotNil(t, got["cozum_tarihi"])

	code, raw = testutil.DoJSON(t, e.app, http.MethodPatch, path+"/status", `{"durum": "inceleniyor"}`)
	require.Equal(t, http.StatusOK, code, string(raw))
	testutil.DecodeJSON(t, raw, &got)
	assert.Equal(t, "inceleniyor", got["durum"])
	assert.Nil(t, got["cozum_tarihi"])

	code, _ = testutil.DoJSON(t, e.app, http.MethodPatch, path+"/status", `{"durum": "bitti"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = testutil.DoJSON(t, e.app, http.MethodPatch, "/api/errors/9999/status", `{"durum": "çözüldü"}`)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = testutil.DoJSON(t, e.app, http.MethodPut, "/api/errors/9999", `{"baslik": "x", "durum": "çözülmedi"}`)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestDelete(t *testing.T) {
	e := setup(t)
	s := testutil.CreateStudent(t, e.db, "Ayşe", "Yılmaz", nil)
	r := testutil.CreateErrorRecord(t, e.db, s.StudentID, "a", testutil.WithImage("hatalar/1-abc.png", "u"))
	path := fmt.Sprintf("/api/errors/%d", r.ErrorRecordID)

	e.store.DeleteErr = errors.New("storage down")
	code, _ := testutil.DoJSON(t, e.app, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusInternalServerError, code)

	e.store.DeleteErr = nil
	code, raw := testutil.DoJSON(t, e.app, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, code, string(raw))
	assert.JSONEq(t, `{"message":"Hata başarıyla silindi"}`, string(raw))
	assert.Equal(t, []string{"hatalar/1-abc.png", "hatalar/1-abc.png"}, e.store.Deletes)

	code, _ = testutil.DoJSON(t, e.app, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Len(t, e.store.Deletes, 2)
}
