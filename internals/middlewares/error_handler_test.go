package middlewares

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	helper "hatatakip_backend/internals/helpers"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingReporter struct {
	mu   sync.Mutex
	errs []error
}

func (r *recordingReporter) Report(_ *fiber.Ctx, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

func (r *recordingReporter) Close() {}

func newTestApp(rep Reporter) *fiber.App {
	app := fiber.New(FiberConfig(0, rep))
	app.Use(RecoveryMiddleware())
	app.Use(RequestContext(0))

	app.Get("/bad", func(c *fiber.Ctx) error {
		return &helper.HTTPError{Code: 400, Message: "Geçersiz veri", Fields: map[string]string{"ad": "zorunlu"}}
	})
	app.Get("/missing", func(c *fiber.Ctx) error { return helper.NotFound("Hata bulunamadı") })
	app.Get("/wrapped", func(c *fiber.Ctx) error {
		return pkgerrors.Wrap(helper.BadRequest("Bu email adresi zaten kullanılıyor"), "create")
	})
	app.Get("/internal", func(c *fiber.Ctx) error {
		return helper.Internal("Hatalar listelenirken hata oluştu", pkgerrors.New("pq: connection refused"))
	})
	app.Get("/boom", func(c *fiber.Ctx) error { return pkgerrors.New("secret dsn leaked") })
	app.Get("/panic", func(c *fiber.Ctx) error { panic("kaboom") })
	app.Post("/strict", func(c *fiber.Ctx) error {
		var body struct {
			Ad string `json:"ad"`
		}
		if err := c.BodyParser(&body); err != nil {
			return helper.NewHTTPError(400, "Geçersiz istek gövdesi", err)
		}
		return c.JSON(body)
	})
	app.Use(NotFoundHandler)
	return app
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, sonic.Unmarshal(raw, &out), string(raw))
	return out
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		path     string
		body     string
		status   int
		message  string
		reported bool
	}{
		{"validation", http.MethodGet, "/bad", "", 400, "Geçersiz veri", false},
		{"not found", http.MethodGet, "/missing", "", 404, "Hata bulunamadı", false},
		{"wrapped http error", http.MethodGet, "/wrapped", "", 400, "Bu email adresi zaten kullanılıyor", false},
		{"internal keeps public message", http.MethodGet, "/internal", "", 500, "Hatalar listelenirken hata oluştu", true},
		{"plain error is generic", http.MethodGet, "/boom", "", 500, "Sunucu hatası oluştu", true},
		{"panic is recovered", http.MethodGet, "/panic", "", 500, "Sunucu hatası oluştu", true},
		{"unmatched route", http.MethodGet, "/nope", "", 404, "Endpoint bulunamadı", false},
		{"unknown json field", http.MethodPost, "/strict", `{"ad":"x","extra":1}`, 400, "Geçersiz istek gövdesi", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rep := &recordingReporter{}
			app := newTestApp(rep)

			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
			if tc.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			resp, err := app.Test(req)
			require.NoError(t, err)

			assert.Equal(t, tc.status, resp.StatusCode)
			body := decode(t, resp)
			assert.Equal(t, tc.message, body["error"])
			assert.NotContains(t, body["error"], "secret")
			assert.Equal(t, tc.reported, len(rep.errs) > 0)
			assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
		})
	}
}

func TestErrorHandlerFields(t *testing.T) {
	app := newTestApp(nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/bad", nil))
	require.NoError(t, err)

	body := decode(t, resp)
	assert.Equal(t, map[string]interface{}{"ad": "zorunlu"}, body["fields"])
}

func TestStrictDecoderAcceptsKnownFields(t *testing.T) {
	app := newTestApp(nil)

	req := httptest.NewRequest(http.MethodPost, "/strict", strings.NewReader(`{"ad":"Ayşe"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "Ayşe", decode(t, resp)["ad"])
}

func TestGlobalRateLimiter(t *testing.T) {
	app := fiber.New(FiberConfig(0, nil))
	app.Use(GlobalRateLimiter(1, 0))
	app.Get("/x", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/x", nil))
	require.NoError(t, err)
	assert.Equal(t, 429, resp.StatusCode)
}
