package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hatatakip_backend/internals/middlewares"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// NewApp returns a fiber app with the production codec and error handling.
func NewApp() *fiber.App {
	app := fiber.New(middlewares.FiberConfig(0, nil))
	app.Use(middlewares.RecoveryMiddleware())
	app.Use(middlewares.RequestContext(0))
	return app
}

// DoJSON sends body (may be empty) as JSON and returns status and raw body.
func DoJSON(t *testing.T, app *fiber.App, method, path, body string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return Do(t, app, req)
}

func Do(t *testing.T, app *fiber.App, req *http.Request) (int, []byte) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func DecodeJSON(t *testing.T, raw []byte, v interface{}) {
	t.Helper()
	require.NoError(t, sonic.Unmarshal(raw, v), string(raw))
}
