package middlewares

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/rollbar/rollbar-go"
)

// Reporter receives unexpected (5xx) errors.
type Reporter interface {
	Report(c *fiber.Ctx, err error)
	Close()
}

type NoopReporter struct{}

func (NoopReporter) Report(*fiber.Ctx, error) {}
func (NoopReporter) Close()                   {}

type RollbarReporter struct{}

func NewRollbarReporter(token, env string) *RollbarReporter {
	rollbar.SetToken(token)
	rollbar.SetEnvironment(env)
	rollbar.SetServerRoot("hatatakip_backend")
	log.Printf("[ROLLBAR] enabled (env=%s)", env)
	return &RollbarReporter{}
}

func (RollbarReporter) Report(c *fiber.Ctx, err error) {
	rollbar.Error(err, map[string]interface{}{
		"method":     c.Method(),
		"path":       c.Path(),
		"request_id": RequestID(c),
	})
}

func (RollbarReporter) Close() {
	rollbar.Close()
}

// NewReporter picks Rollbar when a token is configured.
func NewReporter(token, env string) Reporter {
	if token == "" {
		return NoopReporter{}
	}
	return NewRollbarReporter(token, env)
}
