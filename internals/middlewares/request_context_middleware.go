package middlewares

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

const LocalRequestID = "reqid"

// RequestContext sets X-Request-ID, bounds the user context with timeout
// and logs the request duration.
func RequestContext(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = utils.UUID()
		}
		c.Set(fiber.HeaderXRequestID, id)
		c.Locals(LocalRequestID, id)

		start := time.Now()
		if timeout > 0 {
			ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
			defer cancel()
			c.SetUserContext(ctx)
		}

		err := c.Next()
		log.Printf("[REQ] id=%s %s %s dur=%s", id, c.Method(), c.OriginalURL(), time.Since(start))
		return err
	}
}

func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalRequestID).(string)
	return id
}
