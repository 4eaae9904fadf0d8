package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func BaseRoutes(app *fiber.App, api fiber.Router) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Hata Takip API çalışıyor 🚀")
	})

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "OK",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})
}
