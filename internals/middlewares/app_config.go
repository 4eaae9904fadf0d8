package middlewares

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
)

// strictJSON rejects bodies carrying fields the request struct does not know.
var strictJSON = sonic.Config{
	DisallowUnknownFields: true,
	ValidateString:        true,
}.Froze()

// FiberConfig is shared by main and the HTTP tests so both run the same
// codec, limits and error rendering.
func FiberConfig(bodyLimit int, rep Reporter) fiber.Config {
	if bodyLimit <= 0 {
		bodyLimit = 6 * 1024 * 1024
	}
	return fiber.Config{
		AppName:               "hatatakip",
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           strictJSON.Unmarshal,
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           90 * time.Second,
		ErrorHandler:          ErrorHandler(rep),
	}
}
