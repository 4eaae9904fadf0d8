package routes

import (
	"log"

	"hatatakip_backend/internals/configs"
	errorRecordModel "hatatakip_backend/internals/features/error_records/model"
	"hatatakip_backend/internals/middlewares"
	"hatatakip_backend/internals/middlewares/logger"
	routeDetails "hatatakip_backend/internals/route/details"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
)

type Deps struct {
	routeDetails.Deps
	Reporter middlewares.Reporter
	Config   *configs.Config
}

// NewApp builds the fiber app with middleware, routes and the 404 fallback.
func NewApp(d Deps) *fiber.App {
	cfg := d.Config
	if cfg == nil {
		cfg = &configs.Config{}
	}
	if d.Reporter == nil {
		d.Reporter = middlewares.NoopReporter{}
	}

	// one image plus form fields
	bodyLimit := int(cfg.Upload.MaxBytes) + 1024*1024
	app := fiber.New(middlewares.FiberConfig(bodyLimit, d.Reporter))

	app.Use(middlewares.RecoveryMiddleware())
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(middlewares.CorsMiddleware(cfg.CORSAllowOrigins))
	app.Use(middlewares.RequestContext(cfg.RequestTimeout))
	app.Use(logger.LoggerMiddleware())
	app.Use(middlewares.GlobalRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow))

	SetupRoutes(app, d.Deps)

	app.Use(middlewares.NotFoundHandler)
	return app
}

func SetupRoutes(app *fiber.App, d routeDetails.Deps) {
	d.Validator.RegisterEnum("record_status", errorRecordModel.Statuses)

	api := app.Group("/api")

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, api)

	log.Println("[INFO] Mounting Hatatakip routes...")
	routeDetails.HatatakipRoutes(api, d)
}
