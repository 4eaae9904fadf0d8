package route

import (
	"hatatakip_backend/internals/features/stats/controller"
	"hatatakip_backend/internals/features/stats/service"

	"github.com/gofiber/fiber/v2"
)

func StatsRoutes(r fiber.Router, svc *service.StatsService) {
	ctrl := controller.NewStatsController(svc)

	r.Get("/", ctrl.GetStats) // 📊 özet sayılar
}
