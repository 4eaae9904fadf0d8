package controller

import (
	"hatatakip_backend/internals/features/stats/service"
	helper "hatatakip_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
)

type StatsController struct {
	Service *service.StatsService
}

func NewStatsController(svc *service.StatsService) *StatsController {
	return &StatsController{Service: svc}
}

func (ctrl *StatsController) GetStats(c *fiber.Ctx) error {
	stats, err := ctrl.Service.Snapshot(c.UserContext())
	if err != nil {
		return helper.Internal("İstatistikler alınırken hata oluştu", err)
	}
	return c.JSON(stats)
}
