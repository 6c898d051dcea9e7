package route

import (
	"github.com/gofiber/fiber/v2"

	rolloverController "jamath_backend/internals/features/finance/rollover/controller"
	rolloverService "jamath_backend/internals/features/finance/rollover/service"
)

func RolloverCronRoutes(cron fiber.Router, svc *rolloverService.RolloverService, guard fiber.Handler) {
	ctrl := rolloverController.NewRolloverController(svc)
	cron.Get("/yearly-rollover", guard, ctrl.YearlyRollover)
}
