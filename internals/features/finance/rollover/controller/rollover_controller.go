package controller

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

type rolloverRunner interface {
	Run(ctx context.Context) error
}

type RolloverController struct {
	Service rolloverRunner
}

func NewRolloverController(svc rolloverRunner) *RolloverController {
	return &RolloverController{Service: svc}
}

// GET /api/cron/yearly-rollover
func (ctrl *RolloverController) YearlyRollover(c *fiber.Ctx) error {
	if err := ctrl.Service.Run(context.WithoutCancel(c.UserContext())); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Rollover complete and logged."})
}
