package controller

import (
	"context"

	"github.com/gofiber/fiber/v2"

	reminderService "jamath_backend/internals/features/finance/reminders/service"
)

type reminderRunner interface {
	Run(ctx context.Context) (reminderService.Result, error)
}

type ReminderController struct {
	Service reminderRunner
}

func NewReminderController(svc reminderRunner) *ReminderController {
	return &ReminderController{Service: svc}
}

// GET /api/cron/send-reminders
// The job is not bound to the request deadline.
func (ctrl *ReminderController) SendReminders(c *fiber.Ctx) error {
	res, err := ctrl.Service.Run(context.WithoutCancel(c.UserContext()))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if res.Sent == 0 {
		return c.JSON(fiber.Map{"success": true, "message": res.Message})
	}
	return c.JSON(fiber.Map{"success": true, "sent": res.Sent, "message": res.Message})
}
