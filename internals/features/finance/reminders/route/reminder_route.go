package route

import (
	"github.com/gofiber/fiber/v2"

	reminderController "jamath_backend/internals/features/finance/reminders/controller"
	reminderService "jamath_backend/internals/features/finance/reminders/service"
)

// ReminderCronRoutes mounts the reminder trigger behind guard.
func ReminderCronRoutes(cron fiber.Router, svc *reminderService.ReminderService, guard fiber.Handler) {
	ctrl := reminderController.NewReminderController(svc)
	cron.Get("/send-reminders", guard, ctrl.SendReminders)
}
