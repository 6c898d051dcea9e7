package details

import (
	"github.com/gofiber/fiber/v2"

	reminderRoute "jamath_backend/internals/features/finance/reminders/route"
	rolloverRoute "jamath_backend/internals/features/finance/rollover/route"
	tokenRoute "jamath_backend/internals/features/notifications/device_tokens/route"
)

func CronRoutes(cron fiber.Router, d Deps, guard fiber.Handler) {
	reminderRoute.ReminderCronRoutes(cron, NewReminderService(d), guard)
	rolloverRoute.RolloverCronRoutes(cron, NewRolloverService(d), guard)
}

func DeviceTokenRoutes(api fiber.Router, d Deps, limiter fiber.Handler) {
	tokenRoute.RegisterDeviceTokenRoutes(api, d.DB, d.Log, limiter)
}
