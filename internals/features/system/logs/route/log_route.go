package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	logController "jamath_backend/internals/features/system/logs/controller"
	logRepo "jamath_backend/internals/features/system/logs/repository"
)

func LogAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := logController.NewLogController(logRepo.NewLogRepository(db))
	admin.Get("/logs", ctrl.List)
}
