package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	tokenController "jamath_backend/internals/features/notifications/device_tokens/controller"
	tokenRepo "jamath_backend/internals/features/notifications/device_tokens/repository"
)

// RegisterDeviceTokenRoutes mounts /notifications/register-token on router.
func RegisterDeviceTokenRoutes(router fiber.Router, db *gorm.DB, log *zap.Logger, limiter fiber.Handler) {
	ctrl := tokenController.NewDeviceTokenController(tokenRepo.NewDeviceTokenRepository(db), log)

	routes := router.Group("/notifications")
	routes.Post("/register-token", limiter, ctrl.Register)
}
