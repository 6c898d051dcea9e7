package middlewares

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"jamath_backend/internals/middlewares/logger"
)

func SetupMiddlewares(app *fiber.App, log *zap.Logger) {
	app.Use(RecoveryMiddleware(log))
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}
