package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"jamath_backend/internals/configs"
	middlewares "jamath_backend/internals/middlewares"
	"jamath_backend/internals/middlewares/auth"
	routeDetails "jamath_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, deps routeDetails.Deps) {
	startTime = time.Now()
	log := deps.Log

	BaseRoutes(app, deps.DB)

	api := app.Group("/api")

	log.Info("mounting cron routes")
	cron := api.Group("/cron")
	routeDetails.CronRoutes(cron, deps, auth.CronSecret(configs.CronSecret))

	log.Info("mounting device token routes")
	routeDetails.DeviceTokenRoutes(api, deps, middlewares.TokenRegisterRateLimiter())

	// PUBLIC
	log.Info("mounting public routes")
	public := api.Group("/public")
	routeDetails.PublicRoutes(public, deps)

	// USER (signed-in family head)
	log.Info("mounting user routes")
	user := api.Group("/u", auth.AuthMiddleware(deps.DB, configs.SupabaseJWTSecret, log))
	routeDetails.UserRoutes(user, deps)

	// ADMIN
	log.Info("mounting admin routes")
	admin := api.Group("/a",
		auth.AuthMiddleware(deps.DB, configs.SupabaseJWTSecret, log),
		auth.OnlyAdmin(),
	)
	routeDetails.AdminRoutes(admin, deps)
}
