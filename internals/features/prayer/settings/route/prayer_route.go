package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"jamath_backend/internals/configs"
	prayerController "jamath_backend/internals/features/prayer/settings/controller"
	prayerRepo "jamath_backend/internals/features/prayer/settings/repository"
	prayerService "jamath_backend/internals/features/prayer/settings/service"
	"jamath_backend/internals/helpers/cache"
)

func newController(db *gorm.DB, c cache.Cache, log *zap.Logger) *prayerController.PrayerController {
	zone, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		zone = time.UTC
	}
	repo := prayerRepo.NewSettingsRepository(db)
	svc := prayerService.NewPrayerService(
		repo,
		prayerService.NewAladhanClient(configs.AladhanBaseURL),
		c,
		prayerService.Location{
			Latitude:  configs.AladhanLatitude,
			Longitude: configs.AladhanLongitude,
			Method:    configs.AladhanMethod,
		},
		zone,
		log,
	)
	return prayerController.NewPrayerController(repo, svc, log)
}

func PrayerPublicRoutes(public fiber.Router, db *gorm.DB, c cache.Cache, log *zap.Logger) {
	ctrl := newController(db, c, log)
	public.Get("/prayer-times", ctrl.Times)
}

func PrayerAdminRoutes(admin fiber.Router, db *gorm.DB, c cache.Cache, log *zap.Logger) {
	ctrl := newController(db, c, log)
	admin.Get("/prayer-settings", ctrl.GetSettings)
	admin.Put("/prayer-settings", ctrl.UpdateSettings)
}
