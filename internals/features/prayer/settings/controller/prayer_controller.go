package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	prayerDTO "jamath_backend/internals/features/prayer/settings/dto"
	prayerRepo "jamath_backend/internals/features/prayer/settings/repository"
	prayerService "jamath_backend/internals/features/prayer/settings/service"
	helper "jamath_backend/internals/helpers"
)

type PrayerController struct {
	Repo      *prayerRepo.SettingsRepository
	Service   *prayerService.PrayerService
	Validator *validator.Validate
	Log       *zap.Logger
}

func NewPrayerController(repo *prayerRepo.SettingsRepository, svc *prayerService.PrayerService, log *zap.Logger) *PrayerController {
	return &PrayerController{Repo: repo, Service: svc, Validator: validator.New(), Log: log}
}

// GET /api/public/prayer-times
func (ctrl *PrayerController) Times(c *fiber.Ctx) error {
	res, err := ctrl.Service.Today(c.UserContext())
	if err != nil {
		ctrl.Log.Error("prayer times failed", zap.Error(err))
		return helper.JsonError(c, fiber.StatusBadGateway, "Failed to fetch prayer timings")
	}
	c.Set(fiber.HeaderCacheControl, "public, max-age=300")
	return helper.JsonOK(c, "ok", res)
}

// GET /api/a/prayer-settings
func (ctrl *PrayerController) GetSettings(c *fiber.Ctx) error {
	s, err := ctrl.Repo.Get(c.UserContext())
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load prayer settings")
	}
	return helper.JsonOK(c, "ok", s)
}

// PUT /api/a/prayer-settings
func (ctrl *PrayerController) UpdateSettings(c *fiber.Ctx) error {
	var req prayerDTO.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	s := req.ToModel()
	if err := ctrl.Repo.Save(c.UserContext(), s); err != nil {
		ctrl.Log.Error("prayer settings save failed", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save prayer settings")
	}
	return helper.JsonUpdated(c, "Prayer settings saved", s)
}
