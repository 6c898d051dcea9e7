package controller

import (
	"github.com/gofiber/fiber/v2"

	logRepo "jamath_backend/internals/features/system/logs/repository"
	helper "jamath_backend/internals/helpers"
)

type LogController struct {
	Repo *logRepo.LogRepository
}

func NewLogController(repo *logRepo.LogRepository) *LogController {
	return &LogController{Repo: repo}
}

// GET /api/a/logs?status=&event_type=
func (ctrl *LogController) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	rows, err := ctrl.Repo.List(ctx, logRepo.ListFilter{
		Status:    c.Query("status"),
		EventType: c.Query("event_type"),
		Limit:     c.QueryInt("limit", logRepo.DefaultListLimit),
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch logs")
	}

	types, err := ctrl.Repo.EventTypes(ctx)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch event types")
	}

	return helper.JsonListEx(c, "ok", rows, nil, fiber.Map{"event_types": types})
}
