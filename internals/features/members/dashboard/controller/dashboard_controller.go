package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	dashboardService "jamath_backend/internals/features/members/dashboard/service"
	helper "jamath_backend/internals/helpers"
	"jamath_backend/internals/middlewares/auth"
)

type DashboardController struct {
	Service *dashboardService.DashboardService
	Log     *zap.Logger
}

func NewDashboardController(svc *dashboardService.DashboardService, log *zap.Logger) *DashboardController {
	return &DashboardController{Service: svc, Log: log}
}

func (ctrl *DashboardController) fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, dashboardService.ErrNoMemberProfile) {
		return helper.JsonError(c, fiber.StatusNotFound, "Member profile not found")
	}
	ctrl.Log.Error("dashboard load failed", zap.Error(err))
	return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load dashboard")
}

// GET /api/u/dashboard
func (ctrl *DashboardController) Get(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}
	d, err := ctrl.Service.Load(c.UserContext(), userID)
	if err != nil {
		return ctrl.fail(c, err)
	}
	return helper.JsonOK(c, "ok", d)
}

// GET /api/u/notifications
func (ctrl *DashboardController) Notifications(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}
	items, err := ctrl.Service.Feed(c.UserContext(), userID)
	if err != nil {
		return ctrl.fail(c, err)
	}
	return helper.JsonList(c, "ok", items, nil)
}
