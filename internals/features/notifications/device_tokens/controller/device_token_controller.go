package controller

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	tokenDTO "jamath_backend/internals/features/notifications/device_tokens/dto"
	tokenModel "jamath_backend/internals/features/notifications/device_tokens/model"
)

type tokenUpserter interface {
	Upsert(ctx context.Context, t *tokenModel.DeviceToken) error
}

type DeviceTokenController struct {
	Repo      tokenUpserter
	Validator *validator.Validate
	Log       *zap.Logger
}

func NewDeviceTokenController(repo tokenUpserter, log *zap.Logger) *DeviceTokenController {
	return &DeviceTokenController{Repo: repo, Validator: validator.New(), Log: log}
}

// POST /api/notifications/register-token
func (ctrl *DeviceTokenController) Register(c *fiber.Ctx) error {
	var req tokenDTO.RegisterTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing pmj_no or token"})
	}

	row := tokenModel.DeviceToken{
		PmjNo:      req.PmjNo,
		Token:      req.Token,
		DeviceType: req.DeviceType,
	}
	if err := ctrl.Repo.Upsert(c.UserContext(), &row); err != nil {
		ctrl.Log.Error("token upsert failed", zap.Int64("pmj_no", req.PmjNo), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to register token"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Token registered successfully"})
}
