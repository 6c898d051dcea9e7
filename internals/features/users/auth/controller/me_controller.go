package controller

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	memberModel "jamath_backend/internals/features/members/members/model"
	helper "jamath_backend/internals/helpers"
	"jamath_backend/internals/middlewares/auth"
)

type headFinder interface {
	FindHeadByAuthID(ctx context.Context, authID uuid.UUID) (*memberModel.Member, error)
}

type MeResponse struct {
	UserID uuid.UUID           `json:"user_id"`
	Role   string              `json:"role"`
	Member *memberModel.Member `json:"member"`
}

type MeController struct {
	Members headFinder
}

func NewMeController(members headFinder) *MeController {
	return &MeController{Members: members}
}

// GET /api/u/me
// Admins usually have no member row; member is null for them.
func (ctrl *MeController) Me(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}
	role, _ := c.Locals("userRole").(string)

	m, err := ctrl.Members.FindHeadByAuthID(c.UserContext(), userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load member")
	}
	return helper.JsonOK(c, "ok", MeResponse{UserID: userID, Role: role, Member: m})
}
