package controller

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	paymentDTO "jamath_backend/internals/features/finance/payments/dto"
	paymentRepo "jamath_backend/internals/features/finance/payments/repository"
	paymentService "jamath_backend/internals/features/finance/payments/service"
	memberModel "jamath_backend/internals/features/members/members/model"
	helper "jamath_backend/internals/helpers"
	"jamath_backend/internals/middlewares/auth"
)

type headFinder interface {
	FindHeadByAuthID(ctx context.Context, authID uuid.UUID) (*memberModel.Member, error)
}

type PaymentController struct {
	Repo      *paymentRepo.PaymentRepository
	Service   *paymentService.PaymentService
	Members   headFinder
	Validator *validator.Validate
	Log       *zap.Logger
}

func NewPaymentController(repo *paymentRepo.PaymentRepository, svc *paymentService.PaymentService, members headFinder, log *zap.Logger) *PaymentController {
	return &PaymentController{Repo: repo, Service: svc, Members: members, Validator: validator.New(), Log: log}
}

// POST /api/a/payments
func (ctrl *PaymentController) Create(c *fiber.Ctx) error {
	var req paymentDTO.CreatePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	p := req.ToModel()
	if err := ctrl.Service.Record(c.UserContext(), p); err != nil {
		if errors.Is(err, paymentService.ErrDuplicateBill) {
			return helper.JsonError(c, fiber.StatusConflict, "Bill Number already exists!")
		}
		ctrl.Log.Error("payment insert failed", zap.Int64("bill_no", req.BillNo), zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Database Error: "+err.Error())
	}
	return helper.JsonCreated(c, "Payment recorded", p)
}

// GET /api/a/payments
func (ctrl *PaymentController) List(c *fiber.Ctx) error {
	rows, err := ctrl.Repo.ListRecent(c.UserContext(), c.QueryInt("limit", paymentRepo.AdminListLimit))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch payments")
	}
	return helper.JsonList(c, "ok", rows, nil)
}

// POST /api/u/payments/:id/read
func (ctrl *PaymentController) MarkRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid payment id")
	}
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}

	ctx := c.UserContext()
	head, err := ctrl.Members.FindHeadByAuthID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Member profile not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load member")
	}

	if err := ctrl.Repo.MarkRead(ctx, id, *head.PmjNo); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Payment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update payment")
	}
	return helper.JsonUpdated(c, "Marked as read", fiber.Map{"id": id})
}
