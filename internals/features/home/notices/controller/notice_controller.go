package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	noticeDTO "jamath_backend/internals/features/home/notices/dto"
	noticeRepo "jamath_backend/internals/features/home/notices/repository"
	noticeService "jamath_backend/internals/features/home/notices/service"
	helper "jamath_backend/internals/helpers"
	"jamath_backend/internals/middlewares/auth"
)

type NoticeController struct {
	Repo      *noticeRepo.NoticeRepository
	Service   *noticeService.NoticeService
	Validator *validator.Validate
	Log       *zap.Logger
}

func NewNoticeController(repo *noticeRepo.NoticeRepository, svc *noticeService.NoticeService, log *zap.Logger) *NoticeController {
	return &NoticeController{Repo: repo, Service: svc, Validator: validator.New(), Log: log}
}

// POST /api/a/notices
func (ctrl *NoticeController) Create(c *fiber.Ctx) error {
	var req noticeDTO.CreateNoticeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	n := req.ToModel()
	if err := ctrl.Service.Publish(c.UserContext(), n); err != nil {
		ctrl.Log.Error("notice insert failed", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Database Error: "+err.Error())
	}
	return helper.JsonCreated(c, "Notice published", n)
}

// PATCH /api/a/notices/:id
func (ctrl *NoticeController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid notice id")
	}
	var req noticeDTO.UpdateNoticeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}
	changes := req.Changes()
	if len(changes) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "no fields to update")
	}

	if err := ctrl.Repo.Update(c.UserContext(), id, changes); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Notice not found")
		}
		ctrl.Log.Error("notice update failed", zap.String("id", id.String()), zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update notice")
	}
	n, err := ctrl.Repo.FindByID(c.UserContext(), id)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update notice")
	}
	return helper.JsonUpdated(c, "Notice updated", n)
}

// DELETE /api/a/notices/:id
func (ctrl *NoticeController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid notice id")
	}
	if err := ctrl.Repo.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Notice not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete notice")
	}
	return helper.JsonDeleted(c, "Notice deleted", fiber.Map{"id": id})
}

// GET /api/public/notices
func (ctrl *NoticeController) List(c *fiber.Ctx) error {
	rows, err := ctrl.Repo.List(c.UserContext(), c.QueryInt("limit", noticeRepo.PublicListLimit))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch notices")
	}
	return helper.JsonList(c, "ok", rows, nil)
}

// POST /api/u/notices/:id/read
func (ctrl *NoticeController) MarkRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid notice id")
	}
	userID, err := auth.UserID(c)
	if err != nil {
		return err
	}
	if err := ctrl.Repo.MarkRead(c.UserContext(), userID, id); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to mark notice as read")
	}
	return helper.JsonUpdated(c, "Marked as read", fiber.Map{"id": id})
}
