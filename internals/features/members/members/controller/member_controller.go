package controller

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"jamath_backend/internals/constants"
	memberDTO "jamath_backend/internals/features/members/members/dto"
	memberRepo "jamath_backend/internals/features/members/members/repository"
	memberService "jamath_backend/internals/features/members/members/service"
	helper "jamath_backend/internals/helpers"
)

type MemberController struct {
	Repo      *memberRepo.MemberRepository
	Service   *memberService.MemberService
	Validator *validator.Validate
	Log       *zap.Logger
}

func NewMemberController(repo *memberRepo.MemberRepository, svc *memberService.MemberService, log *zap.Logger) *MemberController {
	return &MemberController{Repo: repo, Service: svc, Validator: validator.New(), Log: log}
}

// POST /api/a/members
func (ctrl *MemberController) Create(c *fiber.Ctx) error {
	var req memberDTO.CreateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := ctrl.Service.Create(c.UserContext(), req)
	if err != nil {
		var dup *memberService.DuplicateMrNoError
		if errors.As(err, &dup) {
			return helper.JsonError(c, fiber.StatusConflict, dup.Error())
		}
		ctrl.Log.Error("member create failed", zap.Int64("mr_no", req.MrNo), zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonCreated(c, "Member added", m)
}

// POST /api/a/members/upload (multipart "file", .csv or .xlsx)
func (ctrl *MemberController) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "file is required")
	}
	kind := constants.DetectSheetType(fh.Filename)
	if kind == constants.SheetUnknown {
		return helper.JsonError(c, fiber.StatusBadRequest, "upload a .csv or .xlsx file")
	}
	f, err := fh.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "cannot read file")
	}
	defer f.Close()

	parse := memberService.ParseCSV
	if kind == constants.SheetXLSX {
		parse = memberService.ParseXLSX
	}
	rows, issues, err := parse(f)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	valid := rows[:0]
	for _, row := range rows {
		if err := ctrl.Validator.Struct(&row); err != nil {
			issues = append(issues, fmt.Sprintf("MR %d: invalid row", row.MrNo))
			continue
		}
		valid = append(valid, row)
	}

	res := ctrl.Service.BulkCreate(c.UserContext(), valid)
	res.Errors = append(issues, res.Errors...)
	if res.Errors == nil {
		res.Errors = []string{}
	}
	ctrl.Log.Info("member upload processed", zap.Int("created", res.Created), zap.Int("errors", len(res.Errors)))
	return helper.JsonOK(c, "Upload processed", res)
}

// DELETE /api/a/members/:id
func (ctrl *MemberController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid member id")
	}
	if err := ctrl.Service.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, memberService.ErrNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		}
		ctrl.Log.Error("member delete failed", zap.String("id", id.String()), zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "Member deleted", fiber.Map{"id": id})
}

// PATCH /api/a/members/:id
func (ctrl *MemberController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid member id")
	}
	var req memberDTO.UpdateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m, err := ctrl.Service.Update(c.UserContext(), id, req)
	switch {
	case err == nil:
		return helper.JsonUpdated(c, "Member updated", m)
	case errors.Is(err, memberService.ErrNoChanges):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, memberService.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	default:
		ctrl.Log.Error("member update failed", zap.String("id", id.String()), zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
}

// POST /api/a/members/:id/convert
func (ctrl *MemberController) Convert(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid member id")
	}
	var req memberDTO.ConvertMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validator.Struct(&req); err != nil {
		return helper.JsonValidationError(c, err)
	}

	err = ctrl.Service.Convert(c.UserContext(), id, req)
	switch {
	case err == nil:
		return helper.JsonUpdated(c, "Member converted to family head", fiber.Map{"id": id, "pmj_no": req.NewPmjNo})
	case errors.Is(err, memberService.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, memberService.ErrAlreadyHead), errors.Is(err, memberService.ErrDuplicatePmj):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	default:
		ctrl.Log.Error("member convert failed", zap.String("id", id.String()), zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
}

// GET /api/a/members?status=&q=&page=&per_page=
func (ctrl *MemberController) List(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 50, 500)
	rows, total, err := ctrl.Repo.List(c.UserContext(), memberDTO.ListMembersQuery{
		Status: c.Query("status"),
		Q:      c.Query("q"),
	}, p.Offset, p.Limit)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch members")
	}
	pg := helper.BuildPagination(total, p.Page, p.PerPage, len(rows))
	return helper.JsonList(c, "ok", rows, &pg)
}

// GET /api/a/members/export
func (ctrl *MemberController) Export(c *fiber.Ctx) error {
	rows, _, err := ctrl.Repo.List(c.UserContext(), memberDTO.ListMembersQuery{Status: c.Query("status")}, 0, 0)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch members")
	}
	data, err := memberService.ExportXLSX(rows)
	if err != nil {
		ctrl.Log.Error("member export failed", zap.Error(err))
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build workbook")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="members.xlsx"`)
	return c.Send(data)
}
