package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"jamath_backend/internals/configs"
	memberController "jamath_backend/internals/features/members/members/controller"
	memberRepo "jamath_backend/internals/features/members/members/repository"
	memberService "jamath_backend/internals/features/members/members/service"
)

func MemberAdminRoutes(admin fiber.Router, db *gorm.DB, accounts memberService.AccountProvisioner, log *zap.Logger) {
	repo := memberRepo.NewMemberRepository(db)
	svc := memberService.NewMemberService(repo, accounts, configs.MemberLoginDomain, log)
	ctrl := memberController.NewMemberController(repo, svc, log)

	members := admin.Group("/members")
	members.Get("/", ctrl.List)
	members.Get("/export", ctrl.Export)
	members.Post("/", ctrl.Create)
	members.Post("/upload", ctrl.Upload)
	members.Patch("/:id", ctrl.Update)
	members.Post("/:id/convert", ctrl.Convert)
	members.Delete("/:id", ctrl.Delete)
}
