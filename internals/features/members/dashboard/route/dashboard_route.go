package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	paymentRepo "jamath_backend/internals/features/finance/payments/repository"
	noticeRepo "jamath_backend/internals/features/home/notices/repository"
	dashboardController "jamath_backend/internals/features/members/dashboard/controller"
	dashboardService "jamath_backend/internals/features/members/dashboard/service"
	memberRepo "jamath_backend/internals/features/members/members/repository"
)

func DashboardUserRoutes(user fiber.Router, db *gorm.DB, log *zap.Logger) {
	svc := dashboardService.NewDashboardService(
		memberRepo.NewMemberRepository(db),
		paymentRepo.NewPaymentRepository(db),
		noticeRepo.NewNoticeRepository(db),
	)
	ctrl := dashboardController.NewDashboardController(svc, log)

	user.Get("/dashboard", ctrl.Get)
	user.Get("/notifications", ctrl.Notifications)
}
