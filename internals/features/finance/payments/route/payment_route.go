package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	paymentController "jamath_backend/internals/features/finance/payments/controller"
	paymentRepo "jamath_backend/internals/features/finance/payments/repository"
	paymentService "jamath_backend/internals/features/finance/payments/service"
	memberRepo "jamath_backend/internals/features/members/members/repository"
	tokenRepo "jamath_backend/internals/features/notifications/device_tokens/repository"
)

func newController(db *gorm.DB, push paymentService.Broadcaster, log *zap.Logger) *paymentController.PaymentController {
	repo := paymentRepo.NewPaymentRepository(db)
	svc := paymentService.NewPaymentService(repo, tokenRepo.NewDeviceTokenRepository(db), push, log)
	return paymentController.NewPaymentController(repo, svc, memberRepo.NewMemberRepository(db), log)
}

func PaymentAdminRoutes(admin fiber.Router, db *gorm.DB, push paymentService.Broadcaster, log *zap.Logger) {
	ctrl := newController(db, push, log)
	admin.Get("/payments", ctrl.List)
	admin.Post("/payments", ctrl.Create)
}

func PaymentUserRoutes(user fiber.Router, db *gorm.DB, push paymentService.Broadcaster, log *zap.Logger) {
	ctrl := newController(db, push, log)
	user.Post("/payments/:id/read", ctrl.MarkRead)
}
