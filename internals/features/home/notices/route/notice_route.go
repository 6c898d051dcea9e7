package route

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	noticeController "jamath_backend/internals/features/home/notices/controller"
	noticeRepo "jamath_backend/internals/features/home/notices/repository"
	noticeService "jamath_backend/internals/features/home/notices/service"
	tokenRepo "jamath_backend/internals/features/notifications/device_tokens/repository"
)

func newController(db *gorm.DB, push noticeService.Broadcaster, log *zap.Logger) *noticeController.NoticeController {
	repo := noticeRepo.NewNoticeRepository(db)
	svc := noticeService.NewNoticeService(repo, tokenRepo.NewDeviceTokenRepository(db), push, log)
	return noticeController.NewNoticeController(repo, svc, log)
}

func NoticeAdminRoutes(admin fiber.Router, db *gorm.DB, push noticeService.Broadcaster, log *zap.Logger) {
	ctrl := newController(db, push, log)
	admin.Post("/notices", ctrl.Create)
	admin.Patch("/notices/:id", ctrl.Update)
	admin.Delete("/notices/:id", ctrl.Delete)
}

func NoticeUserRoutes(user fiber.Router, db *gorm.DB, push noticeService.Broadcaster, log *zap.Logger) {
	ctrl := newController(db, push, log)
	user.Post("/notices/:id/read", ctrl.MarkRead)
}

func NoticePublicRoutes(public fiber.Router, db *gorm.DB, push noticeService.Broadcaster, log *zap.Logger) {
	ctrl := newController(db, push, log)
	public.Get("/notices", ctrl.List)
}
