package details

import (
	"github.com/gofiber/fiber/v2"

	paymentRoute "jamath_backend/internals/features/finance/payments/route"
	noticeRoute "jamath_backend/internals/features/home/notices/route"
	dashboardRoute "jamath_backend/internals/features/members/dashboard/route"
	authRoute "jamath_backend/internals/features/users/auth/route"
)

func UserRoutes(user fiber.Router, d Deps) {
	authRoute.AuthUserRoutes(user, d.DB)
	dashboardRoute.DashboardUserRoutes(user, d.DB, d.Log)
	noticeRoute.NoticeUserRoutes(user, d.DB, d.Push, d.Log)
	paymentRoute.PaymentUserRoutes(user, d.DB, d.Push, d.Log)
}
