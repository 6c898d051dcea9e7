package details

import (
	"github.com/gofiber/fiber/v2"

	paymentRoute "jamath_backend/internals/features/finance/payments/route"
	noticeRoute "jamath_backend/internals/features/home/notices/route"
	memberRoute "jamath_backend/internals/features/members/members/route"
	prayerRoute "jamath_backend/internals/features/prayer/settings/route"
	logRoute "jamath_backend/internals/features/system/logs/route"
)

func AdminRoutes(admin fiber.Router, d Deps) {
	memberRoute.MemberAdminRoutes(admin, d.DB, d.Accounts, d.Log)
	paymentRoute.PaymentAdminRoutes(admin, d.DB, d.Push, d.Log)
	noticeRoute.NoticeAdminRoutes(admin, d.DB, d.Push, d.Log)
	prayerRoute.PrayerAdminRoutes(admin, d.DB, d.Cache, d.Log)
	logRoute.LogAdminRoutes(admin, d.DB)
}
