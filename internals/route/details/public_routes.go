package details

import (
	"github.com/gofiber/fiber/v2"

	noticeRoute "jamath_backend/internals/features/home/notices/route"
	prayerRoute "jamath_backend/internals/features/prayer/settings/route"
)

func PublicRoutes(public fiber.Router, d Deps) {
	noticeRoute.NoticePublicRoutes(public, d.DB, d.Push, d.Log)
	prayerRoute.PrayerPublicRoutes(public, d.DB, d.Cache, d.Log)
}
