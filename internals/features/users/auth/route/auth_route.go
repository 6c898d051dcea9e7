package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	memberRepo "jamath_backend/internals/features/members/members/repository"
	authController "jamath_backend/internals/features/users/auth/controller"
)

func AuthUserRoutes(user fiber.Router, db *gorm.DB) {
	ctrl := authController.NewMeController(memberRepo.NewMemberRepository(db))
	user.Get("/me", ctrl.Me)
}
