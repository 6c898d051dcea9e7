package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthMiddleware verifies the auth provider's access token (HS256) and stores
// user_id and userRole in Locals. A user without a row in users gets the
// plain user role.
func AuthMiddleware(db *gorm.DB, secret string, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		if secret == "" {
			log.Error("SUPABASE_JWT_SECRET is empty")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true, ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}); err != nil {
			log.Debug("token parse failed", zap.Error(err))
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		userID, err := extractUserID(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}
		c.Locals("user_id", userID.String())

		role, err := lookupRole(c.UserContext(), db, userID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			role = defaultRole
		case err != nil:
			log.Error("role lookup failed", zap.String("user_id", userID.String()), zap.Error(err))
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
		c.Locals("userRole", role)

		return c.Next()
	}
}
