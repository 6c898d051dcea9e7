package auth

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// CronSecret admits only requests whose Authorization header is exactly
// "Bearer <secret>". An empty secret rejects everything.
func CronSecret(secret string) fiber.Handler {
	want := []byte("Bearer " + secret)
	return func(c *fiber.Ctx) error {
		got := []byte(c.Get(fiber.HeaderAuthorization))
		if secret == "" || subtle.ConstantTimeCompare(got, want) != 1 {
			return c.Status(fiber.StatusUnauthorized).SendString("Unauthorized")
		}
		return c.Next()
	}
}
