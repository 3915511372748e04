package middlewares

import (
	"github.com/gofiber/fiber/v3"
)

const (
	corsAllowOrigin  = "*"
	corsAllowHeaders = "Content-Type, Authorization"
	corsAllowMethods = "GET, POST, PUT, DELETE, OPTIONS"
)

// CORSMiddleware stamps the fixed CORS headers on every response and answers
// preflight requests itself with 200 and an empty body.
func CORSMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		c.Set(fiber.HeaderAccessControlAllowOrigin, corsAllowOrigin)
		c.Set(fiber.HeaderAccessControlAllowHeaders, corsAllowHeaders)
		c.Set(fiber.HeaderAccessControlAllowMethods, corsAllowMethods)

		if c.Method() == fiber.MethodOptions {
			return c.Status(fiber.StatusOK).Send(nil)
		}

		return c.Next()
	}
}
