package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const (
	corsAllowMethods = "GET,POST,PUT,DELETE,OPTIONS"
	corsAllowHeaders = "Origin,Content-Type,Accept,Authorization,X-Request-ID"
)

// CORS aplica las cabeceras CORS. Los preflight OPTIONS, en cualquier ruta, se contestan
// con 200 y cuerpo vacío aunque no traigan Origin.
func CORS(origins string) fiber.Handler {
	if strings.TrimSpace(origins) == "" {
		origins = "*"
	}
	regular := cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  corsAllowMethods,
		AllowHeaders:  corsAllowHeaders,
		ExposeHeaders: headerRequestID,
	})
	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodOptions {
			return regular(c)
		}
		c.Set(fiber.HeaderAccessControlAllowOrigin, preflightOrigin(origins, c.Get(fiber.HeaderOrigin)))
		c.Set(fiber.HeaderAccessControlAllowMethods, corsAllowMethods)
		c.Set(fiber.HeaderAccessControlAllowHeaders, corsAllowHeaders)
		c.Status(fiber.StatusOK)
		return nil
	}
}

func preflightOrigin(allowed, origin string) string {
	if allowed == "*" || origin == "" {
		return allowed
	}
	for _, o := range strings.Split(allowed, ",") {
		if strings.EqualFold(strings.TrimSpace(o), origin) {
			return origin
		}
	}
	return strings.TrimSpace(strings.Split(allowed, ",")[0])
}
