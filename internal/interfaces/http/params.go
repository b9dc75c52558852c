package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ucoffee-api/internal/domain"
)

// parseID lee el parámetro :id como entero positivo.
func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid("id inválido")
	}
	return id, nil
}
