package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ucoffee-api/internal/application/usecase"
)

// UserHandler listado de usuarios para administración.
type UserHandler struct {
	uc *usecase.UserUseCase
}

func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuarios con su rol efectivo
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.UserSummaryResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
