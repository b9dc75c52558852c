package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ucoffee-api/internal/application/dto"
	"github.com/jhoicas/ucoffee-api/internal/application/usecase"
)

// OrderHandler maneja pedidos.
type OrderHandler struct {
	uc *usecase.OrderUseCase
}

func NewOrderHandler(uc *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create godoc
// @Summary      Crear pedido desde el carrito
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateOrderRequest  true  "datos de contacto e items"
// @Success      201   {object}  dto.CreateOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	// Con sesión válida el pedido queda a nombre del usuario del token.
	if uid := GetUserID(c); uid > 0 {
		in.UserID = &uid
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar pedidos
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener pedido
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "ID del pedido"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Recibo PDF del pedido
// @Tags         orders
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  int  true  "ID del pedido"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/receipt [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}
	pdf, err := h.uc.Receipt(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="pedido-`+strconv.FormatInt(id, 10)+`.pdf"`)
	return c.Send(pdf)
}
