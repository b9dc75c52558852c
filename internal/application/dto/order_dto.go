package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem línea del carrito tal como la envía el cliente y tal como se devuelve en el listado.
// Quantity ausente equivale a 1. ID es la referencia al producto que envía la tienda web.
type OrderItem struct {
	ID        *int64          `json:"id,omitempty"`
	ProductID *int64          `json:"productId,omitempty"`
	Title     string          `json:"title" validate:"required"`
	Price     decimal.Decimal `json:"price"`
	PriceText string          `json:"priceText,omitempty"`
	Quantity  *int            `json:"quantity,omitempty"`
}

// CreateOrderRequest entrada para crear un pedido desde el carrito.
type CreateOrderRequest struct {
	Name    string      `json:"name" validate:"required,max=200"`
	Phone   string      `json:"phone" validate:"required,max=50"`
	Email   string      `json:"email" validate:"required,max=255"`
	Address string      `json:"address" validate:"required"`
	Items   []OrderItem `json:"items" validate:"required,min=1,dive"`
	UserID  *int64      `json:"userId"`
}

// CreateOrderResponse recibo del pedido creado.
type CreateOrderResponse struct {
	ID         int64           `json:"id"`
	Success    bool            `json:"success"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// OrderResponse pedido para el panel de administración.
type OrderResponse struct {
	ID         int64           `json:"id"`
	UserID     *int64          `json:"user_id"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone"`
	Email      string          `json:"email"`
	Address    string          `json:"address"`
	Items      []OrderItem     `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}
