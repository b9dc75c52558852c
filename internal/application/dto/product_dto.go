package dto

import "github.com/shopspring/decimal"

// ProductRequest entrada para crear o actualizar un producto.
// El precio se valida en el use case (debe ser > 0).
type ProductRequest struct {
	Title       string          `json:"title" validate:"required,max=255"`
	Description string          `json:"description" validate:"required"`
	Price       decimal.Decimal `json:"price"`
	Image       *string         `json:"image"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       *string         `json:"image"`
}
