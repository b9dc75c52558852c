package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product artículo del catálogo de café.
type Product struct {
	ID          int64
	Title       string
	Description string
	Price       decimal.Decimal // precio unitario, siempre > 0
	Image       *string         // referencia opcional a imagen
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
