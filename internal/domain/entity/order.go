package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pedido.
const (
	OrderStatusNew = "new"
)

// OrderItem foto de un producto al momento de comprar; no cambia si el catálogo cambia.
// La tienda web envía la referencia al producto como "id"; "productId" se conserva para otros clientes.
type OrderItem struct {
	ID        *int64          `json:"id,omitempty"`
	ProductID *int64          `json:"productId,omitempty"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	PriceText string          `json:"priceText,omitempty"`
	Quantity  int             `json:"quantity"`
}

// LineTotal precio unitario por cantidad.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order pedido con datos de contacto y la lista de ítems embebida.
// TotalAmount es una foto tomada al crear el pedido y nunca se recalcula.
type Order struct {
	ID           int64
	UserID       *int64
	CustomerName string
	Phone        string
	Email        string
	Address      string
	Items        []OrderItem
	TotalAmount  decimal.Decimal
	Status       string
	CreatedAt    time.Time
}

// SumItems total del pedido: suma de precio × cantidad de cada línea.
func SumItems(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}
