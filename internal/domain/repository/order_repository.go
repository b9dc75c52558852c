package repository

import (
	"context"

	"github.com/jhoicas/ucoffee-api/internal/domain/entity"
)

// OrderRecord pedido tal como está persistido: la lista de ítems viaja como documento JSON sin decodificar.
type OrderRecord struct {
	Order     entity.Order
	ItemsJSON []byte
}

// OrderRepository define el puerto de persistencia para pedidos.
type OrderRepository interface {
	// Create inserta el pedido y completa ID, TotalAmount (valor guardado) y CreatedAt en rec.Order.
	Create(ctx context.Context, rec *OrderRecord) error
	GetByID(ctx context.Context, id int64) (*OrderRecord, error)
	List(ctx context.Context) ([]*OrderRecord, error)
}
