package repository

import (
	"context"

	"github.com/jhoicas/ucoffee-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Create y Update reescriben en product el precio y las fechas tal como quedaron guardados.
// Update y Delete devuelven domain.ErrProductNotFound si no afectan ninguna fila.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id int64) error
}
