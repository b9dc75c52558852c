package repository

import (
	"context"

	"github.com/jhoicas/ucoffee-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// Create inserta el usuario y completa user.ID y user.RegisteredAt.
	Create(ctx context.Context, user *entity.User) error
	// FindByEmail devuelve el usuario con sus roles agregados, o nil si no existe.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// List devuelve todos los usuarios (con roles) del más reciente al más antiguo.
	List(ctx context.Context) ([]*entity.User, error)
}
