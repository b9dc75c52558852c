package repository

import (
	"context"

	"github.com/jhoicas/ucoffee-api/internal/domain/entity"
)

// RoleRepository acceso a roles y a la tabla de asociación user_roles.
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*entity.Role, error)
	Assign(ctx context.Context, userID, roleID int64) error
}
