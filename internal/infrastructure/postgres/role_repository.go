package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ucoffee-api/internal/domain/entity"
	"github.com/jhoicas/ucoffee-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo roles y asignaciones user_roles.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador. Acepta pool o tx.
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// FindByName busca un rol por nombre. nil si no existe.
func (r *RoleRepo) FindByName(ctx context.Context, name string) (*entity.Role, error) {
	var role entity.Role
	err := r.q.QueryRow(ctx, `SELECT id, name FROM roles WHERE name = $1`, name).Scan(&role.ID, &role.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return &role, nil
}

// Assign asocia el rol al usuario. Reasignar el mismo rol no es error.
func (r *RoleRepo) Assign(ctx context.Context, userID, roleID int64) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2) ON CONFLICT (user_id, role_id) DO NOTHING`,
		userID, roleID,
	)
	if err != nil {
		return fmt.Errorf("assign role: %w", err)
	}
	return nil
}
