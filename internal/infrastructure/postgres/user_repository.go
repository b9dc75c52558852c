package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/ucoffee-api/internal/domain"
	"github.com/jhoicas/ucoffee-api/internal/domain/entity"
	"github.com/jhoicas/ucoffee-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Columnas de usuario más los nombres de rol agregados en orden de asignación.
const userWithRolesSelect = `
	SELECT u.id, u.full_name, u.email, u.password_hash, u.status, u.registration_date,
	       COALESCE(array_agg(r.name ORDER BY ur.assigned_at, r.id) FILTER (WHERE r.name IS NOT NULL), '{}') AS roles
	FROM users u
	LEFT JOIN user_roles ur ON ur.user_id = u.id
	LEFT JOIN roles r ON r.id = ur.role_id`

// Create persiste un nuevo usuario; id y fecha de registro los asigna la DB.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (full_name, email, password_hash, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, registration_date`
	err := r.q.QueryRow(ctx, query, user.FullName, user.Email, user.PasswordHash, user.Status).
		Scan(&user.ID, &user.RegisteredAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// FindByEmail obtiene un usuario con sus roles. nil si no existe.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := userWithRolesSelect + `
	WHERE u.email = $1
	GROUP BY u.id
	LIMIT 1`
	u, err := scanUser(r.q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// List lista todos los usuarios, más reciente primero.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	query := userWithRolesSelect + `
	GROUP BY u.id
	ORDER BY u.registration_date DESC, u.id DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	if err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Status, &u.RegisteredAt, &u.Roles); err != nil {
		return nil, err
	}
	return &u, nil
}
