package usecase

import (
	"context"

	"github.com/jhoicas/ucoffee-api/internal/application/dto"
	"github.com/jhoicas/ucoffee-api/internal/domain/entity"
	"github.com/jhoicas/ucoffee-api/internal/domain/repository"
)

// UserUseCase directorio de usuarios de solo lectura para administración.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List devuelve todos los usuarios, más reciente primero, con su rol resuelto ("guest" si no tiene roles).
func (uc *UserUseCase) List(ctx context.Context) ([]dto.UserSummaryResponse, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserSummaryResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.UserSummaryResponse{
			ID:        u.ID,
			Name:      u.FullName,
			Email:     u.Email,
			Status:    u.Status,
			CreatedAt: u.RegisteredAt,
			Role:      entity.ResolveRole(u.Roles, entity.RoleGuest),
		})
	}
	return out, nil
}
