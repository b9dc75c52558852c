package auth

import (
	"context"

	"github.com/jhoicas/ucoffee-api/internal/domain/repository"
)

// AccountTxRunner ejecuta fn dentro de una transacción con repositorios atados a esa tx.
// Registro de usuario y asignación de rol se confirman o se descartan juntos.
type AccountTxRunner interface {
	RunAccount(ctx context.Context, fn func(
		users repository.UserRepository,
		roles repository.RoleRepository,
	) error) error
}
