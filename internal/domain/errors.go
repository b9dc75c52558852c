package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrProductNotFound    = errors.New("producto no encontrado")
	ErrOrderNotFound      = errors.New("pedido no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrAccountBlocked     = fmt.Errorf("cuenta bloqueada: %w", ErrForbidden)
)

// Invalid construye un error de validación con mensaje legible para el cliente.
// errors.Is(err, ErrInvalidInput) sigue funcionando sobre el resultado.
func Invalid(msg string) error {
	return &validationError{msg: msg}
}

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Unwrap() error { return ErrInvalidInput }
