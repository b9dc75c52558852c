package entity

import "time"

// Estados válidos para User.
const (
	UserStatusActive  = "active"
	UserStatusBlocked = "blocked"
)

// User representa una cuenta registrada en la tienda.
type User struct {
	ID           int64
	FullName     string
	Email        string
	PasswordHash string   // bcrypt hash, nunca plano en dominio después de persistir
	Status       string   // active, blocked
	Roles        []string // nombres de rol en orden de asignación
	RegisteredAt time.Time
}

// IsBlocked indica si la cuenta fue bloqueada por un administrador.
func (u *User) IsBlocked() bool {
	return u.Status == UserStatusBlocked
}

// EffectiveRole resuelve el rol único del usuario a partir de sus roles asignados.
func (u *User) EffectiveRole() string {
	return ResolveRole(u.Roles, RoleCustomer)
}
