package entity

import "time"

// Roles conocidos.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
	RoleGuest    = "guest"
)

// Role grupo de permisos asignable a usuarios (datos de referencia).
type Role struct {
	ID   int64
	Name string
}

// UserRole asociación muchos-a-muchos entre usuario y rol.
type UserRole struct {
	UserID     int64
	RoleID     int64
	AssignedAt time.Time
}

// RolePriority tabla de precedencia para resolver el rol efectivo.
// Mayor valor gana; los roles ausentes de la tabla no compiten por prioridad.
var RolePriority = map[string]int{
	RoleAdmin:    100,
	RoleCustomer: 10,
}

// ResolveRole elige un único rol: el de mayor prioridad conocida; si ninguno
// está en la tabla, el primero asignado; sin roles, fallback.
func ResolveRole(roles []string, fallback string) string {
	best, bestPrio := "", -1
	for _, r := range roles {
		if p, ok := RolePriority[r]; ok && p > bestPrio {
			best, bestPrio = r, p
		}
	}
	if best != "" {
		return best
	}
	for _, r := range roles {
		if r != "" {
			return r
		}
	}
	return fallback
}
