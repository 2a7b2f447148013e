// Package session define la sesión del operador del panel. Se pasa de forma
// explícita a casos de uso y clientes; no hay estado global de autenticación.
package session

import "slices"

// Roles conocidos por el panel.
const (
	RoleAdmin      = "admin"
	RoleSupervisor = "supervisor"
	RoleOperador   = "operador"
)

// Session datos del operador autenticado.
type Session struct {
	ID           string
	UserID       string
	Name         string
	Role         string
	BackendToken string
}

// HasRole indica si la sesión tiene alguno de los roles.
func (s Session) HasRole(roles ...string) bool {
	return slices.Contains(roles, s.Role)
}

// IsAdmin atajo para el rol admin.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

// Valid una sesión sin usuario o sin token del backend no sirve para llamar al backend.
func (s Session) Valid() bool {
	return s.UserID != "" && s.BackendToken != ""
}
