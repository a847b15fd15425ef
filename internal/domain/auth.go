package domain

// Role enumerates the access levels recognized by the API.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCliente Role = "cliente"
	RoleTecnico Role = "tecnico"
)

// ValidRole reports whether the value names a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleCliente, RoleTecnico:
		return true
	}
	return false
}
