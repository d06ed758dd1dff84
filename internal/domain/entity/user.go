package entity

// Roles válidos para User.
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "ADMIN"
	RoleOperator   = "OPERATOR"
)

// BranchSedeCentral es la sede principal; para un SUPER_ADMIN equivale a alcance global.
const BranchSedeCentral = "Sede Central"

// User representa un usuario del sistema, asignado a una sucursal.
// PasswordHash guarda un hash bcrypt después de la primera sincronización;
// los datos sembrados pueden traer la contraseña en claro hasta entonces.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"` // SUPER_ADMIN, ADMIN, OPERATOR
	PasswordHash string `json:"password,omitempty"`
	Branch       string `json:"branch"` // sucursal asignada
}
