package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RolePanadero = "panadero"
	RoleVendedor = "vendedor"
)

// User usuario de la aplicación. PasswordHash es bcrypt; nunca se expone.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
