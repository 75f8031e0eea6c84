package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleDonante = "donante"
)

// User representa un usuario del sistema (administrador o solicitante).
type User struct {
	ID           string
	Name         string
	Phone        string
	Gender       string
	BloodType    BloodGroup
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, donante
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
