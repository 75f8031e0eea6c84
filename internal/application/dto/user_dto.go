package dto

import "time"

// RegisterRequest body para POST /api/auth/register.
type RegisterRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Gender    string `json:"gender"`
	BloodType string `json:"blood_type"`
	Password  string `json:"password"`
	Role      string `json:"role,omitempty"` // por defecto: donante
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// UserResponse representación pública de un usuario (sin hash).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Gender    string    `json:"gender"`
	BloodType string    `json:"blood_type"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
