package repository

import "github.com/jhoicas/hemocentro-api/internal/domain/entity"

// UserRepository define el puerto de persistencia de usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	// GetByID devuelve nil, nil si el usuario no existe.
	GetByID(id string) (*entity.User, error)
	// FindByPhone devuelve nil, nil si no hay usuario con ese teléfono.
	FindByPhone(phone string) (*entity.User, error)
}
