package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/hemocentro-api/internal/domain"
	"github.com/jhoicas/hemocentro-api/internal/domain/entity"
	"github.com/jhoicas/hemocentro-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre PostgreSQL (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, name, phone, gender, blood_type, password_hash, role, status, created_at, updated_at`

// Create persiste un usuario. El teléfono tiene constraint único.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, name, phone, gender, blood_type, password_hash, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Name, user.Phone, user.Gender, user.BloodType.String(),
		user.PasswordHash, user.Role, user.Status, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrPhoneAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) getBy(query string, arg any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&u.ID, &u.Name, &u.Phone, &u.Gender, &u.BloodType,
		&u.PasswordHash, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// GetByID devuelve nil, nil si el usuario no existe.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.getBy(`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// FindByPhone devuelve nil, nil si no hay usuario con ese teléfono.
func (r *UserRepo) FindByPhone(phone string) (*entity.User, error) {
	return r.getBy(`SELECT `+userColumns+` FROM users WHERE phone = $1`, phone)
}
