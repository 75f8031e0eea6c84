package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/hemocentro-api/internal/domain"
	donordomain "github.com/jhoicas/hemocentro-api/internal/domain/donor"
	"github.com/jhoicas/hemocentro-api/internal/domain/entity"
	"github.com/jhoicas/hemocentro-api/internal/domain/repository"
)

var _ repository.DonorRepository = (*DonorRepo)(nil)

// DonorRepo implementación de DonorRepository sobre PostgreSQL (usable con pool o tx).
// Además de city, guarda city_key (minúsculas, sin acentos) para los filtros
// de búsqueda del listado.
type DonorRepo struct {
	q Querier
}

// NewDonorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDonorRepository(q Querier) *DonorRepo {
	return &DonorRepo{q: q}
}

const donorColumns = `id, name, phone, email, city, address, gender, dob, blood_type,
		COALESCE(medical_history, ''), last_donation_date, status, created_at, updated_at`

// Create persiste un donante nuevo.
func (r *DonorRepo) Create(donor *entity.Donor) error {
	query := `
		INSERT INTO donors (id, name, phone, email, city, city_key, address, gender, dob, blood_type,
			medical_history, last_donation_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		donor.ID, donor.Name, donor.Phone, donor.Email,
		donor.City, donordomain.SearchKey(donor.City),
		donor.Address, donor.Gender, donor.DOB, donor.BloodType.String(),
		nullIfEmpty(donor.MedicalHistory), donor.LastDonationDate,
		donor.Status, donor.CreatedAt, donor.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert donor: %w", err)
	}
	return nil
}

// GetByID devuelve nil, nil si el donante no existe.
func (r *DonorRepo) GetByID(id string) (*entity.Donor, error) {
	query := `SELECT ` + donorColumns + ` FROM donors WHERE id = $1`
	var d entity.Donor
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.Name, &d.Phone, &d.Email, &d.City, &d.Address, &d.Gender,
		&d.DOB, &d.BloodType, &d.MedicalHistory, &d.LastDonationDate,
		&d.Status, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get donor: %w", err)
	}
	return &d, nil
}

// Update actualiza los datos del donante (city_key se recalcula).
func (r *DonorRepo) Update(donor *entity.Donor) error {
	query := `
		UPDATE donors
		SET name = $2, phone = $3, email = $4, city = $5, city_key = $6, address = $7,
		    medical_history = $8, last_donation_date = $9, status = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		donor.ID, donor.Name, donor.Phone, donor.Email,
		donor.City, donordomain.SearchKey(donor.City), donor.Address,
		nullIfEmpty(donor.MedicalHistory), donor.LastDonationDate,
		donor.Status, donor.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update donor: %w", err)
	}
	return nil
}

// Delete elimina un donante.
func (r *DonorRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM donors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete donor: %w", err)
	}
	return nil
}

// List devuelve donantes según el filtro (grupo sanguíneo y/o city_key).
func (r *DonorRepo) List(filter repository.DonorFilter) ([]entity.Donor, error) {
	query := `
		SELECT ` + donorColumns + `
		FROM donors
		WHERE ($1 = '' OR blood_type = $1)
		  AND ($2 = '' OR city_key = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query,
		filter.BloodType.String(), filter.CityKey, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list donors: %w", err)
	}
	defer rows.Close()

	var out []entity.Donor
	for rows.Next() {
		var d entity.Donor
		if err := rows.Scan(
			&d.ID, &d.Name, &d.Phone, &d.Email, &d.City, &d.Address, &d.Gender,
			&d.DOB, &d.BloodType, &d.MedicalHistory, &d.LastDonationDate,
			&d.Status, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan donor: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
