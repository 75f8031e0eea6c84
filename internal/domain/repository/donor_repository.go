package repository

import "github.com/jhoicas/hemocentro-api/internal/domain/entity"

// DonorFilter filtros de listado de donantes. CityKey se compara contra la
// clave de búsqueda normalizada (minúsculas, sin acentos) de la ciudad.
type DonorFilter struct {
	BloodType entity.BloodGroup
	CityKey   string
	Limit     int
	Offset    int
}

// DonorRepository define el puerto de persistencia de donantes.
type DonorRepository interface {
	Create(donor *entity.Donor) error
	// GetByID devuelve nil, nil si el donante no existe.
	GetByID(id string) (*entity.Donor, error)
	Update(donor *entity.Donor) error
	Delete(id string) error
	List(filter DonorFilter) ([]entity.Donor, error)
}
