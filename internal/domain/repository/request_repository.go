package repository

import (
	"time"

	"github.com/jhoicas/hemocentro-api/internal/domain/entity"
)

// RequestRepository define el puerto de persistencia de solicitudes de sangre.
type RequestRepository interface {
	Create(request *entity.DonationRequest) error
	// GetByID devuelve nil, nil si la solicitud no existe.
	GetByID(id string) (*entity.DonationRequest, error)
	// GetForUpdate bloquea la fila de la solicitud (SELECT FOR UPDATE) para
	// que la decisión pending→terminal ocurra exactamente una vez.
	GetForUpdate(id string) (*entity.DonationRequest, error)
	// UpdateStatus aplica la transición de estado y fija decidedAt.
	UpdateStatus(id, status string, decidedAt time.Time) error
	// List filtra por estado; status vacío devuelve todas.
	List(status string, limit, offset int) ([]entity.DonationRequest, error)
	ListByRequester(requesterID string) ([]entity.DonationRequest, error)
	CountByStatus() (map[string]int, error)
}
