package entity

import "time"

// Estados de una solicitud de sangre. Transiciones válidas:
// pending → approved | declined. Los estados terminales son inmutables.
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusDeclined = "declined"
)

// DonationRequest es una solicitud de unidades de un grupo sanguíneo,
// sujeta a aprobación contra el stock disponible.
type DonationRequest struct {
	ID          string
	RequesterID string // usuario dueño de la solicitud
	BloodGroup  BloodGroup
	Quantity    int // unidades enteras, >= 1
	Status      string
	CreatedAt   time.Time
	DecidedAt   *time.Time // nil mientras esté pendiente
}

// IsDecided indica si la solicitud ya está en un estado terminal.
func (r *DonationRequest) IsDecided() bool {
	return r.Status != RequestStatusPending
}
