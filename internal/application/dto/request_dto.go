package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubmitRequestRequest body para POST /api/requests.
type SubmitRequestRequest struct {
	BloodGroup string `json:"blood_group"`
	Quantity   int    `json:"quantity"`
}

// RequestResponse representación de una solicitud de sangre.
type RequestResponse struct {
	ID          string     `json:"id"`
	RequesterID string     `json:"requester_id"`
	BloodGroup  string     `json:"blood_group"`
	Quantity    int        `json:"quantity"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	DecidedAt   *time.Time `json:"decided_at,omitempty"`
}

// DecisionResponse resultado de aprobar/rechazar una solicitud.
// Status refleja el estado terminal alcanzado; Balance es el saldo del grupo
// después de la decisión (sin cambios cuando la solicitud se rechaza).
type DecisionResponse struct {
	ID      string          `json:"id"`
	Status  string          `json:"status"`
	Balance decimal.Decimal `json:"balance"`
}
