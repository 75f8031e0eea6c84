package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditStockRequest body para POST /api/stock (ingreso de unidades).
type CreditStockRequest struct {
	BloodGroup string          `json:"blood_group"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// StockBalanceResponse saldo de un grupo sanguíneo.
type StockBalanceResponse struct {
	BloodGroup string          `json:"blood_group"`
	Quantity   decimal.Decimal `json:"quantity"`
	UpdatedAt  *time.Time      `json:"updated_at,omitempty"`
}

// StockMovementResponse una entrada del diario de movimientos.
type StockMovementResponse struct {
	ID         string          `json:"id"`
	BloodGroup string          `json:"blood_group"`
	Quantity   decimal.Decimal `json:"quantity"`
	Reason     string          `json:"reason"`
	Reference  string          `json:"reference,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	CreatedBy  string          `json:"created_by,omitempty"`
}
