package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Motivos de movimiento de stock.
const (
	MovementReasonStockIn         = "stock-in"         // ingreso de unidades
	MovementReasonRequestApproved = "request-approved" // descuento por solicitud aprobada
)

// StockMovement es una entrada del diario de stock (append-only, inmutable).
// Quantity es positiva para ingresos y negativa para descuentos por aprobación.
type StockMovement struct {
	ID         string
	BloodGroup BloodGroup
	Quantity   decimal.Decimal
	Reason     string // stock-in, request-approved
	Reference  string // ID de la solicitud aprobada; vacío en ingresos manuales
	CreatedAt  time.Time
	CreatedBy  string // UserID
}
