package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa el saldo disponible de un grupo sanguíneo (una fila por grupo).
// Invariante: Quantity >= 0 siempre; solo muta dentro de las transacciones del ledger.
type Stock struct {
	BloodGroup BloodGroup
	Quantity   decimal.Decimal
	UpdatedAt  time.Time
}
