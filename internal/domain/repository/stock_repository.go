package repository

import "github.com/jhoicas/hemocentro-api/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar el saldo por grupo sanguíneo.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// Get devuelve el saldo del grupo; si no existe fila, devuelve saldo cero (nunca nil).
	Get(group entity.BloodGroup) (*entity.Stock, error)
	// GetForUpdate bloquea la fila del grupo para update (SELECT FOR UPDATE),
	// creándola con saldo 0 si no existe. Serializa créditos y débitos
	// concurrentes sobre el mismo grupo, incluido el primer ingreso.
	GetForUpdate(group entity.BloodGroup) (*entity.Stock, error)
	// Upsert inserta o actualiza el saldo (creación perezosa en el primer ingreso).
	Upsert(stock *entity.Stock) error
	// List devuelve todos los saldos existentes.
	List() ([]entity.Stock, error)
}
