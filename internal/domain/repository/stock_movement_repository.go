package repository

import "github.com/jhoicas/hemocentro-api/internal/domain/entity"

// StockMovementRepository define el puerto del diario de movimientos de stock.
// Solo inserción y lectura: los movimientos son inmutables una vez escritos.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	List(limit, offset int) ([]entity.StockMovement, error)
}
