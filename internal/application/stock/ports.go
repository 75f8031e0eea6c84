package stock

import (
	"context"

	"github.com/jhoicas/hemocentro-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción, con repos atados a la tx.
// Commit si fn devuelve nil; Rollback en caso contrario.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
