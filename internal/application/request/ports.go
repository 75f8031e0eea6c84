package request

import (
	"context"

	"github.com/jhoicas/hemocentro-api/internal/domain/repository"
)

// TxRunner ejecuta la decisión de una solicitud dentro de una transacción:
// el cambio de estado y el débito de stock se confirman o revierten juntos.
type TxRunner interface {
	RunDecision(ctx context.Context, fn func(
		requestRepo repository.RequestRepository,
		stockRepo repository.StockRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}
