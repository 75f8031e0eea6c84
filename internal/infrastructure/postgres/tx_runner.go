package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/hemocentro-api/internal/application/request"
	"github.com/jhoicas/hemocentro-api/internal/application/stock"
	"github.com/jhoicas/hemocentro-api/internal/domain/repository"
)

// Ensure TxRunner implements stock.TxRunner and request.TxRunner.
var _ stock.TxRunner = (*TxRunner)(nil)
var _ request.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos del ledger atados a la
// tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stockRepo := NewStockRepository(tx)
	movementRepo := NewStockMovementRepository(tx)

	if err := fn(stockRepo, movementRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunDecision inicia una transacción con los repos de solicitudes y ledger
// (para aprobar/rechazar: el cambio de estado y el débito van juntos).
func (r *TxRunner) RunDecision(ctx context.Context, fn func(
	requestRepo repository.RequestRepository,
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	requestRepo := NewRequestRepository(tx)
	stockRepo := NewStockRepository(tx)
	movementRepo := NewStockMovementRepository(tx)

	if err := fn(requestRepo, stockRepo, movementRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
