package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/hemocentro-api/internal/domain/entity"
	"github.com/jhoicas/hemocentro-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del diario de movimientos (usable con pool o tx).
// Solo INSERT y SELECT: los movimientos nunca se modifican ni se borran.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de stock.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, blood_group, quantity, reason, reference, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.BloodGroup.String(), movement.Quantity,
		movement.Reason, nullIfEmpty(movement.Reference),
		movement.CreatedAt, nullIfEmpty(movement.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// List devuelve movimientos, más recientes primero.
func (r *StockMovementRepo) List(limit, offset int) ([]entity.StockMovement, error) {
	query := `
		SELECT id, blood_group, quantity, reason, COALESCE(reference, ''), created_at, COALESCE(created_by, '')
		FROM stock_movements
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var out []entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.BloodGroup, &m.Quantity, &m.Reason, &m.Reference, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
