package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/hemocentro-api/internal/domain/entity"
	"github.com/jhoicas/hemocentro-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
// La tabla blood_stock tiene una fila por grupo sanguíneo y un CHECK (quantity >= 0)
// como última línea de defensa del invariante.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el saldo de un grupo. Sin fila devuelve saldo cero, nunca nil.
func (r *StockRepo) Get(group entity.BloodGroup) (*entity.Stock, error) {
	query := `
		SELECT blood_group, quantity, updated_at
		FROM blood_stock WHERE blood_group = $1`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, group.String()).Scan(
		&s.BloodGroup, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{BloodGroup: group, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el saldo y bloquea la fila (SELECT FOR UPDATE).
// Serializa créditos/débitos concurrentes sobre el mismo grupo.
//
// FOR UPDATE no bloquea filas inexistentes: si el grupo aún no tiene fila se
// inserta primero con saldo 0 (ON CONFLICT DO NOTHING), de modo que el primer
// ingreso de un grupo serializa igual que cualquier otro.
func (r *StockRepo) GetForUpdate(group entity.BloodGroup) (*entity.Stock, error) {
	insert := `
		INSERT INTO blood_stock (blood_group, quantity, updated_at)
		VALUES ($1, 0, now())
		ON CONFLICT (blood_group) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), insert, group.String()); err != nil {
		return nil, fmt.Errorf("init stock row: %w", err)
	}
	query := `
		SELECT blood_group, quantity, updated_at
		FROM blood_stock WHERE blood_group = $1
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, group.String()).Scan(
		&s.BloodGroup, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza el saldo del grupo (creación perezosa).
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	query := `
		INSERT INTO blood_stock (blood_group, quantity, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (blood_group)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, stock.BloodGroup.String(), stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// List devuelve todos los saldos existentes, en orden de grupo.
func (r *StockRepo) List() ([]entity.Stock, error) {
	query := `
		SELECT blood_group, quantity, updated_at
		FROM blood_stock ORDER BY blood_group`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var out []entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.BloodGroup, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
