// Package stock implementa el ledger de stock de sangre: saldos por grupo
// sanguíneo con crédito/débito atómico y diario de movimientos append-only.
//
// Toda mutación de saldo pasa por este paquete y ocurre dentro de una
// transacción con bloqueo de fila (SELECT FOR UPDATE), de modo que dos
// débitos concurrentes sobre el mismo grupo nunca pueden dejar el saldo
// negativo ni perder una actualización.
package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/hemocentro-api/internal/domain"
	"github.com/jhoicas/hemocentro-api/internal/domain/entity"
	"github.com/jhoicas/hemocentro-api/internal/domain/repository"
)

// LedgerUseCase casos de uso del ledger: crédito, débito condicional y consultas.
type LedgerUseCase struct {
	txRunner     TxRunner
	stockRepo    repository.StockRepository        // lecturas fuera de tx
	movementRepo repository.StockMovementRepository // lecturas fuera de tx
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, stockRepo: stockRepo, movementRepo: movementRepo}
}

// Credit suma unidades al saldo de un grupo sanguíneo (ingreso de stock).
// Crea la fila de saldo si no existe (creación perezosa, saldo inicial 0) y
// registra el movimiento en el diario, todo en una misma transacción.
// Devuelve el saldo resultante.
func (uc *LedgerUseCase) Credit(
	ctx context.Context,
	bloodGroup string,
	quantity decimal.Decimal,
	userID string,
) (*entity.Stock, error) {
	group, ok := entity.ParseBloodGroup(bloodGroup)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	if !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var result *entity.Stock
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		// Bloquea la fila del grupo (SELECT FOR UPDATE)
		current, err := stockRepo.GetForUpdate(group)
		if err != nil {
			return err
		}
		now := time.Now()
		current.Quantity = current.Quantity.Add(quantity)
		current.UpdatedAt = now
		if err := stockRepo.Upsert(current); err != nil {
			return err
		}
		mov := &entity.StockMovement{
			ID:         uuid.New().String(),
			BloodGroup: group,
			Quantity:   quantity,
			Reason:     entity.MovementReasonStockIn,
			CreatedAt:  now,
			CreatedBy:  userID,
		}
		if err := movementRepo.Create(mov); err != nil {
			return err
		}
		result = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// TryDebit intenta restar unidades del saldo de un grupo. Si el saldo es
// insuficiente devuelve ErrInsufficientStock sin mutar nada: es un resultado
// de negocio esperado, no una falla del sistema. Devuelve el saldo resultante.
func (uc *LedgerUseCase) TryDebit(
	ctx context.Context,
	bloodGroup string,
	quantity decimal.Decimal,
	reference, userID string,
) (*entity.Stock, error) {
	group, ok := entity.ParseBloodGroup(bloodGroup)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	if !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var result *entity.Stock
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		updated, err := DebitInTx(stockRepo, movementRepo, group, quantity, reference, userID, time.Now())
		if err != nil {
			return err
		}
		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DebitInTx ejecuta el débito usando repos atados a la transacción del caller
// (el flujo de aprobación de solicitudes descuenta stock dentro de su propia
// transacción, junto con el cambio de estado). Bloquea la fila del grupo,
// verifica saldo suficiente, resta y registra el movimiento.
func DebitInTx(
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
	group entity.BloodGroup,
	quantity decimal.Decimal,
	reference, userID string,
	now time.Time,
) (*entity.Stock, error) {
	current, err := stockRepo.GetForUpdate(group)
	if err != nil {
		return nil, err
	}
	if current.Quantity.LessThan(quantity) {
		return nil, domain.ErrInsufficientStock
	}
	current.Quantity = current.Quantity.Sub(quantity)
	current.UpdatedAt = now
	if err := stockRepo.Upsert(current); err != nil {
		return nil, err
	}
	mov := &entity.StockMovement{
		ID:         uuid.New().String(),
		BloodGroup: group,
		Quantity:   quantity.Neg(),
		Reason:     entity.MovementReasonRequestApproved,
		Reference:  reference,
		CreatedAt:  now,
		CreatedBy:  userID,
	}
	if err := movementRepo.Create(mov); err != nil {
		return nil, err
	}
	return current, nil
}

// GetBalance devuelve el saldo de un grupo; 0 para grupos sin fila.
func (uc *LedgerUseCase) GetBalance(ctx context.Context, bloodGroup string) (*entity.Stock, error) {
	group, ok := entity.ParseBloodGroup(bloodGroup)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	return uc.stockRepo.Get(group)
}

// ListBalances devuelve los saldos de los 8 grupos, completando con 0 los
// grupos que aún no tienen fila (para dashboard y reportes).
func (uc *LedgerUseCase) ListBalances(ctx context.Context) ([]entity.Stock, error) {
	existing, err := uc.stockRepo.List()
	if err != nil {
		return nil, err
	}
	byGroup := make(map[entity.BloodGroup]entity.Stock, len(existing))
	for _, s := range existing {
		byGroup[s.BloodGroup] = s
	}
	out := make([]entity.Stock, 0, len(entity.BloodGroups))
	for _, g := range entity.BloodGroups {
		if s, ok := byGroup[g]; ok {
			out = append(out, s)
		} else {
			out = append(out, entity.Stock{BloodGroup: g, Quantity: decimal.Zero})
		}
	}
	return out, nil
}

// ListMovements devuelve el diario de movimientos, más recientes primero.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, limit, offset int) ([]entity.StockMovement, error) {
	return uc.movementRepo.List(limit, offset)
}
