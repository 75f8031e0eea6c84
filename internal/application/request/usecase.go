// Package request implementa el ciclo de vida de las solicitudes de sangre:
// pending → approved | declined. La aprobación descuenta stock del ledger en
// la misma transacción que el cambio de estado, así que una solicitud
// aprobada siempre tiene su débito correspondiente (y viceversa): si
// cualquiera de los dos pasos falla, la transacción completa se revierte.
package request

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/hemocentro-api/internal/application/dto"
	"github.com/jhoicas/hemocentro-api/internal/application/stock"
	"github.com/jhoicas/hemocentro-api/internal/domain"
	"github.com/jhoicas/hemocentro-api/internal/domain/entity"
	"github.com/jhoicas/hemocentro-api/internal/domain/repository"
)

// WorkflowUseCase casos de uso del flujo de solicitudes.
type WorkflowUseCase struct {
	txRunner    TxRunner
	requestRepo repository.RequestRepository // lecturas y submit fuera de tx
	policy      InsufficientStockPolicy
}

// NewWorkflowUseCase construye el caso de uso con la política indicada.
func NewWorkflowUseCase(
	txRunner TxRunner,
	requestRepo repository.RequestRepository,
	policy InsufficientStockPolicy,
) *WorkflowUseCase {
	return &WorkflowUseCase{txRunner: txRunner, requestRepo: requestRepo, policy: policy}
}

// Submit crea una solicitud en estado pending. No verifica stock: la
// verificación se difiere deliberadamente al momento de la aprobación.
func (uc *WorkflowUseCase) Submit(
	ctx context.Context,
	requesterID, bloodGroup string,
	quantity int,
) (*entity.DonationRequest, error) {
	group, ok := entity.ParseBloodGroup(bloodGroup)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	if quantity < 1 {
		return nil, domain.ErrInvalidInput
	}
	req := &entity.DonationRequest{
		ID:          uuid.New().String(),
		RequesterID: requesterID,
		BloodGroup:  group,
		Quantity:    quantity,
		Status:      entity.RequestStatusPending,
		CreatedAt:   time.Now(),
	}
	if err := uc.requestRepo.Create(req); err != nil {
		return nil, err
	}
	return req, nil
}

// Approve decide una solicitud pendiente contra el stock disponible.
//
// En una sola transacción: bloquea la fila de la solicitud, valida que siga
// pendiente, bloquea la fila del saldo y aplica el débito. Con saldo
// insuficiente el resultado depende de la política: AutoDecline pasa la
// solicitud a declined (saldo intacto); LeavePending revierte y devuelve
// ErrInsufficientStock dejando la solicitud pendiente.
//
// Orden de bloqueo fijo (solicitud, luego stock) para evitar deadlocks entre
// aprobaciones concurrentes.
func (uc *WorkflowUseCase) Approve(ctx context.Context, requestID, deciderID string) (*dto.DecisionResponse, error) {
	var out dto.DecisionResponse
	err := uc.txRunner.RunDecision(ctx, func(
		requestRepo repository.RequestRepository,
		stockRepo repository.StockRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		req, err := requestRepo.GetForUpdate(requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.IsDecided() {
			return domain.ErrAlreadyDecided
		}

		now := time.Now()
		qty := decimal.NewFromInt(int64(req.Quantity))
		updated, err := stock.DebitInTx(stockRepo, movementRepo, req.BloodGroup, qty, req.ID, deciderID, now)
		if err == domain.ErrInsufficientStock {
			if uc.policy == LeavePending {
				return domain.ErrInsufficientStock
			}
			// AutoDecline: la solicitud se rechaza en el mismo intento.
			if err := requestRepo.UpdateStatus(req.ID, entity.RequestStatusDeclined, now); err != nil {
				return err
			}
			current, err := stockRepo.Get(req.BloodGroup)
			if err != nil {
				return err
			}
			out = dto.DecisionResponse{ID: req.ID, Status: entity.RequestStatusDeclined, Balance: current.Quantity}
			return nil
		}
		if err != nil {
			return err
		}

		if err := requestRepo.UpdateStatus(req.ID, entity.RequestStatusApproved, now); err != nil {
			return err
		}
		out = dto.DecisionResponse{ID: req.ID, Status: entity.RequestStatusApproved, Balance: updated.Quantity}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Decline rechaza una solicitud pendiente sin tocar el stock.
func (uc *WorkflowUseCase) Decline(ctx context.Context, requestID string) (*dto.DecisionResponse, error) {
	var out dto.DecisionResponse
	err := uc.txRunner.RunDecision(ctx, func(
		requestRepo repository.RequestRepository,
		stockRepo repository.StockRepository,
		_ repository.StockMovementRepository,
	) error {
		req, err := requestRepo.GetForUpdate(requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.IsDecided() {
			return domain.ErrAlreadyDecided
		}
		if err := requestRepo.UpdateStatus(req.ID, entity.RequestStatusDeclined, time.Now()); err != nil {
			return err
		}
		current, err := stockRepo.Get(req.BloodGroup)
		if err != nil {
			return err
		}
		out = dto.DecisionResponse{ID: req.ID, Status: entity.RequestStatusDeclined, Balance: current.Quantity}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Get devuelve una solicitud por ID.
func (uc *WorkflowUseCase) Get(ctx context.Context, requestID string) (*entity.DonationRequest, error) {
	req, err := uc.requestRepo.GetByID(requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	return req, nil
}

// List devuelve solicitudes filtradas por estado (vacío = todas).
func (uc *WorkflowUseCase) List(ctx context.Context, status string, limit, offset int) ([]entity.DonationRequest, error) {
	switch status {
	case "", entity.RequestStatusPending, entity.RequestStatusApproved, entity.RequestStatusDeclined:
	default:
		return nil, domain.ErrInvalidInput
	}
	return uc.requestRepo.List(status, limit, offset)
}

// ListByRequester devuelve las solicitudes de un usuario.
func (uc *WorkflowUseCase) ListByRequester(ctx context.Context, requesterID string) ([]entity.DonationRequest, error) {
	return uc.requestRepo.ListByRequester(requesterID)
}

// CountByStatus devuelve el conteo de solicitudes por estado (dashboard).
func (uc *WorkflowUseCase) CountByStatus(ctx context.Context) (map[string]int, error) {
	return uc.requestRepo.CountByStatus()
}
