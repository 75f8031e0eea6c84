// Package analytics contiene el caso de uso del panel administrativo:
// saldos por grupo sanguíneo y conteo de solicitudes por estado.
package analytics

import (
	"context"

	"github.com/jhoicas/hemocentro-api/internal/application/dto"
	"github.com/jhoicas/hemocentro-api/internal/application/request"
	"github.com/jhoicas/hemocentro-api/internal/application/stock"
	"github.com/jhoicas/hemocentro-api/internal/domain/entity"
)

// DashboardUseCase arma el resumen del panel. Solo lecturas: delega en los
// casos de uso de stock y solicitudes, no accede a tablas directamente.
type DashboardUseCase struct {
	ledger   *stock.LedgerUseCase
	workflow *request.WorkflowUseCase
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(ledger *stock.LedgerUseCase, workflow *request.WorkflowUseCase) *DashboardUseCase {
	return &DashboardUseCase{ledger: ledger, workflow: workflow}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Dos consultas en paralelo:
//  1. ListBalances → saldos de los 8 grupos (zero-fill incluido)
//  2. CountByStatus → solicitudes pending/approved/declined
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type balancesResult struct {
		balances []entity.Stock
		err      error
	}
	type countsResult struct {
		counts map[string]int
		err    error
	}

	balancesCh := make(chan balancesResult, 1)
	countsCh := make(chan countsResult, 1)

	go func() {
		b, err := uc.ledger.ListBalances(ctx)
		balancesCh <- balancesResult{balances: b, err: err}
	}()
	go func() {
		c, err := uc.workflow.CountByStatus(ctx)
		countsCh <- countsResult{counts: c, err: err}
	}()

	bRes := <-balancesCh
	if bRes.err != nil {
		return nil, bRes.err
	}
	cRes := <-countsCh
	if cRes.err != nil {
		return nil, cRes.err
	}

	summary := &dto.DashboardSummaryDTO{
		Stock: make([]dto.StockBalanceResponse, 0, len(bRes.balances)),
		Requests: dto.RequestCountsDTO{
			Pending:  cRes.counts[entity.RequestStatusPending],
			Approved: cRes.counts[entity.RequestStatusApproved],
			Declined: cRes.counts[entity.RequestStatusDeclined],
		},
	}
	for _, s := range bRes.balances {
		b := s
		resp := dto.StockBalanceResponse{BloodGroup: b.BloodGroup.String(), Quantity: b.Quantity}
		if !b.UpdatedAt.IsZero() {
			t := b.UpdatedAt
			resp.UpdatedAt = &t
		}
		summary.Stock = append(summary.Stock, resp)
	}
	return summary, nil
}
