package request_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/hemocentro-api/internal/application/request"
	"github.com/jhoicas/hemocentro-api/internal/domain"
	"github.com/jhoicas/hemocentro-api/internal/domain/entity"
	"github.com/jhoicas/hemocentro-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// fakeStore emula el comportamiento transaccional de Postgres: RunDecision
// serializa las transacciones con un mutex (equivalente al bloqueo de fila)
// y restaura un snapshot si fn devuelve error (rollback). Así las propiedades
// de concurrencia del flujo real (decisión exactamente una vez, saldo nunca
// negativo) son verificables sin base de datos.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	mu        sync.Mutex
	requests  map[string]entity.DonationRequest
	balances  map[entity.BloodGroup]entity.Stock
	movements []entity.StockMovement
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		requests: make(map[string]entity.DonationRequest),
		balances: make(map[entity.BloodGroup]entity.Stock),
	}
}

func (s *fakeStore) setBalance(group entity.BloodGroup, qty int64) {
	s.balances[group] = entity.Stock{BloodGroup: group, Quantity: decimal.NewFromInt(qty)}
}

type fakeRequestRepo struct{ store *fakeStore }

func (r *fakeRequestRepo) Create(req *entity.DonationRequest) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.requests[req.ID] = *req
	return nil
}

func (r *fakeRequestRepo) GetByID(id string) (*entity.DonationRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.get(id), nil
}

// get lee sin lock; los callers dentro de tx ya serializan con el mutex.
func (r *fakeRequestRepo) get(id string) *entity.DonationRequest {
	if req, ok := r.store.requests[id]; ok {
		cp := req
		return &cp
	}
	return nil
}

func (r *fakeRequestRepo) GetForUpdate(id string) (*entity.DonationRequest, error) {
	return r.get(id), nil
}

func (r *fakeRequestRepo) UpdateStatus(id, status string, decidedAt time.Time) error {
	req, ok := r.store.requests[id]
	if !ok {
		return domain.ErrNotFound
	}
	req.Status = status
	req.DecidedAt = &decidedAt
	r.store.requests[id] = req
	return nil
}

func (r *fakeRequestRepo) List(status string, limit, offset int) ([]entity.DonationRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.DonationRequest
	for _, req := range r.store.requests {
		if status == "" || req.Status == status {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) ListByRequester(requesterID string) ([]entity.DonationRequest, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.DonationRequest
	for _, req := range r.store.requests {
		if req.RequesterID == requesterID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) CountByStatus() (map[string]int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make(map[string]int)
	for _, req := range r.store.requests {
		out[req.Status]++
	}
	return out, nil
}

type fakeStockRepo struct{ store *fakeStore }

func (r *fakeStockRepo) Get(group entity.BloodGroup) (*entity.Stock, error) {
	if s, ok := r.store.balances[group]; ok {
		cp := s
		return &cp, nil
	}
	return &entity.Stock{BloodGroup: group, Quantity: decimal.Zero}, nil
}

func (r *fakeStockRepo) GetForUpdate(group entity.BloodGroup) (*entity.Stock, error) {
	return r.Get(group)
}

func (r *fakeStockRepo) Upsert(s *entity.Stock) error {
	r.store.balances[s.BloodGroup] = *s
	return nil
}

func (r *fakeStockRepo) List() ([]entity.Stock, error) {
	out := make([]entity.Stock, 0, len(r.store.balances))
	for _, s := range r.store.balances {
		out = append(out, s)
	}
	return out, nil
}

type fakeMovementRepo struct{ store *fakeStore }

func (r *fakeMovementRepo) Create(m *entity.StockMovement) error {
	r.store.movements = append(r.store.movements, *m)
	return nil
}

func (r *fakeMovementRepo) List(limit, offset int) ([]entity.StockMovement, error) {
	return r.store.movements, nil
}

type fakeDecisionRunner struct{ store *fakeStore }

func (tr *fakeDecisionRunner) RunDecision(ctx context.Context, fn func(
	requestRepo repository.RequestRepository,
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	tr.store.mu.Lock()
	defer tr.store.mu.Unlock()

	// Snapshot para revertir si fn falla
	snapRequests := make(map[string]entity.DonationRequest, len(tr.store.requests))
	for k, v := range tr.store.requests {
		snapRequests[k] = v
	}
	snapBalances := make(map[entity.BloodGroup]entity.Stock, len(tr.store.balances))
	for k, v := range tr.store.balances {
		snapBalances[k] = v
	}
	snapMovs := len(tr.store.movements)

	err := fn(
		&txRequestRepo{store: tr.store},
		&fakeStockRepo{store: tr.store},
		&fakeMovementRepo{store: tr.store},
	)
	if err != nil {
		tr.store.requests = snapRequests
		tr.store.balances = snapBalances
		tr.store.movements = tr.store.movements[:snapMovs]
	}
	return err
}

// txRequestRepo variante sin lock para usar dentro de RunDecision (el mutex
// ya está tomado por el runner; re-lockear provocaría deadlock).
type txRequestRepo struct{ store *fakeStore }

func (r *txRequestRepo) Create(req *entity.DonationRequest) error {
	r.store.requests[req.ID] = *req
	return nil
}

func (r *txRequestRepo) GetByID(id string) (*entity.DonationRequest, error) {
	return (&fakeRequestRepo{store: r.store}).get(id), nil
}

func (r *txRequestRepo) GetForUpdate(id string) (*entity.DonationRequest, error) {
	return (&fakeRequestRepo{store: r.store}).get(id), nil
}

func (r *txRequestRepo) UpdateStatus(id, status string, decidedAt time.Time) error {
	return (&fakeRequestRepo{store: r.store}).UpdateStatus(id, status, decidedAt)
}

func (r *txRequestRepo) List(status string, limit, offset int) ([]entity.DonationRequest, error) {
	var out []entity.DonationRequest
	for _, req := range r.store.requests {
		if status == "" || req.Status == status {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *txRequestRepo) ListByRequester(requesterID string) ([]entity.DonationRequest, error) {
	var out []entity.DonationRequest
	for _, req := range r.store.requests {
		if req.RequesterID == requesterID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *txRequestRepo) CountByStatus() (map[string]int, error) {
	out := make(map[string]int)
	for _, req := range r.store.requests {
		out[req.Status]++
	}
	return out, nil
}

func newWorkflow(policy request.InsufficientStockPolicy) (*request.WorkflowUseCase, *fakeStore) {
	store := newFakeStore()
	uc := request.NewWorkflowUseCase(
		&fakeDecisionRunner{store: store},
		&fakeRequestRepo{store: store},
		policy,
	)
	return uc, store
}

// submitPending crea una solicitud pendiente y devuelve su ID.
func submitPending(t *testing.T, uc *request.WorkflowUseCase, group string, qty int) string {
	t.Helper()
	req, err := uc.Submit(context.Background(), "user-1", group, qty)
	require.NoError(t, err)
	require.Equal(t, entity.RequestStatusPending, req.Status)
	return req.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Submit
// ──────────────────────────────────────────────────────────────────────────────

func TestSubmit_CreaSolicitudPendiente(t *testing.T) {
	uc, store := newWorkflow(request.AutoDecline)

	req, err := uc.Submit(context.Background(), "user-1", "O+", 3)
	require.NoError(t, err)

	assert.NotEmpty(t, req.ID)
	assert.Equal(t, entity.RequestStatusPending, req.Status)
	assert.Nil(t, req.DecidedAt)

	saved := store.requests[req.ID]
	assert.Equal(t, "user-1", saved.RequesterID)
	assert.Equal(t, entity.BloodOPos, saved.BloodGroup)
	assert.Equal(t, 3, saved.Quantity)
}

// Submit no verifica stock: se puede solicitar más de lo disponible.
func TestSubmit_NoVerificaStock(t *testing.T) {
	uc, _ := newWorkflow(request.AutoDecline)
	req, err := uc.Submit(context.Background(), "user-1", "AB-", 999)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusPending, req.Status)
}

func TestSubmit_GrupoInvalido(t *testing.T) {
	uc, _ := newWorkflow(request.AutoDecline)
	_, err := uc.Submit(context.Background(), "user-1", "X+", 1)
	assert.Equal(t, domain.ErrInvalidInput, err)
}

func TestSubmit_CantidadInvalida(t *testing.T) {
	uc, _ := newWorkflow(request.AutoDecline)
	_, err := uc.Submit(context.Background(), "user-1", "O+", 0)
	assert.Equal(t, domain.ErrInvalidInput, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Approve
// ──────────────────────────────────────────────────────────────────────────────

func TestApprove_DescuentaStockYApruebaAtomicamente(t *testing.T) {
	uc, store := newWorkflow(request.AutoDecline)
	ctx := context.Background()

	store.setBalance(entity.BloodOPos, 5)
	id := submitPending(t, uc, "O+", 3)

	out, err := uc.Approve(ctx, id, "admin-1")
	require.NoError(t, err)

	assert.Equal(t, entity.RequestStatusApproved, out.Status)
	assert.True(t, out.Balance.Equal(decimal.NewFromInt(2)),
		"saldo 5 menos solicitud de 3 debe dejar 2, obtuvo %s", out.Balance)

	saved := store.requests[id]
	assert.Equal(t, entity.RequestStatusApproved, saved.Status)
	require.NotNil(t, saved.DecidedAt)

	// El débito queda en el diario referenciando la solicitud
	require.Len(t, store.movements, 1)
	assert.True(t, store.movements[0].Quantity.Equal(decimal.NewFromInt(-3)))
	assert.Equal(t, id, store.movements[0].Reference)
	assert.Equal(t, "admin-1", store.movements[0].CreatedBy)
}

func TestApprove_SolicitudInexistente(t *testing.T) {
	uc, _ := newWorkflow(request.AutoDecline)
	_, err := uc.Approve(context.Background(), "no-existe", "admin-1")
	assert.Equal(t, domain.ErrNotFound, err)
}

func TestApprove_SolicitudYaDecidida(t *testing.T) {
	uc, store := newWorkflow(request.AutoDecline)
	ctx := context.Background()

	store.setBalance(entity.BloodAPos, 10)
	id := submitPending(t, uc, "A+", 2)

	_, err := uc.Approve(ctx, id, "admin-1")
	require.NoError(t, err)

	// Segundo intento sobre la misma solicitud: el estado es terminal
	_, err = uc.Approve(ctx, id, "admin-2")
	assert.Equal(t, domain.ErrAlreadyDecided, err)

	// El saldo solo se descontó una vez
	s, _ := (&fakeStockRepo{store: store}).Get(entity.BloodAPos)
	assert.True(t, s.Quantity.Equal(decimal.NewFromInt(8)))
}

// Política AutoDecline: saldo insuficiente rechaza la solicitud en el mismo
// intento, sin tocar el saldo.
func TestApprove_AutoDecline_SaldoInsuficiente(t *testing.T) {
	uc, store := newWorkflow(request.AutoDecline)
	ctx := context.Background()

	store.setBalance(entity.BloodBNeg, 2)
	id := submitPending(t, uc, "B-", 5)

	out, err := uc.Approve(ctx, id, "admin-1")
	require.NoError(t, err, "con AutoDecline el saldo insuficiente no es error")

	assert.Equal(t, entity.RequestStatusDeclined, out.Status)
	assert.True(t, out.Balance.Equal(decimal.NewFromInt(2)), "el saldo queda intacto")

	saved := store.requests[id]
	assert.Equal(t, entity.RequestStatusDeclined, saved.Status)
	require.NotNil(t, saved.DecidedAt)
	assert.Empty(t, store.movements, "un rechazo no genera movimientos de stock")
}

// Política LeavePending: saldo insuficiente devuelve error y la solicitud
// sigue pendiente (se puede reintentar tras reponer stock).
func TestApprove_LeavePending_SaldoInsuficiente(t *testing.T) {
	uc, store := newWorkflow(request.LeavePending)
	ctx := context.Background()

	store.setBalance(entity.BloodBNeg, 2)
	id := submitPending(t, uc, "B-", 5)

	_, err := uc.Approve(ctx, id, "admin-1")
	assert.Equal(t, domain.ErrInsufficientStock, err)

	saved := store.requests[id]
	assert.Equal(t, entity.RequestStatusPending, saved.Status,
		"con LeavePending la solicitud debe seguir pendiente")
	assert.Nil(t, saved.DecidedAt)

	// Tras reponer stock, el reintento procede
	store.mu.Lock()
	store.setBalance(entity.BloodBNeg, 6)
	store.mu.Unlock()

	out, err := uc.Approve(ctx, id, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusApproved, out.Status)
	assert.True(t, out.Balance.Equal(decimal.NewFromInt(1)))
}

// Escenario completo: saldo O+ 5; solicitud de 3 se aprueba (saldo 2);
// solicitud de 4 ya no cabe y se rechaza (saldo sigue 2).
func TestApprove_EscenarioSaldoCincoTresYCuatro(t *testing.T) {
	uc, store := newWorkflow(request.AutoDecline)
	ctx := context.Background()

	store.setBalance(entity.BloodOPos, 5)
	idA := submitPending(t, uc, "O+", 3)
	idB := submitPending(t, uc, "O+", 4)

	outA, err := uc.Approve(ctx, idA, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusApproved, outA.Status)
	assert.True(t, outA.Balance.Equal(decimal.NewFromInt(2)))

	outB, err := uc.Approve(ctx, idB, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusDeclined, outB.Status)
	assert.True(t, outB.Balance.Equal(decimal.NewFromInt(2)),
		"el rechazo no debe tocar el saldo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Decline
// ──────────────────────────────────────────────────────────────────────────────

func TestDecline_RechazaSinTocarStock(t *testing.T) {
	uc, store := newWorkflow(request.AutoDecline)
	ctx := context.Background()

	store.setBalance(entity.BloodONeg, 9)
	id := submitPending(t, uc, "O-", 2)

	out, err := uc.Decline(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.RequestStatusDeclined, out.Status)
	assert.True(t, out.Balance.Equal(decimal.NewFromInt(9)))
	assert.Empty(t, store.movements)
}

// Una solicitud rechazada no puede aprobarse después.
func TestDecline_LuegoApprove_YaDecidida(t *testing.T) {
	uc, store := newWorkflow(request.AutoDecline)
	ctx := context.Background()

	store.setBalance(entity.BloodOPos, 10)
	id := submitPending(t, uc, "O+", 1)

	_, err := uc.Decline(ctx, id)
	require.NoError(t, err)

	_, err = uc.Approve(ctx, id, "admin-1")
	assert.Equal(t, domain.ErrAlreadyDecided, err)
}

func TestDecline_SolicitudInexistente(t *testing.T) {
	uc, _ := newWorkflow(request.AutoDecline)
	_, err := uc.Decline(context.Background(), "no-existe")
	assert.Equal(t, domain.ErrNotFound, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestList_EstadoInvalido(t *testing.T) {
	uc, _ := newWorkflow(request.AutoDecline)
	_, err := uc.List(context.Background(), "cancelado", 20, 0)
	assert.Equal(t, domain.ErrInvalidInput, err)
}

func TestGet_Inexistente(t *testing.T) {
	uc, _ := newWorkflow(request.AutoDecline)
	_, err := uc.Get(context.Background(), "no-existe")
	assert.Equal(t, domain.ErrNotFound, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

// K aprobaciones concurrentes sobre solicitudes distintas del mismo grupo:
// se aprueban exactamente las que caben en el saldo y el saldo final nunca
// es negativo.
func TestApprove_ConcurrenteSolicitudesDistintas(t *testing.T) {
	uc, store := newWorkflow(request.AutoDecline)
	ctx := context.Background()

	const balance = 10
	const workers = 20 // el doble de lo que cabe

	store.setBalance(entity.BloodOPos, balance)

	ids := make([]string, workers)
	for i := range ids {
		ids[i] = submitPending(t, uc, "O+", 1)
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for _, id := range ids {
		go func(id string) {
			defer wg.Done()
			_, err := uc.Approve(ctx, id, "admin-1")
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	counts, err := uc.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, balance, counts[entity.RequestStatusApproved],
		"deben aprobarse exactamente las solicitudes que caben en el saldo")
	assert.Equal(t, workers-balance, counts[entity.RequestStatusDeclined])

	s, _ := (&fakeStockRepo{store: store}).Get(entity.BloodOPos)
	assert.True(t, s.Quantity.IsZero(), "el saldo final debe ser 0, obtuvo %s", s.Quantity)
	assert.False(t, s.Quantity.IsNegative(), "el saldo nunca puede ser negativo")
}

// Aprobaciones concurrentes sobre la MISMA solicitud: exactamente una gana;
// el resto recibe ErrAlreadyDecided y el débito ocurre una sola vez.
func TestApprove_ConcurrenteMismaSolicitud(t *testing.T) {
	uc, store := newWorkflow(request.AutoDecline)
	ctx := context.Background()

	store.setBalance(entity.BloodAPos, 100)
	id := submitPending(t, uc, "A+", 5)

	const workers = 10
	var wg sync.WaitGroup
	var mu sync.Mutex
	okCount, decidedCount := 0, 0

	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := uc.Approve(ctx, id, "admin-1")
			mu.Lock()
			defer mu.Unlock()
			switch err {
			case nil:
				okCount++
			case domain.ErrAlreadyDecided:
				decidedCount++
			default:
				t.Errorf("error inesperado: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, okCount, "exactamente una aprobación debe ganar")
	assert.Equal(t, workers-1, decidedCount)

	s, _ := (&fakeStockRepo{store: store}).Get(entity.BloodAPos)
	assert.True(t, s.Quantity.Equal(decimal.NewFromInt(95)),
		"el débito debe aplicarse una sola vez")
	assert.Len(t, store.movements, 1)
}
