package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/hemocentro-api/internal/domain/entity"
	"github.com/jhoicas/hemocentro-api/internal/domain/repository"
)

var _ repository.RequestRepository = (*RequestRepo)(nil)

// RequestRepo implementación de RequestRepository sobre PostgreSQL (usable con pool o tx).
type RequestRepo struct {
	q Querier
}

// NewRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRequestRepository(q Querier) *RequestRepo {
	return &RequestRepo{q: q}
}

const requestColumns = `id, requester_id, blood_group, quantity, status, created_at, decided_at`

// Create persiste una solicitud nueva (estado pending).
func (r *RequestRepo) Create(request *entity.DonationRequest) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	query := `
		INSERT INTO donation_requests (id, requester_id, blood_group, quantity, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		request.ID, request.RequesterID, request.BloodGroup.String(),
		request.Quantity, request.Status, request.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert donation request: %w", err)
	}
	return nil
}

func (r *RequestRepo) scanOne(row pgx.Row) (*entity.DonationRequest, error) {
	var req entity.DonationRequest
	err := row.Scan(&req.ID, &req.RequesterID, &req.BloodGroup, &req.Quantity,
		&req.Status, &req.CreatedAt, &req.DecidedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &req, nil
}

// GetByID devuelve nil, nil si la solicitud no existe.
func (r *RequestRepo) GetByID(id string) (*entity.DonationRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM donation_requests WHERE id = $1`
	req, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get donation request: %w", err)
	}
	return req, nil
}

// GetForUpdate bloquea la fila de la solicitud (SELECT FOR UPDATE) para que
// la transición pending→terminal ocurra exactamente una vez bajo concurrencia.
func (r *RequestRepo) GetForUpdate(id string) (*entity.DonationRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM donation_requests WHERE id = $1 FOR UPDATE`
	req, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get donation request for update: %w", err)
	}
	return req, nil
}

// UpdateStatus aplica la transición de estado y fija decided_at.
func (r *RequestRepo) UpdateStatus(id, status string, decidedAt time.Time) error {
	query := `
		UPDATE donation_requests
		SET status = $2, decided_at = $3
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status, decidedAt)
	if err != nil {
		return fmt.Errorf("update donation request status: %w", err)
	}
	return nil
}

// List devuelve solicitudes filtradas por estado (vacío = todas), más recientes primero.
func (r *RequestRepo) List(status string, limit, offset int) ([]entity.DonationRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM donation_requests
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list donation requests: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListByRequester devuelve las solicitudes de un usuario, más recientes primero.
func (r *RequestRepo) ListByRequester(requesterID string) ([]entity.DonationRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM donation_requests
		WHERE requester_id = $1
		ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, requesterID)
	if err != nil {
		return nil, fmt.Errorf("list donation requests by requester: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *RequestRepo) scanMany(rows pgx.Rows) ([]entity.DonationRequest, error) {
	var out []entity.DonationRequest
	for rows.Next() {
		var req entity.DonationRequest
		if err := rows.Scan(&req.ID, &req.RequesterID, &req.BloodGroup, &req.Quantity,
			&req.Status, &req.CreatedAt, &req.DecidedAt); err != nil {
			return nil, fmt.Errorf("scan donation request: %w", err)
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

// CountByStatus devuelve el conteo de solicitudes por estado.
func (r *RequestRepo) CountByStatus() (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM donation_requests GROUP BY status`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("count donation requests: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan request count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
