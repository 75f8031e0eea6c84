package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hemocentro-api/internal/application/dto"
	"github.com/jhoicas/hemocentro-api/internal/application/stock"
	"github.com/jhoicas/hemocentro-api/internal/domain"
	"github.com/jhoicas/hemocentro-api/internal/domain/entity"
)

// ReportGenerator puerto del generador de PDF (implementado en infrastructure/pdf).
type ReportGenerator interface {
	GenerateStockReport(ctx context.Context, appName string, balances []entity.Stock, generatedAt time.Time) ([]byte, error)
}

// StockHandler maneja las peticiones HTTP del ledger de stock (protegido, admin).
type StockHandler struct {
	ledger    *stock.LedgerUseCase
	reportGen ReportGenerator
	appName   string
}

// NewStockHandler construye el handler.
func NewStockHandler(ledger *stock.LedgerUseCase, reportGen ReportGenerator, appName string) *StockHandler {
	return &StockHandler{ledger: ledger, reportGen: reportGen, appName: appName}
}

// Credit godoc
// @Summary      Ingresar unidades de sangre al stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreditStockRequest  true  "blood_group, quantity"
// @Success      201   {object}  dto.StockBalanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock [post]
func (h *StockHandler) Credit(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.CreditStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	updated, err := h.ledger.Credit(c.Context(), in.BloodGroup, in.Quantity, userID)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "grupo sanguíneo o cantidad inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toBalanceResponse(updated))
}

// ListBalances godoc
// @Summary      Saldos de los 8 grupos sanguíneos
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockBalanceResponse
// @Router       /api/stock [get]
func (h *StockHandler) ListBalances(c *fiber.Ctx) error {
	balances, err := h.ledger.ListBalances(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.StockBalanceResponse, 0, len(balances))
	for i := range balances {
		out = append(out, *toBalanceResponse(&balances[i]))
	}
	return c.JSON(out)
}

// GetBalance godoc
// @Summary      Saldo de un grupo sanguíneo (0 si no hay registros)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        group  path  string  true  "grupo sanguíneo (A+, O-, ...)"
// @Success      200  {object}  dto.StockBalanceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/{group} [get]
func (h *StockHandler) GetBalance(c *fiber.Ctx) error {
	balance, err := h.ledger.GetBalance(c.Context(), c.Params("group"))
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "grupo sanguíneo inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toBalanceResponse(balance))
}

// ListMovements godoc
// @Summary      Diario de movimientos de stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockMovementResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	movements, err := h.ledger.ListMovements(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.StockMovementResponse{
			ID:         m.ID,
			BloodGroup: m.BloodGroup.String(),
			Quantity:   m.Quantity,
			Reason:     m.Reason,
			Reference:  m.Reference,
			CreatedAt:  m.CreatedAt,
			CreatedBy:  m.CreatedBy,
		})
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte de stock en PDF
// @Tags         stock
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Router       /api/stock/report [get]
func (h *StockHandler) Report(c *fiber.Ctx) error {
	balances, err := h.ledger.ListBalances(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	pdfBytes, err := h.reportGen.GenerateStockReport(c.Context(), h.appName, balances, time.Now())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="stock-report.pdf"`)
	return c.Send(pdfBytes)
}

func toBalanceResponse(s *entity.Stock) *dto.StockBalanceResponse {
	resp := &dto.StockBalanceResponse{
		BloodGroup: s.BloodGroup.String(),
		Quantity:   s.Quantity,
	}
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		resp.UpdatedAt = &t
	}
	return resp
}
