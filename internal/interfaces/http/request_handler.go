package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hemocentro-api/internal/application/dto"
	"github.com/jhoicas/hemocentro-api/internal/application/request"
	"github.com/jhoicas/hemocentro-api/internal/domain"
	"github.com/jhoicas/hemocentro-api/internal/domain/entity"
)

// RequestHandler maneja las peticiones HTTP de solicitudes de sangre.
type RequestHandler struct {
	workflow *request.WorkflowUseCase
}

// NewRequestHandler construye el handler.
func NewRequestHandler(workflow *request.WorkflowUseCase) *RequestHandler {
	return &RequestHandler{workflow: workflow}
}

// Submit godoc
// @Summary      Crear solicitud de sangre (queda pendiente)
// @Tags         requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitRequestRequest  true  "blood_group, quantity"
// @Success      201   {object}  dto.RequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/requests [post]
func (h *RequestHandler) Submit(c *fiber.Ctx) error {
	requesterID := GetUserID(c)
	if requesterID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.SubmitRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req, err := h.workflow.Submit(c.Context(), requesterID, in.BloodGroup, in.Quantity)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "grupo sanguíneo o cantidad inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toRequestResponse(req))
}

// Approve godoc
// @Summary      Aprobar una solicitud pendiente contra el stock disponible
// @Description  Con stock suficiente la solicitud pasa a approved y se descuenta
//               el saldo; sin stock suficiente la solicitud se rechaza en el
//               mismo intento (status declined) y el saldo queda intacto.
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.DecisionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/approve [put]
func (h *RequestHandler) Approve(c *fiber.Ctx) error {
	out, err := h.workflow.Approve(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return decisionError(c, err)
	}
	return c.JSON(out)
}

// Decline godoc
// @Summary      Rechazar una solicitud pendiente (no toca el stock)
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.DecisionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/requests/{id}/decline [put]
func (h *RequestHandler) Decline(c *fiber.Ctx) error {
	out, err := h.workflow.Decline(c.Context(), c.Params("id"))
	if err != nil {
		return decisionError(c, err)
	}
	return c.JSON(out)
}

// decisionError mapea los errores de aprobación/rechazo a códigos HTTP.
func decisionError(c *fiber.Ctx, err error) error {
	if err == domain.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "solicitud no encontrada"})
	}
	if err == domain.ErrAlreadyDecided {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_DECIDED", Message: "la solicitud ya fue decidida"})
	}
	if err == domain.ErrInsufficientStock {
		// Solo con la política LeavePending: la solicitud sigue pendiente.
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock de sangre insuficiente"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// List godoc
// @Summary      Listar solicitudes (admin), filtro opcional por estado
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending | approved | declined"
// @Success      200  {array}  dto.RequestResponse
// @Router       /api/requests [get]
func (h *RequestHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	requests, err := h.workflow.List(c.Context(), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "estado inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toRequestResponses(requests))
}

// GetByID godoc
// @Summary      Detalle de una solicitud (admin)
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.RequestResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/requests/{id} [get]
func (h *RequestHandler) GetByID(c *fiber.Ctx) error {
	r, err := h.workflow.Get(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "solicitud no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toRequestResponse(r))
}

// ListMine godoc
// @Summary      Listar las solicitudes del usuario autenticado
// @Tags         requests
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RequestResponse
// @Router       /api/requests/mine [get]
func (h *RequestHandler) ListMine(c *fiber.Ctx) error {
	requesterID := GetUserID(c)
	if requesterID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	requests, err := h.workflow.ListByRequester(c.Context(), requesterID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toRequestResponses(requests))
}

func toRequestResponse(r *entity.DonationRequest) *dto.RequestResponse {
	return &dto.RequestResponse{
		ID:          r.ID,
		RequesterID: r.RequesterID,
		BloodGroup:  r.BloodGroup.String(),
		Quantity:    r.Quantity,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		DecidedAt:   r.DecidedAt,
	}
}

func toRequestResponses(requests []entity.DonationRequest) []dto.RequestResponse {
	out := make([]dto.RequestResponse, 0, len(requests))
	for i := range requests {
		out = append(out, *toRequestResponse(&requests[i]))
	}
	return out
}
