package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hemocentro-api/internal/application/donor"
	"github.com/jhoicas/hemocentro-api/internal/application/dto"
	"github.com/jhoicas/hemocentro-api/internal/domain"
)

// DonorHandler maneja el CRUD de donantes (protegido, admin).
type DonorHandler struct {
	uc *donor.DonorUseCase
}

// NewDonorHandler construye el handler.
func NewDonorHandler(uc *donor.DonorUseCase) *DonorHandler {
	return &DonorHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar donante
// @Tags         donors
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDonorRequest  true  "datos del donante"
// @Success      201   {object}  dto.DonorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/donors [post]
func (h *DonorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDonorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	d, err := h.uc.Create(in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos del donante inválidos"})
		}
		if err == domain.ErrNotEligible {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NOT_ELIGIBLE", Message: "el donante debe tener al menos 18 años"})
		}
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un donante con ese teléfono"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(d)
}

// GetByID godoc
// @Summary      Detalle de un donante
// @Tags         donors
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del donante"
// @Success      200  {object}  dto.DonorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/donors/{id} [get]
func (h *DonorHandler) GetByID(c *fiber.Ctx) error {
	d, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "donante no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(d)
}

// Update godoc
// @Summary      Actualizar datos de contacto/estado de un donante
// @Tags         donors
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del donante"
// @Param        body  body  dto.UpdateDonorRequest  true  "campos a modificar"
// @Success      200   {object}  dto.DonorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/donors/{id} [put]
func (h *DonorHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateDonorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	d, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "donante no encontrado"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos del donante inválidos"})
		}
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un donante con ese teléfono"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(d)
}

// Delete godoc
// @Summary      Eliminar donante
// @Tags         donors
// @Security     Bearer
// @Param        id  path  string  true  "ID del donante"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/donors/{id} [delete]
func (h *DonorHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "donante no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar donantes (filtros por grupo sanguíneo y ciudad)
// @Tags         donors
// @Security     Bearer
// @Produce      json
// @Param        blood_type  query  string  false  "grupo sanguíneo"
// @Param        city        query  string  false  "ciudad (sin distinguir mayúsculas ni acentos)"
// @Success      200  {array}  dto.DonorResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/donors [get]
func (h *DonorHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	donors, err := h.uc.List(c.Query("blood_type"), c.Query("city"), page)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "grupo sanguíneo inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(donors)
}
