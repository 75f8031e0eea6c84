package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrPhoneAlreadyExists = errors.New("el teléfono ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrAlreadyDecided     = errors.New("la solicitud ya fue decidida")
	ErrInsufficientStock  = errors.New("stock de sangre insuficiente")
	ErrNotEligible        = errors.New("donante no elegible para donar")
)
