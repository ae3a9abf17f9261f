package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicateCode     = errors.New("código ya registrado en un hermano activo")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrHasActiveChildren = errors.New("no se puede eliminar: tiene hijos activos")
	ErrSameRack          = errors.New("la estantería ya está en este rack")
	ErrSameZone          = errors.New("el rack ya está en esta zona")
	ErrInsufficientStock = errors.New("stock insuficiente en la ubicación")
)
