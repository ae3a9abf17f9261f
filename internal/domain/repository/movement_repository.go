package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// MovementFilter filtros de listado de movimientos.
type MovementFilter struct {
	ProductID string
	GRNID     string
	Type      string
	Limit     int
	Offset    int
}

// MovementRepository define el puerto de persistencia para Movement.
// Solo inserción y lectura: los movimientos son inmutables.
type MovementRepository interface {
	Create(m *entity.Movement) error
	List(businessID string, f MovementFilter) ([]*entity.Movement, error)
}
