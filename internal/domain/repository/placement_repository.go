package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// PlacementFilter filtros de listado de colocaciones.
type PlacementFilter struct {
	ShelfID   string
	ProductID string
	Limit     int
	Offset    int
}

// PlacementRepository define el puerto de persistencia para Placement.
type PlacementRepository interface {
	Get(businessID, id string) (*entity.Placement, error)
	// GetForUpdate bloquea la fila de la colocación (SELECT FOR UPDATE).
	GetForUpdate(businessID, id string) (*entity.Placement, error)
	Upsert(p *entity.Placement) error
	List(businessID string, f PlacementFilter) ([]*entity.Placement, error)
}
