package repository

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// RackRepository define el puerto de persistencia para Rack.
type RackRepository interface {
	Create(r *entity.Rack) error
	Overwrite(r *entity.Rack) error
	GetByID(businessID, id string) (*entity.Rack, error)
	GetForUpdate(businessID, id string) (*entity.Rack, error)
	// ListByZone devuelve racks activos ordenados por posición ascendente.
	ListByZone(businessID, zoneID string) ([]*entity.Rack, error)
	UpdatePosition(businessID, id string, position int) error
	// UpdateParent escribe la nueva zona y posición del rack movido.
	UpdateParent(r *entity.Rack) error
	SoftDelete(businessID, id string, at time.Time) error
	CountActiveByZone(businessID, zoneID string) (int, error)
	AdjustCounters(businessID, id string, shelves int) error
}
