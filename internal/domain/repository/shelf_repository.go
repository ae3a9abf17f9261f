package repository

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ShelfRepository define el puerto de persistencia para Shelf.
type ShelfRepository interface {
	Create(s *entity.Shelf) error
	GetByID(businessID, id string) (*entity.Shelf, error)
	// ListByRack devuelve estanterías activas ordenadas por posición ascendente.
	ListByRack(businessID, rackID string) ([]*entity.Shelf, error)
	Update(s *entity.Shelf) error
	UpdatePosition(businessID, id string, position int) error
	// UpdateParent escribe rack/zona/bodega/posición del shelf movido en una
	// sola sentencia (el orquestador de movimiento la usa dentro de su tx).
	UpdateParent(s *entity.Shelf) error
	// UpdateAncestorsByRack reescribe zona y bodega de TODAS las estanterías
	// de un rack. El movimiento de racks la usa dentro de su tx: los ids de
	// ancestros son datos exactos, no caché de lectura.
	UpdateAncestorsByRack(businessID, rackID, zoneID, warehouseID string) error
	SoftDelete(businessID, id string, at time.Time) error
	CountActiveByRack(businessID, rackID string) (int, error)
}
