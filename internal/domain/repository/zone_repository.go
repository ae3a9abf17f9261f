package repository

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ZoneRepository define el puerto de persistencia para Zone.
// GetByID devuelve también filas eliminadas (el caso de reutilización de
// código necesita verlas); List solo devuelve activas.
type ZoneRepository interface {
	Create(z *entity.Zone) error
	// Overwrite reescribe todos los campos de una fila existente (reutilización
	// de código tras soft-delete: estadísticas en cero, versión +1).
	Overwrite(z *entity.Zone) error
	GetByID(businessID, id string) (*entity.Zone, error)
	GetForUpdate(businessID, id string) (*entity.Zone, error)
	ListByWarehouse(businessID, warehouseID string) ([]*entity.Zone, error)
	SoftDelete(businessID, id string, at time.Time) error
	CountActiveByWarehouse(businessID, warehouseID string) (int, error)
	AdjustCounters(businessID, id string, racks, shelves int) error
}
