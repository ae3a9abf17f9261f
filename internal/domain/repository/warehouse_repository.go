package repository

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(w *entity.Warehouse) error
	GetByID(businessID, id string) (*entity.Warehouse, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para serializar
	// mutaciones de sus hijas. Usar dentro de transacción.
	GetForUpdate(businessID, id string) (*entity.Warehouse, error)
	Update(w *entity.Warehouse) error
	ListByBusiness(businessID string, limit, offset int) ([]*entity.Warehouse, error)
	SoftDelete(businessID, id string, at time.Time) error
	// AdjustCounters suma deltas a las estadísticas agregadas (puede ser negativo).
	AdjustCounters(businessID, id string, zones, racks, shelves, products int) error
}
