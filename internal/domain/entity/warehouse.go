package entity

import "time"

// Warehouse representa una bodega física de un negocio (tenant).
// Los contadores agregados (zonas, racks, estanterías, productos) son
// estadísticas denormalizadas que se mantienen en la misma transacción
// que la mutación estructural.
type Warehouse struct {
	ID         string
	BusinessID string
	Name       string
	Code       string
	Address    string
	Capacity   int

	ZoneCount    int
	RackCount    int
	ShelfCount   int
	ProductCount int

	IsDeleted bool
	DeletedAt *time.Time
	Version   int

	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
}
