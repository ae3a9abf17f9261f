package entity

import "time"

// Rack representa un rack dentro de una zona. El ID es el código humano
// normalizado (misma regla de reutilización que Zone). Position es 1-based
// y denso entre racks activos de la misma zona.
type Rack struct {
	ID          string // código normalizado
	BusinessID  string
	ZoneID      string
	WarehouseID string
	Name        string
	Position    int

	ShelfCount int

	IsDeleted bool
	DeletedAt *time.Time
	Version   int

	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
}
