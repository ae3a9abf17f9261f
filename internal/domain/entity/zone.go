package entity

import "time"

// Zone representa una zona dentro de una bodega. El ID es el código humano
// normalizado (trim + mayúsculas) y es único entre zonas NO eliminadas del
// mismo negocio; un código de zona eliminada puede reutilizarse (recrea la
// fila con estadísticas en cero).
type Zone struct {
	ID          string // código normalizado
	BusinessID  string
	WarehouseID string
	Name        string
	Description string

	RackCount  int
	ShelfCount int

	IsDeleted bool
	DeletedAt *time.Time
	Version   int

	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
}
