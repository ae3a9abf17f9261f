package entity

import "time"

// Shelf representa una estantería dentro de un rack. Position es 1-based y
// denso entre estanterías activas del mismo rack.
//
// RackName, ZoneName, WarehouseName y Path son campos denormalizados para
// lectura: son una caché cuya fuente de verdad es la cadena de ancestros.
// El núcleo nunca depende de que estén frescos; la propagación fuera de
// banda los refresca tras un movimiento.
type Shelf struct {
	ID          string
	BusinessID  string
	RackID      string
	ZoneID      string
	WarehouseID string
	Name        string
	Code        string
	Position    int
	Capacity    int
	Coordinates string

	RackName      string
	ZoneName      string
	WarehouseName string
	Path          string

	IsDeleted bool
	DeletedAt *time.Time
	Version   int

	CreatedAt time.Time
	UpdatedAt time.Time
	CreatedBy string
}
