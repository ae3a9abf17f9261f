package entity

import "time"

// Estados de put-away de una unidad física.
const (
	PutAwayNone     = "none"     // recibida, aún sin ubicar
	PutAwayInbound  = "inbound"  // ubicada en estantería
	PutAwayOutbound = "outbound" // retirada (pick)
)

// UPC representa una unidad física de stock: un documento por unidad,
// creado en bloque al ubicar una nota de recepción (GRN).
type UPC struct {
	ID         string
	BusinessID string
	ProductID  string
	GRNID      string
	PutAway    string

	WarehouseID string
	ZoneID      string
	RackID      string
	ShelfID     string

	// Referencia al pedido/tienda propietaria al salir (nullable).
	OrderID string
	StoreID string

	CreatedAt time.Time
	UpdatedAt time.Time
}
