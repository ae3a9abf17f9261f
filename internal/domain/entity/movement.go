package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeInbound    = "INBOUND"    // entrada por put-away de GRN
	MovementTypeOutbound   = "OUTBOUND"   // salida por pick
	MovementTypeTransfer   = "TRANSFER"   // traslado entre ubicaciones
	MovementTypeAdjustment = "ADJUSTMENT" // ajuste manual
)

// MovementLocation es la instantánea de una ubicación en el momento del
// movimiento (se guarda tal cual, no se refresca).
type MovementLocation struct {
	WarehouseID string
	ZoneID      string
	RackID      string
	ShelfID     string
}

// Movement es el registro inmutable de un movimiento de stock; solo se
// inserta, nunca se actualiza ni se borra.
type Movement struct {
	ID         string
	BusinessID string
	ProductID  string
	GRNID      string
	Type       string
	Quantity   decimal.Decimal
	From       MovementLocation
	To         MovementLocation
	Note       string

	CreatedAt time.Time
	CreatedBy string
}
