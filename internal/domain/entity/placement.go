package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Placement representa la cantidad de un producto ubicada en una estantería
// concreta. El ID es determinístico (productID_shelfID): hay a lo sumo una
// colocación por producto por estantería.
type Placement struct {
	ID          string
	BusinessID  string
	ProductID   string
	ShelfID     string
	RackID      string
	ZoneID      string
	WarehouseID string
	Quantity    decimal.Decimal

	MovementCount  int
	LastMovementAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlacementID compone el identificador determinístico de una colocación.
func PlacementID(productID, shelfID string) string {
	return productID + "_" + shelfID
}
