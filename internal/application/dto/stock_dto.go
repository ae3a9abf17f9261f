package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PutAwayRequest entrada para ubicar unidades de una GRN en una estantería.
// Crea una unidad (UPC) por cada Units, la colocación y el movimiento inbound.
type PutAwayRequest struct {
	GRNID     string `json:"grn_id" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
	ShelfID   string `json:"shelf_id" validate:"required"`
	Units     int    `json:"units" validate:"required,min=1,max=10000"`
	Note      string `json:"note"`
}

// PickRequest entrada para retirar unidades de una estantería hacia un pedido.
type PickRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	ShelfID   string `json:"shelf_id" validate:"required"`
	Units     int    `json:"units" validate:"required,min=1,max=10000"`
	OrderID   string `json:"order_id" validate:"required"`
	StoreID   string `json:"store_id"`
	Note      string `json:"note"`
}

// PlacementResponse salida de una colocación producto-estantería.
type PlacementResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	ShelfID        string          `json:"shelf_id"`
	RackID         string          `json:"rack_id"`
	ZoneID         string          `json:"zone_id"`
	WarehouseID    string          `json:"warehouse_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	MovementCount  int             `json:"movement_count"`
	LastMovementAt *time.Time      `json:"last_movement_at,omitempty"`
}

// PlacementListResponse lista paginada de colocaciones.
type PlacementListResponse struct {
	Items []PlacementResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// UPCResponse salida de una unidad física.
type UPCResponse struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	GRNID       string    `json:"grn_id"`
	PutAway     string    `json:"put_away"`
	WarehouseID string    `json:"warehouse_id,omitempty"`
	ZoneID      string    `json:"zone_id,omitempty"`
	RackID      string    `json:"rack_id,omitempty"`
	ShelfID     string    `json:"shelf_id,omitempty"`
	OrderID     string    `json:"order_id,omitempty"`
	StoreID     string    `json:"store_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UPCListResponse lista paginada de unidades físicas.
type UPCListResponse struct {
	Items []UPCResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}

// MovementLocationResponse instantánea de ubicación en un movimiento.
type MovementLocationResponse struct {
	WarehouseID string `json:"warehouse_id,omitempty"`
	ZoneID      string `json:"zone_id,omitempty"`
	RackID      string `json:"rack_id,omitempty"`
	ShelfID     string `json:"shelf_id,omitempty"`
}

// MovementResponse salida de un movimiento de stock.
type MovementResponse struct {
	ID        string                   `json:"id"`
	ProductID string                   `json:"product_id"`
	GRNID     string                   `json:"grn_id,omitempty"`
	Type      string                   `json:"type"`
	Quantity  decimal.Decimal          `json:"quantity"`
	From      MovementLocationResponse `json:"from"`
	To        MovementLocationResponse `json:"to"`
	Note      string                   `json:"note,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
	CreatedBy string                   `json:"created_by,omitempty"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
