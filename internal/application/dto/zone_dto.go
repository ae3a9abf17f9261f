package dto

import "time"

// CreateZoneRequest entrada para crear una zona.
type CreateZoneRequest struct {
	WarehouseID string `json:"warehouse_id" validate:"required"`
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Code        string `json:"code" validate:"required,min=1,max=50"`
	Description string `json:"description"`
}

// ZoneResponse salida de una zona.
type ZoneResponse struct {
	ID          string    `json:"id"`
	WarehouseID string    `json:"warehouse_id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	RackCount   int       `json:"rack_count"`
	ShelfCount  int       `json:"shelf_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ZoneListResponse lista de zonas activas de una bodega.
type ZoneListResponse struct {
	Items []ZoneResponse `json:"items"`
}
