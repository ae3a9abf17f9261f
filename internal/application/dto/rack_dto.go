package dto

import "time"

// CreateRackRequest entrada para crear un rack. Position opcional: > 0
// inserta en esa posición desplazando hermanos; 0 o ausente agrega al final.
type CreateRackRequest struct {
	ZoneID      string `json:"zone_id" validate:"required"`
	WarehouseID string `json:"warehouse_id" validate:"required"`
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Code        string `json:"code" validate:"required,min=1,max=50"`
	Position    int    `json:"position" validate:"min=0"`
}

// MoveRackRequest entrada para mover un rack a otra zona.
type MoveRackRequest struct {
	TargetZoneID   string `json:"target_zone_id" validate:"required"`
	TargetPosition int    `json:"target_position" validate:"min=0"`
}

// RackResponse salida de un rack.
type RackResponse struct {
	ID         string    `json:"id"`
	ZoneID     string    `json:"zone_id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Position   int       `json:"position"`
	ShelfCount int       `json:"shelf_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RackListResponse lista de racks activos de una zona, por posición.
type RackListResponse struct {
	Items []RackResponse `json:"items"`
}
