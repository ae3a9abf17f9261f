package dto

import "time"

// CreateShelfRequest entrada para crear una estantería. Los nombres de
// ancestros son opcionales (denormalizados para lectura).
type CreateShelfRequest struct {
	RackID        string `json:"rack_id" validate:"required"`
	RackName      string `json:"rack_name"`
	ZoneID        string `json:"zone_id" validate:"required"`
	ZoneName      string `json:"zone_name"`
	WarehouseID   string `json:"warehouse_id" validate:"required"`
	WarehouseName string `json:"warehouse_name"`
	Name          string `json:"name" validate:"required,min=1,max=200"`
	Code          string `json:"code" validate:"max=50"`
	Position      int    `json:"position" validate:"min=0"`
	Capacity      int    `json:"capacity" validate:"min=0"`
	Coordinates   string `json:"coordinates"`
}

// UpdateShelfRequest entrada para actualizar una estantería. Un cambio de
// Position recalcula los desplazamientos de los hermanos del mismo rack.
type UpdateShelfRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Position *int    `json:"position" validate:"omitempty,min=1"`
	Capacity *int    `json:"capacity" validate:"omitempty,min=0"`
}

// MoveShelfRequest entrada para mover una estantería a otro rack.
type MoveShelfRequest struct {
	TargetRackID      string `json:"target_rack_id" validate:"required"`
	TargetZoneID      string `json:"target_zone_id" validate:"required"`
	TargetWarehouseID string `json:"target_warehouse_id" validate:"required"`
	TargetPosition    int    `json:"target_position" validate:"min=0"`
}

// ShelfResponse salida de una estantería.
type ShelfResponse struct {
	ID            string    `json:"id"`
	RackID        string    `json:"rack_id"`
	ZoneID        string    `json:"zone_id"`
	WarehouseID   string    `json:"warehouse_id"`
	Name          string    `json:"name"`
	Code          string    `json:"code,omitempty"`
	Position      int       `json:"position"`
	Capacity      int       `json:"capacity"`
	Coordinates   string    `json:"coordinates,omitempty"`
	RackName      string    `json:"rack_name,omitempty"`
	ZoneName      string    `json:"zone_name,omitempty"`
	WarehouseName string    `json:"warehouse_name,omitempty"`
	Path          string    `json:"path,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ShelfListResponse lista de estanterías activas de un rack, por posición.
type ShelfListResponse struct {
	Items []ShelfResponse `json:"items"`
}
