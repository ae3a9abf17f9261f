package dto

import "time"

// CreateWarehouseRequest entrada para crear una bodega.
type CreateWarehouseRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Code     string `json:"code" validate:"max=50"`
	Address  string `json:"address"`
	Capacity int    `json:"capacity" validate:"min=0"`
}

// UpdateWarehouseRequest entrada para actualizar una bodega.
type UpdateWarehouseRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address  *string `json:"address"`
	Capacity *int    `json:"capacity" validate:"omitempty,min=0"`
}

// WarehouseResponse salida de una bodega.
type WarehouseResponse struct {
	ID           string    `json:"id"`
	BusinessID   string    `json:"business_id"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	Address      string    `json:"address"`
	Capacity     int       `json:"capacity"`
	ZoneCount    int       `json:"zone_count"`
	RackCount    int       `json:"rack_count"`
	ShelfCount   int       `json:"shelf_count"`
	ProductCount int       `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// WarehouseListResponse lista paginada de bodegas.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
