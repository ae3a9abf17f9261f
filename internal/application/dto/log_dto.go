package dto

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// LogResponse salida de una entrada de bitácora.
type LogResponse struct {
	ID         string                        `json:"id"`
	EntityType string                        `json:"entity_type"`
	EntityID   string                        `json:"entity_id"`
	Action     string                        `json:"action"`
	Changes    map[string]entity.FieldChange `json:"changes,omitempty"`
	Note       string                        `json:"note,omitempty"`
	CreatedAt  time.Time                     `json:"created_at"`
	CreatedBy  string                        `json:"created_by"`
}

// LogListResponse lista paginada de bitácora.
type LogListResponse struct {
	Items []LogResponse `json:"items"`
	Page  PageResponse  `json:"page"`
}
