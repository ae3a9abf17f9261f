package entity

import "time"

// Acciones registradas en la bitácora estructural.
const (
	LogActionCreated  = "created"
	LogActionUpdated  = "updated"
	LogActionDeleted  = "deleted"
	LogActionRestored = "restored"
	LogActionMoved    = "moved"
)

// Tipos de entidad sobre los que se registra bitácora.
const (
	EntityWarehouse = "warehouse"
	EntityZone      = "zone"
	EntityRack      = "rack"
	EntityShelf     = "shelf"
	EntityPlacement = "placement"
)

// FieldChange es el cambio de un campo dentro de una entrada de bitácora.
type FieldChange struct {
	From any `json:"from"`
	To   any `json:"to"`
}

// Log es una entrada inmutable de bitácora por mutación estructural
// (created/updated/deleted/restored/moved) con diff a nivel de campo.
type Log struct {
	ID         string
	BusinessID string
	EntityType string
	EntityID   string
	Action     string
	Changes    map[string]FieldChange
	Note       string

	CreatedAt time.Time
	CreatedBy string
}
