package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// LogFilter filtros de listado de bitácora.
type LogFilter struct {
	EntityType string
	EntityID   string
	Action     string
	Limit      int
	Offset     int
}

// LogRepository define el puerto de la bitácora estructural.
// Solo append y lectura: una entrada nunca se actualiza ni se borra.
type LogRepository interface {
	Append(l *entity.Log) error
	List(businessID string, f LogFilter) ([]*entity.Log, error)
}
