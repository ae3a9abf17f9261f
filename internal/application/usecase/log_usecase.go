package usecase

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// LogUseCase lectura de la bitácora estructural (solo listado: las entradas
// son inmutables).
type LogUseCase struct {
	logRepo repository.LogRepository
}

// NewLogUseCase construye el caso de uso.
func NewLogUseCase(logRepo repository.LogRepository) *LogUseCase {
	return &LogUseCase{logRepo: logRepo}
}

// List lista entradas de bitácora filtrables por entidad y acción.
func (uc *LogUseCase) List(ctx context.Context, businessID string, f repository.LogFilter) (*dto.LogListResponse, error) {
	logs, err := uc.logRepo.List(businessID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LogResponse, 0, len(logs))
	for _, l := range logs {
		items = append(items, toLogResponse(l))
	}
	return &dto.LogListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}, nil
}

func toLogResponse(l *entity.Log) dto.LogResponse {
	return dto.LogResponse{
		ID:         l.ID,
		EntityType: l.EntityType,
		EntityID:   l.EntityID,
		Action:     l.Action,
		Changes:    l.Changes,
		Note:       l.Note,
		CreatedAt:  l.CreatedAt,
		CreatedBy:  l.CreatedBy,
	}
}
