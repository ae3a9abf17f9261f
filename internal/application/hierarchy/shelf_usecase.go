package hierarchy

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	domhier "github.com/jhoicas/Almacen-api/internal/domain/hierarchy"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ShelfUseCase casos de uso para estanterías: crear, actualizar (un cambio
// de posición recalcula los desplazamientos de los hermanos del mismo rack),
// listar y eliminar cerrando el hueco.
type ShelfUseCase struct {
	txRunner   TxRunner
	shelfRepo  repository.ShelfRepository
	propagator Propagator
}

// NewShelfUseCase construye el caso de uso.
func NewShelfUseCase(txRunner TxRunner, shelfRepo repository.ShelfRepository, propagator Propagator) *ShelfUseCase {
	return &ShelfUseCase{txRunner: txRunner, shelfRepo: shelfRepo, propagator: propagator}
}

// Create crea una estantería dentro de un rack, con posición opcional.
func (uc *ShelfUseCase) Create(ctx context.Context, businessID, userID string, in dto.CreateShelfRequest) (*dto.ShelfResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.ShelfResponse
	err := uc.txRunner.Run(ctx, func(
		warehouseRepo repository.WarehouseRepository,
		zoneRepo repository.ZoneRepository,
		rackRepo repository.RackRepository,
		shelfRepo repository.ShelfRepository,
		logRepo repository.LogRepository,
	) error {
		rack, err := rackRepo.GetForUpdate(businessID, in.RackID)
		if err != nil {
			return err
		}
		if rack == nil || rack.IsDeleted {
			return domain.ErrNotFound
		}

		siblings, err := shelfRepo.ListByRack(businessID, in.RackID)
		if err != nil {
			return err
		}
		pos, shifts := domhier.PlanInsert(shelfSiblings(siblings), in.Position)
		for _, sh := range shifts {
			if err := shelfRepo.UpdatePosition(businessID, sh.ID, sh.Position); err != nil {
				return err
			}
		}

		now := time.Now()
		shelf := &entity.Shelf{
			ID:            uuid.New().String(),
			BusinessID:    businessID,
			RackID:        in.RackID,
			ZoneID:        in.ZoneID,
			WarehouseID:   in.WarehouseID,
			Name:          name,
			Code:          domhier.NormalizeCode(in.Code),
			Position:      pos,
			Capacity:      in.Capacity,
			Coordinates:   in.Coordinates,
			RackName:      in.RackName,
			ZoneName:      in.ZoneName,
			WarehouseName: in.WarehouseName,
			Path:          shelfPath(in.WarehouseName, in.ZoneName, in.RackName, name),
			CreatedAt:     now,
			UpdatedAt:     now,
			CreatedBy:     userID,
		}
		if err := shelfRepo.Create(shelf); err != nil {
			return err
		}

		if err := rackRepo.AdjustCounters(businessID, in.RackID, 1); err != nil {
			return err
		}
		if err := zoneRepo.AdjustCounters(businessID, rack.ZoneID, 0, 1); err != nil {
			return err
		}
		if err := warehouseRepo.AdjustCounters(businessID, rack.WarehouseID, 0, 0, 1, 0); err != nil {
			return err
		}
		if err := logRepo.Append(&entity.Log{
			BusinessID: businessID,
			EntityType: entity.EntityShelf,
			EntityID:   shelf.ID,
			Action:     entity.LogActionCreated,
			Changes: map[string]entity.FieldChange{
				"position": {From: nil, To: pos},
			},
			Note:      "estantería " + shelf.Name,
			CreatedAt: now,
			CreatedBy: userID,
		}); err != nil {
			return err
		}

		out = toShelfResponse(shelf)
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Los nombres denormalizados vienen del cliente: refrescar fuera de banda
	// contra las filas autoritativas.
	uc.propagator.SchedulePropagation(entity.EntityShelf, out.ID)
	return out, nil
}

// List lista estanterías activas de un rack, por posición ascendente.
func (uc *ShelfUseCase) List(ctx context.Context, businessID, rackID string) (*dto.ShelfListResponse, error) {
	shelves, err := uc.shelfRepo.ListByRack(businessID, rackID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ShelfResponse, 0, len(shelves))
	for _, s := range shelves {
		items = append(items, *toShelfResponse(s))
	}
	return &dto.ShelfListResponse{Items: items}, nil
}

// Update actualiza nombre/capacidad y, si cambia la posición, recalcula los
// desplazamientos contra los demás hermanos del MISMO rack en la misma
// transacción.
func (uc *ShelfUseCase) Update(ctx context.Context, businessID, userID, shelfID string, in dto.UpdateShelfRequest) error {
	return uc.txRunner.Run(ctx, func(
		warehouseRepo repository.WarehouseRepository,
		zoneRepo repository.ZoneRepository,
		rackRepo repository.RackRepository,
		shelfRepo repository.ShelfRepository,
		logRepo repository.LogRepository,
	) error {
		shelf, err := shelfRepo.GetByID(businessID, shelfID)
		if err != nil {
			return err
		}
		if shelf == nil || shelf.IsDeleted {
			return domain.ErrNotFound
		}
		if _, err := rackRepo.GetForUpdate(businessID, shelf.RackID); err != nil {
			return err
		}
		// Releer bajo el candado del rack.
		shelf, err = shelfRepo.GetByID(businessID, shelfID)
		if err != nil {
			return err
		}
		if shelf == nil || shelf.IsDeleted {
			return domain.ErrNotFound
		}

		changes := map[string]entity.FieldChange{}
		if in.Name != nil && strings.TrimSpace(*in.Name) != "" && *in.Name != shelf.Name {
			changes["name"] = entity.FieldChange{From: shelf.Name, To: *in.Name}
			shelf.Name = strings.TrimSpace(*in.Name)
		}
		if in.Capacity != nil && *in.Capacity != shelf.Capacity {
			changes["capacity"] = entity.FieldChange{From: shelf.Capacity, To: *in.Capacity}
			shelf.Capacity = *in.Capacity
		}
		if in.Position != nil && *in.Position != shelf.Position {
			siblings, err := shelfRepo.ListByRack(businessID, shelf.RackID)
			if err != nil {
				return err
			}
			pos, shifts := domhier.PlanReposition(shelfSiblings(siblings), shelfID, *in.Position)
			for _, sh := range shifts {
				if err := shelfRepo.UpdatePosition(businessID, sh.ID, sh.Position); err != nil {
					return err
				}
			}
			changes["position"] = entity.FieldChange{From: shelf.Position, To: pos}
			shelf.Position = pos
		}
		if len(changes) == 0 {
			return nil
		}

		now := time.Now()
		shelf.UpdatedAt = now
		if err := shelfRepo.Update(shelf); err != nil {
			return err
		}
		return logRepo.Append(&entity.Log{
			BusinessID: businessID,
			EntityType: entity.EntityShelf,
			EntityID:   shelfID,
			Action:     entity.LogActionUpdated,
			Changes:    changes,
			CreatedAt:  now,
			CreatedBy:  userID,
		})
	})
}

// Delete marca la estantería como eliminada y cierra el hueco de posición.
func (uc *ShelfUseCase) Delete(ctx context.Context, businessID, userID, shelfID string) error {
	return uc.txRunner.Run(ctx, func(
		warehouseRepo repository.WarehouseRepository,
		zoneRepo repository.ZoneRepository,
		rackRepo repository.RackRepository,
		shelfRepo repository.ShelfRepository,
		logRepo repository.LogRepository,
	) error {
		shelf, err := shelfRepo.GetByID(businessID, shelfID)
		if err != nil {
			return err
		}
		if shelf == nil || shelf.IsDeleted {
			return domain.ErrNotFound
		}
		if _, err := rackRepo.GetForUpdate(businessID, shelf.RackID); err != nil {
			return err
		}
		shelf, err = shelfRepo.GetByID(businessID, shelfID)
		if err != nil {
			return err
		}
		if shelf == nil || shelf.IsDeleted {
			return domain.ErrNotFound
		}

		now := time.Now()
		if err := shelfRepo.SoftDelete(businessID, shelfID, now); err != nil {
			return err
		}
		siblings, err := shelfRepo.ListByRack(businessID, shelf.RackID)
		if err != nil {
			return err
		}
		for _, sh := range domhier.PlanRemove(shelfSiblings(siblings), shelf.Position) {
			if err := shelfRepo.UpdatePosition(businessID, sh.ID, sh.Position); err != nil {
				return err
			}
		}

		if err := rackRepo.AdjustCounters(businessID, shelf.RackID, -1); err != nil {
			return err
		}
		if err := zoneRepo.AdjustCounters(businessID, shelf.ZoneID, 0, -1); err != nil {
			return err
		}
		if err := warehouseRepo.AdjustCounters(businessID, shelf.WarehouseID, 0, 0, -1, 0); err != nil {
			return err
		}
		return logRepo.Append(&entity.Log{
			BusinessID: businessID,
			EntityType: entity.EntityShelf,
			EntityID:   shelfID,
			Action:     entity.LogActionDeleted,
			Note:       "estantería " + shelf.Name,
			CreatedAt:  now,
			CreatedBy:  userID,
		})
	})
}

func toShelfResponse(s *entity.Shelf) *dto.ShelfResponse {
	if s == nil {
		return nil
	}
	return &dto.ShelfResponse{
		ID:            s.ID,
		RackID:        s.RackID,
		ZoneID:        s.ZoneID,
		WarehouseID:   s.WarehouseID,
		Name:          s.Name,
		Code:          s.Code,
		Position:      s.Position,
		Capacity:      s.Capacity,
		Coordinates:   s.Coordinates,
		RackName:      s.RackName,
		ZoneName:      s.ZoneName,
		WarehouseName: s.WarehouseName,
		Path:          s.Path,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// shelfSiblings proyecta estanterías a pares (ID, posición) para el asignador.
func shelfSiblings(shelves []*entity.Shelf) []domhier.Sibling {
	out := make([]domhier.Sibling, 0, len(shelves))
	for _, s := range shelves {
		out = append(out, domhier.Sibling{ID: s.ID, Position: s.Position})
	}
	return out
}

// shelfPath compone el path legible con los nombres denormalizados que haya.
// Es una caché de lectura: la propagación fuera de banda lo refresca.
func shelfPath(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, strings.TrimSpace(p))
		}
	}
	return strings.Join(kept, " / ")
}
