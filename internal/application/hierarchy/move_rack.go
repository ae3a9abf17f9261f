package hierarchy

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	domhier "github.com/jhoicas/Almacen-api/internal/domain/hierarchy"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// MoveRackUseCase mueve un rack entre zonas con la misma forma que el
// movimiento de estanterías: cierra hueco en la zona origen, abre hueco en
// la destino y escribe el nuevo padre/posición en una sola transacción.
type MoveRackUseCase struct {
	txRunner   TxRunner
	propagator Propagator
}

// NewMoveRackUseCase construye el orquestador.
func NewMoveRackUseCase(txRunner TxRunner, propagator Propagator) *MoveRackUseCase {
	return &MoveRackUseCase{txRunner: txRunner, propagator: propagator}
}

// Move mueve el rack a la zona destino. Mover a la zona actual se rechaza.
func (uc *MoveRackUseCase) Move(ctx context.Context, businessID, userID, rackID string, in dto.MoveRackRequest) error {
	rackID = domhier.NormalizeCode(rackID)
	if rackID == "" {
		return domain.ErrInvalidInput
	}
	err := uc.txRunner.Run(ctx, func(
		warehouseRepo repository.WarehouseRepository,
		zoneRepo repository.ZoneRepository,
		rackRepo repository.RackRepository,
		shelfRepo repository.ShelfRepository,
		logRepo repository.LogRepository,
	) error {
		rack, err := rackRepo.GetByID(businessID, rackID)
		if err != nil {
			return err
		}
		if rack == nil || rack.IsDeleted {
			return domain.ErrNotFound
		}
		if rack.ZoneID == in.TargetZoneID {
			return domain.ErrSameZone
		}

		sourceZone, targetZone, err := lockZonePair(zoneRepo, businessID, rack.ZoneID, in.TargetZoneID)
		if err != nil {
			return err
		}
		if sourceZone == nil || sourceZone.IsDeleted || targetZone == nil || targetZone.IsDeleted {
			return domain.ErrNotFound
		}

		rack, err = rackRepo.GetByID(businessID, rackID)
		if err != nil {
			return err
		}
		if rack == nil || rack.IsDeleted || rack.ZoneID != sourceZone.ID {
			return domain.ErrConflict
		}

		sourceSiblings, err := rackRepo.ListByZone(businessID, sourceZone.ID)
		if err != nil {
			return err
		}
		others := make([]domhier.Sibling, 0, len(sourceSiblings))
		for _, r := range sourceSiblings {
			if r.ID != rackID {
				others = append(others, domhier.Sibling{ID: r.ID, Position: r.Position})
			}
		}
		for _, sh := range domhier.PlanRemove(others, rack.Position) {
			if err := rackRepo.UpdatePosition(businessID, sh.ID, sh.Position); err != nil {
				return err
			}
		}

		targetSiblings, err := rackRepo.ListByZone(businessID, targetZone.ID)
		if err != nil {
			return err
		}
		pos, shifts := domhier.PlanInsert(rackSiblings(targetSiblings), in.TargetPosition)
		for _, sh := range shifts {
			if err := rackRepo.UpdatePosition(businessID, sh.ID, sh.Position); err != nil {
				return err
			}
		}

		now := time.Now()
		oldZoneID, oldPos := rack.ZoneID, rack.Position
		rack.ZoneID = targetZone.ID
		rack.WarehouseID = targetZone.WarehouseID
		rack.Position = pos
		rack.UpdatedAt = now
		if err := rackRepo.UpdateParent(rack); err != nil {
			return err
		}
		// Las estanterías hijas cargan zona/bodega exactas; se reescriben en
		// la misma transacción, no por la propagación fuera de banda.
		if err := shelfRepo.UpdateAncestorsByRack(businessID, rackID, targetZone.ID, targetZone.WarehouseID); err != nil {
			return err
		}

		if err := zoneRepo.AdjustCounters(businessID, sourceZone.ID, -1, -rack.ShelfCount); err != nil {
			return err
		}
		if err := zoneRepo.AdjustCounters(businessID, targetZone.ID, 1, rack.ShelfCount); err != nil {
			return err
		}
		if sourceZone.WarehouseID != targetZone.WarehouseID {
			if err := warehouseRepo.AdjustCounters(businessID, sourceZone.WarehouseID, 0, -1, -rack.ShelfCount, 0); err != nil {
				return err
			}
			if err := warehouseRepo.AdjustCounters(businessID, targetZone.WarehouseID, 0, 1, rack.ShelfCount, 0); err != nil {
				return err
			}
		}

		return logRepo.Append(&entity.Log{
			BusinessID: businessID,
			EntityType: entity.EntityRack,
			EntityID:   rackID,
			Action:     entity.LogActionMoved,
			Changes: map[string]entity.FieldChange{
				"zone_id":  {From: oldZoneID, To: targetZone.ID},
				"position": {From: oldPos, To: pos},
			},
			CreatedAt: now,
			CreatedBy: userID,
		})
	})
	if err != nil {
		return err
	}
	uc.propagator.SchedulePropagation(entity.EntityRack, rackID)
	return nil
}

// lockZonePair bloquea dos zonas con SELECT FOR UPDATE en orden de ID.
func lockZonePair(zoneRepo repository.ZoneRepository, businessID, sourceID, targetID string) (*entity.Zone, *entity.Zone, error) {
	firstID, secondID := sourceID, targetID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}
	first, err := zoneRepo.GetForUpdate(businessID, firstID)
	if err != nil {
		return nil, nil, err
	}
	second, err := zoneRepo.GetForUpdate(businessID, secondID)
	if err != nil {
		return nil, nil, err
	}
	if firstID == sourceID {
		return first, second, nil
	}
	return second, first, nil
}
