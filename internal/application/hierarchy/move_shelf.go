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

// MoveShelfUseCase orquesta el movimiento de una estantería entre racks:
// cierra el hueco en el rack origen, abre hueco (o agrega al final) en el
// destino y escribe el nuevo padre/posición de la movida, todo en una sola
// transacción con ambos racks bloqueados.
//
// No recalcula nombres denormalizados ni estadísticas de lectura: eso lo
// agenda el propagador tras el commit.
type MoveShelfUseCase struct {
	txRunner   TxRunner
	propagator Propagator
}

// NewMoveShelfUseCase construye el orquestador.
func NewMoveShelfUseCase(txRunner TxRunner, propagator Propagator) *MoveShelfUseCase {
	return &MoveShelfUseCase{txRunner: txRunner, propagator: propagator}
}

// Move mueve la estantería al rack destino. Mover al rack actual se rechaza
// con error de validación, no se acepta en silencio.
func (uc *MoveShelfUseCase) Move(ctx context.Context, businessID, userID, shelfID string, in dto.MoveShelfRequest) error {
	err := uc.txRunner.Run(ctx, func(
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
		if shelf.RackID == in.TargetRackID {
			return domain.ErrSameRack
		}

		// Bloquear ambos racks en orden determinístico de ID: dos movimientos
		// cruzados entre los mismos racks no pueden interbloquearse.
		sourceRack, targetRack, err := lockRackPair(rackRepo, businessID, shelf.RackID, in.TargetRackID)
		if err != nil {
			return err
		}
		if sourceRack == nil || sourceRack.IsDeleted {
			return domain.ErrNotFound
		}
		if targetRack == nil || targetRack.IsDeleted {
			return domain.ErrNotFound
		}
		if targetRack.ZoneID != in.TargetZoneID || targetRack.WarehouseID != in.TargetWarehouseID {
			return domain.ErrInvalidInput
		}

		// Releer la estantería bajo los candados.
		shelf, err = shelfRepo.GetByID(businessID, shelfID)
		if err != nil {
			return err
		}
		if shelf == nil || shelf.IsDeleted || shelf.RackID != sourceRack.ID {
			return domain.ErrConflict
		}

		// Cerrar el hueco en el origen.
		sourceSiblings, err := shelfRepo.ListByRack(businessID, sourceRack.ID)
		if err != nil {
			return err
		}
		others := make([]domhier.Sibling, 0, len(sourceSiblings))
		for _, s := range sourceSiblings {
			if s.ID != shelfID {
				others = append(others, domhier.Sibling{ID: s.ID, Position: s.Position})
			}
		}
		for _, sh := range domhier.PlanRemove(others, shelf.Position) {
			if err := shelfRepo.UpdatePosition(businessID, sh.ID, sh.Position); err != nil {
				return err
			}
		}

		// Abrir hueco (o agregar al final) en el destino.
		targetSiblings, err := shelfRepo.ListByRack(businessID, targetRack.ID)
		if err != nil {
			return err
		}
		pos, shifts := domhier.PlanInsert(shelfSiblings(targetSiblings), in.TargetPosition)
		for _, sh := range shifts {
			if err := shelfRepo.UpdatePosition(businessID, sh.ID, sh.Position); err != nil {
				return err
			}
		}

		now := time.Now()
		oldRackID, oldPos := shelf.RackID, shelf.Position
		shelf.RackID = targetRack.ID
		shelf.ZoneID = targetRack.ZoneID
		shelf.WarehouseID = targetRack.WarehouseID
		shelf.Position = pos
		shelf.UpdatedAt = now
		if err := shelfRepo.UpdateParent(shelf); err != nil {
			return err
		}

		if err := rackRepo.AdjustCounters(businessID, sourceRack.ID, -1); err != nil {
			return err
		}
		if err := rackRepo.AdjustCounters(businessID, targetRack.ID, 1); err != nil {
			return err
		}
		if sourceRack.ZoneID != targetRack.ZoneID {
			if err := zoneRepo.AdjustCounters(businessID, sourceRack.ZoneID, 0, -1); err != nil {
				return err
			}
			if err := zoneRepo.AdjustCounters(businessID, targetRack.ZoneID, 0, 1); err != nil {
				return err
			}
		}
		if sourceRack.WarehouseID != targetRack.WarehouseID {
			if err := warehouseRepo.AdjustCounters(businessID, sourceRack.WarehouseID, 0, 0, -1, 0); err != nil {
				return err
			}
			if err := warehouseRepo.AdjustCounters(businessID, targetRack.WarehouseID, 0, 0, 1, 0); err != nil {
				return err
			}
		}

		return logRepo.Append(&entity.Log{
			BusinessID: businessID,
			EntityType: entity.EntityShelf,
			EntityID:   shelfID,
			Action:     entity.LogActionMoved,
			Changes: map[string]entity.FieldChange{
				"rack_id":  {From: oldRackID, To: targetRack.ID},
				"position": {From: oldPos, To: pos},
			},
			CreatedAt: now,
			CreatedBy: userID,
		})
	})
	if err != nil {
		return err
	}
	uc.propagator.SchedulePropagation(entity.EntityShelf, shelfID)
	return nil
}

// lockRackPair bloquea dos racks con SELECT FOR UPDATE en orden de ID y los
// devuelve en el orden (origen, destino) pedido.
func lockRackPair(rackRepo repository.RackRepository, businessID, sourceID, targetID string) (*entity.Rack, *entity.Rack, error) {
	firstID, secondID := sourceID, targetID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}
	first, err := rackRepo.GetForUpdate(businessID, firstID)
	if err != nil {
		return nil, nil, err
	}
	second, err := rackRepo.GetForUpdate(businessID, secondID)
	if err != nil {
		return nil, nil, err
	}
	if firstID == sourceID {
		return first, second, nil
	}
	return second, first, nil
}
