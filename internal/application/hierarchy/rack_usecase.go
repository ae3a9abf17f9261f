package hierarchy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	domhier "github.com/jhoicas/Almacen-api/internal/domain/hierarchy"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// RackUseCase casos de uso para racks: crear con posición opcional
// (insert-at desplaza hermanos), listar por posición y eliminar cerrando
// el hueco. Misma regla de reutilización de código que Zone.
type RackUseCase struct {
	txRunner  TxRunner
	rackRepo  repository.RackRepository
	shelfRepo repository.ShelfRepository
}

// NewRackUseCase construye el caso de uso.
func NewRackUseCase(txRunner TxRunner, rackRepo repository.RackRepository, shelfRepo repository.ShelfRepository) *RackUseCase {
	return &RackUseCase{txRunner: txRunner, rackRepo: rackRepo, shelfRepo: shelfRepo}
}

// Create crea un rack dentro de una zona. La lectura de hermanos, los
// desplazamientos y la escritura del nuevo rack ocurren en una sola
// transacción con la zona padre bloqueada: dos inserciones concurrentes en
// la misma posición no pueden producir duplicados.
func (uc *RackUseCase) Create(ctx context.Context, businessID, userID string, in dto.CreateRackRequest) (*dto.RackResponse, error) {
	name := strings.TrimSpace(in.Name)
	code := domhier.NormalizeCode(in.Code)
	if name == "" || code == "" {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.RackResponse
	err := uc.txRunner.Run(ctx, func(
		warehouseRepo repository.WarehouseRepository,
		zoneRepo repository.ZoneRepository,
		rackRepo repository.RackRepository,
		shelfRepo repository.ShelfRepository,
		logRepo repository.LogRepository,
	) error {
		zone, err := zoneRepo.GetForUpdate(businessID, in.ZoneID)
		if err != nil {
			return err
		}
		if zone == nil || zone.IsDeleted {
			return domain.ErrNotFound
		}

		existing, err := rackRepo.GetByID(businessID, code)
		if err != nil {
			return err
		}
		if existing != nil && !existing.IsDeleted {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateCode, code)
		}

		siblings, err := rackRepo.ListByZone(businessID, in.ZoneID)
		if err != nil {
			return err
		}
		pos, shifts := domhier.PlanInsert(rackSiblings(siblings), in.Position)
		for _, sh := range shifts {
			if err := rackRepo.UpdatePosition(businessID, sh.ID, sh.Position); err != nil {
				return err
			}
		}

		now := time.Now()
		rack := &entity.Rack{
			ID:          code,
			BusinessID:  businessID,
			ZoneID:      in.ZoneID,
			WarehouseID: zone.WarehouseID,
			Name:        name,
			Position:    pos,
			CreatedAt:   now,
			UpdatedAt:   now,
			CreatedBy:   userID,
		}

		action := entity.LogActionCreated
		if existing != nil {
			rack.Version = existing.Version + 1
			action = entity.LogActionRestored
			if err := rackRepo.Overwrite(rack); err != nil {
				return err
			}
		} else {
			if err := rackRepo.Create(rack); err != nil {
				return err
			}
		}

		if err := zoneRepo.AdjustCounters(businessID, in.ZoneID, 1, 0); err != nil {
			return err
		}
		if err := warehouseRepo.AdjustCounters(businessID, zone.WarehouseID, 0, 1, 0, 0); err != nil {
			return err
		}
		if err := logRepo.Append(&entity.Log{
			BusinessID: businessID,
			EntityType: entity.EntityRack,
			EntityID:   rack.ID,
			Action:     action,
			Changes: map[string]entity.FieldChange{
				"position": {From: nil, To: pos},
			},
			Note:      "rack " + rack.Name,
			CreatedAt: now,
			CreatedBy: userID,
		}); err != nil {
			return err
		}

		out = toRackResponse(rack)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List lista racks activos de una zona, por posición ascendente.
func (uc *RackUseCase) List(ctx context.Context, businessID, zoneID string) (*dto.RackListResponse, error) {
	racks, err := uc.rackRepo.ListByZone(businessID, zoneID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RackResponse, 0, len(racks))
	for _, r := range racks {
		items = append(items, *toRackResponse(r))
	}
	return &dto.RackListResponse{Items: items}, nil
}

// Delete marca el rack como eliminado y cierra el hueco de posición entre
// los hermanos restantes. Falla sin escribir con estanterías activas.
func (uc *RackUseCase) Delete(ctx context.Context, businessID, userID, code string) error {
	code = domhier.NormalizeCode(code)
	if code == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		warehouseRepo repository.WarehouseRepository,
		zoneRepo repository.ZoneRepository,
		rackRepo repository.RackRepository,
		shelfRepo repository.ShelfRepository,
		logRepo repository.LogRepository,
	) error {
		rack, err := rackRepo.GetByID(businessID, code)
		if err != nil {
			return err
		}
		if rack == nil || rack.IsDeleted {
			return domain.ErrNotFound
		}
		if _, err := zoneRepo.GetForUpdate(businessID, rack.ZoneID); err != nil {
			return err
		}
		// Releer bajo el candado de la zona: la posición pudo cambiar.
		rack, err = rackRepo.GetByID(businessID, code)
		if err != nil {
			return err
		}
		if rack == nil || rack.IsDeleted {
			return domain.ErrNotFound
		}

		active, err := shelfRepo.CountActiveByRack(businessID, code)
		if err != nil {
			return err
		}
		if active > 0 {
			return domain.ErrHasActiveChildren
		}

		now := time.Now()
		if err := rackRepo.SoftDelete(businessID, code, now); err != nil {
			return err
		}

		siblings, err := rackRepo.ListByZone(businessID, rack.ZoneID)
		if err != nil {
			return err
		}
		for _, sh := range domhier.PlanRemove(rackSiblings(siblings), rack.Position) {
			if err := rackRepo.UpdatePosition(businessID, sh.ID, sh.Position); err != nil {
				return err
			}
		}

		if err := zoneRepo.AdjustCounters(businessID, rack.ZoneID, -1, 0); err != nil {
			return err
		}
		if err := warehouseRepo.AdjustCounters(businessID, rack.WarehouseID, 0, -1, 0, 0); err != nil {
			return err
		}
		return logRepo.Append(&entity.Log{
			BusinessID: businessID,
			EntityType: entity.EntityRack,
			EntityID:   code,
			Action:     entity.LogActionDeleted,
			Note:       "rack " + rack.Name,
			CreatedAt:  now,
			CreatedBy:  userID,
		})
	})
}

func toRackResponse(r *entity.Rack) *dto.RackResponse {
	if r == nil {
		return nil
	}
	return &dto.RackResponse{
		ID:         r.ID,
		ZoneID:     r.ZoneID,
		Code:       r.ID,
		Name:       r.Name,
		Position:   r.Position,
		ShelfCount: r.ShelfCount,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// rackSiblings proyecta racks a pares (ID, posición) para el asignador.
func rackSiblings(racks []*entity.Rack) []domhier.Sibling {
	out := make([]domhier.Sibling, 0, len(racks))
	for _, r := range racks {
		out = append(out, domhier.Sibling{ID: r.ID, Position: r.Position})
	}
	return out
}

