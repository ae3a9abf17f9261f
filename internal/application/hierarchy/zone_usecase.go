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

// ZoneUseCase casos de uso para zonas: crear (con reutilización de código
// tras soft-delete), listar y eliminar (bloqueado con racks activos).
type ZoneUseCase struct {
	txRunner TxRunner
	zoneRepo repository.ZoneRepository
	rackRepo repository.RackRepository
}

// NewZoneUseCase construye el caso de uso.
func NewZoneUseCase(txRunner TxRunner, zoneRepo repository.ZoneRepository, rackRepo repository.RackRepository) *ZoneUseCase {
	return &ZoneUseCase{txRunner: txRunner, zoneRepo: zoneRepo, rackRepo: rackRepo}
}

// Create crea una zona. El código se normaliza (trim + mayúsculas) y es el ID
// del documento: si una zona ACTIVA ya lo tiene, conflicto; si lo tiene una
// zona eliminada, se reescribe esa fila con estadísticas en cero (recreación,
// no restauración de los valores previos).
func (uc *ZoneUseCase) Create(ctx context.Context, businessID, userID string, in dto.CreateZoneRequest) (*dto.ZoneResponse, error) {
	name := strings.TrimSpace(in.Name)
	code := domhier.NormalizeCode(in.Code)
	if name == "" || code == "" {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.ZoneResponse
	err := uc.txRunner.Run(ctx, func(
		warehouseRepo repository.WarehouseRepository,
		zoneRepo repository.ZoneRepository,
		rackRepo repository.RackRepository,
		shelfRepo repository.ShelfRepository,
		logRepo repository.LogRepository,
	) error {
		warehouse, err := warehouseRepo.GetForUpdate(businessID, in.WarehouseID)
		if err != nil {
			return err
		}
		if warehouse == nil || warehouse.IsDeleted {
			return domain.ErrNotFound
		}

		existing, err := zoneRepo.GetByID(businessID, code)
		if err != nil {
			return err
		}
		if existing != nil && !existing.IsDeleted {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateCode, code)
		}

		now := time.Now()
		zone := &entity.Zone{
			ID:          code,
			BusinessID:  businessID,
			WarehouseID: in.WarehouseID,
			Name:        name,
			Description: strings.TrimSpace(in.Description),
			CreatedAt:   now,
			UpdatedAt:   now,
			CreatedBy:   userID,
		}

		action := entity.LogActionCreated
		if existing != nil {
			// Reutilización de código: reescribe la fila eliminada.
			zone.Version = existing.Version + 1
			action = entity.LogActionRestored
			if err := zoneRepo.Overwrite(zone); err != nil {
				return err
			}
		} else {
			if err := zoneRepo.Create(zone); err != nil {
				return err
			}
		}

		if err := warehouseRepo.AdjustCounters(businessID, in.WarehouseID, 1, 0, 0, 0); err != nil {
			return err
		}
		if err := logRepo.Append(&entity.Log{
			BusinessID: businessID,
			EntityType: entity.EntityZone,
			EntityID:   zone.ID,
			Action:     action,
			Note:       "zona " + zone.Name,
			CreatedAt:  now,
			CreatedBy:  userID,
		}); err != nil {
			return err
		}

		out = toZoneResponse(zone)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List lista zonas activas de una bodega, ordenadas por nombre.
func (uc *ZoneUseCase) List(ctx context.Context, businessID, warehouseID string) (*dto.ZoneListResponse, error) {
	zones, err := uc.zoneRepo.ListByWarehouse(businessID, warehouseID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ZoneResponse, 0, len(zones))
	for _, z := range zones {
		items = append(items, *toZoneResponse(z))
	}
	return &dto.ZoneListResponse{Items: items}, nil
}

// Delete marca la zona como eliminada. Falla sin escribir si la zona tiene
// racks activos.
func (uc *ZoneUseCase) Delete(ctx context.Context, businessID, userID, code string) error {
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
		zone, err := zoneRepo.GetForUpdate(businessID, code)
		if err != nil {
			return err
		}
		if zone == nil || zone.IsDeleted {
			return domain.ErrNotFound
		}
		active, err := rackRepo.CountActiveByZone(businessID, code)
		if err != nil {
			return err
		}
		if active > 0 {
			return domain.ErrHasActiveChildren
		}

		now := time.Now()
		if err := zoneRepo.SoftDelete(businessID, code, now); err != nil {
			return err
		}
		if err := warehouseRepo.AdjustCounters(businessID, zone.WarehouseID, -1, 0, 0, 0); err != nil {
			return err
		}
		return logRepo.Append(&entity.Log{
			BusinessID: businessID,
			EntityType: entity.EntityZone,
			EntityID:   code,
			Action:     entity.LogActionDeleted,
			Note:       "zona " + zone.Name,
			CreatedAt:  now,
			CreatedBy:  userID,
		})
	})
}

func toZoneResponse(z *entity.Zone) *dto.ZoneResponse {
	if z == nil {
		return nil
	}
	return &dto.ZoneResponse{
		ID:          z.ID,
		WarehouseID: z.WarehouseID,
		Code:        z.ID,
		Name:        z.Name,
		Description: z.Description,
		RackCount:   z.RackCount,
		ShelfCount:  z.ShelfCount,
		CreatedAt:   z.CreatedAt,
		UpdatedAt:   z.UpdatedAt,
	}
}
