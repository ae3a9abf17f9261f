package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/hierarchy"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	domhier "github.com/jhoicas/Almacen-api/internal/domain/hierarchy"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// WarehouseUseCase casos de uso CRUD para bodegas. La eliminación es soft y
// se bloquea mientras la bodega tenga zonas activas.
type WarehouseUseCase struct {
	txRunner      hierarchy.TxRunner
	warehouseRepo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(txRunner hierarchy.TxRunner, warehouseRepo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{txRunner: txRunner, warehouseRepo: warehouseRepo}
}

// Create crea una nueva bodega.
func (uc *WarehouseUseCase) Create(ctx context.Context, businessID, userID string, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	var out *dto.WarehouseResponse
	err := uc.txRunner.Run(ctx, func(
		warehouseRepo repository.WarehouseRepository,
		zoneRepo repository.ZoneRepository,
		rackRepo repository.RackRepository,
		shelfRepo repository.ShelfRepository,
		logRepo repository.LogRepository,
	) error {
		now := time.Now()
		warehouse := &entity.Warehouse{
			ID:         uuid.New().String(),
			BusinessID: businessID,
			Name:       name,
			Code:       domhier.NormalizeCode(in.Code),
			Address:    strings.TrimSpace(in.Address),
			Capacity:   in.Capacity,
			CreatedAt:  now,
			UpdatedAt:  now,
			CreatedBy:  userID,
		}
		if err := warehouseRepo.Create(warehouse); err != nil {
			return err
		}
		if err := logRepo.Append(&entity.Log{
			BusinessID: businessID,
			EntityType: entity.EntityWarehouse,
			EntityID:   warehouse.ID,
			Action:     entity.LogActionCreated,
			Note:       "bodega " + warehouse.Name,
			CreatedAt:  now,
			CreatedBy:  userID,
		}); err != nil {
			return err
		}
		out = toWarehouseResponse(warehouse)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID obtiene una bodega por ID.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, businessID, id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.warehouseRepo.GetByID(businessID, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || warehouse.IsDeleted {
		return nil, domain.ErrNotFound
	}
	return toWarehouseResponse(warehouse), nil
}

// Update actualiza los campos editables de una bodega.
func (uc *WarehouseUseCase) Update(ctx context.Context, businessID, userID, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	var out *dto.WarehouseResponse
	err := uc.txRunner.Run(ctx, func(
		warehouseRepo repository.WarehouseRepository,
		zoneRepo repository.ZoneRepository,
		rackRepo repository.RackRepository,
		shelfRepo repository.ShelfRepository,
		logRepo repository.LogRepository,
	) error {
		warehouse, err := warehouseRepo.GetForUpdate(businessID, id)
		if err != nil {
			return err
		}
		if warehouse == nil || warehouse.IsDeleted {
			return domain.ErrNotFound
		}
		changes := map[string]entity.FieldChange{}
		if in.Name != nil && strings.TrimSpace(*in.Name) != "" && *in.Name != warehouse.Name {
			changes["name"] = entity.FieldChange{From: warehouse.Name, To: *in.Name}
			warehouse.Name = strings.TrimSpace(*in.Name)
		}
		if in.Address != nil && *in.Address != warehouse.Address {
			changes["address"] = entity.FieldChange{From: warehouse.Address, To: *in.Address}
			warehouse.Address = *in.Address
		}
		if in.Capacity != nil && *in.Capacity != warehouse.Capacity {
			changes["capacity"] = entity.FieldChange{From: warehouse.Capacity, To: *in.Capacity}
			warehouse.Capacity = *in.Capacity
		}
		if len(changes) > 0 {
			now := time.Now()
			warehouse.UpdatedAt = now
			if err := warehouseRepo.Update(warehouse); err != nil {
				return err
			}
			if err := logRepo.Append(&entity.Log{
				BusinessID: businessID,
				EntityType: entity.EntityWarehouse,
				EntityID:   id,
				Action:     entity.LogActionUpdated,
				Changes:    changes,
				CreatedAt:  now,
				CreatedBy:  userID,
			}); err != nil {
				return err
			}
		}
		out = toWarehouseResponse(warehouse)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List lista bodegas del negocio con paginación, por nombre ascendente.
func (uc *WarehouseUseCase) List(ctx context.Context, businessID string, limit, offset int) (*dto.WarehouseListResponse, error) {
	list, err := uc.warehouseRepo.ListByBusiness(businessID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete marca la bodega como eliminada. Falla sin escribir mientras tenga
// zonas activas.
func (uc *WarehouseUseCase) Delete(ctx context.Context, businessID, userID, id string) error {
	return uc.txRunner.Run(ctx, func(
		warehouseRepo repository.WarehouseRepository,
		zoneRepo repository.ZoneRepository,
		rackRepo repository.RackRepository,
		shelfRepo repository.ShelfRepository,
		logRepo repository.LogRepository,
	) error {
		warehouse, err := warehouseRepo.GetForUpdate(businessID, id)
		if err != nil {
			return err
		}
		if warehouse == nil || warehouse.IsDeleted {
			return domain.ErrNotFound
		}
		active, err := zoneRepo.CountActiveByWarehouse(businessID, id)
		if err != nil {
			return err
		}
		if active > 0 {
			return domain.ErrHasActiveChildren
		}
		now := time.Now()
		if err := warehouseRepo.SoftDelete(businessID, id, now); err != nil {
			return err
		}
		return logRepo.Append(&entity.Log{
			BusinessID: businessID,
			EntityType: entity.EntityWarehouse,
			EntityID:   id,
			Action:     entity.LogActionDeleted,
			Note:       "bodega " + warehouse.Name,
			CreatedAt:  now,
			CreatedBy:  userID,
		})
	})
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:           w.ID,
		BusinessID:   w.BusinessID,
		Name:         w.Name,
		Code:         w.Code,
		Address:      w.Address,
		Capacity:     w.Capacity,
		ZoneCount:    w.ZoneCount,
		RackCount:    w.RackCount,
		ShelfCount:   w.ShelfCount,
		ProductCount: w.ProductCount,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
}
