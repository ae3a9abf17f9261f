package stock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// PutAwayUseCase ubica unidades de una nota de recepción (GRN) en una
// estantería y retira unidades hacia un pedido (pick), de forma
// transaccional: UPCs en bloque + colocación + movimiento + bitácora,
// todo o nada, con la fila de la colocación bloqueada (SELECT FOR UPDATE).
type PutAwayUseCase struct {
	txRunner TxRunner
}

// NewPutAwayUseCase construye el caso de uso.
func NewPutAwayUseCase(txRunner TxRunner) *PutAwayUseCase {
	return &PutAwayUseCase{txRunner: txRunner}
}

// PutAway crea una unidad física (UPC) por cada Units con estado inbound,
// suma la cantidad a la colocación determinística producto-estantería y
// registra el movimiento inbound con la instantánea de la ubicación destino.
func (uc *PutAwayUseCase) PutAway(ctx context.Context, businessID, userID string, in dto.PutAwayRequest) error {
	if in.Units <= 0 {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunStock(ctx, func(
		placementRepo repository.PlacementRepository,
		upcRepo repository.UPCRepository,
		movementRepo repository.MovementRepository,
		shelfRepo repository.ShelfRepository,
		logRepo repository.LogRepository,
	) error {
		shelf, err := shelfRepo.GetByID(businessID, in.ShelfID)
		if err != nil {
			return err
		}
		if shelf == nil || shelf.IsDeleted {
			return domain.ErrNotFound
		}

		now := time.Now()
		qty := decimal.NewFromInt(int64(in.Units))

		upcs := make([]*entity.UPC, in.Units)
		for i := range upcs {
			upcs[i] = &entity.UPC{
				ID:          uuid.New().String(),
				BusinessID:  businessID,
				ProductID:   in.ProductID,
				GRNID:       in.GRNID,
				PutAway:     entity.PutAwayInbound,
				WarehouseID: shelf.WarehouseID,
				ZoneID:      shelf.ZoneID,
				RackID:      shelf.RackID,
				ShelfID:     shelf.ID,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
		}
		if err := upcRepo.BulkCreate(upcs); err != nil {
			return err
		}

		placementID := entity.PlacementID(in.ProductID, in.ShelfID)
		placement, err := placementRepo.GetForUpdate(businessID, placementID)
		if err != nil {
			return err
		}
		if placement == nil {
			placement = &entity.Placement{
				ID:          placementID,
				BusinessID:  businessID,
				ProductID:   in.ProductID,
				ShelfID:     shelf.ID,
				RackID:      shelf.RackID,
				ZoneID:      shelf.ZoneID,
				WarehouseID: shelf.WarehouseID,
				Quantity:    decimal.Zero,
				CreatedAt:   now,
			}
		}
		placement.Quantity = placement.Quantity.Add(qty)
		placement.MovementCount++
		placement.LastMovementAt = &now
		placement.UpdatedAt = now
		if err := placementRepo.Upsert(placement); err != nil {
			return err
		}

		if err := movementRepo.Create(&entity.Movement{
			ID:         uuid.New().String(),
			BusinessID: businessID,
			ProductID:  in.ProductID,
			GRNID:      in.GRNID,
			Type:       entity.MovementTypeInbound,
			Quantity:   qty,
			To: entity.MovementLocation{
				WarehouseID: shelf.WarehouseID,
				ZoneID:      shelf.ZoneID,
				RackID:      shelf.RackID,
				ShelfID:     shelf.ID,
			},
			Note:      in.Note,
			CreatedAt: now,
			CreatedBy: userID,
		}); err != nil {
			return err
		}

		return logRepo.Append(&entity.Log{
			BusinessID: businessID,
			EntityType: entity.EntityPlacement,
			EntityID:   placementID,
			Action:     entity.LogActionUpdated,
			Changes: map[string]entity.FieldChange{
				"quantity": {From: placement.Quantity.Sub(qty), To: placement.Quantity},
			},
			Note:      "put-away GRN " + in.GRNID,
			CreatedAt: now,
			CreatedBy: userID,
		})
	})
}

// Pick retira unidades de una estantería hacia un pedido: resta la cantidad
// de la colocación (nunca por debajo de cero), marca las UPCs inbound como
// outbound con el pedido/tienda propietaria y registra el movimiento.
func (uc *PutAwayUseCase) Pick(ctx context.Context, businessID, userID string, in dto.PickRequest) error {
	if in.Units <= 0 {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.RunStock(ctx, func(
		placementRepo repository.PlacementRepository,
		upcRepo repository.UPCRepository,
		movementRepo repository.MovementRepository,
		shelfRepo repository.ShelfRepository,
		logRepo repository.LogRepository,
	) error {
		placementID := entity.PlacementID(in.ProductID, in.ShelfID)
		placement, err := placementRepo.GetForUpdate(businessID, placementID)
		if err != nil {
			return err
		}
		if placement == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		qty := decimal.NewFromInt(int64(in.Units))
		if placement.Quantity.LessThan(qty) {
			return domain.ErrInsufficientStock
		}

		marked, err := upcRepo.MarkOutbound(businessID, in.ProductID, in.ShelfID, in.Units, in.OrderID, in.StoreID, now)
		if err != nil {
			return err
		}
		if marked < in.Units {
			return domain.ErrInsufficientStock
		}

		placement.Quantity = placement.Quantity.Sub(qty)
		placement.MovementCount++
		placement.LastMovementAt = &now
		placement.UpdatedAt = now
		if err := placementRepo.Upsert(placement); err != nil {
			return err
		}

		if err := movementRepo.Create(&entity.Movement{
			ID:         uuid.New().String(),
			BusinessID: businessID,
			ProductID:  in.ProductID,
			Type:       entity.MovementTypeOutbound,
			Quantity:   qty.Neg(),
			From: entity.MovementLocation{
				WarehouseID: placement.WarehouseID,
				ZoneID:      placement.ZoneID,
				RackID:      placement.RackID,
				ShelfID:     placement.ShelfID,
			},
			Note:      in.Note,
			CreatedAt: now,
			CreatedBy: userID,
		}); err != nil {
			return err
		}

		return logRepo.Append(&entity.Log{
			BusinessID: businessID,
			EntityType: entity.EntityPlacement,
			EntityID:   placementID,
			Action:     entity.LogActionUpdated,
			Changes: map[string]entity.FieldChange{
				"quantity": {From: placement.Quantity.Add(qty), To: placement.Quantity},
			},
			Note:      "pick pedido " + in.OrderID,
			CreatedAt: now,
			CreatedBy: userID,
		})
	})
}
