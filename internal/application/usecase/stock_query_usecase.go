package usecase

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// StockQueryUseCase lecturas de colocaciones, unidades físicas y movimientos
// (solo listados; las mutaciones pasan por el caso de uso transaccional de
// stock).
type StockQueryUseCase struct {
	placementRepo repository.PlacementRepository
	upcRepo       repository.UPCRepository
	movementRepo  repository.MovementRepository
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(
	placementRepo repository.PlacementRepository,
	upcRepo repository.UPCRepository,
	movementRepo repository.MovementRepository,
) *StockQueryUseCase {
	return &StockQueryUseCase{
		placementRepo: placementRepo,
		upcRepo:       upcRepo,
		movementRepo:  movementRepo,
	}
}

// ListPlacements lista colocaciones filtrables por estantería y producto.
func (uc *StockQueryUseCase) ListPlacements(ctx context.Context, businessID string, f repository.PlacementFilter) (*dto.PlacementListResponse, error) {
	placements, err := uc.placementRepo.List(businessID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PlacementResponse, 0, len(placements))
	for _, p := range placements {
		items = append(items, toPlacementResponse(p))
	}
	return &dto.PlacementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}, nil
}

// ListUPCs lista unidades físicas filtrables por GRN y estado de put-away.
func (uc *StockQueryUseCase) ListUPCs(ctx context.Context, businessID string, f repository.UPCFilter) (*dto.UPCListResponse, error) {
	upcs, err := uc.upcRepo.List(businessID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UPCResponse, 0, len(upcs))
	for _, u := range upcs {
		items = append(items, dto.UPCResponse{
			ID:          u.ID,
			ProductID:   u.ProductID,
			GRNID:       u.GRNID,
			PutAway:     u.PutAway,
			WarehouseID: u.WarehouseID,
			ZoneID:      u.ZoneID,
			RackID:      u.RackID,
			ShelfID:     u.ShelfID,
			OrderID:     u.OrderID,
			StoreID:     u.StoreID,
			CreatedAt:   u.CreatedAt,
			UpdatedAt:   u.UpdatedAt,
		})
	}
	return &dto.UPCListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}, nil
}

// ListMovements lista movimientos filtrables por producto y tipo.
func (uc *StockQueryUseCase) ListMovements(ctx context.Context, businessID string, f repository.MovementFilter) (*dto.MovementListResponse, error) {
	movements, err := uc.movementRepo.List(businessID, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, dto.MovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			GRNID:     m.GRNID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			From:      toLocationResponse(m.From),
			To:        toLocationResponse(m.To),
			Note:      m.Note,
			CreatedAt: m.CreatedAt,
			CreatedBy: m.CreatedBy,
		})
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset},
	}, nil
}

func toPlacementResponse(p *entity.Placement) dto.PlacementResponse {
	return dto.PlacementResponse{
		ID:             p.ID,
		ProductID:      p.ProductID,
		ShelfID:        p.ShelfID,
		RackID:         p.RackID,
		ZoneID:         p.ZoneID,
		WarehouseID:    p.WarehouseID,
		Quantity:       p.Quantity,
		MovementCount:  p.MovementCount,
		LastMovementAt: p.LastMovementAt,
	}
}

func toLocationResponse(l entity.MovementLocation) dto.MovementLocationResponse {
	return dto.MovementLocationResponse{
		WarehouseID: l.WarehouseID,
		ZoneID:      l.ZoneID,
		RackID:      l.RackID,
		ShelfID:     l.ShelfID,
	}
}
