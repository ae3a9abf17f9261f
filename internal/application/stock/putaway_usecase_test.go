package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/stock"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

const testBusiness = "B1"
const testUser = "U1"

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type stockStore struct {
	shelves    map[string]*entity.Shelf
	placements map[string]*entity.Placement
	upcs       map[string]*entity.UPC
	movements  []*entity.Movement
	logs       []*entity.Log
}

func newStockStore() *stockStore {
	s := &stockStore{
		shelves:    map[string]*entity.Shelf{},
		placements: map[string]*entity.Placement{},
		upcs:       map[string]*entity.UPC{},
	}
	s.shelves["S1"] = &entity.Shelf{
		ID: "S1", BusinessID: testBusiness, RackID: "R1", ZoneID: "Z1", WarehouseID: "W1",
		Name: "Shelf 1", Position: 1,
	}
	return s
}

type fakePlacementRepo struct{ s *stockStore }

func (r *fakePlacementRepo) Get(_, id string) (*entity.Placement, error) {
	p, ok := r.s.placements[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r *fakePlacementRepo) GetForUpdate(b, id string) (*entity.Placement, error) { return r.Get(b, id) }
func (r *fakePlacementRepo) Upsert(p *entity.Placement) error {
	cp := *p
	r.s.placements[p.ID] = &cp
	return nil
}
func (r *fakePlacementRepo) List(string, repository.PlacementFilter) ([]*entity.Placement, error) {
	return nil, nil
}

type fakeUPCRepo struct{ s *stockStore }

func (r *fakeUPCRepo) BulkCreate(upcs []*entity.UPC) error {
	for _, u := range upcs {
		cp := *u
		r.s.upcs[u.ID] = &cp
	}
	return nil
}
func (r *fakeUPCRepo) List(string, repository.UPCFilter) ([]*entity.UPC, error) { return nil, nil }
func (r *fakeUPCRepo) MarkOutbound(_, productID, shelfID string, n int, orderID, storeID string, at time.Time) (int, error) {
	marked := 0
	for _, u := range r.s.upcs {
		if marked == n {
			break
		}
		if u.ProductID == productID && u.ShelfID == shelfID && u.PutAway == entity.PutAwayInbound {
			u.PutAway = entity.PutAwayOutbound
			u.OrderID, u.StoreID, u.UpdatedAt = orderID, storeID, at
			marked++
		}
	}
	return marked, nil
}

type fakeMovementRepo struct{ s *stockStore }

func (r *fakeMovementRepo) Create(m *entity.Movement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}
func (r *fakeMovementRepo) List(string, repository.MovementFilter) ([]*entity.Movement, error) {
	return r.s.movements, nil
}

type fakeShelfRepo struct{ s *stockStore }

func (r *fakeShelfRepo) Create(*entity.Shelf) error { return nil }
func (r *fakeShelfRepo) GetByID(_, id string) (*entity.Shelf, error) {
	sh, ok := r.s.shelves[id]
	if !ok {
		return nil, nil
	}
	cp := *sh
	return &cp, nil
}
func (r *fakeShelfRepo) ListByRack(string, string) ([]*entity.Shelf, error)  { return nil, nil }
func (r *fakeShelfRepo) Update(*entity.Shelf) error                          { return nil }
func (r *fakeShelfRepo) UpdatePosition(string, string, int) error            { return nil }
func (r *fakeShelfRepo) UpdateParent(*entity.Shelf) error                    { return nil }
func (r *fakeShelfRepo) SoftDelete(string, string, time.Time) error          { return nil }
func (r *fakeShelfRepo) CountActiveByRack(string, string) (int, error)       { return 0, nil }
func (r *fakeShelfRepo) UpdateAncestorsByRack(string, string, string, string) error {
	return nil
}

type fakeLogRepo struct{ s *stockStore }

func (r *fakeLogRepo) Append(l *entity.Log) error {
	cp := *l
	r.s.logs = append(r.s.logs, &cp)
	return nil
}
func (r *fakeLogRepo) List(string, repository.LogFilter) ([]*entity.Log, error) { return r.s.logs, nil }

type fakeStockTxRunner struct{ s *stockStore }

func (t *fakeStockTxRunner) RunStock(_ context.Context, fn func(
	repository.PlacementRepository,
	repository.UPCRepository,
	repository.MovementRepository,
	repository.ShelfRepository,
	repository.LogRepository,
) error) error {
	return fn(&fakePlacementRepo{t.s}, &fakeUPCRepo{t.s}, &fakeMovementRepo{t.s}, &fakeShelfRepo{t.s}, &fakeLogRepo{t.s})
}

func countInbound(s *stockStore) int {
	n := 0
	for _, u := range s.upcs {
		if u.PutAway == entity.PutAwayInbound {
			n++
		}
	}
	return n
}

// ──────────────────────────────────────────────────────────────────────────────
// Put-away
// ──────────────────────────────────────────────────────────────────────────────

func TestPutAway_CreaUnidadesColocacionYMovimiento(t *testing.T) {
	s := newStockStore()
	uc := stock.NewPutAwayUseCase(&fakeStockTxRunner{s})

	err := uc.PutAway(context.Background(), testBusiness, testUser, dto.PutAwayRequest{
		GRNID: "GRN-1", ProductID: "P1", ShelfID: "S1", Units: 5,
	})
	require.NoError(t, err)

	// Una unidad física por cada units, todas inbound y ubicadas en S1.
	require.Len(t, s.upcs, 5)
	for _, u := range s.upcs {
		assert.Equal(t, entity.PutAwayInbound, u.PutAway)
		assert.Equal(t, "S1", u.ShelfID)
		assert.Equal(t, "GRN-1", u.GRNID)
	}

	// La colocación determinística acumula la cantidad.
	p := s.placements[entity.PlacementID("P1", "S1")]
	require.NotNil(t, p)
	assert.True(t, p.Quantity.Equal(decimal.NewFromInt(5)), "cantidad: %s", p.Quantity)
	assert.Equal(t, 1, p.MovementCount)

	// Movimiento inbound con instantánea de destino.
	require.Len(t, s.movements, 1)
	m := s.movements[0]
	assert.Equal(t, entity.MovementTypeInbound, m.Type)
	assert.Equal(t, "S1", m.To.ShelfID)
	assert.Equal(t, "W1", m.To.WarehouseID)
	assert.Empty(t, m.From.ShelfID)

	require.Len(t, s.logs, 1)
	assert.Equal(t, entity.EntityPlacement, s.logs[0].EntityType)
}

func TestPutAway_SegundaGRN_AcumulaSobreLaMismaColocacion(t *testing.T) {
	s := newStockStore()
	uc := stock.NewPutAwayUseCase(&fakeStockTxRunner{s})

	require.NoError(t, uc.PutAway(context.Background(), testBusiness, testUser, dto.PutAwayRequest{
		GRNID: "GRN-1", ProductID: "P1", ShelfID: "S1", Units: 3,
	}))
	require.NoError(t, uc.PutAway(context.Background(), testBusiness, testUser, dto.PutAwayRequest{
		GRNID: "GRN-2", ProductID: "P1", ShelfID: "S1", Units: 2,
	}))

	require.Len(t, s.placements, 1, "misma colocación producto-estantería")
	p := s.placements[entity.PlacementID("P1", "S1")]
	assert.True(t, p.Quantity.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, 2, p.MovementCount)
}

func TestPutAway_EstanteriaInexistente(t *testing.T) {
	s := newStockStore()
	uc := stock.NewPutAwayUseCase(&fakeStockTxRunner{s})

	err := uc.PutAway(context.Background(), testBusiness, testUser, dto.PutAwayRequest{
		GRNID: "GRN-1", ProductID: "P1", ShelfID: "NO-EXISTE", Units: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, s.upcs)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pick
// ──────────────────────────────────────────────────────────────────────────────

func TestPick_DescuentaYMarcaUnidades(t *testing.T) {
	s := newStockStore()
	uc := stock.NewPutAwayUseCase(&fakeStockTxRunner{s})
	require.NoError(t, uc.PutAway(context.Background(), testBusiness, testUser, dto.PutAwayRequest{
		GRNID: "GRN-1", ProductID: "P1", ShelfID: "S1", Units: 5,
	}))

	err := uc.Pick(context.Background(), testBusiness, testUser, dto.PickRequest{
		ProductID: "P1", ShelfID: "S1", Units: 2, OrderID: "ORD-9", StoreID: "T1",
	})
	require.NoError(t, err)

	p := s.placements[entity.PlacementID("P1", "S1")]
	assert.True(t, p.Quantity.Equal(decimal.NewFromInt(3)), "cantidad: %s", p.Quantity)
	assert.Equal(t, 3, countInbound(s), "quedan 3 unidades inbound")

	// Las unidades marcadas llevan el pedido y la tienda propietaria.
	outbound := 0
	for _, u := range s.upcs {
		if u.PutAway == entity.PutAwayOutbound {
			outbound++
			assert.Equal(t, "ORD-9", u.OrderID)
			assert.Equal(t, "T1", u.StoreID)
		}
	}
	assert.Equal(t, 2, outbound)

	// El movimiento outbound es negativo y con instantánea de origen.
	last := s.movements[len(s.movements)-1]
	assert.Equal(t, entity.MovementTypeOutbound, last.Type)
	assert.True(t, last.Quantity.Equal(decimal.NewFromInt(-2)))
	assert.Equal(t, "S1", last.From.ShelfID)
}

func TestPick_StockInsuficiente_FallaSinEscribir(t *testing.T) {
	s := newStockStore()
	uc := stock.NewPutAwayUseCase(&fakeStockTxRunner{s})
	require.NoError(t, uc.PutAway(context.Background(), testBusiness, testUser, dto.PutAwayRequest{
		GRNID: "GRN-1", ProductID: "P1", ShelfID: "S1", Units: 2,
	}))

	err := uc.Pick(context.Background(), testBusiness, testUser, dto.PickRequest{
		ProductID: "P1", ShelfID: "S1", Units: 3, OrderID: "ORD-9",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	p := s.placements[entity.PlacementID("P1", "S1")]
	assert.True(t, p.Quantity.Equal(decimal.NewFromInt(2)), "la cantidad no cambia")
	assert.Equal(t, 2, countInbound(s), "ninguna unidad quedó marcada")
}

func TestPick_SinColocacion(t *testing.T) {
	s := newStockStore()
	uc := stock.NewPutAwayUseCase(&fakeStockTxRunner{s})

	err := uc.Pick(context.Background(), testBusiness, testUser, dto.PickRequest{
		ProductID: "P1", ShelfID: "S1", Units: 1, OrderID: "ORD-1",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
