package hierarchy_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	apphier "github.com/jhoicas/Almacen-api/internal/application/hierarchy"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

const testBusiness = "B1"
const testUser = "U1"

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	warehouses map[string]*entity.Warehouse
	zones      map[string]*entity.Zone
	racks      map[string]*entity.Rack
	shelves    map[string]*entity.Shelf
	logs       []*entity.Log
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		warehouses: map[string]*entity.Warehouse{},
		zones:      map[string]*entity.Zone{},
		racks:      map[string]*entity.Rack{},
		shelves:    map[string]*entity.Shelf{},
	}
}

type fakeWarehouseRepo struct{ s *fakeStore }

func (r *fakeWarehouseRepo) Create(w *entity.Warehouse) error { cp := *w; r.s.warehouses[w.ID] = &cp; return nil }
func (r *fakeWarehouseRepo) GetByID(_, id string) (*entity.Warehouse, error) {
	w, ok := r.s.warehouses[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}
func (r *fakeWarehouseRepo) GetForUpdate(b, id string) (*entity.Warehouse, error) { return r.GetByID(b, id) }
func (r *fakeWarehouseRepo) Update(w *entity.Warehouse) error { cp := *w; r.s.warehouses[w.ID] = &cp; return nil }
func (r *fakeWarehouseRepo) ListByBusiness(string, int, int) ([]*entity.Warehouse, error) { return nil, nil }
func (r *fakeWarehouseRepo) SoftDelete(_, id string, at time.Time) error {
	if w, ok := r.s.warehouses[id]; ok {
		w.IsDeleted, w.DeletedAt = true, &at
	}
	return nil
}
func (r *fakeWarehouseRepo) AdjustCounters(_, id string, zones, racks, shelves, products int) error {
	if w, ok := r.s.warehouses[id]; ok {
		w.ZoneCount += zones
		w.RackCount += racks
		w.ShelfCount += shelves
		w.ProductCount += products
	}
	return nil
}

type fakeZoneRepo struct{ s *fakeStore }

func (r *fakeZoneRepo) Create(z *entity.Zone) error    { cp := *z; r.s.zones[z.ID] = &cp; return nil }
func (r *fakeZoneRepo) Overwrite(z *entity.Zone) error { cp := *z; r.s.zones[z.ID] = &cp; return nil }
func (r *fakeZoneRepo) GetByID(_, id string) (*entity.Zone, error) {
	z, ok := r.s.zones[id]
	if !ok {
		return nil, nil
	}
	cp := *z
	return &cp, nil
}
func (r *fakeZoneRepo) GetForUpdate(b, id string) (*entity.Zone, error) { return r.GetByID(b, id) }
func (r *fakeZoneRepo) ListByWarehouse(_, warehouseID string) ([]*entity.Zone, error) {
	var out []*entity.Zone
	for _, z := range r.s.zones {
		if z.WarehouseID == warehouseID && !z.IsDeleted {
			cp := *z
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
func (r *fakeZoneRepo) SoftDelete(_, id string, at time.Time) error {
	if z, ok := r.s.zones[id]; ok {
		z.IsDeleted, z.DeletedAt = true, &at
	}
	return nil
}
func (r *fakeZoneRepo) CountActiveByWarehouse(_, warehouseID string) (int, error) {
	n := 0
	for _, z := range r.s.zones {
		if z.WarehouseID == warehouseID && !z.IsDeleted {
			n++
		}
	}
	return n, nil
}
func (r *fakeZoneRepo) AdjustCounters(_, id string, racks, shelves int) error {
	if z, ok := r.s.zones[id]; ok {
		z.RackCount += racks
		z.ShelfCount += shelves
	}
	return nil
}

type fakeRackRepo struct{ s *fakeStore }

func (r *fakeRackRepo) Create(rk *entity.Rack) error    { cp := *rk; r.s.racks[rk.ID] = &cp; return nil }
func (r *fakeRackRepo) Overwrite(rk *entity.Rack) error { cp := *rk; r.s.racks[rk.ID] = &cp; return nil }
func (r *fakeRackRepo) GetByID(_, id string) (*entity.Rack, error) {
	rk, ok := r.s.racks[id]
	if !ok {
		return nil, nil
	}
	cp := *rk
	return &cp, nil
}
func (r *fakeRackRepo) GetForUpdate(b, id string) (*entity.Rack, error) { return r.GetByID(b, id) }
func (r *fakeRackRepo) ListByZone(_, zoneID string) ([]*entity.Rack, error) {
	var out []*entity.Rack
	for _, rk := range r.s.racks {
		if rk.ZoneID == zoneID && !rk.IsDeleted {
			cp := *rk
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}
func (r *fakeRackRepo) UpdatePosition(_, id string, position int) error {
	if rk, ok := r.s.racks[id]; ok {
		rk.Position = position
	}
	return nil
}
func (r *fakeRackRepo) UpdateParent(rk *entity.Rack) error {
	if cur, ok := r.s.racks[rk.ID]; ok {
		cur.ZoneID, cur.WarehouseID, cur.Position, cur.UpdatedAt = rk.ZoneID, rk.WarehouseID, rk.Position, rk.UpdatedAt
	}
	return nil
}
func (r *fakeRackRepo) SoftDelete(_, id string, at time.Time) error {
	if rk, ok := r.s.racks[id]; ok {
		rk.IsDeleted, rk.DeletedAt = true, &at
	}
	return nil
}
func (r *fakeRackRepo) CountActiveByZone(_, zoneID string) (int, error) {
	n := 0
	for _, rk := range r.s.racks {
		if rk.ZoneID == zoneID && !rk.IsDeleted {
			n++
		}
	}
	return n, nil
}
func (r *fakeRackRepo) AdjustCounters(_, id string, shelves int) error {
	if rk, ok := r.s.racks[id]; ok {
		rk.ShelfCount += shelves
	}
	return nil
}

type fakeShelfRepo struct{ s *fakeStore }

func (r *fakeShelfRepo) Create(sh *entity.Shelf) error { cp := *sh; r.s.shelves[sh.ID] = &cp; return nil }
func (r *fakeShelfRepo) GetByID(_, id string) (*entity.Shelf, error) {
	sh, ok := r.s.shelves[id]
	if !ok {
		return nil, nil
	}
	cp := *sh
	return &cp, nil
}
func (r *fakeShelfRepo) ListByRack(_, rackID string) ([]*entity.Shelf, error) {
	var out []*entity.Shelf
	for _, sh := range r.s.shelves {
		if sh.RackID == rackID && !sh.IsDeleted {
			cp := *sh
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}
func (r *fakeShelfRepo) Update(sh *entity.Shelf) error { cp := *sh; r.s.shelves[sh.ID] = &cp; return nil }
func (r *fakeShelfRepo) UpdatePosition(_, id string, position int) error {
	if sh, ok := r.s.shelves[id]; ok {
		sh.Position = position
	}
	return nil
}
func (r *fakeShelfRepo) UpdateParent(sh *entity.Shelf) error {
	if cur, ok := r.s.shelves[sh.ID]; ok {
		cur.RackID, cur.ZoneID, cur.WarehouseID = sh.RackID, sh.ZoneID, sh.WarehouseID
		cur.Position, cur.UpdatedAt = sh.Position, sh.UpdatedAt
	}
	return nil
}
func (r *fakeShelfRepo) UpdateAncestorsByRack(_, rackID, zoneID, warehouseID string) error {
	for _, sh := range r.s.shelves {
		if sh.RackID == rackID {
			sh.ZoneID, sh.WarehouseID = zoneID, warehouseID
		}
	}
	return nil
}
func (r *fakeShelfRepo) SoftDelete(_, id string, at time.Time) error {
	if sh, ok := r.s.shelves[id]; ok {
		sh.IsDeleted, sh.DeletedAt = true, &at
	}
	return nil
}
func (r *fakeShelfRepo) CountActiveByRack(_, rackID string) (int, error) {
	n := 0
	for _, sh := range r.s.shelves {
		if sh.RackID == rackID && !sh.IsDeleted {
			n++
		}
	}
	return n, nil
}

type fakeLogRepo struct{ s *fakeStore }

func (r *fakeLogRepo) Append(l *entity.Log) error { cp := *l; r.s.logs = append(r.s.logs, &cp); return nil }
func (r *fakeLogRepo) List(string, repository.LogFilter) ([]*entity.Log, error) { return r.s.logs, nil }

// fakeTxRunner ejecuta el callback directamente con los fakes (sin rollback:
// los tests de "no escribe" cubren rutas que fallan antes de toda escritura).
type fakeTxRunner struct{ s *fakeStore }

func (t *fakeTxRunner) Run(_ context.Context, fn func(
	repository.WarehouseRepository,
	repository.ZoneRepository,
	repository.RackRepository,
	repository.ShelfRepository,
	repository.LogRepository,
) error) error {
	return fn(&fakeWarehouseRepo{t.s}, &fakeZoneRepo{t.s}, &fakeRackRepo{t.s}, &fakeShelfRepo{t.s}, &fakeLogRepo{t.s})
}

type noopPropagator struct{ scheduled []string }

func (p *noopPropagator) SchedulePropagation(entityType, entityID string) {
	p.scheduled = append(p.scheduled, entityType+":"+entityID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado del escenario base: bodega W1, zona Z1, racks R1/R2 con estanterías
// ──────────────────────────────────────────────────────────────────────────────

func seedStore() *fakeStore {
	s := newFakeStore()
	s.warehouses["W1"] = &entity.Warehouse{ID: "W1", BusinessID: testBusiness, Name: "Central"}
	s.zones["Z1"] = &entity.Zone{ID: "Z1", BusinessID: testBusiness, WarehouseID: "W1", Name: "Aisle 1"}
	s.zones["Z2"] = &entity.Zone{ID: "Z2", BusinessID: testBusiness, WarehouseID: "W1", Name: "Aisle 2"}
	s.racks["R1"] = &entity.Rack{ID: "R1", BusinessID: testBusiness, ZoneID: "Z1", WarehouseID: "W1", Name: "Rack 1", Position: 1}
	s.racks["R2"] = &entity.Rack{ID: "R2", BusinessID: testBusiness, ZoneID: "Z1", WarehouseID: "W1", Name: "Rack 2", Position: 2}
	return s
}

func addShelf(s *fakeStore, id, rackID string, pos int) {
	s.shelves[id] = &entity.Shelf{
		ID: id, BusinessID: testBusiness, RackID: rackID, ZoneID: "Z1", WarehouseID: "W1",
		Name: "Shelf " + id, Position: pos,
	}
}

func shelfPositions(s *fakeStore, rackID string) map[string]int {
	out := map[string]int{}
	for _, sh := range s.shelves {
		if sh.RackID == rackID && !sh.IsDeleted {
			out[sh.ID] = sh.Position
		}
	}
	return out
}

func assertDensePositions(t *testing.T, positions map[string]int) {
	t.Helper()
	seen := map[int]bool{}
	for id, p := range positions {
		require.GreaterOrEqual(t, p, 1, "posición de %s", id)
		require.LessOrEqual(t, p, len(positions), "posición de %s", id)
		require.False(t, seen[p], "posición %d duplicada", p)
		seen[p] = true
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Zonas: código duplicado y reutilización tras soft-delete
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateZone_CodigoActivoDuplicado_Conflicto(t *testing.T) {
	s := seedStore()
	uc := apphier.NewZoneUseCase(&fakeTxRunner{s}, &fakeZoneRepo{s}, &fakeRackRepo{s})

	_, err := uc.Create(context.Background(), testBusiness, testUser, dto.CreateZoneRequest{
		WarehouseID: "W1", Name: "Aisle 1 bis", Code: "Z1",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
	assert.Contains(t, err.Error(), "Z1", "el mensaje de conflicto indica el código tomado")
}

func TestCreateZone_CodigoSeNormaliza(t *testing.T) {
	s := seedStore()
	uc := apphier.NewZoneUseCase(&fakeTxRunner{s}, &fakeZoneRepo{s}, &fakeRackRepo{s})

	out, err := uc.Create(context.Background(), testBusiness, testUser, dto.CreateZoneRequest{
		WarehouseID: "W1", Name: "Aisle 3", Code: "z3 ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Z3", out.ID, "el código se guarda en mayúsculas y sin espacios")

	// El mismo código con otra capitalización choca contra la zona activa.
	_, err = uc.Create(context.Background(), testBusiness, testUser, dto.CreateZoneRequest{
		WarehouseID: "W1", Name: "Otra", Code: " z3",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
}

func TestCreateZone_ReutilizaCodigoEliminado_ReseteaEstadisticas(t *testing.T) {
	s := seedStore()
	now := time.Now()
	s.zones["Z9"] = &entity.Zone{
		ID: "Z9", BusinessID: testBusiness, WarehouseID: "W1", Name: "Vieja",
		RackCount: 7, ShelfCount: 30, Version: 2, IsDeleted: true, DeletedAt: &now,
	}
	uc := apphier.NewZoneUseCase(&fakeTxRunner{s}, &fakeZoneRepo{s}, &fakeRackRepo{s})

	out, err := uc.Create(context.Background(), testBusiness, testUser, dto.CreateZoneRequest{
		WarehouseID: "W1", Name: "Nueva", Code: "Z9",
	})
	require.NoError(t, err)
	assert.Equal(t, "Nueva", out.Name)
	assert.Zero(t, out.RackCount, "las estadísticas previas no se restauran")
	assert.Zero(t, out.ShelfCount)

	stored := s.zones["Z9"]
	assert.False(t, stored.IsDeleted)
	assert.Equal(t, 3, stored.Version, "la versión avanza sobre la fila reescrita")

	// La reactivación queda en bitácora como "restored".
	last := s.logs[len(s.logs)-1]
	assert.Equal(t, entity.LogActionRestored, last.Action)
}

func TestDeleteZone_ConRacksActivos_FallaSinEscribir(t *testing.T) {
	s := seedStore()
	uc := apphier.NewZoneUseCase(&fakeTxRunner{s}, &fakeZoneRepo{s}, &fakeRackRepo{s})

	err := uc.Delete(context.Background(), testBusiness, testUser, "Z1")
	assert.ErrorIs(t, err, domain.ErrHasActiveChildren)
	assert.False(t, s.zones["Z1"].IsDeleted, "la zona sigue activa")
	assert.Empty(t, s.logs, "no se registró ninguna mutación")
}

// ──────────────────────────────────────────────────────────────────────────────
// Racks: insert-at y borrado con cierre de hueco
// ──────────────────────────────────────────────────────────────────────────────

// Escenario del contrato: [R1:1, R2:2] + crear R3 en posición 2
// → [R1:1, R3:2, R2:3].
func TestCreateRack_InsertAt_DesplazaHermanos(t *testing.T) {
	s := seedStore()
	uc := apphier.NewRackUseCase(&fakeTxRunner{s}, &fakeRackRepo{s}, &fakeShelfRepo{s})

	out, err := uc.Create(context.Background(), testBusiness, testUser, dto.CreateRackRequest{
		ZoneID: "Z1", WarehouseID: "W1", Name: "Rack 3", Code: "R3", Position: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Position)
	assert.Equal(t, 1, s.racks["R1"].Position)
	assert.Equal(t, 3, s.racks["R2"].Position)
	assert.Equal(t, 1, s.zones["Z1"].RackCount)
}

func TestCreateRack_SinPosicion_AgregaAlFinal(t *testing.T) {
	s := seedStore()
	uc := apphier.NewRackUseCase(&fakeTxRunner{s}, &fakeRackRepo{s}, &fakeShelfRepo{s})

	out, err := uc.Create(context.Background(), testBusiness, testUser, dto.CreateRackRequest{
		ZoneID: "Z1", WarehouseID: "W1", Name: "Rack 3", Code: "R3",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Position)
	assert.Equal(t, 1, s.racks["R1"].Position, "append no desplaza a nadie")
	assert.Equal(t, 2, s.racks["R2"].Position)
}

func TestDeleteRack_ConEstanteriasActivas_FallaSinEscribir(t *testing.T) {
	s := seedStore()
	addShelf(s, "S1", "R1", 1)
	uc := apphier.NewRackUseCase(&fakeTxRunner{s}, &fakeRackRepo{s}, &fakeShelfRepo{s})

	err := uc.Delete(context.Background(), testBusiness, testUser, "R1")
	assert.ErrorIs(t, err, domain.ErrHasActiveChildren)
	assert.False(t, s.racks["R1"].IsDeleted, "el rack sigue activo")
	assert.False(t, s.shelves["S1"].IsDeleted, "la estantería no se toca")
}

func TestDeleteRack_CierraElHuecoDePosicion(t *testing.T) {
	s := seedStore()
	s.racks["R3"] = &entity.Rack{ID: "R3", BusinessID: testBusiness, ZoneID: "Z1", WarehouseID: "W1", Name: "Rack 3", Position: 3}
	uc := apphier.NewRackUseCase(&fakeTxRunner{s}, &fakeRackRepo{s}, &fakeShelfRepo{s})

	require.NoError(t, uc.Delete(context.Background(), testBusiness, testUser, "R2"))
	assert.True(t, s.racks["R2"].IsDeleted)
	assert.Equal(t, 1, s.racks["R1"].Position)
	assert.Equal(t, 2, s.racks["R3"].Position, "R3 baja a la posición 2")
}

// ──────────────────────────────────────────────────────────────────────────────
// Estanterías: borrado en medio y cambio de posición
// ──────────────────────────────────────────────────────────────────────────────

// Escenario del contrato: S3 en posición 3 de 5; al borrarla las 4 restantes
// quedan en 1..4 conservando el orden relativo.
func TestDeleteShelf_EnMedio_MantieneDensidad(t *testing.T) {
	s := seedStore()
	for i := 1; i <= 5; i++ {
		addShelf(s, "S"+string(rune('0'+i)), "R1", i)
	}
	uc := apphier.NewShelfUseCase(&fakeTxRunner{s}, &fakeShelfRepo{s}, &noopPropagator{})

	require.NoError(t, uc.Delete(context.Background(), testBusiness, testUser, "S3"))

	positions := shelfPositions(s, "R1")
	require.Len(t, positions, 4)
	assertDensePositions(t, positions)
	assert.Equal(t, 1, positions["S1"])
	assert.Equal(t, 2, positions["S2"])
	assert.Equal(t, 3, positions["S4"])
	assert.Equal(t, 4, positions["S5"])
}

func TestUpdateShelf_CambioDePosicion_ReordenaHermanos(t *testing.T) {
	s := seedStore()
	addShelf(s, "S1", "R1", 1)
	addShelf(s, "S2", "R1", 2)
	addShelf(s, "S3", "R1", 3)
	uc := apphier.NewShelfUseCase(&fakeTxRunner{s}, &fakeShelfRepo{s}, &noopPropagator{})

	newPos := 1
	require.NoError(t, uc.Update(context.Background(), testBusiness, testUser, "S3", dto.UpdateShelfRequest{Position: &newPos}))

	positions := shelfPositions(s, "R1")
	assertDensePositions(t, positions)
	assert.Equal(t, 1, positions["S3"])
	assert.Equal(t, 2, positions["S1"])
	assert.Equal(t, 3, positions["S2"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimiento de estanterías entre racks
// ──────────────────────────────────────────────────────────────────────────────

func TestMoveShelf_MismoRack_RechazadoSinEscribir(t *testing.T) {
	s := seedStore()
	addShelf(s, "S1", "R1", 1)
	uc := apphier.NewMoveShelfUseCase(&fakeTxRunner{s}, &noopPropagator{})

	err := uc.Move(context.Background(), testBusiness, testUser, "S1", dto.MoveShelfRequest{
		TargetRackID: "R1", TargetZoneID: "Z1", TargetWarehouseID: "W1",
	})
	assert.ErrorIs(t, err, domain.ErrSameRack)
	assert.Equal(t, "R1", s.shelves["S1"].RackID)
	assert.Empty(t, s.logs)
}

// Escenario del contrato: S1 (posición 2 de 3 en R1) movida a R2 (2
// estanterías) sin posición destino → R1 queda denso 1..2 y S1 entra al
// final de R2 (posición 3).
func TestMoveShelf_SinPosicionDestino_AppendYDensidadAmbosLados(t *testing.T) {
	s := seedStore()
	addShelf(s, "SA", "R1", 1)
	addShelf(s, "S1", "R1", 2)
	addShelf(s, "SB", "R1", 3)
	addShelf(s, "SC", "R2", 1)
	addShelf(s, "SD", "R2", 2)
	prop := &noopPropagator{}
	uc := apphier.NewMoveShelfUseCase(&fakeTxRunner{s}, prop)

	require.NoError(t, uc.Move(context.Background(), testBusiness, testUser, "S1", dto.MoveShelfRequest{
		TargetRackID: "R2", TargetZoneID: "Z1", TargetWarehouseID: "W1",
	}))

	source := shelfPositions(s, "R1")
	require.Len(t, source, 2)
	assertDensePositions(t, source)
	assert.Equal(t, 1, source["SA"])
	assert.Equal(t, 2, source["SB"])

	target := shelfPositions(s, "R2")
	require.Len(t, target, 3)
	assertDensePositions(t, target)
	assert.Equal(t, 3, target["S1"], "sin posición destino la movida entra al final")

	moved := s.shelves["S1"]
	assert.Equal(t, "R2", moved.RackID)

	assert.Equal(t, []string{"shelf:S1"}, prop.scheduled, "la propagación se agenda tras el commit")

	last := s.logs[len(s.logs)-1]
	assert.Equal(t, entity.LogActionMoved, last.Action)
	assert.Equal(t, "R1", last.Changes["rack_id"].From)
	assert.Equal(t, "R2", last.Changes["rack_id"].To)
}

func TestMoveShelf_ConPosicionDestino_AbreHueco(t *testing.T) {
	s := seedStore()
	addShelf(s, "S1", "R1", 1)
	addShelf(s, "SC", "R2", 1)
	addShelf(s, "SD", "R2", 2)
	uc := apphier.NewMoveShelfUseCase(&fakeTxRunner{s}, &noopPropagator{})

	require.NoError(t, uc.Move(context.Background(), testBusiness, testUser, "S1", dto.MoveShelfRequest{
		TargetRackID: "R2", TargetZoneID: "Z1", TargetWarehouseID: "W1", TargetPosition: 1,
	}))

	target := shelfPositions(s, "R2")
	assertDensePositions(t, target)
	assert.Equal(t, 1, target["S1"])
	assert.Equal(t, 2, target["SC"])
	assert.Equal(t, 3, target["SD"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimiento de racks entre zonas (misma forma que estanterías)
// ──────────────────────────────────────────────────────────────────────────────

func TestMoveRack_MismaZona_Rechazado(t *testing.T) {
	s := seedStore()
	uc := apphier.NewMoveRackUseCase(&fakeTxRunner{s}, &noopPropagator{})

	err := uc.Move(context.Background(), testBusiness, testUser, "R1", dto.MoveRackRequest{TargetZoneID: "Z1"})
	assert.ErrorIs(t, err, domain.ErrSameZone)
}

func TestMoveRack_AZonaDestino_DensidadAmbosLados(t *testing.T) {
	s := seedStore()
	s.racks["R9"] = &entity.Rack{ID: "R9", BusinessID: testBusiness, ZoneID: "Z2", WarehouseID: "W1", Name: "Rack 9", Position: 1}
	uc := apphier.NewMoveRackUseCase(&fakeTxRunner{s}, &noopPropagator{})

	require.NoError(t, uc.Move(context.Background(), testBusiness, testUser, "R1", dto.MoveRackRequest{TargetZoneID: "Z2"}))

	assert.Equal(t, "Z2", s.racks["R1"].ZoneID)
	assert.Equal(t, 2, s.racks["R1"].Position)
	assert.Equal(t, 1, s.racks["R2"].Position, "la zona origen cierra el hueco")
	assert.Equal(t, 1, s.racks["R9"].Position)
}

func TestMoveRack_ReescribeAncestrosDeEstanterias(t *testing.T) {
	s := seedStore()
	addShelf(s, "S1", "R1", 1)
	addShelf(s, "S2", "R1", 2)
	s.racks["R1"].ShelfCount = 2
	s.zones["Z1"].ShelfCount = 2
	uc := apphier.NewMoveRackUseCase(&fakeTxRunner{s}, &noopPropagator{})

	require.NoError(t, uc.Move(context.Background(), testBusiness, testUser, "R1", dto.MoveRackRequest{TargetZoneID: "Z2"}))

	assert.Equal(t, "Z2", s.shelves["S1"].ZoneID, "las estanterías del rack cargan la zona nueva")
	assert.Equal(t, "Z2", s.shelves["S2"].ZoneID)
	assert.Equal(t, "W1", s.shelves["S1"].WarehouseID)
	assert.Equal(t, 0, s.zones["Z1"].ShelfCount)
	assert.Equal(t, 2, s.zones["Z2"].ShelfCount)

	// Una baja posterior descuenta contra la zona nueva, no contra la vieja.
	shelfUC := apphier.NewShelfUseCase(&fakeTxRunner{s}, &fakeShelfRepo{s}, &noopPropagator{})
	require.NoError(t, shelfUC.Delete(context.Background(), testBusiness, testUser, "S1"))
	assert.Equal(t, 0, s.zones["Z1"].ShelfCount, "la zona origen no se toca")
	assert.Equal(t, 1, s.zones["Z2"].ShelfCount)
}
