package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Almacen-api/internal/application/hierarchy"
	"github.com/jhoicas/Almacen-api/internal/application/stock"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Ensure TxRunner implements hierarchy.TxRunner and stock.TxRunner.
var _ hierarchy.TxRunner = (*TxRunner)(nil)
var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos de jerarquía atados a
// la tx y hace Commit o Rollback. Los SELECT FOR UPDATE de los repos solo
// valen dentro de este ámbito.
func (r *TxRunner) Run(ctx context.Context, fn func(
	warehouseRepo repository.WarehouseRepository,
	zoneRepo repository.ZoneRepository,
	rackRepo repository.RackRepository,
	shelfRepo repository.ShelfRepository,
	logRepo repository.LogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	warehouseRepo := NewWarehouseRepository(tx)
	zoneRepo := NewZoneRepository(tx)
	rackRepo := NewRackRepository(tx)
	shelfRepo := NewShelfRepository(tx)
	logRepo := NewLogRepository(tx)

	if err := fn(warehouseRepo, zoneRepo, rackRepo, shelfRepo, logRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunStock inicia una transacción con los repos de existencias (put-away y pick).
func (r *TxRunner) RunStock(ctx context.Context, fn func(
	placementRepo repository.PlacementRepository,
	upcRepo repository.UPCRepository,
	movementRepo repository.MovementRepository,
	shelfRepo repository.ShelfRepository,
	logRepo repository.LogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	placementRepo := NewPlacementRepository(tx)
	upcRepo := NewUPCRepository(tx)
	movementRepo := NewMovementRepository(tx)
	shelfRepo := NewShelfRepository(tx)
	logRepo := NewLogRepository(tx)

	if err := fn(placementRepo, upcRepo, movementRepo, shelfRepo, logRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
