package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.PlacementRepository = (*PlacementRepo)(nil)

const placementColumns = `id, business_id, product_id, shelf_id, rack_id, zone_id, warehouse_id,
		quantity, movement_count, last_movement_at, created_at, updated_at`

// PlacementRepo implementación del puerto PlacementRepository sobre PostgreSQL (usable con pool o tx).
type PlacementRepo struct {
	q Querier
}

// NewPlacementRepository construye el adaptador de persistencia para colocaciones. Pasar pool o tx (Querier).
func NewPlacementRepository(q Querier) *PlacementRepo {
	return &PlacementRepo{q: q}
}

// Get obtiene una colocación por su ID determinístico.
func (r *PlacementRepo) Get(businessID, id string) (*entity.Placement, error) {
	query := `SELECT ` + placementColumns + ` FROM placements WHERE business_id = $1 AND id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, businessID, id), "get placement")
}

// GetForUpdate obtiene la colocación bloqueando la fila (SELECT FOR UPDATE).
func (r *PlacementRepo) GetForUpdate(businessID, id string) (*entity.Placement, error) {
	query := `SELECT ` + placementColumns + ` FROM placements WHERE business_id = $1 AND id = $2 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, businessID, id), "lock placement")
}

// Upsert inserta o reescribe la colocación (ON CONFLICT sobre la PK).
func (r *PlacementRepo) Upsert(p *entity.Placement) error {
	query := `
		INSERT INTO placements (id, business_id, product_id, shelf_id, rack_id, zone_id, warehouse_id,
			quantity, movement_count, last_movement_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (business_id, id) DO UPDATE
		SET quantity = EXCLUDED.quantity,
		    movement_count = EXCLUDED.movement_count,
		    last_movement_at = EXCLUDED.last_movement_at,
		    updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.BusinessID, p.ProductID, p.ShelfID, p.RackID, p.ZoneID, p.WarehouseID,
		p.Quantity, p.MovementCount, p.LastMovementAt, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert placement: %w", err)
	}
	return nil
}

// List lista colocaciones del negocio con filtros opcionales, más recientes primero.
func (r *PlacementRepo) List(businessID string, f repository.PlacementFilter) ([]*entity.Placement, error) {
	query := `SELECT ` + placementColumns + ` FROM placements WHERE business_id = $1`
	args := []any{businessID}
	if f.ShelfID != "" {
		args = append(args, f.ShelfID)
		query += fmt.Sprintf(" AND shelf_id = $%d", len(args))
	}
	if f.ProductID != "" {
		args = append(args, f.ProductID)
		query += fmt.Sprintf(" AND product_id = $%d", len(args))
	}
	args = append(args, f.Limit)
	query += fmt.Sprintf(" ORDER BY updated_at DESC LIMIT $%d", len(args))
	args = append(args, f.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list placements: %w", err)
	}
	defer rows.Close()

	var out []*entity.Placement
	for rows.Next() {
		p, err := scanPlacement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan placement: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PlacementRepo) scanOne(row pgx.Row, op string) (*entity.Placement, error) {
	p, err := scanPlacement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func scanPlacement(row pgx.Row) (*entity.Placement, error) {
	var p entity.Placement
	err := row.Scan(
		&p.ID, &p.BusinessID, &p.ProductID, &p.ShelfID, &p.RackID, &p.ZoneID, &p.WarehouseID,
		&p.Quantity, &p.MovementCount, &p.LastMovementAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
