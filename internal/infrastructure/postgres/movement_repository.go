package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, business_id, product_id, grn_id, type, quantity,
		from_warehouse_id, from_zone_id, from_rack_id, from_shelf_id,
		to_warehouse_id, to_zone_id, to_rack_id, to_shelf_id,
		note, created_at, created_by`

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL (usable con pool o tx).
// Las ubicaciones origen/destino se aplanan en columnas: son instantáneas,
// no referencias vivas.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de persistencia para movimientos. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta el movimiento. No hay Update ni Delete.
func (r *MovementRepo) Create(m *entity.Movement) error {
	query := `
		INSERT INTO stock_movements (id, business_id, product_id, grn_id, type, quantity,
			from_warehouse_id, from_zone_id, from_rack_id, from_shelf_id,
			to_warehouse_id, to_zone_id, to_rack_id, to_shelf_id,
			note, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.BusinessID, m.ProductID, m.GRNID, m.Type, m.Quantity,
		m.From.WarehouseID, m.From.ZoneID, m.From.RackID, m.From.ShelfID,
		m.To.WarehouseID, m.To.ZoneID, m.To.RackID, m.To.ShelfID,
		m.Note, m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// List lista movimientos del negocio con filtros opcionales, más recientes primero.
func (r *MovementRepo) List(businessID string, f repository.MovementFilter) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE business_id = $1`
	args := []any{businessID}
	if f.ProductID != "" {
		args = append(args, f.ProductID)
		query += fmt.Sprintf(" AND product_id = $%d", len(args))
	}
	if f.GRNID != "" {
		args = append(args, f.GRNID)
		query += fmt.Sprintf(" AND grn_id = $%d", len(args))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	args = append(args, f.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, f.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(
			&m.ID, &m.BusinessID, &m.ProductID, &m.GRNID, &m.Type, &m.Quantity,
			&m.From.WarehouseID, &m.From.ZoneID, &m.From.RackID, &m.From.ShelfID,
			&m.To.WarehouseID, &m.To.ZoneID, &m.To.RackID, &m.To.ShelfID,
			&m.Note, &m.CreatedAt, &m.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
