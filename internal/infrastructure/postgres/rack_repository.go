package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.RackRepository = (*RackRepo)(nil)

const rackColumns = `id, business_id, zone_id, warehouse_id, name, position, shelf_count,
		is_deleted, deleted_at, version, created_at, updated_at, created_by`

// RackRepo implementación del puerto RackRepository sobre PostgreSQL (usable con pool o tx).
type RackRepo struct {
	q Querier
}

// NewRackRepository construye el adaptador de persistencia para racks. Pasar pool o tx (Querier).
func NewRackRepository(q Querier) *RackRepo {
	return &RackRepo{q: q}
}

// Create persiste un nuevo rack con su posición ya asignada.
func (r *RackRepo) Create(rk *entity.Rack) error {
	query := `
		INSERT INTO racks (id, business_id, zone_id, warehouse_id, name, position, shelf_count,
			is_deleted, deleted_at, version, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		rk.ID, rk.BusinessID, rk.ZoneID, rk.WarehouseID, rk.Name, rk.Position, rk.ShelfCount,
		rk.IsDeleted, rk.DeletedAt, rk.Version, rk.CreatedAt, rk.UpdatedAt, rk.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateCode, rk.ID)
		}
		return fmt.Errorf("insert rack: %w", err)
	}
	return nil
}

// Overwrite reescribe todos los campos de la fila existente (reutilización de
// código tras soft-delete).
func (r *RackRepo) Overwrite(rk *entity.Rack) error {
	query := `
		UPDATE racks
		SET zone_id = $3, warehouse_id = $4, name = $5, position = $6, shelf_count = $7,
		    is_deleted = $8, deleted_at = $9, version = $10,
		    created_at = $11, updated_at = $12, created_by = $13
		WHERE business_id = $1 AND id = $2`
	tag, err := r.q.Exec(context.Background(), query,
		rk.BusinessID, rk.ID, rk.ZoneID, rk.WarehouseID, rk.Name, rk.Position, rk.ShelfCount,
		rk.IsDeleted, rk.DeletedAt, rk.Version, rk.CreatedAt, rk.UpdatedAt, rk.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("overwrite rack: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un rack por código (incluye eliminados).
func (r *RackRepo) GetByID(businessID, id string) (*entity.Rack, error) {
	query := `SELECT ` + rackColumns + ` FROM racks WHERE business_id = $1 AND id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, businessID, id), "get rack")
}

// GetForUpdate obtiene el rack bloqueando la fila (SELECT FOR UPDATE).
func (r *RackRepo) GetForUpdate(businessID, id string) (*entity.Rack, error) {
	query := `SELECT ` + rackColumns + ` FROM racks WHERE business_id = $1 AND id = $2 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, businessID, id), "lock rack")
}

// ListByZone lista racks activos de la zona por posición ascendente.
func (r *RackRepo) ListByZone(businessID, zoneID string) ([]*entity.Rack, error) {
	query := `
		SELECT ` + rackColumns + `
		FROM racks
		WHERE business_id = $1 AND zone_id = $2 AND is_deleted = FALSE
		ORDER BY position ASC`
	rows, err := r.q.Query(context.Background(), query, businessID, zoneID)
	if err != nil {
		return nil, fmt.Errorf("list racks: %w", err)
	}
	defer rows.Close()

	var out []*entity.Rack
	for rows.Next() {
		rk, err := scanRack(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rack: %w", err)
		}
		out = append(out, rk)
	}
	return out, rows.Err()
}

// UpdatePosition escribe la nueva posición de un rack (desplazamientos del plan).
func (r *RackRepo) UpdatePosition(businessID, id string, position int) error {
	query := `UPDATE racks SET position = $3, updated_at = NOW() WHERE business_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query, businessID, id, position)
	if err != nil {
		return fmt.Errorf("update rack position: %w", err)
	}
	return nil
}

// UpdateParent escribe la nueva zona, bodega y posición del rack movido.
func (r *RackRepo) UpdateParent(rk *entity.Rack) error {
	query := `
		UPDATE racks
		SET zone_id = $3, warehouse_id = $4, position = $5, updated_at = $6
		WHERE business_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		rk.BusinessID, rk.ID, rk.ZoneID, rk.WarehouseID, rk.Position, rk.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update rack parent: %w", err)
	}
	return nil
}

// SoftDelete marca el rack como eliminado.
func (r *RackRepo) SoftDelete(businessID, id string, at time.Time) error {
	query := `
		UPDATE racks
		SET is_deleted = TRUE, deleted_at = $3, updated_at = $3
		WHERE business_id = $1 AND id = $2 AND is_deleted = FALSE`
	tag, err := r.q.Exec(context.Background(), query, businessID, id, at)
	if err != nil {
		return fmt.Errorf("soft delete rack: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountActiveByZone cuenta racks activos de la zona.
func (r *RackRepo) CountActiveByZone(businessID, zoneID string) (int, error) {
	query := `SELECT COUNT(*) FROM racks WHERE business_id = $1 AND zone_id = $2 AND is_deleted = FALSE`
	var n int
	if err := r.q.QueryRow(context.Background(), query, businessID, zoneID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count racks: %w", err)
	}
	return n, nil
}

// AdjustCounters suma el delta de estanterías al contador del rack.
func (r *RackRepo) AdjustCounters(businessID, id string, shelves int) error {
	query := `UPDATE racks SET shelf_count = shelf_count + $3, updated_at = NOW() WHERE business_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query, businessID, id, shelves)
	if err != nil {
		return fmt.Errorf("adjust rack counters: %w", err)
	}
	return nil
}

func (r *RackRepo) scanOne(row pgx.Row, op string) (*entity.Rack, error) {
	rk, err := scanRack(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return rk, nil
}

func scanRack(row pgx.Row) (*entity.Rack, error) {
	var rk entity.Rack
	err := row.Scan(
		&rk.ID, &rk.BusinessID, &rk.ZoneID, &rk.WarehouseID, &rk.Name, &rk.Position, &rk.ShelfCount,
		&rk.IsDeleted, &rk.DeletedAt, &rk.Version, &rk.CreatedAt, &rk.UpdatedAt, &rk.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &rk, nil
}
