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

var _ repository.ZoneRepository = (*ZoneRepo)(nil)

const zoneColumns = `id, business_id, warehouse_id, name, description,
		rack_count, shelf_count,
		is_deleted, deleted_at, version, created_at, updated_at, created_by`

// ZoneRepo implementación del puerto ZoneRepository sobre PostgreSQL (usable con pool o tx).
// La PK es (business_id, id): el código de zona es único por negocio a nivel
// de fila; la unicidad entre activas la garantiza el caso de uso bajo el
// candado de la bodega.
type ZoneRepo struct {
	q Querier
}

// NewZoneRepository construye el adaptador de persistencia para zonas. Pasar pool o tx (Querier).
func NewZoneRepository(q Querier) *ZoneRepo {
	return &ZoneRepo{q: q}
}

// Create persiste una nueva zona.
func (r *ZoneRepo) Create(z *entity.Zone) error {
	query := `
		INSERT INTO zones (id, business_id, warehouse_id, name, description,
			rack_count, shelf_count,
			is_deleted, deleted_at, version, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		z.ID, z.BusinessID, z.WarehouseID, z.Name, z.Description,
		z.RackCount, z.ShelfCount,
		z.IsDeleted, z.DeletedAt, z.Version, z.CreatedAt, z.UpdatedAt, z.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateCode, z.ID)
		}
		return fmt.Errorf("insert zone: %w", err)
	}
	return nil
}

// Overwrite reescribe todos los campos de la fila existente (reutilización de
// código tras soft-delete).
func (r *ZoneRepo) Overwrite(z *entity.Zone) error {
	query := `
		UPDATE zones
		SET warehouse_id = $3, name = $4, description = $5,
		    rack_count = $6, shelf_count = $7,
		    is_deleted = $8, deleted_at = $9, version = $10,
		    created_at = $11, updated_at = $12, created_by = $13
		WHERE business_id = $1 AND id = $2`
	tag, err := r.q.Exec(context.Background(), query,
		z.BusinessID, z.ID, z.WarehouseID, z.Name, z.Description,
		z.RackCount, z.ShelfCount,
		z.IsDeleted, z.DeletedAt, z.Version, z.CreatedAt, z.UpdatedAt, z.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("overwrite zone: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene una zona por código (incluye eliminadas).
func (r *ZoneRepo) GetByID(businessID, id string) (*entity.Zone, error) {
	query := `SELECT ` + zoneColumns + ` FROM zones WHERE business_id = $1 AND id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, businessID, id), "get zone")
}

// GetForUpdate obtiene la zona bloqueando la fila (SELECT FOR UPDATE).
func (r *ZoneRepo) GetForUpdate(businessID, id string) (*entity.Zone, error) {
	query := `SELECT ` + zoneColumns + ` FROM zones WHERE business_id = $1 AND id = $2 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, businessID, id), "lock zone")
}

// ListByWarehouse lista zonas activas de la bodega ordenadas por nombre.
func (r *ZoneRepo) ListByWarehouse(businessID, warehouseID string) ([]*entity.Zone, error) {
	query := `
		SELECT ` + zoneColumns + `
		FROM zones
		WHERE business_id = $1 AND warehouse_id = $2 AND is_deleted = FALSE
		ORDER BY name ASC`
	rows, err := r.q.Query(context.Background(), query, businessID, warehouseID)
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	defer rows.Close()

	var out []*entity.Zone
	for rows.Next() {
		z, err := scanZone(rows)
		if err != nil {
			return nil, fmt.Errorf("scan zone: %w", err)
		}
		out = append(out, z)
	}
	return out, rows.Err()
}

// SoftDelete marca la zona como eliminada.
func (r *ZoneRepo) SoftDelete(businessID, id string, at time.Time) error {
	query := `
		UPDATE zones
		SET is_deleted = TRUE, deleted_at = $3, updated_at = $3
		WHERE business_id = $1 AND id = $2 AND is_deleted = FALSE`
	tag, err := r.q.Exec(context.Background(), query, businessID, id, at)
	if err != nil {
		return fmt.Errorf("soft delete zone: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountActiveByWarehouse cuenta zonas activas de la bodega.
func (r *ZoneRepo) CountActiveByWarehouse(businessID, warehouseID string) (int, error) {
	query := `SELECT COUNT(*) FROM zones WHERE business_id = $1 AND warehouse_id = $2 AND is_deleted = FALSE`
	var n int
	if err := r.q.QueryRow(context.Background(), query, businessID, warehouseID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count zones: %w", err)
	}
	return n, nil
}

// AdjustCounters suma deltas a las estadísticas agregadas de la zona.
func (r *ZoneRepo) AdjustCounters(businessID, id string, racks, shelves int) error {
	query := `
		UPDATE zones
		SET rack_count = rack_count + $3, shelf_count = shelf_count + $4, updated_at = NOW()
		WHERE business_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query, businessID, id, racks, shelves)
	if err != nil {
		return fmt.Errorf("adjust zone counters: %w", err)
	}
	return nil
}

func (r *ZoneRepo) scanOne(row pgx.Row, op string) (*entity.Zone, error) {
	z, err := scanZone(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return z, nil
}

func scanZone(row pgx.Row) (*entity.Zone, error) {
	var z entity.Zone
	err := row.Scan(
		&z.ID, &z.BusinessID, &z.WarehouseID, &z.Name, &z.Description,
		&z.RackCount, &z.ShelfCount,
		&z.IsDeleted, &z.DeletedAt, &z.Version, &z.CreatedAt, &z.UpdatedAt, &z.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &z, nil
}
