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

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

const warehouseColumns = `id, business_id, name, code, address, capacity,
		zone_count, rack_count, shelf_count, product_count,
		is_deleted, deleted_at, version, created_at, updated_at, created_by`

// WarehouseRepo implementación del puerto WarehouseRepository sobre PostgreSQL (usable con pool o tx).
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de persistencia para bodegas. Pasar pool o tx (Querier).
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste una nueva bodega. Los contadores inician en 0.
func (r *WarehouseRepo) Create(w *entity.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, business_id, name, code, address, capacity,
			zone_count, rack_count, shelf_count, product_count,
			is_deleted, deleted_at, version, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		w.ID, w.BusinessID, w.Name, w.Code, w.Address, w.Capacity,
		w.ZoneCount, w.RackCount, w.ShelfCount, w.ProductCount,
		w.IsDeleted, w.DeletedAt, w.Version, w.CreatedAt, w.UpdatedAt, w.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("insert warehouse: %w", err)
	}
	return nil
}

// GetByID obtiene una bodega por ID (incluye eliminadas; el caso de uso decide).
func (r *WarehouseRepo) GetByID(businessID, id string) (*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE business_id = $1 AND id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, businessID, id), "get warehouse")
}

// GetForUpdate obtiene la bodega bloqueando la fila (SELECT FOR UPDATE).
func (r *WarehouseRepo) GetForUpdate(businessID, id string) (*entity.Warehouse, error) {
	query := `SELECT ` + warehouseColumns + ` FROM warehouses WHERE business_id = $1 AND id = $2 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, businessID, id), "lock warehouse")
}

// Update actualiza los campos editables de la bodega.
func (r *WarehouseRepo) Update(w *entity.Warehouse) error {
	query := `
		UPDATE warehouses
		SET name = $3, code = $4, address = $5, capacity = $6, version = $7, updated_at = $8
		WHERE business_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		w.BusinessID, w.ID, w.Name, w.Code, w.Address, w.Capacity, w.Version, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update warehouse: %w", err)
	}
	return nil
}

// ListByBusiness lista bodegas activas del negocio, más recientes primero.
func (r *WarehouseRepo) ListByBusiness(businessID string, limit, offset int) ([]*entity.Warehouse, error) {
	query := `
		SELECT ` + warehouseColumns + `
		FROM warehouses
		WHERE business_id = $1 AND is_deleted = FALSE
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, businessID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	defer rows.Close()

	var out []*entity.Warehouse
	for rows.Next() {
		w, err := scanWarehouse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan warehouse: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// SoftDelete marca la bodega como eliminada.
func (r *WarehouseRepo) SoftDelete(businessID, id string, at time.Time) error {
	query := `
		UPDATE warehouses
		SET is_deleted = TRUE, deleted_at = $3, updated_at = $3
		WHERE business_id = $1 AND id = $2 AND is_deleted = FALSE`
	tag, err := r.q.Exec(context.Background(), query, businessID, id, at)
	if err != nil {
		return fmt.Errorf("soft delete warehouse: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustCounters suma deltas a las estadísticas agregadas (pueden ser negativos).
func (r *WarehouseRepo) AdjustCounters(businessID, id string, zones, racks, shelves, products int) error {
	query := `
		UPDATE warehouses
		SET zone_count = zone_count + $3,
		    rack_count = rack_count + $4,
		    shelf_count = shelf_count + $5,
		    product_count = product_count + $6,
		    updated_at = NOW()
		WHERE business_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query, businessID, id, zones, racks, shelves, products)
	if err != nil {
		return fmt.Errorf("adjust warehouse counters: %w", err)
	}
	return nil
}

func (r *WarehouseRepo) scanOne(row pgx.Row, op string) (*entity.Warehouse, error) {
	w, err := scanWarehouse(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return w, nil
}

func scanWarehouse(row pgx.Row) (*entity.Warehouse, error) {
	var w entity.Warehouse
	err := row.Scan(
		&w.ID, &w.BusinessID, &w.Name, &w.Code, &w.Address, &w.Capacity,
		&w.ZoneCount, &w.RackCount, &w.ShelfCount, &w.ProductCount,
		&w.IsDeleted, &w.DeletedAt, &w.Version, &w.CreatedAt, &w.UpdatedAt, &w.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &w, nil
}
