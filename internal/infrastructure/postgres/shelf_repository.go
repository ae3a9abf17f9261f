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

var _ repository.ShelfRepository = (*ShelfRepo)(nil)

const shelfColumns = `id, business_id, rack_id, zone_id, warehouse_id,
		name, code, position, capacity, coordinates,
		rack_name, zone_name, warehouse_name, path,
		is_deleted, deleted_at, version, created_at, updated_at, created_by`

// ShelfRepo implementación del puerto ShelfRepository sobre PostgreSQL (usable con pool o tx).
type ShelfRepo struct {
	q Querier
}

// NewShelfRepository construye el adaptador de persistencia para estanterías. Pasar pool o tx (Querier).
func NewShelfRepository(q Querier) *ShelfRepo {
	return &ShelfRepo{q: q}
}

// Create persiste una nueva estantería con su posición ya asignada.
func (r *ShelfRepo) Create(s *entity.Shelf) error {
	query := `
		INSERT INTO shelves (id, business_id, rack_id, zone_id, warehouse_id,
			name, code, position, capacity, coordinates,
			rack_name, zone_name, warehouse_name, path,
			is_deleted, deleted_at, version, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.BusinessID, s.RackID, s.ZoneID, s.WarehouseID,
		s.Name, s.Code, s.Position, s.Capacity, s.Coordinates,
		s.RackName, s.ZoneName, s.WarehouseName, s.Path,
		s.IsDeleted, s.DeletedAt, s.Version, s.CreatedAt, s.UpdatedAt, s.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert shelf: %w", err)
	}
	return nil
}

// GetByID obtiene una estantería por ID (incluye eliminadas).
func (r *ShelfRepo) GetByID(businessID, id string) (*entity.Shelf, error) {
	query := `SELECT ` + shelfColumns + ` FROM shelves WHERE business_id = $1 AND id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, businessID, id), "get shelf")
}

// ListByRack lista estanterías activas del rack por posición ascendente.
func (r *ShelfRepo) ListByRack(businessID, rackID string) ([]*entity.Shelf, error) {
	query := `
		SELECT ` + shelfColumns + `
		FROM shelves
		WHERE business_id = $1 AND rack_id = $2 AND is_deleted = FALSE
		ORDER BY position ASC`
	rows, err := r.q.Query(context.Background(), query, businessID, rackID)
	if err != nil {
		return nil, fmt.Errorf("list shelves: %w", err)
	}
	defer rows.Close()

	var out []*entity.Shelf
	for rows.Next() {
		s, err := scanShelf(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shelf: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Update actualiza los campos editables de la estantería (nombre, capacidad,
// coordenadas, denormalizados) y su posición.
func (r *ShelfRepo) Update(s *entity.Shelf) error {
	query := `
		UPDATE shelves
		SET name = $3, code = $4, position = $5, capacity = $6, coordinates = $7,
		    rack_name = $8, zone_name = $9, warehouse_name = $10, path = $11,
		    version = $12, updated_at = $13
		WHERE business_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		s.BusinessID, s.ID, s.Name, s.Code, s.Position, s.Capacity, s.Coordinates,
		s.RackName, s.ZoneName, s.WarehouseName, s.Path,
		s.Version, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update shelf: %w", err)
	}
	return nil
}

// UpdatePosition escribe la nueva posición de una estantería (desplazamientos del plan).
func (r *ShelfRepo) UpdatePosition(businessID, id string, position int) error {
	query := `UPDATE shelves SET position = $3, updated_at = NOW() WHERE business_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query, businessID, id, position)
	if err != nil {
		return fmt.Errorf("update shelf position: %w", err)
	}
	return nil
}

// UpdateParent escribe rack, zona, bodega y posición de la estantería movida
// en una sola sentencia.
func (r *ShelfRepo) UpdateParent(s *entity.Shelf) error {
	query := `
		UPDATE shelves
		SET rack_id = $3, zone_id = $4, warehouse_id = $5, position = $6, updated_at = $7
		WHERE business_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		s.BusinessID, s.ID, s.RackID, s.ZoneID, s.WarehouseID, s.Position, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update shelf parent: %w", err)
	}
	return nil
}

// UpdateAncestorsByRack reescribe zona y bodega de todas las estanterías del
// rack, incluidas las eliminadas, para que ningún registro quede apuntando a
// la zona anterior.
func (r *ShelfRepo) UpdateAncestorsByRack(businessID, rackID, zoneID, warehouseID string) error {
	query := `
		UPDATE shelves
		SET zone_id = $3, warehouse_id = $4, updated_at = NOW()
		WHERE business_id = $1 AND rack_id = $2`
	_, err := r.q.Exec(context.Background(), query, businessID, rackID, zoneID, warehouseID)
	if err != nil {
		return fmt.Errorf("update shelf ancestors: %w", err)
	}
	return nil
}

// SoftDelete marca la estantería como eliminada.
func (r *ShelfRepo) SoftDelete(businessID, id string, at time.Time) error {
	query := `
		UPDATE shelves
		SET is_deleted = TRUE, deleted_at = $3, updated_at = $3
		WHERE business_id = $1 AND id = $2 AND is_deleted = FALSE`
	tag, err := r.q.Exec(context.Background(), query, businessID, id, at)
	if err != nil {
		return fmt.Errorf("soft delete shelf: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountActiveByRack cuenta estanterías activas del rack.
func (r *ShelfRepo) CountActiveByRack(businessID, rackID string) (int, error) {
	query := `SELECT COUNT(*) FROM shelves WHERE business_id = $1 AND rack_id = $2 AND is_deleted = FALSE`
	var n int
	if err := r.q.QueryRow(context.Background(), query, businessID, rackID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count shelves: %w", err)
	}
	return n, nil
}

func (r *ShelfRepo) scanOne(row pgx.Row, op string) (*entity.Shelf, error) {
	s, err := scanShelf(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}

func scanShelf(row pgx.Row) (*entity.Shelf, error) {
	var s entity.Shelf
	err := row.Scan(
		&s.ID, &s.BusinessID, &s.RackID, &s.ZoneID, &s.WarehouseID,
		&s.Name, &s.Code, &s.Position, &s.Capacity, &s.Coordinates,
		&s.RackName, &s.ZoneName, &s.WarehouseName, &s.Path,
		&s.IsDeleted, &s.DeletedAt, &s.Version, &s.CreatedAt, &s.UpdatedAt, &s.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
