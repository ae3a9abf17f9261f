package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.UPCRepository = (*UPCRepo)(nil)

const upcColumns = `id, business_id, product_id, grn_id, put_away,
		warehouse_id, zone_id, rack_id, shelf_id, order_id, store_id,
		created_at, updated_at`

// UPCRepo implementación del puerto UPCRepository sobre PostgreSQL (usable con pool o tx).
type UPCRepo struct {
	q Querier
}

// NewUPCRepository construye el adaptador de persistencia para unidades físicas. Pasar pool o tx (Querier).
func NewUPCRepository(q Querier) *UPCRepo {
	return &UPCRepo{q: q}
}

// BulkCreate inserta el lote de unidades de un put-away en un solo batch.
func (r *UPCRepo) BulkCreate(upcs []*entity.UPC) error {
	if len(upcs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO upcs (id, business_id, product_id, grn_id, put_away,
			warehouse_id, zone_id, rack_id, shelf_id, order_id, store_id,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	for _, u := range upcs {
		batch.Queue(query,
			u.ID, u.BusinessID, u.ProductID, u.GRNID, u.PutAway,
			u.WarehouseID, u.ZoneID, u.RackID, u.ShelfID, u.OrderID, u.StoreID,
			u.CreatedAt, u.UpdatedAt,
		)
	}
	br := r.q.SendBatch(context.Background(), batch)
	defer br.Close()
	for range upcs {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("bulk insert upcs: %w", err)
		}
	}
	return nil
}

// List lista unidades físicas del negocio con filtros opcionales.
func (r *UPCRepo) List(businessID string, f repository.UPCFilter) ([]*entity.UPC, error) {
	query := `SELECT ` + upcColumns + ` FROM upcs WHERE business_id = $1`
	args := []any{businessID}
	if f.GRNID != "" {
		args = append(args, f.GRNID)
		query += fmt.Sprintf(" AND grn_id = $%d", len(args))
	}
	if f.ProductID != "" {
		args = append(args, f.ProductID)
		query += fmt.Sprintf(" AND product_id = $%d", len(args))
	}
	if f.ShelfID != "" {
		args = append(args, f.ShelfID)
		query += fmt.Sprintf(" AND shelf_id = $%d", len(args))
	}
	if f.PutAway != "" {
		args = append(args, f.PutAway)
		query += fmt.Sprintf(" AND put_away = $%d", len(args))
	}
	args = append(args, f.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, f.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list upcs: %w", err)
	}
	defer rows.Close()

	var out []*entity.UPC
	for rows.Next() {
		var u entity.UPC
		if err := rows.Scan(
			&u.ID, &u.BusinessID, &u.ProductID, &u.GRNID, &u.PutAway,
			&u.WarehouseID, &u.ZoneID, &u.RackID, &u.ShelfID, &u.OrderID, &u.StoreID,
			&u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan upc: %w", err)
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}

// MarkOutbound marca hasta n unidades inbound del producto en la estantería
// como outbound, las más antiguas primero (FIFO). Devuelve cuántas marcó.
func (r *UPCRepo) MarkOutbound(businessID, productID, shelfID string, n int, orderID, storeID string, at time.Time) (int, error) {
	query := `
		UPDATE upcs
		SET put_away = $1, order_id = $2, store_id = $3, updated_at = $4
		WHERE id IN (
			SELECT id FROM upcs
			WHERE business_id = $5 AND product_id = $6 AND shelf_id = $7 AND put_away = $8
			ORDER BY created_at ASC
			LIMIT $9
			FOR UPDATE SKIP LOCKED
		)`
	tag, err := r.q.Exec(context.Background(), query,
		entity.PutAwayOutbound, orderID, storeID, at,
		businessID, productID, shelfID, entity.PutAwayInbound, n,
	)
	if err != nil {
		return 0, fmt.Errorf("mark upcs outbound: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
