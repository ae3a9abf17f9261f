package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.LogRepository = (*LogRepo)(nil)

// LogRepo implementación del puerto LogRepository sobre PostgreSQL (usable con pool o tx).
// El diff de campos se guarda como JSONB.
type LogRepo struct {
	q Querier
}

// NewLogRepository construye el adaptador de persistencia para la bitácora. Pasar pool o tx (Querier).
func NewLogRepository(q Querier) *LogRepo {
	return &LogRepo{q: q}
}

// Append inserta la entrada. Si viene sin ID se le asigna uno.
func (r *LogRepo) Append(l *entity.Log) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	changes, err := json.Marshal(l.Changes)
	if err != nil {
		return fmt.Errorf("marshal log changes: %w", err)
	}
	query := `
		INSERT INTO hierarchy_logs (id, business_id, entity_type, entity_id, action, changes, note, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.q.Exec(context.Background(), query,
		l.ID, l.BusinessID, l.EntityType, l.EntityID, l.Action, changes, l.Note, l.CreatedAt, l.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert log: %w", err)
	}
	return nil
}

// List lista entradas del negocio con filtros opcionales, más recientes primero.
func (r *LogRepo) List(businessID string, f repository.LogFilter) ([]*entity.Log, error) {
	query := `
		SELECT id, business_id, entity_type, entity_id, action, changes, note, created_at, created_by
		FROM hierarchy_logs WHERE business_id = $1`
	args := []any{businessID}
	if f.EntityType != "" {
		args = append(args, f.EntityType)
		query += fmt.Sprintf(" AND entity_type = $%d", len(args))
	}
	if f.EntityID != "" {
		args = append(args, f.EntityID)
		query += fmt.Sprintf(" AND entity_id = $%d", len(args))
	}
	if f.Action != "" {
		args = append(args, f.Action)
		query += fmt.Sprintf(" AND action = $%d", len(args))
	}
	args = append(args, f.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, f.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer rows.Close()

	var out []*entity.Log
	for rows.Next() {
		var l entity.Log
		var changes []byte
		if err := rows.Scan(
			&l.ID, &l.BusinessID, &l.EntityType, &l.EntityID, &l.Action, &changes, &l.Note, &l.CreatedAt, &l.CreatedBy,
		); err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		if len(changes) > 0 {
			if err := json.Unmarshal(changes, &l.Changes); err != nil {
				return nil, fmt.Errorf("unmarshal log changes: %w", err)
			}
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}
