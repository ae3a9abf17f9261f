package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.MemberRepository = (*MemberRepo)(nil)

// MemberRepo implementación del puerto MemberRepository sobre PostgreSQL.
type MemberRepo struct {
	q Querier
}

// NewMemberRepository construye el adaptador de consulta de membresías.
func NewMemberRepository(q Querier) *MemberRepo {
	return &MemberRepo{q: q}
}

// Get obtiene la membresía del usuario en el negocio.
func (r *MemberRepo) Get(businessID, userID string) (*entity.Member, error) {
	query := `
		SELECT business_id, user_id, role, store_id, is_active, created_at, updated_at
		FROM business_members WHERE business_id = $1 AND user_id = $2`
	var m entity.Member
	err := r.q.QueryRow(context.Background(), query, businessID, userID).Scan(
		&m.BusinessID, &m.UserID, &m.Role, &m.StoreID, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get member: %w", err)
	}
	return &m, nil
}
