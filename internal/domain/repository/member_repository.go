package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// MemberRepository define el puerto de consulta de membresías por negocio.
type MemberRepository interface {
	Get(businessID, userID string) (*entity.Member, error)
}
