package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

type fakeMemberRepo struct {
	members map[string]*entity.Member // key: businessID + "/" + userID
}

func (r *fakeMemberRepo) Get(businessID, userID string) (*entity.Member, error) {
	return r.members[businessID+"/"+userID], nil
}

func newResolver(cfg auth.Config, members ...*entity.Member) *auth.Resolver {
	repo := &fakeMemberRepo{members: map[string]*entity.Member{}}
	for _, m := range members {
		repo.members[m.BusinessID+"/"+m.UserID] = m
	}
	return auth.NewResolver(repo, cfg)
}

func TestResolve_IdentidadIncompleta(t *testing.T) {
	r := newResolver(auth.Config{})

	_, err := r.Resolve(context.Background(), "", "B1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = r.Resolve(context.Background(), "U1", "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestResolve_SinMembresia(t *testing.T) {
	r := newResolver(auth.Config{})

	_, err := r.Resolve(context.Background(), "U1", "B1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestResolve_MembresiaInactiva(t *testing.T) {
	r := newResolver(auth.Config{}, &entity.Member{
		BusinessID: "B1", UserID: "U1", Role: entity.RoleAdmin, IsActive: false,
	})

	_, err := r.Resolve(context.Background(), "U1", "B1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// El super-admin configurado resuelve como admin en cualquier negocio,
// incluso sin membresía.
func TestResolve_SuperAdmin(t *testing.T) {
	r := newResolver(auth.Config{SuperAdminID: "ROOT"})

	access, err := r.Resolve(context.Background(), "ROOT", "B1")
	require.NoError(t, err)
	assert.True(t, access.Authorised)
	assert.Equal(t, entity.RoleAdmin, access.Role)
	assert.True(t, access.CanWriteHierarchy())
}

func TestResolve_BodegueroEscribeJerarquia(t *testing.T) {
	r := newResolver(auth.Config{}, &entity.Member{
		BusinessID: "B1", UserID: "U1", Role: entity.RoleBodeguero, IsActive: true,
	})

	access, err := r.Resolve(context.Background(), "U1", "B1")
	require.NoError(t, err)
	assert.True(t, access.CanWriteHierarchy())
	assert.Empty(t, access.StoreID, "solo los vendedores llevan tienda acotada")
}

func TestResolve_VendedorAcotadoASuTienda(t *testing.T) {
	r := newResolver(auth.Config{}, &entity.Member{
		BusinessID: "B1", UserID: "U1", Role: entity.RoleVendedor, StoreID: "T7", IsActive: true,
	})

	access, err := r.Resolve(context.Background(), "U1", "B1")
	require.NoError(t, err)
	assert.False(t, access.CanWriteHierarchy())
	assert.Equal(t, "T7", access.StoreID)
}

// En la tienda compartida conviven varios vendedores: el destino resuelto es
// el sub-ámbito propio del vendedor, nunca la tienda compartida entera.
func TestResolve_VendedorTiendaCompartida(t *testing.T) {
	r := newResolver(auth.Config{SharedStoreID: "SHARED"}, &entity.Member{
		BusinessID: "B1", UserID: "U1", Role: entity.RoleVendedor, StoreID: "SHARED", IsActive: true,
	})

	access, err := r.Resolve(context.Background(), "U1", "B1")
	require.NoError(t, err)
	assert.Equal(t, "SHARED:U1", access.StoreID)
}
