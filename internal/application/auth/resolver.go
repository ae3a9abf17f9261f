package auth

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Access es el resultado resuelto de autorización que consumen los handlers:
// identidad, rol dentro del negocio y, para vendedores de la tienda
// compartida, la tienda concreta a la que pueden escribir.
type Access struct {
	UserID     string
	BusinessID string
	Role       string
	StoreID    string
	Authorised bool
}

// CanWriteHierarchy indica si el rol puede mutar la jerarquía de bodega.
func (a *Access) CanWriteHierarchy() bool {
	return a.Authorised && (a.Role == entity.RoleAdmin || a.Role == entity.RoleBodeguero)
}

// CanOperateStock indica si el rol puede registrar salidas de stock. El
// vendedor también pica, acotado a su tienda vía StoreID.
func (a *Access) CanOperateStock() bool {
	return a.Authorised && (a.Role == entity.RoleAdmin || a.Role == entity.RoleBodeguero || a.Role == entity.RoleVendedor)
}

// Config identidades globales inyectadas al arrancar (nunca literales en el
// código de negocio).
type Config struct {
	SuperAdminID  string
	SharedStoreID string
}

// Resolver resuelve la membresía de un usuario dentro de un negocio.
// El super-admin configurado resuelve como admin en cualquier negocio;
// los demás usuarios requieren una membresía activa.
type Resolver struct {
	memberRepo repository.MemberRepository
	cfg        Config
}

// NewResolver construye el resolutor.
func NewResolver(memberRepo repository.MemberRepository, cfg Config) *Resolver {
	return &Resolver{memberRepo: memberRepo, cfg: cfg}
}

// Resolve devuelve el acceso del usuario sobre el negocio, o ErrForbidden si
// no hay membresía activa. El caso especial de la tienda compartida: un
// vendedor cuya membresía apunta a la tienda compartida solo puede actuar
// sobre su propia tienda (StoreID del resultado).
func (r *Resolver) Resolve(ctx context.Context, userID, businessID string) (*Access, error) {
	if userID == "" || businessID == "" {
		return nil, domain.ErrUnauthorized
	}
	if r.cfg.SuperAdminID != "" && userID == r.cfg.SuperAdminID {
		return &Access{
			UserID:     userID,
			BusinessID: businessID,
			Role:       entity.RoleAdmin,
			Authorised: true,
		}, nil
	}

	member, err := r.memberRepo.Get(businessID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil || !member.IsActive {
		return nil, domain.ErrForbidden
	}

	access := &Access{
		UserID:     userID,
		BusinessID: businessID,
		Role:       member.Role,
		Authorised: true,
	}
	// Vendedor: sus escrituras quedan acotadas a su tienda. En la tienda
	// compartida conviven varios vendedores; el destino resuelto sigue
	// siendo la tienda propia del miembro, nunca la compartida entera.
	if member.Role == entity.RoleVendedor {
		access.StoreID = member.StoreID
		if member.StoreID == r.cfg.SharedStoreID {
			access.StoreID = member.StoreID + ":" + userID
		}
	}
	return access, nil
}
