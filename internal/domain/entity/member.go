package entity

import "time"

// Roles dentro de un negocio.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleVendedor  = "vendedor"
)

// Member es la membresía de un usuario dentro de un negocio (tenant).
// StoreID solo aplica a vendedores de la tienda compartida: delimita a qué
// tienda pueden escribir.
type Member struct {
	BusinessID string
	UserID     string
	Role       string
	StoreID    string
	IsActive   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
