package repository

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// UPCFilter filtros de listado de unidades físicas.
type UPCFilter struct {
	GRNID     string
	ProductID string
	ShelfID   string
	PutAway   string
	Limit     int
	Offset    int
}

// UPCRepository define el puerto de persistencia para UPC (unidad física).
type UPCRepository interface {
	// BulkCreate inserta un lote de unidades (put-away de una GRN).
	BulkCreate(upcs []*entity.UPC) error
	List(businessID string, f UPCFilter) ([]*entity.UPC, error)
	// MarkOutbound marca hasta n unidades inbound del producto en la estantería
	// como outbound, con el pedido/tienda propietaria. Devuelve cuántas marcó.
	MarkOutbound(businessID, productID, shelfID string, n int, orderID, storeID string, at time.Time) (int, error)
}
