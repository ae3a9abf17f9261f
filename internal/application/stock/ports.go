package stock

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de stock atados a esa tx (put-away y pick son atómicos:
// UPCs + colocación + movimiento + bitácora, todo o nada).
type TxRunner interface {
	RunStock(ctx context.Context, fn func(
		placementRepo repository.PlacementRepository,
		upcRepo repository.UPCRepository,
		movementRepo repository.MovementRepository,
		shelfRepo repository.ShelfRepository,
		logRepo repository.LogRepository,
	) error) error
}
