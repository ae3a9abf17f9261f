package hierarchy

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es la única unidad de atomicidad del núcleo:
// toda operación que muta posiciones lee y escribe dentro de un solo Run.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		warehouseRepo repository.WarehouseRepository,
		zoneRepo repository.ZoneRepository,
		rackRepo repository.RackRepository,
		shelfRepo repository.ShelfRepository,
		logRepo repository.LogRepository,
	) error) error
}

// Propagator agenda el refresco fuera de banda de los campos denormalizados
// (nombres de ancestros, path) tras un cambio estructural. El núcleo no
// espera el resultado ni depende de que ocurra.
type Propagator interface {
	SchedulePropagation(entityType, entityID string)
}
