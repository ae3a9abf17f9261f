package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/jhoicas/Almacen-api/internal/application/hierarchy"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

var _ hierarchy.Propagator = (*Propagator)(nil)

type propagationJob struct {
	entityType string
	entityID   string
}

// Propagator refresca fuera de banda los campos denormalizados de lectura
// (rack_name, zone_name, warehouse_name, path) de las estanterías afectadas
// por un movimiento. Corre en su propia goroutine sobre el pool: nunca dentro
// de la transacción que movió la entidad.
type Propagator struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
	jobs chan propagationJob
	done chan struct{}
}

// NewPropagator construye el propagador y arranca su worker.
func NewPropagator(pool *pgxpool.Pool, log zerolog.Logger) *Propagator {
	p := &Propagator{
		pool: pool,
		log:  log.With().Str("component", "propagator").Logger(),
		jobs: make(chan propagationJob, 256),
		done: make(chan struct{}),
	}
	go p.run()
	return p
}

// SchedulePropagation encola el refresco sin bloquear al llamador. Si la cola
// está llena el trabajo se descarta con warning: los denormalizados son caché
// y el siguiente movimiento del mismo subárbol los vuelve a encolar.
func (p *Propagator) SchedulePropagation(entityType, entityID string) {
	select {
	case p.jobs <- propagationJob{entityType: entityType, entityID: entityID}:
	default:
		p.log.Warn().Str("entity_type", entityType).Str("entity_id", entityID).
			Msg("cola de propagación llena, refresco descartado")
	}
}

// Close detiene el worker y espera a que termine el trabajo en curso.
func (p *Propagator) Close() {
	close(p.jobs)
	<-p.done
}

func (p *Propagator) run() {
	defer close(p.done)
	for job := range p.jobs {
		if err := p.refresh(job); err != nil {
			p.log.Error().Err(err).Str("entity_type", job.entityType).Str("entity_id", job.entityID).
				Msg("refresco de denormalizados falló")
			continue
		}
		p.log.Debug().Str("entity_type", job.entityType).Str("entity_id", job.entityID).
			Msg("denormalizados refrescados")
	}
}

// refresh recalcula los denormalizados desde la cadena de ancestros real:
// la zona se deriva del rack y la bodega de la zona, nunca de las columnas
// cacheadas del shelf. También repara zone_id/warehouse_id si quedaron
// desalineadas. Es idempotente: repetirlo deja el mismo resultado.
func (p *Propagator) refresh(job propagationJob) error {
	const refreshQuery = `
		UPDATE shelves s
		SET zone_id = r.zone_id,
		    warehouse_id = z.warehouse_id,
		    rack_name = r.name,
		    zone_name = z.name,
		    warehouse_name = w.name,
		    path = w.name || ' / ' || z.name || ' / ' || r.name || ' / ' || s.name,
		    updated_at = NOW()
		FROM racks r, zones z, warehouses w
		WHERE r.business_id = s.business_id AND r.id = s.rack_id
		  AND z.business_id = r.business_id AND z.id = r.zone_id
		  AND w.business_id = z.business_id AND w.id = z.warehouse_id
		  AND %s`

	ctx := context.Background()
	switch job.entityType {
	case entity.EntityShelf:
		_, err := p.pool.Exec(ctx, fmt.Sprintf(refreshQuery, "s.id = $1"), job.entityID)
		return err
	case entity.EntityRack:
		// El ID de rack es un código por negocio; refrescar por código es
		// idempotente también cuando coincide en otro tenant.
		_, err := p.pool.Exec(ctx, fmt.Sprintf(refreshQuery, "s.rack_id = $1"), job.entityID)
		return err
	case entity.EntityZone:
		_, err := p.pool.Exec(ctx, fmt.Sprintf(refreshQuery, "z.id = $1"), job.entityID)
		return err
	case entity.EntityWarehouse:
		_, err := p.pool.Exec(ctx, fmt.Sprintf(refreshQuery, "w.id = $1"), job.entityID)
		return err
	}
	return nil
}
