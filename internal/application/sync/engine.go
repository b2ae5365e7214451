// Package sync implementa el motor de sincronización del outbox: drena las
// mutaciones pendientes de un tenant hacia la autoridad central en orden FIFO,
// con entregas at-least-once.
package sync

import (
	"context"
	stdsync "sync"
	"time"

	"github.com/jcastano/erp-nodo-api/internal/domain"
	"github.com/jcastano/erp-nodo-api/internal/domain/repository"
	"github.com/jcastano/erp-nodo-api/pkg/logger"
)

// Result resume una pasada de sincronización de un tenant.
type Result struct {
	Attempted int `json:"attempted"`
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"`
}

// Engine drena el outbox por tenant. Dos pasadas concurrentes del mismo tenant
// se serializan con un mutex por tenant (entregas duplicadas por carrera serían
// legales bajo at-least-once, pero desordenan el FIFO y duplican tráfico).
// Pasadas de tenants distintos corren en paralelo sin estorbarse.
type Engine struct {
	tenantRepo  repository.TenantRepository
	outboxRepo  repository.OutboxRepository
	deliverer   Deliverer
	perEntryTTL time.Duration
	log         *logger.Logger

	mu    stdsync.Mutex
	locks map[string]*stdsync.Mutex
}

// NewEngine construye el motor. perEntryTTL acota cada entrega individual
// (referencia operativa: 10s).
func NewEngine(
	tenantRepo repository.TenantRepository,
	outboxRepo repository.OutboxRepository,
	deliverer Deliverer,
	perEntryTTL time.Duration,
	log *logger.Logger,
) *Engine {
	return &Engine{
		tenantRepo:  tenantRepo,
		outboxRepo:  outboxRepo,
		deliverer:   deliverer,
		perEntryTTL: perEntryTTL,
		log:         log,
		locks:       make(map[string]*stdsync.Mutex),
	}
}

func (e *Engine) lockFor(tenantID string) *stdsync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[tenantID]
	if !ok {
		l = &stdsync.Mutex{}
		e.locks[tenantID] = l
	}
	return l
}

// Sync drena el outbox del tenant en orden de creación (id ASC). Cada entrada
// se entrega con su propio timeout; ante aceptación confirmada se elimina del
// outbox, ante fallo se conserva intacta y la pasada continúa con la siguiente
// (el reintento queda para la próxima pasada). Un fallo de entrega nunca es
// error de la pasada: solo cuenta en Failed. Retorna ErrTenantNotFound si el
// tenant no existe.
func (e *Engine) Sync(ctx context.Context, tenantID, token string) (*Result, error) {
	tenant, err := e.tenantRepo.GetByTenantID(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrTenantNotFound
	}

	lock := e.lockFor(tenantID)
	lock.Lock()
	defer lock.Unlock()

	entries, err := e.outboxRepo.ListByTenant(tenant.ID)
	if err != nil {
		return nil, err
	}

	result := &Result{Attempted: len(entries)}
	for _, entry := range entries {
		entryCtx, cancel := context.WithTimeout(ctx, e.perEntryTTL)
		err := e.deliverer.Deliver(entryCtx, tenantID, token, entry.Operation, entry.Data)
		cancel()
		if err != nil {
			// La entrada queda en el outbox para la próxima pasada.
			e.log.Warn().Err(err).
				Str("tenant_id", tenantID).
				Int64("entry_id", entry.ID).
				Str("operation", string(entry.Operation)).
				Msg("entrega de sincronización fallida")
			result.Failed++
			continue
		}
		if err := e.outboxRepo.Remove(entry.ID); err != nil {
			// La autoridad ya aceptó: si el Remove falla habrá redelivery,
			// legal bajo at-least-once.
			e.log.Warn().Err(err).
				Str("tenant_id", tenantID).
				Int64("entry_id", entry.ID).
				Msg("no se pudo eliminar entrada entregada del outbox")
		}
		result.Delivered++
	}

	e.log.Info().
		Str("tenant_id", tenantID).
		Int("attempted", result.Attempted).
		Int("delivered", result.Delivered).
		Int("failed", result.Failed).
		Msg("pasada de sincronización completada")
	return result, nil
}
