package sync_test

import (
	"context"
	"encoding/json"
	"errors"
	stdsync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appsync "github.com/jcastano/erp-nodo-api/internal/application/sync"
	"github.com/jcastano/erp-nodo-api/internal/domain"
	"github.com/jcastano/erp-nodo-api/internal/domain/entity"
	"github.com/jcastano/erp-nodo-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test
// ──────────────────────────────────────────────────────────────────────────────

type fakeTenantRepo struct {
	tenants map[string]*entity.Tenant // por TenantID externo
}

func (f *fakeTenantRepo) Create(t *entity.Tenant) error        { return nil }
func (f *fakeTenantRepo) GetByID(string) (*entity.Tenant, error) { return nil, nil }
func (f *fakeTenantRepo) Update(*entity.Tenant) error          { return nil }
func (f *fakeTenantRepo) GetByTenantID(tenantID string) (*entity.Tenant, error) {
	return f.tenants[tenantID], nil
}

// fakeOutboxRepo outbox en memoria con IDs monotónicos.
type fakeOutboxRepo struct {
	mu      stdsync.Mutex
	nextID  int64
	entries []*entity.OutboxEntry
}

func (f *fakeOutboxRepo) Append(e *entity.OutboxEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	e.ID = f.nextID
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeOutboxRepo) ListByTenant(tenantID string) ([]*entity.OutboxEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.OutboxEntry
	for _, e := range f.entries {
		if e.TenantID == tenantID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeOutboxRepo) Remove(id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.entries {
		if e.ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return nil // idempotente
}

// recordingDeliverer registra el orden de entregas y falla en los IDs indicados.
type recordingDeliverer struct {
	mu        stdsync.Mutex
	delivered []entity.Operation
	failOn    map[int]bool // índice de llamada (1-based) que debe fallar
	calls     int
}

func (d *recordingDeliverer) Deliver(_ context.Context, _, _ string, op entity.Operation, _ json.RawMessage) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	if d.failOn[d.calls] {
		return errors.New("main API no disponible")
	}
	d.delivered = append(d.delivered, op)
	return nil
}

func newEngine(tenants *fakeTenantRepo, outbox *fakeOutboxRepo, d appsync.Deliverer) *appsync.Engine {
	return appsync.NewEngine(tenants, outbox, d, time.Second, logger.NewNop())
}

func enqueue(t *testing.T, outbox *fakeOutboxRepo, tenantID string, op entity.Operation) {
	t.Helper()
	entry, err := entity.NewOutboxEntry(tenantID, op, entity.TransactionPayload{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, outbox.Append(entry))
}

func acmeTenants() *fakeTenantRepo {
	return &fakeTenantRepo{tenants: map[string]*entity.Tenant{
		"acme":  {ID: "uuid-acme", TenantID: "acme"},
		"globex": {ID: "uuid-globex", TenantID: "globex"},
	}}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Pasada feliz: todas las entradas se entregan en orden y el outbox queda vacío.
func TestSync_DrenaTodoEnOrden(t *testing.T) {
	outbox := &fakeOutboxRepo{}
	enqueue(t, outbox, "uuid-acme", entity.OpSale)
	enqueue(t, outbox, "uuid-acme", entity.OpPurchase)
	enqueue(t, outbox, "uuid-acme", entity.OpPos)

	d := &recordingDeliverer{}
	engine := newEngine(acmeTenants(), outbox, d)

	result, err := engine.Sync(context.Background(), "acme", "tok")
	require.NoError(t, err)

	assert.Equal(t, 3, result.Attempted)
	assert.Equal(t, 3, result.Delivered)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, []entity.Operation{entity.OpSale, entity.OpPurchase, entity.OpPos}, d.delivered,
		"las entregas deben seguir el orden de creación")

	remaining, _ := outbox.ListByTenant("uuid-acme")
	assert.Empty(t, remaining, "el outbox debe quedar vacío tras una pasada exitosa")
}

// Fallo intermedio: la segunda entrega falla, la pasada continúa con la tercera
// y solo la fallida queda en el outbox para la próxima pasada.
func TestSync_FalloIntermedioContinuaYConserva(t *testing.T) {
	outbox := &fakeOutboxRepo{}
	enqueue(t, outbox, "uuid-acme", entity.OpSale)
	enqueue(t, outbox, "uuid-acme", entity.OpPurchase)
	enqueue(t, outbox, "uuid-acme", entity.OpPos)

	d := &recordingDeliverer{failOn: map[int]bool{2: true}}
	engine := newEngine(acmeTenants(), outbox, d)

	result, err := engine.Sync(context.Background(), "acme", "tok")
	require.NoError(t, err, "un fallo de entrega no es error de la pasada")

	assert.Equal(t, 3, result.Attempted)
	assert.Equal(t, 2, result.Delivered)
	assert.Equal(t, 1, result.Failed)

	remaining, _ := outbox.ListByTenant("uuid-acme")
	require.Len(t, remaining, 1, "solo la entrada fallida debe sobrevivir")
	assert.Equal(t, entity.OpPurchase, remaining[0].Operation)

	// La siguiente pasada reintenta la fallida.
	result2, err := engine.Sync(context.Background(), "acme", "tok")
	require.NoError(t, err)
	assert.Equal(t, 1, result2.Attempted)
	assert.Equal(t, 1, result2.Delivered)

	remaining, _ = outbox.ListByTenant("uuid-acme")
	assert.Empty(t, remaining)
}

// Tenant inexistente: error, sin llamadas de red.
func TestSync_TenantInexistente(t *testing.T) {
	outbox := &fakeOutboxRepo{}
	d := &recordingDeliverer{}
	engine := newEngine(acmeTenants(), outbox, d)

	result, err := engine.Sync(context.Background(), "no-existe", "tok")
	assert.ErrorIs(t, err, domain.ErrTenantNotFound)
	assert.Nil(t, result)
	assert.Zero(t, d.calls, "no debe haber intentos de entrega")
}

// Outbox vacío: pasada exitosa con contadores en cero.
func TestSync_OutboxVacio(t *testing.T) {
	engine := newEngine(acmeTenants(), &fakeOutboxRepo{}, &recordingDeliverer{})

	result, err := engine.Sync(context.Background(), "acme", "tok")
	require.NoError(t, err)
	assert.Equal(t, &appsync.Result{}, result)
}

// Aislamiento entre tenants: la pasada de acme no toca las entradas de globex.
func TestSync_NoTocaOtrosTenants(t *testing.T) {
	outbox := &fakeOutboxRepo{}
	enqueue(t, outbox, "uuid-acme", entity.OpSale)
	enqueue(t, outbox, "uuid-globex", entity.OpSale)

	engine := newEngine(acmeTenants(), outbox, &recordingDeliverer{})

	result, err := engine.Sync(context.Background(), "acme", "tok")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Attempted)

	remaining, _ := outbox.ListByTenant("uuid-globex")
	assert.Len(t, remaining, 1, "las entradas de globex deben quedar intactas")
}

// Pasadas concurrentes del mismo tenant se serializan: ninguna entrada se
// entrega dos veces por carrera entre List y Remove.
func TestSync_ConcurrenciaMismoTenant(t *testing.T) {
	outbox := &fakeOutboxRepo{}
	for i := 0; i < 10; i++ {
		enqueue(t, outbox, "uuid-acme", entity.OpSale)
	}

	d := &recordingDeliverer{}
	engine := newEngine(acmeTenants(), outbox, d)

	var wg stdsync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := engine.Sync(context.Background(), "acme", "tok")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, d.delivered, 10, "cada entrada debe entregarse exactamente una vez")
	remaining, _ := outbox.ListByTenant("uuid-acme")
	assert.Empty(t, remaining)
}
