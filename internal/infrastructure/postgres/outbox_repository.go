package postgres

import (
	"context"
	"fmt"

	"github.com/jcastano/erp-nodo-api/internal/domain/entity"
	"github.com/jcastano/erp-nodo-api/internal/domain/repository"
)

var _ repository.OutboxRepository = (*OutboxRepo)(nil)

// OutboxRepo log append-only de mutaciones pendientes sobre PostgreSQL.
// El BIGSERIAL id es el índice monotónico que define el orden de reenvío;
// no se depende del orden incidental de inserción de filas.
type OutboxRepo struct {
	q Querier
}

// NewOutboxRepository construye el adaptador. Pasar pool o tx (Querier) —
// Append solo tiene sentido dentro de la tx de la mutación de dominio.
func NewOutboxRepository(q Querier) *OutboxRepo {
	return &OutboxRepo{q: q}
}

// Append agrega una entrada y asigna su ID monotónico vía RETURNING.
func (r *OutboxRepo) Append(entry *entity.OutboxEntry) error {
	err := r.q.QueryRow(context.Background(),
		`INSERT INTO outbox_entries (tenant_id, operation, data, created_at)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		entry.TenantID, string(entry.Operation), entry.Data, entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("append outbox entry: %w", err)
	}
	return nil
}

// ListByTenant devuelve las entradas pendientes del tenant en orden FIFO (id ASC).
func (r *OutboxRepo) ListByTenant(tenantID string) ([]*entity.OutboxEntry, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, tenant_id, operation, data, created_at
		 FROM outbox_entries WHERE tenant_id = $1 ORDER BY id ASC`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list outbox entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.OutboxEntry
	for rows.Next() {
		var e entity.OutboxEntry
		var op string
		if err := rows.Scan(&e.ID, &e.TenantID, &op, &e.Data, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outbox entry: %w", err)
		}
		e.Operation = entity.Operation(op)
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Remove elimina una entrada tras aceptación remota confirmada.
// Idempotente: si la fila ya no existe no es error.
func (r *OutboxRepo) Remove(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM outbox_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("remove outbox entry: %w", err)
	}
	return nil
}
