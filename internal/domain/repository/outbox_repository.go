package repository

import "github.com/jcastano/erp-nodo-api/internal/domain/entity"

// OutboxRepository puerto del log ordenado de mutaciones pendientes de
// sincronizar. Append debe ejecutarse dentro de la misma transacción que la
// mutación de dominio (vía TxRunner) para que un crash nunca deje una sin la
// otra.
type OutboxRepository interface {
	// Append agrega una entrada y asigna su ID monotónico.
	Append(entry *entity.OutboxEntry) error
	// ListByTenant devuelve las entradas pendientes del tenant en orden de
	// creación (id ASC). No las elimina: eso es responsabilidad del caller
	// tras confirmación de entrega.
	ListByTenant(tenantID string) ([]*entity.OutboxEntry, error)
	// Remove elimina una entrada; idempotente (eliminar una ya eliminada no es error).
	Remove(id int64) error
}
