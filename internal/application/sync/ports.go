package sync

import (
	"context"
	"encoding/json"

	"github.com/jcastano/erp-nodo-api/internal/domain/entity"
)

// Deliverer puerto de entrega de mutaciones hacia la autoridad central.
// Una entrega retorna nil solo ante aceptación confirmada; cualquier error de
// transporte, timeout o rechazo es error. La implementación vive en
// infrastructure/mainapi.
type Deliverer interface {
	Deliver(ctx context.Context, tenantID, token string, op entity.Operation, data json.RawMessage) error
}
