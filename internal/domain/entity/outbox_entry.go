package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Operation etiqueta de operación de una entrada del outbox (conjunto cerrado).
type Operation string

const (
	OpSale     Operation = "sale"
	OpPurchase Operation = "purchase"
	OpPos      Operation = "pos"
)

// Valid indica si la operación pertenece al conjunto cerrado.
func (o Operation) Valid() bool {
	switch o {
	case OpSale, OpPurchase, OpPos:
		return true
	}
	return false
}

// OutboxEntry entrada durable del log de sincronización pendiente.
// Existe si y solo si la mutación de dominio asociada fue confirmada localmente
// pero aún no aceptada por la autoridad central: se crea en la misma
// transacción que la mutación y se destruye solo tras aceptación remota
// confirmada. Nunca se actualiza en sitio. El ID (BIGSERIAL) define el orden
// de reenvío FIFO por tenant.
type OutboxEntry struct {
	ID        int64
	TenantID  string
	Operation Operation
	Data      json.RawMessage
	CreatedAt time.Time
}

// TransactionPayload forma del payload para sale/purchase/pos: una forma por
// operación del enum, en lugar de un JSON sin tipo.
type TransactionPayload struct {
	ProductID   string          `json:"product_id"`
	Quantity    int64           `json:"quantity"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewOutboxEntry arma una entrada con el payload tipado ya serializado.
func NewOutboxEntry(tenantID string, op Operation, payload TransactionPayload) (*OutboxEntry, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &OutboxEntry{
		TenantID:  tenantID,
		Operation: op,
		Data:      data,
		CreatedAt: time.Now(),
	}, nil
}
