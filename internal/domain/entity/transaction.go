package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale venta registrada localmente (pendiente de sincronizar vía outbox).
type Sale struct {
	ID          string
	TenantID    string
	ProductID   string
	Quantity    int64
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
}

// Purchase compra registrada localmente.
type Purchase struct {
	ID          string
	TenantID    string
	ProductID   string
	Quantity    int64
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
}

// PosTransaction transacción de punto de venta.
type PosTransaction struct {
	ID          string
	TenantID    string
	ProductID   string
	Quantity    int64
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
}

// AccountingEntry línea contable estilo partida doble simplificada:
// ventas y POS suman, compras restan.
type AccountingEntry struct {
	ID              string
	TenantID        string
	TransactionType string // sale, purchase, pos
	Amount          decimal.Decimal
	Description     string
	CreatedAt       time.Time
}
