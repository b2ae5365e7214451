package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario de un tenant.
type Product struct {
	ID          string
	TenantID    string
	Name        string
	Description string
	Quantity    int64
	Price       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
