package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRequest body para POST /api/v1/sales/, /purchases/ y /pos/.
// Nombres de campo compatibles con los clientes del nodo.
type TransactionRequest struct {
	ProductID   string          `json:"productId"`
	Quantity    int64           `json:"quantity"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// TransactionResponse transacción registrada (venta, compra o POS).
type TransactionResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	Quantity    int64           `json:"quantity"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	CreatedAt   time.Time       `json:"created_at"`
}
