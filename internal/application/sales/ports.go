package sales

import (
	"context"

	"github.com/jcastano/erp-nodo-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el ajuste de stock, la fila de
// dominio, la línea contable y la entrada de outbox se confirmen juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		purchaseRepo repository.PurchaseRepository,
		posRepo repository.PosRepository,
		accountingRepo repository.AccountingRepository,
		outboxRepo repository.OutboxRepository,
	) error) error
}
