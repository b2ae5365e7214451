package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jcastano/erp-nodo-api/internal/application/sales"
	"github.com/jcastano/erp-nodo-api/internal/domain/repository"
)

// Ensure TxRunner implements sales.TxRunner.
var _ sales.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Garantiza que la mutación de dominio y su entrada de outbox se confirmen
// juntas: un crash entre ambas nunca deja una sin la otra.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	posRepo repository.PosRepository,
	accountingRepo repository.AccountingRepository,
	outboxRepo repository.OutboxRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productRepo := NewProductRepository(tx)
	saleRepo := NewSaleRepository(tx)
	purchaseRepo := NewPurchaseRepository(tx)
	posRepo := NewPosRepository(tx)
	accountingRepo := NewAccountingRepository(tx)
	outboxRepo := NewOutboxRepository(tx)

	if err := fn(productRepo, saleRepo, purchaseRepo, posRepo, accountingRepo, outboxRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
