package postgres

import (
	"context"
	"fmt"

	"github.com/jcastano/erp-nodo-api/internal/domain/entity"
	"github.com/jcastano/erp-nodo-api/internal/domain/repository"
)

var (
	_ repository.SaleRepository       = (*SaleRepo)(nil)
	_ repository.PurchaseRepository   = (*PurchaseRepo)(nil)
	_ repository.PosRepository        = (*PosRepo)(nil)
	_ repository.AccountingRepository = (*AccountingRepo)(nil)
)

// SaleRepo persistencia de ventas sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo { return &SaleRepo{q: q} }

// Create persiste una venta.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO sales (id, tenant_id, product_id, quantity, total_amount, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		sale.ID, sale.TenantID, sale.ProductID, sale.Quantity, sale.TotalAmount, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// ListByTenant lista ventas de un tenant en orden de creación.
func (r *SaleRepo) ListByTenant(tenantID string) ([]*entity.Sale, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, tenant_id, product_id, quantity, total_amount, created_at
		 FROM sales WHERE tenant_id = $1 ORDER BY created_at`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.TenantID, &s.ProductID, &s.Quantity, &s.TotalAmount, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// PurchaseRepo persistencia de compras sobre PostgreSQL.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo { return &PurchaseRepo{q: q} }

// Create persiste una compra.
func (r *PurchaseRepo) Create(purchase *entity.Purchase) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO purchases (id, tenant_id, product_id, quantity, total_amount, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		purchase.ID, purchase.TenantID, purchase.ProductID, purchase.Quantity, purchase.TotalAmount, purchase.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// ListByTenant lista compras de un tenant en orden de creación.
func (r *PurchaseRepo) ListByTenant(tenantID string) ([]*entity.Purchase, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, tenant_id, product_id, quantity, total_amount, created_at
		 FROM purchases WHERE tenant_id = $1 ORDER BY created_at`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := rows.Scan(&p.ID, &p.TenantID, &p.ProductID, &p.Quantity, &p.TotalAmount, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// PosRepo persistencia de transacciones POS sobre PostgreSQL.
type PosRepo struct {
	q Querier
}

// NewPosRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPosRepository(q Querier) *PosRepo { return &PosRepo{q: q} }

// Create persiste una transacción POS.
func (r *PosRepo) Create(pos *entity.PosTransaction) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO pos_transactions (id, tenant_id, product_id, quantity, total_amount, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		pos.ID, pos.TenantID, pos.ProductID, pos.Quantity, pos.TotalAmount, pos.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert pos transaction: %w", err)
	}
	return nil
}

// ListByTenant lista transacciones POS de un tenant en orden de creación.
func (r *PosRepo) ListByTenant(tenantID string) ([]*entity.PosTransaction, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, tenant_id, product_id, quantity, total_amount, created_at
		 FROM pos_transactions WHERE tenant_id = $1 ORDER BY created_at`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list pos transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.PosTransaction
	for rows.Next() {
		var p entity.PosTransaction
		if err := rows.Scan(&p.ID, &p.TenantID, &p.ProductID, &p.Quantity, &p.TotalAmount, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pos transaction: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// AccountingRepo persistencia de líneas contables sobre PostgreSQL.
type AccountingRepo struct {
	q Querier
}

// NewAccountingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountingRepository(q Querier) *AccountingRepo { return &AccountingRepo{q: q} }

// Create persiste una línea contable.
func (r *AccountingRepo) Create(entry *entity.AccountingEntry) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO accounting_entries (id, tenant_id, transaction_type, amount, description, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.TenantID, entry.TransactionType, entry.Amount, entry.Description, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert accounting entry: %w", err)
	}
	return nil
}

// ListByTenant lista líneas contables de un tenant en orden de creación.
func (r *AccountingRepo) ListByTenant(tenantID string) ([]*entity.AccountingEntry, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, tenant_id, transaction_type, amount, description, created_at
		 FROM accounting_entries WHERE tenant_id = $1 ORDER BY created_at`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list accounting entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.AccountingEntry
	for rows.Next() {
		var e entity.AccountingEntry
		if err := rows.Scan(&e.ID, &e.TenantID, &e.TransactionType, &e.Amount, &e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan accounting entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
