package repository

import "github.com/jcastano/erp-nodo-api/internal/domain/entity"

// SaleRepository puerto de persistencia para ventas.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	ListByTenant(tenantID string) ([]*entity.Sale, error)
}

// PurchaseRepository puerto de persistencia para compras.
type PurchaseRepository interface {
	Create(purchase *entity.Purchase) error
	ListByTenant(tenantID string) ([]*entity.Purchase, error)
}

// PosRepository puerto de persistencia para transacciones POS.
type PosRepository interface {
	Create(pos *entity.PosTransaction) error
	ListByTenant(tenantID string) ([]*entity.PosTransaction, error)
}

// AccountingRepository puerto de persistencia para líneas contables.
type AccountingRepository interface {
	Create(entry *entity.AccountingEntry) error
	ListByTenant(tenantID string) ([]*entity.AccountingEntry, error)
}
