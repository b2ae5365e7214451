package repository

import "github.com/jcastano/erp-nodo-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	// GetByIDForTenant obtiene el producto solo si pertenece al tenant.
	GetByIDForTenant(id, tenantID string) (*entity.Product, error)
	// UpdateQuantity fija la cantidad en stock (usada dentro de la tx de venta/compra).
	UpdateQuantity(id string, quantity int64) error
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Product, error)
}
