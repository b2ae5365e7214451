package repository

import "github.com/jcastano/erp-nodo-api/internal/domain/entity"

// TenantRepository define el puerto de persistencia para Tenant (DIP).
// La implementación vive en infrastructure.
type TenantRepository interface {
	Create(tenant *entity.Tenant) error
	GetByID(id string) (*entity.Tenant, error)
	// GetByTenantID busca por el identificador externo (X-Tenant-ID).
	GetByTenantID(tenantID string) (*entity.Tenant, error)
	Update(tenant *entity.Tenant) error
}
