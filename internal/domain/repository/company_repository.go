package repository

import "github.com/jcastano/erp-nodo-api/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company (DIP).
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	ListByTenant(tenantID string) ([]*entity.Company, error)
}
