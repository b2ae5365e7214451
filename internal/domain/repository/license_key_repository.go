package repository

import "github.com/jcastano/erp-nodo-api/internal/domain/entity"

// LicenseKeyRepository puerto de persistencia para el ledger de licencias.
// Solo hay Create, listados y desactivación: los registros nunca se borran
// ni se reescriben (historial de auditoría).
type LicenseKeyRepository interface {
	Create(license *entity.LicenseKey) error
	ListActiveByTenant(tenantID string) ([]*entity.LicenseKey, error)
	ListByTenant(tenantID string) ([]*entity.LicenseKey, error)
	Deactivate(id string) error
}
