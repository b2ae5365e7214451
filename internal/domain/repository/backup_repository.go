package repository

import "github.com/jcastano/erp-nodo-api/internal/domain/entity"

// BackupRepository puerto de persistencia para la procedencia de respaldos.
type BackupRepository interface {
	Create(record *entity.BackupRecord) error
	ListByTenant(tenantID string) ([]*entity.BackupRecord, error)
}
