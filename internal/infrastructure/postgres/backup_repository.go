package postgres

import (
	"context"
	"fmt"

	"github.com/jcastano/erp-nodo-api/internal/domain/entity"
	"github.com/jcastano/erp-nodo-api/internal/domain/repository"
)

var _ repository.BackupRepository = (*BackupRepo)(nil)

// BackupRepo persistencia de procedencia de respaldos sobre PostgreSQL.
type BackupRepo struct {
	q Querier
}

// NewBackupRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBackupRepository(q Querier) *BackupRepo {
	return &BackupRepo{q: q}
}

// Create registra un respaldo exitoso.
func (r *BackupRepo) Create(record *entity.BackupRecord) error {
	_, err := r.q.Exec(context.Background(),
		`INSERT INTO backups (id, tenant_id, backup_path, created_at)
		 VALUES ($1, $2, $3, $4)`,
		record.ID, record.TenantID, record.BackupPath, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert backup record: %w", err)
	}
	return nil
}

// ListByTenant lista los respaldos de un tenant, más reciente primero.
func (r *BackupRepo) ListByTenant(tenantID string) ([]*entity.BackupRecord, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, tenant_id, backup_path, created_at
		 FROM backups WHERE tenant_id = $1 ORDER BY created_at DESC`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list backups: %w", err)
	}
	defer rows.Close()
	var list []*entity.BackupRecord
	for rows.Next() {
		var b entity.BackupRecord
		if err := rows.Scan(&b.ID, &b.TenantID, &b.BackupPath, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan backup record: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
