package postgres

import (
	"context"
	"fmt"

	"github.com/jcastano/erp-nodo-api/internal/domain/entity"
	"github.com/jcastano/erp-nodo-api/internal/domain/repository"
)

var _ repository.LicenseKeyRepository = (*LicenseKeyRepo)(nil)

// LicenseKeyRepo implementación del ledger de licencias sobre PostgreSQL.
// Sin DELETE: el historial de licencias es dato de auditoría.
type LicenseKeyRepo struct {
	q Querier
}

// NewLicenseKeyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLicenseKeyRepository(q Querier) *LicenseKeyRepo {
	return &LicenseKeyRepo{q: q}
}

const licenseColumns = `id, tenant_id, company_id, license_key, signature, is_active, created_at, updated_at`

// Create agrega un registro de licencia al ledger (append-only, sin dedupe:
// cada fetch es aditivo porque las licencias pueden reemitirse).
func (r *LicenseKeyRepo) Create(license *entity.LicenseKey) error {
	query := `
		INSERT INTO license_keys (` + licenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		license.ID, license.TenantID, license.CompanyID, license.LicenseKey,
		license.Signature, license.IsActive, license.CreatedAt, license.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert license: %w", err)
	}
	return nil
}

// ListActiveByTenant lista los registros activos de un tenant.
func (r *LicenseKeyRepo) ListActiveByTenant(tenantID string) ([]*entity.LicenseKey, error) {
	return r.list(`SELECT `+licenseColumns+` FROM license_keys WHERE tenant_id = $1 AND is_active ORDER BY created_at`, tenantID)
}

// ListByTenant lista todo el historial de licencias de un tenant.
func (r *LicenseKeyRepo) ListByTenant(tenantID string) ([]*entity.LicenseKey, error) {
	return r.list(`SELECT `+licenseColumns+` FROM license_keys WHERE tenant_id = $1 ORDER BY created_at`, tenantID)
}

func (r *LicenseKeyRepo) list(query, tenantID string) ([]*entity.LicenseKey, error) {
	rows, err := r.q.Query(context.Background(), query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list licenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.LicenseKey
	for rows.Next() {
		var l entity.LicenseKey
		if err := rows.Scan(&l.ID, &l.TenantID, &l.CompanyID, &l.LicenseKey,
			&l.Signature, &l.IsActive, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan license: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Deactivate apaga el flag is_active de un registro (única mutación permitida).
func (r *LicenseKeyRepo) Deactivate(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE license_keys SET is_active = false, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate license: %w", err)
	}
	return nil
}
