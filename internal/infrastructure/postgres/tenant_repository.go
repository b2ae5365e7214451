package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jcastano/erp-nodo-api/internal/domain"
	"github.com/jcastano/erp-nodo-api/internal/domain/entity"
	"github.com/jcastano/erp-nodo-api/internal/domain/repository"
)

var _ repository.TenantRepository = (*TenantRepo)(nil)

// TenantRepo implementación del puerto TenantRepository sobre PostgreSQL (usable con pool o tx).
type TenantRepo struct {
	q Querier
}

// NewTenantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTenantRepository(q Querier) *TenantRepo {
	return &TenantRepo{q: q}
}

// Create persiste un nuevo tenant. TenantID (externo) es único.
func (r *TenantRepo) Create(tenant *entity.Tenant) error {
	query := `
		INSERT INTO tenants (id, tenant_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		tenant.ID, tenant.TenantID, tenant.Name, tenant.CreatedAt, tenant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

// GetByID obtiene un tenant por su llave interna.
func (r *TenantRepo) GetByID(id string) (*entity.Tenant, error) {
	return r.getBy(`SELECT id, tenant_id, name, created_at, updated_at FROM tenants WHERE id = $1`, id)
}

// GetByTenantID obtiene un tenant por su identificador externo.
func (r *TenantRepo) GetByTenantID(tenantID string) (*entity.Tenant, error) {
	return r.getBy(`SELECT id, tenant_id, name, created_at, updated_at FROM tenants WHERE tenant_id = $1`, tenantID)
}

func (r *TenantRepo) getBy(query, arg string) (*entity.Tenant, error) {
	var t entity.Tenant
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&t.ID, &t.TenantID, &t.Name, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return &t, nil
}

// Update actualiza el nombre del tenant (lo demás es inmutable tras el registro).
func (r *TenantRepo) Update(tenant *entity.Tenant) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE tenants SET name = $2, updated_at = now() WHERE id = $1`,
		tenant.ID, tenant.Name,
	)
	if err != nil {
		return fmt.Errorf("update tenant: %w", err)
	}
	return nil
}
