// Package backup orquesta los respaldos de la base local: un volcado SQL por
// solicitud más un registro de procedencia.
package backup

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jcastano/erp-nodo-api/internal/domain"
	"github.com/jcastano/erp-nodo-api/internal/domain/entity"
	"github.com/jcastano/erp-nodo-api/internal/domain/repository"
	"github.com/jcastano/erp-nodo-api/pkg/logger"
)

// Dumper puerto del mecanismo de volcado. La implementación de producción
// (infrastructure/backup) invoca pg_dump.
type Dumper interface {
	Dump(ctx context.Context, path string) error
}

// UseCase crea respaldos y registra su procedencia.
type UseCase struct {
	tenantRepo repository.TenantRepository
	backupRepo repository.BackupRepository
	dumper     Dumper
	dir        string
	log        *logger.Logger
}

// NewUseCase construye el caso de uso de respaldos. dir es el directorio
// destino de los volcados.
func NewUseCase(
	tenantRepo repository.TenantRepository,
	backupRepo repository.BackupRepository,
	dumper Dumper,
	dir string,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		tenantRepo: tenantRepo,
		backupRepo: backupRepo,
		dumper:     dumper,
		dir:        dir,
		log:        log,
	}
}

// Create ejecuta un volcado de la base y, solo si fue exitoso, registra la
// procedencia. Un fallo del volcado se loguea y retorna false sin registro
// (un BackupRecord existe sii hubo dump exitoso); no hay reintento automático.
func (uc *UseCase) Create(ctx context.Context, tenantID string) (bool, error) {
	tenant, err := uc.tenantRepo.GetByTenantID(tenantID)
	if err != nil {
		return false, err
	}
	if tenant == nil {
		return false, domain.ErrTenantNotFound
	}

	now := time.Now()
	filename := fmt.Sprintf("backup_%s_%s.sql", tenantID, now.Format("20060102_150405"))
	path := filepath.Join(uc.dir, filename)

	if err := uc.dumper.Dump(ctx, path); err != nil {
		uc.log.Error().Err(err).Str("tenant_id", tenantID).Str("path", path).Msg("fallo al crear respaldo")
		return false, nil
	}

	record := &entity.BackupRecord{
		ID:         uuid.New().String(),
		TenantID:   tenant.ID,
		BackupPath: path,
		CreatedAt:  now,
	}
	if err := uc.backupRepo.Create(record); err != nil {
		uc.log.Error().Err(err).Str("tenant_id", tenantID).Str("path", path).Msg("volcado exitoso pero fallo al registrar procedencia")
		return false, err
	}

	uc.log.Info().Str("tenant_id", tenantID).Str("path", path).Msg("respaldo creado")
	return true, nil
}

// List devuelve la procedencia de respaldos del tenant.
func (uc *UseCase) List(ctx context.Context, tenantID string) ([]*entity.BackupRecord, error) {
	tenant, err := uc.tenantRepo.GetByTenantID(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrTenantNotFound
	}
	return uc.backupRepo.ListByTenant(tenant.ID)
}
