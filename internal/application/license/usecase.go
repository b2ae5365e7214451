package license

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jcastano/erp-nodo-api/internal/domain"
	"github.com/jcastano/erp-nodo-api/internal/domain/entity"
	"github.com/jcastano/erp-nodo-api/internal/domain/repository"
	"github.com/jcastano/erp-nodo-api/pkg/licensing"
	"github.com/jcastano/erp-nodo-api/pkg/logger"
)

// UseCase sincroniza el ledger local de licencias con la autoridad central y
// responde consultas de validez/features contra la llave pública provisionada.
type UseCase struct {
	tenantRepo  repository.TenantRepository
	licenseRepo repository.LicenseKeyRepository
	fetcher     Fetcher
	verifier    *licensing.Verifier
	log         *logger.Logger
}

// NewUseCase construye el caso de uso de licencias.
func NewUseCase(
	tenantRepo repository.TenantRepository,
	licenseRepo repository.LicenseKeyRepository,
	fetcher Fetcher,
	verifier *licensing.Verifier,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		tenantRepo:  tenantRepo,
		licenseRepo: licenseRepo,
		fetcher:     fetcher,
		verifier:    verifier,
		log:         log,
	}
}

// Fetch descarga las licencias del tenant desde la autoridad central y las
// persiste como registros nuevos (ledger append-only: sin dedupe contra
// registros existentes, las licencias pueden reemitirse y el historial es
// auditoría). Operación deliberadamente no idempotente.
//
// Retorna ErrTenantNotFound si el tenant no existe (sin llamada de red).
// Un error de transporte o de la autoridad se loguea y retorna false sin
// mutación parcial de estado. Retorna true sii llegó al menos una licencia;
// un resultado vacío es false pero no error.
func (uc *UseCase) Fetch(ctx context.Context, tenantID, token string) (bool, error) {
	tenant, err := uc.tenantRepo.GetByTenantID(tenantID)
	if err != nil {
		return false, err
	}
	if tenant == nil {
		return false, domain.ErrTenantNotFound
	}

	remotes, err := uc.fetcher.FetchLicenses(ctx, tenantID, token)
	if err != nil {
		uc.log.Error().Err(err).Str("tenant_id", tenantID).Msg("fallo al descargar licencias de la main API")
		return false, nil
	}

	now := time.Now()
	for _, rl := range remotes {
		record := &entity.LicenseKey{
			ID:         uuid.New().String(),
			TenantID:   tenant.ID,
			CompanyID:  rl.CompanyID,
			LicenseKey: rl.Key,
			Signature:  rl.Signature,
			IsActive:   true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := uc.licenseRepo.Create(record); err != nil {
			uc.log.Error().Err(err).Str("tenant_id", tenantID).Msg("fallo al persistir licencia")
			return false, nil
		}
	}

	uc.log.Info().Str("tenant_id", tenantID).Int("count", len(remotes)).Msg("licencias descargadas")
	return len(remotes) > 0, nil
}

// HasValidLicense indica si el tenant tiene al menos un registro activo cuya
// firma verifica y cuyo tenant embebido coincide exactamente con tenantID.
func (uc *UseCase) HasValidLicense(tenantID string) bool {
	tenant, err := uc.tenantRepo.GetByTenantID(tenantID)
	if err != nil || tenant == nil {
		return false
	}
	records, err := uc.licenseRepo.ListActiveByTenant(tenant.ID)
	if err != nil {
		uc.log.Error().Err(err).Str("tenant_id", tenantID).Msg("fallo al listar licencias")
		return false
	}
	for _, rec := range records {
		if uc.verifier.ValidForTenant(tenantID, rec.LicenseKey, rec.Signature) {
			return true
		}
	}
	return false
}

// Features devuelve la unión de features de las licencias válidas del tenant.
func (uc *UseCase) Features(tenantID string) []string {
	tenant, err := uc.tenantRepo.GetByTenantID(tenantID)
	if err != nil || tenant == nil {
		return nil
	}
	records, err := uc.licenseRepo.ListActiveByTenant(tenant.ID)
	if err != nil {
		uc.log.Error().Err(err).Str("tenant_id", tenantID).Msg("fallo al listar licencias")
		return nil
	}
	seen := make(map[string]bool)
	var features []string
	for _, rec := range records {
		if !uc.verifier.ValidForTenant(tenantID, rec.LicenseKey, rec.Signature) {
			continue
		}
		claims, err := licensing.Decode(rec.LicenseKey)
		if err != nil {
			continue
		}
		for _, f := range claims.Features {
			if !seen[f] {
				seen[f] = true
				features = append(features, f)
			}
		}
	}
	return features
}

// VerifyKey aplica el contrato de validez sobre un par key/firma suministrado
// (endpoint público de verificación). Un fallo de firma o de decodificación es
// "no válida", nunca un crash ni un otorgamiento parcial.
func (uc *UseCase) VerifyKey(tenantID, licenseKey, signature string) (bool, []string) {
	if !uc.verifier.Verify(licenseKey, signature) {
		uc.log.Warn().Str("tenant_id", tenantID).Msg("firma de licencia inválida")
		return false, nil
	}
	claims, err := licensing.Decode(licenseKey)
	if err != nil {
		uc.log.Warn().Err(err).Str("tenant_id", tenantID).Msg("licencia no decodificable")
		return false, nil
	}
	if claims.TenantID != tenantID {
		uc.log.Warn().Str("tenant_id", tenantID).Msg("tenant embebido en la licencia no coincide")
		return false, nil
	}
	return true, claims.Features
}
