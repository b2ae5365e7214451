// Package auth implementa registro y login de usuarios del nodo.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jcastano/erp-nodo-api/internal/domain"
	"github.com/jcastano/erp-nodo-api/internal/domain/entity"
	"github.com/jcastano/erp-nodo-api/internal/domain/repository"
	"github.com/jcastano/erp-nodo-api/pkg/config"
	"github.com/jcastano/erp-nodo-api/pkg/jwt"
	"github.com/jcastano/erp-nodo-api/pkg/logger"
)

// LicenseService subset del caso de uso de licencias que auth necesita.
// Lo implementa *license.UseCase; la interfaz permite dobles en tests.
type LicenseService interface {
	Fetch(ctx context.Context, tenantID, token string) (bool, error)
	HasValidLicense(tenantID string) bool
}

// BackupCreator subset del caso de uso de respaldos que el registro necesita.
type BackupCreator interface {
	Create(ctx context.Context, tenantID string) (bool, error)
}

// RegisterInput datos de registro de un nodo nuevo (o de un usuario adicional
// sobre un tenant ya aprovisionado).
type RegisterInput struct {
	Username   string
	Password   string
	Email      string
	TenantID   string // identificador externo
	TenantName string
}

// RegisterResult resultado del registro.
type RegisterResult struct {
	User         *entity.User
	LicenseValid bool
}

// LoginResult tokens de acceso emitidos por el login.
type LoginResult struct {
	Access          string
	Refresh         string
	IsLimitedAccess bool
}

// UseCase registro y login.
type UseCase struct {
	tenantRepo  repository.TenantRepository
	companyRepo repository.CompanyRepository
	userRepo    repository.UserRepository
	licenses    LicenseService
	backups     BackupCreator
	jwtCfg      config.JWTConfig
	log         *logger.Logger
}

// NewUseCase construye el caso de uso de autenticación.
func NewUseCase(
	tenantRepo repository.TenantRepository,
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
	licenses LicenseService,
	backups BackupCreator,
	jwtCfg config.JWTConfig,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		tenantRepo:  tenantRepo,
		companyRepo: companyRepo,
		userRepo:    userRepo,
		licenses:    licenses,
		backups:     backups,
		jwtCfg:      jwtCfg,
		log:         log,
	}
}

// Register aprovisiona el tenant si no existe (con su Company inicial), crea
// el usuario con hash bcrypt y dispara, best-effort, la descarga de licencias
// y un respaldo inicial: si la autoridad central no está alcanzable el
// registro igual queda (nodo offline-first), con LicenseValid=false.
func (uc *UseCase) Register(ctx context.Context, in RegisterInput) (*RegisterResult, error) {
	if in.Username == "" || in.Password == "" || in.TenantID == "" {
		return nil, domain.ErrInvalidInput
	}

	tenant, err := uc.tenantRepo.GetByTenantID(in.TenantID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if tenant == nil {
		tenant = &entity.Tenant{
			ID:        uuid.New().String(),
			TenantID:  in.TenantID,
			Name:      in.TenantName,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.tenantRepo.Create(tenant); err != nil {
			return nil, err
		}
		company := &entity.Company{
			ID:        uuid.New().String(),
			TenantID:  tenant.ID,
			Name:      in.TenantName,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.companyRepo.Create(company); err != nil {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		TenantID:     tenant.ID,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}

	// Descarga de licencias con un token recién emitido; el fallo no aborta
	// el registro.
	licenseValid := false
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, in.TenantID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		uc.log.Error().Err(err).Msg("no se pudo emitir token para descarga inicial de licencias")
	} else {
		licenseValid, err = uc.licenses.Fetch(ctx, in.TenantID, token)
		if err != nil {
			uc.log.Warn().Err(err).Str("tenant_id", in.TenantID).Msg("descarga inicial de licencias fallida")
			licenseValid = false
		}
	}

	// Respaldo inicial, también best-effort.
	if _, err := uc.backups.Create(ctx, in.TenantID); err != nil {
		uc.log.Warn().Err(err).Str("tenant_id", in.TenantID).Msg("respaldo inicial fallido")
	}

	uc.log.Info().Str("tenant_id", in.TenantID).Str("username", in.Username).Msg("usuario registrado")
	return &RegisterResult{User: user, LicenseValid: licenseValid}, nil
}

// Login autentica con bcrypt y emite tokens. El usuario debe pertenecer al
// tenant indicado; un usuario de otro tenant recibe el mismo error que una
// contraseña incorrecta. IsLimitedAccess refleja la ausencia de licencia
// válida: el cliente degrada funcionalidad pero el login nunca se bloquea
// por licencia.
func (uc *UseCase) Login(ctx context.Context, tenantID, username, password string) (*LoginResult, error) {
	tenant, err := uc.tenantRepo.GetByTenantID(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrTenantNotFound
	}

	user, err := uc.userRepo.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil || user.TenantID != tenant.ID {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	access, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, tenantID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, err
	}
	// El refresh dura más que el access; misma firma, distinto horizonte.
	refresh, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, tenantID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration*24)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Access:          access,
		Refresh:         refresh,
		IsLimitedAccess: !uc.licenses.HasValidLicense(tenantID),
	}, nil
}
