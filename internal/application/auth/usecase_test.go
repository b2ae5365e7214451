package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jcastano/erp-nodo-api/internal/application/auth"
	"github.com/jcastano/erp-nodo-api/internal/domain"
	"github.com/jcastano/erp-nodo-api/internal/domain/entity"
	"github.com/jcastano/erp-nodo-api/pkg/config"
	pkgjwt "github.com/jcastano/erp-nodo-api/pkg/jwt"
	"github.com/jcastano/erp-nodo-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test
// ──────────────────────────────────────────────────────────────────────────────

type fakeTenantRepo struct {
	tenants map[string]*entity.Tenant // por TenantID externo
}

func (f *fakeTenantRepo) Create(t *entity.Tenant) error {
	f.tenants[t.TenantID] = t
	return nil
}
func (f *fakeTenantRepo) GetByID(string) (*entity.Tenant, error) { return nil, nil }
func (f *fakeTenantRepo) Update(*entity.Tenant) error            { return nil }
func (f *fakeTenantRepo) GetByTenantID(tenantID string) (*entity.Tenant, error) {
	return f.tenants[tenantID], nil
}

type fakeCompanyRepo struct {
	companies []*entity.Company
}

func (f *fakeCompanyRepo) Create(c *entity.Company) error {
	f.companies = append(f.companies, c)
	return nil
}
func (f *fakeCompanyRepo) GetByID(string) (*entity.Company, error)          { return nil, nil }
func (f *fakeCompanyRepo) ListByTenant(string) ([]*entity.Company, error)   { return f.companies, nil }

type fakeUserRepo struct {
	users map[string]*entity.User // por username
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	if _, ok := f.users[u.Username]; ok {
		return domain.ErrUsernameTaken
	}
	f.users[u.Username] = u
	return nil
}
func (f *fakeUserRepo) GetByID(string) (*entity.User, error) { return nil, nil }
func (f *fakeUserRepo) FindByUsername(username string) (*entity.User, error) {
	return f.users[username], nil
}
func (f *fakeUserRepo) ListByTenant(string, int, int) ([]*entity.User, error) { return nil, nil }

type fakeLicenseService struct {
	fetchResult bool
	fetchErr    error
	hasValid    bool
	fetchCalls  int
}

func (f *fakeLicenseService) Fetch(context.Context, string, string) (bool, error) {
	f.fetchCalls++
	return f.fetchResult, f.fetchErr
}
func (f *fakeLicenseService) HasValidLicense(string) bool { return f.hasValid }

type fakeBackups struct {
	calls int
}

func (f *fakeBackups) Create(context.Context, string) (bool, error) {
	f.calls++
	return true, nil
}

var testJWTCfg = config.JWTConfig{Secret: "secret-de-test", Expiration: 30, Issuer: "erp-nodo-test"}

type fixture struct {
	uc       *auth.UseCase
	tenants  *fakeTenantRepo
	companies *fakeCompanyRepo
	users    *fakeUserRepo
	licenses *fakeLicenseService
	backups  *fakeBackups
}

func setup() *fixture {
	f := &fixture{
		tenants:   &fakeTenantRepo{tenants: make(map[string]*entity.Tenant)},
		companies: &fakeCompanyRepo{},
		users:     &fakeUserRepo{users: make(map[string]*entity.User)},
		licenses:  &fakeLicenseService{},
		backups:   &fakeBackups{},
	}
	f.uc = auth.NewUseCase(f.tenants, f.companies, f.users, f.licenses, f.backups, testJWTCfg, logger.NewNop())
	return f
}

func registerInput() auth.RegisterInput {
	return auth.RegisterInput{
		Username:   "jperez",
		Password:   "clave-segura-123",
		Email:      "jperez@acme.co",
		TenantID:   "acme",
		TenantName: "ACME S.A.S.",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Register
// ──────────────────────────────────────────────────────────────────────────────

// Tenant nuevo: se aprovisiona tenant + company, el usuario queda con hash
// bcrypt y se disparan la descarga de licencias y el respaldo inicial.
func TestRegister_AprovisionaTenantNuevo(t *testing.T) {
	f := setup()
	f.licenses.fetchResult = true

	out, err := f.uc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	assert.True(t, out.LicenseValid)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)
	assert.NotEqual(t, "clave-segura-123", out.User.PasswordHash, "la contraseña nunca se guarda en plano")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(out.User.PasswordHash), []byte("clave-segura-123")))

	tenant, _ := f.tenants.GetByTenantID("acme")
	require.NotNil(t, tenant, "el tenant debe quedar aprovisionado")
	assert.Equal(t, "ACME S.A.S.", tenant.Name)
	require.Len(t, f.companies.companies, 1, "el tenant nuevo recibe su Company inicial")
	assert.Equal(t, tenant.ID, f.companies.companies[0].TenantID)

	assert.Equal(t, 1, f.licenses.fetchCalls)
	assert.Equal(t, 1, f.backups.calls)
}

// Tenant existente: no se duplica ni tenant ni company.
func TestRegister_TenantExistente(t *testing.T) {
	f := setup()

	_, err := f.uc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	in2 := registerInput()
	in2.Username = "mgomez"
	_, err = f.uc.Register(context.Background(), in2)
	require.NoError(t, err)

	assert.Len(t, f.tenants.tenants, 1)
	assert.Len(t, f.companies.companies, 1, "el tenant existente no recibe otra Company")
	assert.Len(t, f.users.users, 2)
}

// La descarga de licencias fallida no aborta el registro (nodo offline-first).
func TestRegister_LicenciaFallidaNoAborta(t *testing.T) {
	f := setup()
	f.licenses.fetchErr = domain.ErrTenantNotFound

	out, err := f.uc.Register(context.Background(), registerInput())
	require.NoError(t, err, "el registro sobrevive al fallo de licencias")
	assert.False(t, out.LicenseValid)
}

// Username repetido: ErrUsernameTaken.
func TestRegister_UsernameRepetido(t *testing.T) {
	f := setup()

	_, err := f.uc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	_, err = f.uc.Register(context.Background(), registerInput())
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

// Campos obligatorios.
func TestRegister_EntradasInvalidas(t *testing.T) {
	f := setup()

	for _, in := range []auth.RegisterInput{
		{Password: "x", TenantID: "acme"},
		{Username: "x", TenantID: "acme"},
		{Username: "x", Password: "y"},
	} {
		_, err := f.uc.Register(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesValidas(t *testing.T) {
	f := setup()
	f.licenses.hasValid = true

	_, err := f.uc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	out, err := f.uc.Login(context.Background(), "acme", "jperez", "clave-segura-123")
	require.NoError(t, err)
	assert.NotEmpty(t, out.Access)
	assert.NotEmpty(t, out.Refresh)
	assert.False(t, out.IsLimitedAccess, "con licencia válida el acceso es completo")

	// El token lleva el identificador externo del tenant.
	userID, tenantID, role, err := pkgjwt.Parse(testJWTCfg.Secret, out.Access)
	require.NoError(t, err)
	assert.NotEmpty(t, userID)
	assert.Equal(t, "acme", tenantID)
	assert.Equal(t, entity.RoleAdmin, role)
}

// Sin licencia válida el login funciona pero marca acceso limitado.
func TestLogin_SinLicenciaEsAccesoLimitado(t *testing.T) {
	f := setup()
	f.licenses.hasValid = false

	_, err := f.uc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	out, err := f.uc.Login(context.Background(), "acme", "jperez", "clave-segura-123")
	require.NoError(t, err, "la falta de licencia nunca bloquea el login")
	assert.True(t, out.IsLimitedAccess)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	f := setup()

	_, err := f.uc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	_, err = f.uc.Login(context.Background(), "acme", "jperez", "otra-clave")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Un usuario de otro tenant recibe el mismo error que una contraseña mala:
// no se filtra la existencia del usuario.
func TestLogin_UsuarioDeOtroTenant(t *testing.T) {
	f := setup()

	_, err := f.uc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	in2 := registerInput()
	in2.TenantID = "globex"
	in2.TenantName = "Globex"
	in2.Username = "mgomez"
	_, err = f.uc.Register(context.Background(), in2)
	require.NoError(t, err)

	_, err = f.uc.Login(context.Background(), "globex", "jperez", "clave-segura-123")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_TenantInexistente(t *testing.T) {
	f := setup()

	_, err := f.uc.Login(context.Background(), "no-existe", "jperez", "clave")
	assert.ErrorIs(t, err, domain.ErrTenantNotFound)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	f := setup()
	_, err := f.uc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	_, err = f.uc.Login(context.Background(), "acme", "no-existe", "clave")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
