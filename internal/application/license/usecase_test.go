package license_test

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applicense "github.com/jcastano/erp-nodo-api/internal/application/license"
	"github.com/jcastano/erp-nodo-api/internal/domain"
	"github.com/jcastano/erp-nodo-api/internal/domain/entity"
	"github.com/jcastano/erp-nodo-api/pkg/licensing"
	"github.com/jcastano/erp-nodo-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles de test
// ──────────────────────────────────────────────────────────────────────────────

type fakeTenantRepo struct {
	tenants map[string]*entity.Tenant
}

func (f *fakeTenantRepo) Create(*entity.Tenant) error          { return nil }
func (f *fakeTenantRepo) GetByID(string) (*entity.Tenant, error) { return nil, nil }
func (f *fakeTenantRepo) Update(*entity.Tenant) error          { return nil }
func (f *fakeTenantRepo) GetByTenantID(tenantID string) (*entity.Tenant, error) {
	return f.tenants[tenantID], nil
}

type fakeLicenseRepo struct {
	records   []*entity.LicenseKey
	createErr error
}

func (f *fakeLicenseRepo) Create(l *entity.LicenseKey) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.records = append(f.records, l)
	return nil
}

func (f *fakeLicenseRepo) ListActiveByTenant(tenantID string) ([]*entity.LicenseKey, error) {
	var out []*entity.LicenseKey
	for _, r := range f.records {
		if r.TenantID == tenantID && r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeLicenseRepo) ListByTenant(tenantID string) ([]*entity.LicenseKey, error) {
	var out []*entity.LicenseKey
	for _, r := range f.records {
		if r.TenantID == tenantID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeLicenseRepo) Deactivate(id string) error {
	for _, r := range f.records {
		if r.ID == id {
			r.IsActive = false
		}
	}
	return nil
}

type fakeFetcher struct {
	licenses []applicense.RemoteLicense
	err      error
	calls    int
}

func (f *fakeFetcher) FetchLicenses(context.Context, string, string) ([]applicense.RemoteLicense, error) {
	f.calls++
	return f.licenses, f.err
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de firma
// ──────────────────────────────────────────────────────────────────────────────

type signer struct {
	priv     *rsa.PrivateKey
	verifier *licensing.Verifier
}

func newSigner(t *testing.T) *signer {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&priv.PublicKey)
	require.NoError(t, err)
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})

	verifier, err := licensing.NewVerifier(pemBytes)
	require.NoError(t, err)
	return &signer{priv: priv, verifier: verifier}
}

// issue emite una licencia firmada para el tenant dado.
func (s *signer) issue(t *testing.T, tenantID string, features ...string) applicense.RemoteLicense {
	t.Helper()
	key := licensing.Encode(licensing.Claims{TenantID: tenantID, Features: features})
	digest := sha256.Sum256([]byte(key))
	sig, err := rsa.SignPKCS1v15(rand.Reader, s.priv, crypto.SHA256, digest[:])
	require.NoError(t, err)
	return applicense.RemoteLicense{Key: key, Signature: base64.StdEncoding.EncodeToString(sig)}
}

func acmeTenants() *fakeTenantRepo {
	return &fakeTenantRepo{tenants: map[string]*entity.Tenant{
		"acme": {ID: "uuid-acme", TenantID: "acme"},
	}}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Fetch
// ──────────────────────────────────────────────────────────────────────────────

// Dos licencias remotas → dos registros nuevos y true.
func TestFetch_PersisteTodasLasLicencias(t *testing.T) {
	s := newSigner(t)
	repo := &fakeLicenseRepo{}
	fetcher := &fakeFetcher{licenses: []applicense.RemoteLicense{
		s.issue(t, "acme", "pos"),
		s.issue(t, "acme", "reports"),
	}}
	uc := applicense.NewUseCase(acmeTenants(), repo, fetcher, s.verifier, logger.NewNop())

	ok, err := uc.Fetch(context.Background(), "acme", "tok")
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, repo.records, 2)
	assert.Equal(t, "uuid-acme", repo.records[0].TenantID)
	assert.True(t, repo.records[0].IsActive)
}

// El ledger es append-only: repetir la descarga duplica los registros.
func TestFetch_SinDedupe(t *testing.T) {
	s := newSigner(t)
	repo := &fakeLicenseRepo{}
	fetcher := &fakeFetcher{licenses: []applicense.RemoteLicense{s.issue(t, "acme")}}
	uc := applicense.NewUseCase(acmeTenants(), repo, fetcher, s.verifier, logger.NewNop())

	for i := 0; i < 3; i++ {
		ok, err := uc.Fetch(context.Background(), "acme", "tok")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	assert.Len(t, repo.records, 3, "cada descarga agrega registros nuevos")
}

// Respuesta vacía: no es error, pero el resultado es false.
func TestFetch_SinLicenciasRetornaFalse(t *testing.T) {
	s := newSigner(t)
	repo := &fakeLicenseRepo{}
	uc := applicense.NewUseCase(acmeTenants(), repo, &fakeFetcher{}, s.verifier, logger.NewNop())

	ok, err := uc.Fetch(context.Background(), "acme", "tok")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, repo.records)
}

// Fallo de transporte: false sin error y sin mutación de estado.
func TestFetch_ErrorDeTransporte(t *testing.T) {
	s := newSigner(t)
	repo := &fakeLicenseRepo{}
	fetcher := &fakeFetcher{err: errors.New("connection refused")}
	uc := applicense.NewUseCase(acmeTenants(), repo, fetcher, s.verifier, logger.NewNop())

	ok, err := uc.Fetch(context.Background(), "acme", "tok")
	require.NoError(t, err, "el fallo de red se absorbe como false")
	assert.False(t, ok)
	assert.Empty(t, repo.records, "no debe haber mutación parcial")
}

// Tenant inexistente: error sin llamada de red.
func TestFetch_TenantInexistente(t *testing.T) {
	s := newSigner(t)
	fetcher := &fakeFetcher{}
	uc := applicense.NewUseCase(acmeTenants(), &fakeLicenseRepo{}, fetcher, s.verifier, logger.NewNop())

	_, err := uc.Fetch(context.Background(), "no-existe", "tok")
	assert.ErrorIs(t, err, domain.ErrTenantNotFound)
	assert.Zero(t, fetcher.calls)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests HasValidLicense / Features / VerifyKey
// ──────────────────────────────────────────────────────────────────────────────

func TestHasValidLicense(t *testing.T) {
	s := newSigner(t)
	repo := &fakeLicenseRepo{}
	fetcher := &fakeFetcher{licenses: []applicense.RemoteLicense{s.issue(t, "acme", "pos")}}
	uc := applicense.NewUseCase(acmeTenants(), repo, fetcher, s.verifier, logger.NewNop())

	assert.False(t, uc.HasValidLicense("acme"), "sin registros no hay licencia válida")

	_, err := uc.Fetch(context.Background(), "acme", "tok")
	require.NoError(t, err)
	assert.True(t, uc.HasValidLicense("acme"))
	assert.False(t, uc.HasValidLicense("no-existe"))
}

// Una licencia emitida para otro tenant no valida aunque la firma sea correcta.
func TestHasValidLicense_LicenciaDeOtroTenant(t *testing.T) {
	s := newSigner(t)
	other := s.issue(t, "globex")
	repo := &fakeLicenseRepo{records: []*entity.LicenseKey{{
		ID: "l1", TenantID: "uuid-acme", LicenseKey: other.Key, Signature: other.Signature, IsActive: true,
	}}}
	uc := applicense.NewUseCase(acmeTenants(), repo, &fakeFetcher{}, s.verifier, logger.NewNop())

	assert.False(t, uc.HasValidLicense("acme"))
}

func TestFeatures_UnionSinDuplicados(t *testing.T) {
	s := newSigner(t)
	l1 := s.issue(t, "acme", "pos", "reports")
	l2 := s.issue(t, "acme", "reports", "sync")
	repo := &fakeLicenseRepo{records: []*entity.LicenseKey{
		{ID: "l1", TenantID: "uuid-acme", LicenseKey: l1.Key, Signature: l1.Signature, IsActive: true},
		{ID: "l2", TenantID: "uuid-acme", LicenseKey: l2.Key, Signature: l2.Signature, IsActive: true},
	}}
	uc := applicense.NewUseCase(acmeTenants(), repo, &fakeFetcher{}, s.verifier, logger.NewNop())

	assert.ElementsMatch(t, []string{"pos", "reports", "sync"}, uc.Features("acme"))
}

func TestVerifyKey(t *testing.T) {
	s := newSigner(t)
	uc := applicense.NewUseCase(acmeTenants(), &fakeLicenseRepo{}, &fakeFetcher{}, s.verifier, logger.NewNop())

	lic := s.issue(t, "acme", "pos")

	valid, features := uc.VerifyKey("acme", lic.Key, lic.Signature)
	assert.True(t, valid)
	assert.Equal(t, []string{"pos"}, features)

	// Firma de otra licencia.
	other := s.issue(t, "acme", "reports")
	valid, _ = uc.VerifyKey("acme", lic.Key, other.Signature)
	assert.False(t, valid)

	// Tenant que no coincide.
	valid, _ = uc.VerifyKey("globex", lic.Key, lic.Signature)
	assert.False(t, valid)

	// Entradas malformadas.
	valid, _ = uc.VerifyKey("acme", "no-base64!!", lic.Signature)
	assert.False(t, valid)
}
