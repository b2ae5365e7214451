// Package licensing decodifica y verifica licencias emitidas por la autoridad central.
//
// Una licencia es un payload JSON codificado en base64 (licenseKey) con una
// firma separada (detached): RSA PKCS#1 v1.5 sobre el digest SHA-256 de los
// bytes crudos del licenseKey, firma codificada en base64. La llave pública se
// aprovisiona fuera de banda y es fija durante la vida del proceso.
package licensing

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"fmt"
)

// Claims datos embebidos en el licenseKey. El tenant_id embebido es la única
// fuente de verdad sobre a quién pertenece la licencia: nunca se confía en
// metadatos suministrados por el cliente.
type Claims struct {
	TenantID  string   `json:"tenant_id"`
	CompanyID string   `json:"company_id,omitempty"`
	Features  []string `json:"features,omitempty"`
	IssuedAt  int64    `json:"issued_at,omitempty"`
	ExpiresAt int64    `json:"expires_at,omitempty"`
}

// Verifier verifica firmas de licencia contra la llave pública de la autoridad.
type Verifier struct {
	pub *rsa.PublicKey
}

// NewVerifier parsea una llave pública RSA en formato PEM (PKIX o PKCS#1).
func NewVerifier(publicKeyPEM []byte) (*Verifier, error) {
	block, _ := pem.Decode(publicKeyPEM)
	if block == nil {
		return nil, fmt.Errorf("licensing: PEM inválido")
	}
	if key, err := x509.ParsePKIXPublicKey(block.Bytes); err == nil {
		rsaKey, ok := key.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("licensing: la llave pública no es RSA")
		}
		return &Verifier{pub: rsaKey}, nil
	}
	rsaKey, err := x509.ParsePKCS1PublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("licensing: parsear llave pública: %w", err)
	}
	return &Verifier{pub: rsaKey}, nil
}

// Verify comprueba la firma (base64) sobre los bytes crudos del licenseKey.
// Retorna false ante cualquier entrada malformada o firma inválida; nunca panic.
func (v *Verifier) Verify(licenseKey, signature string) bool {
	if v == nil || v.pub == nil || licenseKey == "" || signature == "" {
		return false
	}
	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	digest := sha256.Sum256([]byte(licenseKey))
	return rsa.VerifyPKCS1v15(v.pub, crypto.SHA256, digest[:], sig) == nil
}

// Decode revierte el base64 del licenseKey y parsea los claims.
// Error en cualquier fallo de decodificación o estructura (falla de integridad
// de datos, no un crash); el caller decide loguear.
func Decode(licenseKey string) (*Claims, error) {
	raw, err := base64.StdEncoding.DecodeString(licenseKey)
	if err != nil {
		return nil, fmt.Errorf("licensing: base64 inválido: %w", err)
	}
	var c Claims
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("licensing: JSON inválido: %w", err)
	}
	if c.TenantID == "" {
		return nil, fmt.Errorf("licensing: claims sin tenant_id")
	}
	return &c, nil
}

// Encode serializa claims al formato licenseKey (JSON en base64).
// Contraparte exacta de Decode; usada por tooling y tests.
func Encode(c Claims) string {
	raw, _ := json.Marshal(c)
	return base64.StdEncoding.EncodeToString(raw)
}

// ValidForTenant aplica el contrato de validez completo: la firma verifica,
// los claims decodifican y el tenant embebido coincide exactamente (igualdad
// de strings, sin normalización). Cualquier desviación es "no válida" — nunca
// un otorgamiento parcial.
func (v *Verifier) ValidForTenant(tenantID, licenseKey, signature string) bool {
	if !v.Verify(licenseKey, signature) {
		return false
	}
	claims, err := Decode(licenseKey)
	if err != nil {
		return false
	}
	return claims.TenantID == tenantID
}
