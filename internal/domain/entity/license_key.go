package entity

import "time"

// LicenseKey registro de licencia obtenido de la autoridad central.
// Ledger append-only: cada fetch agrega registros nuevos (las licencias pueden
// reemitirse) y nunca se borra — el historial es dato de auditoría. Después de
// creado solo cambia IsActive.
type LicenseKey struct {
	ID         string
	TenantID   string
	CompanyID  *string // nil = licencia a nivel de tenant
	LicenseKey string  // payload opaco (JSON en base64, ver pkg/licensing)
	Signature  string  // firma detached RSA-SHA256 en base64
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
