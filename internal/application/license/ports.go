package license

import "context"

// RemoteLicense licencia tal como la entrega la autoridad central:
// payload opaco + firma detached + alcance opcional de empresa.
type RemoteLicense struct {
	Key       string
	Signature string
	CompanyID *string
}

// Fetcher puerto hacia la autoridad central para descargar licencias firmadas.
// La implementación vive en infrastructure/mainapi.
type Fetcher interface {
	FetchLicenses(ctx context.Context, tenantID, token string) ([]RemoteLicense, error)
}
