package dto

// VerifyLicenseRequest body para POST /api/v1/licenses/verify/.
type VerifyLicenseRequest struct {
	LicenseKey string `json:"license_key"`
	Signature  string `json:"signature"`
}

// VerifyLicenseResponse resultado de la verificación.
type VerifyLicenseResponse struct {
	Valid    bool     `json:"valid"`
	Features []string `json:"features,omitempty"`
}

// RequestLicenseResponse resultado de la descarga de licencias desde la
// autoridad central.
type RequestLicenseResponse struct {
	LicenseValid bool `json:"license_valid"`
}

// FeaturesResponse features habilitadas por las licencias válidas del tenant.
type FeaturesResponse struct {
	Features []string `json:"features"`
}
