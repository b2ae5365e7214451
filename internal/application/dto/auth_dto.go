package dto

// RegisterRequest body para POST /api/v1/users/register/.
type RegisterRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Email      string `json:"email,omitempty"`
	TenantID   string `json:"tenant_id"`
	TenantName string `json:"tenant_name,omitempty"`
}

// RegisterResponse resultado del registro. LicenseValid indica si la descarga
// inicial de licencias dejó al menos una.
type RegisterResponse struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email,omitempty"`
	TenantID     string `json:"tenant_id"`
	Role         string `json:"role"`
	LicenseValid bool   `json:"license_valid"`
}

// LoginRequest body para POST /api/v1/users/login/. El tenant viaja en el
// header X-Tenant-ID, no en el body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse tokens emitidos. IsLimitedAccess es true cuando el tenant no
// tiene licencia válida: el cliente degrada funcionalidad.
type LoginResponse struct {
	Access          string `json:"access"`
	Refresh         string `json:"refresh"`
	IsLimitedAccess bool   `json:"is_limited_access"`
}
