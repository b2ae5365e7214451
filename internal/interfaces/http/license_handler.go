package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jcastano/erp-nodo-api/internal/application/dto"
	applicense "github.com/jcastano/erp-nodo-api/internal/application/license"
	"github.com/jcastano/erp-nodo-api/internal/domain"
)

// LicenseHandler maneja descarga, verificación y features de licencias.
type LicenseHandler struct {
	uc *applicense.UseCase
}

// NewLicenseHandler construye el handler de licencias.
func NewLicenseHandler(uc *applicense.UseCase) *LicenseHandler {
	return &LicenseHandler{uc: uc}
}

// RequestLicense descarga las licencias del tenant desde la autoridad central.
// El token del caller se reenvía tal cual a la main API.
func (h *LicenseHandler) RequestLicense(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	valid, err := h.uc.Fetch(c.UserContext(), tenantID, BearerToken(c))
	if err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "TENANT_NOT_FOUND", Message: "tenant no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.RequestLicenseResponse{LicenseValid: valid})
}

// Verify valida un par licencia/firma contra la llave pública del nodo.
// Ruta pública: el tenant viaja en el header X-Tenant-ID.
func (h *LicenseHandler) Verify(c *fiber.Ctx) error {
	tenantID := c.Get(HeaderTenantID)
	var in dto.VerifyLicenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.LicenseKey == "" || in.Signature == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "license_key y signature son requeridos"})
	}
	valid, features := h.uc.VerifyKey(tenantID, in.LicenseKey, in.Signature)
	return c.JSON(dto.VerifyLicenseResponse{Valid: valid, Features: features})
}

// Features lista las features habilitadas por las licencias válidas del tenant.
func (h *LicenseHandler) Features(c *fiber.Ctx) error {
	features := h.uc.Features(GetTenantID(c))
	if features == nil {
		features = []string{}
	}
	return c.JSON(dto.FeaturesResponse{Features: features})
}
