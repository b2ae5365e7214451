package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jcastano/erp-nodo-api/internal/application/backup"
	"github.com/jcastano/erp-nodo-api/internal/application/dto"
	"github.com/jcastano/erp-nodo-api/internal/domain"
)

// BackupHandler dispara respaldos y lista su procedencia (protegido, admin).
type BackupHandler struct {
	uc *backup.UseCase
}

// NewBackupHandler construye el handler de respaldos.
func NewBackupHandler(uc *backup.UseCase) *BackupHandler {
	return &BackupHandler{uc: uc}
}

// Create ejecuta un respaldo de la base local.
func (h *BackupHandler) Create(c *fiber.Ctx) error {
	ok, err := h.uc.Create(c.UserContext(), GetTenantID(c))
	if err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "TENANT_NOT_FOUND", Message: "tenant no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	status := fiber.StatusCreated
	if !ok {
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(dto.BackupResponse{Success: ok})
}

// List lista la procedencia de respaldos del tenant.
func (h *BackupHandler) List(c *fiber.Ctx) error {
	records, err := h.uc.List(c.UserContext(), GetTenantID(c))
	if err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "TENANT_NOT_FOUND", Message: "tenant no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.BackupRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.BackupRecordResponse{
			ID:         r.ID,
			BackupPath: r.BackupPath,
			CreatedAt:  r.CreatedAt,
		})
	}
	return c.JSON(out)
}
