package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jcastano/erp-nodo-api/internal/application/dto"
	"github.com/jcastano/erp-nodo-api/internal/application/report"
	"github.com/jcastano/erp-nodo-api/internal/domain"
)

// ReportHandler genera reportes PDF (protegido).
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Generate renderiza el reporte del tipo pedido y lo devuelve como PDF.
func (h *ReportHandler) Generate(c *fiber.Ctx) error {
	reportType := c.Params("type")
	pdf, err := h.uc.Generate(c.UserContext(), GetTenantID(c), reportType)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo de reporte desconocido"})
		}
		if errors.Is(err, domain.ErrTenantNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "TENANT_NOT_FOUND", Message: "tenant no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="reporte_%s.pdf"`, reportType))
	return c.Send(pdf)
}
