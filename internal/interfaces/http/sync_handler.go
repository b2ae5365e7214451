package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jcastano/erp-nodo-api/internal/application/dto"
	appsync "github.com/jcastano/erp-nodo-api/internal/application/sync"
	"github.com/jcastano/erp-nodo-api/internal/domain"
)

// SyncHandler dispara pasadas de sincronización del outbox.
type SyncHandler struct {
	engine *appsync.Engine
}

// NewSyncHandler construye el handler de sincronización.
func NewSyncHandler(engine *appsync.Engine) *SyncHandler {
	return &SyncHandler{engine: engine}
}

// Sync drena el outbox del tenant autenticado hacia la autoridad central.
func (h *SyncHandler) Sync(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	result, err := h.engine.Sync(c.UserContext(), tenantID, BearerToken(c))
	if err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "TENANT_NOT_FOUND", Message: "tenant no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.SyncResponse{
		Attempted: result.Attempted,
		Delivered: result.Delivered,
		Failed:    result.Failed,
	})
}
