package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jcastano/erp-nodo-api/internal/application/dto"
	"github.com/jcastano/erp-nodo-api/internal/application/sales"
	"github.com/jcastano/erp-nodo-api/internal/domain"
)

// SalesHandler maneja ventas, compras y transacciones POS (protegido).
type SalesHandler struct {
	uc *sales.UseCase
}

// NewSalesHandler construye el handler de transacciones comerciales.
func NewSalesHandler(uc *sales.UseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

func (h *SalesHandler) parse(c *fiber.Ctx) (sales.TransactionInput, error) {
	var in dto.TransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return sales.TransactionInput{}, err
	}
	return sales.TransactionInput{
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		TotalAmount: in.TotalAmount,
	}, nil
}

func transactionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "productId, quantity y totalAmount son requeridos"})
	case errors.Is(err, domain.ErrTenantNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "TENANT_NOT_FOUND", Message: "tenant no encontrado"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// CreateSale registra una venta.
func (h *SalesHandler) CreateSale(c *fiber.Ctx) error {
	in, err := h.parse(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sale, err := h.uc.CreateSale(c.UserContext(), GetTenantID(c), in)
	if err != nil {
		return transactionError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TransactionResponse{
		ID:          sale.ID,
		ProductID:   sale.ProductID,
		Quantity:    sale.Quantity,
		TotalAmount: sale.TotalAmount,
		CreatedAt:   sale.CreatedAt,
	})
}

// CreatePurchase registra una compra.
func (h *SalesHandler) CreatePurchase(c *fiber.Ctx) error {
	in, err := h.parse(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	purchase, err := h.uc.CreatePurchase(c.UserContext(), GetTenantID(c), in)
	if err != nil {
		return transactionError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TransactionResponse{
		ID:          purchase.ID,
		ProductID:   purchase.ProductID,
		Quantity:    purchase.Quantity,
		TotalAmount: purchase.TotalAmount,
		CreatedAt:   purchase.CreatedAt,
	})
}

// CreatePos registra una transacción de punto de venta.
func (h *SalesHandler) CreatePos(c *fiber.Ctx) error {
	in, err := h.parse(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	pos, err := h.uc.CreatePos(c.UserContext(), GetTenantID(c), in)
	if err != nil {
		return transactionError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.TransactionResponse{
		ID:          pos.ID,
		ProductID:   pos.ProductID,
		Quantity:    pos.Quantity,
		TotalAmount: pos.TotalAmount,
		CreatedAt:   pos.CreatedAt,
	})
}
