// Package sales implementa las transacciones comerciales locales (venta,
// compra, POS): ajuste de stock, fila de dominio, línea contable y entrada de
// outbox, todo en una sola transacción de BD.
package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastano/erp-nodo-api/internal/domain"
	"github.com/jcastano/erp-nodo-api/internal/domain/entity"
	"github.com/jcastano/erp-nodo-api/internal/domain/repository"
	"github.com/jcastano/erp-nodo-api/pkg/logger"
)

// TransactionInput datos de entrada de una transacción comercial.
type TransactionInput struct {
	ProductID   string
	Quantity    int64
	TotalAmount decimal.Decimal
}

// UseCase registra ventas, compras y transacciones POS.
type UseCase struct {
	tenantRepo repository.TenantRepository
	tx         TxRunner
	log        *logger.Logger
}

// NewUseCase construye el caso de uso de transacciones comerciales.
func NewUseCase(tenantRepo repository.TenantRepository, tx TxRunner, log *logger.Logger) *UseCase {
	return &UseCase{tenantRepo: tenantRepo, tx: tx, log: log}
}

func (uc *UseCase) validate(in TransactionInput) error {
	if in.ProductID == "" || in.Quantity <= 0 || in.TotalAmount.IsNegative() {
		return domain.ErrInvalidInput
	}
	return nil
}

// CreateSale registra una venta: decrementa stock (con bloqueo de fila),
// inserta la venta, acredita la línea contable y encola la entrada de outbox.
// Todo confirma o nada confirma. Retorna ErrInsufficientStock si el stock no
// alcanza (sin mutación alguna).
func (uc *UseCase) CreateSale(ctx context.Context, tenantID string, in TransactionInput) (*entity.Sale, error) {
	if err := uc.validate(in); err != nil {
		return nil, err
	}
	tenant, err := uc.tenantRepo.GetByTenantID(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrTenantNotFound
	}

	var sale *entity.Sale
	err = uc.tx.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
		_ repository.PurchaseRepository,
		_ repository.PosRepository,
		accountingRepo repository.AccountingRepository,
		outboxRepo repository.OutboxRepository,
	) error {
		product, err := productRepo.GetByIDForTenant(in.ProductID, tenant.ID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.Quantity < in.Quantity {
			return domain.ErrInsufficientStock
		}
		if err := productRepo.UpdateQuantity(product.ID, product.Quantity-in.Quantity); err != nil {
			return err
		}

		now := time.Now()
		sale = &entity.Sale{
			ID:          uuid.New().String(),
			TenantID:    tenant.ID,
			ProductID:   product.ID,
			Quantity:    in.Quantity,
			TotalAmount: in.TotalAmount,
			CreatedAt:   now,
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}

		if err := accountingRepo.Create(&entity.AccountingEntry{
			ID:              uuid.New().String(),
			TenantID:        tenant.ID,
			TransactionType: string(entity.OpSale),
			Amount:          in.TotalAmount,
			Description:     fmt.Sprintf("Venta de %d x %s", in.Quantity, product.Name),
			CreatedAt:       now,
		}); err != nil {
			return err
		}

		return uc.enqueue(outboxRepo, tenant.ID, entity.OpSale, in)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("tenant_id", tenantID).Str("sale_id", sale.ID).Msg("venta registrada")
	return sale, nil
}

// CreatePurchase registra una compra: incrementa stock, inserta la compra,
// debita la línea contable y encola la entrada de outbox.
func (uc *UseCase) CreatePurchase(ctx context.Context, tenantID string, in TransactionInput) (*entity.Purchase, error) {
	if err := uc.validate(in); err != nil {
		return nil, err
	}
	tenant, err := uc.tenantRepo.GetByTenantID(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrTenantNotFound
	}

	var purchase *entity.Purchase
	err = uc.tx.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.SaleRepository,
		purchaseRepo repository.PurchaseRepository,
		_ repository.PosRepository,
		accountingRepo repository.AccountingRepository,
		outboxRepo repository.OutboxRepository,
	) error {
		product, err := productRepo.GetByIDForTenant(in.ProductID, tenant.ID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if err := productRepo.UpdateQuantity(product.ID, product.Quantity+in.Quantity); err != nil {
			return err
		}

		now := time.Now()
		purchase = &entity.Purchase{
			ID:          uuid.New().String(),
			TenantID:    tenant.ID,
			ProductID:   product.ID,
			Quantity:    in.Quantity,
			TotalAmount: in.TotalAmount,
			CreatedAt:   now,
		}
		if err := purchaseRepo.Create(purchase); err != nil {
			return err
		}

		if err := accountingRepo.Create(&entity.AccountingEntry{
			ID:              uuid.New().String(),
			TenantID:        tenant.ID,
			TransactionType: string(entity.OpPurchase),
			Amount:          in.TotalAmount.Neg(),
			Description:     fmt.Sprintf("Compra de %d x %s", in.Quantity, product.Name),
			CreatedAt:       now,
		}); err != nil {
			return err
		}

		return uc.enqueue(outboxRepo, tenant.ID, entity.OpPurchase, in)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("tenant_id", tenantID).Str("purchase_id", purchase.ID).Msg("compra registrada")
	return purchase, nil
}

// CreatePos registra una transacción de punto de venta. Misma semántica de
// stock y contabilidad que una venta.
func (uc *UseCase) CreatePos(ctx context.Context, tenantID string, in TransactionInput) (*entity.PosTransaction, error) {
	if err := uc.validate(in); err != nil {
		return nil, err
	}
	tenant, err := uc.tenantRepo.GetByTenantID(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrTenantNotFound
	}

	var pos *entity.PosTransaction
	err = uc.tx.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.SaleRepository,
		_ repository.PurchaseRepository,
		posRepo repository.PosRepository,
		accountingRepo repository.AccountingRepository,
		outboxRepo repository.OutboxRepository,
	) error {
		product, err := productRepo.GetByIDForTenant(in.ProductID, tenant.ID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if product.Quantity < in.Quantity {
			return domain.ErrInsufficientStock
		}
		if err := productRepo.UpdateQuantity(product.ID, product.Quantity-in.Quantity); err != nil {
			return err
		}

		now := time.Now()
		pos = &entity.PosTransaction{
			ID:          uuid.New().String(),
			TenantID:    tenant.ID,
			ProductID:   product.ID,
			Quantity:    in.Quantity,
			TotalAmount: in.TotalAmount,
			CreatedAt:   now,
		}
		if err := posRepo.Create(pos); err != nil {
			return err
		}

		if err := accountingRepo.Create(&entity.AccountingEntry{
			ID:              uuid.New().String(),
			TenantID:        tenant.ID,
			TransactionType: string(entity.OpPos),
			Amount:          in.TotalAmount,
			Description:     fmt.Sprintf("POS de %d x %s", in.Quantity, product.Name),
			CreatedAt:       now,
		}); err != nil {
			return err
		}

		return uc.enqueue(outboxRepo, tenant.ID, entity.OpPos, in)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("tenant_id", tenantID).Str("pos_id", pos.ID).Msg("transacción POS registrada")
	return pos, nil
}

// enqueue agrega la entrada de outbox dentro de la misma tx de la mutación.
func (uc *UseCase) enqueue(outboxRepo repository.OutboxRepository, tenantID string, op entity.Operation, in TransactionInput) error {
	entry, err := entity.NewOutboxEntry(tenantID, op, entity.TransactionPayload{
		ProductID:   in.ProductID,
		Quantity:    in.Quantity,
		TotalAmount: in.TotalAmount,
	})
	if err != nil {
		return err
	}
	return outboxRepo.Append(entry)
}
