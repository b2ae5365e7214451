package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastano/erp-nodo-api/internal/domain"
	"github.com/jcastano/erp-nodo-api/internal/domain/entity"
	"github.com/jcastano/erp-nodo-api/internal/domain/repository"
	"github.com/jcastano/erp-nodo-api/pkg/logger"
)

// CreateProductInput datos para crear un producto.
type CreateProductInput struct {
	Name        string
	Description string
	Quantity    int64
	Price       decimal.Decimal
}

// ProductUseCase gestiona el inventario de productos del tenant.
type ProductUseCase struct {
	tenantRepo  repository.TenantRepository
	productRepo repository.ProductRepository
	log         *logger.Logger
}

// NewProductUseCase construye el caso de uso de productos.
func NewProductUseCase(tenantRepo repository.TenantRepository, productRepo repository.ProductRepository, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{tenantRepo: tenantRepo, productRepo: productRepo, log: log}
}

// Create registra un producto nuevo en el inventario del tenant.
func (uc *ProductUseCase) Create(ctx context.Context, tenantID string, in CreateProductInput) (*entity.Product, error) {
	if in.Name == "" || in.Quantity < 0 || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	tenant, err := uc.tenantRepo.GetByTenantID(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrTenantNotFound
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		TenantID:    tenant.ID,
		Name:        in.Name,
		Description: in.Description,
		Quantity:    in.Quantity,
		Price:       in.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	uc.log.Info().Str("tenant_id", tenantID).Str("product_id", product.ID).Msg("producto creado")
	return product, nil
}

// Get obtiene un producto del tenant.
func (uc *ProductUseCase) Get(ctx context.Context, tenantID, productID string) (*entity.Product, error) {
	tenant, err := uc.tenantRepo.GetByTenantID(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrTenantNotFound
	}
	product, err := uc.productRepo.GetByIDForTenant(productID, tenant.ID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// List lista los productos del tenant con paginación.
func (uc *ProductUseCase) List(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Product, error) {
	tenant, err := uc.tenantRepo.GetByTenantID(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrTenantNotFound
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.productRepo.ListByTenant(tenant.ID, limit, offset)
}
