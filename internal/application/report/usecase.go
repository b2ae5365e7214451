// Package report arma reportes tabulares por tenant (ventas, compras, POS,
// contabilidad, inventario) y los entrega como PDF vía el puerto Generator.
package report

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jcastano/erp-nodo-api/internal/domain"
	"github.com/jcastano/erp-nodo-api/internal/domain/repository"
	"github.com/jcastano/erp-nodo-api/pkg/logger"
)

// Tipos de reporte soportados.
const (
	TypeSales      = "sales"
	TypePurchases  = "purchases"
	TypePos        = "pos"
	TypeAccounting = "accounting"
	TypeInventory  = "inventory"
)

// Doc reporte tabular listo para renderizar.
type Doc struct {
	Title       string
	Tenant      string
	Columns     []string
	Rows        [][]string
	GeneratedAt time.Time
}

// Generator puerto de renderizado a PDF. La implementación vive en
// infrastructure/pdf.
type Generator interface {
	Generate(doc *Doc) ([]byte, error)
}

// UseCase arma y renderiza reportes.
type UseCase struct {
	tenantRepo     repository.TenantRepository
	saleRepo       repository.SaleRepository
	purchaseRepo   repository.PurchaseRepository
	posRepo        repository.PosRepository
	accountingRepo repository.AccountingRepository
	productRepo    repository.ProductRepository
	generator      Generator
	log            *logger.Logger
}

// NewUseCase construye el caso de uso de reportes.
func NewUseCase(
	tenantRepo repository.TenantRepository,
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	posRepo repository.PosRepository,
	accountingRepo repository.AccountingRepository,
	productRepo repository.ProductRepository,
	generator Generator,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		tenantRepo:     tenantRepo,
		saleRepo:       saleRepo,
		purchaseRepo:   purchaseRepo,
		posRepo:        posRepo,
		accountingRepo: accountingRepo,
		productRepo:    productRepo,
		generator:      generator,
		log:            log,
	}
}

// Generate arma el reporte del tipo pedido y lo renderiza a PDF.
// Un tipo desconocido retorna ErrInvalidInput.
func (uc *UseCase) Generate(ctx context.Context, tenantID, reportType string) ([]byte, error) {
	tenant, err := uc.tenantRepo.GetByTenantID(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrTenantNotFound
	}

	doc := &Doc{Tenant: tenant.Name, GeneratedAt: time.Now()}
	switch reportType {
	case TypeSales:
		doc.Title = "Reporte de Ventas"
		doc.Columns = []string{"ID", "Producto", "Cantidad", "Total", "Fecha"}
		sales, err := uc.saleRepo.ListByTenant(tenant.ID)
		if err != nil {
			return nil, err
		}
		for _, s := range sales {
			doc.Rows = append(doc.Rows, []string{
				s.ID, s.ProductID, strconv.FormatInt(s.Quantity, 10),
				s.TotalAmount.StringFixed(2), s.CreatedAt.Format("2006-01-02 15:04"),
			})
		}
	case TypePurchases:
		doc.Title = "Reporte de Compras"
		doc.Columns = []string{"ID", "Producto", "Cantidad", "Total", "Fecha"}
		purchases, err := uc.purchaseRepo.ListByTenant(tenant.ID)
		if err != nil {
			return nil, err
		}
		for _, p := range purchases {
			doc.Rows = append(doc.Rows, []string{
				p.ID, p.ProductID, strconv.FormatInt(p.Quantity, 10),
				p.TotalAmount.StringFixed(2), p.CreatedAt.Format("2006-01-02 15:04"),
			})
		}
	case TypePos:
		doc.Title = "Reporte POS"
		doc.Columns = []string{"ID", "Producto", "Cantidad", "Total", "Fecha"}
		txs, err := uc.posRepo.ListByTenant(tenant.ID)
		if err != nil {
			return nil, err
		}
		for _, t := range txs {
			doc.Rows = append(doc.Rows, []string{
				t.ID, t.ProductID, strconv.FormatInt(t.Quantity, 10),
				t.TotalAmount.StringFixed(2), t.CreatedAt.Format("2006-01-02 15:04"),
			})
		}
	case TypeAccounting:
		doc.Title = "Reporte Contable"
		doc.Columns = []string{"ID", "Tipo", "Monto", "Descripción", "Fecha"}
		entries, err := uc.accountingRepo.ListByTenant(tenant.ID)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			doc.Rows = append(doc.Rows, []string{
				e.ID, e.TransactionType, e.Amount.StringFixed(2),
				e.Description, e.CreatedAt.Format("2006-01-02 15:04"),
			})
		}
	case TypeInventory:
		doc.Title = "Reporte de Inventario"
		doc.Columns = []string{"ID", "Nombre", "Stock", "Precio"}
		products, err := uc.productRepo.ListByTenant(tenant.ID, 1000, 0)
		if err != nil {
			return nil, err
		}
		for _, p := range products {
			doc.Rows = append(doc.Rows, []string{
				p.ID, p.Name, strconv.FormatInt(p.Quantity, 10), p.Price.StringFixed(2),
			})
		}
	default:
		return nil, fmt.Errorf("%w: tipo de reporte desconocido: %s", domain.ErrInvalidInput, reportType)
	}

	pdf, err := uc.generator.Generate(doc)
	if err != nil {
		uc.log.Error().Err(err).Str("tenant_id", tenantID).Str("type", reportType).Msg("fallo al renderizar reporte")
		return nil, err
	}
	return pdf, nil
}
