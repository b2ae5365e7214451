package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastano/erp-nodo-api/internal/application/auth"
	"github.com/jcastano/erp-nodo-api/internal/application/backup"
	applicense "github.com/jcastano/erp-nodo-api/internal/application/license"
	"github.com/jcastano/erp-nodo-api/internal/application/report"
	"github.com/jcastano/erp-nodo-api/internal/application/sales"
	appsync "github.com/jcastano/erp-nodo-api/internal/application/sync"
	"github.com/jcastano/erp-nodo-api/internal/application/usecase"
	"github.com/jcastano/erp-nodo-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	LicenseUC  *applicense.UseCase
	ProductUC  *usecase.ProductUseCase
	SalesUC    *sales.UseCase
	ReportUC   *report.UseCase
	BackupUC   *backup.UseCase
	SyncEngine *appsync.Engine
	JWTSecret  string
}

// Router registra las rutas de la API bajo /api/v1.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	authHandler := NewAuthHandler(deps.AuthUC)
	licenseHandler := NewLicenseHandler(deps.LicenseUC)

	// Rutas públicas: el tenant viaja en X-Tenant-ID.
	users := api.Group("/users")
	users.Post("/register/", authHandler.Register)
	users.Post("/login/", TenantHeaderMiddleware(), authHandler.Login)

	licenses := api.Group("/licenses")
	licenses.Post("/verify/", TenantHeaderMiddleware(), licenseHandler.Verify)

	// Rutas protegidas (Bearer Token; el tenant sale del token).
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Post("/users/request_license/", licenseHandler.RequestLicense)
	protected.Get("/features/", licenseHandler.Features)

	productHandler := NewProductHandler(deps.ProductUC)
	inventory := protected.Group("/inventory")
	inventory.Post("/products/", productHandler.Create)
	inventory.Get("/products/", productHandler.List)
	inventory.Get("/products/:id/", productHandler.GetByID)

	salesHandler := NewSalesHandler(deps.SalesUC)
	protected.Post("/sales/", salesHandler.CreateSale)
	protected.Post("/purchases/", salesHandler.CreatePurchase)
	protected.Post("/pos/", salesHandler.CreatePos)

	reportHandler := NewReportHandler(deps.ReportUC)
	protected.Get("/reports/:type/", reportHandler.Generate)

	syncHandler := NewSyncHandler(deps.SyncEngine)
	protected.Post("/sync/", syncHandler.Sync)

	// Respaldos: solo admin puede dispararlos.
	backupHandler := NewBackupHandler(deps.BackupUC)
	backups := protected.Group("/backups")
	backups.Post("/", RequireRole(entity.RoleAdmin), backupHandler.Create)
	backups.Get("/", backupHandler.List)
}
