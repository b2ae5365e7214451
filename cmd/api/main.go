package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jcastano/erp-nodo-api/internal/application/auth"
	appbackup "github.com/jcastano/erp-nodo-api/internal/application/backup"
	applicense "github.com/jcastano/erp-nodo-api/internal/application/license"
	"github.com/jcastano/erp-nodo-api/internal/application/report"
	"github.com/jcastano/erp-nodo-api/internal/application/sales"
	appsync "github.com/jcastano/erp-nodo-api/internal/application/sync"
	"github.com/jcastano/erp-nodo-api/internal/application/usecase"
	infrabackup "github.com/jcastano/erp-nodo-api/internal/infrastructure/backup"
	"github.com/jcastano/erp-nodo-api/internal/infrastructure/mainapi"
	infrapdf "github.com/jcastano/erp-nodo-api/internal/infrastructure/pdf"
	"github.com/jcastano/erp-nodo-api/internal/infrastructure/postgres"
	httpRouter "github.com/jcastano/erp-nodo-api/internal/interfaces/http"
	"github.com/jcastano/erp-nodo-api/pkg/config"
	"github.com/jcastano/erp-nodo-api/pkg/licensing"
	"github.com/jcastano/erp-nodo-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando nodo")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	verifier, err := licensing.NewVerifier([]byte(cfg.License.PublicKeyPEM))
	if err != nil {
		log.Fatal().Err(err).Msg("llave pública de licencias inválida")
	}

	if err := os.MkdirAll(cfg.Backup.Dir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Backup.Dir).Msg("directorio de respaldos")
	}

	tenantRepo := postgres.NewTenantRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	licenseRepo := postgres.NewLicenseKeyRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	posRepo := postgres.NewPosRepository(pool)
	accountingRepo := postgres.NewAccountingRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	backupRepo := postgres.NewBackupRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	mainTimeout := time.Duration(cfg.MainAPI.TimeoutSeconds) * time.Second
	mainClient := mainapi.New(cfg.MainAPI.BaseURL, mainTimeout)
	defer mainClient.Close()

	licenseUC := applicense.NewUseCase(tenantRepo, licenseRepo, mainClient, verifier, log)
	syncEngine := appsync.NewEngine(tenantRepo, outboxRepo, mainClient, mainTimeout, log)
	salesUC := sales.NewUseCase(tenantRepo, txRunner, log)
	productUC := usecase.NewProductUseCase(tenantRepo, productRepo, log)

	pgDump := infrabackup.NewPgDump(cfg.DB)
	backupUC := appbackup.NewUseCase(tenantRepo, backupRepo, pgDump, cfg.Backup.Dir, log)

	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := report.NewUseCase(
		tenantRepo, saleRepo, purchaseRepo, posRepo,
		accountingRepo, productRepo, pdfGenerator, log,
	)

	authUC := auth.NewUseCase(tenantRepo, companyRepo, userRepo, licenseUC, backupUC, cfg.JWT, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		LicenseUC:  licenseUC,
		ProductUC:  productUC,
		SalesUC:    salesUC,
		ReportUC:   reportUC,
		BackupUC:   backupUC,
		SyncEngine: syncEngine,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("nodo detenido")
}
