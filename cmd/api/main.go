package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/manufactura-admin/internal/application/auth"
	"github.com/jhoicas/manufactura-admin/internal/application/resource"
	"github.com/jhoicas/manufactura-admin/internal/application/usecase"
	"github.com/jhoicas/manufactura-admin/internal/domain/repository"
	"github.com/jhoicas/manufactura-admin/internal/infrastructure/backend"
	"github.com/jhoicas/manufactura-admin/internal/infrastructure/extraction"
	infrapdf "github.com/jhoicas/manufactura-admin/internal/infrastructure/pdf"
	"github.com/jhoicas/manufactura-admin/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/manufactura-admin/internal/interfaces/http"
	"github.com/jhoicas/manufactura-admin/pkg/config"
	"github.com/jhoicas/manufactura-admin/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Backend.BaseURL).
		Msg("iniciando panel")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()

	// Bitácora opcional: sin DATABASE_URL / DB_HOST solo queda el log.
	var auditRepo repository.AuditRepository
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		repo := postgres.NewAuditRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("esquema de bitácora")
		}
		auditRepo = repo
		log.Info().Msg("bitácora de auditoría en PostgreSQL")
	}

	client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)
	extractor := extraction.NewClient(cfg.Extraction.BaseURL, cfg.Extraction.Timeout)

	store := usecase.NewViewStore(cfg.UI.ViewTTL)
	lists := usecase.NewListUseCase(resource.Default(), client, store, usecase.ListConfig{
		DefaultRowsPerPage: cfg.UI.DefaultRowsPerPage,
		RowsPerPageOptions: cfg.UI.RowsPerPageOptions,
	}, log)
	audit := usecase.NewAuditRecorder(auditRepo, log)
	mutations := usecase.NewMutationUseCase(lists, client, store, audit)
	deletes := usecase.NewDeleteUseCase(lists, mutations, client, store, audit)
	exports := usecase.NewExportUseCase(lists, infrapdf.NewMarotoTableExporter())
	extractionUC := usecase.NewInvoiceExtractionUseCase(extractor, cfg.Extraction.Timeout)
	authUC := auth.NewAuthUseCase(client, store, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.Extraction.Timeout + 10*time.Second,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    20 << 20,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI: http://localhost:<port>/docs (solo si existe el archivo)
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Manufactura Admin",
		}))
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ListUC:       lists,
		MutationUC:   mutations,
		DeleteUC:     deletes,
		ExportUC:     exports,
		ExtractionUC: extractionUC,
		Audit:        audit,
		JWTSecret:    cfg.JWT.Secret,
		SecureCookie: cfg.App.Env == "production",
		ServiceName:  cfg.App.Name,
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

	log.Info().Msg("panel detenido")
}
