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
	"github.com/swaggo/swag"

	_ "github.com/jhoicas/bodega-api/docs"
	"github.com/jhoicas/bodega-api/internal/application/auth"
	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/application/report"
	"github.com/jhoicas/bodega-api/internal/application/shipment"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	inframanifest "github.com/jhoicas/bodega-api/internal/infrastructure/manifest"
	infrapdf "github.com/jhoicas/bodega-api/internal/infrastructure/pdf"
	"github.com/jhoicas/bodega-api/internal/infrastructure/postgres"
	infraxlsx "github.com/jhoicas/bodega-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/bodega-api/internal/interfaces/http"
	"github.com/jhoicas/bodega-api/pkg/config"
	"github.com/jhoicas/bodega-api/pkg/jwt"
	"github.com/jhoicas/bodega-api/pkg/logger"
)

// @title        Bodega API
// @version      1.0
// @description  Inventario con ledger de asignaciones, eliminación lógica y envíos.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Bool("auth", cfg.JWT.Enabled()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.Migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	itemRepo := postgres.NewItemRepository(pool)
	assignmentRepo := postgres.NewItemAssignmentRepository(pool)
	shipmentRepo := postgres.NewShipmentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	itemUC := inventory.NewItemUseCase(txRunner, itemRepo, assignmentRepo)
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner)
	shipmentUC := shipment.NewUseCase(txRunner, shipmentRepo)
	reportUC := report.NewUseCase(
		itemUC, shipmentUC,
		infraxlsx.NewExcelizeInventoryWorkbook(),
		infrapdf.NewMarotoShipmentPDF(cfg.App.Name),
		inframanifest.NewBuilder(),
	)

	var (
		authUC httpRouter.AuthService
		tokens httpRouter.TokenVerifier
	)
	if cfg.JWT.Enabled() {
		signer, err := jwt.NewSigner(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.Expiration)*time.Minute)
		if err != nil {
			log.Fatal().Err(err).Msg("configuración JWT")
		}
		operators := make([]entity.Operator, 0, len(cfg.Auth.Operators))
		for _, op := range cfg.Auth.Operators {
			operators = append(operators, entity.Operator{Username: op.Username, Role: op.Role, PasswordHash: op.PasswordHash})
		}
		authUC = auth.NewAuthUseCase(operators, signer)
		tokens = signer
		log.Info().Int("operators", len(operators)).Msg("login de operadores habilitado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Bodega API",
	}))
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(doc)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "db_unavailable", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Items:     itemUC,
		Movements: registerMovementUC,
		Shipments: shipmentUC,
		Reports:   reportUC,
		Auth:      authUC,
		Tokens:    tokens,
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

	log.Info().Msg("aplicación detenida")
}
