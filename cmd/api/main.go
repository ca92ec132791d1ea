package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/stockledger/docs"
	"github.com/jhoicas/stockledger/internal/application/auth"
	"github.com/jhoicas/stockledger/internal/application/balance"
	"github.com/jhoicas/stockledger/internal/application/inventory"
	"github.com/jhoicas/stockledger/internal/application/payable"
	"github.com/jhoicas/stockledger/internal/application/usecase"
	infrapdf "github.com/jhoicas/stockledger/internal/infrastructure/pdf"
	"github.com/jhoicas/stockledger/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/stockledger/internal/interfaces/http"
	"github.com/jhoicas/stockledger/pkg/config"
	"github.com/jhoicas/stockledger/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

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
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos, err := store.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer repos.Close()

	jwtSecret := cfg.JWT.Secret
	if jwtSecret == "" {
		// Solo en development (Validate lo exige en los demás entornos).
		jwtSecret = "dev-secret-no-usar-en-produccion"
		log.Warn().Msg("JWT_SECRET vacío: usando secreto de desarrollo")
	}

	ledgerUC := payable.NewLedgerUseCase(repos.Ledgers, repos.Suppliers, repos.Moves,
		infrapdf.NewMarotoPDFGenerator(true), log)
	deps := httpRouter.RouterDeps{
		AuthUC: auth.NewAuthUseCase(repos.Users, auth.JWTConfig{
			Secret:     jwtSecret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		}),
		ProductUC:   usecase.NewProductUseCase(repos.Products, repos.Categories, repos.Moves),
		SupplierUC:  usecase.NewSupplierUseCase(repos.Suppliers, repos.Moves, repos.Ledgers),
		CustomerUC:  usecase.NewCustomerUseCase(repos.Customers, repos.Moves),
		WarehouseUC: usecase.NewWarehouseUseCase(repos.Warehouses, repos.Moves),
		UnitUC:      usecase.NewUnitUseCase(repos.Units, repos.Products),
		CategoryUC:  usecase.NewCategoryUseCase(repos.Categories, repos.Products),
		StockMoves: inventory.NewStockMoveUseCase(repos.TxRunner, repos.Moves,
			repos.Products, repos.Suppliers, repos.Customers, repos.Warehouses, log),
		Ledgers:    ledgerUC,
		Aggregator: balance.NewAggregator(repos.Products, repos.Suppliers, repos.Moves, repos.Ledgers),
		Store:      repos,
		JWTSecret:  jwtSecret,
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: strings.Join([]string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete, fiber.MethodOptions}, ","),
	}))
	app.Use(httpRouter.RequestLogger(log.With().Str("component", "http").Logger()))

	// Swagger UI: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "StockLedger API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	httpRouter.Router(app, deps)

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
