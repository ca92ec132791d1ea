// seed carga datos de demostración: un usuario, su catálogo de productos y una compra a crédito
// por producto (lo que deja stock inicial y saldo por pagar al proveedor demo).
//
// Uso: go run ./cmd/seed [ruta/productos.csv]
// El CSV usa ';' como separador: nombre;unidad;costo;venta (primera línea = encabezado).
package main

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockledger/internal/application/auth"
	"github.com/jhoicas/stockledger/internal/application/dto"
	"github.com/jhoicas/stockledger/internal/application/inventory"
	"github.com/jhoicas/stockledger/internal/application/usecase"
	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/internal/domain/repository"
	"github.com/jhoicas/stockledger/internal/infrastructure/store"
	"github.com/jhoicas/stockledger/pkg/config"
	"github.com/jhoicas/stockledger/pkg/logger"
)

const (
	demoEmail     = "demo@stockledger.local"
	demoPassword  = "demo12345"
	demoSupplier  = "Proveedor Demo"
	demoWarehouse = "PRINCIPAL"
	initialQty    = 10
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	var src io.Reader = strings.NewReader(demoCatalog)
	if len(os.Args) > 1 {
		f, err := os.Open(os.Args[1])
		if err != nil {
			log.Fatal().Err(err).Msg("abrir CSV")
		}
		defer f.Close()
		src = f
	}
	products, err := parseProducts(src)
	if err != nil {
		log.Fatal().Err(err).Msg("leer catálogo")
	}

	ctx := context.Background()
	repos, err := store.Open(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer repos.Close()

	if err := seed(ctx, repos, cfg.JWT, products, log); err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
}

func seed(ctx context.Context, repos *store.Repos, jwtCfg config.JWTConfig, products []dto.CreateProductRequest, log zerolog.Logger) error {
	secret := jwtCfg.Secret
	if secret == "" {
		secret = "seed"
	}
	authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: jwtCfg.Issuer})
	_, err := authUC.Register(ctx, dto.RegisterRequest{Email: demoEmail, Password: demoPassword, DisplayName: "Demo"})
	if err != nil && !errors.Is(err, domain.ErrConflict) {
		return err
	}
	session, err := authUC.Login(ctx, dto.LoginRequest{Email: demoEmail, Password: demoPassword})
	if err != nil {
		return err
	}
	userID := session.User.ID

	supplierID, err := ensureSupplier(ctx, usecase.NewSupplierUseCase(repos.Suppliers, repos.Moves, repos.Ledgers), userID)
	if err != nil {
		return err
	}
	warehouseID, err := ensureWarehouse(ctx, usecase.NewWarehouseUseCase(repos.Warehouses, repos.Moves), userID)
	if err != nil {
		return err
	}

	productUC := usecase.NewProductUseCase(repos.Products, repos.Categories, repos.Moves)
	moves := inventory.NewStockMoveUseCase(repos.TxRunner, repos.Moves, repos.Products,
		repos.Suppliers, repos.Customers, repos.Warehouses, log)
	credit := entity.PayTypeCredit
	created := 0
	for _, in := range products {
		p, err := productUC.Create(ctx, userID, in)
		if errors.Is(err, domain.ErrConflict) {
			log.Info().Str("product", in.Name).Msg("producto existente, se omite")
			continue
		}
		if err != nil {
			return err
		}
		created++
		if in.CostPrice == nil || !in.CostPrice.IsPositive() {
			continue
		}
		_, err = moves.RecordCreditPurchase(ctx, userID, inventory.MoveInput{
			ProductID:   p.ID,
			WarehouseID: &warehouseID,
			Qty:         decimal.NewFromInt(initialQty),
			Reason:      entity.MoveReasonIn,
			SupplierID:  &supplierID,
			UnitPrice:   in.CostPrice,
			PayType:     &credit,
		})
		if err != nil {
			return err
		}
	}
	log.Info().Str("email", demoEmail).Int("products", created).Msg("seed completado")
	return nil
}

func ensureSupplier(ctx context.Context, uc *usecase.SupplierUseCase, userID string) (string, error) {
	s, err := uc.Create(ctx, userID, dto.CreateSupplierRequest{Name: demoSupplier})
	if err == nil {
		return s.ID, nil
	}
	if !errors.Is(err, domain.ErrConflict) {
		return "", err
	}
	list, err := uc.List(ctx, userID, repository.PartyFilter{})
	if err != nil {
		return "", err
	}
	for _, s := range list {
		if s.Name == demoSupplier {
			return s.ID, nil
		}
	}
	return "", domain.NotFound(domain.EntitySupplier)
}

func ensureWarehouse(ctx context.Context, uc *usecase.WarehouseUseCase, userID string) (string, error) {
	w, err := uc.Create(ctx, userID, dto.CreateWarehouseRequest{Code: demoWarehouse, Name: "Bodega principal"})
	if err == nil {
		return w.ID, nil
	}
	if !errors.Is(err, domain.ErrConflict) {
		return "", err
	}
	list, err := uc.List(ctx, userID)
	if err != nil {
		return "", err
	}
	for _, w := range list {
		if w.Code == demoWarehouse {
			return w.ID, nil
		}
	}
	return "", domain.NotFound(domain.EntityWarehouse)
}
