package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockledger/internal/application/auth"
	"github.com/jhoicas/stockledger/internal/application/balance"
	"github.com/jhoicas/stockledger/internal/application/inventory"
	"github.com/jhoicas/stockledger/internal/application/payable"
	"github.com/jhoicas/stockledger/internal/application/usecase"
)

// Pinger comprueba que el store responde (health check).
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	SupplierUC  *usecase.SupplierUseCase
	CustomerUC  *usecase.CustomerUseCase
	WarehouseUC *usecase.WarehouseUseCase
	UnitUC      *usecase.UnitUseCase
	CategoryUC  *usecase.CategoryUseCase
	StockMoves  *inventory.StockMoveUseCase
	Ledgers     *payable.LedgerUseCase
	Aggregator  *balance.Aggregator
	Store       Pinger
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	api.Get("/health", health(deps.Store))

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token). El middleware del grupo aplica a todo /api,
	// por eso las rutas públicas se registran antes.
	protected := api.Group("", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	productHandler := NewProductHandler(deps.ProductUC, deps.Aggregator)
	products := protected.Group("/products")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/stock", productHandler.Stock)

	supplierHandler := NewSupplierHandler(deps.SupplierUC, deps.Ledgers, deps.Aggregator)
	suppliers := protected.Group("/suppliers")
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)
	suppliers.Get("/:id/payables", supplierHandler.Payables)
	suppliers.Get("/:id/payable-balance", supplierHandler.PayableBalance)
	suppliers.Get("/:id/statement.pdf", supplierHandler.Statement)

	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers := protected.Group("/customers")
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses := protected.Group("/warehouses")
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", warehouseHandler.Delete)

	unitHandler := NewUnitHandler(deps.UnitUC)
	units := protected.Group("/units")
	units.Post("/", unitHandler.Create)
	units.Get("/", unitHandler.List)
	units.Get("/:id", unitHandler.GetByID)
	units.Put("/:id", unitHandler.Update)
	units.Delete("/:id", unitHandler.Delete)

	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := protected.Group("/categories")
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	moveHandler := NewStockMoveHandler(deps.StockMoves)
	moves := protected.Group("/stock-moves")
	moves.Post("/", moveHandler.Create)
	moves.Post("/credit-purchase", moveHandler.CreditPurchase)
	moves.Get("/", moveHandler.List)
	moves.Get("/:id", moveHandler.GetByID)

	payableHandler := NewPayableHandler(deps.Ledgers)
	ledgers := protected.Group("/payable-ledgers")
	ledgers.Post("/", payableHandler.Create)
	ledgers.Get("/", payableHandler.List)
	ledgers.Get("/:id", payableHandler.GetByID)
}

func health(store Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			c.Locals(localError, err)
			return fail(c, fiber.StatusServiceUnavailable, "STORE_UNAVAILABLE", "store no disponible")
		}
		return ok(c, fiber.StatusOK, fiber.Map{"status": "ok"}, "")
	}
}
