package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stockledger/internal/application/auth"
	"github.com/jhoicas/stockledger/internal/application/balance"
	"github.com/jhoicas/stockledger/internal/application/dto"
	"github.com/jhoicas/stockledger/internal/application/inventory"
	"github.com/jhoicas/stockledger/internal/application/payable"
	"github.com/jhoicas/stockledger/internal/application/usecase"
	"github.com/jhoicas/stockledger/internal/infrastructure/pdf"
	"github.com/jhoicas/stockledger/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/stockledger/internal/interfaces/http"
)

const testJWTSecret = "test-secret-key-for-unit-tests"

type server struct {
	app  *fiber.App
	logs *bytes.Buffer
}

// response cuerpo genérico: envelope de éxito o ErrorResponse.
type response struct {
	Status  int
	Header  http.Header
	Raw     []byte
	Success bool             `json:"success"`
	Data    json.RawMessage  `json:"data"`
	Message string           `json:"message"`
	Code    string           `json:"code"`
	Errors  []dto.FieldError `json:"errors"`
}

func newServer(t *testing.T) *server {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	db := store.DB()
	userRepo := sqlite.NewUserRepository(db)
	productRepo := sqlite.NewProductRepository(db)
	supplierRepo := sqlite.NewSupplierRepository(db)
	customerRepo := sqlite.NewCustomerRepository(db)
	warehouseRepo := sqlite.NewWarehouseRepository(db)
	unitRepo := sqlite.NewUnitRepository(db)
	categoryRepo := sqlite.NewCategoryRepository(db)
	moveRepo := sqlite.NewStockMoveRepository(db)
	ledgerRepo := sqlite.NewPayableLedgerRepository(db)

	nop := zerolog.Nop()
	deps := apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(userRepo, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: "stockledger"}).
			WithBcryptCost(bcrypt.MinCost),
		ProductUC:   usecase.NewProductUseCase(productRepo, categoryRepo, moveRepo),
		SupplierUC:  usecase.NewSupplierUseCase(supplierRepo, moveRepo, ledgerRepo),
		CustomerUC:  usecase.NewCustomerUseCase(customerRepo, moveRepo),
		WarehouseUC: usecase.NewWarehouseUseCase(warehouseRepo, moveRepo),
		UnitUC:      usecase.NewUnitUseCase(unitRepo, productRepo),
		CategoryUC:  usecase.NewCategoryUseCase(categoryRepo, productRepo),
		StockMoves: inventory.NewStockMoveUseCase(sqlite.NewTxRunner(store), moveRepo,
			productRepo, supplierRepo, customerRepo, warehouseRepo, nop),
		Ledgers:    payable.NewLedgerUseCase(ledgerRepo, supplierRepo, moveRepo, pdf.NewMarotoPDFGenerator(false), nop),
		Aggregator: balance.NewAggregator(productRepo, supplierRepo, moveRepo, ledgerRepo),
		Store:      store,
		JWTSecret:  testJWTSecret,
	}

	logs := &bytes.Buffer{}
	app := fiber.New()
	app.Use(apphttp.RequestLogger(zerolog.New(logs)))
	apphttp.Router(app, deps)
	return &server{app: app, logs: logs}
}

func (s *server) do(t *testing.T, method, path, token string, body interface{}) response {
	t.Helper()
	authHeader := ""
	if token != "" {
		authHeader = "Bearer " + token
	}
	return s.doAuth(t, method, path, authHeader, body)
}

// doAuth envía el header Authorization tal cual.
func (s *server) doAuth(t *testing.T, method, path, authHeader string, body interface{}) response {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if authHeader != "" {
		req.Header.Set(fiber.HeaderAuthorization, authHeader)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := response{Status: resp.StatusCode, Header: resp.Header}
	out.Raw, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	if resp.Header.Get(fiber.HeaderContentType) == fiber.MIMEApplicationJSON {
		require.NoError(t, json.Unmarshal(out.Raw, &out), string(out.Raw))
	}
	return out
}

// login registra un usuario y devuelve su access token.
func (s *server) login(t *testing.T, email string) string {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": email, "password": "secreto123", "displayName": "Usuario",
	})
	require.Equal(t, http.StatusCreated, resp.Status, string(resp.Raw))

	resp = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": "secreto123"})
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Raw))
	var out dto.LoginResponse
	decode(t, resp, &out)
	return out.AccessToken
}

// create hace POST y devuelve el id del recurso creado.
func (s *server) create(t *testing.T, token, path string, body interface{}) string {
	t.Helper()
	resp := s.do(t, http.MethodPost, path, token, body)
	require.Equal(t, http.StatusCreated, resp.Status, string(resp.Raw))
	var out struct {
		ID string `json:"id"`
	}
	decode(t, resp, &out)
	require.NotEmpty(t, out.ID)
	return out.ID
}

func decode(t *testing.T, resp response, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(resp.Data, out), string(resp.Raw))
}
