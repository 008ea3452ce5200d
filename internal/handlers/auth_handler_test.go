package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"papertrade/internal/config"
	apperrors "papertrade/internal/errors"
	"papertrade/internal/history"
	"papertrade/internal/ledger"
	"papertrade/internal/middleware"
	"papertrade/internal/models"
	"papertrade/internal/pagination"
	"papertrade/internal/services"
	"papertrade/internal/validator"
)

// --- mock services ---

type mockUserService struct {
	signupFn       func(ctx context.Context, username, password, confirm string) (*models.Account, error)
	authenticateFn func(ctx context.Context, username, password string) (*models.Account, error)
	getAccountFn   func(ctx context.Context, username string) (*models.Account, error)
}

var _ services.UserServicer = (*mockUserService)(nil)

func (m *mockUserService) Signup(ctx context.Context, username, password, confirm string) (*models.Account, error) {
	if m.signupFn != nil {
		return m.signupFn(ctx, username, password, confirm)
	}
	return &models.Account{Username: username}, nil
}

func (m *mockUserService) Authenticate(ctx context.Context, username, password string) (*models.Account, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, username, password)
	}
	return &models.Account{Username: username}, nil
}

func (m *mockUserService) GetAccount(ctx context.Context, username string) (*models.Account, error) {
	if m.getAccountFn != nil {
		return m.getAccountFn(ctx, username)
	}
	return &models.Account{Username: username}, nil
}

type mockTradingService struct {
	buyFn          func(ctx context.Context, username, symbol string, quantity int) (*ledger.Receipt, error)
	sellFn         func(ctx context.Context, username, symbol string, quantity int) (*ledger.Receipt, error)
	dashboardFn    func(ctx context.Context, username string) (*services.Dashboard, error)
	portfolioFn    func(ctx context.Context, username string) (*ledger.Valuation, error)
	transactionsFn func(ctx context.Context, username string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
}

var _ services.TradingServicer = (*mockTradingService)(nil)

func (m *mockTradingService) Buy(ctx context.Context, username, symbol string, quantity int) (*ledger.Receipt, error) {
	if m.buyFn != nil {
		return m.buyFn(ctx, username, symbol, quantity)
	}
	return &ledger.Receipt{}, nil
}

func (m *mockTradingService) Sell(ctx context.Context, username, symbol string, quantity int) (*ledger.Receipt, error) {
	if m.sellFn != nil {
		return m.sellFn(ctx, username, symbol, quantity)
	}
	return &ledger.Receipt{}, nil
}

func (m *mockTradingService) Dashboard(ctx context.Context, username string) (*services.Dashboard, error) {
	if m.dashboardFn != nil {
		return m.dashboardFn(ctx, username)
	}
	return &services.Dashboard{Username: username}, nil
}

func (m *mockTradingService) Portfolio(ctx context.Context, username string) (*ledger.Valuation, error) {
	if m.portfolioFn != nil {
		return m.portfolioFn(ctx, username)
	}
	return &ledger.Valuation{}, nil
}

func (m *mockTradingService) Transactions(ctx context.Context, username string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	if m.transactionsFn != nil {
		return m.transactionsFn(ctx, username, page)
	}
	resp := pagination.Slice([]models.Transaction{}, page)
	return &resp, nil
}

type mockMarketService struct {
	listStocksFn func() []models.Stock
	getStockFn   func(symbol string) (models.Stock, error)
	historyFn    func(symbol, timeframe string) (*history.Series, error)
	chartFn      func(symbol, timeframe string, w io.Writer) error
}

var _ services.MarketServicer = (*mockMarketService)(nil)

func (m *mockMarketService) ListStocks() []models.Stock {
	if m.listStocksFn != nil {
		return m.listStocksFn()
	}
	return nil
}

func (m *mockMarketService) GetStock(symbol string) (models.Stock, error) {
	if m.getStockFn != nil {
		return m.getStockFn(symbol)
	}
	return models.Stock{Symbol: symbol}, nil
}

func (m *mockMarketService) History(symbol, timeframe string) (*history.Series, error) {
	if m.historyFn != nil {
		return m.historyFn(symbol, timeframe)
	}
	return &history.Series{Symbol: symbol, Timeframe: history.Timeframe(timeframe)}, nil
}

func (m *mockMarketService) Chart(symbol, timeframe string, w io.Writer) error {
	if m.chartFn != nil {
		return m.chartFn(symbol, timeframe, w)
	}
	return nil
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
	config.Set(&config.Config{JWTSecret: "handler-test-secret", JWTExpirationDur: time.Hour})
}

func setupAuthRouter(handler *AuthHandler) *gin.Engine {
	r := gin.New()
	r.POST("/auth/signup", handler.Signup)
	r.POST("/auth/login", handler.Login)
	r.POST("/auth/logout", injectUsername("alice"), handler.Logout)
	r.POST("/anonymous/logout", handler.Logout)
	return r
}

func injectUsername(username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UsernameKey, username)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func funded(username string) *models.Account {
	return models.NewAccount(username, "hash", models.NewPortfolio(decimal.RequireFromString("10000.00")),
		time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC))
}

// --- tests ---

func TestAuthHandler_Signup(t *testing.T) {
	t.Run("returns 201 with token and balance", func(t *testing.T) {
		svc := &mockUserService{
			signupFn: func(_ context.Context, username, password, confirm string) (*models.Account, error) {
				if password != confirm {
					t.Errorf("handler should pass confirmation through")
				}
				return funded(username), nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(svc))

		rec := doRequest(r, http.MethodPost, "/auth/signup",
			`{"username":"alice","password":"s3cret!","confirm_password":"s3cret!"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		result := parseJSON(t, rec)
		token, _ := result["token"].(string)
		if token == "" {
			t.Fatal("expected token in response")
		}
		claims, err := middleware.ParseToken(token)
		if err != nil {
			t.Fatalf("token should parse: %v", err)
		}
		if claims.Username != "alice" {
			t.Errorf("expected token for alice, got %s", claims.Username)
		}
		user := result["user"].(map[string]interface{})
		if user["balance"] != 10000.0 {
			t.Errorf("expected balance 10000, got %v", user["balance"])
		}
		if _, leaked := user["password"]; leaked {
			t.Error("password hash must not be serialized")
		}
	})

	t.Run("returns 400 for invalid username", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}))
		rec := doRequest(r, http.MethodPost, "/auth/signup",
			`{"username":"a b","password":"x","confirm_password":"x"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 for missing confirmation", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}))
		rec := doRequest(r, http.MethodPost, "/auth/signup", `{"username":"alice","password":"x"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("maps password mismatch", func(t *testing.T) {
		svc := &mockUserService{
			signupFn: func(context.Context, string, string, string) (*models.Account, error) {
				return nil, apperrors.ErrPasswordMismatch
			},
		}
		r := setupAuthRouter(NewAuthHandler(svc))
		rec := doRequest(r, http.MethodPost, "/auth/signup",
			`{"username":"alice","password":"a","confirm_password":"b"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "PASSWORD_MISMATCH")
	})

	t.Run("returns 409 for duplicate username", func(t *testing.T) {
		svc := &mockUserService{
			signupFn: func(context.Context, string, string, string) (*models.Account, error) {
				return nil, apperrors.ErrDuplicateUsername
			},
		}
		r := setupAuthRouter(NewAuthHandler(svc))
		rec := doRequest(r, http.MethodPost, "/auth/signup",
			`{"username":"alice","password":"a","confirm_password":"a"}`)
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_USERNAME")
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("returns token on valid credentials", func(t *testing.T) {
		svc := &mockUserService{
			authenticateFn: func(_ context.Context, username, password string) (*models.Account, error) {
				if password != "right" {
					return nil, apperrors.ErrInvalidCredentials
				}
				return funded(username), nil
			},
		}
		r := setupAuthRouter(NewAuthHandler(svc))

		rec := doRequest(r, http.MethodPost, "/auth/login", `{"username":"alice","password":"right"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if parseJSON(t, rec)["token"] == "" {
			t.Error("expected token")
		}

		rec = doRequest(r, http.MethodPost, "/auth/login", `{"username":"alice","password":"wrong"}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_CREDENTIALS")
	})

	t.Run("returns 400 for missing fields", func(t *testing.T) {
		r := setupAuthRouter(NewAuthHandler(&mockUserService{}))
		rec := doRequest(r, http.MethodPost, "/auth/login", `{"username":"alice"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("hides persistence causes", func(t *testing.T) {
		svc := &mockUserService{
			authenticateFn: func(context.Context, string, string) (*models.Account, error) {
				return nil, apperrors.Wrap(apperrors.ErrPersistence, io.ErrUnexpectedEOF)
			},
		}
		r := setupAuthRouter(NewAuthHandler(svc))
		rec := doRequest(r, http.MethodPost, "/auth/login", `{"username":"alice","password":"x"}`)
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		if strings.Contains(rec.Body.String(), "unexpected EOF") {
			t.Error("internal cause leaked to client")
		}
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	r := setupAuthRouter(NewAuthHandler(&mockUserService{}))

	rec := doRequest(r, http.MethodPost, "/auth/logout", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if parseJSON(t, rec)["message"] != "You have been logged out" {
		t.Errorf("unexpected body %s", rec.Body.String())
	}

	rec = doRequest(r, http.MethodPost, "/anonymous/logout", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a user, got %d", rec.Code)
	}
	assertErrorCode(t, parseJSON(t, rec), "UNAUTHORIZED")
}
