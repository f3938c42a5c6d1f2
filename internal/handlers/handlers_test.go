package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "github.com/cgultunca/moneybox-withdrawal/internal/errors"
	"github.com/cgultunca/moneybox-withdrawal/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockAccountReader struct {
	mock.Mock
}

func (m *MockAccountReader) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

type MockWithdrawService struct {
	mock.Mock
}

func (m *MockWithdrawService) Execute(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) error {
	args := m.Called(ctx, accountID, amount)
	return args.Error(0)
}

type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) Execute(ctx context.Context, fromAccountID, toAccountID uuid.UUID, amount decimal.Decimal) error {
	args := m.Called(ctx, fromAccountID, toAccountID, amount)
	return args.Error(0)
}

func amountOf(want string) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.RequireFromString(want))
	})
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func newAccountApp(reader AccountReader, svc *MockWithdrawService) *fiber.App {
	h := NewAccountHandler(reader, svc, zap.NewNop())
	app := fiber.New()
	app.Get("/api/accounts/:id", h.GetAccount)
	app.Post("/api/accounts/:id/withdraw", h.Withdraw)
	return app
}

func TestAccountHandler_GetAccount(t *testing.T) {
	account := &models.Account{
		ID:      uuid.New(),
		Owner:   &models.User{Email: "from@moneybox.com"},
		Balance: decimal.NewFromInt(6000),
	}
	missing := uuid.New()

	reader := new(MockAccountReader)
	reader.On("GetByID", mock.Anything, account.ID).Return(account, nil)
	reader.On("GetByID", mock.Anything, missing).Return(nil, apperrors.ErrAccountNotFound)
	app := newAccountApp(reader, new(MockWithdrawService))

	t.Run("found", func(t *testing.T) {
		status, body := doRequest(t, app, fiber.MethodGet, "/api/accounts/"+account.ID.String(), "")
		assert.Equal(t, fiber.StatusOK, status)
		data := body["data"].(map[string]interface{})
		assert.Equal(t, account.ID.String(), data["id"])
		assert.Equal(t, "6000", data["balance"])
	})

	t.Run("not found", func(t *testing.T) {
		status, body := doRequest(t, app, fiber.MethodGet, "/api/accounts/"+missing.String(), "")
		assert.Equal(t, fiber.StatusNotFound, status)
		assert.Equal(t, "ACCOUNT_NOT_FOUND", body["code"])
	})

	t.Run("malformed id", func(t *testing.T) {
		status, _ := doRequest(t, app, fiber.MethodGet, "/api/accounts/not-a-uuid", "")
		assert.Equal(t, fiber.StatusBadRequest, status)
	})
}

func TestAccountHandler_Withdraw(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		path       string
		body       string
		setup      func(svc *MockWithdrawService)
		wantStatus int
		wantCode   string
	}{
		{
			name: "string amount",
			path: "/api/accounts/" + id.String() + "/withdraw",
			body: `{"amount":"2500"}`,
			setup: func(svc *MockWithdrawService) {
				svc.On("Execute", mock.Anything, id, amountOf("2500")).Return(nil).Once()
			},
			wantStatus: fiber.StatusOK,
		},
		{
			name: "numeric amount",
			path: "/api/accounts/" + id.String() + "/withdraw",
			body: `{"amount":12.5}`,
			setup: func(svc *MockWithdrawService) {
				svc.On("Execute", mock.Anything, id, amountOf("12.5")).Return(nil).Once()
			},
			wantStatus: fiber.StatusOK,
		},
		{
			name: "insufficient funds",
			path: "/api/accounts/" + id.String() + "/withdraw",
			body: `{"amount":"6500"}`,
			setup: func(svc *MockWithdrawService) {
				svc.On("Execute", mock.Anything, id, amountOf("6500")).Return(apperrors.ErrInsufficientFunds).Once()
			},
			wantStatus: fiber.StatusUnprocessableEntity,
			wantCode:   "INSUFFICIENT_FUNDS",
		},
		{
			name: "persistence failure",
			path: "/api/accounts/" + id.String() + "/withdraw",
			body: `{"amount":"10"}`,
			setup: func(svc *MockWithdrawService) {
				err := fmt.Errorf("failed to update account: %w", apperrors.ErrPersistence.Wrap(errors.New("timeout")))
				svc.On("Execute", mock.Anything, id, amountOf("10")).Return(err).Once()
			},
			wantStatus: fiber.StatusInternalServerError,
			wantCode:   "PERSISTENCE_ERROR",
		},
		{
			name:       "zero amount",
			path:       "/api/accounts/" + id.String() + "/withdraw",
			body:       `{"amount":"0"}`,
			wantStatus: fiber.StatusBadRequest,
			wantCode:   "INVALID_AMOUNT",
		},
		{
			name:       "negative amount",
			path:       "/api/accounts/" + id.String() + "/withdraw",
			body:       `{"amount":"-5"}`,
			wantStatus: fiber.StatusBadRequest,
			wantCode:   "INVALID_AMOUNT",
		},
		{
			name:       "malformed body",
			path:       "/api/accounts/" + id.String() + "/withdraw",
			body:       `{"amount":`,
			wantStatus: fiber.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
		},
		{
			name:       "malformed id",
			path:       "/api/accounts/123/withdraw",
			body:       `{"amount":"10"}`,
			wantStatus: fiber.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockWithdrawService)
			if tt.setup != nil {
				tt.setup(svc)
			}
			app := newAccountApp(new(MockAccountReader), svc)

			status, body := doRequest(t, app, fiber.MethodPost, tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, status)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, body["code"])
			}
			if tt.setup == nil {
				svc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything, mock.Anything)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestTransferHandler_Transfer(t *testing.T) {
	fromID, toID := uuid.New(), uuid.New()
	body := func(from, to, amount string) string {
		return fmt.Sprintf(`{"from_account_id":%q,"to_account_id":%q,"amount":%s}`, from, to, amount)
	}

	tests := []struct {
		name       string
		body       string
		svcErr     error
		callsSvc   bool
		wantStatus int
		wantCode   string
	}{
		{
			name:       "success",
			body:       body(fromID.String(), toID.String(), `"2500"`),
			callsSvc:   true,
			wantStatus: fiber.StatusOK,
		},
		{
			name:       "pay in limit exceeded",
			body:       body(fromID.String(), toID.String(), `"2500"`),
			svcErr:     apperrors.ErrPayInLimitExceeded,
			callsSvc:   true,
			wantStatus: fiber.StatusUnprocessableEntity,
			wantCode:   "PAY_IN_LIMIT_EXCEEDED",
		},
		{
			name:       "destination not found",
			body:       body(fromID.String(), toID.String(), `"2500"`),
			svcErr:     fmt.Errorf("failed to load destination account: %w", apperrors.ErrAccountNotFound),
			callsSvc:   true,
			wantStatus: fiber.StatusNotFound,
			wantCode:   "ACCOUNT_NOT_FOUND",
		},
		{
			name:       "invalid source id",
			body:       body("nope", toID.String(), `"2500"`),
			wantStatus: fiber.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
		},
		{
			name:       "invalid destination id",
			body:       body(fromID.String(), "", `"2500"`),
			wantStatus: fiber.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
		},
		{
			name:       "same account",
			body:       body(fromID.String(), fromID.String(), `"2500"`),
			wantStatus: fiber.StatusBadRequest,
			wantCode:   "SAME_ACCOUNT",
		},
		{
			name:       "non positive amount",
			body:       body(fromID.String(), toID.String(), `"-1"`),
			wantStatus: fiber.StatusBadRequest,
			wantCode:   "INVALID_AMOUNT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockTransferService)
			if tt.callsSvc {
				svc.On("Execute", mock.Anything, fromID, toID, amountOf("2500")).Return(tt.svcErr).Once()
			}
			h := NewTransferHandler(svc, zap.NewNop())
			app := fiber.New()
			app.Post("/api/transfers", h.Transfer)

			status, resp := doRequest(t, app, fiber.MethodPost, "/api/transfers", tt.body)

			assert.Equal(t, tt.wantStatus, status)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, resp["code"])
			} else {
				assert.Equal(t, "transfer completed", resp["message"])
			}
			if !tt.callsSvc {
				svc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestHealthHandler_HealthCheck(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("dial tcp: refused") }

	t.Run("all connected", func(t *testing.T) {
		app := fiber.New()
		app.Get("/health", NewHealthHandler(map[string]HealthCheckFunc{"database": ok, "redis": ok}).HealthCheck)

		status, body := doRequest(t, app, fiber.MethodGet, "/health", "")
		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "ok", body["status"])
	})

	t.Run("one unavailable", func(t *testing.T) {
		app := fiber.New()
		app.Get("/health", NewHealthHandler(map[string]HealthCheckFunc{"database": ok, "redis": down}).HealthCheck)

		status, body := doRequest(t, app, fiber.MethodGet, "/health", "")
		assert.Equal(t, fiber.StatusServiceUnavailable, status)
		assert.Equal(t, "degraded", body["status"])
		services := body["services"].(map[string]interface{})
		assert.Equal(t, "unavailable", services["redis"])
		assert.Equal(t, "connected", services["database"])
	})
}
