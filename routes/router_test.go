package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"carrental/internal/handlers"
	"carrental/internal/services"
	"carrental/internal/snapshot"
	"carrental/internal/utils"
	"carrental/pkg/logger"
	"carrental/pkg/websocket"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret   = "router-secret"
	testAdminKey = "admin-key"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Notice  string          `json:"notice"`
	Data    json.RawMessage `json:"data"`
	Error   *utils.APIError `json:"error"`
}

type testAPI struct {
	router *gin.Engine
	token  string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	log := logger.NewNop()
	silent := logrus.New()
	silent.SetOutput(io.Discard)

	ws := websocket.NewHandler(ctx, websocket.Options{}, silent)
	statistics := services.NewStatistics(ws, nil, "", log)
	rentalService := services.NewRentalService(
		snapshot.NewMemoryStore(),
		services.RentalServiceConfig{JWTSecret: testSecret},
		log,
		statistics,
	)

	router, err := NewRouter(Handlers{
		Admin:      handlers.NewAdminHandler(rentalService, log),
		Session:    handlers.NewSessionHandler(rentalService, log),
		Customer:   handlers.NewCustomerHandler(rentalService, log),
		Statistics: handlers.NewStatisticsHandler(statistics, ws),
		Health:     handlers.NewHealthHandler(rentalService, "test", nil),
	}, RouterConfig{
		JWTSecret:     testSecret,
		AdminAPIKey:   testAdminKey,
		WebSocketPath: "/ws/statistics",
	}, log)
	require.NoError(t, err)

	return &testAPI{router: router}
}

func (a *testAPI) do(t *testing.T, method, path string, body interface{}) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Key", testAdminKey)
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func decodeData(t *testing.T, env envelope, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, dest))
}

func TestCompanyRoutesNeedCompany(t *testing.T) {
	api := newTestAPI(t)

	status, env := api.do(t, http.MethodGet, "/api/v1/admin/overview", nil)
	assert.Equal(t, http.StatusConflict, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, utils.CodeNoCompany, env.Error.Code)

	status, _ = api.do(t, http.MethodPost, "/api/v1/session/login", map[string]int{"customer_id": 1})
	assert.Equal(t, http.StatusConflict, status)
}

func TestRentalFlow(t *testing.T) {
	api := newTestAPI(t)

	status, _ := api.do(t, http.MethodPost, "/api/v1/admin/reset", map[string]string{"company_name": "Demo Rentals"})
	require.Equal(t, http.StatusCreated, status)
	status, _ = api.do(t, http.MethodPut, "/api/v1/admin/today", map[string]string{"today": "2024-03-07"})
	require.Equal(t, http.StatusOK, status)

	var category services.CategoryView
	status, env := api.do(t, http.MethodPost, "/api/v1/admin/categories", map[string]string{"name": "Compact"})
	require.Equal(t, http.StatusCreated, status)
	decodeData(t, env, &category)

	var car services.CarView
	status, env = api.do(t, http.MethodPost, "/api/v1/admin/cars", map[string]interface{}{
		"model": "D12", "color": "red", "category_id": category.ID,
	})
	require.Equal(t, http.StatusCreated, status)
	decodeData(t, env, &car)
	assert.Equal(t, "Compact", car.CategoryName)

	var customer services.CustomerView
	status, env = api.do(t, http.MethodPost, "/api/v1/admin/customers", map[string]string{"name": "Random House"})
	require.Equal(t, http.StatusCreated, status)
	decodeData(t, env, &customer)

	status, env = api.do(t, http.MethodPost, "/api/v1/admin/customers", map[string]string{"name": "Random House"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, utils.CodeRentalWarning, env.Error.Code)

	status, _ = api.do(t, http.MethodGet, "/api/v1/customer/me", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	var login services.LoginResult
	status, env = api.do(t, http.MethodPost, "/api/v1/session/login", map[string]int{"customer_id": customer.ID})
	require.Equal(t, http.StatusOK, status)
	decodeData(t, env, &login)
	api.token = login.Token.AccessToken

	status, env = api.do(t, http.MethodPost, "/api/v1/customer/bookings", map[string]interface{}{
		"car_id": car.ID, "period_start": "2024-03-09", "period_end": "2024-03-07",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "End Date is before the start date", env.Error.Message)

	var booking services.BookingView
	status, env = api.do(t, http.MethodPost, "/api/v1/customer/bookings", map[string]interface{}{
		"car_id": car.ID, "period_start": "2024-03-07", "period_end": "2024-03-09",
	})
	require.Equal(t, http.StatusCreated, status)
	decodeData(t, env, &booking)

	var rental services.RentalView
	status, env = api.do(t, http.MethodPost, "/api/v1/customer/rentals", map[string]interface{}{"booking_id": booking.ID})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "You reached the Newbie status", env.Notice)
	decodeData(t, env, &rental)
	assert.Equal(t, car.ID, rental.CarID)

	var account services.AccountView
	status, env = api.do(t, http.MethodGet, "/api/v1/customer/me", nil)
	require.Equal(t, http.StatusOK, status)
	decodeData(t, env, &account)
	assert.Equal(t, 200, account.Customer.Points)
	assert.Len(t, account.Rentals, 1)

	returnPath := fmt.Sprintf("/api/v1/customer/rentals/by-booking/%d", booking.ID)
	status, _ = api.do(t, http.MethodDelete, returnPath, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = api.do(t, http.MethodDelete, returnPath, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, env = api.do(t, http.MethodGet, "/api/v1/admin/statistics", nil)
	require.Equal(t, http.StatusOK, status)
	var stats struct {
		Counts map[string]int `json:"counts"`
	}
	decodeData(t, env, &stats)
	assert.Equal(t, 1, stats.Counts["customers"])
	assert.Equal(t, 0, stats.Counts["rentals"])
}

func TestRequestValidation(t *testing.T) {
	api := newTestAPI(t)
	_, _ = api.do(t, http.MethodPost, "/api/v1/admin/reset", map[string]string{"company_name": "Demo Rentals"})

	status, env := api.do(t, http.MethodPost, "/api/v1/admin/cars", map[string]interface{}{
		"model": "D12", "color": "plaid", "category_id": 1,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	require.NotNil(t, env.Error)
	assert.Equal(t, utils.CodeValidationError, env.Error.Code)
	assert.Contains(t, env.Error.Details, "color")

	status, _ = api.do(t, http.MethodDelete, "/api/v1/admin/cars/abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = api.do(t, http.MethodDelete, "/api/v1/admin/cars/999", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "Couldn't find car with id 999", env.Error.Message)
}

func TestAdminKeyRequired(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/overview", nil)
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	api.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, false, body["has_company"])
}
