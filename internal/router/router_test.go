package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-reservation/internal/handler"
	"github.com/iliyamo/hotel-reservation/internal/metrics"
	"github.com/iliyamo/hotel-reservation/internal/model"
	"github.com/iliyamo/hotel-reservation/internal/utils"
)

const secret = "router-test-secret"

// newTestEcho wires handlers without services; only middleware decisions
// taken before a handler runs can be exercised.
func newTestEcho() *echo.Echo {
	return New(Handlers{
		Auth:         handler.NewAuthHandler(nil),
		Catalog:      handler.NewCatalogHandler(nil, nil, nil),
		Booking:      handler.NewBookingHandler(nil),
		Reservations: handler.NewReservationHandler(nil),
		Payments:     handler.NewPaymentHandler(nil),
		Reports:      handler.NewReportHandler(nil),
		Employees:    handler.NewEmployeeHandler(nil),
	}, Options{JWTSecret: secret, RequestTimeout: time.Second, Metrics: metrics.New()})
}

func request(t *testing.T, e *echo.Echo, method, path string, role model.Role) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if role != "" {
		tok, err := utils.NewAccessToken(secret, 1, "user", string(role), time.Minute)
		require.NoError(t, err)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok.Token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRoutesRegistered(t *testing.T) {
	e := newTestEcho()
	got := map[string]bool{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /healthz",
		"GET /metrics",
		"POST /register",
		"POST /login",
		"POST /refresh",
		"POST /logout",
		"GET /api/rooms",
		"GET /api/rooms/available",
		"POST /api/rooms/quote",
		"PUT /api/rooms/:type",
		"GET /api/rooms/:id/food",
		"GET /api/food",
		"POST /api/bookings",
		"POST /api/reservations",
		"GET /api/reservations",
		"GET /api/my-reservations",
		"PUT /api/reservations/:id/confirm",
		"POST /api/payments",
		"GET /api/payments",
		"GET /api/payments/summary",
		"GET /api/payments/:year/:month",
		"GET /api/reports/sales",
		"GET /api/employee",
		"POST /api/employee",
		"DELETE /api/employee/:id",
	} {
		assert.True(t, got[want], want)
	}
}

func TestPermissionsEnforcedBeforeHandlers(t *testing.T) {
	e := newTestEcho()
	cases := []struct {
		method, path string
		role         model.Role
		status       int
	}{
		{http.MethodGet, "/api/rooms", "", http.StatusUnauthorized},
		{http.MethodPut, "/api/rooms/Single", model.RoleGuest, http.StatusForbidden},
		{http.MethodPut, "/api/rooms/Single", model.RoleEmployee, http.StatusForbidden},
		{http.MethodGet, "/api/reservations", model.RoleGuest, http.StatusForbidden},
		{http.MethodPut, "/api/reservations/1/confirm", model.RoleGuest, http.StatusForbidden},
		{http.MethodGet, "/api/payments", model.RoleGuest, http.StatusForbidden},
		{http.MethodGet, "/api/payments/2024/1", model.RoleGuest, http.StatusForbidden},
		{http.MethodGet, "/api/reports/sales", model.RoleEmployee, http.StatusForbidden},
		{http.MethodGet, "/api/employee", model.RoleEmployee, http.StatusForbidden},
		{http.MethodDelete, "/api/employee/3", model.RoleGuest, http.StatusForbidden},
	}
	for _, tc := range cases {
		rec := request(t, e, tc.method, tc.path, tc.role)
		assert.Equal(t, tc.status, rec.Code, "%s %s as %q", tc.method, tc.path, tc.role)
	}
}

func TestOperationalEndpoints(t *testing.T) {
	e := newTestEcho()

	rec := request(t, e, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	rec = request(t, e, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hotel_http_requests_total")

	rec = request(t, e, http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())
}
