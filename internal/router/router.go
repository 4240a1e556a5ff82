package router // package router wires handlers and middleware onto echo

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/hotel-reservation/internal/auth"
	"github.com/iliyamo/hotel-reservation/internal/handler"
	"github.com/iliyamo/hotel-reservation/internal/metrics"
	"github.com/iliyamo/hotel-reservation/internal/middleware"
)

// Handlers bundles every handler the API exposes.
type Handlers struct {
	Auth         *handler.AuthHandler
	Catalog      *handler.CatalogHandler
	Booking      *handler.BookingHandler
	Reservations *handler.ReservationHandler
	Payments     *handler.PaymentHandler
	Reports      *handler.ReportHandler
	Employees    *handler.EmployeeHandler
	Health       echo.HandlerFunc
}

// Options carries the cross-cutting pieces the routes are wrapped in.
// Metrics, RateLimit and Cache may be nil.
type Options struct {
	JWTSecret      string
	RequestTimeout time.Duration
	Log            *zap.Logger
	Metrics        *metrics.Metrics
	RateLimit      echo.MiddlewareFunc
	Cache          *middleware.ResponseCache
}

// New builds the echo instance with global middleware and every route.
func New(h Handlers, opts Options) *echo.Echo {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler

	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(opts.Metrics.Middleware())
	e.Use(middleware.RequestLogger(opts.Log))
	if opts.RequestTimeout > 0 {
		e.Use(echomw.ContextTimeout(opts.RequestTimeout))
	}
	limit := opts.RateLimit
	if limit == nil {
		limit = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	RegisterRoutes(e, h.Health, opts.Metrics)
	RegisterAuth(e, h.Auth, limit)

	// The limiter runs after JWTAuth so buckets are keyed by account.
	api := e.Group("/api", middleware.JWTAuth(opts.JWTSecret), limit)
	RegisterCatalog(api, h.Catalog, h.Booking, opts.Cache)
	RegisterReservations(api, h.Booking, h.Reservations)
	RegisterPayments(api, h.Payments)
	RegisterAdmin(api, h.Reports, h.Employees)
	return e
}

// RegisterRoutes registers the unauthenticated operational endpoints.
func RegisterRoutes(e *echo.Echo, health echo.HandlerFunc, m *metrics.Metrics) {
	if health == nil {
		health = handler.Health(nil)
	}
	e.GET("/healthz", health)
	if m != nil {
		e.GET("/metrics", echo.WrapHandler(m.Handler()))
	}
}

// RegisterAuth registers the public account routes behind the limiter.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limit echo.MiddlewareFunc) {
	e.POST("/register", a.Register, limit)
	e.POST("/login", a.Login, limit)
	e.POST("/refresh", a.Refresh, limit)
	e.POST("/logout", a.Logout, limit)
}

func allow(op auth.Operation) echo.MiddlewareFunc { return middleware.RequirePermission(op) }
