package api

import (
	"net/http"
	"sync"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"

	"github.com/Nikhil2247/digital-frontend/internal/api/handler"
	"github.com/Nikhil2247/digital-frontend/internal/api/middleware"
	"github.com/Nikhil2247/digital-frontend/internal/core/domain"
	"github.com/Nikhil2247/digital-frontend/internal/core/ports"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Session   middleware.SessionConfig
	NewGate   middleware.GateFactory
	Carts     ports.CartService
	Orders    ports.OrderService
	LoginRate float64

	// Readiness probes; nil disables /health/ready.
	Mongo *mongo.Database
	Redis *redis.Client

	Log zerolog.Logger
}

// httpMetrics registers the request collectors once per process so
// several routers can share the default registry.
var httpMetrics = sync.OnceValue(func() echo.MiddlewareFunc {
	return echoprometheus.NewMiddleware("gateway")
})

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(httpMetrics())

	// --- Ops routes (no session) ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness)
	if deps.Mongo != nil && deps.Redis != nil {
		healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)
		e.GET("/health/ready", healthDepsHandler.Readiness)
	}

	// --- Browser routes: every request restores its session first ---
	sessions := middleware.NewSessions(deps.Session, deps.NewGate, deps.Log)
	session := sessions.Middleware()

	authHandler := handler.NewAuthHandler(sessions, deps.Carts)
	e.POST("/auth/login", authHandler.Login, loginLimiter(deps.LoginRate), session)
	e.POST("/auth/logout", authHandler.Logout, session)
	e.GET("/auth/session", authHandler.Session, session)

	navHandler := handler.NewNavHandler()
	e.GET("/nav", navHandler.Navigate, session)
	e.GET("/", navHandler.Home, session, middleware.RequirePage(domain.Authenticated()))

	// Guests order from the table QR code without signing in.
	cartHandler := handler.NewCartHandler(deps.Carts)
	cart := e.Group("/event/:eventId/table/:tableNumber/cart", session)
	cart.GET("", cartHandler.Get)
	cart.DELETE("", cartHandler.Clear)
	cart.POST("/items", cartHandler.AddItem)
	cart.PATCH("/items/:itemId", cartHandler.SetQuantity)
	cart.POST("/submit", cartHandler.Submit)

	orderHandler := handler.NewOrderHandler(deps.Orders)
	e.PATCH("/orders/:id/status", orderHandler.UpdateStatus,
		session, middleware.RequireAPI(domain.RequireRoles(domain.RoleVendor)))

	return e
}

// loginLimiter throttles login attempts per client IP.
func loginLimiter(perSecond float64) echo.MiddlewareFunc {
	if perSecond <= 0 {
		perSecond = 1
	}
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:  rate.Limit(perSecond),
		Burst: 5,
	})
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts")
		},
	})
}
