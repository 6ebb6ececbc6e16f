package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fullstacklabs/identity-api/internal/api/handler"
	"github.com/fullstacklabs/identity-api/internal/api/middleware"
	"github.com/fullstacklabs/identity-api/internal/core/domain"
	"github.com/fullstacklabs/identity-api/internal/core/ports"
	"github.com/fullstacklabs/identity-api/internal/infrastructure/http/handlers"
	"github.com/fullstacklabs/identity-api/internal/pkg/token"
)

// Deps carries the constructed collaborators into the router. Services are
// built in main so the storage backend stays swappable.
type Deps struct {
	AuthService ports.AuthService
	BookService ports.BookService
	Users       ports.UserRepository
	Codec       *token.Codec
	Logger      zerolog.Logger

	// Mongo and Redis are only used by the readiness probe; either may be
	// nil (memory storage, throttling disabled).
	Mongo *mongo.Database
	Redis *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Auth routes (public) ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Protected routes ---
	authGate := middleware.Auth(deps.Codec, deps.Users, deps.Logger)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	apiGroup := e.Group("/api", authGate)
	apiGroup.GET("/me", authHandler.Me)

	bookHandler := handler.NewBookHandler(deps.BookService)
	apiGroup.GET("/books", bookHandler.List)
	apiGroup.GET("/books/:id", bookHandler.Get)
	apiGroup.POST("/books", bookHandler.Create, adminOnly)
	apiGroup.DELETE("/books/:id", bookHandler.Delete, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operability endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
