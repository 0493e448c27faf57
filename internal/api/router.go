package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/medichain/identity-service/internal/api/handler"
	"github.com/medichain/identity-service/internal/api/middleware"
	"github.com/medichain/identity-service/internal/core/domain"
	"github.com/medichain/identity-service/internal/core/service"
	"github.com/medichain/identity-service/internal/infrastructure/config"
	mongodb "github.com/medichain/identity-service/internal/infrastructure/db/mongo"
	redisdb "github.com/medichain/identity-service/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	cache := redisdb.NewProfileCache(rdb, cfg.ProfileCacheTTL)
	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	tokens := service.NewJWTTokenService(cfg.JWTSecret, cfg.TokenTTL)
	identity := service.NewIdentityService(userRepo, hasher, tokens, cache, log)

	userHandler := handler.NewUserHandler(identity)
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	// Under the protected-endpoints policy the profile and deactivation
	// routes sit behind the JWT middleware (deactivation is admin only).
	// Under the permissive policy the profile handler's own bearer check
	// is the only gate, matching the currently deployed configuration.
	var profileMW, deactivateMW []echo.MiddlewareFunc
	if cfg.AccessPolicy == config.PolicyProtectedEndpoints {
		authMW := middleware.Auth(tokens)
		profileMW = []echo.MiddlewareFunc{authMW}
		deactivateMW = []echo.MiddlewareFunc{authMW, middleware.RequireRole(domain.RoleAdmin)}
	}

	// --- Identity routes ---
	g := e.Group("/api")
	g.POST("/register", userHandler.Register)
	g.POST("/login", userHandler.Login)
	g.POST("/logout", userHandler.Logout)
	g.GET("/profile", userHandler.Profile, profileMW...)
	g.POST("/users/:username/deactivate", userHandler.Deactivate, deactivateMW...)
	g.GET("/health", healthHandler.Liveness)

	// --- Operational endpoints ---
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
