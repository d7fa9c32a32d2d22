package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/cinecritic/review-system/docs"
	"github.com/cinecritic/review-system/internal/api/handler"
	"github.com/cinecritic/review-system/internal/api/middleware"
	"github.com/cinecritic/review-system/internal/core/domain"
	"github.com/cinecritic/review-system/internal/core/service"
	"github.com/cinecritic/review-system/internal/infrastructure/config"
	mongodb "github.com/cinecritic/review-system/internal/infrastructure/db/mongo"
	redisdb "github.com/cinecritic/review-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *goredis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("cinecritic"))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(db)
	movieRepo := mongodb.NewMovieRepository(db)
	reviewRepo := mongodb.NewReviewRepository(db)

	authService := service.NewAuthService(accountRepo, cfg.JWTSecret, cfg.TokenTTL)
	movieService := service.NewMovieService(movieRepo, reviewRepo, log)
	reviewService := service.NewReviewService(reviewRepo, movieRepo, accountRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	movieHandler := handler.NewMovieHandler(movieService, reviewService)
	reviewHandler := handler.NewReviewHandler(reviewService)

	auth := middleware.Auth(cfg.JWTSecret)
	optionalAuth := middleware.OptionalAuth(cfg.JWTSecret)
	adminOnly := middleware.RequireRoles(domain.RoleAdmin)
	criticOnly := middleware.RequireRoles(domain.RoleCritic)
	reviewReaders := middleware.RequireRoles(domain.RoleAdmin, domain.RoleCritic)

	credentialGuards := []echo.MiddlewareFunc{}
	if cfg.RateLimit.Enabled {
		counter := redisdb.NewRateCounter(rdb, cfg.RateLimit.Window)
		credentialGuards = append(credentialGuards, middleware.RateLimit(counter, "credentials", cfg.RateLimit.Max))
	}

	// --- Accounts ---
	e.POST("/accounts/", authHandler.Register, credentialGuards...)
	e.POST("/login/", authHandler.Login, credentialGuards...)

	// --- Movie catalog: open reads, admin-gated writes ---
	e.GET("/movies/", movieHandler.List, optionalAuth)
	e.GET("/movies/:id/", movieHandler.Get, optionalAuth)
	e.POST("/movies/", movieHandler.Create, auth, adminOnly)
	e.PUT("/movies/:id/", movieHandler.Update, auth, adminOnly)
	e.DELETE("/movies/:id/", movieHandler.Delete, auth, adminOnly)

	// --- Review ledger ---
	e.GET("/reviews/", reviewHandler.List, auth, reviewReaders)
	e.POST("/movies/:id/review/", reviewHandler.Create, auth, criticOnly)
	e.PUT("/movies/:id/review/", reviewHandler.Update, auth, criticOnly)

	// --- Operational surface ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
