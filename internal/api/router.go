package api

import (
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mercatto/catalog-api/internal/api/handler"
	"github.com/mercatto/catalog-api/internal/api/middleware"
	"github.com/mercatto/catalog-api/internal/core/domain"
	"github.com/mercatto/catalog-api/internal/core/service"
	mongodb "github.com/mercatto/catalog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/mercatto/catalog-api/internal/infrastructure/db/redis"
	"github.com/mercatto/catalog-api/internal/pkg/hasher"
	"github.com/mercatto/catalog-api/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, cacheTTL time.Duration) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.Get())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	imageRepo := mongodb.NewImageRepository(db)
	productCache := redisdb.NewProductCache(rdb, cacheTTL)

	// --- Services ---
	passwordHasher := hasher.NewBcrypt(0)
	authService := service.NewAuthService(userRepo, passwordHasher, jwtSecret, 24*time.Hour, logger.Get())
	userService := service.NewUserService(userRepo, passwordHasher, logger.Get())
	categoryService := service.NewCategoryService(categoryRepo, productRepo, imageRepo, logger.Get())
	productService := service.NewProductService(productRepo, categoryRepo, imageRepo, productCache, logger.Get())
	imageService := service.NewImageService(imageRepo, productRepo, productCache, logger.Get())

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	productHandler := handler.NewProductHandler(productService)
	imageHandler := handler.NewImageHandler(imageService)

	auth := middleware.Auth(jwtSecret)

	v1 := e.Group("/v1")

	// --- Auth routes ---
	v1.POST("/auth/register", authHandler.Register)
	v1.POST("/auth/login", authHandler.Login)

	// --- Public catalog reads ---
	v1.GET("/categories", categoryHandler.List)
	v1.GET("/categories/:id", categoryHandler.Get)
	v1.GET("/categories/:id/products", productHandler.ListByCategory)
	v1.GET("/products", productHandler.List)
	v1.GET("/products/:id", productHandler.Get)

	// --- Catalog writes (GRANT_EDIT rank) ---
	v1.POST("/categories", categoryHandler.Create, auth, middleware.RequireRank(domain.RankGrantEdit))
	v1.PUT("/categories/:id", categoryHandler.Update, auth, middleware.RequireRank(domain.RankGrantEdit))
	v1.DELETE("/categories/:id", categoryHandler.Delete, auth, middleware.RequireRank(domain.RankGrantEdit))
	v1.POST("/products", productHandler.Create, auth, middleware.RequireRank(domain.RankGrantEdit))
	v1.PUT("/products/:id", productHandler.Update, auth, middleware.RequireRank(domain.RankGrantEdit))
	v1.DELETE("/products/:id", productHandler.Delete, auth, middleware.RequireRank(domain.RankGrantEdit))

	// --- Images (reads authenticated, writes EDIT rank) ---
	v1.GET("/images", imageHandler.List, auth, middleware.RequireRank(domain.RankUser))
	v1.GET("/images/:id", imageHandler.Get, auth, middleware.RequireRank(domain.RankUser))
	v1.POST("/products/:id/images", imageHandler.Create, auth, middleware.RequireRank(domain.RankEdit))
	v1.PUT("/images/:id", imageHandler.Update, auth, middleware.RequireRank(domain.RankEdit))
	v1.DELETE("/images/:id", imageHandler.Delete, auth, middleware.RequireRank(domain.RankEdit))

	// --- User management (ADMIN rank, peer-protected in the service) ---
	v1.GET("/users", userHandler.List, auth, middleware.RequireRank(domain.RankAdmin))
	v1.GET("/users/:id", userHandler.Get, auth, middleware.RequireRank(domain.RankAdmin))
	v1.PATCH("/users/:id", userHandler.Update, auth, middleware.RequireRank(domain.RankAdmin))
	v1.PATCH("/users/:id/role/:level", userHandler.SetRole, auth, middleware.RequireRank(domain.RankAdmin))
	v1.DELETE("/users/:id", userHandler.Delete, auth, middleware.RequireRank(domain.RankAdmin))

	// --- Super admin entry points (no peer protection) ---
	admin := v1.Group("/admin", auth, middleware.RequireRank(domain.RankSuperAdmin))
	admin.PATCH("/users/:id", userHandler.UpdateAdmin)
	admin.PATCH("/users/:id/role/:level", userHandler.SetRoleAdmin)
	admin.DELETE("/users/:id", userHandler.DeleteAdmin)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Metrics ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
