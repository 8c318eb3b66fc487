package router

import (
	"time"

	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/cache"
	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/config"
	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/handler"
	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/middleware"
	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/repository"
	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/service"
	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository/Storage/Cache ← Mongo/S3/Redis
func New(cfg *config.Config, client *mongo.Client, db *mongo.Database, rdb *redis.Client, store storage.Storage) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories / services ──────────────────────────────────────────────
	productRepo := repository.NewProductRepository(client, db)
	listCache := cache.New(rdb, time.Duration(cfg.CacheTTLSeconds)*time.Second)
	productSvc := service.NewProductService(productRepo, store, listCache)

	// ── Handlers ─────────────────────────────────────────────────────────────
	productsH := handler.NewProductsHandler(productSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(client, rdb))
	r.GET("/api/config", handler.SiteConfig(cfg))

	api := r.Group("/api/clothing")
	{
		// Public catalog
		api.GET("/get", productsH.List)
		api.GET("/getById/:id", productsH.GetByID)
		api.GET("/featured", productsH.Featured)
		api.GET("/check-name", productsH.CheckName)

		// Admin mutations — shared credential via Basic Auth
		admin := api.Group("", middleware.AdminRateLimiter(), middleware.BasicAuth(cfg))
		{
			admin.POST("/create", productsH.Create)
			admin.PUT("/update/:id", productsH.Update)
			admin.DELETE("/:id", productsH.Delete)
			admin.PATCH("/:id/featured", productsH.SetFeatured)
		}
	}

	// Local storage driver serves the uploaded images itself
	if cfg.StorageDriver == "local" {
		r.Static(cfg.LocalUploadURLBase, cfg.LocalUploadDir)
	}

	return r
}
