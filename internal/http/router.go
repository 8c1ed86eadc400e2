// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation propagation, logging/redaction, panic recovery,
// metrics, CORS, security headers, media-type enforcement, authentication,
// and rate limiting.
//
// Design goals:
//   - Every failure path, framework-level included, exits through the
//     canonical error envelope (internal/apierror)
//   - Safe-by-default middleware ordering (ids → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/supplyline/go-wms-backend/internal/apierror"
	"github.com/supplyline/go-wms-backend/internal/config"
	"github.com/supplyline/go-wms-backend/internal/domain"
	"github.com/supplyline/go-wms-backend/internal/http/handlers"
	"github.com/supplyline/go-wms-backend/internal/http/middleware"
	"github.com/supplyline/go-wms-backend/internal/repo"
	"github.com/supplyline/go-wms-backend/internal/services"
)

// itemRepoShim adapts the repository free functions to the services.ItemRepo
// interface expected by the ItemService. This keeps services decoupled from
// the concrete repo package while reusing existing functions.
type itemRepoShim struct{}

// CreateItem proxies repo.CreateItem.
func (itemRepoShim) CreateItem(ctx context.Context, db *gorm.DB, sku, name string, unitPrice float64) (*domain.Item, error) {
	return repo.CreateItem(ctx, db, sku, name, unitPrice)
}

// GetItem proxies repo.GetItem.
func (itemRepoShim) GetItem(ctx context.Context, db *gorm.DB, id string) (*domain.Item, error) {
	return repo.GetItem(ctx, db, id)
}

// CountItems proxies repo.CountItems (pagination support).
func (itemRepoShim) GetItemBySKU(ctx context.Context, db *gorm.DB, sku string) (*domain.Item, error) {
	return repo.GetItemBySKU(ctx, db, sku)
}

func (itemRepoShim) CountItems(ctx context.Context, db *gorm.DB) (int64, error) {
	return repo.CountItems(ctx, db)
}

// ListItemsPage proxies repo.ListItemsPage (pagination support).
func (itemRepoShim) ListItemsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Item, error) {
	return repo.ListItemsPage(ctx, db, offset, limit)
}

// stockRepoShim adapts the repository free functions to services.StockRepo.
type stockRepoShim struct{}

// CreateWarehouse proxies repo.CreateWarehouse.
func (stockRepoShim) CreateWarehouse(ctx context.Context, db *gorm.DB, code, name string) (*domain.Warehouse, error) {
	return repo.CreateWarehouse(ctx, db, code, name)
}

// CreateStock proxies repo.CreateStock.
func (stockRepoShim) GetWarehouse(ctx context.Context, db *gorm.DB, id string) (*domain.Warehouse, error) {
	return repo.GetWarehouse(ctx, db, id)
}

func (stockRepoShim) CreateStock(ctx context.Context, db *gorm.DB, warehouseID, itemID string, quantity int) (*domain.StockLevel, error) {
	return repo.CreateStock(ctx, db, warehouseID, itemID, quantity)
}

// GetStock proxies repo.GetStock.
func (stockRepoShim) GetStock(ctx context.Context, db *gorm.DB, warehouseID, itemID string) (*domain.StockLevel, error) {
	return repo.GetStock(ctx, db, warehouseID, itemID)
}

// AdjustStock proxies repo.AdjustStock.
func (stockRepoShim) AdjustStock(ctx context.Context, db *gorm.DB, warehouseID, itemID string, delta int) (*domain.StockLevel, error) {
	return repo.AdjustStock(ctx, db, warehouseID, itemID, delta)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID / Correlation: ids for logs and envelopes
//  3. Logger: structured logs with scrubbing
//  4. Recovery: panics become the uncategorized 500 envelope
//  5. Body size limiter
//  6. Gzip compression
//  7. Metrics
//  8. Rate limiter (per client IP)
//  9. CORS and security headers
//  10. Media-type enforcement on body-carrying methods
//  11. API-key auth on the versioned API group
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Server-side request id + caller correlation id
	r.Use(middleware.RequestID())
	r.Use(middleware.Correlation(cfg.CorrelationHeader))

	// 3) Structured logging with scrubbing
	r.Use(middleware.Logger())

	// 4) Panic recovery to the canonical 500 envelope
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Response compression
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Token-bucket rate limiter per client IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP())
	r.Use(rl.Handler())

	// 9) CORS posture (allow all when no origins configured)
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-API-Key", cfg.CorrelationHeader},
		ExposeHeaders:    []string{"X-Request-ID", cfg.CorrelationHeader, "Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS: cfg.Security.EnableHSTS,
		HSTSMaxAge: cfg.Security.HSTSMaxAge,
	}))

	// 10) Reject non-JSON bodies with the 415 envelope
	r.Use(middleware.RequireJSON())

	// Unrouted requests: 400 envelope, preserved contract behavior.
	r.NoRoute(func(c *gin.Context) {
		middleware.RenderFault(c, apierror.NoRouteFound(
			c.Request.Method,
			c.Request.URL.Path,
			"no handler registered",
		))
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Dependency injection: services ← db
	itemSvc := services.NewItemService(db, itemRepoShim{})
	stockSvc := services.NewStockService(db, stockRepoShim{})
	h := handlers.New(itemSvc, stockSvc)

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	api.Use(middleware.APIKeyAuth(cfg.APIKeys))
	{
		// Catalog (reads open to any authenticated role)
		api.GET("/items", h.ListItems)
		api.GET("/items/:id", h.GetItem)
		api.GET("/items/sku/:sku", h.GetItemBySKU)

		// Warehouse and stock reads
		api.GET("/warehouses/:id", h.GetWarehouse)
		api.GET("/stock", h.GetStock)

		// Mutations require the writer role
		w := api.Group("")
		w.Use(middleware.RequireRole(middleware.RoleWriter))
		{
			w.POST("/items", h.CreateItem)
			w.POST("/warehouses", h.CreateWarehouse)
			w.POST("/stock", h.OpenStock)
			w.POST("/stock/adjust", h.AdjustStock)
		}
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the
// cap cause downstream body reads to fail, surfacing as MalformedBody.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "" as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
