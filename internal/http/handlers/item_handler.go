// Item HTTP handlers.
//
// This file exposes REST endpoints for catalog items:
//   - POST   /items        (create)
//   - GET    /items        (list, paginated)
//   - GET    /items/{id}   (fetch)
//   - GET    /items/sku/{sku} (fetch by SKU)
//
// Handlers are transport-thin: they bind input, call application services,
// and translate failures into the canonical error envelope via
// middleware.RenderFault.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supplyline/go-wms-backend/internal/domain"
	"github.com/supplyline/go-wms-backend/internal/http/middleware"
)

//
// Service contracts (context-aware)
//

// ItemService defines the catalog operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ItemService interface {
	// Create validates and persists a new catalog item.
	Create(ctx context.Context, sku, name string, unitPrice float64) (*domain.Item, error)
	// Get fetches one item by ID.
	Get(ctx context.Context, id string) (*domain.Item, error)
	// GetBySKU fetches one item by its SKU.
	GetBySKU(ctx context.Context, sku string) (*domain.Item, error)
	// ListPage returns a page of items and the total count.
	ListPage(ctx context.Context, page, pageSize int) ([]domain.Item, int64, error)
}

// StockService defines warehouse stock operations consumed by HTTP handlers.
type StockService interface {
	// CreateWarehouse persists a new warehouse.
	CreateWarehouse(ctx context.Context, code, name string) (*domain.Warehouse, error)
	// GetWarehouse fetches one warehouse by ID.
	GetWarehouse(ctx context.Context, id string) (*domain.Warehouse, error)
	// OpenStock creates the initial stock position for a (warehouse, item).
	OpenStock(ctx context.Context, warehouseID, itemID string, quantity int) (*domain.StockLevel, error)
	// Get reads the stock level for a (warehouse, item).
	Get(ctx context.Context, warehouseID, itemID string) (*domain.StockLevel, error)
	// Adjust applies a signed delta to a stock level.
	Adjust(ctx context.Context, warehouseID, itemID string, delta int) (*domain.StockLevel, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for items, warehouses, and stock.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	itemSvc  ItemService
	stockSvc StockService
}

// New constructs a Handlers instance bound to the given services.
func New(itemSvc ItemService, stockSvc StockService) *Handlers {
	return &Handlers{itemSvc: itemSvc, stockSvc: stockSvc}
}

//
// DTOs
//

// CreateItemRequest is the JSON payload for creating a catalog item.
type CreateItemRequest struct {
	// SKU is the stock-keeping unit code; normalized server-side.
	SKU string `json:"sku" binding:"required"`
	// Name is the item display name.
	Name string `json:"name" binding:"required"`
	// UnitPrice is the per-unit price; must not be negative.
	UnitPrice float64 `json:"unit_price" binding:"gte=0"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ListItemsResponse wraps a page of items and pagination information.
type ListItemsResponse struct {
	Items      []domain.Item `json:"items"`
	Pagination Pagination    `json:"pagination"`
}

//
// Endpoints
//

// CreateItem handles POST /items.
func (h *Handlers) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RenderFault(c, bindFault("CreateItemRequest", err))
		return
	}

	item, err := h.itemSvc.Create(c.Request.Context(), req.SKU, req.Name, req.UnitPrice)
	if err != nil {
		middleware.RenderFault(c, serviceFault(err))
		return
	}
	ok(c, http.StatusCreated, item)
}

// GetItem handles GET /items/:id.
func (h *Handlers) GetItem(c *gin.Context) {
	item, err := h.itemSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.RenderFault(c, serviceFault(err))
		return
	}
	ok(c, http.StatusOK, item)
}

// GetItemBySKU handles GET /items/sku/:sku. The SKU is normalized before
// the lookup, so lower-case client values still resolve.
func (h *Handlers) GetItemBySKU(c *gin.Context) {
	item, err := h.itemSvc.GetBySKU(c.Request.Context(), c.Param("sku"))
	if err != nil {
		middleware.RenderFault(c, serviceFault(err))
		return
	}
	ok(c, http.StatusOK, item)
}

// ListItems handles GET /items with optional page / page_size parameters.
// Defaults: page 1, page_size 20 (max 100). A non-numeric value renders the
// TypeMismatch envelope rather than falling back to the default.
func (h *Handlers) ListItems(c *gin.Context) {
	page, okParam := optionalQueryInt(c, "page", 1)
	if !okParam {
		return
	}
	pageSize, okParam := optionalQueryInt(c, "page_size", 20)
	if !okParam {
		return
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	items, total, err := h.itemSvc.ListPage(c.Request.Context(), page, pageSize)
	if err != nil {
		middleware.RenderFault(c, serviceFault(err))
		return
	}
	if items == nil {
		items = []domain.Item{}
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListItemsResponse{
		Items: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}
