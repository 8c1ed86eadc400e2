// Warehouse and stock HTTP handlers.
//
// This file exposes REST endpoints for warehouses and stock levels:
//   - POST  /warehouses     (create)
//   - GET   /warehouses/{id} (fetch)
//   - POST  /stock          (open a stock position)
//   - GET   /stock          (read level; warehouse + item query params)
//   - POST  /stock/adjust   (apply signed delta; query params)
//
// The stock endpoints deliberately take identifiers as query parameters:
// they exercise the strict parameter contract (missing → 400 envelope,
// unconvertible → type-mismatch 400 envelope).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supplyline/go-wms-backend/internal/http/middleware"
)

// CreateWarehouseRequest is the JSON payload for creating a warehouse.
type CreateWarehouseRequest struct {
	// Code is the short unique warehouse code, e.g. "EU-01".
	Code string `json:"code" binding:"required,max=16"`
	// Name is the warehouse display name.
	Name string `json:"name" binding:"required,max=255"`
}

// OpenStockRequest is the JSON payload for opening a stock position.
type OpenStockRequest struct {
	WarehouseID string `json:"warehouse_id" binding:"required"`
	ItemID      string `json:"item_id" binding:"required"`
	// Quantity is the opening on-hand count; never negative.
	Quantity int `json:"quantity" binding:"gte=0"`
}

// CreateWarehouse handles POST /warehouses.
func (h *Handlers) CreateWarehouse(c *gin.Context) {
	var req CreateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RenderFault(c, bindFault("CreateWarehouseRequest", err))
		return
	}

	wh, err := h.stockSvc.CreateWarehouse(c.Request.Context(), req.Code, req.Name)
	if err != nil {
		middleware.RenderFault(c, serviceFault(err))
		return
	}
	ok(c, http.StatusCreated, wh)
}

// GetWarehouse handles GET /warehouses/:id.
func (h *Handlers) GetWarehouse(c *gin.Context) {
	wh, err := h.stockSvc.GetWarehouse(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.RenderFault(c, serviceFault(err))
		return
	}
	ok(c, http.StatusOK, wh)
}

// OpenStock handles POST /stock.
func (h *Handlers) OpenStock(c *gin.Context) {
	var req OpenStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RenderFault(c, bindFault("OpenStockRequest", err))
		return
	}

	sl, err := h.stockSvc.OpenStock(c.Request.Context(), req.WarehouseID, req.ItemID, req.Quantity)
	if err != nil {
		middleware.RenderFault(c, serviceFault(err))
		return
	}
	ok(c, http.StatusCreated, sl)
}

// GetStock handles GET /stock?warehouse=<id>&item=<id>.
func (h *Handlers) GetStock(c *gin.Context) {
	warehouseID, okParam := requireQuery(c, "warehouse")
	if !okParam {
		return
	}
	itemID, okParam := requireQuery(c, "item")
	if !okParam {
		return
	}

	sl, err := h.stockSvc.Get(c.Request.Context(), warehouseID, itemID)
	if err != nil {
		middleware.RenderFault(c, serviceFault(err))
		return
	}
	ok(c, http.StatusOK, sl)
}

// AdjustStock handles POST /stock/adjust?warehouse=<id>&item=<id>&delta=<n>.
func (h *Handlers) AdjustStock(c *gin.Context) {
	warehouseID, okParam := requireQuery(c, "warehouse")
	if !okParam {
		return
	}
	itemID, okParam := requireQuery(c, "item")
	if !okParam {
		return
	}
	delta, okParam := requireQueryInt(c, "delta")
	if !okParam {
		return
	}

	sl, err := h.stockSvc.Adjust(c.Request.Context(), warehouseID, itemID, delta)
	if err != nil {
		middleware.RenderFault(c, serviceFault(err))
		return
	}
	ok(c, http.StatusOK, sl)
}
