// Package services – StockService
//
// This file implements the StockService, which manages warehouse stock
// levels: creating warehouses, opening stock positions, reading levels, and
// applying signed adjustments. Adjustments are traced with OpenTelemetry so
// hot paths are visible under the request span.
//
// The DB check constraint (quantity >= 0) is the final authority on
// over-draw: an adjustment that would drive a level negative fails at the
// persistence layer and surfaces to the client as a data-integrity conflict.
package services

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/supplyline/go-wms-backend/internal/domain"
)

// tracer names spans emitted by the stock service.
var tracer = otel.Tracer("github.com/supplyline/go-wms-backend/internal/services")

// StockRepo defines the repository contract required by StockService.
type StockRepo interface {
	// CreateWarehouse inserts a new warehouse row.
	CreateWarehouse(ctx context.Context, db *gorm.DB, code, name string) (*domain.Warehouse, error)

	// GetWarehouse fetches a warehouse by ID.
	GetWarehouse(ctx context.Context, db *gorm.DB, id string) (*domain.Warehouse, error)

	// CreateStock inserts the opening stock row for a (warehouse, item) pair.
	CreateStock(ctx context.Context, db *gorm.DB, warehouseID, itemID string, quantity int) (*domain.StockLevel, error)

	// GetStock fetches the stock level for a (warehouse, item) pair.
	GetStock(ctx context.Context, db *gorm.DB, warehouseID, itemID string) (*domain.StockLevel, error)

	// AdjustStock atomically applies a signed delta and returns the new row.
	AdjustStock(ctx context.Context, db *gorm.DB, warehouseID, itemID string, delta int) (*domain.StockLevel, error)
}

// adjustRules captures the constraints on a stock adjustment request.
type adjustRules struct {
	Delta int `validate:"ne=0"`
}

// StockService provides stock-level operations for warehouses and items.
type StockService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the stock repository used by this service.
	Repo StockRepo
	// Validate checks adjustment rule structs.
	Validate *validator.Validate
}

// NewStockService constructs a StockService with a ready validator.
func NewStockService(db *gorm.DB, r StockRepo) *StockService {
	return &StockService{DB: db, Repo: r, Validate: validator.New()}
}

// CreateWarehouse persists a new warehouse. Duplicate codes are wrapped in
// *StorageError for the HTTP layer to classify as a conflict.
func (s *StockService) CreateWarehouse(ctx context.Context, code, name string) (*domain.Warehouse, error) {
	wh, err := s.Repo.CreateWarehouse(ctx, s.DB, code, name)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return wh, nil
}

// GetWarehouse fetches one warehouse by ID, returning ErrWarehouseNotFound
// when absent.
func (s *StockService) GetWarehouse(ctx context.Context, id string) (*domain.Warehouse, error) {
	wh, err := s.Repo.GetWarehouse(ctx, s.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrWarehouseNotFound
	}
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return wh, nil
}

// OpenStock creates the initial stock position for a (warehouse, item) pair.
func (s *StockService) OpenStock(ctx context.Context, warehouseID, itemID string, quantity int) (*domain.StockLevel, error) {
	sl, err := s.Repo.CreateStock(ctx, s.DB, warehouseID, itemID, quantity)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return sl, nil
}

// Get reads the stock level for a (warehouse, item) pair, returning
// ErrStockNotFound when no position exists.
func (s *StockService) Get(ctx context.Context, warehouseID, itemID string) (*domain.StockLevel, error) {
	sl, err := s.Repo.GetStock(ctx, s.DB, warehouseID, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStockNotFound
	}
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return sl, nil
}

// Adjust applies a signed delta to a stock level after checking adjustment
// rules. A zero delta returns *RuleViolationError; a missing position
// returns ErrStockNotFound; an over-draw fails on the DB check constraint
// and is wrapped in *StorageError.
func (s *StockService) Adjust(ctx context.Context, warehouseID, itemID string, delta int) (*domain.StockLevel, error) {
	ctx, span := tracer.Start(ctx, "StockService.Adjust",
		trace.WithAttributes(
			attribute.String("warehouse_id", warehouseID),
			attribute.String("item_id", itemID),
			attribute.Int("delta", delta),
		))
	defer span.End()

	if err := checkRules(s.Validate, "StockAdjustment", adjustRules{Delta: delta}); err != nil {
		return nil, err
	}

	sl, err := s.Repo.AdjustStock(ctx, s.DB, warehouseID, itemID, delta)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrStockNotFound
	}
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return sl, nil
}
