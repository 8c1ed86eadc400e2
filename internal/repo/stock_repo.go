// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for warehouses
// and stock levels.
//
// Error semantics mirror item_repo.go: missing rows return
// gorm.ErrRecordNotFound; integrity failures (duplicate (warehouse,item)
// pair, quantity check constraint) propagate the raw gorm error for the
// HTTP layer to classify.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/supplyline/go-wms-backend/internal/domain"
)

// CreateWarehouse inserts a new warehouse row. A duplicate code propagates
// as gorm.ErrDuplicatedKey.
func CreateWarehouse(ctx context.Context, db *gorm.DB, code, name string) (*domain.Warehouse, error) {
	now := time.Now().UTC()
	wh := &domain.Warehouse{
		ID:        uuid.NewString(),
		Code:      code,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.WithContext(ctx).Create(wh).Error; err != nil {
		return nil, err
	}
	return wh, nil
}

// GetWarehouse fetches a warehouse by ID.
func GetWarehouse(ctx context.Context, db *gorm.DB, id string) (*domain.Warehouse, error) {
	var wh domain.Warehouse
	if err := db.WithContext(ctx).First(&wh, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &wh, nil
}

// GetStock fetches the stock level for a (warehouse, item) pair.
func GetStock(ctx context.Context, db *gorm.DB, warehouseID, itemID string) (*domain.StockLevel, error) {
	var sl domain.StockLevel
	err := db.WithContext(ctx).
		First(&sl, "warehouse_id = ? AND item_id = ?", warehouseID, itemID).Error
	if err != nil {
		return nil, err
	}
	return &sl, nil
}

// CreateStock inserts a stock level row for a (warehouse, item) pair.
// Starting quantities below zero violate the quantity check constraint.
func CreateStock(ctx context.Context, db *gorm.DB, warehouseID, itemID string, quantity int) (*domain.StockLevel, error) {
	now := time.Now().UTC()
	sl := &domain.StockLevel{
		ID:          uuid.NewString(),
		WarehouseID: warehouseID,
		ItemID:      itemID,
		Quantity:    quantity,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.WithContext(ctx).Create(sl).Error; err != nil {
		return nil, err
	}
	return sl, nil
}

// AdjustStock atomically applies a signed delta to the stock level of a
// (warehouse, item) pair and returns the updated row. Adjustments that would
// drive quantity negative fail on the DB check constraint; a missing row
// returns ErrNotFound.
func AdjustStock(ctx context.Context, db *gorm.DB, warehouseID, itemID string, delta int) (*domain.StockLevel, error) {
	var sl domain.StockLevel
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&sl, "warehouse_id = ? AND item_id = ?", warehouseID, itemID).Error; err != nil {
			return err
		}
		res := tx.Model(&domain.StockLevel{}).
			Where("id = ?", sl.ID).
			Updates(map[string]any{
				"quantity":   gorm.Expr("quantity + ?", delta),
				"updated_at": time.Now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		return tx.First(&sl, "id = ?", sl.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &sl, nil
}
