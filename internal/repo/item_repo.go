// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Item model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When an item is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (duplicate SKU, check constraints, connectivity issues),
//     the raw gorm error is propagated; the HTTP layer classifies it into
//     the canonical error envelope.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/supplyline/go-wms-backend/internal/domain"
)

// ErrNotFound aliases gorm.ErrRecordNotFound for callers that prefer not to
// import gorm directly.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateItem inserts a new catalog item with a UUID primary key and UTC
// timestamps. A duplicate SKU propagates as gorm.ErrDuplicatedKey.
func CreateItem(ctx context.Context, db *gorm.DB, sku, name string, unitPrice float64) (*domain.Item, error) {
	now := time.Now().UTC()
	item := &domain.Item{
		ID:        uuid.NewString(),
		SKU:       sku,
		Name:      name,
		UnitPrice: unitPrice,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// GetItem fetches a single item by ID, or ErrNotFound if missing.
func GetItem(ctx context.Context, db *gorm.DB, id string) (*domain.Item, error) {
	var item domain.Item
	err := db.WithContext(ctx).First(&item, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItemBySKU fetches a single item by its normalized SKU.
func GetItemBySKU(ctx context.Context, db *gorm.DB, sku string) (*domain.Item, error) {
	var item domain.Item
	err := db.WithContext(ctx).First(&item, "sku = ?", sku).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CountItems returns the total number of items for pagination.
func CountItems(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Item{}).Count(&n).Error
	return n, err
}

// ListItemsPage returns a page of items ordered by creation time descending.
func ListItemsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Item, error) {
	var items []domain.Item
	err := db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	return items, err
}
