// Package domain defines the persistence models for warehouses, items, and
// stock levels. These types are mapped with GORM and form the core data
// layer of the warehouse API.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// Warehouse represents one physical storage location. Warehouses are
// referenced by stock levels and addressed by a short unique code.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Code: short unique warehouse code (e.g. "EU-01"); unique index.
//   - Name: human-readable warehouse name.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//   - DeletedAt: soft deletion marker (retains row for audit/history).
type Warehouse struct {
	ID        string         `json:"id"         gorm:"type:char(36);primaryKey"`
	Code      string         `json:"code"       gorm:"type:varchar(16);not null;uniqueIndex:ux_warehouse_code"`
	Name      string         `json:"name"       gorm:"type:varchar(255);not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"          gorm:"index"`
}

// TableName returns the database table name for Warehouse.
func (Warehouse) TableName() string { return "warehouses" }

// Item represents a stock-keeping unit in the catalog. The SKU carries a
// unique index; inserting a duplicate surfaces as a data-integrity conflict
// to the API client.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - SKU: unique, normalized stock-keeping unit code.
//   - Name: display name (title-cased on create).
//   - UnitPrice: price per unit; non-negative by DB check.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//   - DeletedAt: soft deletion marker.
type Item struct {
	ID        string         `json:"id"         gorm:"type:char(36);primaryKey"`
	SKU       string         `json:"sku"        gorm:"type:varchar(64);not null;uniqueIndex:ux_item_sku"`
	Name      string         `json:"name"       gorm:"type:varchar(255);not null"`
	UnitPrice float64        `json:"unit_price" gorm:"not null;check:unit_price >= 0"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"          gorm:"index"`
}

// TableName returns the database table name for Item.
func (Item) TableName() string { return "items" }

// StockLevel records the on-hand quantity of one item in one warehouse.
// The (warehouse, item) pair is unique, and quantity can never go negative
// (enforced by DB check; adjustments that would breach it are rejected as
// integrity violations).
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - WarehouseID / ItemID: composite unique pair, both FK-constrained.
//   - Quantity: units on hand; >= 0 by DB check.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type StockLevel struct {
	ID          string    `json:"id"           gorm:"type:char(36);primaryKey"`
	WarehouseID string    `json:"warehouse_id" gorm:"type:char(36);not null;uniqueIndex:ux_stock_wh_item,priority:1"`
	ItemID      string    `json:"item_id"      gorm:"type:char(36);not null;uniqueIndex:ux_stock_wh_item,priority:2"`
	Quantity    int       `json:"quantity"     gorm:"not null;check:quantity >= 0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// FK associations; stock is cascade-deleted with its warehouse or item.
	Warehouse Warehouse `json:"-" gorm:"foreignKey:WarehouseID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Item      Item      `json:"-" gorm:"foreignKey:ItemID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for StockLevel.
func (StockLevel) TableName() string { return "stock_levels" }
