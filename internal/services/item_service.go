// Package services – ItemService
//
// This file implements the ItemService, which manages the item catalog.
// It normalizes SKUs and display names, enforces catalog rules, and
// coordinates repository operations for creating, fetching, and listing
// items (with pagination).
//
// Service-level errors (e.g., ErrItemNotFound, RuleViolationError,
// StorageError) are returned for predictable cases so the HTTP layer can
// classify them into the canonical error envelope consistently.
package services

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/supplyline/go-wms-backend/internal/domain"
)

// ItemRepo defines the repository contract required by ItemService.
// Implementations are responsible for persistence of catalog items.
type ItemRepo interface {
	// CreateItem inserts a new item row.
	CreateItem(ctx context.Context, db *gorm.DB, sku, name string, unitPrice float64) (*domain.Item, error)

	// GetItem fetches an item by ID.
	GetItem(ctx context.Context, db *gorm.DB, id string) (*domain.Item, error)

	// GetItemBySKU fetches an item by its normalized SKU.
	GetItemBySKU(ctx context.Context, db *gorm.DB, sku string) (*domain.Item, error)

	// CountItems returns the total number of items for pagination.
	CountItems(ctx context.Context, db *gorm.DB) (int64, error)

	// ListItemsPage returns a page of items, newest first.
	ListItemsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Item, error)
}

// itemRules captures the catalog constraints checked on create, after
// normalization.
type itemRules struct {
	SKU       string  `validate:"required,min=3,max=64"`
	Name      string  `validate:"required,max=255"`
	UnitPrice float64 `validate:"gte=0"`
}

// ItemService provides catalog operations such as creating, fetching, and
// listing items. It enforces SKU normalization and catalog rules.
type ItemService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the item repository used by this service.
	Repo ItemRepo
	// Validate checks catalog rule structs.
	Validate *validator.Validate
	// NameCaser title-cases display names on create.
	NameCaser cases.Caser
}

// NewItemService constructs an ItemService with a ready validator and an
// English title caser.
func NewItemService(db *gorm.DB, r ItemRepo) *ItemService {
	return &ItemService{
		DB:        db,
		Repo:      r,
		Validate:  validator.New(),
		NameCaser: cases.Title(language.English),
	}
}

// NormalizeSKU trims and upper-cases a SKU so lookups and the unique index
// are case-insensitive in practice.
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

// Create validates and persists a new catalog item. Rule failures return a
// *RuleViolationError; persistence failures (including a duplicate SKU) are
// wrapped in *StorageError.
func (s *ItemService) Create(ctx context.Context, sku, name string, unitPrice float64) (*domain.Item, error) {
	sku = NormalizeSKU(sku)
	name = s.NameCaser.String(strings.TrimSpace(name))

	if err := checkRules(s.Validate, "Item", itemRules{SKU: sku, Name: name, UnitPrice: unitPrice}); err != nil {
		return nil, err
	}

	item, err := s.Repo.CreateItem(ctx, s.DB, sku, name, unitPrice)
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return item, nil
}

// Get fetches one item by ID, returning ErrItemNotFound when absent.
func (s *ItemService) Get(ctx context.Context, id string) (*domain.Item, error) {
	item, err := s.Repo.GetItem(ctx, s.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return item, nil
}

// GetBySKU fetches one item by SKU, returning ErrItemNotFound when absent.
// The lookup key is normalized the same way Create normalizes it, so
// callers may pass the raw client value.
func (s *ItemService) GetBySKU(ctx context.Context, sku string) (*domain.Item, error) {
	item, err := s.Repo.GetItemBySKU(ctx, s.DB, NormalizeSKU(sku))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, &StorageError{Err: err}
	}
	return item, nil
}

// ListPage returns one page of items plus the total count.
func (s *ItemService) ListPage(ctx context.Context, page, pageSize int) ([]domain.Item, int64, error) {
	total, err := s.Repo.CountItems(ctx, s.DB)
	if err != nil {
		return nil, 0, &StorageError{Err: err}
	}
	items, err := s.Repo.ListItemsPage(ctx, s.DB, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, &StorageError{Err: err}
	}
	return items, total, nil
}
