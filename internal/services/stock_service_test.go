package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/supplyline/go-wms-backend/internal/domain"
)

// ----- Fake repo -----

type fakeStockRepo struct {
	createWHCode string
	createWHErr  error

	getWHID  string
	getWH    *domain.Warehouse
	getWHErr error

	openWarehouseID string
	openItemID      string
	openQuantity    int
	openErr         error

	getErr   error
	getLevel *domain.StockLevel

	adjustCalled bool
	adjustDelta  int
	adjustErr    error
	adjustLevel  *domain.StockLevel
}

func (r *fakeStockRepo) CreateWarehouse(ctx context.Context, db *gorm.DB, code, name string) (*domain.Warehouse, error) {
	r.createWHCode = code
	if r.createWHErr != nil {
		return nil, r.createWHErr
	}
	return &domain.Warehouse{ID: "w1", Code: code, Name: name}, nil
}

func (r *fakeStockRepo) GetWarehouse(ctx context.Context, db *gorm.DB, id string) (*domain.Warehouse, error) {
	r.getWHID = id
	return r.getWH, r.getWHErr
}

func (r *fakeStockRepo) CreateStock(ctx context.Context, db *gorm.DB, warehouseID, itemID string, quantity int) (*domain.StockLevel, error) {
	r.openWarehouseID, r.openItemID, r.openQuantity = warehouseID, itemID, quantity
	if r.openErr != nil {
		return nil, r.openErr
	}
	return &domain.StockLevel{ID: "s1", WarehouseID: warehouseID, ItemID: itemID, Quantity: quantity}, nil
}

func (r *fakeStockRepo) GetStock(ctx context.Context, db *gorm.DB, warehouseID, itemID string) (*domain.StockLevel, error) {
	return r.getLevel, r.getErr
}

func (r *fakeStockRepo) AdjustStock(ctx context.Context, db *gorm.DB, warehouseID, itemID string, delta int) (*domain.StockLevel, error) {
	r.adjustCalled = true
	r.adjustDelta = delta
	return r.adjustLevel, r.adjustErr
}

// ----- Tests -----

func TestCreateWarehouse_WrapsDuplicateCode(t *testing.T) {
	fr := &fakeStockRepo{createWHErr: gorm.ErrDuplicatedKey}
	s := NewStockService(nil, fr)

	_, err := s.CreateWarehouse(context.Background(), "EU-01", "Rotterdam DC")
	var se *StorageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StorageError, got %v", err)
	}
	if fr.createWHCode != "EU-01" {
		t.Fatalf("repo got code %q", fr.createWHCode)
	}
}

func TestGetWarehouse_NotFoundSentinel(t *testing.T) {
	fr := &fakeStockRepo{getWHErr: gorm.ErrRecordNotFound}
	s := NewStockService(nil, fr)

	_, err := s.GetWarehouse(context.Background(), "missing")
	if !errors.Is(err, ErrWarehouseNotFound) {
		t.Fatalf("expected ErrWarehouseNotFound, got %v", err)
	}
	if fr.getWHID != "missing" {
		t.Fatalf("repo got id %q", fr.getWHID)
	}
}

func TestGetWarehouse_Found(t *testing.T) {
	fr := &fakeStockRepo{getWH: &domain.Warehouse{ID: "w1", Code: "EU-01"}}
	s := NewStockService(nil, fr)

	wh, err := s.GetWarehouse(context.Background(), "w1")
	if err != nil {
		t.Fatalf("GetWarehouse: %v", err)
	}
	if wh.Code != "EU-01" {
		t.Fatalf("warehouse = %+v", wh)
	}
}

func TestOpenStock_PassesThrough(t *testing.T) {
	fr := &fakeStockRepo{}
	s := NewStockService(nil, fr)

	sl, err := s.OpenStock(context.Background(), "w1", "i1", 25)
	if err != nil {
		t.Fatalf("OpenStock: %v", err)
	}
	if fr.openWarehouseID != "w1" || fr.openItemID != "i1" || fr.openQuantity != 25 {
		t.Fatalf("repo got (%q, %q, %d)", fr.openWarehouseID, fr.openItemID, fr.openQuantity)
	}
	if sl.Quantity != 25 {
		t.Fatalf("quantity = %d", sl.Quantity)
	}
}

func TestStockGet_NotFoundSentinel(t *testing.T) {
	fr := &fakeStockRepo{getErr: gorm.ErrRecordNotFound}
	s := NewStockService(nil, fr)

	_, err := s.Get(context.Background(), "w1", "i1")
	if !errors.Is(err, ErrStockNotFound) {
		t.Fatalf("expected ErrStockNotFound, got %v", err)
	}
}

func TestAdjust_ZeroDeltaRejected(t *testing.T) {
	fr := &fakeStockRepo{}
	s := NewStockService(nil, fr)

	_, err := s.Adjust(context.Background(), "w1", "i1", 0)
	var rv *RuleViolationError
	if !errors.As(err, &rv) {
		t.Fatalf("expected RuleViolationError, got %v", err)
	}
	if rv.Aggregate != "StockAdjustment.Delta: must not equal 0" {
		t.Fatalf("aggregate = %q", rv.Aggregate)
	}
	if fr.adjustCalled {
		t.Fatalf("repo reached despite rule failure")
	}
}

func TestAdjust_NotFoundSentinel(t *testing.T) {
	fr := &fakeStockRepo{adjustErr: gorm.ErrRecordNotFound}
	s := NewStockService(nil, fr)

	_, err := s.Adjust(context.Background(), "w1", "i1", 5)
	if !errors.Is(err, ErrStockNotFound) {
		t.Fatalf("expected ErrStockNotFound, got %v", err)
	}
}

func TestAdjust_ConstraintFailureWrapped(t *testing.T) {
	fr := &fakeStockRepo{adjustErr: gorm.ErrCheckConstraintViolated}
	s := NewStockService(nil, fr)

	_, err := s.Adjust(context.Background(), "w1", "i1", -100)
	var se *StorageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StorageError, got %v", err)
	}
	if !errors.Is(err, gorm.ErrCheckConstraintViolated) {
		t.Fatalf("cause not preserved: %v", err)
	}
}

func TestAdjust_Success(t *testing.T) {
	fr := &fakeStockRepo{adjustLevel: &domain.StockLevel{ID: "s1", Quantity: 8}}
	s := NewStockService(nil, fr)

	sl, err := s.Adjust(context.Background(), "w1", "i1", -2)
	if err != nil {
		t.Fatalf("Adjust: %v", err)
	}
	if fr.adjustDelta != -2 || sl.Quantity != 8 {
		t.Fatalf("delta=%d quantity=%d", fr.adjustDelta, sl.Quantity)
	}
}
