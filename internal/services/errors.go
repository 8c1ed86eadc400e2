// Package services defines the business logic for the item catalog and
// warehouse stock levels. This file centralizes common service-level error
// values and types so that they can be consistently returned by service
// methods and checked by callers.
//
// These errors are intended for internal use by the service layer; the
// HTTP layer translates them into the canonical error envelope (see
// internal/apierror).
package services

import (
	"errors"

	"github.com/supplyline/go-wms-backend/internal/apierror"
)

var (
	// ErrItemNotFound indicates that the requested catalog item does not
	// exist.
	ErrItemNotFound = errors.New("Item not found")

	// ErrWarehouseNotFound indicates that the requested warehouse does not
	// exist.
	ErrWarehouseNotFound = errors.New("Warehouse not found")

	// ErrStockNotFound indicates that no stock level exists for the
	// requested (warehouse, item) pair.
	ErrStockNotFound = errors.New("Stock level not found for warehouse and item")
)

// RuleViolationError reports domain-rule validation failures detected by the
// service layer. Aggregate is the validation engine's combined message;
// Violations carries one entry per failed rule, in declaration order.
type RuleViolationError struct {
	Aggregate  string
	Violations []apierror.FieldViolation
}

// Error returns the aggregate validation message.
func (e *RuleViolationError) Error() string { return e.Aggregate }

// StorageError wraps a persistence failure so that callers can distinguish
// database faults from business errors without importing gorm.
type StorageError struct {
	Err error
}

// Error returns the wrapped error text.
func (e *StorageError) Error() string { return e.Err.Error() }

// Unwrap exposes the underlying persistence error for errors.Is/As.
func (e *StorageError) Unwrap() error { return e.Err }
