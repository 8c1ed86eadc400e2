package handlers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/supplyline/go-wms-backend/internal/apierror"
	"github.com/supplyline/go-wms-backend/internal/services"
)

type bindProbe struct {
	SKU       string  `validate:"required"`
	UnitPrice float64 `validate:"gte=0"`
}

func validatorErr(t *testing.T, v any) error {
	t.Helper()
	err := validator.New().Struct(v)
	if err == nil {
		t.Fatalf("expected validation error for %+v", v)
	}
	return err
}

func TestBindFault_ValidatorErrorsBecomeViolations(t *testing.T) {
	err := validatorErr(t, bindProbe{SKU: "", UnitPrice: -1})

	f := bindFault("bindProbe", err)
	if f.Kind() != apierror.KindValidationFailed {
		t.Fatalf("kind = %v; want validation", f.Kind())
	}
	vs := f.Violations()
	if len(vs) != 2 {
		t.Fatalf("violations = %d; want 2", len(vs))
	}

	// Required on an empty string: rejected value is absent.
	if vs[0].Object != "bindProbe" || vs[0].Field != "SKU" {
		t.Fatalf("violation[0] = %+v", vs[0])
	}
	if vs[0].RejectedValue != nil {
		t.Fatalf("expected nil rejected value for blank SKU, got %q", *vs[0].RejectedValue)
	}
	if vs[0].Message != "must not be blank" {
		t.Fatalf("message = %q", vs[0].Message)
	}

	// gte carries the offending value and the bound.
	if vs[1].Field != "UnitPrice" || vs[1].Message != "must be greater than or equal to 0" {
		t.Fatalf("violation[1] = %+v", vs[1])
	}
	if vs[1].RejectedValue == nil || *vs[1].RejectedValue != "-1" {
		t.Fatalf("rejected value = %v", vs[1].RejectedValue)
	}
}

func TestBindFault_NonValidatorErrorIsMalformedBody(t *testing.T) {
	f := bindFault("bindProbe", errors.New("unexpected EOF"))
	if f.Kind() != apierror.KindMalformedBody {
		t.Fatalf("kind = %v; want malformed body", f.Kind())
	}
	_, env := apierror.Classify(f, nil)
	if env.Message != "Malformed JSON request: unexpected EOF" {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestServiceFault_Mapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantKind   apierror.Kind
		wantStatus int
	}{
		{"item not found", services.ErrItemNotFound, apierror.KindEntityNotFound, 404},
		{"warehouse not found", fmt.Errorf("lookup: %w", services.ErrWarehouseNotFound), apierror.KindEntityNotFound, 404},
		{"stock not found", services.ErrStockNotFound, apierror.KindEntityNotFound, 404},
		{
			"rule violation",
			&services.RuleViolationError{Aggregate: "Item.SKU: must not be blank"},
			apierror.KindConstraintViolated, 400,
		},
		{
			"duplicate key",
			&services.StorageError{Err: gorm.ErrDuplicatedKey},
			apierror.KindDataIntegrityViolated, 409,
		},
		{
			"generic storage failure",
			&services.StorageError{Err: errors.New("disk I/O error")},
			apierror.KindDataIntegrityViolated, 500,
		},
		{"unrecognized", errors.New("wat"), apierror.KindUncategorized, 500},
	}

	for _, tc := range cases {
		f := serviceFault(tc.err)
		if f.Kind() != tc.wantKind {
			t.Fatalf("%s: kind = %v; want %v", tc.name, f.Kind(), tc.wantKind)
		}
		status, _ := apierror.Classify(f, nil)
		if status != tc.wantStatus {
			t.Fatalf("%s: status = %d; want %d", tc.name, status, tc.wantStatus)
		}
	}
}

func TestIsConstraintViolation(t *testing.T) {
	if !isConstraintViolation(gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicated key not recognized")
	}
	if !isConstraintViolation(gorm.ErrForeignKeyViolated) {
		t.Fatalf("fk violation not recognized")
	}
	if !isConstraintViolation(errors.New("UNIQUE constraint failed: items.sku")) {
		t.Fatalf("driver constraint text not recognized")
	}
	if isConstraintViolation(errors.New("database is locked")) {
		t.Fatalf("generic failure misclassified as constraint")
	}
}
