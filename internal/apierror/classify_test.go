package apierror

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"
)

func strptr(s string) *string { return &s }

func TestClassify_StatusTable(t *testing.T) {
	cases := []struct {
		name  string
		fault Fault
		want  int
	}{
		{"missing parameter", MissingParameter("page"), http.StatusBadRequest},
		{"unsupported media type", UnsupportedMediaType("text/xml", []string{"application/json"}), http.StatusUnsupportedMediaType},
		{"validation failed", ValidationFailed([]FieldViolation{{Object: "item", Field: "sku", Message: "required"}}), http.StatusBadRequest},
		{"constraint violated", ConstraintViolated("adjust.quantity: must be positive", nil), http.StatusBadRequest},
		{"entity not found", EntityNotFound("item not found"), http.StatusNotFound},
		{"malformed body", MalformedBody("unexpected EOF"), http.StatusBadRequest},
		{"unwritable response", UnwritableResponse("cannot encode"), http.StatusInternalServerError},
		{"no route", NoRouteFound("GET", "/nope", "no handler"), http.StatusBadRequest},
		{"integrity constraint", DataIntegrityViolated(true, "duplicate key"), http.StatusConflict},
		{"integrity generic", DataIntegrityViolated(false, "disk I/O error"), http.StatusInternalServerError},
		{"type mismatch", TypeMismatch("limit", "abc", "int", "invalid syntax"), http.StatusBadRequest},
		{"authentication failed", AuthenticationFailed("missing API key"), http.StatusUnauthorized},
		{"authorization denied", AuthorizationDenied("read-only key"), http.StatusForbidden},
		{"uncategorized", Uncategorized("boom"), http.StatusInternalServerError},
		{"zero fault", Fault{}, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, env := Classify(tc.fault, nil)
			if status != tc.want {
				t.Fatalf("status = %d, want %d", status, tc.want)
			}
			if env.Code != fmt.Sprintf("%d", tc.want) {
				t.Fatalf("code = %q, want %q", env.Code, fmt.Sprintf("%d", tc.want))
			}
		})
	}
}

func TestClassify_MissingParameterScenario(t *testing.T) {
	// No correlation header on the request: correlationId is an explicit null.
	status, env := Classify(MissingParameter("param1"), nil)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d", status)
	}
	if env.Message != "param1 parameter is missing" {
		t.Fatalf("message = %q", env.Message)
	}
	if env.Properties.CorrelationID != nil {
		t.Fatalf("correlationId = %v, want nil", env.Properties.CorrelationID)
	}
}

func TestClassify_UnsupportedMediaTypeMessage(t *testing.T) {
	_, env := Classify(UnsupportedMediaType("text/plain", []string{"application/json", "application/xml"}), nil)
	want := "text/plain media type is not supported. Supported media types are application/json, application/xml"
	if env.Message != want {
		t.Fatalf("message = %q, want %q", env.Message, want)
	}
	// Comma-joined with no trailing separator.
	if strings.HasSuffix(env.Message, ", ") {
		t.Fatalf("trailing separator in %q", env.Message)
	}
}

func TestClassify_TypeMismatchScenario(t *testing.T) {
	status, env := Classify(TypeMismatch("param1", "invalidInt", "Integer", `For input string: "invalidInt"`), nil)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d", status)
	}
	want := `The parameter 'param1' of value 'invalidInt' could not be converted to type 'Integer': For input string: "invalidInt"`
	if env.Message != want {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestClassify_ValidationFailedScenario(t *testing.T) {
	f := ValidationFailed([]FieldViolation{{
		Object:  "testRequestDTO",
		Field:   "field1",
		Message: "must not be blank",
	}})
	status, env := Classify(f, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d", status)
	}
	if env.Message != "Validation error" {
		t.Fatalf("message = %q", env.Message)
	}
	if len(env.Details) != 1 {
		t.Fatalf("details = %d", len(env.Details))
	}
	want := "Invalid value null on field field1 for object testRequestDTO: must not be blank."
	if env.Details[0].Message != want {
		t.Fatalf("detail message = %q", env.Details[0].Message)
	}
	if env.Details[0].Code != "400" {
		t.Fatalf("detail code = %q", env.Details[0].Code)
	}
}

func TestClassify_ValidationDetailsPreserveOrder(t *testing.T) {
	cid := strptr("cid-7")
	violations := []FieldViolation{
		{Object: "item", Field: "sku", RejectedValue: strptr(""), Message: "must not be blank"},
		{Object: "item", Field: "name", Message: "must not be blank"},
		{Object: "item", Field: "unitPrice", RejectedValue: strptr("-4"), Message: "must be positive"},
	}
	_, env := Classify(ValidationFailed(violations), cid)
	if len(env.Details) != len(violations) {
		t.Fatalf("details = %d, want %d", len(env.Details), len(violations))
	}
	wantMsgs := []string{
		"Invalid value  on field sku for object item: must not be blank.",
		"Invalid value null on field name for object item: must not be blank.",
		"Invalid value -4 on field unitPrice for object item: must be positive.",
	}
	for i, d := range env.Details {
		if d.Message != wantMsgs[i] {
			t.Fatalf("detail[%d] = %q, want %q", i, d.Message, wantMsgs[i])
		}
		if d.Properties.CorrelationID == nil || *d.Properties.CorrelationID != *cid {
			t.Fatalf("detail[%d] correlationId = %v", i, d.Properties.CorrelationID)
		}
		if d.Code != "400" {
			t.Fatalf("detail[%d] code = %q", i, d.Code)
		}
	}
}

func TestClassify_ConstraintViolatedRedactsAggregate(t *testing.T) {
	f := ConstraintViolated("adjust.token: must not be blank", []FieldViolation{
		{Object: "AdjustRequest", Field: "quantity", RejectedValue: strptr("-1"), Message: "must be positive"},
	})
	status, env := Classify(f, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d", status)
	}
	if env.Message != masked {
		t.Fatalf("message = %q, want %q", env.Message, masked)
	}
	if len(env.Details) != 1 {
		t.Fatalf("details = %d", len(env.Details))
	}
}

func TestClassify_DataIntegrityScenario(t *testing.T) {
	status, env := Classify(DataIntegrityViolated(true, "duplicate key"), nil)
	if status != http.StatusConflict {
		t.Fatalf("status = %d", status)
	}
	if env.Message != "Database error: duplicate key" {
		t.Fatalf("message = %q", env.Message)
	}

	status, env = Classify(DataIntegrityViolated(false, "lost connection"), nil)
	if status != http.StatusInternalServerError {
		t.Fatalf("status = %d", status)
	}
	if env.Message != "Server error: lost connection" {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestClassify_NoRouteFoundMessage(t *testing.T) {
	// 400 rather than 404: preserved contract behavior.
	status, env := Classify(NoRouteFound("DELETE", "/api/v1/ghost", "no matching handler"), nil)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d", status)
	}
	want := "Could not find the DELETE method for URL /api/v1/ghost: no matching handler"
	if env.Message != want {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestClassify_MalformedBodyAndUnwritable(t *testing.T) {
	_, env := Classify(MalformedBody("invalid character '}'"), nil)
	if env.Message != "Malformed JSON request: invalid character '}'" {
		t.Fatalf("message = %q", env.Message)
	}
	_, env = Classify(UnwritableResponse("unsupported value: NaN"), nil)
	if env.Message != "Error writing JSON output: unsupported value: NaN" {
		t.Fatalf("message = %q", env.Message)
	}
}

func TestClassify_RedactsSensitiveMessages(t *testing.T) {
	cases := []Fault{
		EntityNotFound("item with token abc not found"),
		MalformedBody("password field unreadable"),
		AuthenticationFailed("bad api secret"),
		AuthorizationDenied("token lacks scope"),
		Uncategorized("connection string refused"),
		DataIntegrityViolated(true, "secret column conflict"),
	}
	for _, f := range cases {
		_, env := Classify(f, nil)
		if !strings.Contains(env.Message, masked) {
			t.Fatalf("kind %d: message %q not masked", f.Kind(), env.Message)
		}
		if strings.Contains(env.Message, "token") || strings.Contains(env.Message, "secret") {
			t.Fatalf("kind %d: sensitive text leaked: %q", f.Kind(), env.Message)
		}
	}
}

func TestClassify_WireShape(t *testing.T) {
	pinClock(t, time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC))

	cid := strptr("abc-123")
	_, env := Classify(ValidationFailed([]FieldViolation{
		{Object: "item", Field: "sku", Message: "required"},
	}), cid)

	raw, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{`"code":"400"`, `"message":"Validation error"`,
		`"timestamp":"2026-08-31T12:00:00.000Z"`, `"correlationId":"abc-123"`, `"details":[`} {
		if !strings.Contains(string(raw), key) {
			t.Fatalf("missing %s in %s", key, raw)
		}
	}
}
