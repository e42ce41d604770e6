package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewRequiresAssignment()
	mapped := ToDomainError(original)
	if mapped.Code != "REQUIRES_ASSIGNMENT" {
		t.Fatalf("code = %s", mapped.Code)
	}
	if mapped.HTTPStatus != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", mapped.HTTPStatus)
	}
}

func TestToDomainErrorNoRows(t *testing.T) {
	mapped := ToDomainError(fmt.Errorf("load ticket: %w", pgx.ErrNoRows))
	if mapped.Code != "NOT_FOUND" {
		t.Fatalf("code = %s, want NOT_FOUND", mapped.Code)
	}
	if mapped.HTTPStatus != http.StatusNotFound {
		t.Fatalf("status = %d", mapped.HTTPStatus)
	}
}

func TestToDomainErrorUnknown(t *testing.T) {
	mapped := ToDomainError(errors.New("boom"))
	if mapped.Code != "INTERNAL_ERROR" || mapped.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unexpected mapping: %+v", mapped)
	}
	if !errors.Is(mapped, mapped.Err) {
		t.Fatal("wrapped error lost")
	}
}

func TestToDomainErrorNil(t *testing.T) {
	if ToDomainError(nil) != nil {
		t.Fatal("nil should map to nil")
	}
}
