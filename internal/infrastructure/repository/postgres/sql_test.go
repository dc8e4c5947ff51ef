package postgres

import (
	"database/sql"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatalf("expected true for sql.ErrNoRows")
	}
	if !isNotFound(fmt.Errorf("get tournament: %w", sql.ErrNoRows)) {
		t.Fatalf("expected true for wrapped sql.ErrNoRows")
	}
	if isNotFound(fakeErr("pq: relation tournaments does not exist")) {
		t.Fatalf("expected false for unrelated error")
	}
}

func TestOptionalString(t *testing.T) {
	if got := optionalString("  "); got != nil {
		t.Fatalf("expected nil for blank string, got %q", *got)
	}
	got := optionalString(" Eagles ")
	if got == nil || *got != "Eagles" {
		t.Fatalf("expected trimmed value, got %v", got)
	}
}

func TestNullStringValue(t *testing.T) {
	if got := nullStringValue(sql.NullString{}); got != "" {
		t.Fatalf("expected empty string for null, got %q", got)
	}
	if got := nullStringValue(sql.NullString{String: " p1 ", Valid: true}); got != "p1" {
		t.Fatalf("expected p1, got %q", got)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
