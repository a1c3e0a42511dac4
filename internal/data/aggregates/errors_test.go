package aggregates

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainagg "github.com/yungbote/slotswapper-backend/internal/domain/aggregates"
)

func TestMapError_Validation(t *testing.T) {
	err := MapError("op", ValidationError("bad input"))
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("expected validation code, got %q (%v)", domainagg.CodeOf(err), err)
	}
}

func TestMapError_Conflict(t *testing.T) {
	err := MapError("op", ConflictError("stale"))
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("expected conflict code, got %q (%v)", domainagg.CodeOf(err), err)
	}
}

func TestMapError_NotFound(t *testing.T) {
	err := MapError("op", gorm.ErrRecordNotFound)
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("expected not_found code, got %q (%v)", domainagg.CodeOf(err), err)
	}
}

func TestMapError_PassthroughAggregateError(t *testing.T) {
	in := domainagg.NewError(domainagg.CodeInvalidState, "op", "not pending", errors.New("boom"))
	out := MapError("other", in)
	if out != in {
		t.Fatalf("expected passthrough aggregate error")
	}
}

func TestMapError_Transient(t *testing.T) {
	cases := map[string]error{
		"deadline":       context.DeadlineExceeded,
		"canceled":       context.Canceled,
		"pg serializ":    &pgconn.PgError{Code: "40001"},
		"pg deadlock":    &pgconn.PgError{Code: "40P01"},
		"pg lock nowait": &pgconn.PgError{Code: "55P03"},
		"sqlite busy":    errors.New("database is locked (5) (SQLITE_BUSY)"),
	}
	for name, in := range cases {
		if err := MapError("op", in); !domainagg.IsCode(err, domainagg.CodeRetryable) {
			t.Fatalf("%s: expected retryable, got %q (%v)", name, domainagg.CodeOf(err), err)
		}
	}
}

func TestMapError_UniqueViolation(t *testing.T) {
	if err := MapError("op", &pgconn.PgError{Code: "23505"}); !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("expected conflict, got %q", domainagg.CodeOf(err))
	}
	if err := MapError("op", errors.New("UNIQUE constraint failed: user.email")); !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("expected conflict, got %q", domainagg.CodeOf(err))
	}
}

func TestMapError_DefaultsToInternal(t *testing.T) {
	if err := MapError("op", errors.New("disk on fire")); !domainagg.IsCode(err, domainagg.CodeInternal) {
		t.Fatalf("expected internal, got %q", domainagg.CodeOf(err))
	}
}
