package aggregates

import (
	"context"
	"testing"

	"github.com/yungbote/slotswapper-backend/internal/data/repos/testutil"
	types "github.com/yungbote/slotswapper-backend/internal/domain"
	domainagg "github.com/yungbote/slotswapper-backend/internal/domain/aggregates"
	"github.com/yungbote/slotswapper-backend/internal/platform/dbctx"
)

func TestRequireRowsAffected(t *testing.T) {
	if err := RequireRowsAffected(2, 2, invalidState("op", "lost gate")); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	err := RequireRowsAffected(1, 2, invalidState("op", "lost gate"))
	if !domainagg.IsCode(err, domainagg.CodeInvalidState) {
		t.Fatalf("short write: want=%s got=%q", domainagg.CodeInvalidState, domainagg.CodeOf(err))
	}
	err = RequireRowsAffected(0, 1, nil)
	if !domainagg.IsCode(MapError("op", err), domainagg.CodeConflict) {
		t.Fatalf("nil short: want=%s got=%v", domainagg.CodeConflict, err)
	}
}

func TestCASGuardUpdateByStatus(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	u := testutil.SeedUser(t, ctx, tx, "guard")
	a := testutil.SeedEvent(t, ctx, tx, u.ID, "a", testutil.Day(9), types.EventStatusSwappable)
	b := testutil.SeedEvent(t, ctx, tx, u.ID, "b", testutil.Day(10), types.EventStatusBusy)

	g := NewCASGuard(db)
	n, err := g.UpdateByStatus(dbc, "event", []uint{a.ID, b.ID}, []string{string(types.EventStatusSwappable)}, map[string]any{
		"status": string(types.EventStatusSwapPending),
	})
	if err != nil {
		t.Fatalf("UpdateByStatus: %v", err)
	}
	if n != 1 {
		t.Fatalf("UpdateByStatus rows: want=1 got=%d", n)
	}

	if _, err := g.UpdateByStatus(dbc, "event", nil, []string{"BUSY"}, map[string]any{"status": "BUSY"}); err == nil {
		t.Fatalf("expected validation error for empty ids")
	}
}
