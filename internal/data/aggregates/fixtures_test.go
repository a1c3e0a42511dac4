package aggregates_test

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/slotswapper-backend/internal/data/aggregates"
	aggtest "github.com/yungbote/slotswapper-backend/internal/data/aggregates/testutil"
	"github.com/yungbote/slotswapper-backend/internal/data/repos"
	repotest "github.com/yungbote/slotswapper-backend/internal/data/repos/testutil"
	types "github.com/yungbote/slotswapper-backend/internal/domain"
	domainagg "github.com/yungbote/slotswapper-backend/internal/domain/aggregates"
	"github.com/yungbote/slotswapper-backend/internal/platform/dbctx"
)

type harness struct {
	db     *gorm.DB
	hooks  *aggtest.HooksRecorder
	events repos.EventRepo
	swaps  repos.SwapRequestRepo
	slot   domainagg.SlotAggregate
	swap   domainagg.SwapAggregate
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessOn(t, repotest.DB(t))
}

func newHarnessOn(t *testing.T, db *gorm.DB) *harness {
	t.Helper()
	log := repotest.Logger(t)
	h := &harness{
		db:     db,
		hooks:  &aggtest.HooksRecorder{},
		events: repos.NewEventRepo(db, log),
		swaps:  repos.NewSwapRequestRepo(db, log),
	}
	base := aggregates.BaseDeps{
		DB:       db,
		Log:      log,
		Runner:   aggregates.NewGormTxRunner(db),
		Hooks:    h.hooks,
		CASGuard: aggregates.NewCASGuard(db),
	}
	h.slot = aggregates.NewSlotAggregate(aggregates.SlotAggregateDeps{Base: base, Events: h.events})
	h.swap = aggregates.NewSwapAggregate(aggregates.SwapAggregateDeps{Base: base, Events: h.events, Swaps: h.swaps})
	return h
}

func (h *harness) event(t *testing.T, id uint) *types.Event {
	t.Helper()
	ev, err := h.events.GetByID(dbctx.Context{Ctx: context.Background()}, id)
	if err != nil {
		t.Fatalf("GetByID(%d): %v", id, err)
	}
	return ev
}

func (h *harness) request(t *testing.T, id uint) *types.SwapRequest {
	t.Helper()
	req, err := h.swaps.GetByID(dbctx.Context{Ctx: context.Background()}, id)
	if err != nil {
		t.Fatalf("GetByID(%d): %v", id, err)
	}
	return req
}

// assertPendingInvariant checks that each event is SWAP_PENDING exactly when one
// PENDING request references it. With ids, only those events are checked.
func (h *harness) assertPendingInvariant(t *testing.T, ids ...uint) {
	t.Helper()
	dbc := dbctx.Context{Ctx: context.Background()}
	q := h.db
	if len(ids) > 0 {
		q = q.Where("id IN ?", ids)
	}
	var all []*types.Event
	if err := q.Find(&all).Error; err != nil {
		t.Fatalf("list events: %v", err)
	}
	for _, ev := range all {
		refs, err := h.swaps.ListPendingByEventIDs(dbc, []uint{ev.ID})
		if err != nil {
			t.Fatalf("ListPendingByEventIDs: %v", err)
		}
		if ev.Pending() != (len(refs) == 1) || len(refs) > 1 {
			t.Fatalf("event %d: status=%s pending_refs=%d", ev.ID, ev.Status, len(refs))
		}
	}
}

func requireCode(t *testing.T, err error, code domainagg.ErrorCode) {
	t.Helper()
	if !domainagg.IsCode(err, code) {
		t.Fatalf("error code: want=%s got=%q (%v)", code, domainagg.CodeOf(err), err)
	}
}
