package aggregates_test

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/slotswapper-backend/internal/data/aggregates"
	aggtest "github.com/yungbote/slotswapper-backend/internal/data/aggregates/testutil"
	repotest "github.com/yungbote/slotswapper-backend/internal/data/repos/testutil"
	types "github.com/yungbote/slotswapper-backend/internal/domain"
	domainagg "github.com/yungbote/slotswapper-backend/internal/domain/aggregates"
)

type pair struct {
	u1, u2 *types.User
	a, b   *types.Event
}

// seedPair creates U1 owning a 09:00 slot and U2 owning a 14:00 slot, both SWAPPABLE.
func seedPair(t *testing.T, h *harness) pair {
	t.Helper()
	ctx := context.Background()
	u1 := repotest.SeedUser(t, ctx, h.db, "u1")
	u2 := repotest.SeedUser(t, ctx, h.db, "u2")
	return pair{
		u1: u1,
		u2: u2,
		a:  repotest.SeedEvent(t, ctx, h.db, u1.ID, "A", repotest.Day(9), types.EventStatusSwappable),
		b:  repotest.SeedEvent(t, ctx, h.db, u2.ID, "B", repotest.Day(14), types.EventStatusSwappable),
	}
}

func TestSwapAggregateCreateSwap(t *testing.T) {
	h := newHarness(t)
	p := seedPair(t, h)
	ctx := context.Background()

	res, err := h.swap.CreateSwap(ctx, domainagg.CreateSwapInput{RequesterUserID: p.u1.ID, MySlotID: p.a.ID, TheirSlotID: p.b.ID})
	if err != nil {
		t.Fatalf("CreateSwap: %v", err)
	}
	req := res.Request
	if req == nil || req.ID == 0 || req.Status != types.SwapStatusPending {
		t.Fatalf("CreateSwap: unexpected request %+v", req)
	}
	if req.RequesterUserID != p.u1.ID || req.ResponderUserID != p.u2.ID || req.MySlotID != p.a.ID || req.TheirSlotID != p.b.ID {
		t.Fatalf("CreateSwap: wrong parties %+v", req)
	}
	if res.MySlot.Status != types.EventStatusSwapPending || res.TheirSlot.Status != types.EventStatusSwapPending {
		t.Fatalf("CreateSwap: result slots not pending: %+v %+v", res.MySlot, res.TheirSlot)
	}
	for _, id := range []uint{p.a.ID, p.b.ID} {
		if h.event(t, id).Status != types.EventStatusSwapPending {
			t.Fatalf("event %d: want SWAP_PENDING", id)
		}
	}
	h.assertPendingInvariant(t)

	// A pending slot cannot join a second negotiation.
	ctx2 := context.Background()
	u3 := repotest.SeedUser(t, ctx2, h.db, "u3")
	c := repotest.SeedEvent(t, ctx2, h.db, u3.ID, "C", repotest.Day(16), types.EventStatusSwappable)
	_, err = h.swap.CreateSwap(ctx, domainagg.CreateSwapInput{RequesterUserID: u3.ID, MySlotID: c.ID, TheirSlotID: p.b.ID})
	requireCode(t, err, domainagg.CodeInvalidState)
	if h.event(t, c.ID).Status != types.EventStatusSwappable {
		t.Fatalf("losing slot must stay SWAPPABLE")
	}
	h.assertPendingInvariant(t)
}

func TestSwapAggregateCreateSwapRejections(t *testing.T) {
	h := newHarness(t)
	p := seedPair(t, h)
	ctx := context.Background()
	busy := repotest.SeedEvent(t, ctx, h.db, p.u2.ID, "busy", repotest.Day(18), types.EventStatusBusy)
	own := repotest.SeedEvent(t, ctx, h.db, p.u1.ID, "own", repotest.Day(19), types.EventStatusSwappable)

	cases := []struct {
		name string
		in   domainagg.CreateSwapInput
		code domainagg.ErrorCode
	}{
		{"self swap", domainagg.CreateSwapInput{RequesterUserID: p.u1.ID, MySlotID: p.a.ID, TheirSlotID: p.a.ID}, domainagg.CodeInvalidState},
		{"missing mine", domainagg.CreateSwapInput{RequesterUserID: p.u1.ID, MySlotID: 9999, TheirSlotID: p.b.ID}, domainagg.CodeNotFound},
		{"missing theirs", domainagg.CreateSwapInput{RequesterUserID: p.u1.ID, MySlotID: p.a.ID, TheirSlotID: 9999}, domainagg.CodeNotFound},
		{"not my slot", domainagg.CreateSwapInput{RequesterUserID: p.u1.ID, MySlotID: p.b.ID, TheirSlotID: own.ID}, domainagg.CodeForbidden},
		{"both mine", domainagg.CreateSwapInput{RequesterUserID: p.u1.ID, MySlotID: p.a.ID, TheirSlotID: own.ID}, domainagg.CodeInvalidState},
		{"their slot busy", domainagg.CreateSwapInput{RequesterUserID: p.u1.ID, MySlotID: p.a.ID, TheirSlotID: busy.ID}, domainagg.CodeInvalidState},
		{"no requester", domainagg.CreateSwapInput{MySlotID: p.a.ID, TheirSlotID: p.b.ID}, domainagg.CodeValidation},
	}
	for _, tc := range cases {
		_, err := h.swap.CreateSwap(ctx, tc.in)
		if !domainagg.IsCode(err, tc.code) {
			t.Fatalf("%s: want=%s got=%q (%v)", tc.name, tc.code, domainagg.CodeOf(err), err)
		}
	}

	var count int64
	if err := h.db.Model(&types.SwapRequest{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("rejected creates must not insert requests, got %d", count)
	}
	for _, id := range []uint{p.a.ID, p.b.ID, own.ID} {
		if h.event(t, id).Status != types.EventStatusSwappable {
			t.Fatalf("event %d: status changed by rejected create", id)
		}
	}
}

func TestSwapAggregateAcceptExchangesOwners(t *testing.T) {
	h := newHarness(t)
	p := seedPair(t, h)
	ctx := context.Background()

	created, err := h.swap.CreateSwap(ctx, domainagg.CreateSwapInput{RequesterUserID: p.u1.ID, MySlotID: p.a.ID, TheirSlotID: p.b.ID})
	if err != nil {
		t.Fatalf("CreateSwap: %v", err)
	}

	_, err = h.swap.Respond(ctx, domainagg.RespondSwapInput{ResponderUserID: p.u1.ID, RequestID: created.Request.ID, Accept: true})
	requireCode(t, err, domainagg.CodeForbidden)

	res, err := h.swap.Respond(ctx, domainagg.RespondSwapInput{ResponderUserID: p.u2.ID, RequestID: created.Request.ID, Accept: true})
	if err != nil {
		t.Fatalf("Respond accept: %v", err)
	}
	if res.Request.Status != types.SwapStatusAccepted || res.Request.RespondedAt == nil {
		t.Fatalf("Respond accept: unexpected request %+v", res.Request)
	}

	a, b := h.event(t, p.a.ID), h.event(t, p.b.ID)
	if a.OwnerUserID != p.u2.ID || b.OwnerUserID != p.u1.ID {
		t.Fatalf("owners not exchanged: a.owner=%d b.owner=%d", a.OwnerUserID, b.OwnerUserID)
	}
	if a.Status != types.EventStatusBusy || b.Status != types.EventStatusBusy {
		t.Fatalf("accepted slots must be BUSY: a=%s b=%s", a.Status, b.Status)
	}
	if res.MySlot.OwnerUserID != p.u2.ID || res.TheirSlot.OwnerUserID != p.u1.ID {
		t.Fatalf("result slots not reloaded: %+v %+v", res.MySlot, res.TheirSlot)
	}
	if stored := h.request(t, created.Request.ID); stored.Status != types.SwapStatusAccepted || stored.RespondedAt == nil {
		t.Fatalf("stored request: %+v", stored)
	}
	h.assertPendingInvariant(t)

	_, err = h.swap.Respond(ctx, domainagg.RespondSwapInput{ResponderUserID: p.u2.ID, RequestID: created.Request.ID, Accept: false})
	requireCode(t, err, domainagg.CodeInvalidState)
	if h.request(t, created.Request.ID).Status != types.SwapStatusAccepted {
		t.Fatalf("terminal request changed")
	}
}

func TestSwapAggregateRejectRestoresSwappable(t *testing.T) {
	h := newHarness(t)
	p := seedPair(t, h)
	ctx := context.Background()

	created, err := h.swap.CreateSwap(ctx, domainagg.CreateSwapInput{RequesterUserID: p.u1.ID, MySlotID: p.a.ID, TheirSlotID: p.b.ID})
	if err != nil {
		t.Fatalf("CreateSwap: %v", err)
	}
	res, err := h.swap.Respond(ctx, domainagg.RespondSwapInput{ResponderUserID: p.u2.ID, RequestID: created.Request.ID, Accept: false})
	if err != nil {
		t.Fatalf("Respond reject: %v", err)
	}
	if res.Request.Status != types.SwapStatusRejected {
		t.Fatalf("Respond reject: status=%s", res.Request.Status)
	}
	a, b := h.event(t, p.a.ID), h.event(t, p.b.ID)
	if a.OwnerUserID != p.u1.ID || b.OwnerUserID != p.u2.ID {
		t.Fatalf("owners changed on reject")
	}
	if a.Status != types.EventStatusSwappable || b.Status != types.EventStatusSwappable {
		t.Fatalf("rejected slots must be SWAPPABLE: a=%s b=%s", a.Status, b.Status)
	}
	h.assertPendingInvariant(t)

	// Slots are immediately negotiable again.
	if _, err := h.swap.CreateSwap(ctx, domainagg.CreateSwapInput{RequesterUserID: p.u2.ID, MySlotID: p.b.ID, TheirSlotID: p.a.ID}); err != nil {
		t.Fatalf("CreateSwap after reject: %v", err)
	}
	h.assertPendingInvariant(t)
}

func TestSwapAggregateRespondMissingRequest(t *testing.T) {
	h := newHarness(t)
	p := seedPair(t, h)
	_, err := h.swap.Respond(context.Background(), domainagg.RespondSwapInput{ResponderUserID: p.u2.ID, RequestID: 4242, Accept: true})
	requireCode(t, err, domainagg.CodeNotFound)
}

func TestSwapAggregateRespondRequiresPendingSlots(t *testing.T) {
	h := newHarness(t)
	p := seedPair(t, h)
	ctx := context.Background()
	// A PENDING request whose slots were never gated is inconsistent and must not be applied.
	req := repotest.SeedSwapRequest(t, ctx, h.db, p.u1.ID, p.u2.ID, p.a.ID, p.b.ID, types.SwapStatusPending)

	_, err := h.swap.Respond(ctx, domainagg.RespondSwapInput{ResponderUserID: p.u2.ID, RequestID: req.ID, Accept: true})
	requireCode(t, err, domainagg.CodeInvalidState)
	if h.event(t, p.a.ID).OwnerUserID != p.u1.ID {
		t.Fatalf("owner changed on rejected respond")
	}
}

func TestSwapAggregateRollsBackWhenCommitFails(t *testing.T) {
	h := newHarness(t)
	p := seedPair(t, h)
	ctx := context.Background()

	commitErr := aggregates.RetryableError("commit lost")
	runner := &aggtest.InjectedTxRunner{Inner: aggregates.NewGormTxRunner(h.db), FailCommit: commitErr}
	swap := aggregates.NewSwapAggregate(aggregates.SwapAggregateDeps{
		Base:   aggregates.BaseDeps{DB: h.db, Runner: runner},
		Events: h.events,
		Swaps:  h.swaps,
	})
	_, err := swap.CreateSwap(ctx, domainagg.CreateSwapInput{RequesterUserID: p.u1.ID, MySlotID: p.a.ID, TheirSlotID: p.b.ID})
	requireCode(t, err, domainagg.CodeRetryable)
	if !errors.Is(err, aggregates.ErrRetryable) {
		t.Fatalf("expected wrapped ErrRetryable, got %v", err)
	}
	if runner.RollbackCalls != 1 {
		t.Fatalf("rollback calls: want=1 got=%d", runner.RollbackCalls)
	}
	for _, id := range []uint{p.a.ID, p.b.ID} {
		if h.event(t, id).Status != types.EventStatusSwappable {
			t.Fatalf("event %d: gate must roll back", id)
		}
	}
	h.assertPendingInvariant(t)
}
