package scheduling

import (
	"context"
	"testing"

	"github.com/yungbote/slotswapper-backend/internal/data/repos/testutil"
	types "github.com/yungbote/slotswapper-backend/internal/domain"
	"github.com/yungbote/slotswapper-backend/internal/platform/dbctx"
)

func TestEventRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewEventRepo(db, testutil.Logger(t))

	u1 := testutil.SeedUser(t, ctx, tx, "u1")
	u2 := testutil.SeedUser(t, ctx, tx, "u2")

	created, err := repo.Create(dbc, []*types.Event{{
		OwnerUserID: u1.ID,
		Title:       "standup",
		StartTime:   testutil.Day(9),
		EndTime:     testutil.Day(10),
		Status:      types.EventStatusBusy,
	}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 || created[0].ID == 0 {
		t.Fatalf("Create: unexpected result: %+v", created)
	}
	late := testutil.SeedEvent(t, ctx, tx, u2.ID, "late", testutil.Day(14), types.EventStatusSwappable)
	early := testutil.SeedEvent(t, ctx, tx, u2.ID, "early", testutil.Day(8), types.EventStatusSwappable)
	testutil.SeedEvent(t, ctx, tx, u1.ID, "mine", testutil.Day(7), types.EventStatusSwappable)

	got, err := repo.GetByID(dbc, created[0].ID)
	if err != nil || got == nil || got.Title != "standup" || got.Status != types.EventStatusBusy {
		t.Fatalf("GetByID: err=%v got=%+v", err, got)
	}
	if missing, err := repo.GetByID(dbc, 99999); err != nil || missing != nil {
		t.Fatalf("GetByID missing: err=%v got=%+v", err, missing)
	}

	swappable, err := repo.ListSwappable(dbc, u1.ID)
	if err != nil {
		t.Fatalf("ListSwappable: %v", err)
	}
	if len(swappable) != 2 || swappable[0].ID != early.ID || swappable[1].ID != late.ID {
		t.Fatalf("ListSwappable: want=[%d %d] got=%+v", early.ID, late.ID, swappable)
	}

	mine, err := repo.ListByOwner(dbc, u2.ID)
	if err != nil || len(mine) != 2 || mine[0].ID != early.ID {
		t.Fatalf("ListByOwner: err=%v got=%+v", err, mine)
	}

	locked, err := repo.LockByIDs(dbc, []uint{late.ID, early.ID, 99999, early.ID})
	if err != nil {
		t.Fatalf("LockByIDs: %v", err)
	}
	if len(locked) != 2 || locked[late.ID] == nil || locked[early.ID] == nil {
		t.Fatalf("LockByIDs: unexpected result: %+v", locked)
	}

	n, err := repo.UpdateStatusWhere(dbc, []uint{late.ID, early.ID}, []types.EventStatus{types.EventStatusSwappable}, types.EventStatusSwapPending)
	if err != nil || n != 2 {
		t.Fatalf("UpdateStatusWhere: err=%v rows=%d", err, n)
	}
	n, err = repo.UpdateStatusWhere(dbc, []uint{late.ID, early.ID}, []types.EventStatus{types.EventStatusSwappable}, types.EventStatusSwapPending)
	if err != nil || n != 0 {
		t.Fatalf("UpdateStatusWhere second pass: err=%v rows=%d", err, n)
	}

	if n, err := repo.DeleteUnlessStatus(dbc, late.ID, u2.ID, types.EventStatusSwapPending); err != nil || n != 0 {
		t.Fatalf("DeleteUnlessStatus pending: err=%v rows=%d", err, n)
	}

	n, err = repo.TransferWhere(dbc, late.ID, types.EventStatusSwapPending, u1.ID, types.EventStatusBusy)
	if err != nil || n != 1 {
		t.Fatalf("TransferWhere: err=%v rows=%d", err, n)
	}
	moved, _ := repo.GetByID(dbc, late.ID)
	if moved.OwnerUserID != u1.ID || moved.Status != types.EventStatusBusy {
		t.Fatalf("TransferWhere: unexpected row: %+v", moved)
	}

	if n, err := repo.DeleteUnlessStatus(dbc, late.ID, u2.ID, types.EventStatusSwapPending); err != nil || n != 0 {
		t.Fatalf("DeleteUnlessStatus wrong owner: err=%v rows=%d", err, n)
	}
	if n, err := repo.DeleteUnlessStatus(dbc, late.ID, u1.ID, types.EventStatusSwapPending); err != nil || n != 1 {
		t.Fatalf("DeleteUnlessStatus: err=%v rows=%d", err, n)
	}
	if gone, err := repo.GetByID(dbc, late.ID); err != nil || gone != nil {
		t.Fatalf("after delete GetByID: err=%v got=%+v", err, gone)
	}
}

func TestEventRepoRejectsUnknownStatusOnWrite(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewEventRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "u")
	_, err := repo.Create(dbctx.Context{Ctx: ctx, Tx: tx}, []*types.Event{{
		OwnerUserID: u.ID,
		Title:       "bad",
		StartTime:   testutil.Day(9),
		EndTime:     testutil.Day(10),
		Status:      types.EventStatus("MAYBE"),
	}})
	if err == nil {
		t.Fatalf("Create: expected error for unknown status")
	}
}
