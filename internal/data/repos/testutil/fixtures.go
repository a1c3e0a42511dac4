package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/slotswapper-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.User {
	tb.Helper()
	u := &types.User{
		Name:  name,
		Email: name + "-" + uuid.NewString()[:8] + "@example.com",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedEvent(tb testing.TB, ctx context.Context, tx *gorm.DB, ownerID uint, title string, start time.Time, status types.EventStatus) *types.Event {
	tb.Helper()
	e := &types.Event{
		OwnerUserID: ownerID,
		Title:       title,
		StartTime:   start.UTC(),
		EndTime:     start.UTC().Add(time.Hour),
		Status:      status,
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed event: %v", err)
	}
	return e
}

func SeedSwapRequest(tb testing.TB, ctx context.Context, tx *gorm.DB, requesterID, responderID, mySlotID, theirSlotID uint, status types.SwapStatus) *types.SwapRequest {
	tb.Helper()
	r := &types.SwapRequest{
		RequesterUserID: requesterID,
		ResponderUserID: responderID,
		MySlotID:        mySlotID,
		TheirSlotID:     theirSlotID,
		Status:          status,
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed swap request: %v", err)
	}
	return r
}

// Day returns hour:00 UTC on a fixed calendar day.
func Day(hour int) time.Time {
	return time.Date(2026, time.March, 2, hour, 0, 0, 0, time.UTC)
}

func PtrTime(v time.Time) *time.Time { return &v }
