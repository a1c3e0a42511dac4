package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/slotswapper-backend/internal/data/aggregates"
	"github.com/yungbote/slotswapper-backend/internal/data/repos"
	repotest "github.com/yungbote/slotswapper-backend/internal/data/repos/testutil"
	domainagg "github.com/yungbote/slotswapper-backend/internal/domain/aggregates"
	"github.com/yungbote/slotswapper-backend/internal/observability"
	"github.com/yungbote/slotswapper-backend/internal/platform/ctxutil"
	"github.com/yungbote/slotswapper-backend/internal/realtime"
)

type recordingEmitter struct {
	mu   sync.Mutex
	msgs []realtime.SSEMessage
	err  error
	ch   chan realtime.SSEMessage
}

func newRecordingEmitter() *recordingEmitter {
	return &recordingEmitter{ch: make(chan realtime.SSEMessage, 16)}
}

func (e *recordingEmitter) Emit(ctx context.Context, msg realtime.SSEMessage) error {
	e.mu.Lock()
	e.msgs = append(e.msgs, msg)
	err := e.err
	e.mu.Unlock()
	e.ch <- msg
	return err
}

func (e *recordingEmitter) next(t *testing.T) realtime.SSEMessage {
	t.Helper()
	select {
	case msg := <-e.ch:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for notification")
	}
	return realtime.SSEMessage{}
}

type serviceHarness struct {
	db      *gorm.DB
	emitter *recordingEmitter
	metrics *observability.Metrics
	users   repos.UserRepo
	events  repos.EventRepo
	slot    SlotService
	swap    SwapService
	user    UserService
}

func newServiceHarness(t *testing.T) *serviceHarness {
	t.Helper()
	db := repotest.DB(t)
	log := repotest.Logger(t)
	h := &serviceHarness{
		db:      db,
		emitter: newRecordingEmitter(),
		metrics: observability.NewMetrics(),
		users:   repos.NewUserRepo(db, log),
		events:  repos.NewEventRepo(db, log),
	}
	requests := repos.NewSwapRequestRepo(db, log)
	base := aggregates.BaseDeps{DB: db, Log: log, Runner: aggregates.NewGormTxRunner(db)}
	slotAgg := aggregates.NewSlotAggregate(aggregates.SlotAggregateDeps{Base: base, Events: h.events})
	swapAgg := aggregates.NewSwapAggregate(aggregates.SwapAggregateDeps{Base: base, Events: h.events, Swaps: requests})

	h.slot = NewSlotService(log, slotAgg, h.events)
	h.swap = NewSwapService(SwapServiceDeps{
		Log:      log,
		Swaps:    swapAgg,
		Requests: requests,
		Notifier: NewSwapNotifier(log, h.emitter, h.metrics),
	})
	h.user = NewUserService(log, h.users)
	return h
}

func as(userID uint) context.Context {
	return ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: userID})
}

func requireCode(t *testing.T, err error, code domainagg.ErrorCode) {
	t.Helper()
	if !domainagg.IsCode(err, code) {
		t.Fatalf("error code: want=%s got=%q (%v)", code, domainagg.CodeOf(err), err)
	}
}
