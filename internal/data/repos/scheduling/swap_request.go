package scheduling

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/slotswapper-backend/internal/domain"
	"github.com/yungbote/slotswapper-backend/internal/platform/dbctx"
	"github.com/yungbote/slotswapper-backend/internal/platform/logger"
)

type SwapRequestRepo interface {
	Create(dbc dbctx.Context, requests []*types.SwapRequest) ([]*types.SwapRequest, error)
	GetByID(dbc dbctx.Context, id uint) (*types.SwapRequest, error)
	LockByID(dbc dbctx.Context, id uint) (*types.SwapRequest, error)
	ListIncomingPending(dbc dbctx.Context, responderUserID uint) ([]*types.SwapRequest, error)
	ListOutgoing(dbc dbctx.Context, requesterUserID uint) ([]*types.SwapRequest, error)
	ListPendingByEventIDs(dbc dbctx.Context, eventIDs []uint) ([]*types.SwapRequest, error)
	TransitionStatus(dbc dbctx.Context, id uint, from, to types.SwapStatus, respondedAt time.Time) (int64, error)
}

type swapRequestRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSwapRequestRepo(db *gorm.DB, baseLog *logger.Logger) SwapRequestRepo {
	return &swapRequestRepo{
		db:  db,
		log: baseLog.With("repo", "SwapRequestRepo"),
	}
}

func (r *swapRequestRepo) Create(dbc dbctx.Context, requests []*types.SwapRequest) ([]*types.SwapRequest, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(requests) == 0 {
		return []*types.SwapRequest{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// GetByID returns nil, nil when the request does not exist.
func (r *swapRequestRepo) GetByID(dbc dbctx.Context, id uint) (*types.SwapRequest, error) {
	return r.getOne(dbc, id, false)
}

// LockByID is GetByID under a row lock.
func (r *swapRequestRepo) LockByID(dbc dbctx.Context, id uint) (*types.SwapRequest, error) {
	return r.getOne(dbc, id, true)
}

func (r *swapRequestRepo) getOne(dbc dbctx.Context, id uint, lock bool) (*types.SwapRequest, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == 0 {
		return nil, nil
	}
	q := transaction.WithContext(dbc.Ctx)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out []*types.SwapRequest
	if err := q.Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *swapRequestRepo) ListIncomingPending(dbc dbctx.Context, responderUserID uint) ([]*types.SwapRequest, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.SwapRequest
	if responderUserID == 0 {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("responder_user_id = ? AND status = ?", responderUserID, types.SwapStatusPending).
		Order("created_at DESC").
		Order("id DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *swapRequestRepo) ListOutgoing(dbc dbctx.Context, requesterUserID uint) ([]*types.SwapRequest, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.SwapRequest
	if requesterUserID == 0 {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("requester_user_id = ?", requesterUserID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListPendingByEventIDs returns PENDING requests referencing any of the given events.
func (r *swapRequestRepo) ListPendingByEventIDs(dbc dbctx.Context, eventIDs []uint) ([]*types.SwapRequest, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.SwapRequest
	if len(eventIDs) == 0 {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("status = ? AND (my_slot_id IN ? OR their_slot_id IN ?)", types.SwapStatusPending, eventIDs, eventIDs).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// TransitionStatus moves a request from one status to another and reports matched rows.
func (r *swapRequestRepo) TransitionStatus(dbc dbctx.Context, id uint, from, to types.SwapStatus, respondedAt time.Time) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == 0 {
		return 0, nil
	}
	res := transaction.WithContext(dbc.Ctx).
		Model(&types.SwapRequest{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":       to,
			"responded_at": respondedAt,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
