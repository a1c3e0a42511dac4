package scheduling

import (
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/slotswapper-backend/internal/domain"
	"github.com/yungbote/slotswapper-backend/internal/platform/dbctx"
	"github.com/yungbote/slotswapper-backend/internal/platform/logger"
)

type EventRepo interface {
	Create(dbc dbctx.Context, events []*types.Event) ([]*types.Event, error)
	GetByID(dbc dbctx.Context, id uint) (*types.Event, error)
	GetByIDs(dbc dbctx.Context, ids []uint) ([]*types.Event, error)
	LockByIDs(dbc dbctx.Context, ids []uint) (map[uint]*types.Event, error)
	ListByOwner(dbc dbctx.Context, ownerUserID uint) ([]*types.Event, error)
	ListSwappable(dbc dbctx.Context, excludeOwnerUserID uint) ([]*types.Event, error)
	UpdateStatusWhere(dbc dbctx.Context, ids []uint, from []types.EventStatus, to types.EventStatus) (int64, error)
	TransferWhere(dbc dbctx.Context, id uint, from types.EventStatus, newOwnerUserID uint, to types.EventStatus) (int64, error)
	DeleteUnlessStatus(dbc dbctx.Context, id uint, ownerUserID uint, guard types.EventStatus) (int64, error)
}

type eventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEventRepo(db *gorm.DB, baseLog *logger.Logger) EventRepo {
	return &eventRepo{
		db:  db,
		log: baseLog.With("repo", "EventRepo"),
	}
}

func (r *eventRepo) Create(dbc dbctx.Context, events []*types.Event) ([]*types.Event, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(events) == 0 {
		return []*types.Event{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// GetByID returns nil, nil when the event does not exist.
func (r *eventRepo) GetByID(dbc dbctx.Context, id uint) (*types.Event, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == 0 {
		return nil, nil
	}
	var out []*types.Event
	if err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *eventRepo) GetByIDs(dbc dbctx.Context, ids []uint) ([]*types.Event, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Event
	if len(ids) == 0 {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// LockByIDs takes row locks one id at a time in ascending order so that concurrent
// negotiations touching the same pair never wait on each other in a cycle.
// Missing ids are absent from the returned map.
func (r *eventRepo) LockByIDs(dbc dbctx.Context, ids []uint) (map[uint]*types.Event, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	sorted := uniqueSorted(ids)
	out := make(map[uint]*types.Event, len(sorted))
	for _, id := range sorted {
		var rows []*types.Event
		if err := transaction.WithContext(dbc.Ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			Limit(1).
			Find(&rows).Error; err != nil {
			return nil, err
		}
		if len(rows) == 1 {
			out[id] = rows[0]
		}
	}
	return out, nil
}

func (r *eventRepo) ListByOwner(dbc dbctx.Context, ownerUserID uint) ([]*types.Event, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Event
	if ownerUserID == 0 {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("owner_user_id = ?", ownerUserID).
		Order("start_time ASC").
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *eventRepo) ListSwappable(dbc dbctx.Context, excludeOwnerUserID uint) ([]*types.Event, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Event
	q := transaction.WithContext(dbc.Ctx).
		Where("status = ?", types.EventStatusSwappable)
	if excludeOwnerUserID != 0 {
		q = q.Where("owner_user_id <> ?", excludeOwnerUserID)
	}
	if err := q.
		Order("start_time ASC").
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateStatusWhere moves every listed event whose current status is in from to the
// target status and reports how many rows matched.
func (r *eventRepo) UpdateStatusWhere(dbc dbctx.Context, ids []uint, from []types.EventStatus, to types.EventStatus) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(ids) == 0 || len(from) == 0 {
		return 0, nil
	}
	res := transaction.WithContext(dbc.Ctx).
		Model(&types.Event{}).
		Where("id IN ? AND status IN ?", ids, from).
		Update("status", to)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// TransferWhere reassigns ownership and status in one statement, guarded on the current status.
func (r *eventRepo) TransferWhere(dbc dbctx.Context, id uint, from types.EventStatus, newOwnerUserID uint, to types.EventStatus) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == 0 || newOwnerUserID == 0 {
		return 0, nil
	}
	res := transaction.WithContext(dbc.Ctx).
		Model(&types.Event{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"owner_user_id": newOwnerUserID,
			"status":        to,
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// DeleteUnlessStatus removes an owned event unless it currently holds the guard status.
func (r *eventRepo) DeleteUnlessStatus(dbc dbctx.Context, id uint, ownerUserID uint, guard types.EventStatus) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == 0 || ownerUserID == 0 {
		return 0, nil
	}
	res := transaction.WithContext(dbc.Ctx).
		Where("id = ? AND owner_user_id = ? AND status <> ?", id, ownerUserID, guard).
		Delete(&types.Event{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func uniqueSorted(ids []uint) []uint {
	out := make([]uint, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
