package aggregates

import (
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/slotswapper-backend/internal/platform/dbctx"
)

// CASGuard provides conditional-update helpers for aggregate writes.
type CASGuard struct {
	db *gorm.DB
}

func NewCASGuard(db *gorm.DB) CASGuard {
	return CASGuard{db: db}
}

func (g CASGuard) baseDB(dbc dbctx.Context) (*gorm.DB, error) {
	if dbc.Tx != nil {
		return dbc.Tx.WithContext(dbc.Ctx), nil
	}
	if g.db != nil {
		return g.db.WithContext(dbc.Ctx), nil
	}
	return nil, ValidationError("missing db transaction context")
}

// UpdateByStatus applies updates to every listed row whose status is allowed and
// returns the number of rows matched. Callers compare it to len(ids).
func (g CASGuard) UpdateByStatus(dbc dbctx.Context, table string, ids []uint, allowedStatuses []string, updates map[string]any) (int64, error) {
	db, err := g.baseDB(dbc)
	if err != nil {
		return 0, err
	}
	table = strings.TrimSpace(table)
	if table == "" || len(ids) == 0 {
		return 0, ValidationError("table and ids are required for UpdateByStatus")
	}
	for _, id := range ids {
		if id == 0 {
			return 0, ValidationError("ids must be non-zero for UpdateByStatus")
		}
	}
	if len(allowedStatuses) == 0 {
		return 0, ValidationError("allowedStatuses must not be empty")
	}
	if len(updates) == 0 {
		return 0, ValidationError("updates must not be empty")
	}
	res := db.Table(table).
		Where("id IN ? AND status IN ?", ids, allowedStatuses).
		Updates(updates)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// RequireRowsAffected returns short when a conditional write matched fewer rows
// than expected. A nil short falls back to a conflict error.
func RequireRowsAffected(got, want int64, short error) error {
	if got == want {
		return nil
	}
	if short == nil {
		return ConflictError("conditional write matched no rows")
	}
	return short
}
