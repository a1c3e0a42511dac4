package db

import (
	"fmt"

	types "github.com/yungbote/slotswapper-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.User{},
		&types.Event{},
		&types.SwapRequest{},
	)
}

// EnsureSchedulingIndexes adds the composite indexes used by the listing queries.
func EnsureSchedulingIndexes(db *gorm.DB) error {
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_event_status_start ON event(status, start_time, id);`).Error; err != nil {
		return fmt.Errorf("create idx_event_status_start: %w", err)
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_event_owner_start ON event(owner_user_id, start_time, id);`).Error; err != nil {
		return fmt.Errorf("create idx_event_owner_start: %w", err)
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_swap_request_responder_status ON swap_request(responder_user_id, status, created_at);`).Error; err != nil {
		return fmt.Errorf("create idx_swap_request_responder_status: %w", err)
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_swap_request_requester_created ON swap_request(requester_user_id, created_at);`).Error; err != nil {
		return fmt.Errorf("create idx_swap_request_requester_created: %w", err)
	}
	return nil
}
