package scheduling

import "time"

// Event is a time slot owned by exactly one user.
type Event struct {
	ID          uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerUserID uint        `gorm:"not null;index;column:owner_user_id" json:"user_id"`
	Title       string      `gorm:"not null;column:title" json:"title"`
	StartTime   time.Time   `gorm:"not null;column:start_time" json:"start_time"`
	EndTime     time.Time   `gorm:"not null;column:end_time" json:"end_time"`
	Status      EventStatus `gorm:"type:varchar(16);not null;default:'BUSY';index;column:status" json:"status"`
	CreatedAt   time.Time   `gorm:"not null;column:created_at" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"not null;column:updated_at" json:"updated_at"`
}

func (Event) TableName() string { return "event" }

func (e *Event) OwnedBy(userID uint) bool {
	return e != nil && userID != 0 && e.OwnerUserID == userID
}

func (e *Event) Pending() bool {
	return e != nil && e.Status == EventStatusSwapPending
}
