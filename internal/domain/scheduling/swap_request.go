package scheduling

import "time"

// SwapRequest is a proposal to exchange ownership of two events.
// ResponderUserID records the owner of TheirSlotID at creation time and is not
// updated when ownership later moves.
type SwapRequest struct {
	ID              uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	RequesterUserID uint       `gorm:"not null;index;column:requester_user_id" json:"requester_user_id"`
	ResponderUserID uint       `gorm:"not null;index;column:responder_user_id" json:"responder_user_id"`
	MySlotID        uint       `gorm:"not null;index;column:my_slot_id" json:"my_slot_id"`
	TheirSlotID     uint       `gorm:"not null;index;column:their_slot_id" json:"their_slot_id"`
	Status          SwapStatus `gorm:"type:varchar(16);not null;default:'PENDING';index;column:status" json:"status"`
	CreatedAt       time.Time  `gorm:"not null;column:created_at" json:"created_at"`
	RespondedAt     *time.Time `gorm:"column:responded_at" json:"responded_at,omitempty"`
}

func (SwapRequest) TableName() string { return "swap_request" }

// SlotIDs returns the referenced event ids in ascending order, the order rows are locked in.
func (r *SwapRequest) SlotIDs() []uint {
	return OrderedSlotIDs(r.MySlotID, r.TheirSlotID)
}

// References reports whether eventID is one of the two slots of the request.
func (r *SwapRequest) References(eventID uint) bool {
	return r != nil && eventID != 0 && (r.MySlotID == eventID || r.TheirSlotID == eventID)
}

// VisibleTo reports whether userID is a party to the request.
func (r *SwapRequest) VisibleTo(userID uint) bool {
	return r != nil && userID != 0 && (r.RequesterUserID == userID || r.ResponderUserID == userID)
}

// OrderedSlotIDs sorts a slot pair ascending.
func OrderedSlotIDs(a, b uint) []uint {
	if a <= b {
		return []uint{a, b}
	}
	return []uint{b, a}
}
