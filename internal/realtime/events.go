package realtime

import "strconv"

type SSEEvent string

const (
	SSEEventSwapRequested SSEEvent = "swap.requested"
	SSEEventSwapAccepted  SSEEvent = "swap.accepted"
	SSEEventSwapRejected  SSEEvent = "swap.rejected"
)

// SSEMessage is one push. Channel is the recipient user's channel.
type SSEMessage struct {
	Channel string   `json:"channel"`
	Event   SSEEvent `json:"event"`
	Data    any      `json:"data,omitempty"`
}

// UserChannel is the private channel every connection of a user listens on.
func UserChannel(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}
