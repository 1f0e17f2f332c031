package model

import "time"

// SwapStatus is the lifecycle state of a swap request.
type SwapStatus string

// Swap statuses.
const (
	SwapPending   SwapStatus = "pending"
	SwapAccepted  SwapStatus = "accepted"
	SwapRejected  SwapStatus = "rejected"
	SwapActive    SwapStatus = "active"
	SwapCompleted SwapStatus = "completed"
	SwapCancelled SwapStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s SwapStatus) Valid() bool {
	switch s {
	case SwapPending, SwapAccepted, SwapRejected, SwapActive, SwapCompleted, SwapCancelled:
		return true
	}
	return false
}

// UserRef is the part of a profile a swap record carries.
type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SwapRequest is a historical exchange between two users.
type SwapRequest struct {
	ID             string     `json:"id"`
	From           UserRef    `json:"from"`
	To             UserRef    `json:"to"`
	OfferedSkill   Skill      `json:"offered_skill"`
	RequestedSkill Skill      `json:"requested_skill"`
	Status         SwapStatus `json:"status"`
	Message        string     `json:"message,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Involves reports whether userID is either side of the swap.
func (s SwapRequest) Involves(userID string) bool {
	return s.From.ID == userID || s.To.ID == userID
}

// Notification is a stored, read-only notification from the dataset.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
	ActionURL string    `json:"action_url,omitempty"`
}
