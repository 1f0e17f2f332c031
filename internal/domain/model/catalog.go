package model

// Catalog is a complete, loaded dataset. Users keep roster order.
type Catalog struct {
	Skills        []Skill
	Users         []UserProfile
	Swaps         []SwapRequest
	Notifications []Notification
	Conversations []Conversation
	Messages      []Message
	Reviews       []Review
}
