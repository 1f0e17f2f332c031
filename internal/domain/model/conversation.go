package model

import "time"

// MessageKind separates user-written messages from system lines in a thread.
type MessageKind string

// Message kinds.
const (
	MessageText   MessageKind = "text"
	MessageSystem MessageKind = "system"
)

// Message is one line of a conversation.
type Message struct {
	ID             string      `json:"id"`
	ConversationID string      `json:"conversation_id"`
	SenderID       string      `json:"sender_id"`
	Content        string      `json:"content"`
	SentAt         time.Time   `json:"sent_at"`
	Read           bool        `json:"read"`
	Kind           MessageKind `json:"kind"`
}

// Conversation is a thread between users, optionally about a swap.
// LastMessage is the newest message of the thread, if any.
type Conversation struct {
	ID           string    `json:"id"`
	Participants []UserRef `json:"participants"`
	LastMessage  *Message  `json:"last_message,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
	SwapID       string    `json:"swap_id,omitempty"`
}

// HasParticipant reports whether userID takes part in the conversation.
func (c Conversation) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p.ID == userID {
			return true
		}
	}
	return false
}

// SkillRating scores a single skill taught during a swap.
type SkillRating struct {
	SkillID string `json:"skill_id"`
	Rating  int    `json:"rating"`
}

// Review is feedback one swap partner left for the other.
type Review struct {
	ID           string        `json:"id"`
	ReviewerID   string        `json:"reviewer_id"`
	RevieweeID   string        `json:"reviewee_id"`
	SwapID       string        `json:"swap_id"`
	Rating       int           `json:"rating"`
	Comment      string        `json:"comment,omitempty"`
	SkillRatings []SkillRating `json:"skill_ratings"`
	CreatedAt    time.Time     `json:"created_at"`
}
