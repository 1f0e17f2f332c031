// Package repository serves read-only lookups over a loaded catalogue.
package repository

import (
	"context"

	"github.com/okian/skillswap/internal/domain/model"
)

// Counts summarises the size of a catalogue.
type Counts struct {
	Users         int `json:"users"`
	Skills        int `json:"skills"`
	Swaps         int `json:"swaps"`
	Notifications int `json:"notifications"`
	Conversations int `json:"conversations"`
	Messages      int `json:"messages"`
	Reviews       int `json:"reviews"`
}

// Catalog provides read access to the catalogue snapshot. Returned slices are
// copies and may be modified by callers.
type Catalog interface {
	// Roster returns every user in dataset order.
	Roster(ctx context.Context) []model.UserProfile
	// User returns a single profile. Returns ErrNotFound for unknown IDs.
	User(ctx context.Context, id string) (model.UserProfile, error)

	// Skills returns the skill catalogue in dataset order.
	Skills(ctx context.Context) []model.Skill
	// Skill returns a single skill. Returns ErrNotFound for unknown IDs.
	Skill(ctx context.Context, id string) (model.Skill, error)

	// SwapsFor returns the swaps a known user takes part in.
	SwapsFor(ctx context.Context, userID string) ([]model.SwapRequest, error)
	// Notifications returns a known user's stored notifications, newest first.
	Notifications(ctx context.Context, userID string) ([]model.Notification, error)
	// UnreadNotifications counts a known user's unread notifications.
	UnreadNotifications(ctx context.Context, userID string) (int, error)

	// ConversationsFor returns the conversations a known user takes part in.
	ConversationsFor(ctx context.Context, userID string) ([]model.Conversation, error)
	// Conversation returns a single conversation. Returns ErrNotFound for unknown IDs.
	Conversation(ctx context.Context, id string) (model.Conversation, error)
	// Messages returns a known conversation's messages, oldest first.
	Messages(ctx context.Context, conversationID string) ([]model.Message, error)
	// ReviewsFor returns the reviews a known user received.
	ReviewsFor(ctx context.Context, userID string) ([]model.Review, error)

	// Count reports the catalogue size.
	Count(ctx context.Context) Counts
}
