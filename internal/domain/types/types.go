// Package types contains the result shapes the service returns.
package types

import (
	"github.com/okian/skillswap/internal/domain/model"
	"github.com/okian/skillswap/internal/domain/search"
)

// DefaultPageSize applies when a request does not set a limit.
const DefaultPageSize = 20

// Page selects a window of an ordered result.
type Page struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Normalize applies the default limit, caps it at maxLimit and clamps a
// negative offset to zero.
func (p Page) Normalize(maxLimit int) Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Paginate returns the window of items selected by p. The result is never nil.
func Paginate[T any](items []T, p Page) []T {
	if p.Offset >= len(items) {
		return make([]T, 0)
	}
	end := len(items)
	if p.Limit > 0 && p.Offset+p.Limit < end {
		end = p.Offset + p.Limit
	}
	out := make([]T, end-p.Offset)
	copy(out, items[p.Offset:end])
	return out
}

// QueryEcho reports the normalized filters a result was computed with.
type QueryEcho struct {
	Term      string  `json:"q"`
	Category  string  `json:"category,omitempty"`
	Level     string  `json:"level,omitempty"`
	Skill     string  `json:"skill,omitempty"`
	MinRating float64 `json:"min_rating,omitempty"`
	Limit     int     `json:"limit"`
	Offset    int     `json:"offset"`
}

// EchoOf builds the echo for q and p.
func EchoOf(q search.Query, p Page) QueryEcho {
	q = q.Normalize()
	return QueryEcho{
		Term: q.Term, Category: q.Category, Level: q.Level, Skill: q.Skill,
		MinRating: q.MinRating, Limit: p.Limit, Offset: p.Offset,
	}
}

// SearchResult is one page of matching users.
type SearchResult struct {
	Users      []model.UserProfile `json:"users"`
	TotalCount int                 `json:"total_count"`
	Query      QueryEcho           `json:"query"`
}

// UserView is a profile with its derived presence.
type UserView struct {
	model.UserProfile
	Presence model.Presence `json:"presence"`
}

// SwapHistory is a user's partitioned and filtered swap list.
type SwapHistory struct {
	UserID string `json:"user_id"`
	Term   string `json:"q,omitempty"`
	search.SwapBuckets
}

// SubmitStatus says what happened to a submitted action.
type SubmitStatus string

// Submission outcomes.
const (
	SubmitAccepted  SubmitStatus = "accepted"
	SubmitDuplicate SubmitStatus = "duplicate"
)

// SubmitResult acknowledges a submitted action.
type SubmitResult struct {
	ActionID string       `json:"action_id"`
	Status   SubmitStatus `json:"status"`
}

// ConversationList is a user's conversations, filtered by the other
// participants' names.
type ConversationList struct {
	UserID        string               `json:"user_id"`
	Term          string               `json:"q,omitempty"`
	Conversations []model.Conversation `json:"conversations"`
}

// Thread is a conversation with its messages, oldest first.
type Thread struct {
	model.Conversation
	Messages []model.Message `json:"messages"`
}

// ReviewSummary is what a profile page shows about a user's track record.
type ReviewSummary struct {
	UserID         string         `json:"user_id"`
	Reviews        []model.Review `json:"reviews"`
	CompletedSwaps int            `json:"completed_swaps"`
	ActiveSwaps    int            `json:"active_swaps"`
}
