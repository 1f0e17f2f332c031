package repository

import (
	"context"
	"slices"
	"sort"

	"github.com/okian/skillswap/internal/domain/model"
	"github.com/okian/skillswap/internal/domain/search"
	"github.com/okian/skillswap/pkg/metrics"
)

// MemStore is an immutable, in-memory Catalog built once from a loaded
// dataset. It needs no locking: nothing is written after construction.
type MemStore struct {
	users         []model.UserProfile
	skills        []model.Skill
	swaps         []model.SwapRequest
	notifications map[string][]model.Notification
	conversations []model.Conversation
	messages      map[string][]model.Message
	reviews       map[string][]model.Review
	userIdx       map[string]int
	skillIdx      map[string]int
	convIdx       map[string]int
	recordLookups bool
}

var _ Catalog = (*MemStore)(nil)

// NewMemStore indexes cat. The catalogue is copied; later changes to cat are
// not observed. A nil catalogue yields an empty store.
func NewMemStore(_ context.Context, cat *model.Catalog, opts ...Option) *MemStore {
	if cat == nil {
		cat = &model.Catalog{}
	}
	s := &MemStore{
		users:         cloneUsers(cat.Users),
		skills:        slices.Clone(cat.Skills),
		swaps:         slices.Clone(cat.Swaps),
		notifications: make(map[string][]model.Notification),
		conversations: make([]model.Conversation, 0, len(cat.Conversations)),
		messages:      make(map[string][]model.Message),
		reviews:       make(map[string][]model.Review),
		userIdx:       make(map[string]int, len(cat.Users)),
		skillIdx:      make(map[string]int, len(cat.Skills)),
		convIdx:       make(map[string]int, len(cat.Conversations)),
		recordLookups: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	for i, u := range s.users {
		if _, dup := s.userIdx[u.ID]; !dup {
			s.userIdx[u.ID] = i
		}
	}
	for i, sk := range s.skills {
		if _, dup := s.skillIdx[sk.ID]; !dup {
			s.skillIdx[sk.ID] = i
		}
	}
	for _, n := range cat.Notifications {
		s.notifications[n.UserID] = append(s.notifications[n.UserID], n)
	}
	for _, list := range s.notifications {
		sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	}
	for _, c := range cat.Conversations {
		if _, dup := s.convIdx[c.ID]; dup {
			continue
		}
		s.convIdx[c.ID] = len(s.conversations)
		s.conversations = append(s.conversations, cloneConversation(c))
	}
	for _, m := range cat.Messages {
		s.messages[m.ConversationID] = append(s.messages[m.ConversationID], m)
	}
	for _, list := range s.messages {
		sort.SliceStable(list, func(i, j int) bool { return list[i].SentAt.Before(list[j].SentAt) })
	}
	for _, r := range cat.Reviews {
		r.SkillRatings = slices.Clone(r.SkillRatings)
		s.reviews[r.RevieweeID] = append(s.reviews[r.RevieweeID], r)
	}
	return s
}

// Roster implements Catalog.
func (s *MemStore) Roster(_ context.Context) []model.UserProfile {
	return cloneUsers(s.users)
}

// User implements Catalog.
func (s *MemStore) User(_ context.Context, id string) (model.UserProfile, error) {
	i, ok := s.userIdx[id]
	s.lookup("user", ok)
	if !ok {
		return model.UserProfile{}, ErrNotFound
	}
	return cloneUser(s.users[i]), nil
}

// Skills implements Catalog.
func (s *MemStore) Skills(_ context.Context) []model.Skill {
	return append(make([]model.Skill, 0, len(s.skills)), s.skills...)
}

// Skill implements Catalog.
func (s *MemStore) Skill(_ context.Context, id string) (model.Skill, error) {
	i, ok := s.skillIdx[id]
	s.lookup("skill", ok)
	if !ok {
		return model.Skill{}, ErrNotFound
	}
	return s.skills[i], nil
}

// SwapsFor implements Catalog.
func (s *MemStore) SwapsFor(_ context.Context, userID string) ([]model.SwapRequest, error) {
	_, ok := s.userIdx[userID]
	s.lookup("swaps", ok)
	if !ok {
		return nil, ErrNotFound
	}
	return search.SwapsFor(userID, s.swaps), nil
}

// Notifications implements Catalog.
func (s *MemStore) Notifications(_ context.Context, userID string) ([]model.Notification, error) {
	_, ok := s.userIdx[userID]
	s.lookup("notifications", ok)
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]model.Notification, len(s.notifications[userID]))
	copy(out, s.notifications[userID])
	return out, nil
}

// UnreadNotifications implements Catalog.
func (s *MemStore) UnreadNotifications(ctx context.Context, userID string) (int, error) {
	list, err := s.Notifications(ctx, userID)
	if err != nil {
		return 0, err
	}
	unread := 0
	for _, n := range list {
		if !n.Read {
			unread++
		}
	}
	return unread, nil
}

// ConversationsFor implements Catalog.
func (s *MemStore) ConversationsFor(_ context.Context, userID string) ([]model.Conversation, error) {
	_, ok := s.userIdx[userID]
	s.lookup("conversations", ok)
	if !ok {
		return nil, ErrNotFound
	}
	out := search.ConversationsFor(userID, s.conversations)
	for i := range out {
		out[i] = cloneConversation(out[i])
	}
	return out, nil
}

// Conversation implements Catalog.
func (s *MemStore) Conversation(_ context.Context, id string) (model.Conversation, error) {
	i, ok := s.convIdx[id]
	s.lookup("conversation", ok)
	if !ok {
		return model.Conversation{}, ErrNotFound
	}
	return cloneConversation(s.conversations[i]), nil
}

// Messages implements Catalog.
func (s *MemStore) Messages(_ context.Context, conversationID string) ([]model.Message, error) {
	_, ok := s.convIdx[conversationID]
	s.lookup("messages", ok)
	if !ok {
		return nil, ErrNotFound
	}
	return append(make([]model.Message, 0, len(s.messages[conversationID])), s.messages[conversationID]...), nil
}

// ReviewsFor implements Catalog.
func (s *MemStore) ReviewsFor(_ context.Context, userID string) ([]model.Review, error) {
	_, ok := s.userIdx[userID]
	s.lookup("reviews", ok)
	if !ok {
		return nil, ErrNotFound
	}
	list := s.reviews[userID]
	out := make([]model.Review, len(list))
	for i, r := range list {
		r.SkillRatings = slices.Clone(r.SkillRatings)
		out[i] = r
	}
	return out, nil
}

// Count implements Catalog.
func (s *MemStore) Count(_ context.Context) Counts {
	c := Counts{Users: len(s.users), Skills: len(s.skills), Swaps: len(s.swaps), Conversations: len(s.conversations)}
	for _, list := range s.notifications {
		c.Notifications += len(list)
	}
	for _, list := range s.messages {
		c.Messages += len(list)
	}
	for _, list := range s.reviews {
		c.Reviews += len(list)
	}
	return c
}

func (s *MemStore) lookup(kind string, found bool) {
	if !s.recordLookups {
		return
	}
	if found {
		metrics.RecordLookup(kind, "hit")
		return
	}
	metrics.RecordLookup(kind, "not_found")
	metrics.RecordErrorByComponent("repository", "not_found")
}

func cloneUser(u model.UserProfile) model.UserProfile {
	u.SkillsOffered = slices.Clone(u.SkillsOffered)
	u.SkillsWanted = slices.Clone(u.SkillsWanted)
	return u
}

func cloneConversation(c model.Conversation) model.Conversation {
	c.Participants = slices.Clone(c.Participants)
	if c.LastMessage != nil {
		last := *c.LastMessage
		c.LastMessage = &last
	}
	return c
}

func cloneUsers(users []model.UserProfile) []model.UserProfile {
	out := make([]model.UserProfile, len(users))
	for i, u := range users {
		out[i] = cloneUser(u)
	}
	return out
}
