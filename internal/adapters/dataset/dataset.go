// Package dataset loads the skill swap catalogue from YAML.
//
// A document lists skills, users, swaps and notifications, plus the
// conversations, messages and reviews shown on the messages and profile
// pages. Records refer to each other by ID. Timestamps are RFC 3339, a plain date, the
// word "now", or a relative form such as "30m ago" resolved against the
// loader's clock so the embedded seed stays fresh.
package dataset

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/okian/skillswap/internal/domain/model"
	"github.com/okian/skillswap/pkg/logger"
	"github.com/okian/skillswap/pkg/metrics"
)

//go:embed seed.yaml
var seed []byte

// Seed returns a copy of the embedded default document.
func Seed() []byte { return bytes.Clone(seed) }

// Loader decodes and validates catalogue documents.
type Loader struct {
	validate *validator.Validate
	now      func() time.Time
}

// Option configures a Loader.
type Option func(*Loader)

// WithClock sets the clock relative timestamps resolve against.
func WithClock(now func() time.Time) Option {
	return func(l *Loader) {
		if now != nil {
			l.now = now
		}
	}
}

// New creates a Loader.
func New(opts ...Option) *Loader {
	v := validator.New()
	// Both rules only fail on registration errors, which are programming bugs.
	_ = v.RegisterValidation("skill_level", func(fl validator.FieldLevel) bool {
		return model.Level(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("swap_status", func(fl validator.FieldLevel) bool {
		return model.SwapStatus(fl.Field().String()).Valid()
	})
	l := &Loader{validate: v, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the document at path, or the embedded seed when path is empty.
func (l *Loader) Load(ctx context.Context, path string) (*model.Catalog, error) {
	start := time.Now()
	data := seed
	source := "embedded seed"
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidDataset, path, err)
		}
		data, source = raw, path
	}

	cat, err := l.Parse(ctx, data)
	if err != nil {
		metrics.RecordErrorByComponent("dataset", "invalid")
		return nil, err
	}

	metrics.RecordDatasetLoad(float64(time.Since(start).Milliseconds()))
	metrics.UpdateCatalogSize(len(cat.Users), len(cat.Skills), len(cat.Swaps))
	logger.Get().Info(ctx, "catalogue loaded",
		logger.String("source", source),
		logger.Int("users", len(cat.Users)),
		logger.Int("skills", len(cat.Skills)),
		logger.Int("swaps", len(cat.Swaps)),
		logger.Int("conversations", len(cat.Conversations)),
		logger.Int("reviews", len(cat.Reviews)),
	)
	return cat, nil
}

// Parse decodes, validates and resolves a document.
func (l *Loader) Parse(_ context.Context, data []byte) (*model.Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidDataset, err)
	}
	if err := l.validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDataset, describe(err))
	}
	return l.build(&doc)
}

func (l *Loader) build(doc *document) (*model.Catalog, error) {
	now := l.now()
	cat := &model.Catalog{
		Skills:        make([]model.Skill, 0, len(doc.Skills)),
		Users:         make([]model.UserProfile, 0, len(doc.Users)),
		Swaps:         make([]model.SwapRequest, 0, len(doc.Swaps)),
		Notifications: make([]model.Notification, 0, len(doc.Notifications)),
		Conversations: make([]model.Conversation, 0, len(doc.Conversations)),
		Messages:      make([]model.Message, 0, len(doc.Messages)),
		Reviews:       make([]model.Review, 0, len(doc.Reviews)),
	}

	skills := make(map[string]model.Skill, len(doc.Skills))
	for _, r := range doc.Skills {
		if _, dup := skills[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate skill id %q", ErrInvalidDataset, r.ID)
		}
		s := model.Skill{ID: r.ID, Name: r.Name, Category: r.Category, Level: model.Level(r.Level), Description: r.Description}
		skills[r.ID] = s
		cat.Skills = append(cat.Skills, s)
	}

	resolve := func(ids []string, owner string) ([]model.Skill, error) {
		out := make([]model.Skill, 0, len(ids))
		for _, id := range ids {
			s, ok := skills[id]
			if !ok {
				return nil, fmt.Errorf("%w: %s references unknown skill %q", ErrInvalidDataset, owner, id)
			}
			out = append(out, s)
		}
		return out, nil
	}

	users := make(map[string]model.UserRef, len(doc.Users))
	for _, r := range doc.Users {
		if _, dup := users[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate user id %q", ErrInvalidDataset, r.ID)
		}
		owner := "user " + r.ID
		offered, err := resolve(r.SkillsOffered, owner)
		if err != nil {
			return nil, err
		}
		wanted, err := resolve(r.SkillsWanted, owner)
		if err != nil {
			return nil, err
		}
		lastSeen, err := resolveTime(r.LastSeen, now)
		if err != nil {
			return nil, fmt.Errorf("%w: %s last_seen: %v", ErrInvalidDataset, owner, err)
		}
		joined, err := resolveTime(r.JoinedAt, now)
		if err != nil {
			return nil, fmt.Errorf("%w: %s joined_at: %v", ErrInvalidDataset, owner, err)
		}
		users[r.ID] = model.UserRef{ID: r.ID, Name: r.Name}
		cat.Users = append(cat.Users, model.UserProfile{
			ID: r.ID, Name: r.Name, Email: r.Email, Bio: r.Bio, Location: r.Location,
			Rating: r.Rating, ReviewCount: r.ReviewCount,
			SkillsOffered: offered, SkillsWanted: wanted,
			Online: r.Online, LastSeen: lastSeen, JoinedAt: joined,
		})
	}

	swaps := make(map[string]model.SwapRequest, len(doc.Swaps))
	for _, r := range doc.Swaps {
		owner := "swap " + r.ID
		if _, dup := swaps[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate swap id %q", ErrInvalidDataset, r.ID)
		}
		from, ok := users[r.FromUserID]
		if !ok {
			return nil, fmt.Errorf("%w: %s references unknown user %q", ErrInvalidDataset, owner, r.FromUserID)
		}
		to, ok := users[r.ToUserID]
		if !ok {
			return nil, fmt.Errorf("%w: %s references unknown user %q", ErrInvalidDataset, owner, r.ToUserID)
		}
		pair, err := resolve([]string{r.OfferedSkillID, r.RequestedSkillID}, owner)
		if err != nil {
			return nil, err
		}
		created, err := resolveTime(r.CreatedAt, now)
		if err != nil {
			return nil, fmt.Errorf("%w: %s created_at: %v", ErrInvalidDataset, owner, err)
		}
		updated, err := resolveTime(r.UpdatedAt, now)
		if err != nil {
			return nil, fmt.Errorf("%w: %s updated_at: %v", ErrInvalidDataset, owner, err)
		}
		sw := model.SwapRequest{
			ID: r.ID, From: from, To: to,
			OfferedSkill: pair[0], RequestedSkill: pair[1],
			Status: model.SwapStatus(r.Status), Message: r.Message,
			CreatedAt: created, UpdatedAt: updated,
		}
		swaps[r.ID] = sw
		cat.Swaps = append(cat.Swaps, sw)
	}

	for _, r := range doc.Notifications {
		owner := "notification " + r.ID
		if _, ok := users[r.UserID]; !ok {
			return nil, fmt.Errorf("%w: %s references unknown user %q", ErrInvalidDataset, owner, r.UserID)
		}
		created, err := resolveTime(r.CreatedAt, now)
		if err != nil {
			return nil, fmt.Errorf("%w: %s created_at: %v", ErrInvalidDataset, owner, err)
		}
		cat.Notifications = append(cat.Notifications, model.Notification{
			ID: r.ID, UserID: r.UserID, Kind: r.Kind, Title: r.Title, Message: r.Message,
			Read: r.Read, CreatedAt: created, ActionURL: r.ActionURL,
		})
	}

	if err := buildConversations(doc, cat, users, swaps, now); err != nil {
		return nil, err
	}
	if err := buildReviews(doc, cat, users, skills, swaps, now); err != nil {
		return nil, err
	}
	return cat, nil
}

// buildConversations resolves threads and their messages. A conversation's
// last message is its newest one; UpdatedAt defaults to that message's time.
func buildConversations(doc *document, cat *model.Catalog, users map[string]model.UserRef,
	swaps map[string]model.SwapRequest, now time.Time,
) error {
	index := make(map[string]int, len(doc.Conversations))
	for _, r := range doc.Conversations {
		owner := "conversation " + r.ID
		if _, dup := index[r.ID]; dup {
			return fmt.Errorf("%w: duplicate conversation id %q", ErrInvalidDataset, r.ID)
		}
		refs := make([]model.UserRef, 0, len(r.Participants))
		for _, id := range r.Participants {
			ref, ok := users[id]
			if !ok {
				return fmt.Errorf("%w: %s references unknown user %q", ErrInvalidDataset, owner, id)
			}
			refs = append(refs, ref)
		}
		if r.SwapID != "" {
			if _, ok := swaps[r.SwapID]; !ok {
				return fmt.Errorf("%w: %s references unknown swap %q", ErrInvalidDataset, owner, r.SwapID)
			}
		}
		updated, err := resolveTime(r.UpdatedAt, now)
		if err != nil {
			return fmt.Errorf("%w: %s updated_at: %v", ErrInvalidDataset, owner, err)
		}
		index[r.ID] = len(cat.Conversations)
		cat.Conversations = append(cat.Conversations, model.Conversation{
			ID: r.ID, Participants: refs, UpdatedAt: updated, SwapID: r.SwapID,
		})
	}

	seen := make(map[string]struct{}, len(doc.Messages))
	for _, r := range doc.Messages {
		owner := "message " + r.ID
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("%w: duplicate message id %q", ErrInvalidDataset, r.ID)
		}
		seen[r.ID] = struct{}{}
		i, ok := index[r.ConversationID]
		if !ok {
			return fmt.Errorf("%w: %s references unknown conversation %q", ErrInvalidDataset, owner, r.ConversationID)
		}
		conv := &cat.Conversations[i]
		if !conv.HasParticipant(r.SenderID) {
			return fmt.Errorf("%w: %s sender %q is not in conversation %q", ErrInvalidDataset, owner, r.SenderID, conv.ID)
		}
		sent, err := resolveTime(r.SentAt, now)
		if err != nil {
			return fmt.Errorf("%w: %s sent_at: %v", ErrInvalidDataset, owner, err)
		}
		kind := model.MessageKind(r.Kind)
		if kind == "" {
			kind = model.MessageText
		}
		m := model.Message{
			ID: r.ID, ConversationID: r.ConversationID, SenderID: r.SenderID,
			Content: r.Content, SentAt: sent, Read: r.Read, Kind: kind,
		}
		cat.Messages = append(cat.Messages, m)
		if conv.LastMessage == nil || !m.SentAt.Before(conv.LastMessage.SentAt) {
			last := m
			conv.LastMessage = &last
		}
	}
	for i := range cat.Conversations {
		c := &cat.Conversations[i]
		if c.UpdatedAt.IsZero() && c.LastMessage != nil {
			c.UpdatedAt = c.LastMessage.SentAt
		}
	}
	return nil
}

// buildReviews checks that both sides of a review took part in its swap.
func buildReviews(doc *document, cat *model.Catalog, users map[string]model.UserRef,
	skills map[string]model.Skill, swaps map[string]model.SwapRequest, now time.Time,
) error {
	seen := make(map[string]struct{}, len(doc.Reviews))
	for _, r := range doc.Reviews {
		owner := "review " + r.ID
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("%w: duplicate review id %q", ErrInvalidDataset, r.ID)
		}
		seen[r.ID] = struct{}{}
		for _, id := range []string{r.ReviewerID, r.RevieweeID} {
			if _, ok := users[id]; !ok {
				return fmt.Errorf("%w: %s references unknown user %q", ErrInvalidDataset, owner, id)
			}
		}
		sw, ok := swaps[r.SwapID]
		if !ok {
			return fmt.Errorf("%w: %s references unknown swap %q", ErrInvalidDataset, owner, r.SwapID)
		}
		if !sw.Involves(r.ReviewerID) || !sw.Involves(r.RevieweeID) {
			return fmt.Errorf("%w: %s users did not take part in swap %q", ErrInvalidDataset, owner, r.SwapID)
		}
		ratings := make([]model.SkillRating, 0, len(r.SkillRatings))
		for _, sr := range r.SkillRatings {
			if _, ok := skills[sr.SkillID]; !ok {
				return fmt.Errorf("%w: %s references unknown skill %q", ErrInvalidDataset, owner, sr.SkillID)
			}
			ratings = append(ratings, model.SkillRating{SkillID: sr.SkillID, Rating: sr.Rating})
		}
		created, err := resolveTime(r.CreatedAt, now)
		if err != nil {
			return fmt.Errorf("%w: %s created_at: %v", ErrInvalidDataset, owner, err)
		}
		cat.Reviews = append(cat.Reviews, model.Review{
			ID: r.ID, ReviewerID: r.ReviewerID, RevieweeID: r.RevieweeID, SwapID: r.SwapID,
			Rating: r.Rating, Comment: r.Comment, SkillRatings: ratings, CreatedAt: created,
		})
	}
	return nil
}

// resolveTime accepts "", "now", "<duration> ago", a date or RFC 3339.
func resolveTime(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return time.Time{}, nil
	case raw == "now":
		return now, nil
	case strings.HasSuffix(raw, " ago"):
		d, err := time.ParseDuration(strings.TrimSpace(strings.TrimSuffix(raw, " ago")))
		if err != nil {
			return time.Time{}, err
		}
		if d < 0 {
			return time.Time{}, fmt.Errorf("negative offset %q", raw)
		}
		return now.Add(-d), nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// describe flattens validator errors into one readable line.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
