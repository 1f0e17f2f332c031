package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/okian/skillswap/internal/domain/model"
	"github.com/okian/skillswap/internal/domain/search"
	"github.com/okian/skillswap/internal/domain/types"
	"github.com/okian/skillswap/pkg/logger"
	"github.com/okian/skillswap/pkg/metrics"
)

// Search surfaces, used for metrics and cache keys.
const (
	SurfaceUsers    = "users"
	SurfaceDiscover = "discover"
)

// SearchUsers runs q over the roster and returns one page of matches in
// roster order. TotalCount counts every match, not just the page.
func (s *Service) SearchUsers(ctx context.Context, q search.Query, page types.Page) (types.SearchResult, error) {
	return s.runSearch(ctx, SurfaceUsers, q, page)
}

// Discover is the landing-page search: the term matches names and skill
// names only, and skill pins an exact skill.
func (s *Service) Discover(ctx context.Context, term, skill string, page types.Page) (types.SearchResult, error) {
	return s.runSearch(ctx, SurfaceDiscover, search.DiscoveryQuery(term, skill), page)
}

func (s *Service) runSearch(ctx context.Context, surface string, q search.Query, page types.Page) (types.SearchResult, error) {
	if s == nil || s.catalog == nil {
		return types.SearchResult{}, ErrInvalidArgument
	}
	page = page.Normalize(s.maxPageSize)
	start := time.Now()

	var key string
	if s.cache != nil {
		key = s.cache.Key(surface, q.Key(), strconv.Itoa(page.Limit), strconv.Itoa(page.Offset))
		var cached types.SearchResult
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			s.logger.Debug(ctx, "search cache read failed", logger.Error(err))
		}
		if hit {
			metrics.RecordSearch(surface, msSince(start), cached.TotalCount)
			return cached, nil
		}
	}

	// Invalid queries are never cached, so validating after the lookup is safe.
	matches, err := search.SearchValidated(s.catalog.Roster(ctx), q)
	if err != nil {
		metrics.RecordErrorByComponent("search", "invalid_argument")
		return types.SearchResult{}, err
	}
	result := types.SearchResult{
		Users:      types.Paginate(matches, page),
		TotalCount: len(matches),
		Query:      types.EchoOf(q, page),
	}
	metrics.RecordSearch(surface, msSince(start), result.TotalCount)

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, result); err != nil {
			s.logger.Debug(ctx, "search cache write failed", logger.Error(err))
		}
	}
	return result, nil
}

// User returns a profile with its current presence.
func (s *Service) User(ctx context.Context, id string) (types.UserView, error) {
	if s == nil || s.catalog == nil {
		return types.UserView{}, ErrInvalidArgument
	}
	u, err := s.catalog.User(ctx, id)
	if err != nil {
		return types.UserView{}, fmt.Errorf("user %q: %w", id, err)
	}
	return types.UserView{
		UserProfile: u,
		Presence:    model.PresenceOf(u.Online, u.LastSeen, s.now(), s.awayWindow),
	}, nil
}

// Presence derives a user's presence at now.
func (s *Service) Presence(ctx context.Context, userID string, now time.Time) (model.Presence, error) {
	if s == nil || s.catalog == nil {
		return "", ErrInvalidArgument
	}
	u, err := s.catalog.User(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("user %q: %w", userID, err)
	}
	return model.PresenceOf(u.Online, u.LastSeen, now, s.awayWindow), nil
}

// Skills returns the skill catalogue.
func (s *Service) Skills(ctx context.Context) []model.Skill {
	if s == nil || s.catalog == nil {
		return []model.Skill{}
	}
	return s.catalog.Skills(ctx)
}

// Skill returns one skill by ID.
func (s *Service) Skill(ctx context.Context, id string) (model.Skill, error) {
	if s == nil || s.catalog == nil {
		return model.Skill{}, ErrInvalidArgument
	}
	sk, err := s.catalog.Skill(ctx, id)
	if err != nil {
		return model.Skill{}, fmt.Errorf("skill %q: %w", id, err)
	}
	return sk, nil
}

// Facets lists the categories and levels a client can filter by.
func (s *Service) Facets(ctx context.Context) search.Facets {
	return search.FacetsOf(s.Skills(ctx))
}

// SwapHistory partitions a user's swaps and filters them by term.
func (s *Service) SwapHistory(ctx context.Context, userID, term string) (types.SwapHistory, error) {
	if s == nil || s.catalog == nil {
		return types.SwapHistory{}, ErrInvalidArgument
	}
	swaps, err := s.catalog.SwapsFor(ctx, userID)
	if err != nil {
		return types.SwapHistory{}, fmt.Errorf("user %q: %w", userID, err)
	}
	return types.SwapHistory{
		UserID:      userID,
		Term:        term,
		SwapBuckets: search.PartitionSwaps(userID, swaps).Filter(term),
	}, nil
}

// UnreadCount counts a user's unread stored notifications.
func (s *Service) UnreadCount(ctx context.Context, userID string) (int, error) {
	if s == nil || s.catalog == nil {
		return 0, ErrInvalidArgument
	}
	n, err := s.catalog.UnreadNotifications(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("user %q: %w", userID, err)
	}
	return n, nil
}

// Notifications returns a user's stored notifications, newest first.
func (s *Service) Notifications(ctx context.Context, userID string) ([]model.Notification, error) {
	if s == nil || s.catalog == nil {
		return nil, ErrInvalidArgument
	}
	list, err := s.catalog.Notifications(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user %q: %w", userID, err)
	}
	return list, nil
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}
