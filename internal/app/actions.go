package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/okian/skillswap/internal/adapters/mq/queue"
	"github.com/okian/skillswap/internal/domain/action"
	"github.com/okian/skillswap/internal/domain/model"
	"github.com/okian/skillswap/internal/domain/types"
	"github.com/okian/skillswap/pkg/logger"
	"github.com/okian/skillswap/pkg/metrics"
)

// SubmitAction validates a, drops it if its ID was already submitted, and
// queues it for delivery. A duplicate is acknowledged, not rejected.
// Submitting never changes the catalogue.
func (s *Service) SubmitAction(ctx context.Context, a action.Action) (types.SubmitResult, error) { //nolint:gocritic // hugeParam
	if s == nil || s.catalog == nil {
		return types.SubmitResult{}, ErrInvalidArgument
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return types.SubmitResult{}, ErrNotStarted
	}

	a = action.WithDefaults(a, s.now())
	if err := s.validator.Validate(a); err != nil {
		metrics.RecordActionRejected("invalid")
		return types.SubmitResult{}, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if err := s.checkReferences(ctx, a); err != nil {
		reason := "unknown_reference"
		if errors.Is(err, ErrNotAllowed) {
			reason = "not_allowed"
		}
		metrics.RecordActionRejected(reason)
		return types.SubmitResult{}, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	if s.deduper.SeenAndRecord(ctx, a.ID) {
		metrics.RecordActionDuplicate()
		s.logger.Debug(ctx, "duplicate action", logger.String("action_id", a.ID))
		return types.SubmitResult{ActionID: a.ID, Status: types.SubmitDuplicate}, nil
	}

	if err := s.queue.Enqueue(ctx, a); err != nil {
		// Let the client retry the same ID once the queue drains.
		s.deduper.Unrecord(ctx, a.ID)
		switch {
		case errors.Is(err, queue.ErrFull):
			metrics.RecordActionRejected("backpressure")
			return types.SubmitResult{}, ErrBackpressure
		case errors.Is(err, queue.ErrClosed):
			metrics.RecordActionRejected("stopped")
			return types.SubmitResult{}, ErrNotStarted
		default:
			metrics.RecordActionRejected("enqueue_error")
			return types.SubmitResult{}, fmt.Errorf("enqueue action %s: %w", a.ID, err)
		}
	}

	metrics.RecordActionAccepted(string(a.Kind))
	s.logger.Debug(ctx, "action accepted",
		logger.String("action_id", a.ID),
		logger.String("kind", string(a.Kind)),
	)
	return types.SubmitResult{ActionID: a.ID, Status: types.SubmitAccepted}, nil
}

// checkReferences resolves the users, skills and swap an action names and
// checks the actor may act on them. A swap request must offer one of the
// actor's skills for one of the target's. Only the recipient of a pending swap
// may accept or decline it.
func (s *Service) checkReferences(ctx context.Context, a action.Action) error { //nolint:gocritic // hugeParam
	actor, err := s.catalog.User(ctx, a.ActorID)
	if err != nil {
		return fmt.Errorf("user %q: %w", a.ActorID, err)
	}
	target, err := s.catalog.User(ctx, a.TargetID)
	if err != nil {
		return fmt.Errorf("user %q: %w", a.TargetID, err)
	}

	switch a.Kind {
	case action.KindSwapRequest:
		for _, id := range []string{a.OfferedSkillID, a.RequestedSkillID} {
			if _, err := s.catalog.Skill(ctx, id); err != nil {
				return fmt.Errorf("skill %q: %w", id, err)
			}
		}
		if !actor.Offers(a.OfferedSkillID) {
			return fmt.Errorf("%w: %s does not offer skill %q", ErrNotAllowed, actor.ID, a.OfferedSkillID)
		}
		if !target.Offers(a.RequestedSkillID) {
			return fmt.Errorf("%w: %s does not offer skill %q", ErrNotAllowed, target.ID, a.RequestedSkillID)
		}
	case action.KindSwapAccept, action.KindSwapDecline:
		swaps, err := s.catalog.SwapsFor(ctx, a.ActorID)
		if err != nil {
			return err
		}
		idx := slices.IndexFunc(swaps, func(sw model.SwapRequest) bool {
			return sw.ID == a.SwapID && sw.Involves(a.TargetID)
		})
		if idx < 0 {
			return fmt.Errorf("swap %q between %s and %s: %w", a.SwapID, a.ActorID, a.TargetID, ErrNotFound)
		}
		sw := swaps[idx]
		if sw.To.ID != a.ActorID {
			return fmt.Errorf("%w: swap %q was sent by %s", ErrNotAllowed, sw.ID, a.ActorID)
		}
		if sw.Status != model.SwapPending {
			return fmt.Errorf("%w: swap %q is %s", ErrNotAllowed, sw.ID, sw.Status)
		}
	}
	return nil
}

// Notices returns one page of a user's delivered notices, newest first. An
// unset limit reads a full page.
func (s *Service) Notices(ctx context.Context, userID string, page types.Page) ([]action.Notice, error) {
	if s == nil || s.catalog == nil {
		return nil, ErrInvalidArgument
	}
	if _, err := s.catalog.User(ctx, userID); err != nil {
		return nil, fmt.Errorf("user %q: %w", userID, err)
	}
	if page.Limit <= 0 {
		page.Limit = s.maxPageSize
	}
	page = page.Normalize(s.maxPageSize)
	return s.inbox.Recent(userID, page.Offset, page.Limit), nil
}
