package service

import (
	"context"
	"fmt"

	"github.com/okian/skillswap/internal/domain/model"
	"github.com/okian/skillswap/internal/domain/search"
	"github.com/okian/skillswap/internal/domain/types"
)

// Conversations lists the conversations userID takes part in whose other
// participants' names contain term.
func (s *Service) Conversations(ctx context.Context, userID, term string) (types.ConversationList, error) {
	if s == nil || s.catalog == nil {
		return types.ConversationList{}, ErrInvalidArgument
	}
	convs, err := s.catalog.ConversationsFor(ctx, userID)
	if err != nil {
		return types.ConversationList{}, fmt.Errorf("user %q: %w", userID, err)
	}
	return types.ConversationList{
		UserID:        userID,
		Term:          term,
		Conversations: search.FilterConversations(convs, userID, term),
	}, nil
}

// Thread returns a conversation and its messages. A non-empty viewerID must
// be a participant; anyone else is told the conversation does not exist.
func (s *Service) Thread(ctx context.Context, conversationID, viewerID string) (types.Thread, error) {
	if s == nil || s.catalog == nil {
		return types.Thread{}, ErrInvalidArgument
	}
	c, err := s.catalog.Conversation(ctx, conversationID)
	if err != nil {
		return types.Thread{}, fmt.Errorf("conversation %q: %w", conversationID, err)
	}
	if viewerID != "" && !c.HasParticipant(viewerID) {
		return types.Thread{}, fmt.Errorf("conversation %q for %s: %w", conversationID, viewerID, ErrNotFound)
	}
	msgs, err := s.catalog.Messages(ctx, conversationID)
	if err != nil {
		return types.Thread{}, fmt.Errorf("conversation %q: %w", conversationID, err)
	}
	return types.Thread{Conversation: c, Messages: msgs}, nil
}

// Reviews returns the reviews a user received along with their completed and
// active swap counts.
func (s *Service) Reviews(ctx context.Context, userID string) (types.ReviewSummary, error) {
	if s == nil || s.catalog == nil {
		return types.ReviewSummary{}, ErrInvalidArgument
	}
	reviews, err := s.catalog.ReviewsFor(ctx, userID)
	if err != nil {
		return types.ReviewSummary{}, fmt.Errorf("user %q: %w", userID, err)
	}
	swaps, err := s.catalog.SwapsFor(ctx, userID)
	if err != nil {
		return types.ReviewSummary{}, fmt.Errorf("user %q: %w", userID, err)
	}
	sum := types.ReviewSummary{UserID: userID, Reviews: reviews}
	for _, sw := range swaps {
		switch sw.Status {
		case model.SwapCompleted:
			sum.CompletedSwaps++
		case model.SwapActive:
			sum.ActiveSwaps++
		}
	}
	return sum, nil
}
