package search

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/okian/skillswap/internal/domain/model"
)

// ConversationsFor returns the conversations userID takes part in, in input
// order.
func ConversationsFor(userID string, convs []model.Conversation) []model.Conversation {
	out := make([]model.Conversation, 0)
	for _, c := range convs {
		if c.HasParticipant(userID) {
			out = append(out, c)
		}
	}
	return out
}

// FilterConversations keeps the conversations in which some participant
// other than viewerID has a name containing term, ignoring case. An empty
// term keeps all.
func FilterConversations(convs []model.Conversation, viewerID, term string) []model.Conversation {
	out := make([]model.Conversation, 0, len(convs))
	if term == "" {
		return append(out, convs...)
	}
	fold := cases.Fold()
	needle := fold.String(term)
	for _, c := range convs {
		for _, p := range c.Participants {
			if p.ID != viewerID && strings.Contains(fold.String(p.Name), needle) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}
