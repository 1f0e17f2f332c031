package search

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/okian/skillswap/internal/domain/model"
)

// SwapBuckets is a user's swap history split the way the swaps page shows it.
// A swap can appear in more than one bucket.
type SwapBuckets struct {
	Received        []model.SwapRequest `json:"received"`
	Sent            []model.SwapRequest `json:"sent"`
	Active          []model.SwapRequest `json:"active"`
	Completed       []model.SwapRequest `json:"completed"`
	PendingReceived int                 `json:"pending_received"`
}

// SwapsFor returns the swaps userID takes part in, in input order.
func SwapsFor(userID string, swaps []model.SwapRequest) []model.SwapRequest {
	out := make([]model.SwapRequest, 0)
	for _, s := range swaps {
		if s.Involves(userID) {
			out = append(out, s)
		}
	}
	return out
}

// PartitionSwaps buckets the swaps involving userID. Active holds accepted and
// active swaps; PendingReceived counts pending requests addressed to the user.
func PartitionSwaps(userID string, swaps []model.SwapRequest) SwapBuckets {
	b := SwapBuckets{
		Received:  []model.SwapRequest{},
		Sent:      []model.SwapRequest{},
		Active:    []model.SwapRequest{},
		Completed: []model.SwapRequest{},
	}
	for _, s := range SwapsFor(userID, swaps) {
		if s.From.ID == userID {
			b.Sent = append(b.Sent, s)
		}
		if s.To.ID == userID {
			b.Received = append(b.Received, s)
			if s.Status == model.SwapPending {
				b.PendingReceived++
			}
		}
		switch s.Status {
		case model.SwapActive, model.SwapAccepted:
			b.Active = append(b.Active, s)
		case model.SwapCompleted:
			b.Completed = append(b.Completed, s)
		}
	}
	return b
}

// Filter applies FilterSwaps to every bucket. PendingReceived is left as is.
func (b SwapBuckets) Filter(term string) SwapBuckets {
	return SwapBuckets{
		Received:        FilterSwaps(b.Received, term),
		Sent:            FilterSwaps(b.Sent, term),
		Active:          FilterSwaps(b.Active, term),
		Completed:       FilterSwaps(b.Completed, term),
		PendingReceived: b.PendingReceived,
	}
}

// FilterSwaps keeps swaps whose offered skill, requested skill, sender or
// recipient name contains term, ignoring case. An empty term keeps all.
func FilterSwaps(swaps []model.SwapRequest, term string) []model.SwapRequest {
	out := make([]model.SwapRequest, 0, len(swaps))
	if term == "" {
		return append(out, swaps...)
	}
	fold := cases.Fold()
	needle := fold.String(term)
	for _, s := range swaps {
		for _, field := range [...]string{s.OfferedSkill.Name, s.RequestedSkill.Name, s.From.Name, s.To.Name} {
			if field != "" && strings.Contains(fold.String(field), needle) {
				out = append(out, s)
				break
			}
		}
	}
	return out
}
