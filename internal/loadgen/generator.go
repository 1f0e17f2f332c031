package loadgen

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/okian/skillswap/internal/domain/action"
	"github.com/okian/skillswap/internal/domain/model"
)

// payload mirrors the POST /actions request body.
type payload struct {
	ID               string      `json:"id"`
	Kind             action.Kind `json:"kind"`
	ActorID          string      `json:"actor_id"`
	TargetID         string      `json:"target_id"`
	OfferedSkillID   string      `json:"offered_skill_id,omitempty"`
	RequestedSkillID string      `json:"requested_skill_id,omitempty"`
	Message          string      `json:"message,omitempty"`
}

// generate builds n actions between distinct users of the roster. Roughly a
// dupShare of them resend an earlier action verbatim.
func generate(users []model.UserProfile, n int, dupShare float64, rnd *rand.Rand) ([]payload, error) {
	if len(users) < 2 {
		return nil, fmt.Errorf("%w: roster has %d", ErrTooFewUsers, len(users))
	}
	out := make([]payload, 0, n)
	for i := 0; i < n; i++ {
		if i > 0 && rnd.Float64() < dupShare {
			out = append(out, out[rnd.IntN(i)])
			continue
		}
		ai := rnd.IntN(len(users))
		ti := rnd.IntN(len(users) - 1)
		if ti >= ai {
			ti++
		}
		out = append(out, newAction(users[ai], users[ti], rnd))
	}
	return out, nil
}

func newAction(actor, target model.UserProfile, rnd *rand.Rand) payload {
	p := payload{ID: "lg-" + uuid.NewString(), ActorID: actor.ID, TargetID: target.ID}
	if len(actor.SkillsOffered) > 0 && len(target.SkillsOffered) > 0 && rnd.IntN(2) == 0 {
		p.Kind = action.KindSwapRequest
		p.OfferedSkillID = actor.SkillsOffered[rnd.IntN(len(actor.SkillsOffered))].ID
		p.RequestedSkillID = target.SkillsOffered[rnd.IntN(len(target.SkillsOffered))].ID
		p.Message = fmt.Sprintf("Hi %s, want to swap skill %s for %s?", target.Name, p.OfferedSkillID, p.RequestedSkillID)
		return p
	}
	p.Kind = action.KindMessage
	p.Message = fmt.Sprintf("Hi %s, fancy a skill swap?", target.Name)
	return p
}
