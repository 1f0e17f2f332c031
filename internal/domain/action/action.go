// Package action describes the simulated user actions a client can submit
// and the notices they produce. Actions never change the catalogue.
package action

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Kind names what an action does.
type Kind string

// Action kinds.
const (
	KindSwapRequest Kind = "swap_request"
	KindSwapAccept  Kind = "swap_accept"
	KindSwapDecline Kind = "swap_decline"
	KindMessage     Kind = "message"
)

// Kinds returns every action kind.
func Kinds() []Kind {
	return []Kind{KindSwapRequest, KindSwapAccept, KindSwapDecline, KindMessage}
}

// ErrInvalidAction is returned, wrapped, for a payload that fails validation.
var ErrInvalidAction = errors.New("invalid action")

// Action is a submitted user intent. ID doubles as the idempotency key; an
// empty ID is replaced with a generated one on submission.
type Action struct {
	ID               string    `json:"id" validate:"max=128"`
	Kind             Kind      `json:"kind" validate:"required,oneof=swap_request swap_accept swap_decline message"`
	ActorID          string    `json:"actor_id" validate:"required"`
	TargetID         string    `json:"target_id" validate:"required,nefield=ActorID"`
	SwapID           string    `json:"swap_id,omitempty" validate:"required_if=Kind swap_accept,required_if=Kind swap_decline"`
	OfferedSkillID   string    `json:"offered_skill_id,omitempty" validate:"required_if=Kind swap_request"`
	RequestedSkillID string    `json:"requested_skill_id,omitempty" validate:"required_if=Kind swap_request"`
	Message          string    `json:"message,omitempty" validate:"max=1000"`
	SubmittedAt      time.Time `json:"submitted_at"`
}

// Validator checks action payloads.
type Validator struct {
	v *validator.Validate
}

// NewValidator creates a Validator. Messages and swap requests must carry a
// message with some non-space text.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterStructValidation(validateMessage, Action{})
	return &Validator{v: v}
}

func validateMessage(sl validator.StructLevel) {
	a, ok := sl.Current().Interface().(Action)
	if !ok {
		return
	}
	if a.Kind != KindMessage && a.Kind != KindSwapRequest {
		return
	}
	if strings.TrimSpace(a.Message) == "" {
		sl.ReportError(a.Message, "Message", "Message", "required", "")
	}
}

// Validate checks the shape of a. It does not check that referenced users,
// skills or swaps exist.
func (v *Validator) Validate(a Action) error {
	if err := v.v.Struct(a); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", ErrInvalidAction, err)
		}
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", ErrInvalidAction, strings.Join(fields, ", "))
	}
	return nil
}

// WithDefaults fills a generated ID and the submission time when missing.
func WithDefaults(a Action, now time.Time) Action { //nolint:gocritic // hugeParam
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.SubmittedAt.IsZero() {
		a.SubmittedAt = now
	}
	return a
}

// Notice is the transient result of delivering an action. It is shown to the
// acting user and lives only in process memory.
type Notice struct {
	ID        string    `json:"id"`
	ActionID  string    `json:"action_id"`
	UserID    string    `json:"user_id"`
	Kind      Kind      `json:"kind"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
