package service

import (
	"errors"

	"github.com/okian/skillswap/internal/adapters/repository"
	"github.com/okian/skillswap/internal/domain/search"
)

// Error kinds returned by Service. Callers match them with errors.Is.
var (
	// ErrInvalidArgument marks a malformed query or action.
	ErrInvalidArgument = search.ErrInvalidArgument
	// ErrNotFound marks an unknown user or skill.
	ErrNotFound = repository.ErrNotFound
	// ErrNotAllowed marks an action the actor may not take, such as accepting
	// a swap they sent. It is always wrapped with ErrInvalidArgument.
	ErrNotAllowed = errors.New("action not allowed")
	// ErrBackpressure is returned when the action queue is full.
	ErrBackpressure = errors.New("action queue full")
	// ErrNotStarted is returned for actions submitted outside Start/Stop.
	ErrNotStarted = errors.New("service not started")
)
