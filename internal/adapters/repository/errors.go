package repository

import "errors"

// ErrNotFound is returned for lookups of unknown users, skills or conversations.
var ErrNotFound = errors.New("not found")
