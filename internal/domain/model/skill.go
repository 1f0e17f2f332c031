// Package model contains the catalogue records shared between layers.
//
// All values are reference data: they are built once when the dataset is
// loaded and never mutated afterwards.
package model

import "strings"

// Level is a skill proficiency level.
type Level string

// Proficiency levels in ascending order.
const (
	Beginner     Level = "Beginner"
	Intermediate Level = "Intermediate"
	Advanced     Level = "Advanced"
	Expert       Level = "Expert"
)

// Levels returns every level in ascending order.
func Levels() []Level {
	return []Level{Beginner, Intermediate, Advanced, Expert}
}

// Valid reports whether l is one of the known levels, spelled exactly.
func (l Level) Valid() bool {
	switch l {
	case Beginner, Intermediate, Advanced, Expert:
		return true
	}
	return false
}

// ParseLevel resolves s case-insensitively to a known level.
func ParseLevel(s string) (Level, bool) {
	s = strings.TrimSpace(s)
	for _, known := range Levels() {
		if strings.EqualFold(s, string(known)) {
			return known, true
		}
	}
	return "", false
}

// Skill is a named competency with a category and proficiency level.
type Skill struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Level       Level  `json:"level"`
	Description string `json:"description,omitempty"`
}
