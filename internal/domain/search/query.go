// Package search filters an in-memory roster of profiles.
//
// Search is a pure, order-preserving filter: the result is always a
// subsequence of the input roster. It performs a linear scan over users and
// their skills; there is no index and no ranking.
package search

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// MaxRating is the upper bound of a profile rating.
const MaxRating = 5.0

// AllValues is the sentinel the UI uses for "no filter" on category and level.
const AllValues = "all"

// TermFields selects which profile fields the free-text term is matched against.
type TermFields uint8

// Term fields.
const (
	FieldName TermFields = 1 << iota
	FieldLocation
	FieldSkillName
	FieldSkillCategory

	// AllFields is the category-aware browse behaviour and the zero-value default.
	AllFields = FieldName | FieldLocation | FieldSkillName | FieldSkillCategory
	// DiscoveryFields matches names and skill names only.
	DiscoveryFields = FieldName | FieldSkillName
)

// Has reports whether f includes every bit of other.
func (f TermFields) Has(other TermFields) bool { return f&other == other }

// Query combines a free-text term with optional structured filters.
// The term is OR-ed across the selected fields; every other set filter is AND-ed.
type Query struct {
	// Term is matched case-insensitively as a substring. Empty matches everyone.
	Term string `json:"term,omitempty"`
	// Category must equal a skill's category exactly. Empty or "all" is unset.
	Category string `json:"category,omitempty"`
	// Level must equal a skill's level exactly. Empty or "all" is unset.
	Level string `json:"level,omitempty"`
	// Skill pins an exact skill name. Empty is unset.
	Skill string `json:"skill,omitempty"`
	// MinRating keeps profiles rated at least this much. Zero is unset.
	MinRating float64 `json:"min_rating,omitempty"`
	// Fields restricts the term; zero means AllFields.
	Fields TermFields `json:"fields,omitempty"`
}

// BrowseQuery builds the query used by the browse page.
func BrowseQuery(term, category, level string) Query {
	return Query{Term: term, Category: category, Level: level, Fields: AllFields}
}

// DiscoveryQuery builds the query used by the landing-page discovery list.
func DiscoveryQuery(term, skill string) Query {
	return Query{Term: term, Skill: skill, Fields: DiscoveryFields}
}

// Normalize maps the "all" sentinel to unset and fills in default fields.
func (q Query) Normalize() Query {
	if strings.EqualFold(q.Category, AllValues) {
		q.Category = ""
	}
	if strings.EqualFold(q.Level, AllValues) {
		q.Level = ""
	}
	if q.Fields == 0 {
		q.Fields = AllFields
	}
	return q
}

// Validate rejects queries that cannot be evaluated. Unknown categories and
// levels are valid: they simply match nothing.
func (q Query) Validate() error {
	switch {
	case math.IsNaN(q.MinRating) || math.IsInf(q.MinRating, 0):
		return fmt.Errorf("%w: min_rating must be a finite number", ErrInvalidArgument)
	case q.MinRating < 0 || q.MinRating > MaxRating:
		return fmt.Errorf("%w: min_rating must be between 0 and %.0f", ErrInvalidArgument, MaxRating)
	case q.Fields&^AllFields != 0:
		return fmt.Errorf("%w: unknown term fields %#x", ErrInvalidArgument, uint8(q.Fields))
	}
	return nil
}

// Key returns a stable string identifying the normalized query.
func (q Query) Key() string {
	n := q.Normalize()
	v := url.Values{}
	v.Set("t", n.Term)
	v.Set("c", n.Category)
	v.Set("l", n.Level)
	v.Set("s", n.Skill)
	v.Set("r", strconv.FormatFloat(n.MinRating, 'f', -1, 64))
	v.Set("f", strconv.Itoa(int(n.Fields)))
	return v.Encode()
}
