package search

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/okian/skillswap/internal/domain/model"
)

// Search returns the users matching q in their original relative order.
// A nil or empty roster yields an empty, non-nil result. The roster is not
// modified and the returned profiles are copies of the roster entries.
//
// q is evaluated as given: a MinRating outside [0, MaxRating] is not
// rejected here. Use SearchValidated for queries that come from callers.
func Search(users []model.UserProfile, q Query) []model.UserProfile {
	m := newMatcher(q)
	out := make([]model.UserProfile, 0, len(users))
	for i := range users {
		if m.match(&users[i]) {
			out = append(out, users[i])
		}
	}
	return out
}

// SearchValidated rejects q with ErrInvalidArgument when Validate fails and
// otherwise behaves like Search.
func SearchValidated(users []model.UserProfile, q Query) ([]model.UserProfile, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return Search(users, q), nil
}

// Match reports whether a single profile satisfies q.
func Match(u model.UserProfile, q Query) bool {
	return newMatcher(q).match(&u)
}

// matcher holds a query prepared for repeated evaluation. A cases.Caser is
// stateful, so each matcher owns one and must not be shared across goroutines.
type matcher struct {
	q      Query
	fold   cases.Caser
	term   string
	fields TermFields
}

func newMatcher(q Query) *matcher {
	q = q.Normalize()
	m := &matcher{q: q, fold: cases.Fold(), fields: q.Fields}
	if q.Term != "" {
		m.term = m.fold.String(q.Term)
	}
	return m
}

func (m *matcher) match(u *model.UserProfile) bool {
	if m.q.MinRating > 0 && u.Rating < m.q.MinRating {
		return false
	}
	if m.q.Category != "" && !anySkill(u, func(s *model.Skill) bool { return s.Category == m.q.Category }) {
		return false
	}
	if m.q.Level != "" && !anySkill(u, func(s *model.Skill) bool { return string(s.Level) == m.q.Level }) {
		return false
	}
	if m.q.Skill != "" && !anySkill(u, func(s *model.Skill) bool { return s.Name == m.q.Skill }) {
		return false
	}
	return m.matchTerm(u)
}

func (m *matcher) matchTerm(u *model.UserProfile) bool {
	if m.q.Term == "" {
		return true
	}
	if m.fields.Has(FieldName) && m.contains(u.Name) {
		return true
	}
	if m.fields.Has(FieldLocation) && m.contains(u.Location) {
		return true
	}
	return anySkill(u, func(s *model.Skill) bool {
		return (m.fields.Has(FieldSkillName) && m.contains(s.Name)) ||
			(m.fields.Has(FieldSkillCategory) && m.contains(s.Category))
	})
}

func (m *matcher) contains(field string) bool {
	if field == "" {
		return false
	}
	return strings.Contains(m.fold.String(field), m.term)
}

// anySkill reports whether pred holds for any offered or wanted skill.
func anySkill(u *model.UserProfile, pred func(*model.Skill) bool) bool {
	for i := range u.SkillsOffered {
		if pred(&u.SkillsOffered[i]) {
			return true
		}
	}
	for i := range u.SkillsWanted {
		if pred(&u.SkillsWanted[i]) {
			return true
		}
	}
	return false
}
