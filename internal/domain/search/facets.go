package search

import "github.com/okian/skillswap/internal/domain/model"

// Facets lists the values a UI can offer for the structured filters.
type Facets struct {
	Categories []string      `json:"categories"`
	Levels     []model.Level `json:"levels"`
}

// Categories returns the distinct skill categories in first-seen order.
func Categories(skills []model.Skill) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s.Category == "" {
			continue
		}
		if _, ok := seen[s.Category]; ok {
			continue
		}
		seen[s.Category] = struct{}{}
		out = append(out, s.Category)
	}
	return out
}

// FacetsOf builds the filter facets for a skill catalogue.
func FacetsOf(skills []model.Skill) Facets {
	return Facets{Categories: Categories(skills), Levels: model.Levels()}
}
