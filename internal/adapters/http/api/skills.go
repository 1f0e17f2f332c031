package api

import (
	"net/http"

	"github.com/okian/skillswap/internal/domain/model"
)

// SkillsHandler serves the skill catalogue.
type SkillsHandler struct {
	deps Dependencies
}

// NewSkillsHandler creates a new skills handler.
func NewSkillsHandler(deps Dependencies) *SkillsHandler {
	return &SkillsHandler{deps: deps}
}

type skillsResponse struct {
	Skills []model.Skill `json:"skills"`
}

// HandleList handles GET /skills.
func (h *SkillsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, skillsResponse{Skills: h.deps.Skills(r.Context())})
}

// HandleGet handles GET /skills/{id}.
func (h *SkillsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	sk, err := h.deps.Skill(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, sk)
}

// HandleFacets handles GET /facets.
func (h *SkillsHandler) HandleFacets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.Facets(r.Context()))
}
