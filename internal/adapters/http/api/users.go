package api

import (
	"net/http"

	"github.com/okian/skillswap/internal/domain/search"
)

// UsersHandler serves the browse and discovery surfaces and single profiles.
type UsersHandler struct {
	deps Dependencies
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(deps Dependencies) *UsersHandler {
	return &UsersHandler{deps: deps}
}

// HandleSearch handles GET /users.
func (h *UsersHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query()
	page, err := pageParams(v)
	if err != nil {
		writeBadParam(w, err)
		return
	}
	minRating, err := floatParam(v, "min_rating")
	if err != nil {
		writeBadParam(w, err)
		return
	}
	q := search.BrowseQuery(v.Get("q"), v.Get("category"), v.Get("level"))
	q.Skill = v.Get("skill")
	q.MinRating = minRating

	res, err := h.deps.SearchUsers(r.Context(), q, page)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleDiscover handles GET /discover. The term only matches names and skill
// names, as on the landing page.
func (h *UsersHandler) HandleDiscover(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query()
	page, err := pageParams(v)
	if err != nil {
		writeBadParam(w, err)
		return
	}
	res, err := h.deps.Discover(r.Context(), v.Get("q"), v.Get("skill"), page)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// HandleGetUser handles GET /users/{id}.
func (h *UsersHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	view, err := h.deps.User(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleReviews handles GET /users/{id}/reviews.
func (h *UsersHandler) HandleReviews(w http.ResponseWriter, r *http.Request) {
	sum, err := h.deps.Reviews(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
