package api

import (
	"net/http"

	"github.com/okian/skillswap/internal/domain/model"
)

// SwapsHandler serves a user's swap history and stored notifications.
type SwapsHandler struct {
	deps Dependencies
}

// NewSwapsHandler creates a new swaps handler.
func NewSwapsHandler(deps Dependencies) *SwapsHandler {
	return &SwapsHandler{deps: deps}
}

// HandleHistory handles GET /swaps?user_id=&q=.
func (h *SwapsHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query()
	userID, err := requiredParam(v, "user_id")
	if err != nil {
		writeBadParam(w, err)
		return
	}
	hist, err := h.deps.SwapHistory(r.Context(), userID, v.Get("q"))
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, hist)
}

type notificationsResponse struct {
	UserID        string               `json:"user_id"`
	Notifications []model.Notification `json:"notifications"`
	UnreadCount   int                  `json:"unread_count"`
}

// HandleNotifications handles GET /notifications?user_id=.
func (h *SwapsHandler) HandleNotifications(w http.ResponseWriter, r *http.Request) {
	userID, err := requiredParam(r.URL.Query(), "user_id")
	if err != nil {
		writeBadParam(w, err)
		return
	}
	list, err := h.deps.Notifications(r.Context(), userID)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	unread, err := h.deps.UnreadCount(r.Context(), userID)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, notificationsResponse{UserID: userID, Notifications: list, UnreadCount: unread})
}
