package api

import (
	"net/http"
)

// ConversationsHandler serves a user's conversations and their messages.
type ConversationsHandler struct {
	deps Dependencies
}

// NewConversationsHandler creates a new conversations handler.
func NewConversationsHandler(deps Dependencies) *ConversationsHandler {
	return &ConversationsHandler{deps: deps}
}

// HandleList handles GET /conversations?user_id=&q=.
func (h *ConversationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query()
	userID, err := requiredParam(v, "user_id")
	if err != nil {
		writeBadParam(w, err)
		return
	}
	list, err := h.deps.Conversations(r.Context(), userID, v.Get("q"))
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleMessages handles GET /conversations/{id}/messages?user_id=. When
// user_id is set, only a participant can read the thread.
func (h *ConversationsHandler) HandleMessages(w http.ResponseWriter, r *http.Request) {
	th, err := h.deps.Thread(r.Context(), r.PathValue("id"), r.URL.Query().Get("user_id"))
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, th)
}
