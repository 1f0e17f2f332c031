package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/okian/skillswap/internal/domain/action"
	"github.com/okian/skillswap/internal/domain/types"
)

const maxActionBody = 64 << 10

// ActionsHandler accepts simulated actions and serves delivered notices.
type ActionsHandler struct {
	deps Dependencies
}

// NewActionsHandler creates a new actions handler.
func NewActionsHandler(deps Dependencies) *ActionsHandler {
	return &ActionsHandler{deps: deps}
}

// actionRequest mirrors the OpenAPI schema for POST /actions. The submission
// time is always stamped by the server.
type actionRequest struct {
	ID               string `json:"id"`
	Kind             string `json:"kind"`
	ActorID          string `json:"actor_id"`
	TargetID         string `json:"target_id"`
	SwapID           string `json:"swap_id"`
	OfferedSkillID   string `json:"offered_skill_id"`
	RequestedSkillID string `json:"requested_skill_id"`
	Message          string `json:"message"`
}

func (a actionRequest) toAction() action.Action {
	return action.Action{
		ID:               a.ID,
		Kind:             action.Kind(a.Kind),
		ActorID:          a.ActorID,
		TargetID:         a.TargetID,
		SwapID:           a.SwapID,
		OfferedSkillID:   a.OfferedSkillID,
		RequestedSkillID: a.RequestedSkillID,
		Message:          a.Message,
	}
}

// HandlePostAction handles POST /actions. A fresh action is acknowledged
// with 202, a repeated ID with 200.
func (h *ActionsHandler) HandlePostAction(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxActionBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %v", ErrBadRequest, err))
		return
	}
	if dec.More() {
		writeError(w, http.StatusBadRequest, "bad_request", errors.New("request body must be a single JSON object"))
		return
	}

	res, err := h.deps.SubmitAction(r.Context(), req.toAction())
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	status := http.StatusAccepted
	if res.Status == types.SubmitDuplicate {
		status = http.StatusOK
	}
	writeJSON(w, status, res)
}

type noticesResponse struct {
	UserID  string          `json:"user_id"`
	Notices []action.Notice `json:"notices"`
}

// HandleNotices handles GET /notices?user_id=&limit=&offset=.
func (h *ActionsHandler) HandleNotices(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query()
	userID, err := requiredParam(v, "user_id")
	if err != nil {
		writeBadParam(w, err)
		return
	}
	page, err := pageParams(v)
	if err != nil {
		writeBadParam(w, err)
		return
	}
	list, err := h.deps.Notices(r.Context(), userID, page)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, noticesResponse{UserID: userID, Notices: list})
}
