// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/skillswap/internal/app"
	"github.com/okian/skillswap/internal/domain/action"
	"github.com/okian/skillswap/internal/domain/model"
	"github.com/okian/skillswap/internal/domain/search"
	"github.com/okian/skillswap/internal/domain/types"
	"github.com/okian/skillswap/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Read operations over the catalogue.
	SearchUsers(ctx context.Context, q search.Query, page types.Page) (types.SearchResult, error)
	Discover(ctx context.Context, term, skill string, page types.Page) (types.SearchResult, error)
	User(ctx context.Context, id string) (types.UserView, error)
	Skills(ctx context.Context) []model.Skill
	Skill(ctx context.Context, id string) (model.Skill, error)
	Facets(ctx context.Context) search.Facets
	SwapHistory(ctx context.Context, userID, term string) (types.SwapHistory, error)
	Notifications(ctx context.Context, userID string) ([]model.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	Conversations(ctx context.Context, userID, term string) (types.ConversationList, error)
	Thread(ctx context.Context, conversationID, viewerID string) (types.Thread, error)
	Reviews(ctx context.Context, userID string) (types.ReviewSummary, error)

	// SubmitAction queues a simulated action. Returns service.ErrBackpressure
	// when the queue is full.
	SubmitAction(ctx context.Context, a action.Action) (types.SubmitResult, error)
	Notices(ctx context.Context, userID string, page types.Page) ([]action.Notice, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler        *HealthHandler
	statsHandler         *StatsHandler
	usersHandler         *UsersHandler
	skillsHandler        *SkillsHandler
	swapsHandler         *SwapsHandler
	conversationsHandler *ConversationsHandler
	actionsHandler       *ActionsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:        NewHealthHandler(statsProvider),
		statsHandler:         NewStatsHandler(statsProvider),
		usersHandler:         NewUsersHandler(deps),
		skillsHandler:        NewSkillsHandler(deps),
		swapsHandler:         NewSwapsHandler(deps),
		conversationsHandler: NewConversationsHandler(deps),
		actionsHandler:       NewActionsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /readyz", MetricsMiddleware(s.healthHandler.HandleReady, "readyz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("GET /users", MetricsMiddleware(s.usersHandler.HandleSearch, "users"))
	mux.HandleFunc("GET /users/{id}", MetricsMiddleware(s.usersHandler.HandleGetUser, "user"))
	mux.HandleFunc("GET /users/{id}/reviews", MetricsMiddleware(s.usersHandler.HandleReviews, "reviews"))
	mux.HandleFunc("GET /discover", MetricsMiddleware(s.usersHandler.HandleDiscover, "discover"))

	mux.HandleFunc("GET /skills", MetricsMiddleware(s.skillsHandler.HandleList, "skills"))
	mux.HandleFunc("GET /skills/{id}", MetricsMiddleware(s.skillsHandler.HandleGet, "skill"))
	mux.HandleFunc("GET /facets", MetricsMiddleware(s.skillsHandler.HandleFacets, "facets"))

	mux.HandleFunc("GET /swaps", MetricsMiddleware(s.swapsHandler.HandleHistory, "swaps"))
	mux.HandleFunc("GET /notifications", MetricsMiddleware(s.swapsHandler.HandleNotifications, "notifications"))

	mux.HandleFunc("GET /conversations", MetricsMiddleware(s.conversationsHandler.HandleList, "conversations"))
	mux.HandleFunc("GET /conversations/{id}/messages", MetricsMiddleware(s.conversationsHandler.HandleMessages, "messages"))

	mux.HandleFunc("POST /actions", MetricsMiddleware(s.actionsHandler.HandlePostAction, "actions"))
	mux.HandleFunc("GET /notices", MetricsMiddleware(s.actionsHandler.HandleNotices, "notices"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the error body and hands code to the metrics middleware.
func writeError(w http.ResponseWriter, status int, code string, err error) {
	if rc, ok := w.(codeRecorder); ok {
		rc.recordCode(code)
	}
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates service error kinds to HTTP statuses.
// Invalid arguments are checked first: a dangling reference inside an
// action wraps both ErrInvalidArgument and ErrNotFound and is a bad request.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, "invalid_argument", err)
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrBackpressure):
		writeError(w, http.StatusTooManyRequests, "backpressure", err)
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
	default:
		logger.Get().Error(ctx, "request failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal", nil)
	}
}
