// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Teenu24/employee-recognition-api/internal/adapters/pubsub"
	"github.com/Teenu24/employee-recognition-api/internal/adapters/repository"
	service "github.com/Teenu24/employee-recognition-api/internal/app"
	"github.com/Teenu24/employee-recognition-api/internal/domain/access"
	"github.com/Teenu24/employee-recognition-api/internal/domain/model"
)

// CreateInput mirrors the service-level creation payload.
type CreateInput = service.CreateInput

// TeamAnalytics mirrors the composed analytics view.
type TeamAnalytics = service.TeamAnalytics

// Identity resolves the caller id carried on every request.
type Identity interface {
	Authenticate(ctx context.Context, userID string) (model.User, error)
}

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Identity

	// Directory reads.
	User(ctx context.Context, id string) (model.User, bool)
	Team(ctx context.Context, id string) (model.Team, bool)
	ListUsers(ctx context.Context, teamID string) []model.User
	ListTeams(ctx context.Context) []model.Team
	TeamMembers(ctx context.Context, teamID string) []model.User

	// Feed reads and writes.
	ListRecognitions(ctx context.Context, viewer model.User, filter access.Filter) []model.Recognition
	MyRecognitions(ctx context.Context, viewer model.User) []model.Recognition
	SenderRevealed(ctx context.Context, rec model.Recognition, viewer model.User) bool
	CreateRecognition(ctx context.Context, viewer model.User, input CreateInput) (model.Recognition, error)

	// Analytics reads.
	TeamAnalytics(ctx context.Context, viewer model.User, teamID string) (TeamAnalytics, error)
	OrganizationAnalytics(ctx context.Context, viewer model.User) ([]TeamAnalytics, error)

	// Profile writes.
	UpdateProfile(ctx context.Context, viewer model.User, name, teamID *string) (model.User, error)

	// Live streams.
	SubscribeRecognitionsFor(ctx context.Context, userID string) *pubsub.Subscription
	SubscribeTeamFeed(ctx context.Context, teamID string) *pubsub.Subscription
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler        *HealthHandler
	statsHandler         *StatsHandler
	usersHandler         *UsersHandler
	teamsHandler         *TeamsHandler
	recognitionsHandler  *RecognitionsHandler
	analyticsHandler     *AnalyticsHandler
	profileHandler       *ProfileHandler
	subscriptionsHandler *SubscriptionsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:        NewHealthHandler(),
		statsHandler:         NewStatsHandler(statsProvider),
		usersHandler:         NewUsersHandler(deps),
		teamsHandler:         NewTeamsHandler(deps),
		recognitionsHandler:  NewRecognitionsHandler(deps),
		analyticsHandler:     NewAnalyticsHandler(deps),
		profileHandler:       NewProfileHandler(deps),
		subscriptionsHandler: NewSubscriptionsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/me", MetricsMiddleware(s.profileHandler.HandleMe, "me"))
	mux.HandleFunc("/profile", MetricsMiddleware(s.profileHandler.HandlePatchProfile, "profile"))
	mux.HandleFunc("/users", MetricsMiddleware(s.usersHandler.HandleListUsers, "users"))
	mux.HandleFunc("/teams", MetricsMiddleware(s.teamsHandler.HandleListTeams, "teams"))
	mux.HandleFunc("/recognitions", MetricsMiddleware(s.recognitionsHandler.HandleRecognitions, "recognitions"))
	mux.HandleFunc("/recognitions/mine", MetricsMiddleware(s.recognitionsHandler.HandleMine, "recognitions_mine"))
	mux.HandleFunc("/analytics/team/", MetricsMiddleware(s.analyticsHandler.HandleTeam, "analytics_team"))
	mux.HandleFunc("/analytics/organization", MetricsMiddleware(s.analyticsHandler.HandleOrganization, "analytics_organization"))
	mux.HandleFunc("/subscriptions/recognitions", s.subscriptionsHandler.HandleRecognitionStream)
	mux.HandleFunc("/subscriptions/team-feed", s.subscriptionsHandler.HandleTeamFeedStream)
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

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates domain failures to HTTP status codes.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, access.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "unauthenticated", Wrap(op, err))
	case errors.Is(err, access.ErrUnauthorized):
		writeError(w, http.StatusForbidden, "forbidden", Wrap(op, err))
	case errors.Is(err, repository.ErrEmptyMessage),
		errors.Is(err, repository.ErrSelfRecognition):
		writeError(w, http.StatusBadRequest, "validation_failed", Wrap(op, err))
	case errors.Is(err, repository.ErrRecipientNotFound),
		errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrTeamNotFound):
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

// callerID extracts the caller identity from request headers: X-User-Id
// first, then a bearer token carrying the id.
func callerID(r *http.Request) string {
	if id := r.Header.Get("X-User-Id"); id != "" {
		return id
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// authenticate resolves the caller or writes a 401 and reports failure.
func authenticate(identity Identity, op string, w http.ResponseWriter, r *http.Request) (model.User, bool) {
	viewer, err := identity.Authenticate(r.Context(), callerID(r))
	if err != nil {
		writeServiceError(w, op, err)
		return model.User{}, false
	}
	return viewer, true
}
