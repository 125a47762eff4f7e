package api

import (
	"context"
	"net/http"

	"github.com/Teenu24/employee-recognition-api/internal/domain/model"
)

// UserDependencies defines the interface for directory user reads.
type UserDependencies interface {
	Identity
	ListUsers(ctx context.Context, teamID string) []model.User
}

// userView mirrors the JSON shape of a directory user.
type userView struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	TeamID string `json:"team_id,omitempty"`
}

func renderUser(u model.User) userView {
	return userView{
		ID:     u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   string(u.Role),
		TeamID: u.TeamID,
	}
}

func renderUsers(users []model.User) []userView {
	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, renderUser(u))
	}
	return out
}

// UsersHandler handles directory user requests.
type UsersHandler struct {
	deps UserDependencies
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(deps UserDependencies) *UsersHandler {
	return &UsersHandler{deps: deps}
}

// HandleListUsers handles GET /users[?team_id=] requests.
func (h *UsersHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_users"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	if _, ok := authenticate(h.deps, op, w, r); !ok {
		return
	}

	users := h.deps.ListUsers(r.Context(), r.URL.Query().Get("team_id"))
	writeJSON(w, http.StatusOK, renderUsers(users))
}
