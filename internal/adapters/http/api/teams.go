package api

import (
	"context"
	"net/http"

	"github.com/Teenu24/employee-recognition-api/internal/domain/model"
)

// TeamDependencies defines the interface for directory team reads.
type TeamDependencies interface {
	Identity
	ListTeams(ctx context.Context) []model.Team
	TeamMembers(ctx context.Context, teamID string) []model.User
}

// teamView mirrors the JSON shape of a team, with membership derived
// from the user directory at read time.
type teamView struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Members []userView `json:"members"`
}

// TeamsHandler handles directory team requests.
type TeamsHandler struct {
	deps TeamDependencies
}

// NewTeamsHandler creates a new teams handler.
func NewTeamsHandler(deps TeamDependencies) *TeamsHandler {
	return &TeamsHandler{deps: deps}
}

// HandleListTeams handles GET /teams requests.
func (h *TeamsHandler) HandleListTeams(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_teams"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	if _, ok := authenticate(h.deps, op, w, r); !ok {
		return
	}

	teams := h.deps.ListTeams(r.Context())
	out := make([]teamView, 0, len(teams))
	for _, t := range teams {
		out = append(out, teamView{
			ID:      t.ID,
			Name:    t.Name,
			Members: renderUsers(h.deps.TeamMembers(r.Context(), t.ID)),
		})
	}
	writeJSON(w, http.StatusOK, out)
}
