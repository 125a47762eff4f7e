package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Teenu24/employee-recognition-api/internal/domain/model"
)

// ProfileDependencies defines the interface for caller profile operations.
type ProfileDependencies interface {
	Identity
	UpdateProfile(ctx context.Context, viewer model.User, name, teamID *string) (model.User, error)
}

// patchProfileRequest mirrors the JSON schema for PATCH /profile.
// Absent fields keep their current value.
type patchProfileRequest struct {
	Name   *string `json:"name"`
	TeamID *string `json:"team_id"`
}

// ProfileHandler handles requests about the authenticated caller.
type ProfileHandler struct {
	deps ProfileDependencies
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(deps ProfileDependencies) *ProfileHandler {
	return &ProfileHandler{deps: deps}
}

// HandleMe handles GET /me requests.
func (h *ProfileHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	const op = "api.me"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	viewer, ok := authenticate(h.deps, op, w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, renderUser(viewer))
}

// HandlePatchProfile handles PATCH /profile requests. Callers may only
// change their own record.
func (h *ProfileHandler) HandlePatchProfile(w http.ResponseWriter, r *http.Request) {
	const op = "api.patch_profile"
	if r.Method != http.MethodPatch {
		http.NotFound(w, r)
		return
	}
	viewer, ok := authenticate(h.deps, op, w, r)
	if !ok {
		return
	}

	var req patchProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	updated, err := h.deps.UpdateProfile(r.Context(), viewer, req.Name, req.TeamID)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, renderUser(updated))
}
