package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Teenu24/employee-recognition-api/internal/domain/access"
	"github.com/Teenu24/employee-recognition-api/internal/domain/model"
)

// RecognitionDependencies defines the interface for feed operations.
type RecognitionDependencies interface {
	Identity
	User(ctx context.Context, id string) (model.User, bool)
	ListRecognitions(ctx context.Context, viewer model.User, filter access.Filter) []model.Recognition
	MyRecognitions(ctx context.Context, viewer model.User) []model.Recognition
	SenderRevealed(ctx context.Context, rec model.Recognition, viewer model.User) bool
	CreateRecognition(ctx context.Context, viewer model.User, input CreateInput) (model.Recognition, error)
}

// createRequest mirrors the JSON schema for POST /recognitions.
type createRequest struct {
	RecipientID string `json:"recipient_id"`
	Message     string `json:"message"`
	Emoji       string `json:"emoji"`
	Visibility  string `json:"visibility"`
}

func (c createRequest) validate() error {
	switch {
	case strings.TrimSpace(c.RecipientID) == "":
		return errors.New("missing recipient_id")
	case strings.TrimSpace(c.Message) == "":
		return errors.New("missing message")
	}
	if c.Visibility != "" {
		if _, err := model.ParseVisibility(c.Visibility); err != nil {
			return err
		}
	}
	return nil
}

// recognitionView mirrors the JSON shape of a rendered recognition.
// Sender is null when the viewer may not learn the identity.
type recognitionView struct {
	ID          string    `json:"id"`
	Message     string    `json:"message"`
	Emoji       string    `json:"emoji,omitempty"`
	Visibility  string    `json:"visibility"`
	IsAnonymous bool      `json:"is_anonymous"`
	Sender      *userView `json:"sender"`
	Recipient   *userView `json:"recipient"`
	CreatedAt   string    `json:"created_at"`
}

// renderDeps is the subset of dependencies needed to render a record.
type renderDeps interface {
	User(ctx context.Context, id string) (model.User, bool)
	SenderRevealed(ctx context.Context, rec model.Recognition, viewer model.User) bool
}

func renderRecognition(ctx context.Context, deps renderDeps, rec model.Recognition, viewer model.User) recognitionView {
	view := recognitionView{
		ID:          rec.ID,
		Message:     rec.Message,
		Emoji:       rec.Emoji,
		Visibility:  string(rec.Visibility),
		IsAnonymous: rec.Visibility == model.VisibilityAnonymous,
		CreatedAt:   rec.CreatedAt.UTC().Format(time.RFC3339),
	}
	if deps.SenderRevealed(ctx, rec, viewer) {
		if sender, ok := deps.User(ctx, rec.SenderID); ok {
			v := renderUser(sender)
			view.Sender = &v
		}
	}
	if recipient, ok := deps.User(ctx, rec.RecipientID); ok {
		v := renderUser(recipient)
		view.Recipient = &v
	}
	return view
}

func renderRecognitions(ctx context.Context, deps renderDeps, recs []model.Recognition, viewer model.User) []recognitionView {
	out := make([]recognitionView, 0, len(recs))
	for _, rec := range recs {
		out = append(out, renderRecognition(ctx, deps, rec, viewer))
	}
	return out
}

// RecognitionsHandler handles feed requests.
type RecognitionsHandler struct {
	deps RecognitionDependencies
}

// NewRecognitionsHandler creates a new recognitions handler.
func NewRecognitionsHandler(deps RecognitionDependencies) *RecognitionsHandler {
	return &RecognitionsHandler{deps: deps}
}

// HandleRecognitions handles GET and POST /recognitions requests.
func (h *RecognitionsHandler) HandleRecognitions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *RecognitionsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_recognitions"
	viewer, ok := authenticate(h.deps, op, w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := access.Filter{
		TeamID:      q.Get("team_id"),
		RecipientID: q.Get("recipient_id"),
		SenderID:    q.Get("sender_id"),
	}
	if raw := q.Get("visibility"); raw != "" {
		visibility, err := model.ParseVisibility(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		filter.Visibility = visibility
	}

	recs := h.deps.ListRecognitions(r.Context(), viewer, filter)
	writeJSON(w, http.StatusOK, renderRecognitions(r.Context(), h.deps, recs, viewer))
}

func (h *RecognitionsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_recognition"
	viewer, ok := authenticate(h.deps, op, w, r)
	if !ok {
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	rec, err := h.deps.CreateRecognition(r.Context(), viewer, CreateInput{
		RecipientID: req.RecipientID,
		Message:     req.Message,
		Emoji:       req.Emoji,
		Visibility:  model.Visibility(strings.ToUpper(strings.TrimSpace(req.Visibility))),
	})
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, renderRecognition(r.Context(), h.deps, rec, viewer))
}

// HandleMine handles GET /recognitions/mine requests.
func (h *RecognitionsHandler) HandleMine(w http.ResponseWriter, r *http.Request) {
	const op = "api.my_recognitions"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	viewer, ok := authenticate(h.deps, op, w, r)
	if !ok {
		return
	}

	recs := h.deps.MyRecognitions(r.Context(), viewer)
	writeJSON(w, http.StatusOK, renderRecognitions(r.Context(), h.deps, recs, viewer))
}
