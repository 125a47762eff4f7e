package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Teenu24/employee-recognition-api/internal/adapters/pubsub"
	"github.com/Teenu24/employee-recognition-api/internal/domain/model"
)

// SubscriptionDependencies defines the interface for live streams.
type SubscriptionDependencies interface {
	Identity
	User(ctx context.Context, id string) (model.User, bool)
	SenderRevealed(ctx context.Context, rec model.Recognition, viewer model.User) bool
	SubscribeRecognitionsFor(ctx context.Context, userID string) *pubsub.Subscription
	SubscribeTeamFeed(ctx context.Context, teamID string) *pubsub.Subscription
}

// SubscriptionsHandler streams live recognitions over SSE.
type SubscriptionsHandler struct {
	deps SubscriptionDependencies
}

// NewSubscriptionsHandler creates a new subscriptions handler.
func NewSubscriptionsHandler(deps SubscriptionDependencies) *SubscriptionsHandler {
	return &SubscriptionsHandler{deps: deps}
}

// HandleRecognitionStream handles GET /subscriptions/recognitions
// requests: the caller's own incoming recognitions, starting now.
func (h *SubscriptionsHandler) HandleRecognitionStream(w http.ResponseWriter, r *http.Request) {
	const op = "api.subscribe_recognitions"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	viewer, ok := authenticate(h.deps, op, w, r)
	if !ok {
		return
	}

	sub := h.deps.SubscribeRecognitionsFor(r.Context(), viewer.ID)
	h.stream(w, r, op, sub, viewer)
}

// HandleTeamFeedStream handles GET /subscriptions/team-feed?team_id=
// requests: public recognitions landing on the team, starting now.
func (h *SubscriptionsHandler) HandleTeamFeedStream(w http.ResponseWriter, r *http.Request) {
	const op = "api.subscribe_team_feed"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	viewer, ok := authenticate(h.deps, op, w, r)
	if !ok {
		return
	}

	teamID := r.URL.Query().Get("team_id")
	if teamID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	sub := h.deps.SubscribeTeamFeed(r.Context(), teamID)
	h.stream(w, r, op, sub, viewer)
}

// stream writes the subscription as server-sent events until the client
// disconnects or the broker shuts down.
func (h *SubscriptionsHandler) stream(w http.ResponseWriter, r *http.Request, op string, sub *pubsub.Subscription, viewer model.User) {
	defer sub.Close()

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming_unsupported", NewKind(op, ErrServe))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case rec, open := <-sub.C():
			if !open {
				return
			}
			view := renderRecognition(r.Context(), h.deps, rec, viewer)
			data, err := json.Marshal(view)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: recognition\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}
