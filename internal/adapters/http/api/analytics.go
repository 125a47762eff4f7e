package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/Teenu24/employee-recognition-api/internal/domain/analytics"
	"github.com/Teenu24/employee-recognition-api/internal/domain/model"
)

// AnalyticsDependencies defines the interface for analytics reads.
type AnalyticsDependencies interface {
	Identity
	TeamAnalytics(ctx context.Context, viewer model.User, teamID string) (TeamAnalytics, error)
	OrganizationAnalytics(ctx context.Context, viewer model.User) ([]TeamAnalytics, error)
}

type keywordView struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

type monthView struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// analyticsView mirrors the JSON shape of a team analytics snapshot.
type analyticsView struct {
	TeamID              string        `json:"team_id"`
	TeamName            string        `json:"team_name"`
	TotalRecognitions   int           `json:"total_recognitions"`
	TopKeywords         []keywordView `json:"top_keywords"`
	RecognitionsByMonth []monthView   `json:"recognitions_by_month"`
	MostRecognized      *userView     `json:"most_recognized_user"`
}

func renderAnalytics(ta TeamAnalytics) analyticsView {
	view := analyticsView{
		TeamID:              ta.TeamID,
		TeamName:            ta.TeamName,
		TotalRecognitions:   ta.TotalRecognitions,
		TopKeywords:         renderKeywords(ta.TopKeywords),
		RecognitionsByMonth: renderMonths(ta.RecognitionsByMonth),
	}
	if ta.MostRecognized != nil {
		u := renderUser(*ta.MostRecognized)
		view.MostRecognized = &u
	}
	return view
}

func renderKeywords(kws []analytics.KeywordCount) []keywordView {
	out := make([]keywordView, 0, len(kws))
	for _, kw := range kws {
		out = append(out, keywordView{Keyword: kw.Keyword, Count: kw.Count})
	}
	return out
}

func renderMonths(months []analytics.MonthlyCount) []monthView {
	out := make([]monthView, 0, len(months))
	for _, m := range months {
		out = append(out, monthView{Month: m.Month, Count: m.Count})
	}
	return out
}

// AnalyticsHandler handles analytics requests.
type AnalyticsHandler struct {
	deps AnalyticsDependencies
}

// NewAnalyticsHandler creates a new analytics handler.
func NewAnalyticsHandler(deps AnalyticsDependencies) *AnalyticsHandler {
	return &AnalyticsHandler{deps: deps}
}

// HandleTeam handles GET /analytics/team/{id} requests.
func (h *AnalyticsHandler) HandleTeam(w http.ResponseWriter, r *http.Request) {
	const op = "api.team_analytics"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	viewer, ok := authenticate(h.deps, op, w, r)
	if !ok {
		return
	}

	teamID := strings.TrimPrefix(r.URL.Path, "/analytics/team/")
	if teamID == "" || strings.Contains(teamID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	ta, err := h.deps.TeamAnalytics(r.Context(), viewer, teamID)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, renderAnalytics(ta))
}

// HandleOrganization handles GET /analytics/organization requests.
func (h *AnalyticsHandler) HandleOrganization(w http.ResponseWriter, r *http.Request) {
	const op = "api.organization_analytics"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	viewer, ok := authenticate(h.deps, op, w, r)
	if !ok {
		return
	}

	all, err := h.deps.OrganizationAnalytics(r.Context(), viewer)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}

	out := make([]analyticsView, 0, len(all))
	for _, ta := range all {
		out = append(out, renderAnalytics(ta))
	}
	writeJSON(w, http.StatusOK, out)
}
