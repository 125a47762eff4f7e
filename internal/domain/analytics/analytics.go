// Package analytics maintains per-team aggregates, folded incrementally
// as recognitions are accepted. Queries never rescan feed history; every
// counter is updated in O(1) on the write path.
package analytics

import (
	"context"
	"sort"
	"sync"

	"github.com/Teenu24/employee-recognition-api/internal/domain/keyword"
	"github.com/Teenu24/employee-recognition-api/internal/domain/model"
	"github.com/Teenu24/employee-recognition-api/pkg/metrics"
)

// monthKey is sortable, so lexical order is chronological order.
const monthKey = "2006-01"

// KeywordCount is one row of a team's keyword frequency table.
type KeywordCount struct {
	Keyword string
	Count   int
}

// MonthlyCount is one row of a team's volume-by-month table.
type MonthlyCount struct {
	Month string
	Count int
}

// Snapshot is the derived aggregate view of one team's history.
// MostRecognizedUserID is empty when the team has no recognitions.
type Snapshot struct {
	TeamID               string
	TotalRecognitions    int
	TopKeywords          []KeywordCount
	RecognitionsByMonth  []MonthlyCount
	MostRecognizedUserID string
}

// keywordStat tracks a count plus the order the keyword was first seen,
// which breaks count ties deterministically.
type keywordStat struct {
	count     int
	firstSeen int
}

type teamStats struct {
	total       int
	keywords    map[string]*keywordStat
	keywordSeq  int
	months      map[string]int
	recipients  map[string]int
	leaderID    string
	leaderCount int
}

func newTeamStats() *teamStats {
	return &teamStats{
		keywords:   make(map[string]*keywordStat),
		months:     make(map[string]int),
		recipients: make(map[string]int),
	}
}

// Index holds the incrementally maintained aggregates for all teams.
type Index struct {
	mu        sync.RWMutex
	extractor *keyword.Extractor
	topK      int
	teams     map[string]*teamStats
}

// Option applies a configuration option to the Index.
type Option func(*Index)

// WithExtractor sets a custom keyword extractor.
func WithExtractor(e *keyword.Extractor) Option {
	return func(i *Index) {
		if e != nil {
			i.extractor = e
		}
	}
}

// WithTopKeywords caps the keyword table returned by Snapshot.
func WithTopKeywords(n int) Option {
	return func(i *Index) {
		if n > 0 {
			i.topK = n
		}
	}
}

// defaultTopKeywords matches the original feed's keyword table size.
const defaultTopKeywords = 5

// New creates an Index with configuration options.
func New(opts ...Option) *Index {
	i := &Index{
		extractor: keyword.New(),
		topK:      defaultTopKeywords,
		teams:     make(map[string]*teamStats),
	}

	for _, opt := range opts {
		opt(i)
	}

	return i
}

// Record folds one accepted recognition into teamID's aggregates. It must
// be called exactly once per accepted creation, and only when the
// recipient belongs to a team.
func (i *Index) Record(ctx context.Context, rec model.Recognition, teamID string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	ts, ok := i.teams[teamID]
	if !ok {
		ts = newTeamStats()
		i.teams[teamID] = ts
		metrics.UpdateAnalyticsTeams(len(i.teams))
	}

	ts.total++

	for _, tok := range i.extractor.Extract(rec.Message) {
		stat, ok := ts.keywords[tok]
		if !ok {
			stat = &keywordStat{firstSeen: ts.keywordSeq}
			ts.keywordSeq++
			ts.keywords[tok] = stat
		}
		stat.count++
	}

	ts.months[rec.CreatedAt.Format(monthKey)]++

	ts.recipients[rec.RecipientID]++
	// First recipient to reach the maximum keeps the lead on ties.
	if ts.recipients[rec.RecipientID] > ts.leaderCount {
		ts.leaderCount = ts.recipients[rec.RecipientID]
		ts.leaderID = rec.RecipientID
	}
}

// Snapshot returns teamID's aggregate view. Unknown or quiet teams get a
// well-formed empty snapshot, never an error.
func (i *Index) Snapshot(ctx context.Context, teamID string) Snapshot {
	i.mu.RLock()
	defer i.mu.RUnlock()

	snap := Snapshot{
		TeamID:              teamID,
		TopKeywords:         []KeywordCount{},
		RecognitionsByMonth: []MonthlyCount{},
	}

	ts, ok := i.teams[teamID]
	if !ok {
		return snap
	}

	snap.TotalRecognitions = ts.total
	snap.MostRecognizedUserID = ts.leaderID

	kws := make([]KeywordCount, 0, len(ts.keywords))
	order := make(map[string]int, len(ts.keywords))
	for word, stat := range ts.keywords {
		kws = append(kws, KeywordCount{Keyword: word, Count: stat.count})
		order[word] = stat.firstSeen
	}
	sort.SliceStable(kws, func(a, b int) bool {
		if kws[a].Count != kws[b].Count {
			return kws[a].Count > kws[b].Count
		}
		return order[kws[a].Keyword] < order[kws[b].Keyword]
	})
	if len(kws) > i.topK {
		kws = kws[:i.topK]
	}
	snap.TopKeywords = kws

	months := make([]MonthlyCount, 0, len(ts.months))
	for month, count := range ts.months {
		months = append(months, MonthlyCount{Month: month, Count: count})
	}
	sort.Slice(months, func(a, b int) bool {
		return months[a].Month < months[b].Month
	})
	snap.RecognitionsByMonth = months

	return snap
}

// Teams lists the IDs of teams with recorded activity, sorted for
// deterministic iteration.
func (i *Index) Teams(ctx context.Context) []string {
	i.mu.RLock()
	defer i.mu.RUnlock()

	out := make([]string, 0, len(i.teams))
	for id := range i.teams {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
