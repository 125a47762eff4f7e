package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Teenu24/employee-recognition-api/internal/domain/model"
	"github.com/Teenu24/employee-recognition-api/pkg/metrics"
)

// Feed is the authoritative, append-only recognition log. Records are
// immutable after creation; there is no edit or delete.
type Feed struct {
	mu        sync.RWMutex
	records   []model.Recognition
	directory *Directory
	// lastCreated enforces non-decreasing timestamps in insertion order.
	lastCreated time.Time
	// now is swappable for tests.
	now func() time.Time
}

// FeedOption applies a configuration option to the Feed.
type FeedOption func(*Feed)

// WithClock sets a custom time source.
func WithClock(now func() time.Time) FeedOption {
	return func(f *Feed) {
		if now != nil {
			f.now = now
		}
	}
}

// NewFeed creates an empty feed backed by the given directory for
// recipient validation.
func NewFeed(directory *Directory, opts ...FeedOption) *Feed {
	f := &Feed{
		directory: directory,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Create validates draft, assigns an id and timestamp, and appends the
// record. Validation runs before any mutation: a rejected draft leaves
// the feed untouched.
func (f *Feed) Create(ctx context.Context, draft model.Draft) (model.Recognition, error) {
	return f.createAt(ctx, draft, f.now().UTC())
}

// createAt is the single append path. Timestamps are clamped so insertion
// order stays non-decreasing even with a backdated seed clock.
func (f *Feed) createAt(ctx context.Context, draft model.Draft, at time.Time) (model.Recognition, error) {
	if draft.Message == "" {
		metrics.RecordRecognitionRejected("empty_message")
		return model.Recognition{}, ErrEmptyMessage
	}
	if _, ok := f.directory.User(draft.RecipientID); !ok {
		metrics.RecordRecognitionRejected("recipient_not_found")
		return model.Recognition{}, ErrRecipientNotFound
	}
	if draft.SenderID == draft.RecipientID {
		metrics.RecordRecognitionRejected("self_recognition")
		return model.Recognition{}, ErrSelfRecognition
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if at.Before(f.lastCreated) {
		at = f.lastCreated
	}
	f.lastCreated = at

	rec := model.Recognition{
		ID:          uuid.NewString(),
		Message:     draft.Message,
		Emoji:       draft.Emoji,
		Visibility:  draft.Visibility,
		SenderID:    draft.SenderID,
		RecipientID: draft.RecipientID,
		CreatedAt:   at,
	}
	f.records = append(f.records, rec)
	metrics.RecordRecognitionCreated()
	metrics.UpdateFeedSize(len(f.records))

	return rec, nil
}

// All returns every recognition in insertion order. The returned slice
// is a copy; callers may not mutate feed state.
func (f *Feed) All(ctx context.Context) []model.Recognition {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]model.Recognition, len(f.records))
	copy(out, f.records)
	return out
}

// Len returns the number of stored recognitions.
func (f *Feed) Len(ctx context.Context) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.records)
}
