package demo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Teenu24/employee-recognition-api/pkg/logger"
)

// Stats summarizes one traffic run.
type Stats struct {
	Submitted int
	Accepted  int
	Rejected  int
	Failed    int
}

// Runner submits generated recognitions to a server at a fixed rate.
type Runner struct {
	baseURL string
	count   int
	rate    int
	seed    int64
	client  *http.Client
	logger  logger.Logger
}

// Option applies a configuration option to the Runner.
type Option func(*Runner)

// WithCount sets how many recognitions to submit.
func WithCount(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.count = n
		}
	}
}

// WithRate caps submissions per second. Zero means full speed.
func WithRate(n int) Option {
	return func(r *Runner) {
		if n >= 0 {
			r.rate = n
		}
	}
}

// WithSeed fixes the random sequence.
func WithSeed(seed int64) Option {
	return func(r *Runner) {
		r.seed = seed
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(r *Runner) {
		if c != nil {
			r.client = c
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRunner creates a Runner targeting baseURL.
func NewRunner(baseURL string, opts ...Option) *Runner {
	r := &Runner{
		baseURL: baseURL,
		count:   100,
		rate:    10,
		seed:    time.Now().UnixNano(),
		client:  &http.Client{Timeout: 10 * time.Second},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// createPayload mirrors the POST /recognitions schema.
type createPayload struct {
	RecipientID string `json:"recipient_id"`
	Message     string `json:"message"`
	Emoji       string `json:"emoji,omitempty"`
	Visibility  string `json:"visibility"`
}

// Run submits the configured number of recognitions and reports counts.
// Cancelling ctx stops the run early with the stats so far.
func (r *Runner) Run(ctx context.Context) (Stats, error) {
	log := r.logger
	if log == nil {
		log = logger.Get().Named("demo")
	}

	log.Info(ctx, "starting traffic run",
		logger.String("url", r.baseURL),
		logger.Int("count", r.count),
		logger.Int("rate", r.rate),
	)

	gen := NewGenerator(r.seed)
	stats := Stats{}

	var tick <-chan time.Time
	if r.rate > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(r.rate))
		defer ticker.Stop()
		tick = ticker.C
	}

	for i := 0; i < r.count; i++ {
		if tick != nil {
			select {
			case <-ctx.Done():
				return stats, ctx.Err()
			case <-tick:
			}
		} else if ctx.Err() != nil {
			return stats, ctx.Err()
		}

		rec := gen.Next()
		stats.Submitted++
		switch r.submit(ctx, rec) {
		case http.StatusCreated:
			stats.Accepted++
		case 0:
			stats.Failed++
		default:
			stats.Rejected++
		}
	}

	log.Info(ctx, "traffic run finished",
		logger.Int("submitted", stats.Submitted),
		logger.Int("accepted", stats.Accepted),
		logger.Int("rejected", stats.Rejected),
		logger.Int("failed", stats.Failed),
	)

	return stats, nil
}

// submit posts one recognition and returns the HTTP status, or 0 on
// transport failure.
func (r *Runner) submit(ctx context.Context, rec Recognition) int {
	body, err := json.Marshal(createPayload{
		RecipientID: rec.RecipientID,
		Message:     rec.Message,
		Emoji:       rec.Emoji,
		Visibility:  string(rec.Visibility),
	})
	if err != nil {
		return 0
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/recognitions", r.baseURL), bytes.NewReader(body))
	if err != nil {
		return 0
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Id", rec.SenderID)

	resp, err := r.client.Do(req)
	if err != nil {
		return 0
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode
}
