// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Teenu24/employee-recognition-api/internal/adapters/mq/flusher"
	"github.com/Teenu24/employee-recognition-api/internal/adapters/mq/queue"
	"github.com/Teenu24/employee-recognition-api/internal/adapters/notifier"
	"github.com/Teenu24/employee-recognition-api/internal/adapters/pubsub"
	"github.com/Teenu24/employee-recognition-api/internal/adapters/repository"
	"github.com/Teenu24/employee-recognition-api/internal/domain/access"
	"github.com/Teenu24/employee-recognition-api/internal/domain/analytics"
	"github.com/Teenu24/employee-recognition-api/internal/domain/keyword"
	"github.com/Teenu24/employee-recognition-api/internal/domain/model"
	"github.com/Teenu24/employee-recognition-api/pkg/logger"
)

// CreateInput carries the caller-supplied fields of a new recognition.
// The sender is always the authenticated viewer and cannot be forged.
type CreateInput struct {
	RecipientID string
	Message     string
	Emoji       string
	Visibility  model.Visibility
}

// TeamAnalytics is the composed analytics view handed to transports:
// the raw aggregate snapshot joined against the directory.
type TeamAnalytics struct {
	TeamID              string
	TeamName            string
	TotalRecognitions   int
	TopKeywords         []analytics.KeywordCount
	RecognitionsByMonth []analytics.MonthlyCount
	MostRecognized      *model.User
}

// Service wires the stores, the analytics index, the live broker and the
// notification pipeline behind one facade.
type Service struct {
	mu sync.RWMutex

	// createMu serializes the accept path so the feed append, the
	// analytics fold and the broker publishes observe one global order.
	createMu sync.Mutex

	// Core components
	directory *repository.Directory
	feed      *repository.Feed
	index     *analytics.Index
	broker    *pubsub.Broker
	backlog   queue.Queue
	flusher   *flusher.Flusher
	notifier  notifier.Notifier

	// Configuration
	batching         bool
	flushInterval    time.Duration
	topKeywords      int
	minKeywordLength int
	subscriberBuffer int
	seedFixtures     bool
	webhookURL       string

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithBatching switches external notification delivery from immediate
// per-event sends to the periodic batch flusher.
func WithBatching(enabled bool) Option {
	return func(s *Service) {
		s.batching = enabled
	}
}

// WithFlushInterval sets the batch flusher period.
func WithFlushInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.flushInterval = d
		}
	}
}

// WithNotifier sets a custom notification channel.
func WithNotifier(n notifier.Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithWebhookURL sets the Slack webhook for the default notifier. Empty
// disables outbound delivery.
func WithWebhookURL(url string) Option {
	return func(s *Service) {
		s.webhookURL = url
	}
}

// WithTopKeywords caps the keyword table in analytics snapshots.
func WithTopKeywords(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topKeywords = n
		}
	}
}

// WithMinKeywordLength drops shorter tokens during keyword extraction.
func WithMinKeywordLength(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.minKeywordLength = n
		}
	}
}

// WithSubscriberBuffer sets the per-subscription channel buffer.
func WithSubscriberBuffer(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.subscriberBuffer = n
		}
	}
}

// WithFixtures loads the demo directory and recognitions at startup.
func WithFixtures(enabled bool) Option {
	return func(s *Service) {
		s.seedFixtures = enabled
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		flushInterval:    10 * time.Minute,
		topKeywords:      5,
		minKeywordLength: 4,
		subscriberBuffer: 16,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting recognition service...")

	s.directory = repository.NewDirectory()
	s.feed = repository.NewFeed(s.directory)
	s.index = analytics.New(
		analytics.WithExtractor(keyword.New(keyword.WithMinLength(s.minKeywordLength))),
		analytics.WithTopKeywords(s.topKeywords),
	)
	s.broker = pubsub.NewBroker(
		pubsub.WithBufferSize(s.subscriberBuffer),
	)
	s.backlog = queue.NewInMemoryQueue()
	if s.notifier == nil {
		s.notifier = notifier.NewSlack(s.webhookURL)
	}
	s.flusher = flusher.New(s.backlog, s.notifier,
		flusher.WithInterval(s.flushInterval),
		flusher.WithLogger(s.logger.Named("flusher")),
	)
	if s.batching {
		s.flusher.Start(ctx)
	}

	if s.seedFixtures {
		created, err := repository.Seed(ctx, s.directory, s.feed)
		if err != nil {
			return fmt.Errorf("seeding fixtures: %w", err)
		}
		// Seeded history counts toward analytics but predates every
		// subscriber, so it is never published or notified.
		for _, rec := range created {
			if recipient, ok := s.directory.User(rec.RecipientID); ok && recipient.TeamID != "" {
				s.index.Record(ctx, rec, recipient.TeamID)
			}
		}
		s.logger.Info(ctx, "fixtures loaded", logger.Int("recognitions", len(created)))
	}

	s.started = true
	s.logger.Info(ctx, "recognition service started",
		logger.Bool("batching", s.batching),
		logger.Int("topKeywords", s.topKeywords),
		logger.Int("subscriberBuffer", s.subscriberBuffer),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping recognition service...")

	if s.batching && s.flusher != nil {
		s.flusher.Stop()
	}
	if s.broker != nil {
		_ = s.broker.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "recognition service stopped")
}

// Authenticate resolves a caller id to a directory user. Every request
// must carry an id; an unknown id is an authentication failure, not a
// not-found.
func (s *Service) Authenticate(ctx context.Context, userID string) (model.User, error) {
	if userID == "" {
		return model.User{}, access.ErrUnauthenticated
	}
	u, ok := s.directory.User(userID)
	if !ok {
		return model.User{}, fmt.Errorf("%w: unknown user %q", access.ErrUnauthenticated, userID)
	}
	return u, nil
}

// User returns the directory record for id.
func (s *Service) User(ctx context.Context, id string) (model.User, bool) {
	return s.directory.User(id)
}

// Team returns the directory record for id.
func (s *Service) Team(ctx context.Context, id string) (model.Team, bool) {
	return s.directory.Team(id)
}

// ListUsers returns all users, or a team's members when teamID is set.
func (s *Service) ListUsers(ctx context.Context, teamID string) []model.User {
	if teamID != "" {
		return s.directory.UsersByTeam(ctx, teamID)
	}
	return s.directory.Users(ctx)
}

// ListTeams returns all teams.
func (s *Service) ListTeams(ctx context.Context) []model.Team {
	return s.directory.Teams(ctx)
}

// TeamMembers returns the users whose team reference matches teamID.
func (s *Service) TeamMembers(ctx context.Context, teamID string) []model.User {
	return s.directory.UsersByTeam(ctx, teamID)
}

// ListRecognitions returns the recognitions viewer may see, narrowed by
// filter, newest first.
func (s *Service) ListRecognitions(ctx context.Context, viewer model.User, filter access.Filter) []model.Recognition {
	return access.List(s.directory, s.feed.All(ctx), viewer, filter)
}

// MyRecognitions returns the recognitions viewer sent or received,
// newest first. Visibility rules still apply.
func (s *Service) MyRecognitions(ctx context.Context, viewer model.User) []model.Recognition {
	all := s.feed.All(ctx)
	mine := make([]model.Recognition, 0, len(all))
	for _, rec := range all {
		if rec.SenderID == viewer.ID || rec.RecipientID == viewer.ID {
			mine = append(mine, rec)
		}
	}
	return access.List(s.directory, mine, viewer, access.Filter{})
}

// SenderRevealed reports whether viewer may learn rec's sender identity.
func (s *Service) SenderRevealed(ctx context.Context, rec model.Recognition, viewer model.User) bool {
	return access.SenderRevealed(s.directory, rec, viewer)
}

// CreateRecognition validates and appends a new recognition, folds it
// into analytics, fans it out to live subscribers, and hands it to the
// notification pipeline. A rejected draft has no side effects at all.
func (s *Service) CreateRecognition(ctx context.Context, viewer model.User, input CreateInput) (model.Recognition, error) {
	visibility := input.Visibility
	if visibility == "" {
		visibility = model.VisibilityPublic
	}

	draft := model.Draft{
		Message:     input.Message,
		Emoji:       input.Emoji,
		Visibility:  visibility,
		SenderID:    viewer.ID,
		RecipientID: input.RecipientID,
	}

	s.createMu.Lock()
	defer s.createMu.Unlock()

	rec, err := s.feed.Create(ctx, draft)
	if err != nil {
		return model.Recognition{}, err
	}

	recipient, _ := s.directory.User(rec.RecipientID)
	if recipient.TeamID != "" {
		s.index.Record(ctx, rec, recipient.TeamID)
	}

	s.broker.Publish(ctx, pubsub.UserTopic(rec.RecipientID), rec)
	if rec.Visibility == model.VisibilityPublic && recipient.TeamID != "" {
		s.broker.Publish(ctx, pubsub.TeamTopic(recipient.TeamID), rec)
	}

	if s.batching {
		s.backlog.Enqueue(ctx, rec)
	} else {
		go s.deliver(rec)
	}

	s.logger.Info(ctx, "recognition created",
		logger.String("recognitionID", rec.ID),
		logger.String("senderID", rec.SenderID),
		logger.String("recipientID", rec.RecipientID),
		logger.String("visibility", string(rec.Visibility)),
	)

	return rec, nil
}

// deliver sends one notification outside the request lifecycle. Failures
// are logged and never surfaced to the creator.
func (s *Service) deliver(rec model.Recognition) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.notifier.Deliver(ctx, rec); err != nil {
		s.logger.Error(ctx, "notification delivery failed",
			logger.String("recognitionID", rec.ID),
			logger.Error(err),
		)
	}
}

// FlushNotifications drains the batch backlog immediately instead of
// waiting on the timer. A no-op in immediate mode.
func (s *Service) FlushNotifications(ctx context.Context) {
	if s.flusher != nil {
		s.flusher.FlushNow(ctx)
	}
}

// TeamAnalytics returns teamID's aggregate view. Admins may read any
// team, managers only their own.
func (s *Service) TeamAnalytics(ctx context.Context, viewer model.User, teamID string) (TeamAnalytics, error) {
	if err := access.CanViewTeamAnalytics(viewer, teamID); err != nil {
		return TeamAnalytics{}, err
	}
	return s.composeAnalytics(ctx, teamID), nil
}

// OrganizationAnalytics returns the aggregate view of every team in the
// directory. Admin only.
func (s *Service) OrganizationAnalytics(ctx context.Context, viewer model.User) ([]TeamAnalytics, error) {
	if err := access.RequireAdmin(viewer); err != nil {
		return nil, err
	}

	teams := s.directory.Teams(ctx)
	out := make([]TeamAnalytics, 0, len(teams))
	for _, t := range teams {
		out = append(out, s.composeAnalytics(ctx, t.ID))
	}
	return out, nil
}

// composeAnalytics joins the raw snapshot against the directory.
func (s *Service) composeAnalytics(ctx context.Context, teamID string) TeamAnalytics {
	snap := s.index.Snapshot(ctx, teamID)

	ta := TeamAnalytics{
		TeamID:              teamID,
		TeamName:            "Unknown Team",
		TotalRecognitions:   snap.TotalRecognitions,
		TopKeywords:         snap.TopKeywords,
		RecognitionsByMonth: snap.RecognitionsByMonth,
	}
	if t, ok := s.directory.Team(teamID); ok {
		ta.TeamName = t.Name
	}
	if snap.MostRecognizedUserID != "" {
		if u, ok := s.directory.User(snap.MostRecognizedUserID); ok {
			ta.MostRecognized = &u
		}
	}
	return ta
}

// UpdateProfile mutates the viewer's own name and/or team. Nil fields
// keep their current value; an unknown team id is silently ignored.
func (s *Service) UpdateProfile(ctx context.Context, viewer model.User, name, teamID *string) (model.User, error) {
	updated, err := s.directory.UpdateProfile(ctx, viewer.ID, name, teamID)
	if err != nil {
		return model.User{}, err
	}

	s.logger.Info(ctx, "profile updated", logger.String("userID", viewer.ID))
	return updated, nil
}

// SubscribeRecognitionsFor opens a live stream of recognitions received
// by userID, starting now.
func (s *Service) SubscribeRecognitionsFor(ctx context.Context, userID string) *pubsub.Subscription {
	return s.broker.Subscribe(ctx, pubsub.UserTopic(userID))
}

// SubscribeTeamFeed opens a live stream of PUBLIC recognitions received
// by members of teamID, starting now.
func (s *Service) SubscribeTeamFeed(ctx context.Context, teamID string) *pubsub.Subscription {
	return s.broker.Subscribe(ctx, pubsub.TeamTopic(teamID))
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":  s.started,
		"batching": s.batching,
	}

	if s.started {
		stats["users"] = len(s.directory.Users(ctx))
		stats["teams"] = len(s.directory.Teams(ctx))
		stats["recognitions"] = s.feed.Len(ctx)
		stats["activeTeamAggregates"] = len(s.index.Teams(ctx))
		if s.batching {
			stats["notificationBacklog"] = s.backlog.Len(ctx)
		}
	}

	return stats
}
