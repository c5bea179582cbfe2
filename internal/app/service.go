// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/preserve/internal/adapters/cache"
	"github.com/okian/preserve/internal/adapters/feed"
	"github.com/okian/preserve/internal/domain/classify"
	"github.com/okian/preserve/internal/domain/dates"
	"github.com/okian/preserve/internal/domain/model"
	"github.com/okian/preserve/internal/domain/report"
	"github.com/okian/preserve/internal/domain/urgency"
	"github.com/okian/preserve/pkg/logger"
	"github.com/okian/preserve/pkg/metrics"
)

// Cache keys for the two upstream sheets.
const (
	keyUpdates    = "updates"
	keyProperties = "properties"
)

// Fetcher pulls a tabular feed from upstream. *feed.Client is the real
// implementation; tests substitute their own.
type Fetcher interface {
	FetchTable(ctx context.Context, name, url string) (*feed.Table, error)
}

// Snapshot is one fully reconciled view of the dashboard: the classified
// work orders plus everything the API derives from them. Each snapshot
// carries its own id so clients can tell refreshes apart.
type Snapshot struct {
	ID         string                   `json:"id"`
	FetchedAt  time.Time                `json:"fetched_at"`
	Records    []model.ClassifiedRecord `json:"records"`
	Properties []model.Property         `json:"properties"`
	Summary    report.Summary           `json:"summary"`
	Urgent     []model.ClassifiedRecord `json:"urgent"`
	Overdue    []model.ClassifiedRecord `json:"overdue"`
	Pending    []model.ClassifiedRecord `json:"pending"`
	DueSoon    []model.ClassifiedRecord `json:"due_soon"`
	Notices    []string                 `json:"notices,omitempty"`
}

// Service implements the API dependencies for the work-order dashboard.
type Service struct {
	mu sync.RWMutex

	// Core components
	fetcher    Fetcher
	tableCache *cache.Cache
	aggregator *report.Aggregator
	selector   *urgency.Selector

	// Configuration
	updatesURL    string
	propertiesURL string
	cacheTTL      time.Duration
	windowDays    int
	clock         func() time.Time

	// State
	started  bool
	lastSnap *Snapshot

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		cacheTTL:   5 * time.Minute,
		windowDays: 7,
		clock:      time.Now,
		logger:     nil, // Will be replaced when service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting dashboard service...")

	if s.fetcher == nil {
		s.fetcher = feed.NewClient(feed.WithLogger(s.logger.Named("feed")))
	}
	s.tableCache = cache.New(
		cache.WithTTL(s.cacheTTL),
		cache.WithClock(s.clock),
	)
	s.aggregator = report.New(report.WithDueSoonWindow(s.windowDays))
	s.selector = urgency.New(urgency.WithDueSoonWindow(s.windowDays))

	s.started = true
	s.logger.Info(ctx, "dashboard service started",
		logger.Duration("cacheTTL", s.cacheTTL),
		logger.Int("dueSoonWindowDays", s.windowDays),
	)

	return nil
}

// Stop shuts the service down.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "dashboard service stopped")
}

// Snapshot returns a reconciled view of both feeds. Feed tables are served
// from the cache within their TTL, so a burst of dashboard loads costs one
// upstream round trip per feed.
//
// The upstream fetches run outside the service mutex. Holding it across a
// slow feed would serialize every API request and starve GetStats, so the
// lock only guards the started flag and the lastSnap swap at the end.
func (s *Service) Snapshot(ctx context.Context) (*Snapshot, error) {
	s.mu.RLock()
	if !s.started {
		s.mu.RUnlock()
		return nil, ErrNotStarted
	}
	fetcher := s.fetcher
	tableCache := s.tableCache
	aggregator := s.aggregator
	selector := s.selector
	updatesURL := s.updatesURL
	propertiesURL := s.propertiesURL
	clock := s.clock
	log := s.logger
	s.mu.RUnlock()

	started := time.Now()
	now := clock()
	today := dates.DayOf(now)

	var (
		wg         sync.WaitGroup
		updates    *feed.Table
		properties *feed.Table
		notices    []string
		noticeMu   sync.Mutex
	)

	// Cache entries are keyed by URL so a reconfigured feed never serves
	// the old sheet's rows.
	fetchCached := func(name, url string, columns []string, dst **feed.Table) {
		defer wg.Done()

		if table, _, ok := tableCache.Get(url); ok {
			*dst = table
			return
		}
		table, err := fetcher.FetchTable(ctx, name, url)
		if err != nil {
			log.Error(ctx, "feed fetch failed, serving empty table",
				logger.String("feed", name),
				logger.Error(err),
			)
			noticeMu.Lock()
			notices = append(notices, name+" feed unavailable, showing empty data")
			noticeMu.Unlock()
			*dst = feed.Empty(columns...)
			return
		}
		tableCache.Put(url, table)
		*dst = table
	}

	wg.Add(2)
	go fetchCached(keyUpdates, updatesURL, feed.UpdateColumns(), &updates)
	go fetchCached(keyProperties, propertiesURL, feed.PropertyColumns(), &properties)
	wg.Wait()

	normalizer := dates.New(dates.WithReference(now))

	rows := feed.Updates(updates)
	records := make([]model.ClassifiedRecord, 0, len(rows))
	for _, row := range rows {
		due := normalizer.Normalize(row.DueDateRaw)
		records = append(records, model.ClassifiedRecord{
			WorkOrderUpdate: row,
			Due:             due,
			Category:        classify.Classify(row.StatusText, due, today),
		})
	}
	metrics.RecordRowsClassified(len(records))

	props, dropped := feed.Properties(properties)
	if dropped > 0 {
		log.Warn(ctx, "dropped properties without coordinates",
			logger.Int("dropped", dropped),
		)
	}

	summary := aggregator.Summarize(records, today)
	for category, count := range summary.CountsByCategory {
		metrics.UpdateCategoryCount(string(category), count)
	}

	urgent := selector.Urgent(records, today)
	metrics.UpdateUrgentCount(len(urgent))

	snap := &Snapshot{
		ID:         uuid.NewString(),
		FetchedAt:  now,
		Records:    records,
		Properties: props,
		Summary:    summary,
		Urgent:     urgent,
		Overdue:    selector.OverdueOnly(records, today),
		Pending:    selector.PendingOnly(records, today),
		DueSoon:    selector.DueSoonOnly(records, today),
		Notices:    notices,
	}

	s.mu.Lock()
	s.lastSnap = snap
	s.mu.Unlock()

	metrics.UpdateSnapshotTime(now.Unix())
	metrics.RecordRefreshDuration(float64(time.Since(started).Milliseconds()))
	log.Debug(ctx, "built snapshot",
		logger.String("id", snap.ID),
		logger.Int("records", len(records)),
		logger.Int("properties", len(props)),
		logger.Int("urgent", len(urgent)),
	)

	return snap, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":           s.started,
		"cacheTTLSeconds":   s.cacheTTL.Seconds(),
		"dueSoonWindowDays": s.windowDays,
	}

	if s.lastSnap != nil {
		stats["lastSnapshotID"] = s.lastSnap.ID
		stats["lastSnapshotAt"] = s.lastSnap.FetchedAt
		stats["recordCount"] = len(s.lastSnap.Records)
		stats["propertyCount"] = len(s.lastSnap.Properties)
		stats["urgentCount"] = len(s.lastSnap.Urgent)
	}

	return stats
}
