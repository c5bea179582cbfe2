package service

import (
	"time"

	"github.com/okian/preserve/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithFeedURLs sets the upstream sheet export URLs.
func WithFeedURLs(updatesURL, propertiesURL string) Option {
	return func(s *Service) {
		s.updatesURL = updatesURL
		s.propertiesURL = propertiesURL
	}
}

// WithCacheTTL sets how long fetched feed tables stay fresh.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithDueSoonWindow sets the due-soon horizon in days.
func WithDueSoonWindow(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.windowDays = days
		}
	}
}

// WithFetcher sets a custom feed fetcher, mainly for tests.
func WithFetcher(f Fetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.fetcher = f
		}
	}
}

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.clock = now
		}
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
