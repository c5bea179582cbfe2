// Package urgency builds ordered worklists of records needing attention.
package urgency

// Option applies a configuration option to the Selector.
type Option func(*Selector)

// WithDueSoonWindow sets the forward horizon, in days, for the due-soon
// predicate.
func WithDueSoonWindow(days int) Option {
	return func(s *Selector) {
		if days > 0 {
			s.windowDays = days
		}
	}
}
