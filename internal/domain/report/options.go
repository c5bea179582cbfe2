// Package report computes aggregate KPIs over a classified record set.
package report

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithDueSoonWindow sets the forward horizon, in days, used for the
// due-soon count and the due-window buckets.
func WithDueSoonWindow(days int) Option {
	return func(a *Aggregator) {
		if days > 0 {
			a.windowDays = days
		}
	}
}
