// Package dates normalizes free-text due-date values into calendar days.
package dates

import "time"

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithReference sets the reference day used to resolve prose dates such
// as "next Friday".
func WithReference(t time.Time) Option {
	return func(n *Normalizer) {
		if !t.IsZero() {
			n.ref = t
		}
	}
}
