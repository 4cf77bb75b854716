package analysis

import "github.com/leapstack-labs/articlecheck/pkg/fit"

// Option configures an analysis run.
type Option func(*options)

type options struct {
	concurrency int
	fitConfig   *fit.Config
}

func defaultOptions() *options {
	return &options{concurrency: 1}
}

// WithConcurrency evaluates up to n guidelines in parallel. Values below 1
// mean sequential evaluation. Result order does not depend on n.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.concurrency = n
	}
}

// WithFitConfig sets the rule configuration used for every guideline.
func WithFitConfig(cfg *fit.Config) Option {
	return func(o *options) {
		o.fitConfig = cfg
	}
}
