package netpbm

import "go.uber.org/zap"

// DefaultLineWidth is the line length after which P3 output wraps.
const DefaultLineWidth = 70

// TriplePolicy decides how P3 pixel tokens are grouped into triples.
type TriplePolicy int

const (
	// TriplesPerLine groups tokens within each line. A line whose token count
	// is not a multiple of three is an error.
	TriplesPerLine TriplePolicy = iota
	// TriplesAcrossLines lets a triple span line breaks.
	TriplesAcrossLines
)

type options struct {
	logger    *zap.SugaredLogger
	lineWidth int
	triples   TriplePolicy
}

// Option configures a load or save.
type Option func(*options)

func defaultOptions() options {
	return options{
		logger:    zap.NewNop().Sugar(),
		lineWidth: DefaultLineWidth,
		triples:   TriplesPerLine,
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger used for debug and warning events.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithLineWidth sets the P3 wrap limit. Values below 1 keep the default.
func WithLineWidth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.lineWidth = n
		}
	}
}

// WithTextTriples selects how P3 tokens are grouped.
func WithTextTriples(p TriplePolicy) Option {
	return func(o *options) {
		o.triples = p
	}
}
