package store

import (
	"go.uber.org/zap"

	"github.com/metacat-io/metacat/pkg/metrics"
	"github.com/metacat-io/metacat/pkg/model"
)

// Option is a functor to build a git store with some options
type Option func(*GitStore)

// Logger injects a logging facility into store operations
func Logger(l *zap.Logger) Option {
	return func(s *GitStore) {
		if l != nil {
			s.l = l
		}
	}
}

// ConcurrentFetches tunes the level of concurrency when fetching
// cache-miss records from the remote (defaults to serial)
func ConcurrentFetches(n int) Option {
	return func(s *GitStore) {
		if n > 0 {
			s.concurrentFetches = n
		}
	}
}

// RelatedPredicate configures which aggregation kinds count as
// "related" for closure expansion. The default follows every
// aggregation carrying an identifier.
func RelatedPredicate(pred func(model.Aggregation) bool) Option {
	return func(s *GitStore) {
		s.relatedPred = pred
	}
}

// WithSchemaCheck enables the parser's round-trip schema-support check
// during populate
func WithSchemaCheck(enabled bool) Option {
	return func(s *GitStore) {
		s.schemaCheck = enabled
	}
}

// WithMetrics wires sync instrumentation into the store
func WithMetrics(m *metrics.SyncMetrics) Option {
	return func(s *GitStore) {
		s.mtr = m
	}
}

// PopulateOption scopes a single populate call
type PopulateOption func(*populateSettings)

type populateSettings struct {
	include        []string
	exclude        []string
	includeRelated bool
}

// Include restricts the populate to the given identifiers (plus their
// relations when IncludeRelated is set)
func Include(identifiers ...string) PopulateOption {
	return func(ps *populateSettings) {
		ps.include = append(ps.include, identifiers...)
	}
}

// Exclude removes identifiers from the populate scope. Exclusion takes
// precedence over inclusion, at every closure expansion round.
func Exclude(identifiers ...string) PopulateOption {
	return func(ps *populateSettings) {
		ps.exclude = append(ps.exclude, identifiers...)
	}
}

// IncludeRelated expands the populate scope by iteratively following
// aggregation links until a fixed point is reached
func IncludeRelated() PopulateOption {
	return func(ps *populateSettings) {
		ps.includeRelated = true
	}
}
