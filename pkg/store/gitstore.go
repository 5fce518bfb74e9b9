package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/metacat-io/metacat/pkg/cache"
	"github.com/metacat-io/metacat/pkg/metrics"
	"github.com/metacat-io/metacat/pkg/model"
	"github.com/metacat-io/metacat/pkg/record"
	"github.com/metacat-io/metacat/pkg/source"
	"github.com/metacat-io/metacat/pkg/store/status"
)

// NewGitStore builds a catalogue synchronized from a remote source at
// the given ref, backed by a persistent local cache
func NewGitStore(src source.Source, c cache.Cache, ref string, opts ...Option) *GitStore {
	s := &GitStore{
		source:            src,
		cache:             c,
		ref:               ref,
		concurrentFetches: 1,
		l:                 zap.NewNop(),
	}
	for _, apply := range opts {
		apply(s)
	}
	s.parser = record.New(
		record.Logger(s.l),
		record.WithSchemaCheck(s.schemaCheck),
	)
	return s
}

// GitStore synchronizes records from a version-controlled remote
// repository and serves selection queries over the synchronized set.
//
// The in-memory record set is replaced wholesale at the end of each
// populate, never mutated incrementally: concurrent readers observe
// either the previous snapshot or the new one, never a mix.
type GitStore struct {
	source source.Source
	cache  cache.Cache
	ref    string

	parser            *record.Parser
	l                 *zap.Logger
	concurrentFetches int
	relatedPred       func(model.Aggregation) bool
	schemaCheck       bool
	mtr               *metrics.SyncMetrics

	// popMu serializes populates (single-writer model); mu guards the
	// swapped state observed by readers
	popMu sync.Mutex
	mu    sync.RWMutex

	records   map[string]model.RecordRevision
	head      string
	populated bool
	frozen    bool
}

var _ Catalogue = &GitStore{}

func (s *GitStore) String() string {
	return "gitstore[" + s.source.String() + "@" + s.ref + "]"
}

// HeadCommit observed during the last successful populate
func (s *GitStore) HeadCommit() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.head
}

// Frozen tells whether the store rejects further mutation
func (s *GitStore) Frozen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frozen
}

// Freeze marks the store read-only, e.g. after publishing
func (s *GitStore) Freeze() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frozen = true
	return nil
}

// Purge drops the populated set and the backing cache
func (s *GitStore) Purge(ctx context.Context) error {
	s.popMu.Lock()
	defer s.popMu.Unlock()

	if s.Frozen() {
		return status.ErrStoreFrozen
	}
	if err := s.cache.Purge(); err != nil {
		return err
	}

	s.mu.Lock()
	s.records = nil
	s.head = ""
	s.populated = false
	s.mu.Unlock()

	s.l.Info("store purged", zap.String("store", s.String()))
	return nil
}

// snapshot returns the current record set without copying: the map is
// never mutated after the swap
func (s *GitStore) snapshot() (map[string]model.RecordRevision, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records, s.populated
}

func (s *GitStore) swap(records map[string]model.RecordRevision, head string) {
	s.mu.Lock()
	s.records = records
	s.head = head
	s.populated = true
	s.mu.Unlock()

	if s.mtr != nil {
		s.mtr.RecordsHeld.Set(float64(len(records)))
	}
}
