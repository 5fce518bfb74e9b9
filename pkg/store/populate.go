package store

import (
	"context"
	"io/ioutil"
	"sort"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	cachestatus "github.com/metacat-io/metacat/pkg/cache/status"
	"github.com/metacat-io/metacat/pkg/errors"
	"github.com/metacat-io/metacat/pkg/model"
	recordstatus "github.com/metacat-io/metacat/pkg/record/status"
	"github.com/metacat-io/metacat/pkg/source"
	"github.com/metacat-io/metacat/pkg/store/status"
)

// Populate reconciles the store against the remote source.
//
// The remote listing is compared against the local cache: only changed
// or new configurations are fetched (across a bounded worker pool) and
// parsed, everything else is deserialized from the cache. On success the
// in-memory set is swapped atomically and the head commit recorded. On
// any failure the store keeps its prior snapshot: a partial catalogue is
// worse than a stale one.
func (s *GitStore) Populate(ctx context.Context, opts ...PopulateOption) error {
	s.popMu.Lock()
	defer s.popMu.Unlock()

	if s.Frozen() {
		return status.ErrStoreFrozen
	}

	var settings populateSettings
	for _, apply := range opts {
		apply(&settings)
	}

	start := time.Now()

	head, err := s.source.HeadCommit(ctx, s.ref)
	if err != nil {
		return err
	}
	if err = s.reconcileMeta(); err != nil {
		return err
	}

	files, err := s.source.List(ctx, s.ref)
	if err != nil {
		return err
	}
	byID := make(map[string]source.FileInfo, len(files))
	for _, info := range files {
		byID[info.Identifier] = info
	}

	excluded := asSet(settings.exclude)
	frontier, err := initialScope(settings.include, excluded, byID)
	if err != nil {
		return err
	}

	resolved := make(map[string]model.RecordRevision, len(frontier))
	for len(frontier) > 0 {
		batch, err := s.resolveBatch(ctx, head, frontier, byID)
		if err != nil {
			return err
		}
		for id, rev := range batch {
			resolved[id] = rev
		}
		if !settings.includeRelated {
			break
		}
		frontier, err = s.expandRelated(batch, resolved, excluded, byID)
		if err != nil {
			return err
		}
		// termination: each round only adds identifiers from the
		// listing, so the closure is bounded by the record count
		if len(resolved) > len(files) {
			break
		}
	}

	// persist the meta before exposing the new snapshot: a failure here
	// must leave the store in its prior state
	meta := s.currentMeta()
	meta.HeadCommit = head
	if err := s.cache.SetMeta(meta); err != nil {
		return err
	}
	s.swap(resolved, head)

	if s.mtr != nil {
		s.mtr.PopulateTime.Observe(time.Since(start).Seconds())
	}
	s.l.Info("store populated",
		zap.String("store", s.String()),
		zap.String("head_commit", head),
		zap.Int("records", len(resolved)),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

// currentMeta yields the source coordinates this store is bound to
func (s *GitStore) currentMeta() model.CacheMeta {
	return model.CacheMeta{
		Endpoint:      s.source.Endpoint(),
		Project:       s.source.Project(),
		Ref:           s.ref,
		SchemaVersion: model.CacheSchemaVersion,
	}
}

// reconcileMeta purges the cache when it was built against different
// remote coordinates or an older cache layout
func (s *GitStore) reconcileMeta() error {
	meta, err := s.cache.Meta()
	switch {
	case errors.Is(err, cachestatus.ErrMetaNotFound):
		return nil
	case err != nil:
		return err
	case meta.SameSource(s.currentMeta()):
		return nil
	}
	s.l.Info("cache coordinates changed, purging",
		zap.String("cached_project", meta.Project),
		zap.String("project", s.source.Project()),
	)
	return s.cache.Purge()
}

// initialScope computes (include or all) minus exclude. Included
// identifiers absent from the listing surface immediately.
func initialScope(include []string, excluded map[string]struct{}, byID map[string]source.FileInfo) ([]string, error) {
	var scope []string
	if include == nil {
		scope = make([]string, 0, len(byID))
		for id := range byID {
			if _, skip := excluded[id]; skip {
				continue
			}
			scope = append(scope, id)
		}
		return scope, nil
	}

	var missing []string
	scope = make([]string, 0, len(include))
	seen := make(map[string]struct{}, len(include))
	for _, id := range include {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, skip := excluded[id]; skip {
			continue
		}
		if _, known := byID[id]; !known {
			missing = append(missing, id)
			continue
		}
		scope = append(scope, id)
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &status.RecordsNotFoundError{MissingIDs: missing}
	}
	return scope, nil
}

// expandRelated follows aggregation links out of the last resolved
// batch and returns the identifiers still to resolve. A link to an
// identifier absent from the listing fails the populate.
func (s *GitStore) expandRelated(batch, resolved map[string]model.RecordRevision,
	excluded map[string]struct{}, byID map[string]source.FileInfo) ([]string, error) {
	var next []string
	var missing []string
	queued := make(map[string]struct{})
	for _, rev := range batch {
		for _, rid := range rev.RelatedIdentifiers(s.relatedPred) {
			if _, skip := excluded[rid]; skip {
				continue
			}
			if _, done := resolved[rid]; done {
				continue
			}
			if _, dup := queued[rid]; dup {
				continue
			}
			if _, known := byID[rid]; !known {
				missing = append(missing, rid)
				continue
			}
			queued[rid] = struct{}{}
			next = append(next, rid)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &status.RecordsNotFoundError{MissingIDs: missing}
	}
	return next, nil
}

// recordEvent catches a single resolved record with possible error
type recordEvent struct {
	id  string
	rev model.RecordRevision
	err error
}

// resolveBatch resolves a set of identifiers: cache hits are
// deserialized sequentially, misses fan out across a bounded worker
// pool for fetch, parse and cache store. Each identifier is handled at
// most once.
func (s *GitStore) resolveBatch(ctx context.Context, head string, ids []string,
	byID map[string]source.FileInfo) (map[string]model.RecordRevision, error) {

	out := make(map[string]model.RecordRevision, len(ids))

	// sequential cache-hit pass
	misses := make([]string, 0, len(ids))
	for _, id := range ids {
		info := byID[id]
		entry, err := s.cache.Lookup(info.ContentHash)
		if err != nil {
			if errors.Is(err, cachestatus.ErrEntryNotFound) {
				misses = append(misses, id)
				continue
			}
			return nil, err
		}
		var rev model.RecordRevision
		if err := jsoniter.Unmarshal(entry.Record, &rev); err != nil {
			// unreadable row, treat as a miss and refetch
			s.l.Warn("cache row not deserializable, refetching",
				zap.String("file_identifier", id), zap.Error(err))
			misses = append(misses, id)
			continue
		}
		if s.mtr != nil {
			s.mtr.CacheHits.Inc()
		}
		out[id] = rev
	}
	if len(misses) == 0 {
		return out, nil
	}
	if s.mtr != nil {
		s.mtr.CacheMisses.Add(float64(len(misses)))
	}

	// fan out fetch+parse for cache misses
	var workers, wg sync.WaitGroup
	keyChan := make(chan string)
	eventChan := make(chan recordEvent)
	doneChan := make(chan struct{}, 1)
	defer close(doneChan)

	for i := 0; i < minInt(s.concurrentFetches, len(misses)); i++ {
		workers.Add(1)
		go s.fetchWorker(ctx, head, byID, keyChan, eventChan, &workers)
	}

	// distribute work, stop on first error reported by a worker
	wg.Add(1)
	go func(wg *sync.WaitGroup) {
		defer wg.Done()
		defer close(keyChan)
		for _, id := range misses {
			select {
			case keyChan <- id:
			case <-doneChan:
				return
			}
		}
	}(&wg)

	wg.Add(1)
	go func(wg *sync.WaitGroup) {
		defer wg.Done()
		workers.Wait()
		close(eventChan)
	}(&wg)

	var werr error
	for ev := range eventChan {
		if ev.err != nil && werr == nil {
			werr = ev.err
			doneChan <- struct{}{} // interrupts key distribution (non-blocking)
			for range eventChan {
			} // wait for close
			break
		}
		out[ev.id] = ev.rev
	}
	wg.Wait()

	if werr != nil {
		return nil, werr
	}
	return out, nil
}

// fetchWorker resolves identifiers from the remote, one at a time
func (s *GitStore) fetchWorker(ctx context.Context, head string, byID map[string]source.FileInfo,
	input <-chan string, output chan<- recordEvent, wg *sync.WaitGroup) {
	defer wg.Done()
	for id := range input {
		rev, err := s.resolveRemote(ctx, head, byID[id])
		output <- recordEvent{id: id, rev: rev, err: err}
	}
}

// resolveRemote fetches, parses and caches a single configuration
func (s *GitStore) resolveRemote(ctx context.Context, head string, info source.FileInfo) (model.RecordRevision, error) {
	if s.mtr != nil {
		s.mtr.Fetches.Inc()
	}
	rdr, err := s.source.Fetch(ctx, s.ref, info.Path)
	if err != nil {
		return model.RecordRevision{}, err
	}
	raw, err := ioutil.ReadAll(rdr)
	_ = rdr.Close()
	if err != nil {
		return model.RecordRevision{}, err
	}

	rev, err := s.parser.Parse(raw, head)
	if err != nil {
		if s.mtr != nil {
			s.mtr.ParseFailures.Inc()
		}
		return model.RecordRevision{}, err
	}
	if rev.FileIdentifier != info.Identifier {
		return model.RecordRevision{}, recordstatus.ErrValidation.WrapMessage(
			"file identifiers in configuration %q and path %q don't match", rev.FileIdentifier, info.Path)
	}

	serialized, err := jsoniter.Marshal(rev)
	if err != nil {
		return model.RecordRevision{}, err
	}
	if err := s.cache.Store(model.CachedEntry{
		ContentHash: info.ContentHash,
		Record:      serialized,
		RawConfig:   raw,
		CommitID:    head,
	}); err != nil {
		return model.RecordRevision{}, err
	}
	s.l.Debug("record resolved from remote",
		zap.String("file_identifier", info.Identifier),
		zap.String("content_hash", info.ContentHash),
	)
	return rev, nil
}

func asSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
