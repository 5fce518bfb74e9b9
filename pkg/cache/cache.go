// Package cache persists parsed records across process restarts.
//
// The cache is the unit of durability: everything else is re-derivable
// from the remote source plus the cache. Entries are keyed by the content
// hash of the raw configuration, so identical content read under
// different commits is never reprocessed.
package cache

import (
	"github.com/metacat-io/metacat/pkg/model"
)

// A Cache maps content hashes to previously parsed records, plus the
// metadata describing which remote coordinates it was built from.
//
// Store must be safe under concurrent calls: populate workers write
// entries as they resolve them.
type Cache interface {
	Initialize() error
	Close() error

	// Lookup returns the entry cached under a content hash, or
	// status.ErrEntryNotFound
	Lookup(contentHash string) (model.CachedEntry, error)

	// Store upserts an entry, idempotently, keyed by its content hash
	Store(entry model.CachedEntry) error

	// Meta returns the source coordinates this cache was built from,
	// or status.ErrMetaNotFound for a fresh cache
	Meta() (model.CacheMeta, error)

	// SetMeta records the source coordinates
	SetMeta(meta model.CacheMeta) error

	// Purge drops all entries and meta
	Purge() error
}
