package model

// CacheSchemaVersion is the version of the cache layout. It is part of
// the cache file's contract: a cache written under a different version is
// purged rather than read.
const CacheSchemaVersion = 1

// CachedEntry is the unit of persistence in the local cache: one parsed
// record, keyed by the content hash of its raw configuration. Entries are
// never mutated in place: a changed file produces a new entry under its
// new hash and orphans the previous one.
type CachedEntry struct {
	ContentHash string `json:"content_hash"`
	// Record is the serialized form of the parsed RecordRevision
	Record []byte `json:"record"`
	// RawConfig is the original configuration payload, as fetched
	RawConfig []byte `json:"raw_config"`
	CommitID  string `json:"commit_id"`
}

// CacheMeta records the remote coordinates a cache was last built
// against. A cache built for one project is never reused for another:
// any coordinate mismatch triggers a purge.
type CacheMeta struct {
	Endpoint      string `json:"endpoint"`
	Project       string `json:"project"`
	Ref           string `json:"ref"`
	HeadCommit    string `json:"head_commit"`
	SchemaVersion int    `json:"schema_version"`
}

// SameSource tells whether another meta points at the same remote
// coordinates, regardless of the head commit observed.
func (m CacheMeta) SameSource(o CacheMeta) bool {
	return m.Endpoint == o.Endpoint &&
		m.Project == o.Project &&
		m.Ref == o.Ref &&
		m.SchemaVersion == o.SchemaVersion
}
