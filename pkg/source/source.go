// Package source defines read-only access to the remote repository
// holding the authoritative record configurations.
//
// Implementations are expected to be safe for concurrent use: each Fetch
// is independent and may be retried by the caller on transient failure.
package source

import (
	"context"
	"io"
)

// FileInfo describes one record configuration as listed at a ref
type FileInfo struct {
	// Identifier is the file identifier derived from the repository path
	Identifier string
	// ContentHash is the digest of the raw configuration, as reported
	// by the remote. It is the cache key for this payload.
	ContentHash string
	// Path locates the configuration within the repository
	Path string
}

// Source lists and fetches record configurations at a given ref
type Source interface {
	String() string

	// List yields every record configuration reachable at ref
	List(ctx context.Context, ref string) ([]FileInfo, error)

	// Fetch retrieves the raw bytes of a configuration by path, as it
	// exists at ref. The ref must match the listing the path came from:
	// content hashes are only valid for the ref they were listed at.
	Fetch(ctx context.Context, ref, path string) (io.ReadCloser, error)

	// HeadCommit resolves ref to a concrete commit identifier
	HeadCommit(ctx context.Context, ref string) (string, error)

	// Endpoint and Project identify the remote coordinates this
	// source is bound to, for cache invalidation purposes
	Endpoint() string
	Project() string
}
