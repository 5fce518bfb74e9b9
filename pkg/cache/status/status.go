// Package status exports errors produced by the local cache.
package status

import (
	"github.com/metacat-io/metacat/pkg/errors"
)

var (
	// ErrEntryNotFound indicates no entry is cached under a content hash
	ErrEntryNotFound = errors.New("cache entry not found")

	// ErrMetaNotFound indicates the cache carries no source metadata yet
	ErrMetaNotFound = errors.New("cache meta not found")

	// ErrHashIsRequired is returned when an entry without a content hash
	// is submitted for caching
	ErrHashIsRequired = errors.New("content hash is required")

	// ErrNotInitialized flags use of a cache before Initialize()
	ErrNotInitialized = errors.New("cache is not initialized")
)
