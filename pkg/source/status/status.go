// Package status exports errors produced by remote source adapters.
package status

import (
	"github.com/metacat-io/metacat/pkg/errors"
)

var (
	// ErrSourceUnavailable signals a network or authentication failure
	// against the remote repository. It is recoverable at the level of a
	// whole populate call, never of a single record.
	ErrSourceUnavailable = errors.New("remote source unavailable")

	// ErrNotFound indicates the requested path does not exist at the ref
	ErrNotFound = errors.New("path not found in remote source")

	// ErrInvalidRef indicates the ref could not be resolved to a commit
	ErrInvalidRef = errors.New("ref cannot be resolved")

	// ErrDuplicateIdentifier indicates two configurations in the same
	// listing resolve to the same file identifier. File identifiers are
	// the unit of addressing: letting one silently shadow the other
	// would sync an arbitrary half of the pair.
	ErrDuplicateIdentifier = errors.New("duplicate file identifier in listing")
)
