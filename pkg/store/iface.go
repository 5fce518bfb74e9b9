// Package store synchronizes a local, validated, queryable copy of the
// catalogue record set against its remote source, and answers selection
// queries over the synchronized set.
package store

import (
	"context"

	"github.com/metacat-io/metacat/pkg/model"
)

// A Catalogue exposes a consistent view over a set of record revisions.
//
// Implementations either synchronize against a remote source (GitStore)
// or serve a fixed snapshot (NewSnapshot). Readers always observe a
// complete set: a populate in flight never leaks a partial view.
type Catalogue interface {
	// Populate reconciles the store against its source. Any single
	// fetch or parse failure aborts the whole call, leaving the store
	// in its prior state.
	Populate(ctx context.Context, opts ...PopulateOption) error

	// Select returns the records for the given identifiers. A nil set
	// selects every populated record. Missing identifiers surface as a
	// *status.RecordsNotFoundError carrying all of them.
	Select(identifiers []string) ([]model.RecordRevision, error)

	// SelectOne returns the record for one identifier, or
	// status.ErrRecordNotFound
	SelectOne(identifier string) (model.RecordRevision, error)

	// Summaries lists lightweight projections of every populated record
	Summaries() []model.RecordSummary

	// HeadCommit is the commit observed during the last successful
	// populate, empty before the first one
	HeadCommit() string

	// Frozen tells whether the store rejects mutation
	Frozen() bool

	// Freeze marks the store read-only. Stores that never support
	// mutation return status.ErrFreezeUnsupported.
	Freeze() error

	// Purge drops the populated set and any backing cache
	Purge(ctx context.Context) error

	String() string
}
