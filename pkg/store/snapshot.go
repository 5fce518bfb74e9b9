package store

import (
	"context"

	"github.com/metacat-io/metacat/pkg/model"
	"github.com/metacat-io/metacat/pkg/store/status"
)

// NewSnapshot builds an inherently read-only catalogue over a fixed set
// of record revisions, e.g. for exporters working from a published
// state. It is frozen from birth: mutation attempts fail with
// ErrStoreFrozen, and freezing it is meaningless (ErrFreezeUnsupported).
func NewSnapshot(head string, revisions ...model.RecordRevision) Catalogue {
	records := make(map[string]model.RecordRevision, len(revisions))
	for _, rev := range revisions {
		records[rev.FileIdentifier] = rev
	}
	return &snapshotStore{
		records: records,
		head:    head,
	}
}

type snapshotStore struct {
	records map[string]model.RecordRevision
	head    string
}

var _ Catalogue = &snapshotStore{}

func (s *snapshotStore) String() string {
	return "snapshot[" + s.head + "]"
}

func (s *snapshotStore) Populate(context.Context, ...PopulateOption) error {
	return status.ErrStoreFrozen
}

func (s *snapshotStore) Purge(context.Context) error {
	return status.ErrStoreFrozen
}

func (s *snapshotStore) Frozen() bool {
	return true
}

func (s *snapshotStore) Freeze() error {
	return status.ErrFreezeUnsupported
}

func (s *snapshotStore) HeadCommit() string {
	return s.head
}

func (s *snapshotStore) Select(identifiers []string) ([]model.RecordRevision, error) {
	return selectFrom(s.records, identifiers)
}

func (s *snapshotStore) SelectOne(identifier string) (model.RecordRevision, error) {
	return selectOneFrom(s.records, identifier)
}

func (s *snapshotStore) Summaries() []model.RecordSummary {
	return summarize(s.records)
}
