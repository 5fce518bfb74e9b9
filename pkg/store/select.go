package store

import (
	"sort"

	"github.com/metacat-io/metacat/pkg/model"
	"github.com/metacat-io/metacat/pkg/store/status"
)

// Select returns the records for the given identifiers, or every
// populated record when identifiers is nil. Every missing identifier is
// reported, not just the first one.
func (s *GitStore) Select(identifiers []string) ([]model.RecordRevision, error) {
	records, populated := s.snapshot()
	if !populated {
		return nil, status.ErrNotPopulated
	}
	return selectFrom(records, identifiers)
}

// SelectOne returns the record for a single identifier
func (s *GitStore) SelectOne(identifier string) (model.RecordRevision, error) {
	records, populated := s.snapshot()
	if !populated {
		return model.RecordRevision{}, status.ErrNotPopulated
	}
	return selectOneFrom(records, identifier)
}

// Summaries lists lightweight projections of the populated set, in
// identifier order
func (s *GitStore) Summaries() []model.RecordSummary {
	records, _ := s.snapshot()
	return summarize(records)
}

func selectFrom(records map[string]model.RecordRevision, identifiers []string) ([]model.RecordRevision, error) {
	if identifiers == nil {
		out := make([]model.RecordRevision, 0, len(records))
		for _, rev := range records {
			out = append(out, rev)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].FileIdentifier < out[j].FileIdentifier })
		return out, nil
	}

	out := make([]model.RecordRevision, 0, len(identifiers))
	var missing []string
	seen := make(map[string]struct{}, len(identifiers))
	for _, id := range identifiers {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		rev, ok := records[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		out = append(out, rev)
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &status.RecordsNotFoundError{MissingIDs: missing}
	}
	return out, nil
}

func selectOneFrom(records map[string]model.RecordRevision, identifier string) (model.RecordRevision, error) {
	rev, ok := records[identifier]
	if !ok {
		return model.RecordRevision{}, status.ErrRecordNotFound.WrapMessage("identifier %q", identifier)
	}
	return rev, nil
}

func summarize(records map[string]model.RecordRevision) []model.RecordSummary {
	summaries := make(model.RecordSummaries, 0, len(records))
	for _, rev := range records {
		summaries = append(summaries, rev.Summary())
	}
	sort.Sort(summaries)
	return summaries
}
