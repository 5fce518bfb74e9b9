package model

import "fmt"

// RecordRevision ties a record to the remote version its configuration
// was read at. The revision is opaque to the core: a commit identifier is
// the recommended value. Instances are value objects, immutable once built.
type RecordRevision struct {
	Record       `yaml:",inline"`
	FileRevision string `json:"file_revision" yaml:"file_revision"`
}

// NewRecordRevision builds a revision from a validated record
func NewRecordRevision(record Record, revision string) (RecordRevision, error) {
	if revision == "" {
		return RecordRevision{}, fmt.Errorf("empty field: file_revision is empty for record %q", record.FileIdentifier)
	}
	if err := Validate(record); err != nil {
		return RecordRevision{}, err
	}
	return RecordRevision{Record: record, FileRevision: revision}, nil
}

// Summary projects the record onto its listing form
func (r RecordRevision) Summary() RecordSummary {
	return RecordSummary{
		FileIdentifier: r.FileIdentifier,
		HierarchyLevel: r.HierarchyLevel,
		Title:          r.Identification.Title,
		Edition:        r.Identification.Edition,
	}
}

// RecordSummary is a lightweight projection of a record, used for
// listings without materializing the full structure.
type RecordSummary struct {
	FileIdentifier string `json:"file_identifier" yaml:"file_identifier"`
	HierarchyLevel string `json:"hierarchy_level,omitempty" yaml:"hierarchy_level,omitempty"`
	Title          string `json:"title,omitempty" yaml:"title,omitempty"`
	Edition        string `json:"edition,omitempty" yaml:"edition,omitempty"`
}

// RecordSummaries sort by file identifier
type RecordSummaries []RecordSummary

func (s RecordSummaries) Len() int           { return len(s) }
func (s RecordSummaries) Swap(i, j int)      { s[i], s[j] = s[j], s[i] }
func (s RecordSummaries) Less(i, j int) bool { return s[i].FileIdentifier < s[j].FileIdentifier }
