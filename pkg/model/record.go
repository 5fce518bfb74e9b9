package model

import (
	"fmt"
	"strings"
)

// Supported hierarchy levels for catalogue records.
const (
	HierarchyDataset    = "dataset"
	HierarchyProduct    = "product"
	HierarchyCollection = "collection"
	HierarchySeries     = "series"
	HierarchyService    = "service"
)

// Aggregation association types which may link a record to another one.
const (
	AssociationCrossReference     = "crossReference"
	AssociationLargerWorkCitation = "largerWorkCitation"
	AssociationIsComposedOf       = "isComposedOf"
	AssociationPhysicalReverseOf  = "physicalReverseOf"
)

// Record is the validated, structured representation of one catalogue
// metadata resource. Beyond the file identifier and the aggregation links,
// the nested elements are opaque to the synchronization core: they are
// mapped so that configurations round-trip, and consumed by exporters.
type Record struct {
	Schema         string         `json:"$schema,omitempty" yaml:"$schema,omitempty"`
	FileIdentifier string         `json:"file_identifier" yaml:"file_identifier"`
	HierarchyLevel string         `json:"hierarchy_level,omitempty" yaml:"hierarchy_level,omitempty"`
	Metadata       Metadata       `json:"metadata" yaml:"metadata"`
	Identification Identification `json:"identification" yaml:"identification"`
	Distribution   []Distribution `json:"distribution,omitempty" yaml:"distribution,omitempty"`
}

// Metadata describes the record itself: who maintains it and when it was stamped
type Metadata struct {
	Contacts     []Contact `json:"contacts,omitempty" yaml:"contacts,omitempty"`
	DateStamp    string    `json:"date_stamp,omitempty" yaml:"date_stamp,omitempty"`
	Language     string    `json:"language,omitempty" yaml:"language,omitempty"`
	CharacterSet string    `json:"character_set,omitempty" yaml:"character_set,omitempty"`
}

// Contact identifies an individual or organisation with a set of roles
type Contact struct {
	Organisation string   `json:"organisation,omitempty" yaml:"organisation,omitempty"`
	Individual   string   `json:"individual,omitempty" yaml:"individual,omitempty"`
	Email        string   `json:"email,omitempty" yaml:"email,omitempty"`
	OnlineURL    string   `json:"online_resource,omitempty" yaml:"online_resource,omitempty"`
	Role         []string `json:"role,omitempty" yaml:"role,omitempty"`
}

// Identification captures the citation elements of the resource the record describes
type Identification struct {
	Title        string        `json:"title,omitempty" yaml:"title,omitempty"`
	Abstract     string        `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Edition      string        `json:"edition,omitempty" yaml:"edition,omitempty"`
	Contacts     []Contact     `json:"contacts,omitempty" yaml:"contacts,omitempty"`
	Aggregations []Aggregation `json:"aggregations,omitempty" yaml:"aggregations,omitempty"`
	Extents      []Extent      `json:"extents,omitempty" yaml:"extents,omitempty"`
}

// Aggregation is a typed cross-reference from one record to another.
// The referenced identifier is a file identifier in the same catalogue.
type Aggregation struct {
	Identifier      string `json:"identifier" yaml:"identifier"`
	AssociationType string `json:"association_type,omitempty" yaml:"association_type,omitempty"`
	InitiativeType  string `json:"initiative_type,omitempty" yaml:"initiative_type,omitempty"`
}

// Extent bounds the resource in space
type Extent struct {
	Identifier  string       `json:"identifier,omitempty" yaml:"identifier,omitempty"`
	BoundingBox *BoundingBox `json:"bounding_box,omitempty" yaml:"bounding_box,omitempty"`
}

// BoundingBox in decimal degrees
type BoundingBox struct {
	WestLongitude float64 `json:"west_longitude" yaml:"west_longitude"`
	EastLongitude float64 `json:"east_longitude" yaml:"east_longitude"`
	SouthLatitude float64 `json:"south_latitude" yaml:"south_latitude"`
	NorthLatitude float64 `json:"north_latitude" yaml:"north_latitude"`
}

// Distribution describes one way to obtain the resource
type Distribution struct {
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
	Href   string `json:"href,omitempty" yaml:"href,omitempty"`
	Size   int64  `json:"size,omitempty" yaml:"size,omitempty"`
}

// Validate checks the structural requirements every record must meet:
// a non-empty file identifier and at least one metadata contact.
func Validate(record Record) error {
	if record.FileIdentifier == "" {
		return fmt.Errorf("empty field: file_identifier is empty")
	}
	if len(record.Metadata.Contacts) == 0 {
		return fmt.Errorf("empty field: record %s declares no metadata contact", record.FileIdentifier)
	}
	return nil
}

// SupportedSchema tells whether a declared $schema is one this
// generation of the catalogue knows how to map. An empty declaration is
// accepted and treated as the current version.
func SupportedSchema(schema string) bool {
	if schema == "" {
		return true
	}
	for _, known := range supportedSchemaMarkers {
		if strings.Contains(schema, known) {
			return true
		}
	}
	return false
}

var supportedSchemaMarkers = []string{
	"iso-19115-1-v2",
	"iso-19115-2-v2",
	"iso-19115-2-v3",
}

// RelatedIdentifiers returns the identifiers of all records this record
// aggregates, filtered by the given predicate over aggregation kinds.
// A nil predicate selects every aggregation carrying an identifier.
func (r Record) RelatedIdentifiers(pred func(Aggregation) bool) []string {
	related := make([]string, 0, len(r.Identification.Aggregations))
	for _, agg := range r.Identification.Aggregations {
		if agg.Identifier == "" {
			continue
		}
		if pred != nil && !pred(agg) {
			continue
		}
		related = append(related, agg.Identifier)
	}
	return related
}
