package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(id string) Record {
	return Record{
		FileIdentifier: id,
		HierarchyLevel: HierarchyDataset,
		Metadata: Metadata{
			Contacts: []Contact{{Organisation: "Mapping Centre", Role: []string{"pointOfContact"}}},
		},
		Identification: Identification{
			Title:   "test " + id,
			Edition: "1",
		},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(testRecord("a1")))

	missingID := testRecord("")
	require.Error(t, Validate(missingID))

	noContact := testRecord("a1")
	noContact.Metadata.Contacts = nil
	err := Validate(noContact)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metadata contact")
}

func TestNewRecordRevision(t *testing.T) {
	rev, err := NewRecordRevision(testRecord("a1"), "commit-1")
	require.NoError(t, err)
	assert.Equal(t, "a1", rev.FileIdentifier)
	assert.Equal(t, "commit-1", rev.FileRevision)

	_, err = NewRecordRevision(testRecord("a1"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file_revision")
}

func TestSummary(t *testing.T) {
	rev, err := NewRecordRevision(testRecord("a1"), "commit-1")
	require.NoError(t, err)
	assert.Equal(t, RecordSummary{
		FileIdentifier: "a1",
		HierarchyLevel: HierarchyDataset,
		Title:          "test a1",
		Edition:        "1",
	}, rev.Summary())
}

func TestRelatedIdentifiers(t *testing.T) {
	rec := testRecord("a1")
	rec.Identification.Aggregations = []Aggregation{
		{Identifier: "b2", AssociationType: AssociationCrossReference},
		{Identifier: "c3", AssociationType: AssociationLargerWorkCitation},
		{Identifier: "", AssociationType: AssociationCrossReference},
	}

	assert.Equal(t, []string{"b2", "c3"}, rec.RelatedIdentifiers(nil))

	onlyCrossRefs := func(agg Aggregation) bool {
		return agg.AssociationType == AssociationCrossReference
	}
	assert.Equal(t, []string{"b2"}, rec.RelatedIdentifiers(onlyCrossRefs))
}

func TestIdentifierFromPath(t *testing.T) {
	assert.Equal(t, "a1", IdentifierFromPath("records/a1.json"))
	assert.Equal(t, "a1", IdentifierFromPath("records/nested/a1.json"))
	assert.Empty(t, IdentifierFromPath("records/readme.md"))
	assert.Equal(t, "records/a1.json", GetPathToRecord("a1"))
}

func TestContentHash(t *testing.T) {
	h1 := ContentHash([]byte(`{"a":1}`))
	h2 := ContentHash([]byte(`{"a":1}`))
	h3 := ContentHash([]byte(`{"a":2}`))
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 40)
}

func TestCacheMetaSameSource(t *testing.T) {
	meta := CacheMeta{Endpoint: "https://git.example.com", Project: "cat/records", Ref: "main", SchemaVersion: CacheSchemaVersion}

	same := meta
	same.HeadCommit = "abc123"
	assert.True(t, meta.SameSource(same), "head commit must not participate in source identity")

	other := meta
	other.Project = "cat/other-records"
	assert.False(t, meta.SameSource(other))
}

func TestSupportedSchema(t *testing.T) {
	assert.True(t, SupportedSchema(""))
	assert.True(t, SupportedSchema("https://schemas.example.org/iso-19115-2-v3.json"))
	assert.False(t, SupportedSchema("https://schemas.example.org/iso-19115-2-v9.json"))
}
