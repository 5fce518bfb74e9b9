package bdgr

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metacat-io/metacat/pkg/cache/status"
	"github.com/metacat-io/metacat/pkg/errors"
	"github.com/metacat-io/metacat/pkg/model"
)

func testCache(t *testing.T) *recordCache {
	c := New(t.TempDir()).(*recordCache)
	require.NoError(t, c.Initialize())
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func testEntry(t *testing.T, id, hash string) model.CachedEntry {
	rev, err := model.NewRecordRevision(model.Record{
		FileIdentifier: id,
		Metadata:       model.Metadata{Contacts: []model.Contact{{Organisation: "x"}}},
	}, "commit-1")
	require.NoError(t, err)
	serialized, err := jsoniter.Marshal(rev)
	require.NoError(t, err)
	return model.CachedEntry{
		ContentHash: hash,
		Record:      serialized,
		RawConfig:   []byte(`{"file_identifier":"` + id + `"}`),
		CommitID:    "commit-1",
	}
}

func TestStoreLookupRoundTrip(t *testing.T) {
	c := testCache(t)
	entry := testEntry(t, "a1", "hash-1")

	require.NoError(t, c.Store(entry))

	got, err := c.Lookup("hash-1")
	require.NoError(t, err)
	assert.Equal(t, entry, got, "lookup must return a byte-identical entry")

	var rev model.RecordRevision
	require.NoError(t, jsoniter.Unmarshal(got.Record, &rev))
	assert.Equal(t, "a1", rev.FileIdentifier)
}

func TestStoreIsIdempotent(t *testing.T) {
	c := testCache(t)
	entry := testEntry(t, "a1", "hash-1")

	require.NoError(t, c.Store(entry))
	require.NoError(t, c.Store(entry))

	got, err := c.Lookup("hash-1")
	require.NoError(t, err)
	assert.Equal(t, entry, got)
}

func TestLookupMiss(t *testing.T) {
	c := testCache(t)
	_, err := c.Lookup("no-such-hash")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrEntryNotFound), "got %v", err)
}

func TestStoreRequiresHash(t *testing.T) {
	c := testCache(t)
	err := c.Store(model.CachedEntry{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrHashIsRequired), "got %v", err)
}

func TestMeta(t *testing.T) {
	c := testCache(t)

	_, err := c.Meta()
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrMetaNotFound), "got %v", err)

	meta := model.CacheMeta{
		Endpoint:      "https://git.example.com",
		Project:       "cat/records",
		Ref:           "main",
		HeadCommit:    "abc123",
		SchemaVersion: model.CacheSchemaVersion,
	}
	require.NoError(t, c.SetMeta(meta))

	got, err := c.Meta()
	require.NoError(t, err)
	assert.Equal(t, meta, got)
}

func TestPurge(t *testing.T) {
	c := testCache(t)
	require.NoError(t, c.Store(testEntry(t, "a1", "hash-1")))
	require.NoError(t, c.SetMeta(model.CacheMeta{Project: "cat/records"}))

	require.NoError(t, c.Purge())

	_, err := c.Lookup("hash-1")
	assert.True(t, errors.Is(err, status.ErrEntryNotFound), "got %v", err)
	_, err = c.Meta()
	assert.True(t, errors.Is(err, status.ErrMetaNotFound), "got %v", err)
}

func TestNotInitialized(t *testing.T) {
	c := New(t.TempDir()).(*recordCache)
	_, err := c.Lookup("hash-1")
	assert.True(t, errors.Is(err, status.ErrNotInitialized), "got %v", err)
}

func TestSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	c := New(dir).(*recordCache)
	require.NoError(t, c.Initialize())
	entry := testEntry(t, "a1", "hash-1")
	require.NoError(t, c.Store(entry))
	require.NoError(t, c.Close())

	reopened := New(dir).(*recordCache)
	require.NoError(t, reopened.Initialize())
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Lookup("hash-1")
	require.NoError(t, err)
	assert.Equal(t, entry, got, "cache is the unit of durability across restarts")
}
