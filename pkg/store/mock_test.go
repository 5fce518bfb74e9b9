package store

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"strings"
	"sync"
	"sync/atomic"

	jsoniter "github.com/json-iterator/go"

	cachestatus "github.com/metacat-io/metacat/pkg/cache/status"
	"github.com/metacat-io/metacat/pkg/model"
	"github.com/metacat-io/metacat/pkg/source"
	sourcestatus "github.com/metacat-io/metacat/pkg/source/status"
)

// mockSource serves configurations from an in-memory map and counts
// fetches, so tests can assert that cached content is never refetched
type mockSource struct {
	endpoint string
	project  string
	head     string
	configs  map[string][]byte // identifier -> raw config

	fetchCount int32
	failFetch  map[string]bool
}

func newMockSource(project, head string, configs map[string][]byte) *mockSource {
	return &mockSource{
		endpoint: "mock://remote",
		project:  project,
		head:     head,
		configs:  configs,
	}
}

func (m *mockSource) String() string   { return m.endpoint + "/" + m.project }
func (m *mockSource) Endpoint() string { return m.endpoint }
func (m *mockSource) Project() string  { return m.project }

func (m *mockSource) List(_ context.Context, _ string) ([]source.FileInfo, error) {
	infos := make([]source.FileInfo, 0, len(m.configs))
	for id, raw := range m.configs {
		infos = append(infos, source.FileInfo{
			Identifier:  id,
			ContentHash: model.ContentHash(raw),
			Path:        model.GetPathToRecord(id),
		})
	}
	return infos, nil
}

func (m *mockSource) Fetch(_ context.Context, _ string, pth string) (io.ReadCloser, error) {
	atomic.AddInt32(&m.fetchCount, 1)
	id := model.IdentifierFromPath(pth)
	if m.failFetch[id] {
		return nil, sourcestatus.ErrSourceUnavailable.WrapMessage("simulated outage on %q", id)
	}
	raw, ok := m.configs[id]
	if !ok {
		return nil, sourcestatus.ErrNotFound.WrapMessage("%s", pth)
	}
	return ioutil.NopCloser(strings.NewReader(string(raw))), nil
}

func (m *mockSource) HeadCommit(_ context.Context, _ string) (string, error) {
	return m.head, nil
}

func (m *mockSource) fetches() int {
	return int(atomic.LoadInt32(&m.fetchCount))
}

// memCache is an in-memory cache.Cache recording purge calls
type memCache struct {
	mu          sync.Mutex
	entries     map[string]model.CachedEntry
	meta        *model.CacheMeta
	purges      int
	failSetMeta error
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]model.CachedEntry)}
}

func (c *memCache) Initialize() error { return nil }
func (c *memCache) Close() error      { return nil }

func (c *memCache) Lookup(contentHash string) (model.CachedEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[contentHash]
	if !ok {
		return model.CachedEntry{}, cachestatus.ErrEntryNotFound
	}
	return entry, nil
}

func (c *memCache) Store(entry model.CachedEntry) error {
	if entry.ContentHash == "" {
		return cachestatus.ErrHashIsRequired
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[entry.ContentHash] = entry
	return nil
}

func (c *memCache) Meta() (model.CacheMeta, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.meta == nil {
		return model.CacheMeta{}, cachestatus.ErrMetaNotFound
	}
	return *c.meta, nil
}

func (c *memCache) SetMeta(meta model.CacheMeta) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failSetMeta != nil {
		return c.failSetMeta
	}
	c.meta = &meta
	return nil
}

func (c *memCache) Purge() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]model.CachedEntry)
	c.meta = nil
	c.purges++
	return nil
}

func (c *memCache) purgeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.purges
}

// buildConfig renders a record configuration linking to related records
func buildConfig(id string, related ...string) []byte {
	aggregations := make([]model.Aggregation, 0, len(related))
	for _, rid := range related {
		aggregations = append(aggregations, model.Aggregation{
			Identifier:      rid,
			AssociationType: model.AssociationCrossReference,
		})
	}
	rec := model.Record{
		FileIdentifier: id,
		HierarchyLevel: model.HierarchyDataset,
		Metadata: model.Metadata{
			Contacts: []model.Contact{{Organisation: "Mapping Centre", Role: []string{"pointOfContact"}}},
		},
		Identification: model.Identification{
			Title:        fmt.Sprintf("test %s", id),
			Edition:      "1",
			Aggregations: aggregations,
		},
	}
	raw, _ := jsoniter.Marshal(rec)
	return raw
}
