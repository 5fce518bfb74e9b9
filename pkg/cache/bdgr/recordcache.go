// Package bdgr implements the record cache on top of a badger database.
package bdgr

import (
	"fmt"
	"sync"

	"github.com/dgraph-io/badger"
	jsoniter "github.com/json-iterator/go"

	"github.com/metacat-io/metacat/pkg/cache"
	"github.com/metacat-io/metacat/pkg/cache/status"
	"github.com/metacat-io/metacat/pkg/model"
)

var (
	entryPref = [6]byte{'e', 'n', 't', 'r', 'y', ':'}
	metaKey   = []byte("meta:source")
)

func badgerRewriteError(err error) error {
	switch err {
	case badger.ErrKeyNotFound:
		return status.ErrEntryNotFound
	case badger.ErrEmptyKey:
		return status.ErrHashIsRequired
	default:
		return err
	}
}

func badgerRewriteEntryError(item *badger.Item, err error) (model.CachedEntry, error) {
	if err != nil {
		return model.CachedEntry{}, badgerRewriteError(err)
	}

	data, err := item.ValueCopy(nil)
	if err != nil {
		return model.CachedEntry{}, badgerRewriteError(err)
	}

	var result model.CachedEntry
	if e := jsoniter.Unmarshal(data, &result); e != nil {
		return model.CachedEntry{}, fmt.Errorf("json unmarshal failed: %v", e)
	}
	return result, nil
}

// New creates a badger based record cache rooted at baseDir
func New(baseDir string) cache.Cache {
	return &recordCache{
		baseDir: baseDir,
	}
}

type recordCache struct {
	baseDir string
	db      *badger.DB
	init    sync.Once
	close   sync.Once
}

func (c *recordCache) Initialize() error {
	var err error

	c.init.Do(func() {
		var db *badger.DB
		opts := badger.DefaultOptions(c.baseDir)
		opts.Logger = nil
		db, err = badger.Open(opts)
		if err != nil {
			return
		}
		c.db = db
	})

	return err
}

func (c *recordCache) Close() error {
	var err error

	c.close.Do(func() {
		if c.db != nil {
			err = c.db.Close()
			if err == nil {
				c.db = nil
			}
		}
	})

	return err
}

func (c *recordCache) entryKey(contentHash string) []byte {
	return append(entryPref[:], contentHash...)
}

func (c *recordCache) Lookup(contentHash string) (model.CachedEntry, error) {
	if c.db == nil {
		return model.CachedEntry{}, status.ErrNotInitialized
	}
	var entry model.CachedEntry
	berr := c.db.View(func(txn *badger.Txn) error {
		item, err := badgerRewriteEntryError(txn.Get(c.entryKey(contentHash)))
		if err != nil {
			return err
		}
		entry = item
		return nil
	})

	if berr != nil {
		return model.CachedEntry{}, berr
	}
	return entry, nil
}

func (c *recordCache) Store(entry model.CachedEntry) error {
	if c.db == nil {
		return status.ErrNotInitialized
	}
	if entry.ContentHash == "" {
		return status.ErrHashIsRequired
	}
	data, err := jsoniter.Marshal(entry)
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return badgerRewriteError(txn.Set(c.entryKey(entry.ContentHash), data))
	})
}

func (c *recordCache) Meta() (model.CacheMeta, error) {
	if c.db == nil {
		return model.CacheMeta{}, status.ErrNotInitialized
	}
	var meta model.CacheMeta
	berr := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(metaKey)
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return status.ErrMetaNotFound
			}
			return badgerRewriteError(err)
		}
		data, err := item.ValueCopy(nil)
		if err != nil {
			return badgerRewriteError(err)
		}
		return jsoniter.Unmarshal(data, &meta)
	})

	if berr != nil {
		return model.CacheMeta{}, berr
	}
	return meta, nil
}

func (c *recordCache) SetMeta(meta model.CacheMeta) error {
	if c.db == nil {
		return status.ErrNotInitialized
	}
	data, err := jsoniter.Marshal(meta)
	if err != nil {
		return err
	}
	return c.db.Update(func(txn *badger.Txn) error {
		return badgerRewriteError(txn.Set(metaKey, data))
	})
}

func (c *recordCache) Purge() error {
	if c.db == nil {
		return status.ErrNotInitialized
	}
	return c.db.Update(func(txn *badger.Txn) error {
		opts := badger.IteratorOptions{
			PrefetchValues: false,
			PrefetchSize:   100,
			Reverse:        false,
			AllVersions:    false,
		}
		iter := txn.NewIterator(opts)
		defer iter.Close()

		keys := make([][]byte, 0, 1024)
		for iter.Rewind(); iter.Valid(); iter.Next() {
			keys = append(keys, iter.Item().KeyCopy(nil))
		}
		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		return nil
	})
}
