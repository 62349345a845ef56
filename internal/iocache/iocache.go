// Package iocache memoizes bodies of successful upstream responses.
//
// The first level is an in-memory go-cache, the second level is an
// optional Badger v4 key-value store under ~/.cache/gnfish/http. Entries
// of both levels expire after the configured TTL.
package iocache

import (
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnsys"
	gocache "github.com/patrickmn/go-cache"
)

// Cache keeps response bodies by request key (usually the URL).
type Cache interface {
	// Get returns a cached body. The ok value is false on a miss.
	Get(key string) (body []byte, ok bool)

	// Set stores a body for the cache TTL.
	Set(key string, body []byte) error

	// Close flushes and closes the persistent level.
	Close() error
}

// entry is the value stored in Badger.
type entry struct {
	Key      string
	Body     []byte
	StoredAt time.Time
}

type cacheImpl struct {
	dir string
	ttl time.Duration
	mem *gocache.Cache
	db  *badger.DB
}

// NewMemory creates a cache that lives only as long as the process.
func NewMemory(ttl time.Duration) Cache {
	return &cacheImpl{
		ttl: ttl,
		mem: gocache.New(ttl, 2*ttl),
	}
}

// New creates a two-level cache persisted in dir. The directory is
// created if it does not exist, existing entries are kept.
func New(dir string, ttl time.Duration) (Cache, error) {
	res := &cacheImpl{
		dir: dir,
		ttl: ttl,
		mem: gocache.New(ttl, 2*ttl),
	}

	err := gnsys.MakeDir(dir)
	if err != nil {
		return nil, OpenError(dir, err)
	}

	options := badger.DefaultOptions(dir)
	options.Logger = nil // Disable badger's internal logging

	res.db, err = badger.Open(options)
	if err != nil {
		return nil, OpenError(dir, err)
	}

	slog.Info("Response cache opened", "dir", dir, "ttl", ttl)
	return res, nil
}

// Get looks up the memory level first and the persistent level second.
func (c *cacheImpl) Get(key string) ([]byte, bool) {
	if v, ok := c.mem.Get(key); ok {
		return v.([]byte), true
	}
	if c.db == nil {
		return nil, false
	}

	var valBytes []byte
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		valBytes, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		slog.Warn("Cannot read cached response", "key", key,
			"error", ReadError(key, err))
		return nil, false
	}
	if valBytes == nil {
		return nil, false
	}

	var ent entry
	enc := gnfmt.GNgob{}
	if err = enc.Decode(valBytes, &ent); err != nil {
		slog.Warn("Cannot decode cached response", "key", key,
			"error", ReadError(key, err))
		return nil, false
	}

	remaining := c.ttl - time.Since(ent.StoredAt)
	if remaining <= 0 {
		return nil, false
	}
	c.mem.Set(key, ent.Body, remaining)
	return ent.Body, true
}

// Set stores the body in both levels.
func (c *cacheImpl) Set(key string, body []byte) error {
	c.mem.Set(key, body, gocache.DefaultExpiration)
	if c.db == nil {
		return nil
	}

	enc := gnfmt.GNgob{}
	valBytes, err := enc.Encode(entry{
		Key:      key,
		Body:     body,
		StoredAt: time.Now(),
	})
	if err != nil {
		return WriteError(key, err)
	}

	err = c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), valBytes).WithTTL(c.ttl)
		return txn.SetEntry(e)
	})
	if err != nil {
		return WriteError(key, err)
	}
	return nil
}

// Close closes the Badger database.
func (c *cacheImpl) Close() error {
	c.mem.Flush()
	if c.db == nil {
		return nil
	}

	err := c.db.Close()
	c.db = nil
	if err != nil {
		slog.Error("Cannot close response cache", "error", err)
		return err
	}

	slog.Info("Response cache closed", "dir", c.dir)
	return nil
}
