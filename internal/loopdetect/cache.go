package loopdetect

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

const (
	// cacheOpenTimeout is the maximum time to wait for the bolt database lock.
	cacheOpenTimeout = 5 * time.Second

	cacheFilePerm = 0o600
)

var loopBucket = []byte("loopdata")

// entryKey builds the cache key for one (device, user, folder) triple.
// The separator cannot appear in identifiers handled by the protocol.
func entryKey(deviceID, userID, folderID string) []byte {
	return []byte(deviceID + "\x00" + userID + "\x00" + folderID)
}

// entryPrefix builds the key prefix selecting all folders of a device,
// or of one user on a device.
func entryPrefix(deviceID, userID string) []byte {
	if userID == "" {
		return []byte(deviceID + "\x00")
	}
	return []byte(deviceID + "\x00" + userID + "\x00")
}

// Cache is the shared, transactional key-value store holding one Entry
// per (device, user, folder). A bbolt update transaction serializes all
// writers, so every read-modify-write of an entry runs in its own
// exclusive critical section without a process-wide lock in this code.
type Cache struct {
	db *bolt.DB
}

// OpenCache opens (or creates) the loop-detection database at path.
func OpenCache(path string) (*Cache, error) {
	db, err := bolt.Open(path, cacheFilePerm, &bolt.Options{Timeout: cacheOpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("opening loop cache: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(loopBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating loop bucket: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close releases the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// update runs fn against the entry of (deviceID, userID, folderID)
// inside one exclusive transaction. fn receives nil when no entry
// exists yet; the returned entry is written back.
func (c *Cache) update(deviceID, userID, folderID string, fn func(*Entry) (*Entry, error)) error {
	key := entryKey(deviceID, userID, folderID)

	return c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(loopBucket)

		var cur *Entry
		if raw := b.Get(key); raw != nil {
			cur = new(Entry)
			if err := json.Unmarshal(raw, cur); err != nil {
				// corrupt entry: detection bookkeeping is advisory,
				// start over instead of failing the synchronization
				cur = nil
			}
		}

		next, err := fn(cur)
		if err != nil {
			return err
		}

		raw, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("encoding loop entry: %w", err)
		}
		return b.Put(key, raw)
	})
}

// entries returns all entries matching the (device, user) prefix,
// keyed by folder id.
func (c *Cache) entries(deviceID, userID string) (map[string]Entry, error) {
	prefix := entryPrefix(deviceID, userID)
	found := make(map[string]Entry)

	err := c.db.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket(loopBucket).Cursor()
		for k, v := cur.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = cur.Next() {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				continue
			}
			parts := bytes.Split(k, []byte{0})
			found[string(parts[len(parts)-1])] = e
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return found, nil
}

// clearPrefix removes all entries matching prefix; an empty prefix
// removes every entry.
func (c *Cache) clearPrefix(prefix []byte) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		cur := tx.Bucket(loopBucket).Cursor()
		for k, _ := cur.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = cur.Next() {
			if err := cur.Delete(); err != nil {
				return err
			}
		}
		return nil
	})
}
