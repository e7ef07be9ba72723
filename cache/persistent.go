// Package cache is a BoltDB-backed response cache with a write-through
// in-memory layer. Catalog fetches are cached here so repeated lookups of the
// same resource do not burn API quota.
package cache

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	bolt "go.etcd.io/bbolt"

	"catalog-bot-go/logcolors"
	"catalog-bot-go/utils"
)

const bucketName = "catalog"

// PersistentCache wraps BoltDB with an in-memory cache for fast access.
type PersistentCache struct {
	db                 *bolt.DB
	memCache           sync.Map
	dbPath             string
	backupPath         string
	compressionEnabled bool
}

// Entry is a cached value with its expiry. Value may be gzip+base64
// compressed when compression is enabled.
type Entry struct {
	Value      string `json:"value"`
	Expiration int64  `json:"expiration"` // unix nanos, 0 means no expiry
}

func (e Entry) expired() bool {
	return e.Expiration != 0 && time.Now().UnixNano() > e.Expiration
}

// NewPersistentCache opens (or creates) the cache database at dbPath and
// preloads its entries into memory.
func NewPersistentCache(dbPath, backupPath string, compressionEnabled bool) (*PersistentCache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %v", err)
	}
	if err := os.MkdirAll(backupPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %v", err)
	}

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %v", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache bucket: %v", err)
	}

	pc := &PersistentCache{
		db:                 db,
		dbPath:             dbPath,
		backupPath:         backupPath,
		compressionEnabled: compressionEnabled,
	}

	if err := pc.loadToMemory(); err != nil {
		log.Warnf("%s Failed to preload cache to memory: %v", logcolors.LogCache, err)
	}

	log.Infof("%s Persistent cache initialized at %s (compression: %v)", logcolors.LogCacheInit, dbPath, compressionEnabled)
	return pc, nil
}

func (pc *PersistentCache) loadToMemory() error {
	count := 0
	err := pc.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return nil
		}

		return b.ForEach(func(k, v []byte) error {
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				log.Warnf("%s Failed to unmarshal cache entry for key %s: %v", logcolors.LogCache, string(k), err)
				return nil
			}
			if entry.expired() {
				return nil
			}
			pc.memCache.Store(string(k), entry)
			count++
			return nil
		})
	})
	if err != nil {
		return err
	}

	log.Infof("%s Loaded %d entries from disk to memory", logcolors.LogCache, count)
	return nil
}

// Get retrieves a value from the cache. Expired entries are dropped and
// reported as misses.
func (pc *PersistentCache) Get(key string) (string, bool) {
	raw, ok := pc.memCache.Load(key)
	if !ok {
		return "", false
	}
	entry := raw.(Entry)
	if entry.expired() {
		pc.Delete(key)
		return "", false
	}

	if pc.compressionEnabled {
		decompressed, err := utils.DecompressString(entry.Value)
		if err != nil {
			log.Errorf("%s Error decompressing cache value for key %s: %v", logcolors.LogCache, key, err)
			return "", false
		}
		return decompressed, true
	}
	return entry.Value, true
}

// Set stores a value in both memory and disk with the given TTL. A zero TTL
// means the entry never expires.
func (pc *PersistentCache) Set(key, value string, ttl time.Duration) error {
	finalValue := value
	if pc.compressionEnabled {
		compressed, err := utils.CompressString(value)
		if err != nil {
			log.Errorf("%s Error compressing cache value for key %s: %v", logcolors.LogCache, key, err)
			return err
		}
		finalValue = compressed
	}

	entry := Entry{Value: finalValue}
	if ttl > 0 {
		entry.Expiration = time.Now().Add(ttl).UnixNano()
	}

	pc.memCache.Store(key, entry)

	return pc.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("bucket not found")
		}
		data, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), data)
	})
}

// Delete removes a key from memory and disk.
func (pc *PersistentCache) Delete(key string) error {
	pc.memCache.Delete(key)

	return pc.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		if b == nil {
			return fmt.Errorf("bucket not found")
		}
		return b.Delete([]byte(key))
	})
}

// Clear removes all entries.
func (pc *PersistentCache) Clear() error {
	pc.memCache.Range(func(key, value interface{}) bool {
		pc.memCache.Delete(key)
		return true
	})

	return pc.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketName)); err != nil {
			return err
		}
		_, err := tx.CreateBucket([]byte(bucketName))
		return err
	})
}

// Sweep drops expired entries from memory and disk. Run it periodically from
// a background goroutine.
func (pc *PersistentCache) Sweep() int {
	dropped := 0
	pc.memCache.Range(func(k, v interface{}) bool {
		if v.(Entry).expired() {
			pc.Delete(k.(string))
			dropped++
		}
		return true
	})
	if dropped > 0 {
		log.Infof("%s Swept %d expired entries", logcolors.LogCacheClear, dropped)
	}
	return dropped
}

// Range iterates over all live cache entries.
func (pc *PersistentCache) Range(fn func(key string, entry Entry) bool) {
	pc.memCache.Range(func(k, v interface{}) bool {
		entry := v.(Entry)
		if entry.expired() {
			return true
		}
		return fn(k.(string), entry)
	})
}

// Stats returns the number of live keys and their approximate size.
func (pc *PersistentCache) Stats() (numKeys int, sizeInKB int) {
	pc.Range(func(k string, entry Entry) bool {
		numKeys++
		sizeInKB += len(k) + len(entry.Value)
		return true
	})
	sizeInKB = sizeInKB / 1024
	return
}

// Backup copies the database file into the backup directory and returns the
// backup path. The database is closed and reopened around the copy so the
// file on disk is consistent.
func (pc *PersistentCache) Backup() (string, error) {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	backupFilePath := filepath.Join(pc.backupPath, fmt.Sprintf("cache_backup_%s.db", timestamp))

	log.Infof("%s Creating backup at: %s", logcolors.LogCacheBackup, backupFilePath)

	if err := pc.db.Close(); err != nil {
		return "", fmt.Errorf("failed to close database for backup: %v", err)
	}

	if err := copyFile(pc.dbPath, backupFilePath); err != nil {
		pc.reopenDatabase()
		return "", fmt.Errorf("failed to copy database file: %v", err)
	}

	if err := pc.reopenDatabase(); err != nil {
		return "", fmt.Errorf("failed to reopen database after backup: %v", err)
	}

	log.Infof("%s Backup created successfully: %s", logcolors.LogCacheBackup, backupFilePath)
	return backupFilePath, nil
}

func (pc *PersistentCache) reopenDatabase() error {
	db, err := bolt.Open(pc.dbPath, 0600, nil)
	if err != nil {
		return fmt.Errorf("failed to reopen database: %v", err)
	}
	pc.db = db

	if err := pc.loadToMemory(); err != nil {
		log.Warnf("%s Failed to reload cache to memory: %v", logcolors.LogCache, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}

// Close closes the database connection.
func (pc *PersistentCache) Close() error {
	if pc.db != nil {
		return pc.db.Close()
	}
	return nil
}
