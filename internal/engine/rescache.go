package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when resolutionPayload format changes
const resolutionCacheSchemaVersion uint16 = 1

// ResolutionCache persists successful module resolutions on disk, keyed by a
// digest of (specifier, containing directory, base path). Only hits are
// cached; misses are always recomputed. Thread-safe for concurrent access.
type ResolutionCache struct {
	mu  sync.RWMutex
	dir string
}

type resolutionPayload struct {
	Schema    uint16
	Specifier string
	Resolved  string
}

// OpenResolutionCache initializes a cache at the standard XDG location.
func OpenResolutionCache(app string) (*ResolutionCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app, "resolve")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ResolutionCache{dir: dir}, nil
}

func resolutionKey(specifier, containingFile, basePath string) [32]byte {
	h := sha256.New()
	h.Write([]byte(specifier))
	h.Write([]byte{0})
	h.Write([]byte(filepath.Dir(containingFile)))
	h.Write([]byte{0})
	h.Write([]byte(basePath))
	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}

func (c *ResolutionCache) pathFor(key [32]byte) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a resolution to the cache.
func (c *ResolutionCache) Put(specifier, containingFile, basePath, resolved string) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(resolutionKey(specifier, containingFile, basePath))
	f, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(&resolutionPayload{
		Schema:    resolutionCacheSchemaVersion,
		Specifier: specifier,
		Resolved:  resolved,
	}); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// atomic replace
	return os.Rename(f.Name(), p)
}

// Get reads a cached resolution. The second result is false on miss, schema
// mismatch, or decode failure.
func (c *ResolutionCache) Get(specifier, containingFile, basePath string) (string, bool) {
	if c == nil {
		return "", false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(resolutionKey(specifier, containingFile, basePath))
	// #nosec G304 -- path is derived from the cache directory
	f, err := os.Open(p)
	if err != nil {
		// unreadable entries behave like a miss
		return "", false
	}
	defer func() {
		_ = f.Close()
	}()

	var payload resolutionPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return "", false
	}
	if payload.Schema != resolutionCacheSchemaVersion || payload.Specifier != specifier {
		return "", false
	}
	return payload.Resolved, true
}

// Clear removes every cached entry.
func (c *ResolutionCache) Clear() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := os.Remove(filepath.Join(c.dir, e.Name())); err != nil {
			return fmt.Errorf("failed to clear cache entry %q: %w", e.Name(), err)
		}
	}
	return nil
}
