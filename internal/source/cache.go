package source

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/samber/oops"
)

// cacheEntry is one cached document with the validators needed for
// conditional re-fetching.
type cacheEntry struct {
	URL       string    `json:"url"`
	ETag      string    `json:"etag,omitempty"`
	LastMod   string    `json:"last_modified,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
	Body      string    `json:"body"`
}

type cache struct {
	dir string
}

func newCache(dir string) *cache {
	return &cache{dir: dir}
}

func (c *cache) path(url string) string {
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:8])+".json")
}

// lookup returns the cached entry for url, or nil. A corrupt entry is
// treated as a miss; the next successful fetch overwrites it.
func (c *cache) lookup(url string) *cacheEntry {
	data, err := os.ReadFile(c.path(url))
	if err != nil {
		return nil
	}

	entry := &cacheEntry{}
	if err := json.Unmarshal(data, entry); err != nil || entry.URL != url {
		return nil
	}

	return entry
}

func (c *cache) store(url string, result *Result) error {
	entry := &cacheEntry{
		URL:       url,
		ETag:      result.ETag,
		LastMod:   result.LastMod,
		FetchedAt: time.Now().UTC(),
		Body:      result.Body,
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return oops.
			Code("CACHE_ERROR").
			With("url", url).
			Wrapf(err, "encoding cache entry")
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return oops.
			Code("CACHE_ERROR").
			With("path", c.dir).
			Wrapf(err, "creating cache directory")
	}

	if err := writeFileAtomic(c.path(url), data); err != nil {
		return err
	}

	return nil
}

func writeFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	tempFile, err := os.CreateTemp(dir, ".marq-cache-*.tmp")
	if err != nil {
		return oops.
			Code("CACHE_ERROR").
			With("path", path).
			Wrapf(err, "creating temporary file")
	}

	tempPath := tempFile.Name()
	defer func() {
		_ = os.Remove(tempPath)
	}()

	if _, err := tempFile.Write(content); err != nil {
		_ = tempFile.Close()
		return oops.
			Code("CACHE_ERROR").
			With("path", path).
			Wrapf(err, "writing temporary file")
	}

	if err := tempFile.Close(); err != nil {
		return oops.
			Code("CACHE_ERROR").
			With("path", path).
			Wrapf(err, "closing temporary file")
	}

	if err := os.Rename(tempPath, path); err != nil {
		return oops.
			Code("CACHE_ERROR").
			With("path", path).
			Wrapf(err, "replacing cache entry")
	}

	return nil
}
