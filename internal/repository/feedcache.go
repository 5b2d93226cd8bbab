// Package repository implements the disk-backed cache for calendar feed
// bodies. Only raw ICS payloads and their HTTP validators (ETag,
// Last-Modified) are stored, keyed by a hash of the feed URL; no normalized
// meeting data ever touches disk.
package repository

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	metaFileName = "meta.json"
	bodyFileName = "body.ics"
)

// FeedMeta holds the HTTP cache validators for a single feed URL.
type FeedMeta struct {
	URL          string    `json:"url"`
	ETag         string    `json:"etag,omitempty"`
	LastModified string    `json:"last_modified,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ErrCacheMiss indicates no cached entry exists for the URL.
var ErrCacheMiss = errors.New("feed cache miss")

// FeedCache stores feed bodies under baseDir, one subdirectory per URL hash.
type FeedCache struct {
	baseDir string
}

// NewFeedCache creates the cache root if needed.
func NewFeedCache(baseDir string) (*FeedCache, error) {
	if baseDir == "" {
		return nil, errors.New("feed cache dir is empty")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("criar diretório do cache: %w", err)
	}
	return &FeedCache{baseDir: baseDir}, nil
}

// Load returns the cached validators and body for a URL, or ErrCacheMiss.
func (c *FeedCache) Load(url string) (FeedMeta, []byte, error) {
	dir := c.entryDir(url)

	data, err := os.ReadFile(filepath.Join(dir, metaFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return FeedMeta{}, nil, ErrCacheMiss
		}
		return FeedMeta{}, nil, fmt.Errorf("ler meta do cache: %w", err)
	}

	var meta FeedMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return FeedMeta{}, nil, fmt.Errorf("decodificar meta do cache: %w", err)
	}

	body, err := os.ReadFile(filepath.Join(dir, bodyFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return FeedMeta{}, nil, ErrCacheMiss
		}
		return FeedMeta{}, nil, fmt.Errorf("ler corpo do cache: %w", err)
	}

	return meta, body, nil
}

// Save writes body first and meta last, so meta never points at a missing
// body.
func (c *FeedCache) Save(url string, meta FeedMeta, body []byte) error {
	dir := c.entryDir(url)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("criar entrada do cache: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, bodyFileName), body, 0o600); err != nil {
		return fmt.Errorf("gravar corpo do cache: %w", err)
	}

	meta.URL = url
	meta.UpdatedAt = time.Now().UTC()
	data, err := json.MarshalIndent(&meta, "", "  ")
	if err != nil {
		return fmt.Errorf("codificar meta do cache: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, metaFileName), data, 0o600); err != nil {
		return fmt.Errorf("gravar meta do cache: %w", err)
	}

	return nil
}

// PruneOlderThan removes entries whose metadata is older than maxAge and
// returns how many entries were removed. Corrupt entries are removed too.
func (c *FeedCache) PruneOlderThan(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(c.baseDir)
	if err != nil {
		return 0, fmt.Errorf("listar cache: %w", err)
	}

	cutoff := time.Now().UTC().Add(-maxAge)
	removed := 0

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		dir := filepath.Join(c.baseDir, e.Name())

		stale := false
		data, err := os.ReadFile(filepath.Join(dir, metaFileName))
		if err != nil {
			stale = true
		} else {
			var meta FeedMeta
			if err := json.Unmarshal(data, &meta); err != nil || meta.UpdatedAt.Before(cutoff) {
				stale = true
			}
		}

		if stale {
			if err := os.RemoveAll(dir); err == nil {
				removed++
			}
		}
	}

	return removed, nil
}

// entryDir derives the per-URL directory from a hash of the URL, keeping
// secret feed addresses out of directory names.
func (c *FeedCache) entryDir(url string) string {
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(c.baseDir, hex.EncodeToString(sum[:8]))
}
