// Package cache provides a small in-memory TTL cache for normalized meeting
// batches, keyed by feed URL and lookback window. It only shields the feed
// provider from repeated fetches while a user tweaks settings; nothing in it
// survives a restart.
package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/cleberrangel/meeting-cost-api/internal/model"
)

// MeetingCache is a TTL cache of normalized meeting batches.
type MeetingCache struct {
	mu       sync.RWMutex
	items    map[string]*cacheItem
	ttl      time.Duration
	stopChan chan struct{}

	hits   int64
	misses int64
}

type cacheItem struct {
	meetings   []model.Meeting
	expiration time.Time
}

// New creates a cache with the specified default TTL and starts the
// background janitor.
func New(ttl time.Duration) *MeetingCache {
	c := &MeetingCache{
		items:    make(map[string]*cacheItem),
		ttl:      ttl,
		stopChan: make(chan struct{}),
	}

	go c.cleanup()

	return c
}

// Key builds the cache key for one feed/window pair.
func Key(feedURL string, days int) string {
	return fmt.Sprintf("%s|%d", feedURL, days)
}

// Get retrieves a batch from the cache. The returned slice is a copy so
// callers can recost it freely.
func (c *MeetingCache) Get(key string) ([]model.Meeting, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, exists := c.items[key]
	if !exists || time.Now().After(item.expiration) {
		c.misses++
		return nil, false
	}

	c.hits++
	out := make([]model.Meeting, len(item.meetings))
	copy(out, item.meetings)
	return out, true
}

// Set stores a batch with the default TTL.
func (c *MeetingCache) Set(key string, meetings []model.Meeting) {
	c.SetWithTTL(key, meetings, c.ttl)
}

// SetWithTTL stores a batch with a custom TTL. The batch is copied on the
// way in for the same reason Get copies on the way out.
func (c *MeetingCache) SetWithTTL(key string, meetings []model.Meeting, ttl time.Duration) {
	stored := make([]model.Meeting, len(meetings))
	copy(stored, meetings)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = &cacheItem{
		meetings:   stored,
		expiration: time.Now().Add(ttl),
	}
}

// Delete removes a batch from the cache
func (c *MeetingCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// Clear removes everything from the cache
func (c *MeetingCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*cacheItem)
}

// Stats returns cache statistics
type Stats struct {
	ItemCount int   `json:"item_count"`
	HitCount  int64 `json:"hit_count"`
	MissCount int64 `json:"miss_count"`
}

// GetStats returns a snapshot of cache statistics.
func (c *MeetingCache) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{
		ItemCount: len(c.items),
		HitCount:  c.hits,
		MissCount: c.misses,
	}
}

// cleanup periodically removes expired items
func (c *MeetingCache) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stopChan:
			return
		}
	}
}

// removeExpired removes all expired items
func (c *MeetingCache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, item := range c.items {
		if now.After(item.expiration) {
			delete(c.items, key)
		}
	}
}

// Stop stops the cleanup goroutine
func (c *MeetingCache) Stop() {
	close(c.stopChan)
}

// Size returns the number of batches in the cache
func (c *MeetingCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
