package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// memCache is a test double for the sqlite-backed cache.
type memCache struct {
	payloads map[string][]byte
	stored   map[string]time.Time
}

func newMemCache() *memCache {
	return &memCache{payloads: make(map[string][]byte), stored: make(map[string]time.Time)}
}

func (c *memCache) Fresh(format string, ttl time.Duration) ([]byte, bool, error) {
	payload, ok := c.payloads[format]
	if !ok || time.Since(c.stored[format]) > ttl {
		return nil, false, nil
	}
	return payload, true, nil
}

func (c *memCache) Any(format string) ([]byte, bool, error) {
	payload, ok := c.payloads[format]
	return payload, ok, nil
}

func (c *memCache) Store(format string, payload []byte) error {
	c.payloads[format] = payload
	c.stored[format] = time.Now()
	return nil
}

func TestSourceLoad_FetchesAndCaches(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.URL.Path != "/gen9ou.json" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if ua := r.Header.Get("User-Agent"); ua != userAgent {
			t.Errorf("User-Agent = %q, want %q", ua, userAgent)
		}
		w.Write([]byte(sampleJSON))
	}))
	defer srv.Close()

	cache := newMemCache()
	src := NewSource(srv.URL, "gen9ou", time.Hour, cache)

	c, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !c.Has("Garchomp") {
		t.Fatal("loaded catalog missing Garchomp")
	}
	if hits != 1 {
		t.Fatalf("server hits = %d, want 1", hits)
	}

	// Second load inside the TTL comes from the cache.
	if _, err := src.Load(context.Background()); err != nil {
		t.Fatalf("cached Load: %v", err)
	}
	if hits != 1 {
		t.Errorf("server hits after cached load = %d, want 1", hits)
	}
}

func TestSourceLoad_StaleCacheBeatsFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	cache := newMemCache()
	cache.Store("gen9ou", []byte(sampleJSON))
	cache.stored["gen9ou"] = time.Now().Add(-48 * time.Hour) // stale

	src := NewSource(srv.URL, "gen9ou", time.Hour, cache)
	c, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !c.Has("Gholdengo") {
		t.Error("expected the stale cached catalog, not the fallback")
	}
}

func TestSourceLoad_FallbackWhenOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	src := NewSource(srv.URL, "gen9ou", time.Hour, nil)
	c, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !c.Has("Dragapult") {
		t.Error("expected the built-in fallback catalog")
	}
}

func TestNewSource_Defaults(t *testing.T) {
	src := NewSource("", "", time.Hour, nil)
	if src.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", src.baseURL, DefaultBaseURL)
	}
	if src.Format() != DefaultFormat {
		t.Errorf("format = %q, want %q", src.Format(), DefaultFormat)
	}
}
