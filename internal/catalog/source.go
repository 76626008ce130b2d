package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the pkmn.cc mirror of Smogon's sample sets.
	DefaultBaseURL = "https://data.pkmn.cc/sets"

	// DefaultFormat is the competitive format loaded when none is
	// configured.
	DefaultFormat = "gen9ou"

	userAgent    = "pokesight/1.0"
	fetchTimeout = 15 * time.Second
)

// Cache stores raw catalog payloads between runs. It is passed in
// explicitly so tests can load deterministic catalogs without touching the
// network, and so the cache's lifetime is the caller's to manage.
type Cache interface {
	// Fresh returns the payload for a format if it was stored within ttl.
	Fresh(format string, ttl time.Duration) ([]byte, bool, error)
	// Any returns the payload regardless of age.
	Any(format string) ([]byte, bool, error)
	// Store saves a payload for a format.
	Store(format string, payload []byte) error
}

// Source loads a format's catalog: fresh cache first, then the network,
// then a stale cache entry, then the built-in fallback data. The engine
// never sees where the data came from.
type Source struct {
	baseURL string
	format  string
	ttl     time.Duration
	cache   Cache
	client  *http.Client
}

// NewSource creates a source for one format. cache may be nil, in which
// case every Load fetches.
func NewSource(baseURL, format string, ttl time.Duration, cache Cache) *Source {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if format == "" {
		format = DefaultFormat
	}
	return &Source{
		baseURL: baseURL,
		format:  format,
		ttl:     ttl,
		cache:   cache,
		client:  &http.Client{Timeout: fetchTimeout},
	}
}

// Format returns the competitive format this source serves.
func (s *Source) Format() string { return s.format }

// Load returns the catalog for the source's format.
func (s *Source) Load(ctx context.Context) (*Catalog, error) {
	if s.cache != nil {
		payload, ok, err := s.cache.Fresh(s.format, s.ttl)
		if err != nil {
			return nil, fmt.Errorf("catalog cache read: %w", err)
		}
		if ok {
			return Decode(payload)
		}
	}

	payload, fetchErr := s.fetch(ctx)
	if fetchErr == nil {
		if s.cache != nil {
			if err := s.cache.Store(s.format, payload); err != nil {
				return nil, fmt.Errorf("catalog cache write: %w", err)
			}
		}
		return Decode(payload)
	}

	// Network down: a stale cache entry beats the built-in data.
	if s.cache != nil {
		payload, ok, err := s.cache.Any(s.format)
		if err == nil && ok {
			return Decode(payload)
		}
	}

	return Fallback(), nil
}

func (s *Source) fetch(ctx context.Context) ([]byte, error) {
	url := fmt.Sprintf("%s/%s.json", s.baseURL, s.format)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catalog: unexpected status %s", resp.Status)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read catalog body: %w", err)
	}
	return payload, nil
}
