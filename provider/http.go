package provider

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/slugforge/slugpattern/suggest"
)

const (
	DefaultDictionaryServiceURL = "https://dictionaries.example.com"
	EnvDictionaryServiceURL     = "SLUGPATTERN_DICTIONARY_URL"
	EnvDictionaryServiceKey     = "SLUGPATTERN_DICTIONARY_KEY"
)

// HTTP is a suggest.Provider backed by a remote dictionary and tag service.
// Every request carries a short-lived HS256 JWT, and successful responses
// are cached for TTL to keep repeated completion requests cheap.
//
// Dictionaries are fetched from /v1/dictionaries; tags are fetched per
// dictionary kind from /v1/dictionaries/{kind}/tags and merged, since
// suggest.Provider.Tags has no kind parameter of its own.
type HTTP struct {
	BaseURL    string
	signingKey []byte
	issuer     string
	ttl        time.Duration
	httpClient *http.Client

	mu       sync.RWMutex
	dicts    dictsCacheEntry
	tags     tagsCacheEntry
	dictsSet bool
	tagsSet  bool
}

type dictsCacheEntry struct {
	dicts   []suggest.DictionaryInfo
	expires time.Time
}

type tagsCacheEntry struct {
	tags    []suggest.TagInfo
	expires time.Time
}

// NewHTTP builds an HTTP provider. signingKey authenticates requests to the
// service; issuer identifies this client in the JWT's iss claim. ttl is how
// long a fetched dictionary/tag snapshot is reused before refetching.
func NewHTTP(signingKey []byte, issuer string, ttl time.Duration) *HTTP {
	baseURL := os.Getenv(EnvDictionaryServiceURL)
	if baseURL == "" {
		baseURL = DefaultDictionaryServiceURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	return &HTTP{
		BaseURL:    baseURL,
		signingKey: signingKey,
		issuer:     issuer,
		ttl:        ttl,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewHTTPFromEnv builds an HTTP provider using the signing key from
// SLUGPATTERN_DICTIONARY_KEY. If the variable is unset the key is empty,
// and requests are still signed, with that empty key.
func NewHTTPFromEnv(issuer string, ttl time.Duration) *HTTP {
	return NewHTTP([]byte(os.Getenv(EnvDictionaryServiceKey)), issuer, ttl)
}

func (h *HTTP) Dictionaries() ([]suggest.DictionaryInfo, error) {
	h.mu.RLock()
	entry, ok := h.dicts, h.dictsSet
	h.mu.RUnlock()
	if ok && time.Now().Before(entry.expires) {
		return entry.dicts, nil
	}

	dicts, err := h.fetchDictionaries()
	if err != nil {
		return nil, err
	}

	entry = dictsCacheEntry{dicts: dicts, expires: time.Now().Add(h.ttl)}
	h.mu.Lock()
	h.dicts, h.dictsSet = entry, true
	h.mu.Unlock()
	return dicts, nil
}

// Tags fetches every dictionary kind's tags from /v1/dictionaries/{kind}/tags
// and merges them, caching the merged result for TTL. It refetches the
// dictionary kind list from Dictionaries whenever that list isn't already
// warm, so the first call after startup makes one request for the kind
// list plus one request per kind.
func (h *HTTP) Tags() ([]suggest.TagInfo, error) {
	h.mu.RLock()
	entry, ok := h.tags, h.tagsSet
	h.mu.RUnlock()
	if ok && time.Now().Before(entry.expires) {
		return entry.tags, nil
	}

	dicts, err := h.Dictionaries()
	if err != nil {
		return nil, err
	}

	var merged []suggest.TagInfo
	for _, d := range dicts {
		kindTags, err := h.fetchTags(d.Kind)
		if err != nil {
			return nil, err
		}
		merged = append(merged, kindTags...)
	}

	entry = tagsCacheEntry{tags: merged, expires: time.Now().Add(h.ttl)}
	h.mu.Lock()
	h.tags, h.tagsSet = entry, true
	h.mu.Unlock()
	return merged, nil
}

func (h *HTTP) fetchDictionaries() ([]suggest.DictionaryInfo, error) {
	data, err := h.getSigned("/v1/dictionaries")
	if err != nil {
		return nil, fmt.Errorf("fetch dictionaries: %w", err)
	}

	var payload struct {
		Dictionaries []suggest.DictionaryInfo `json:"dictionaries"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse dictionaries: %w", err)
	}
	return payload.Dictionaries, nil
}

func (h *HTTP) fetchTags(kind string) ([]suggest.TagInfo, error) {
	data, err := h.getSigned("/v1/dictionaries/" + kind + "/tags")
	if err != nil {
		return nil, fmt.Errorf("fetch tags for %s: %w", kind, err)
	}

	var payload struct {
		Tags []suggest.TagInfo `json:"tags"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse tags for %s: %w", kind, err)
	}
	return payload.Tags, nil
}

// getSigned issues a signed GET against path and returns the response body.
func (h *HTTP) getSigned(path string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, h.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	token, err := h.signedToken()
	if err != nil {
		return nil, fmt.Errorf("sign request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, req.URL)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return data, nil
}

func (h *HTTP) signedToken() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    h.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.signingKey)
}

// InvalidateCache discards any cached dictionaries/tags, forcing the next
// call to Dictionaries or Tags to refetch.
func (h *HTTP) InvalidateCache() {
	h.mu.Lock()
	h.dictsSet = false
	h.tagsSet = false
	h.mu.Unlock()
}
