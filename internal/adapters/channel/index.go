// Package channel implements the PackageIndex port against the anaconda.org package API.
package channel

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/envspec/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	httpClientTimeout = 30 * time.Second
	memoryCacheSize   = 512
	// defaultOwner is the anaconda.org owner serving the "defaults" channel.
	defaultOwner = "anaconda"
)

// Index implements ports.PackageIndex with an on-disk cache and an in-memory LRU.
type Index struct {
	baseURL    string
	ttl        time.Duration
	cacheDir   string
	httpClient *http.Client
	memory     *lru.Cache[string, cacheEntry]
	now        func() time.Time
}

// cacheEntry is one cached API answer. NotFound entries remember 404s.
type cacheEntry struct {
	Channel   string    `json:"channel"`
	Name      string    `json:"name"`
	Versions  []string  `json:"versions,omitempty"`
	NotFound  bool      `json:"not_found,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

// packageResponse is the subset of the anaconda.org package document we use.
type packageResponse struct {
	Name          string   `json:"name"`
	LatestVersion string   `json:"latest_version"`
	Versions      []string `json:"versions"`
}

// NewIndex creates an Index caching below root/.envspec/cache/channels.
func NewIndex(root string, settings domain.Settings) (*Index, error) {
	return newIndexWithClient(
		filepath.Join(root, domain.DefaultChannelCachePath()),
		settings,
		&http.Client{Timeout: httpClientTimeout},
	)
}

func newIndexWithClient(path string, settings domain.Settings, client *http.Client) (*Index, error) {
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(cleanPath, domain.DirPerm); err != nil {
		return nil, zerr.Wrap(err, domain.ErrIndexCacheCreateFailed.Error())
	}

	memory, err := lru.New[string, cacheEntry](memoryCacheSize)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrIndexCacheCreateFailed.Error())
	}

	baseURL := settings.IndexURL
	if baseURL == "" {
		baseURL = domain.DefaultIndexURL
	}

	return &Index{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		ttl:        settings.IndexTTL,
		cacheDir:   cleanPath,
		httpClient: client,
		memory:     memory,
		now:        time.Now,
	}, nil
}

// Versions returns the versions of name published on channel.
// Answers are served from memory, then disk, then the API.
func (i *Index) Versions(ctx context.Context, channel, name string) ([]string, error) {
	owner := Owner(channel)
	name = strings.ToLower(strings.TrimSpace(name))
	key := owner + "/" + name

	entry, ok := i.memory.Get(key)
	if !ok || !i.fresh(entry) {
		cachePath := i.getCachePath(owner, name)
		var err error
		entry, err = i.loadFromCache(cachePath)
		if err != nil || !i.fresh(entry) {
			entry, err = i.query(ctx, owner, name)
			if err != nil {
				return nil, err
			}
			// The cache is an optimization; a failed write must not fail the lookup.
			_ = i.saveToCache(cachePath, entry)
		}
		i.memory.Add(key, entry)
	}

	// Returned bare so callers can match it with errors.Is.
	if entry.NotFound {
		return nil, domain.ErrPackageNotFound
	}
	return entry.Versions, nil
}

// Owner maps a channel as written in a descriptor to its anaconda.org owner.
// "defaults" and "main" map to the anaconda owner; channel URLs map to their
// last path element.
func Owner(channel string) string {
	c := strings.TrimSuffix(strings.TrimSpace(channel), "/")
	if i := strings.LastIndex(c, "/"); i >= 0 {
		c = c[i+1:]
	}
	switch c {
	case "", "defaults", "main":
		return defaultOwner
	}
	return c
}

func (i *Index) fresh(entry cacheEntry) bool {
	return domain.WithinTTL(i.now().Sub(entry.FetchedAt), i.ttl)
}

// getHash generates a SHA-256 hash identifying an owner and package name.
func getHash(owner, name string) string {
	hash := sha256.Sum256([]byte(owner + "/" + name))
	return hex.EncodeToString(hash[:])
}

func (i *Index) getCachePath(owner, name string) string {
	return filepath.Join(i.cacheDir, getHash(owner, name)+".json")
}

func (i *Index) loadFromCache(path string) (cacheEntry, error) {
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cacheEntry{}, domain.ErrIndexCacheReadFailed
		}
		return cacheEntry{}, zerr.Wrap(err, domain.ErrIndexCacheReadFailed.Error())
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return cacheEntry{}, zerr.Wrap(err, domain.ErrIndexCacheReadFailed.Error())
	}
	return entry, nil
}

func (i *Index) saveToCache(path string, entry cacheEntry) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrIndexCacheWriteFailed.Error())
	}
	if err := atomicWriteFile(path, data); err != nil {
		return zerr.Wrap(err, domain.ErrIndexCacheWriteFailed.Error())
	}
	return nil
}

// atomicWriteFile writes data to a temp file and renames it over path.
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, "index-cache-*.json")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// query fetches the package document from the API. A 404 becomes a
// NotFound entry so that it is cached like any other answer.
func (i *Index) query(ctx context.Context, owner, name string) (cacheEntry, error) {
	endpoint := i.baseURL + "/" + url.PathEscape(owner) + "/" + url.PathEscape(name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return cacheEntry{}, zerr.Wrap(err, domain.ErrIndexRequestFailed.Error())
	}
	req.Header.Set("Accept", "application/json")

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return cacheEntry{}, zerr.With(zerr.Wrap(err, domain.ErrIndexRequestFailed.Error()), "channel", owner)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	entry := cacheEntry{Channel: owner, Name: name, FetchedAt: i.now()}

	if resp.StatusCode == http.StatusNotFound {
		entry.NotFound = true
		return entry, nil
	}
	if resp.StatusCode != http.StatusOK {
		apiErr := zerr.With(domain.ErrIndexRequestFailed, "status_code", resp.StatusCode)
		apiErr = zerr.With(apiErr, "channel", owner)
		return cacheEntry{}, zerr.With(apiErr, "package", name)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return cacheEntry{}, zerr.Wrap(err, domain.ErrIndexRequestFailed.Error())
	}

	var doc packageResponse
	if err := json.Unmarshal(body, &doc); err != nil {
		return cacheEntry{}, zerr.With(zerr.Wrap(err, domain.ErrIndexParseFailed.Error()), "package", name)
	}

	entry.Versions = doc.Versions
	if len(entry.Versions) == 0 && doc.LatestVersion != "" {
		entry.Versions = []string{doc.LatestVersion}
	}
	return entry, nil
}
