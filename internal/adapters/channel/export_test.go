package channel

import (
	"net/http"
	"time"

	"go.trai.ch/envspec/internal/core/domain"
)

// NewIndexWithClient exports newIndexWithClient for testing.
func NewIndexWithClient(path string, settings domain.Settings, client *http.Client) (*Index, error) {
	return newIndexWithClient(path, settings, client)
}

// SetClock replaces the index clock for testing.
func (i *Index) SetClock(now func() time.Time) {
	i.now = now
}

// CachePath exports getCachePath for testing.
func (i *Index) CachePath(owner, name string) string {
	return i.getCachePath(owner, name)
}
