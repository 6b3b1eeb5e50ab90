// Package cas implements the report store, addressed by descriptor content.
package cas

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/envspec/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.ReportStore using a file-per-digest strategy.
// Keys mix in the tool version so reports written by another envspec
// release are never reused.
type Store struct {
	version string
}

// NewStore creates a new ReportStore for the given tool version.
func NewStore(version string) *Store {
	return &Store{version: version}
}

// Get retrieves the report stored for digest.
func (s *Store) Get(root, digest string) (*domain.Report, error) {
	filename := s.getFilename(root, digest)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	var report domain.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error())
	}

	return &report, nil
}

// Put stores the report under its digest.
func (s *Store) Put(root string, report *domain.Report) error {
	if report.Digest == "" {
		return zerr.With(domain.ErrStoreWriteFailed, "reason", "report has no digest")
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	filename := s.getFilename(root, report.Digest)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	if err := os.WriteFile(filename, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	return nil
}

func (s *Store) getFilename(root, digest string) string {
	key := fmt.Sprintf("%016x", xxhash.Sum64String(s.version+"@"+digest))
	return filepath.Join(root, domain.DefaultStorePath(), key+".json")
}
