package ports

import "go.trai.ch/envspec/internal/core/domain"

// ReportStore defines the interface for storing and retrieving reports.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ReportStore interface {
	// Get retrieves the report stored below root for a descriptor digest.
	// Returns nil, nil if not found.
	Get(root, digest string) (*domain.Report, error)

	// Put stores the report below root under its digest.
	Put(root string, report *domain.Report) error
}
