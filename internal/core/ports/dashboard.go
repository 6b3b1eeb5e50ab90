package ports

import (
	"context"

	"go.trai.ch/envspec/internal/core/domain"
)

// CheckResult is the outcome of one check shown by a Dashboard.
// Err is set when the descriptor could not be loaded; Report is nil then.
type CheckResult struct {
	Report       *domain.Report
	Dependencies []domain.Dependency
	Err          error
}

// Dashboard presents check results interactively.
//
//go:generate go run go.uber.org/mock/mockgen -source=dashboard.go -destination=mocks/mock_dashboard.go -package=mocks
type Dashboard interface {
	// Run displays every result received on results for the descriptor at path.
	// It blocks until the user quits or ctx is cancelled.
	Run(ctx context.Context, path string, results <-chan CheckResult) error
}
