package ports

import (
	"context"

	"go.trai.ch/envspec/internal/core/domain"
)

// PackageIndex defines the interface for querying which versions a channel publishes.
//
//go:generate go run go.uber.org/mock/mockgen -source=package_index.go -destination=mocks/mock_package_index.go -package=mocks
type PackageIndex interface {
	// Versions returns the published versions of name on channel.
	// It returns domain.ErrPackageNotFound when the channel does not carry the package.
	Versions(ctx context.Context, channel, name string) ([]string, error)
}

// PackageIndexFactory creates package indexes for a workspace.
type PackageIndexFactory interface {
	// NewIndex returns an index caching below root and configured by settings.
	NewIndex(root string, settings domain.Settings) (PackageIndex, error)
}
