package channel

import (
	"go.trai.ch/envspec/internal/core/domain"
	"go.trai.ch/envspec/internal/core/ports"
)

// Factory implements ports.PackageIndexFactory.
type Factory struct{}

// NewFactory creates a new Factory.
func NewFactory() *Factory {
	return &Factory{}
}

// NewIndex returns an Index caching below root.
func (f *Factory) NewIndex(root string, settings domain.Settings) (ports.PackageIndex, error) {
	return NewIndex(root, settings)
}
