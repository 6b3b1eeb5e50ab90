package channel

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/envspec/internal/core/ports"
)

// NodeID is the unique identifier for the package index factory Graft node.
const NodeID graft.ID = "adapter.package_index"

func init() {
	graft.Register(graft.Node[ports.PackageIndexFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PackageIndexFactory, error) {
			return NewFactory(), nil
		},
	})
}
