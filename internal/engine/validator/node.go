package validator

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the validator Graft node.
const NodeID graft.ID = "engine.validator"

func init() {
	graft.Register(graft.Node[*Engine]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Engine, error) {
			return New(), nil
		},
	})
}
