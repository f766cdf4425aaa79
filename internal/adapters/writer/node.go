package writer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/docullim/internal/adapters/fs"
	"go.trai.ch/docullim/internal/core/ports"
)

// NodeID is the unique identifier for the docstring writer Graft node.
const NodeID graft.ID = "adapter.writer"

func init() {
	graft.Register(graft.Node[ports.Writer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.HasherNodeID},
		Run: func(ctx context.Context) (ports.Writer, error) {
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return New(hasher), nil
		},
	})
}
