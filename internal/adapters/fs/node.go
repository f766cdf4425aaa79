package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/docullim/internal/core/ports"
)

const (
	// WalkerNodeID is the unique identifier for the directory walker Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// ResolverNodeID is the unique identifier for the file resolver Graft node.
	ResolverNodeID graft.ID = "adapter.fs.resolver"
	// HasherNodeID is the unique identifier for the hasher Graft node.
	HasherNodeID graft.ID = "adapter.fs.hasher"
)

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.FileResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID},
		Run: func(ctx context.Context) (ports.FileResolver, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewResolver(walker), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})
}
