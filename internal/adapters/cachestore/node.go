package cachestore

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/docullim/internal/core/ports"
)

// NodeID is the unique identifier for the cache store factory Graft node.
const NodeID graft.ID = "adapter.cachestore"

func init() {
	graft.Register(graft.Node[ports.CacheStoreFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.CacheStoreFactory, error) {
			return NewFactory(), nil
		},
	})
}
