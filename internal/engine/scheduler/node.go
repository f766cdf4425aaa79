package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/docullim/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/docullim/internal/core/ports"
)

// NodeID is the unique identifier for the scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{progrock.NodeID},
		Run: func(ctx context.Context) (*Scheduler, error) {
			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			return NewScheduler(telemetry), nil
		},
	})
}
