package python

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/docullim/internal/adapters/fs"
	"go.trai.ch/docullim/internal/core/ports"
)

const (
	// ScannerNodeID is the unique identifier for the Python scanner Graft node.
	ScannerNodeID graft.ID = "adapter.python.scanner"
	// InstallerNodeID is the unique identifier for the marker installer Graft node.
	InstallerNodeID graft.ID = "adapter.python.installer"
)

func init() {
	graft.Register(graft.Node[ports.Scanner]{
		ID:        ScannerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.HasherNodeID},
		Run: func(ctx context.Context) (ports.Scanner, error) {
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewScanner(hasher), nil
		},
	})

	graft.Register(graft.Node[ports.MarkerInstaller]{
		ID:        InstallerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.MarkerInstaller, error) {
			return NewInstaller(), nil
		},
	})
}
