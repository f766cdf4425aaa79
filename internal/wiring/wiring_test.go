package wiring_test

import (
	"context"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/require"
	"go.trai.ch/docullim/internal/app"
	_ "go.trai.ch/docullim/internal/wiring" // Register providers
)

func TestAppWiring(t *testing.T) {
	t.Chdir(t.TempDir())

	// Constructing the graph must not need an API key or a cache on disk.
	components, _, err := graft.ExecuteFor[*app.Components](context.Background())
	require.NoError(t, err)
	require.NotNil(t, components)
	require.NotNil(t, components.App)
	require.NotNil(t, components.Logger)
}
