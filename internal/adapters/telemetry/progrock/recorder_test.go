package progrock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/docullim/internal/adapters/telemetry/progrock"
	"go.trai.ch/docullim/internal/core/domain"
	"go.trai.ch/docullim/internal/core/ports"
	"go.trai.ch/docullim/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestRecorder_Lifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	rec := progrock.New(mocks.NewMockLogger(ctrl))

	ctx, v := rec.Record(context.Background(), "mod.py:4 add")
	got, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, v, got)

	_, err := v.Stdout().Write([]byte("calling provider\n"))
	require.NoError(t, err)
	v.Log(domain.LogLevelDebug, "debug msg")
	v.Log(domain.LogLevelInfo, "info msg")
	v.Complete(nil)

	assert.NoError(t, rec.Close())
}

func TestRecorder_ForwardsWarnings(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn("mod.py:4 add: cache lookup failed: disk I/O error").Times(1)

	rec := progrock.New(log)
	_, v := rec.Record(context.Background(), "mod.py:4 add")

	v.Log(domain.LogLevelWarn, "cache lookup failed: disk I/O error")
	v.Complete(nil)
}

func TestRecorder_DoesNotForwardErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	rec := progrock.New(log)
	_, v := rec.Record(context.Background(), "b")

	v.Log(domain.LogLevelError, "rate limited")
	v.Complete(errors.New("rate limited"))
}

func TestRecorder_CachedVertex(t *testing.T) {
	rec := progrock.New(nil)

	_, v := rec.Record(context.Background(), "a")
	v.Cached()
	v.Complete(nil)

	assert.NoError(t, rec.Close())
}
