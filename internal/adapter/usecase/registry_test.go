package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrySingleRunPerCampaign(t *testing.T) {
	reg := NewRegistry()
	release := make(chan struct{})

	run, ok := reg.Start("c1", func(ctx context.Context) { <-release })
	require.True(t, ok)
	require.NotNil(t, run)
	assert.Equal(t, "c1", run.CampaignID)
	assert.Equal(t, 1, reg.Active())

	_, ok = reg.Start("c1", func(ctx context.Context) {})
	assert.False(t, ok, "second run for the same campaign must be rejected")

	_, ok = reg.Start("c2", func(ctx context.Context) {})
	assert.True(t, ok, "runs for other campaigns are independent")

	close(release)
	select {
	case <-run.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("run did not finish")
	}
	reg.Wait()
	assert.Equal(t, 0, reg.Active())
}

func TestRegistryShutdownCancelsRuns(t *testing.T) {
	reg := NewRegistry()
	_, ok := reg.Start("c1", func(ctx context.Context) { <-ctx.Done() })
	require.True(t, ok)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, reg.Shutdown(ctx))
	assert.Equal(t, 0, reg.Active())
}

func TestRegistryRejectsStartsAfterShutdown(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Shutdown(context.Background()))

	_, ok := reg.Start("c1", func(ctx context.Context) {})
	assert.False(t, ok)
}
