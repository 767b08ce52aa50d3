package net

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/netgridgo/internal/config"
)

func TestFilterIncludeByPhase(t *testing.T) {
	t.Parallel()

	layers := []*config.LayerDesc{
		{Name: "always", Type: "relu"},
		{Name: "test_only", Type: "relu", Include: []*config.Rule{{Phase: "test"}}},
		{Name: "train_only", Type: "relu", Include: []*config.Rule{{Phase: "train"}}},
	}
	state := &config.NetState{Phase: "test"}

	filtered, err := FilterLayers(context.Background(), layers, state)
	require.NoError(t, err)

	names := layerNames(filtered)
	assert.Equal(t, []string{"always", "test_only"}, names)
}

func TestFilterExcludeByPhase(t *testing.T) {
	t.Parallel()

	layers := []*config.LayerDesc{
		{Name: "not_in_test", Type: "relu", Exclude: []*config.Rule{{Phase: "test"}}},
		{Name: "kept", Type: "relu"},
	}
	state := &config.NetState{Phase: "test"}

	filtered, err := FilterLayers(context.Background(), layers, state)
	require.NoError(t, err)
	assert.Equal(t, []string{"kept"}, layerNames(filtered))
}

func TestFilterIncludeRequiresStage(t *testing.T) {
	t.Parallel()

	layers := []*config.LayerDesc{
		{Name: "needs_deploy", Type: "relu", Include: []*config.Rule{{Stages: []string{"deploy"}}}},
	}
	state := &config.NetState{Phase: "test"}

	filtered, err := FilterLayers(context.Background(), layers, state)
	require.NoError(t, err)
	assert.Empty(t, filtered)

	state.Stages = []string{"deploy"}
	filtered, err = FilterLayers(context.Background(), layers, state)
	require.NoError(t, err)
	assert.Len(t, filtered, 1)
}

func TestFilterForbiddenStage(t *testing.T) {
	t.Parallel()

	layers := []*config.LayerDesc{
		{Name: "no_debug", Type: "relu", Include: []*config.Rule{{NotStages: []string{"debug"}}}},
	}

	filtered, err := FilterLayers(context.Background(), layers, &config.NetState{Stages: []string{"debug"}})
	require.NoError(t, err)
	assert.Empty(t, filtered)

	filtered, err = FilterLayers(context.Background(), layers, &config.NetState{})
	require.NoError(t, err)
	assert.Len(t, filtered, 1)
}

func TestFilterLevelBounds(t *testing.T) {
	t.Parallel()

	layers := []*config.LayerDesc{
		{Name: "mid_levels", Type: "relu", Include: []*config.Rule{{
			MinLevel: config.IntPtr(1),
			MaxLevel: config.IntPtr(3),
		}}},
	}

	for level, want := range map[int]bool{0: false, 1: true, 3: true, 4: false} {
		filtered, err := FilterLayers(context.Background(), layers, &config.NetState{Level: level})
		require.NoError(t, err)
		assert.Equal(t, want, len(filtered) == 1, "level %d", level)
	}
}

func TestFilterAnyIncludeRuleSuffices(t *testing.T) {
	t.Parallel()

	layers := []*config.LayerDesc{
		{Name: "either", Type: "relu", Include: []*config.Rule{
			{Phase: "train"},
			{Phase: "test"},
		}},
	}

	filtered, err := FilterLayers(context.Background(), layers, &config.NetState{Phase: "test"})
	require.NoError(t, err)
	assert.Len(t, filtered, 1)
}

func TestFilterRejectsIncludeAndExclude(t *testing.T) {
	t.Parallel()

	layers := []*config.LayerDesc{
		{Name: "conflicted", Type: "relu",
			Include: []*config.Rule{{Phase: "test"}},
			Exclude: []*config.Rule{{Phase: "train"}},
		},
	}

	_, err := FilterLayers(context.Background(), layers, &config.NetState{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfig))
	assert.Contains(t, err.Error(), "conflicted")
}

func layerNames(layers []*config.LayerDesc) []string {
	names := make([]string, len(layers))
	for i, d := range layers {
		names[i] = d.Name
	}
	return names
}
