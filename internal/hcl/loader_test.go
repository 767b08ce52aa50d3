package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

const mnistDesc = `
network "mnist" {
  state {
    phase = "test"
    level = 1
  }

  layer "input" "data" {
    tops  = ["data"]
    shape = [1, 784]
  }

  layer "inner_product" "ip1" {
    bottoms     = ["data"]
    tops        = ["ip1"]
    param_names = ["ip1_weights"]
    num_output  = 10
  }

  layer "relu" "relu1" {
    bottoms = ["ip1"]
    tops    = ["ip1"]

    exclude {
      phase = "train"
    }
  }

  layer "softmax" "prob" {
    bottoms = ["ip1"]
    tops    = ["prob"]

    include {
      phase     = "test"
      min_level = 1
    }
  }
}
`

func TestLoadSource(t *testing.T) {
	t.Parallel()

	desc, err := NewLoader().LoadSource(context.Background(), "mnist.hcl", []byte(mnistDesc))
	require.NoError(t, err)

	assert.Equal(t, "mnist", desc.Name)
	require.NotNil(t, desc.State)
	assert.Equal(t, "test", desc.State.Phase)
	assert.Equal(t, 1, desc.State.Level)

	require.Len(t, desc.Layers, 4)
	assert.Equal(t, "input", desc.Layers[0].Type)
	assert.Equal(t, "data", desc.Layers[0].Name)
	assert.Equal(t, []string{"data"}, desc.Layers[0].Tops)

	ip := desc.Layers[1]
	assert.Equal(t, []string{"data"}, ip.Bottoms)
	assert.Equal(t, []string{"ip1_weights"}, ip.ParamNames)
	numOutput, err := ip.OptInt("num_output", 0)
	require.NoError(t, err)
	assert.Equal(t, 10, numOutput)

	relu := desc.Layers[2]
	require.Len(t, relu.Exclude, 1)
	assert.Equal(t, "train", relu.Exclude[0].Phase)

	prob := desc.Layers[3]
	require.Len(t, prob.Include, 1)
	assert.Equal(t, "test", prob.Include[0].Phase)
	require.NotNil(t, prob.Include[0].MinLevel)
	assert.Equal(t, 1, *prob.Include[0].MinLevel)

	shape, err := desc.Layers[0].OptIntList("shape")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 784}, shape)
}

func TestLoadWalksDirectories(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "net.hcl"), []byte(mnistDesc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	desc, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "mnist", desc.Name)
	assert.Len(t, desc.Layers, 4)
}

func TestLoadRejectsConflictingNetworks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hcl"), []byte(`network "one" {}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.hcl"), []byte(`network "two" {}`), 0o644))

	_, err := NewLoader().Load(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conflicts")
}

func TestLoadRequiresNetworkBlock(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().LoadSource(context.Background(), "empty.hcl", []byte(``))
	require.Error(t, err)
}

func TestLoadSourceKeepsUnknownOptions(t *testing.T) {
	t.Parallel()

	src := `
network "n" {
  layer "input" "data" {
    tops      = ["data"]
    shape     = [4]
    mirror    = true
    crop_size = 227
  }
}
`
	desc, err := NewLoader().LoadSource(context.Background(), "n.hcl", []byte(src))
	require.NoError(t, err)

	opts := desc.Layers[0].Options
	assert.Equal(t, cty.True, opts["mirror"])
	crop, err := desc.Layers[0].OptInt("crop_size", 0)
	require.NoError(t, err)
	assert.Equal(t, 227, crop)
}
