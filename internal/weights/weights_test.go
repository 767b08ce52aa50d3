package weights

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	snap := &Snapshot{
		Name: "mnist",
		Layers: []LayerParams{
			{Name: "ip1", Blobs: []BlobData{
				{Shape: []int{2, 3}, Data: []float32{1, 2, 3, 4, 5, 6}},
				{Shape: []int{2}, Data: []float32{0.5, -0.5}},
			}},
			{Name: "ip2", Blobs: nil},
		},
	}

	path := filepath.Join(t.TempDir(), "mnist.ngw")
	require.NoError(t, Save(path, snap))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, snap.Name, loaded.Name)
	require.Len(t, loaded.Layers, 2)
	assert.Equal(t, snap.Layers[0].Blobs[0].Data, loaded.Layers[0].Blobs[0].Data)
	assert.Equal(t, []int{2, 3}, loaded.Layers[0].Blobs[0].Shape)
	assert.Equal(t, 6, loaded.Layers[0].Blobs[0].Count())
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.ngw"))
	require.Error(t, err)
}
