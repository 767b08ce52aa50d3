package kernels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGemm(t *testing.T) {
	t.Parallel()

	// 2x3 * 3x2
	a := []float32{1, 2, 3, 4, 5, 6}
	b := []float32{7, 8, 9, 10, 11, 12}
	out := make([]float32, 4)

	Gemm(out, a, b, 2, 3, 2)
	assert.Equal(t, []float32{58, 64, 139, 154}, out)
}

func TestGemmVariantsAgree(t *testing.T) {
	t.Parallel()

	m, k, n := 3, 5, 7
	a := make([]float32, m*k)
	b := make([]float32, k*n)
	for i := range a {
		a[i] = float32(i%4) - 1.5
	}
	for i := range b {
		b[i] = float32(i%5) * 0.25
	}

	naive := make([]float32, m*n)
	blocked := make([]float32, m*n)
	gemmNaive(naive, a, b, m, k, n)
	gemmBlocked(blocked, a, b, m, k, n)

	assert.InDeltaSlice(t, naive, blocked, 1e-5)
}

func TestAddBias(t *testing.T) {
	t.Parallel()

	out := []float32{0, 0, 1, 1}
	AddBias(out, []float32{2, 3}, 2, 2)
	assert.Equal(t, []float32{2, 3, 3, 4}, out)
}
