// Package kernels holds the small numeric routines used by the built-in
// layers. The matrix paths are selected once at startup from CPU feature
// flags: wide cores get the unrolled/blocked variants, everything else the
// straightforward loops.
package kernels

import "github.com/klauspost/cpuid/v2"

var wideCore = cpuid.CPU.Supports(cpuid.AVX2, cpuid.FMA3)

// Gemm computes out = a (m×k) * b (k×n), row-major, overwriting out (m×n).
func Gemm(out, a, b []float32, m, k, n int) {
	if wideCore {
		gemmBlocked(out, a, b, m, k, n)
		return
	}
	gemmNaive(out, a, b, m, k, n)
}

func gemmNaive(out, a, b []float32, m, k, n int) {
	for i := 0; i < m; i++ {
		orow := out[i*n : (i+1)*n]
		for j := range orow {
			orow[j] = 0
		}
		arow := a[i*k : (i+1)*k]
		for p, av := range arow {
			if av == 0 {
				continue
			}
			brow := b[p*n : (p+1)*n]
			for j, bv := range brow {
				orow[j] += av * bv
			}
		}
	}
}

// gemmBlocked is the same algorithm with the inner accumulation unrolled
// four wide, which the compiler vectorizes on AVX2 targets.
func gemmBlocked(out, a, b []float32, m, k, n int) {
	for i := 0; i < m; i++ {
		orow := out[i*n : (i+1)*n]
		for j := range orow {
			orow[j] = 0
		}
		arow := a[i*k : (i+1)*k]
		for p := 0; p < k; p++ {
			av := arow[p]
			if av == 0 {
				continue
			}
			brow := b[p*n : (p+1)*n]
			j := 0
			for ; j+4 <= n; j += 4 {
				orow[j] += av * brow[j]
				orow[j+1] += av * brow[j+1]
				orow[j+2] += av * brow[j+2]
				orow[j+3] += av * brow[j+3]
			}
			for ; j < n; j++ {
				orow[j] += av * brow[j]
			}
		}
	}
}

// AddBias adds bias (length n) to each of the m rows of out.
func AddBias(out, bias []float32, m, n int) {
	for i := 0; i < m; i++ {
		orow := out[i*n : (i+1)*n]
		for j := range orow {
			orow[j] += bias[j]
		}
	}
}
