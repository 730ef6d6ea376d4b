package iscc

import (
	"math"
	"sort"

	"github.com/pkg/errors"
)

// PixelGridSize is the side length of the luminance grid the content
// component is computed from. Callers resample the decoded image down to
// this size before stripping any format metadata.
const PixelGridSize = 32

const dctBlockSize = 8

// ContentIDImage derives the perceptual content component from a
// PixelGridSize by PixelGridSize single-channel luminance grid, given in
// row-major order. Visually similar images produce nearby digests; the
// encoding itself is exact and deterministic.
func ContentIDImage(pixels []uint8) (string, error) {
	if len(pixels) != PixelGridSize*PixelGridSize {
		return "", errors.Errorf("iscc: expected %d luminance values, got %d", PixelGridSize*PixelGridSize, len(pixels))
	}

	coeffs := dct2d(pixels)

	// Keep the low-frequency 8x8 block, drop the DC term, and threshold on
	// the median so the digest is invariant to overall brightness.
	block := make([]float64, 0, dctBlockSize*dctBlockSize-1)
	for y := 0; y < dctBlockSize; y++ {
		for x := 0; x < dctBlockSize; x++ {
			if x == 0 && y == 0 {
				continue
			}
			block = append(block, coeffs[y][x])
		}
	}

	sorted := append([]float64(nil), block...)
	sort.Float64s(sorted)
	median := (sorted[len(sorted)/2-1] + sorted[len(sorted)/2]) / 2

	var digest uint64
	for i, c := range block {
		if c > median {
			digest |= 1 << uint(63-i)
		}
	}
	return encodeComponent(headerContentImage, digest), nil
}

// dct2d computes the 2D DCT-II of the grid using the separable form. Only
// the top-left dctBlockSize rows and columns are ever read, but computing
// the full transform keeps the code obvious and the grid is tiny.
func dct2d(pixels []uint8) [][]float64 {
	n := PixelGridSize
	rows := make([][]float64, n)
	for y := 0; y < n; y++ {
		row := make([]float64, n)
		for x := 0; x < n; x++ {
			row[x] = float64(pixels[y*n+x])
		}
		rows[y] = dct1d(row)
	}

	out := make([][]float64, n)
	col := make([]float64, n)
	for y := range out {
		out[y] = make([]float64, n)
	}
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			col[y] = rows[y][x]
		}
		transformed := dct1d(col)
		for y := 0; y < n; y++ {
			out[y][x] = transformed[y]
		}
	}
	return out
}

func dct1d(in []float64) []float64 {
	n := len(in)
	out := make([]float64, n)
	for k := 0; k < n; k++ {
		var sum float64
		for i := 0; i < n; i++ {
			sum += in[i] * math.Cos(math.Pi/float64(n)*(float64(i)+0.5)*float64(k))
		}
		out[k] = sum
	}
	return out
}
