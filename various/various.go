package various

import "math"

// RoundToDecimals rounds the given float to the given number of decimals.
func RoundToDecimals(v, d float64) float64 {
	m := math.Pow(10, d)
	return math.Round(v*m) / m
}

// Clamp01 clamps the given value to the range [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// InitFloatGrid returns a zeroed grid of floats with the given dimensions.
func InitFloatGrid(width, height int) [][]float64 {
	grid := make([][]float64, height)
	for y := range grid {
		grid[y] = make([]float64, width)
	}
	return grid
}

// InitBoolGrid returns a zeroed grid of bools with the given dimensions.
func InitBoolGrid(width, height int) [][]bool {
	grid := make([][]bool, height)
	for y := range grid {
		grid[y] = make([]bool, width)
	}
	return grid
}

// CopyFloatGrid returns a deep copy of the given grid.
func CopyFloatGrid(src [][]float64) [][]float64 {
	dst := make([][]float64, len(src))
	for y := range src {
		dst[y] = make([]float64, len(src[y]))
		copy(dst[y], src[y])
	}
	return dst
}
