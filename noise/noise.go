// Package noise implements deterministic, seed-keyed value noise.
//
// All lattice functions are pure: the same seed string and coordinates
// produce bit-identical results on every platform, since the lattice is
// driven by unsigned 32-bit integer hashing only.
package noise

import (
	"math"

	"github.com/Flokey82/genmapgrid/various"
)

const (
	fnvOffset32 = 2166136261
	fnvPrime32  = 16777619
)

// FoldSeed folds the given seed string into a 32-bit value (FNV-1a).
func FoldSeed(seed string) uint32 {
	h := uint32(fnvOffset32)
	for i := 0; i < len(seed); i++ {
		h ^= uint32(seed[i])
		h *= fnvPrime32
	}
	return h
}

// FoldSeed64 folds the given seed string into a 64-bit value (FNV-1a).
// Used to derive sources for generators that want an int64 seed.
func FoldSeed64(seed string) int64 {
	const (
		fnvOffset64 = 14695981039346656037
		fnvPrime64  = 1099511628211
	)
	h := uint64(fnvOffset64)
	for i := 0; i < len(seed); i++ {
		h ^= uint64(seed[i])
		h *= fnvPrime64
	}
	return int64(h)
}

// Hash01 hashes (seed, x, y, salt) into a float in [0, 1).
// The avalanche mix uses only unsigned 32-bit operations.
func Hash01(seed string, x, y, salt uint32) float64 {
	h := FoldSeed(seed)
	h ^= x * 0x85ebca6b
	h = h<<13 | h>>19
	h ^= y * 0xc2b2ae35
	h = h<<17 | h>>15
	h ^= salt * 0x27d4eb2f

	// Final avalanche (murmur3 finalizer).
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return float64(h) / 4294967296.0
}

// smootherstep eases the interpolation factor (Perlin's quintic fade).
func smootherstep(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

// latticeCoord converts a floored float coordinate into a lattice index.
// Negative coordinates wrap through the int32 conversion, which is fine
// since the hash only cares about distinct inputs.
func latticeCoord(v float64) uint32 {
	return uint32(int32(v))
}

// Value2D returns smoothstep-eased bilinear value noise at the given
// point, sampled from a hashed integer lattice at the given frequency.
func Value2D(seed string, x, y, frequency float64, salt uint32) float64 {
	fx := x * frequency
	fy := y * frequency
	x0 := math.Floor(fx)
	y0 := math.Floor(fy)
	tx := smootherstep(fx - x0)
	ty := smootherstep(fy - y0)

	ix := latticeCoord(x0)
	iy := latticeCoord(y0)
	v00 := Hash01(seed, ix, iy, salt)
	v10 := Hash01(seed, ix+1, iy, salt)
	v01 := Hash01(seed, ix, iy+1, salt)
	v11 := Hash01(seed, ix+1, iy+1, salt)

	top := various.Lerp(v00, v10, tx)
	bottom := various.Lerp(v01, v11, tx)
	return various.Lerp(top, bottom, ty)
}

// FBM2D sums octaves of Value2D at increasing frequency and decreasing
// amplitude. The sum is normalized by the actual sum of amplitudes used,
// so the result stays within [0, 1] regardless of the octave count.
func FBM2D(seed string, x, y, frequency float64, octaves int, lacunarity, gain float64, salt uint32) float64 {
	var sum, sumOfAmplitudes float64
	amplitude := 1.0
	for octave := 0; octave < octaves; octave++ {
		// Each octave samples a distinct lattice.
		octaveSalt := salt + uint32(octave)*0x9e3779b9
		sum += amplitude * Value2D(seed, x, y, frequency, octaveSalt)
		sumOfAmplitudes += amplitude
		frequency *= lacunarity
		amplitude *= gain
	}
	if sumOfAmplitudes == 0 {
		return 0
	}
	return sum / sumOfAmplitudes
}

// Ridge2D returns ridged fBm noise, folding the signal around its
// midpoint so that crests form sharp lines. Result is within [0, 1].
func Ridge2D(seed string, x, y, frequency float64, octaves int, lacunarity, gain float64, salt uint32) float64 {
	v := FBM2D(seed, x, y, frequency, octaves, lacunarity, gain, salt)
	return 1 - math.Abs(2*v-1)
}
