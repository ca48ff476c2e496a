package genmapgrid

import (
	"math"

	"github.com/Flokey82/genmapgrid/noise"
)

// Blob count bounds for the continental mask.
const (
	minMajorBlobs = 4
	maxMajorBlobs = 7
	minMinorBlobs = 8
	maxMinorBlobs = 13
)

// continentBlob is a rotated anisotropic Gaussian influence field.
// All parameters are derived from the seed hash, never from a stateful RNG.
type continentBlob struct {
	cx, cy   float64 // center in normalized coordinates
	rx, ry   float64 // radii along the rotated axes
	sin, cos float64 // precomputed rotation
	weight   float64 // influence weight
}

// continentalMask blends elliptical blob fields into coherent landmass
// shapes. Summing alone produces scattered noise blobs; mixing in the
// maximum influence biases the mask toward solid continents.
type continentalMask struct {
	blobs []continentBlob
}

// newContinentalMask derives the blob set for the given seed.
func newContinentalMask(seed string) *continentalMask {
	nMajor := minMajorBlobs + int(noise.Hash01(seed, 0, 0, saltBlobCount)*float64(maxMajorBlobs-minMajorBlobs+1))
	nMinor := minMinorBlobs + int(noise.Hash01(seed, 1, 0, saltBlobCount)*float64(maxMinorBlobs-minMinorBlobs+1))

	m := &continentalMask{}
	for i := 0; i < nMajor; i++ {
		m.blobs = append(m.blobs, newBlob(seed, uint32(i), saltBlobMajor, 0.16, 0.24, 0.75, 1.0))
	}
	for i := 0; i < nMinor; i++ {
		m.blobs = append(m.blobs, newBlob(seed, uint32(i), saltBlobMinor, 0.05, 0.11, 0.25, 0.55))
	}
	return m
}

// newBlob derives a single blob from the seed hash. Radii fall within
// [rBase, rBase+rSpread] and weight within [wMin, wMax].
func newBlob(seed string, i, salt uint32, rBase, rSpread, wMin, wMax float64) continentBlob {
	rot := noise.Hash01(seed, i, 3, salt) * math.Pi
	return continentBlob{
		cx:     0.15 + noise.Hash01(seed, i, 0, salt)*0.7,
		cy:     0.15 + noise.Hash01(seed, i, 1, salt)*0.7,
		rx:     rBase + noise.Hash01(seed, i, 2, salt)*rSpread,
		ry:     rBase + noise.Hash01(seed, i, 4, salt)*rSpread,
		sin:    math.Sin(rot),
		cos:    math.Cos(rot),
		weight: wMin + noise.Hash01(seed, i, 5, salt)*(wMax-wMin),
	}
}

// influence returns the blob's Gaussian falloff at the given point.
func (b continentBlob) influence(u, v float64) float64 {
	dx := u - b.cx
	dy := v - b.cy

	// Rotate into the blob's local frame.
	lx := dx*b.cos + dy*b.sin
	ly := -dx*b.sin + dy*b.cos

	d := (lx*lx)/(b.rx*b.rx) + (ly*ly)/(b.ry*b.ry)
	return b.weight * math.Exp(-d)
}

// at returns the mask value at the given normalized coordinates.
func (m *continentalMask) at(u, v float64) float64 {
	var sum, max float64
	for _, b := range m.blobs {
		infl := b.influence(u, v)
		sum += infl
		if infl > max {
			max = infl
		}
	}
	return 0.42*sum + 0.58*max
}
