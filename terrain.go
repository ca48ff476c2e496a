package genmapgrid

import (
	"log"
	"math"
	"time"

	"github.com/Flokey82/genmapgrid/noise"
	"github.com/Flokey82/genmapgrid/various"
)

// Noise lattice salts. Every field samples its own lattice so the layers
// stay statistically independent of each other.
const (
	saltBlobCount   uint32 = 0xA1
	saltBlobMajor   uint32 = 0xA2
	saltBlobMinor   uint32 = 0xA3
	saltWarpX       uint32 = 0xB1
	saltWarpY       uint32 = 0xB2
	saltContinental uint32 = 0xC1
	saltRegional    uint32 = 0xC2
	saltDetail      uint32 = 0xC3
	saltRidge       uint32 = 0xC4
	saltHumidityA   uint32 = 0xD1
	saltHumidityB   uint32 = 0xD2
	saltDryPocket   uint32 = 0xD3
	saltWetPocket   uint32 = 0xD4
	saltHeat        uint32 = 0xE1
	saltRiverJitter uint32 = 0xF1
)

// Terrain shaping constants. Tuned for output parity; changing any of
// them requires bumping layersVersion.
const (
	warpStrength     = 0.18 // domain warp amplitude in normalized space
	warpFrequency    = 2.1
	hypsometricCurve = 1.16 // power curve applied to the raw altitude
	oceanRimWidth    = 4    // cells of guaranteed ocean at the grid border
	coastalPasses    = 2
	coastalBand      = 0.08  // altitude distance from sea level that counts as coastal
	coastalPull      = 0.5   // how far a coastal cell moves toward its neighborhood average
	coastalNudge     = 0.012 // extra erosion / fill for near-isolated cells
	mountainClipBand = 0.22  // altitude above sea level where clipping starts
	mountainClipKeep = 0.38  // fraction of the excess kept above the clip threshold
)

// generateLayers runs the full layer pipeline. This is the single
// versioned algorithm behind the cache key; display and simulation
// output differ only by the fidelity parameter (thermal erosion).
func generateLayers(o GenerationOptions, fidelity Fidelity) *TerrainLayers {
	o = o.Normalized()
	mask := newContinentalMask(o.Seed)
	l := newTerrainLayers(o.CellsX, o.CellsY, o.SeaLevel)

	start := time.Now()
	l.assignHeight(o, mask)
	l.applyOceanRim()
	l.smoothCoastlines(coastalPasses)
	// Smoothing can pull rim cells back up; restore the guarantee.
	l.applyOceanRim()
	l.clipMountains()
	l.assignLandFlags()
	log.Println("Done height in ", time.Since(start).String())

	if fidelity == FidelitySimulation {
		start = time.Now()
		l.erodeThermal(erosionIterations)
		log.Println("Done erosion in ", time.Since(start).String())
	}

	start = time.Now()
	l.assignClimate(o)
	l.assignBiomes()
	log.Println("Done climate in ", time.Since(start).String())

	start = time.Now()
	l.assignRivers(o)
	log.Println("Done rivers in ", time.Since(start).String())
	return l
}

// assignHeight fills the height grid from domain-warped fBm relief
// blended with the continental mask and the border falloffs.
func (l *TerrainLayers) assignHeight(o GenerationOptions, mask *continentalMask) {
	seed := o.Seed
	various.KickOffChunkWorkers(l.CellsY, func(startY, endY int) {
		for y := startY; y < endY; y++ {
			v := (float64(y) + 0.5) / float64(l.CellsY)
			for x := 0; x < l.CellsX; x++ {
				u := (float64(x) + 0.5) / float64(l.CellsX)

				// Domain-warp the sample position with two fBm fields.
				wu := u + warpStrength*(noise.FBM2D(seed, u, v, warpFrequency, 3, 2.0, 0.5, saltWarpX)-0.5)
				wv := v + warpStrength*(noise.FBM2D(seed, u, v, warpFrequency, 3, 2.0, 0.5, saltWarpY)-0.5)

				// Relief octaves at increasing frequency.
				continental := noise.FBM2D(seed, wu, wv, 1.8, 4, 2.0, 0.5, saltContinental)
				regional := noise.FBM2D(seed, wu, wv, 3.6, 5, 2.0, 0.5, saltRegional)
				detail := noise.FBM2D(seed, wu, wv, 7.5, 6, 2.0, 0.5, saltDetail)
				ridge := noise.Ridge2D(seed, wu, wv, 3.2, 4, 2.0, 0.5, saltRidge)
				relief := 0.42*continental + 0.26*regional + 0.14*detail + 0.18*ridge

				raw := various.Clamp01(0.55*relief + 0.55*mask.at(wu, wv))

				// Distance-from-center falloff keeps the action away
				// from the corners.
				d := various.Dist2([2]float64{u, v}, [2]float64{0.5, 0.5})
				centerFall := various.Clamp01(1.15 - 1.1*d)

				// Edge falloff guarantees ocean near the image borders.
				e := math.Min(math.Min(u, 1-u), math.Min(v, 1-v)) * 2
				edgeFall := math.Pow(various.Clamp01(e/0.28), 0.8)

				l.Height[y][x] = math.Pow(various.Clamp01(raw*centerFall*edgeFall), hypsometricCurve)
			}
		}
	})
}

// applyOceanRim clamps the height inside a shrinking maximum-altitude
// band as the distance to the border decreases, forcing ocean around the
// whole grid.
func (l *TerrainLayers) applyOceanRim() {
	for y := 0; y < l.CellsY; y++ {
		for x := 0; x < l.CellsX; x++ {
			d := l.borderDistance(x, y)
			if d >= oceanRimWidth {
				continue
			}
			t := float64(d) / float64(oceanRimWidth)
			limit := math.Max(0, (l.SeaLevel-0.01)*math.Pow(t, 0.85))
			if l.Height[y][x] > limit {
				l.Height[y][x] = limit
			}
		}
	}
}

// smoothCoastlines pulls cells near sea level toward their weighted
// 3x3-neighborhood average. Near-isolated land erodes a little extra,
// almost-landlocked sea fills in a little extra, which cleans up
// single-cell islands and ponds along the coast.
func (l *TerrainLayers) smoothCoastlines(passes int) {
	for p := 0; p < passes; p++ {
		src := various.CopyFloatGrid(l.Height)
		for y := 0; y < l.CellsY; y++ {
			for x := 0; x < l.CellsX; x++ {
				h := src[y][x]

				var landN, seaN int
				sum := h * 2
				weight := 2.0
				for _, nb := range neighbors8 {
					nx, ny := x+nb[0], y+nb[1]
					if !l.inBounds(nx, ny) {
						continue
					}
					nh := src[ny][nx]
					if nh > l.SeaLevel {
						landN++
					} else {
						seaN++
					}
					w := 1.0
					if nb[0] != 0 && nb[1] != 0 {
						w = 0.5 // diagonal
					}
					sum += nh * w
					weight += w
				}

				coastal := math.Abs(h-l.SeaLevel) <= coastalBand || (landN > 0 && seaN > 0)
				if !coastal {
					continue
				}

				h += (sum/weight - h) * coastalPull
				if src[y][x] > l.SeaLevel && landN <= 1 {
					h -= coastalNudge // near-isolated land erodes away
				} else if src[y][x] <= l.SeaLevel && landN >= 7 {
					h += coastalNudge // landlocked pond fills in
				}
				l.Height[y][x] = various.Clamp01(h)
			}
		}
	}
}

// clipMountains compresses every altitude above seaLevel+mountainClipBand
// to a fraction of its excess, approximating a hypsometric profile where
// extreme peaks are rare.
func (l *TerrainLayers) clipMountains() {
	limit := l.SeaLevel + mountainClipBand
	for y := 0; y < l.CellsY; y++ {
		for x := 0; x < l.CellsX; x++ {
			if h := l.Height[y][x]; h > limit {
				l.Height[y][x] = limit + (h-limit)*mountainClipKeep
			}
		}
	}
}
