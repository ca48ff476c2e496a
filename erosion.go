package genmapgrid

import (
	"math"

	"github.com/Flokey82/genmapgrid/various"
)

// Thermal erosion constants. The talus angle is the height difference
// above which material starts sliding to a neighbor; submerged slopes
// rest at a steeper angle than dry ones.
const (
	erosionIterations = 14
	talusLand         = 0.012
	talusSea          = 0.024
	erosionCapacity   = 0.02 // max height a cell may shed per iteration
)

// erodeThermal runs iterative talus-based erosion over the height grid.
// Each iteration computes all transfers against a frozen copy of the
// grid and applies them simultaneously, so the result does not depend on
// cell visit order. The ocean rim is re-enforced after every iteration.
func (l *TerrainLayers) erodeThermal(iterations int) {
	var nbExcess [8]float64
	var nbX, nbY [8]int

	for it := 0; it < iterations; it++ {
		src := various.CopyFloatGrid(l.Height)
		delta := various.InitFloatGrid(l.CellsX, l.CellsY)

		for y := 0; y < l.CellsY; y++ {
			for x := 0; x < l.CellsX; x++ {
				h := src[y][x]
				talus := talusSea
				if h > l.SeaLevel {
					talus = talusLand
				}

				// Collect every neighbor below the talus threshold.
				var total, maxDiff float64
				count := 0
				for _, nb := range neighbors8 {
					nx, ny := x+nb[0], y+nb[1]
					if !l.inBounds(nx, ny) {
						continue
					}
					diff := h - src[ny][nx]
					if diff <= talus {
						continue
					}
					nbExcess[count] = diff - talus
					nbX[count] = nx
					nbY[count] = ny
					total += diff - talus
					if diff > maxDiff {
						maxDiff = diff
					}
					count++
				}
				if count == 0 {
					continue
				}

				// Capacity-bounded transfer, split proportionally to
				// each neighbor's share of the total excess.
				amount := math.Min(erosionCapacity, 0.5*(maxDiff-talus))
				if amount <= 0 {
					continue
				}
				for i := 0; i < count; i++ {
					delta[nbY[i]][nbX[i]] += amount * nbExcess[i] / total
				}
				delta[y][x] -= amount
			}
		}

		for y := 0; y < l.CellsY; y++ {
			for x := 0; x < l.CellsX; x++ {
				l.Height[y][x] = various.Clamp01(src[y][x] + delta[y][x])
			}
		}
		l.applyOceanRim()
	}
	l.assignLandFlags()
}
