package genmapgrid

import (
	"sort"

	"github.com/Flokey82/genmapgrid/noise"
	"github.com/Flokey82/go_gens/utils"
)

// River tracing constants.
const (
	riverMaxSteps     = 240   // hard bound on the length of a traced path
	riverMinAltitude  = 0.16  // source altitude above sea level
	riverMinMoisture  = 0.5   // source moisture
	riverStopDepth    = 0.008 // tracing stops this close above sea level
	riverCellsPerPath = 900   // one river per this many grid cells
	riverMinCount     = 8
	riverMaxCount     = 40
)

type riverSource struct {
	x, y  int
	score float64
}

// assignRivers traces river paths from high, wet source cells down to
// the sea and marks the visited cells on the river grid. Rivers follow
// strict steepest descent; there is no lake filling, so a path may
// terminate inland at a local minimum.
func (l *TerrainLayers) assignRivers(o GenerationOptions) {
	l.RiverPaths = l.traceRiverPaths(o)
	l.NumRivers = len(l.RiverPaths)
	for _, path := range l.RiverPaths {
		for _, c := range path {
			l.River[c[1]][c[0]] = true
		}
	}
}

// traceRiverPaths picks the top-K source candidates and walks each one
// downhill. Paths are returned as sequences of (x, y) cells.
func (l *TerrainLayers) traceRiverPaths(o GenerationOptions) [][][2]int {
	var candidates []riverSource
	for y := 0; y < l.CellsY; y++ {
		for x := 0; x < l.CellsX; x++ {
			if !l.IsLand[y][x] {
				continue
			}
			h := l.Height[y][x]
			m := l.Moisture[y][x]
			if h <= l.SeaLevel+riverMinAltitude || m <= riverMinMoisture {
				continue
			}
			// Deterministic jitter breaks ties between equally good sources.
			jitter := 0.02 * noise.Hash01(o.Seed, uint32(x), uint32(y), saltRiverJitter)
			candidates = append(candidates, riverSource{x: x, y: y, score: 0.7*h + 0.3*m + jitter})
		}
	}
	sort.Slice(candidates, func(a, b int) bool {
		if candidates[a].score != candidates[b].score {
			return candidates[a].score > candidates[b].score
		}
		// Stable order for identical scores.
		if candidates[a].y != candidates[b].y {
			return candidates[a].y < candidates[b].y
		}
		return candidates[a].x < candidates[b].x
	})

	k := utils.Min(utils.Max(l.CellsX*l.CellsY/riverCellsPerPath, riverMinCount), riverMaxCount)
	if k > len(candidates) {
		k = len(candidates)
	}

	visited := make(map[[2]int]bool)
	var paths [][][2]int
	for i := 0; i < k; i++ {
		x, y := candidates[i].x, candidates[i].y
		var path [][2]int
		for step := 0; step < riverMaxSteps; step++ {
			if visited[[2]int{x, y}] {
				break // joined an existing river
			}
			visited[[2]int{x, y}] = true
			path = append(path, [2]int{x, y})

			if l.Height[y][x] <= l.SeaLevel+riverStopDepth {
				break // reached the sea
			}

			// Strict steepest descent to the lowest 8-connected neighbor.
			bestH := l.Height[y][x]
			bestX, bestY := -1, -1
			for _, nb := range neighbors8 {
				nx, ny := x+nb[0], y+nb[1]
				if !l.inBounds(nx, ny) {
					continue
				}
				if nh := l.Height[ny][nx]; nh < bestH {
					bestH = nh
					bestX, bestY = nx, ny
				}
			}
			if bestX < 0 {
				break // local minimum
			}
			x, y = bestX, bestY
		}
		if len(path) > 0 {
			paths = append(paths, path)
		}
	}
	return paths
}
