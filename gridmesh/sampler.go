package gridmesh

import (
	"math"
	"math/rand"

	"github.com/Flokey82/genmapgrid/noise"
	"github.com/Flokey82/genmapgrid/various"
)

// densityField caches the per-grid-cell feature density: a blend of
// land/sea variance, height-slope magnitude, coastline proximity and
// (render tiers) biome-edge density. High density means small features
// that deserve a finer mesh.
type densityField struct {
	cellsX, cellsY int
	vals           [][]float64
}

func newDensityField(src TerrainSource, biomeEdges bool) *densityField {
	cellsX, cellsY := src.Dims()
	f := &densityField{
		cellsX: cellsX,
		cellsY: cellsY,
		vals:   various.InitFloatGrid(cellsX, cellsY),
	}

	clampX := func(x int) int {
		if x < 0 {
			return 0
		}
		if x >= cellsX {
			return cellsX - 1
		}
		return x
	}
	clampY := func(y int) int {
		if y < 0 {
			return 0
		}
		if y >= cellsY {
			return cellsY - 1
		}
		return y
	}

	for y := 0; y < cellsY; y++ {
		for x := 0; x < cellsX; x++ {
			h := src.HeightAt(x, y)
			biome := src.BiomeAt(x, y)

			// Land/sea variance and slope over the 3x3 neighborhood.
			var landCount, n, biomeEdgeCount float64
			var slope float64
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := clampX(x+dx), clampY(y+dy)
					if src.LandAt(nx, ny) {
						landCount++
					}
					if d := math.Abs(src.HeightAt(nx, ny) - h); d > slope {
						slope = d
					}
					if src.BiomeAt(nx, ny) != biome {
						biomeEdgeCount++
					}
					n++
				}
			}
			landFrac := landCount / n
			variance := 4 * landFrac * (1 - landFrac) // 1 at a 50/50 split

			// Coastline proximity: any land/sea transition within 2 cells.
			var coast float64
			land := src.LandAt(x, y)
			for dy := -2; dy <= 2 && coast == 0; dy++ {
				for dx := -2; dx <= 2; dx++ {
					if src.LandAt(clampX(x+dx), clampY(y+dy)) != land {
						coast = 1
						break
					}
				}
			}

			d := 0.3*variance + 0.25*various.Clamp01(slope*14) + 0.25*coast
			if biomeEdges {
				d += 0.2 * biomeEdgeCount / n
			}
			f.vals[y][x] = various.Clamp01(d)
		}
	}
	return f
}

// at returns the density at normalized canvas coordinates.
func (f *densityField) at(u, v float64) float64 {
	x := int(u * float64(f.cellsX))
	y := int(v * float64(f.cellsY))
	if x < 0 {
		x = 0
	} else if x >= f.cellsX {
		x = f.cellsX - 1
	}
	if y < 0 {
		y = 0
	} else if y >= f.cellsY {
		y = f.cellsY - 1
	}
	return f.vals[y][x]
}

// spatialHash is a uniform grid over the canvas for O(1) neighbor
// lookups during dart throwing.
type spatialHash struct {
	cellSize   float64
	cols, rows int
	buckets    [][]int
}

func newSpatialHash(width, height, cellSize float64) *spatialHash {
	cols := int(math.Ceil(width/cellSize)) + 1
	rows := int(math.Ceil(height/cellSize)) + 1
	return &spatialHash{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		buckets:  make([][]int, cols*rows),
	}
}

func (s *spatialHash) bucketAt(x, y float64) int {
	cx := int(x / s.cellSize)
	cy := int(y / s.cellSize)
	if cx < 0 {
		cx = 0
	} else if cx >= s.cols {
		cx = s.cols - 1
	}
	if cy < 0 {
		cy = 0
	} else if cy >= s.rows {
		cy = s.rows - 1
	}
	return cy*s.cols + cx
}

func (s *spatialHash) insert(i int, x, y float64) {
	b := s.bucketAt(x, y)
	s.buckets[b] = append(s.buckets[b], i)
}

// visitNear calls fn for every stored index within the buckets covering
// the given radius around (x, y). Returning false stops the scan.
func (s *spatialHash) visitNear(x, y, radius float64, fn func(i int) bool) {
	minX := int((x - radius) / s.cellSize)
	maxX := int((x + radius) / s.cellSize)
	minY := int((y - radius) / s.cellSize)
	maxY := int((y + radius) / s.cellSize)
	for cy := minY; cy <= maxY; cy++ {
		if cy < 0 || cy >= s.rows {
			continue
		}
		for cx := minX; cx <= maxX; cx++ {
			if cx < 0 || cx >= s.cols {
				continue
			}
			for _, i := range s.buckets[cy*s.cols+cx] {
				if !fn(i) {
					return
				}
			}
		}
	}
}

// samplePoints runs dart-throwing rejection sampling with local density
// control. It terminates at the tier's target point count (scaled by
// canvas area) or after target*attemptFactor attempts, whichever comes
// first; the attempt cap guarantees termination even under adversarial
// density functions.
func samplePoints(src TerrainSource, seed string, width, height, seaLevel float64, p tierParams) []Point {
	rnd := rand.New(rand.NewSource(noise.FoldSeed64(seed) ^ 0x6d657368))
	density := newDensityField(src, p.biomeEdges)

	target := int(float64(p.baseTarget) * (width * height) / (refCanvasWidth * refCanvasHeight))
	if target < minTargetPoints {
		target = minTargetPoints
	}

	grid := newSpatialHash(width, height, p.rMax)
	var points []Point

	// tryPlace accepts the candidate unless it crowds an existing point.
	tryPlace := func(x, y float64) bool {
		d := density.at(x/width, y/height)
		radius := p.rMin + (1-d)*(p.rMax-p.rMin)

		ok := true
		grid.visitNear(x, y, p.rMax, func(i int) bool {
			nb := points[i]
			limit := math.Min(radius, nb.Radius) * separationScale
			dx := nb.X - x
			dy := nb.Y - y
			if dx*dx+dy*dy < limit*limit {
				ok = false
				return false
			}
			return true
		})
		if !ok {
			return false
		}
		grid.insert(len(points), x, y)
		points = append(points, Point{X: x, Y: y, Radius: radius})
		return true
	}

	// Four corners plus perimeter points at a fixed stride guarantee
	// convex-hull coverage of the render rectangle. Perimeter points get
	// a deterministic sub-pixel offset so the hull never carries exactly
	// collinear runs, which would only feed the degenerate-triple filter.
	tryPlace(0, 0)
	tryPlace(width, 0)
	tryPlace(0, height)
	tryPlace(width, height)
	perimJitter := func(i uint32) float64 {
		return 0.2 + 0.6*noise.Hash01(seed, i, 0, 0x5E)
	}
	var pi uint32
	for x := p.perimeterStride; x < width; x += p.perimeterStride {
		tryPlace(x, perimJitter(pi))
		tryPlace(x, height-perimJitter(pi+1))
		pi += 2
	}
	for y := p.perimeterStride; y < height; y += p.perimeterStride {
		tryPlace(perimJitter(pi), y)
		tryPlace(width-perimJitter(pi+1), y)
		pi += 2
	}

	// Interior darts: acceptance probability scales with density, so
	// feature-rich areas fill in first and stay finer.
	maxAttempts := target * attemptFactor
	for attempts := 0; len(points) < target && attempts < maxAttempts; attempts++ {
		x := rnd.Float64() * width
		y := rnd.Float64() * height
		d := density.at(x/width, y/height)
		if rnd.Float64() > 0.22+0.78*d {
			continue
		}
		tryPlace(x, y)
	}
	return points
}
