// Package gridmesh builds an adaptive polygon mesh over a generated
// terrain grid: rejection-sampled points with local density control,
// incremental Bowyer-Watson triangulation, and the dual Voronoi cells
// with their shared boundaries.
package gridmesh

import (
	"log"
	"time"

	"github.com/Flokey82/geoquad"
)

// Quality selects the mesh density tier.
type Quality string

const (
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
)

// Reference canvas the tier targets are calibrated against; the actual
// target scales with the viewport area.
const (
	refCanvasWidth  = 720.0
	refCanvasHeight = 360.0
	attemptFactor   = 38 // hard cap: target*attemptFactor sampling attempts
	separationScale = 0.92
	minTargetPoints = 256
)

// tierParams holds the per-quality sampler tuning.
type tierParams struct {
	baseTarget      int     // point target at the reference canvas size
	rMin, rMax      float64 // radius range in pixels
	perimeterStride float64 // spacing of the border seed points
	biomeEdges      bool    // include biome-edge density (render tiers)
	boundaries      bool    // build shared cell boundaries (simulation tier)
}

func (q Quality) params() tierParams {
	switch q {
	case QualityLow:
		return tierParams{baseTarget: 1800, rMin: 3.5, rMax: 10, perimeterStride: 26, biomeEdges: true}
	case QualityHigh:
		return tierParams{baseTarget: 5200, rMin: 2.6, rMax: 7, perimeterStride: 16, boundaries: true}
	}
	return tierParams{baseTarget: 3200, rMin: 3.0, rMax: 8.5, perimeterStride: 20, biomeEdges: true}
}

// GeomConfig holds the degenerate-geometry filter thresholds. They are
// deliberate robustness policy, not bugs: razor-thin triangles and
// sliver cells at the hull are dropped silently. Changing them needs
// fresh test coverage on low-density inputs.
type GeomConfig struct {
	CollinearEps    float64 // circumcenter determinant magnitude below which a triple is skipped
	MinCellArea     float64 // cells with |signed area| below this are discarded
	VertexMergeDist float64 // consecutive polygon vertices closer than this are merged
}

// DefaultGeomConfig returns the stock thresholds.
func DefaultGeomConfig() GeomConfig {
	return GeomConfig{
		CollinearEps:    1e-9,
		MinCellArea:     2.5,
		VertexMergeDist: 0.35,
	}
}

// TerrainSource is the part of the terrain layers the sampler needs to
// derive its feature-density field.
type TerrainSource interface {
	Dims() (cellsX, cellsY int)
	HeightAt(x, y int) float64
	LandAt(x, y int) bool
	BiomeAt(x, y int) int
}

// Point is an accepted mesh point. Radius is the point's local minimum
// separation distance, inversely related to the feature density at its
// position.
type Point struct {
	X, Y   float64
	Radius float64
}

// Face is one Delaunay triangle, as indices into the point set.
type Face struct {
	A, B, C int
}

// Cell is a Voronoi polygon around one site.
type Cell struct {
	Site     int
	Vertices [][2]float64
}

// Boundary is a shared edge between two adjacent cells, running between
// the circumcenters of the two faces that share the site pair. Built on
// the simulation-quality path only.
type Boundary struct {
	SiteA, SiteB int
	P1, P2       [2]float64
}

// Mesh is the full adaptive mesh for one viewport.
type Mesh struct {
	Points     []Point
	Faces      []Face
	Cells      []Cell
	Boundaries []Boundary

	siteTree *geoquad.QuadTree
}

// BuildMesh samples, triangulates and dualizes the mesh for the given
// terrain and viewport using the default geometry thresholds.
func BuildMesh(src TerrainSource, seed string, viewportWidth, viewportHeight, seaLevel float64, quality Quality) *Mesh {
	return BuildMeshGeom(src, seed, viewportWidth, viewportHeight, seaLevel, quality, DefaultGeomConfig())
}

// BuildMeshGeom is BuildMesh with explicit geometry thresholds.
func BuildMeshGeom(src TerrainSource, seed string, viewportWidth, viewportHeight, seaLevel float64, quality Quality, cfg GeomConfig) *Mesh {
	p := quality.params()

	start := time.Now()
	points := samplePoints(src, seed, viewportWidth, viewportHeight, seaLevel, p)
	log.Println("Done mesh sampling in ", time.Since(start).String())

	start = time.Now()
	faces := triangulate(points, cfg)
	log.Println("Done triangulation in ", time.Since(start).String())

	start = time.Now()
	cells, boundaries := buildVoronoi(points, faces, viewportWidth, viewportHeight, cfg, p.boundaries)
	log.Println("Done voronoi in ", time.Since(start).String())

	return &Mesh{
		Points:     points,
		Faces:      faces,
		Cells:      cells,
		Boundaries: boundaries,
		siteTree:   newSiteTree(points),
	}
}

// newSiteTree indexes the sites in a quadtree for rect queries.
func newSiteTree(points []Point) *geoquad.QuadTree {
	qps := make([]geoquad.Point, 0, len(points))
	for i, p := range points {
		qps = append(qps, geoquad.Point{
			Lat:  p.Y,
			Lon:  p.X,
			Data: i,
		})
	}
	return geoquad.NewQuadTree(qps)
}

// SitesInRect returns the indices of all sites within the given
// rectangle, for viewport culling.
func (m *Mesh) SitesInRect(minX, minY, maxX, maxY float64) []int {
	var res []int
	for _, qp := range m.siteTree.FindPointsInRect(geoquad.Rect{
		MinLat: minY,
		MaxLat: maxY,
		MinLon: minX,
		MaxLon: maxX,
	}) {
		res = append(res, qp.Data.(int))
	}
	return res
}
