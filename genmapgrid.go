// Package genmapgrid is a deterministic procedural map generator with a
// companion adaptive-mesh builder. Given a seed string and a small set
// of options it produces reproducible height, moisture, temperature,
// biome and river grids, and a variable-density polygon mesh (Poisson
// style sampling, Delaunay triangulation, Voronoi duality) suitable for
// rendering.
//
// Generation is a pure, CPU-bound function of its inputs: the same
// options always yield bit-identical grids, whether computed inline or
// on a background worker.
package genmapgrid

import (
	"fmt"

	"github.com/Flokey82/genmapgrid/gridmesh"
	"github.com/Flokey82/genmapgrid/various"
)

// Algorithm versions baked into the cache keys. Bump whenever tuned
// constants change, so stale cache entries can never leak across
// algorithm revisions.
const (
	layersVersion = 4
	meshVersion   = 3
)

// Fidelity selects between the cheap display pipeline and the
// simulation pipeline that runs thermal erosion before classification.
type Fidelity string

const (
	FidelityDisplay    Fidelity = "display"
	FidelitySimulation Fidelity = "sim"
)

// CacheKey returns the canonical cache key for the display-fidelity
// layers of the given options. Every generation parameter is part of
// the key, so any change invalidates the cache.
func CacheKey(o GenerationOptions) string {
	return layersCacheKey(o, FidelityDisplay)
}

func layersCacheKey(o GenerationOptions, fidelity Fidelity) string {
	o = o.Normalized()
	return fmt.Sprintf("layers:v%d|seed=%s|px=%dx%d|sea=%.4f|climate=%s|cells=%dx%d|q=%s|fid=%s",
		layersVersion, o.Seed, o.Width, o.Height, various.RoundToDecimals(o.SeaLevel, 4),
		o.Climate, o.CellsX, o.CellsY, o.Quality, fidelity)
}

func meshCacheKey(in MeshInput) string {
	return fmt.Sprintf("mesh:v%d|src=%s|seed=%s|vp=%.1fx%.1f|sea=%.4f|q=%s|cells=%dx%d",
		meshVersion, in.LayersKey, in.Seed, in.ViewportWidth, in.ViewportHeight,
		various.RoundToDecimals(in.SeaLevel, 4), in.Quality, in.Layers.CellsX, in.Layers.CellsY)
}

// Generate produces the terrain layers for the given options using the
// display-fidelity pipeline.
func Generate(o GenerationOptions) *TerrainLayers {
	return generateLayers(o, FidelityDisplay)
}

// GenerateWithErosion produces the terrain layers using the
// simulation-fidelity pipeline, which applies iterative thermal erosion
// before the biome classification.
func GenerateWithErosion(o GenerationOptions) *TerrainLayers {
	return generateLayers(o, FidelitySimulation)
}

// BuildMesh builds the adaptive render mesh for the given layers.
func BuildMesh(l *TerrainLayers, seed string, viewportWidth, viewportHeight, seaLevel float64, quality gridmesh.Quality) *gridmesh.Mesh {
	return gridmesh.BuildMesh(l, seed, viewportWidth, viewportHeight, seaLevel, quality)
}
