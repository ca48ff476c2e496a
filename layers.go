package genmapgrid

import (
	"github.com/Flokey82/genmapgrid/various"
)

// TerrainLayers holds the generated per-cell grids. All grids share the
// same CellsY x CellsX shape and are indexed [y][x]. A value is sealed
// once generation returns it; post-processing only ever happens on the
// local copy inside the pipeline.
type TerrainLayers struct {
	CellsX      int
	CellsY      int
	SeaLevel    float64
	Height      [][]float64 // Altitude in [0, 1]
	Moisture    [][]float64 // Moisture in [0, 1]
	Temperature [][]float64 // Temperature in [0, 1]
	IsLand      [][]bool    // Height above sea level
	Biome       [][]Biome   // Biome classification
	River       [][]bool    // Cell carries a traced river
	RiverPaths  [][][2]int  // Traced paths as (x, y) cell sequences
	NumRivers   int         // Number of traced river paths
}

// newTerrainLayers returns zeroed layers with the given grid resolution.
func newTerrainLayers(cellsX, cellsY int, seaLevel float64) *TerrainLayers {
	return &TerrainLayers{
		CellsX:      cellsX,
		CellsY:      cellsY,
		SeaLevel:    seaLevel,
		Height:      various.InitFloatGrid(cellsX, cellsY),
		Moisture:    various.InitFloatGrid(cellsX, cellsY),
		Temperature: various.InitFloatGrid(cellsX, cellsY),
		IsLand:      various.InitBoolGrid(cellsX, cellsY),
		Biome:       make([][]Biome, cellsY),
		River:       various.InitBoolGrid(cellsX, cellsY),
	}
}

// neighbors8 is the offset table for the 8-connected neighborhood.
var neighbors8 = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// inBounds reports whether the given cell lies within the grid.
func (l *TerrainLayers) inBounds(x, y int) bool {
	return x >= 0 && x < l.CellsX && y >= 0 && y < l.CellsY
}

// borderDistance returns the distance (in cells) to the nearest grid border.
func (l *TerrainLayers) borderDistance(x, y int) int {
	d := x
	if v := y; v < d {
		d = v
	}
	if v := l.CellsX - 1 - x; v < d {
		d = v
	}
	if v := l.CellsY - 1 - y; v < d {
		d = v
	}
	return d
}

// assignLandFlags recomputes IsLand from the height grid. This is the
// canonical land/sea rule: a cell is land iff its altitude exceeds the
// sea level.
func (l *TerrainLayers) assignLandFlags() {
	for y := 0; y < l.CellsY; y++ {
		for x := 0; x < l.CellsX; x++ {
			l.IsLand[y][x] = l.Height[y][x] > l.SeaLevel
		}
	}
}

// assignBiomes recomputes the biome grid from the other layers. Biomes
// are a pure function of (isLand, height, seaLevel, moisture,
// temperature) at each cell.
func (l *TerrainLayers) assignBiomes() {
	for y := 0; y < l.CellsY; y++ {
		if l.Biome[y] == nil {
			l.Biome[y] = make([]Biome, l.CellsX)
		}
		for x := 0; x < l.CellsX; x++ {
			l.Biome[y][x] = ClassifyBiome(l.IsLand[y][x], l.Height[y][x], l.SeaLevel, l.Moisture[y][x], l.Temperature[y][x])
		}
	}
}

// Dims returns the grid resolution. Part of the gridmesh.TerrainSource
// interface.
func (l *TerrainLayers) Dims() (int, int) {
	return l.CellsX, l.CellsY
}

// HeightAt returns the altitude of the given cell. Part of the
// gridmesh.TerrainSource interface.
func (l *TerrainLayers) HeightAt(x, y int) float64 {
	return l.Height[y][x]
}

// LandAt reports whether the given cell is land. Part of the
// gridmesh.TerrainSource interface.
func (l *TerrainLayers) LandAt(x, y int) bool {
	return l.IsLand[y][x]
}

// BiomeAt returns the biome id of the given cell. Part of the
// gridmesh.TerrainSource interface.
func (l *TerrainLayers) BiomeAt(x, y int) int {
	return int(l.Biome[y][x])
}
