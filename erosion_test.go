package genmapgrid

import (
	"math"
	"reflect"
	"testing"
)

func TestErodeThermalSpreadsSpike(t *testing.T) {
	l := newTerrainLayers(32, 32, 0.3)
	for y := range l.Height {
		for x := range l.Height[y] {
			l.Height[y][x] = 0.5
		}
	}
	l.Height[16][16] = 0.9

	l.erodeThermal(1)

	if l.Height[16][16] >= 0.9 {
		t.Errorf("spike did not erode: %f", l.Height[16][16])
	}
	// Material moved onto the neighbors.
	for _, nb := range neighbors8 {
		if h := l.Height[16+nb[1]][16+nb[0]]; h <= 0.5 {
			t.Errorf("neighbor (%d,%d) received no material: %f", nb[0], nb[1], h)
		}
	}
	// The flat field spreads symmetrically, so opposite neighbors match.
	if l.Height[16][15] != l.Height[16][17] || l.Height[15][16] != l.Height[17][16] {
		t.Error("erosion around a symmetric spike should be symmetric")
	}
}

func TestErodeThermalLeavesGentleSlopesAlone(t *testing.T) {
	l := newTerrainLayers(32, 32, 0.0)
	// A ramp well below the talus threshold per cell.
	for y := range l.Height {
		for x := range l.Height[y] {
			l.Height[y][x] = 0.4 + float64(x)*talusLand*0.5
		}
	}
	before := make([]float64, 32)
	copy(before, l.Height[16])

	l.erodeThermal(3)

	// applyOceanRim only touches the border band, check the interior.
	for x := oceanRimWidth; x < 32-oceanRimWidth; x++ {
		if l.Height[16][x] != before[x] {
			t.Fatalf("gentle slope changed at x=%d: %f != %f", x, l.Height[16][x], before[x])
		}
	}
}

func TestErodeThermalReducesSteepness(t *testing.T) {
	o := testOptions("erosion-steepness")
	display := Generate(o)
	eroded := GenerateWithErosion(o)

	steepness := func(l *TerrainLayers) float64 {
		var sum float64
		var n int
		for y := 0; y < l.CellsY; y++ {
			for x := 1; x < l.CellsX; x++ {
				sum += math.Abs(l.Height[y][x] - l.Height[y][x-1])
				n++
			}
		}
		return sum / float64(n)
	}
	if s, d := steepness(eroded), steepness(display); s >= d {
		t.Errorf("erosion should reduce mean gradient: %f >= %f", s, d)
	}
}

func TestGenerateWithErosionDeterministic(t *testing.T) {
	o := testOptions("erosion-determinism")
	a := GenerateWithErosion(o)
	b := GenerateWithErosion(o)
	if !reflect.DeepEqual(a, b) {
		t.Error("GenerateWithErosion should be bit-identical for identical options")
	}
	if reflect.DeepEqual(a.Height, Generate(o).Height) {
		t.Error("erosion should change the height grid")
	}
}

func TestErodedHeightsStayInRangeAtZeroSeaLevel(t *testing.T) {
	// The rim limit scales with the sea level; at sea level zero the
	// border clamp must floor at height zero rather than go below it.
	o := testOptions("erosion-zero-sea")
	o.SeaLevel = 0
	l := GenerateWithErosion(o)
	for y := 0; y < l.CellsY; y++ {
		for x := 0; x < l.CellsX; x++ {
			if h := l.Height[y][x]; h < 0 || h > 1 {
				t.Fatalf("height[%d][%d] = %f at sea level 0, want [0,1]", y, x, h)
			}
		}
	}
}

func TestErodedLayersStayConsistent(t *testing.T) {
	o := testOptions("erosion-consistency")
	l := GenerateWithErosion(o)
	for y := 0; y < l.CellsY; y++ {
		for x := 0; x < l.CellsX; x++ {
			if h := l.Height[y][x]; h < 0 || h > 1 {
				t.Fatalf("height[%d][%d] = %f after erosion, want [0,1]", y, x, h)
			}
			if l.IsLand[y][x] != (l.Height[y][x] > o.SeaLevel) {
				t.Fatalf("land flag at (%d,%d) inconsistent after erosion", x, y)
			}
			want := ClassifyBiome(l.IsLand[y][x], l.Height[y][x], o.SeaLevel, l.Moisture[y][x], l.Temperature[y][x])
			if l.Biome[y][x] != want {
				t.Fatalf("biome at (%d,%d) not derived from eroded heights", x, y)
			}
		}
	}
}
