package genmapgrid

import (
	"reflect"
	"testing"
)

func testOptions(seed string) GenerationOptions {
	o := NewGenerationOptions(seed)
	o.Width = 720
	o.Height = 360
	o.CellsX = 96
	o.CellsY = 48
	return o.Normalized()
}

func TestGenerateDeterministic(t *testing.T) {
	o := testOptions("determinism-check")
	a := Generate(o)
	b := Generate(o)
	if !reflect.DeepEqual(a, b) {
		t.Error("Generate should be bit-identical for identical options")
	}

	c := Generate(testOptions("determinism-check-2"))
	if reflect.DeepEqual(a.Height, c.Height) {
		t.Error("different seeds should produce different height grids")
	}
}

func TestGenerateGridShapesAndRanges(t *testing.T) {
	o := testOptions("ranges")
	l := Generate(o)

	if len(l.Height) != o.CellsY || len(l.Height[0]) != o.CellsX {
		t.Fatalf("height grid is %dx%d, want %dx%d", len(l.Height[0]), len(l.Height), o.CellsX, o.CellsY)
	}
	for y := 0; y < o.CellsY; y++ {
		for x := 0; x < o.CellsX; x++ {
			if h := l.Height[y][x]; h < 0 || h > 1 {
				t.Fatalf("height[%d][%d] = %f, want [0,1]", y, x, h)
			}
			if m := l.Moisture[y][x]; m < 0 || m > 1 {
				t.Fatalf("moisture[%d][%d] = %f, want [0,1]", y, x, m)
			}
			if temp := l.Temperature[y][x]; temp < 0 || temp > 1 {
				t.Fatalf("temperature[%d][%d] = %f, want [0,1]", y, x, temp)
			}
		}
	}
}

func TestLandFlagMatchesHeight(t *testing.T) {
	o := testOptions("landflag")
	l := Generate(o)
	for y := 0; y < o.CellsY; y++ {
		for x := 0; x < o.CellsX; x++ {
			want := l.Height[y][x] > o.SeaLevel
			if l.IsLand[y][x] != want {
				t.Fatalf("isLand[%d][%d] = %v but height %f vs sea %f", y, x, l.IsLand[y][x], l.Height[y][x], o.SeaLevel)
			}
		}
	}
}

func TestBiomeGridRederivable(t *testing.T) {
	o := testOptions("biomes")
	l := Generate(o)
	for y := 0; y < o.CellsY; y++ {
		for x := 0; x < o.CellsX; x++ {
			want := ClassifyBiome(l.IsLand[y][x], l.Height[y][x], o.SeaLevel, l.Moisture[y][x], l.Temperature[y][x])
			if l.Biome[y][x] != want {
				t.Fatalf("biome[%d][%d] = %v, re-derivation gives %v", y, x, l.Biome[y][x], want)
			}
		}
	}
}

func TestOceanBorders(t *testing.T) {
	o := testOptions("borders")
	l := Generate(o)
	// The whole rim band sinks below sea level, not just the outermost
	// row and column.
	for y := 0; y < o.CellsY; y++ {
		for x := 0; x < o.CellsX; x++ {
			if l.borderDistance(x, y) < oceanRimWidth && l.IsLand[y][x] {
				t.Fatalf("rim cell (%d,%d) is land, want ocean", x, y)
			}
		}
	}
}

func TestClimatePresetsShiftTheGrids(t *testing.T) {
	temperate := Generate(testOptions("preset"))

	arid := testOptions("preset")
	arid.Climate = ClimateArid
	aridL := Generate(arid)

	cold := testOptions("preset")
	cold.Climate = ClimateCold
	coldL := Generate(cold)

	// Presets only shift climate, the height field stays untouched.
	if !reflect.DeepEqual(temperate.Height, aridL.Height) {
		t.Error("arid preset should not change the height grid")
	}

	var mT, mA, tT, tC float64
	for y := range temperate.Moisture {
		for x := range temperate.Moisture[y] {
			mT += temperate.Moisture[y][x]
			mA += aridL.Moisture[y][x]
			tT += temperate.Temperature[y][x]
			tC += coldL.Temperature[y][x]
		}
	}
	if mA >= mT {
		t.Errorf("arid mean moisture %f should be below temperate %f", mA, mT)
	}
	if tC >= tT {
		t.Errorf("cold mean temperature %f should be below temperate %f", tC, tT)
	}
}

// The reference world: a specific seed and option set with known
// large-scale properties.
func TestReferenceWorld(t *testing.T) {
	o := NewGenerationOptions("world-seed-001")
	o.Width = 2048
	o.Height = 1024
	o.SeaLevel = 0.56
	o.Climate = ClimateTemperate
	o.CellsX = 120
	o.CellsY = 60
	o = o.Normalized()

	l := Generate(o)
	if l.CellsX != 120 || l.CellsY != 60 {
		t.Fatalf("grid is %dx%d, want 120x60", l.CellsX, l.CellsY)
	}

	for y := 0; y < l.CellsY; y++ {
		for x := 0; x < l.CellsX; x++ {
			if l.borderDistance(x, y) < oceanRimWidth && l.IsLand[y][x] {
				t.Fatalf("reference world rim cell (%d,%d) is land", x, y)
			}
		}
	}

	var beaches, land int
	for y := 0; y < l.CellsY; y++ {
		for x := 0; x < l.CellsX; x++ {
			if l.IsLand[y][x] {
				land++
			}
			if l.Biome[y][x] == BiomeBeach {
				beaches++
			}
		}
	}
	if land == 0 {
		t.Fatal("reference world has no land")
	}
	if beaches == 0 {
		t.Error("reference world has no beach cells")
	}
	if l.NumRivers < 8 || l.NumRivers > 40 {
		t.Errorf("reference world has %d rivers, want 8..40", l.NumRivers)
	}
}

func TestNormalizedClampsOptions(t *testing.T) {
	o := NewGenerationOptions("clamp")
	o.Width = 10
	o.Height = 100000
	o.SeaLevel = 1.7
	o.CellsX = 3
	o.CellsY = 10000
	o.Climate = ClimatePreset("volcanic")
	o = o.Normalized()

	if o.Width != MinWidth {
		t.Errorf("width = %d, want %d", o.Width, MinWidth)
	}
	if o.Height != MaxHeight {
		t.Errorf("height = %d, want %d", o.Height, MaxHeight)
	}
	if o.SeaLevel < 0 || o.SeaLevel > 1 {
		t.Errorf("sea level = %f, want [0,1]", o.SeaLevel)
	}
	if o.CellsX != MinCellsX {
		t.Errorf("cellsX = %d, want %d", o.CellsX, MinCellsX)
	}
	if o.CellsY != MaxCellsY {
		t.Errorf("cellsY = %d, want %d", o.CellsY, MaxCellsY)
	}
	if o.Climate != ClimateTemperate {
		t.Errorf("climate = %q, want fallback to temperate", o.Climate)
	}
}
