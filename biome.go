package genmapgrid

import "image/color"

// Biome classifies a cell by the dominant vegetation / surface type.
type Biome int

const (
	BiomeOcean Biome = iota
	BiomeBeach
	BiomeSnow
	BiomeTundra
	BiomeTaiga
	BiomeGrassland
	BiomeForest
	BiomeRainforest
	BiomeDesert
	BiomeSavanna
	BiomeRock
)

func (b Biome) String() string {
	switch b {
	case BiomeOcean:
		return "ocean"
	case BiomeBeach:
		return "beach"
	case BiomeSnow:
		return "snow"
	case BiomeTundra:
		return "tundra"
	case BiomeTaiga:
		return "taiga"
	case BiomeGrassland:
		return "grassland"
	case BiomeForest:
		return "forest"
	case BiomeRainforest:
		return "rainforest"
	case BiomeDesert:
		return "desert"
	case BiomeSavanna:
		return "savanna"
	case BiomeRock:
		return "rock"
	}
	return "unknown"
}

// Biome decision thresholds. The ordering of the decision table below and
// these constants are tuned for output parity with existing worlds; do
// not adjust them without bumping the layers cache version.
const (
	biomeBeachBand     = 0.016 // altitude band above sea level classified as beach
	biomeHighAltitude  = 0.9   // above this altitude only snow or rock survive
	biomeSnowTemp      = 0.16  // below this temperature everything is snow
	biomeTundraTemp    = 0.3   // below this temperature only taiga or tundra grow
	biomeTaigaMoisture = 0.35  // cold cells at least this moist grow taiga
	biomeDesertLimit   = 0.17  // below this moisture nothing but desert
	biomeSavannaLimit  = 0.34  // below this moisture open grass or savanna
	biomeForestLimit   = 0.66  // below this moisture forest, above rainforest
	biomeHotTemp       = 0.65  // above this temperature savanna / rainforest
)

// ClassifyBiome applies the biome decision table to a single cell. It is
// a pure function of its five inputs, so the stored biome grid can always
// be re-derived from the other layers.
//
// The table is evaluated strictly in order; earlier rules win.
func ClassifyBiome(isLand bool, height, seaLevel, moisture, temperature float64) Biome {
	if !isLand {
		return BiomeOcean
	}
	if height-seaLevel < biomeBeachBand {
		return BiomeBeach
	}
	if height > biomeHighAltitude {
		if temperature < biomeTundraTemp {
			return BiomeSnow
		}
		return BiomeRock
	}
	if temperature < biomeSnowTemp {
		return BiomeSnow
	}
	if temperature < biomeTundraTemp {
		if moisture >= biomeTaigaMoisture {
			return BiomeTaiga
		}
		return BiomeTundra
	}
	if moisture < biomeDesertLimit {
		return BiomeDesert
	}
	if moisture < biomeSavannaLimit {
		if temperature > biomeHotTemp {
			return BiomeSavanna
		}
		return BiomeGrassland
	}
	if moisture < biomeForestLimit {
		return BiomeForest
	}
	if temperature > biomeHotTemp {
		return BiomeRainforest
	}
	return BiomeForest
}

// Color returns the display color of the biome.
func (b Biome) Color() color.NRGBA {
	switch b {
	case BiomeOcean:
		return color.NRGBA{R: 28, G: 54, B: 133, A: 255}
	case BiomeBeach:
		return color.NRGBA{R: 228, G: 214, B: 167, A: 255}
	case BiomeSnow:
		return color.NRGBA{R: 240, G: 245, B: 248, A: 255}
	case BiomeTundra:
		return color.NRGBA{R: 150, G: 158, B: 128, A: 255}
	case BiomeTaiga:
		return color.NRGBA{R: 94, G: 129, B: 88, A: 255}
	case BiomeGrassland:
		return color.NRGBA{R: 130, G: 170, B: 84, A: 255}
	case BiomeForest:
		return color.NRGBA{R: 60, G: 117, B: 56, A: 255}
	case BiomeRainforest:
		return color.NRGBA{R: 27, G: 94, B: 49, A: 255}
	case BiomeDesert:
		return color.NRGBA{R: 219, G: 196, B: 128, A: 255}
	case BiomeSavanna:
		return color.NRGBA{R: 185, G: 179, B: 94, A: 255}
	case BiomeRock:
		return color.NRGBA{R: 132, G: 128, B: 122, A: 255}
	}
	return color.NRGBA{A: 255}
}
