package genmapgrid

import (
	"github.com/Flokey82/genmapgrid/gridmesh"
	"github.com/Flokey82/go_gens/utils"
)

// ClimatePreset shifts the moisture and temperature fields to mimic a
// broad climate archetype.
type ClimatePreset string

const (
	ClimateTemperate ClimatePreset = "temperate"
	ClimateArid      ClimatePreset = "arid"
	ClimateCold      ClimatePreset = "cold"
)

// Clamping bounds for the generation options.
const (
	MinWidth  = 320
	MaxWidth  = 4096
	MinHeight = 200
	MaxHeight = 4096
	MinCellsX = 48
	MaxCellsX = 220
	MinCellsY = 32
	MaxCellsY = 140
)

// GenerationOptions fully determines the output of the generator.
// Callers should treat a value as immutable once handed to the pipeline.
type GenerationOptions struct {
	Seed     string           // World seed, folded into every noise lattice
	Width    int              // Canvas width in pixels
	Height   int              // Canvas height in pixels
	SeaLevel float64          // Sea level in [0, 1]
	Climate  ClimatePreset    // Climate preset (temperate, arid, cold)
	CellsX   int              // Grid resolution (columns)
	CellsY   int              // Grid resolution (rows)
	Quality  gridmesh.Quality // Mesh quality tier
}

// NewGenerationOptions returns options with default values.
func NewGenerationOptions(seed string) GenerationOptions {
	return GenerationOptions{
		Seed:     seed,
		Width:    1024,
		Height:   512,
		SeaLevel: 0.5,
		Climate:  ClimateTemperate,
		CellsX:   120,
		CellsY:   60,
		Quality:  gridmesh.QualityMedium,
	}
}

// Normalized returns a copy of the options with every field clamped into
// its valid range. All entry points normalize their input, so generation
// is total: bad values are corrected, never rejected.
func (o GenerationOptions) Normalized() GenerationOptions {
	o.Width = utils.Min(utils.Max(o.Width, MinWidth), MaxWidth)
	o.Height = utils.Min(utils.Max(o.Height, MinHeight), MaxHeight)
	o.CellsX = utils.Min(utils.Max(o.CellsX, MinCellsX), MaxCellsX)
	o.CellsY = utils.Min(utils.Max(o.CellsY, MinCellsY), MaxCellsY)
	if o.SeaLevel < 0 {
		o.SeaLevel = 0
	} else if o.SeaLevel > 1 {
		o.SeaLevel = 1
	}
	switch o.Climate {
	case ClimateTemperate, ClimateArid, ClimateCold:
	default:
		o.Climate = ClimateTemperate
	}
	switch o.Quality {
	case gridmesh.QualityLow, gridmesh.QualityMedium, gridmesh.QualityHigh:
	default:
		o.Quality = gridmesh.QualityMedium
	}
	return o
}

// moistureShift returns the climate preset offset for the moisture field.
func (c ClimatePreset) moistureShift() float64 {
	switch c {
	case ClimateArid:
		return -0.2
	case ClimateCold:
		return -0.06
	}
	return 0
}

// temperatureShift returns the climate preset offset for the temperature field.
func (c ClimatePreset) temperatureShift() float64 {
	switch c {
	case ClimateArid:
		return 0.08
	case ClimateCold:
		return -0.16
	}
	return 0
}
