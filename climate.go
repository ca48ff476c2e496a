package genmapgrid

import (
	"math"

	"github.com/Flokey82/genmapgrid/noise"
	"github.com/Flokey82/genmapgrid/various"
)

// Moisture / temperature weights. Latitude runs from the poles (top and
// bottom rows) to the equator at the vertical center of the grid.
const (
	moistureBands    = 3.0 // sine banding across latitude
	pocketThreshold  = 0.32
	pocketStrength   = 0.12
	heatAltitudeLoss = 0.6 // temperature penalty per unit of altitude above sea
)

// assignClimate fills the moisture and temperature grids. Both depend on
// the final height grid, so this runs after all height post-processing
// (and after erosion on the simulation path).
func (l *TerrainLayers) assignClimate(o GenerationOptions) {
	seed := o.Seed
	shiftM := o.Climate.moistureShift()
	shiftT := o.Climate.temperatureShift()

	various.KickOffChunkWorkers(l.CellsY, func(startY, endY int) {
		for y := startY; y < endY; y++ {
			v := (float64(y) + 0.5) / float64(l.CellsY)
			lat := 1 - math.Abs(v-0.5)*2 // 1 at the equator, 0 at the poles
			for x := 0; x < l.CellsX; x++ {
				u := (float64(x) + 0.5) / float64(l.CellsX)
				h := l.Height[y][x]

				// Moisture: humidity fields, latitude, inverse altitude
				// and a banding term.
				humA := noise.FBM2D(seed, u, v, 2.4, 4, 2.0, 0.5, saltHumidityA)
				humB := noise.FBM2D(seed, u, v, 5.2, 3, 2.0, 0.5, saltHumidityB)
				band := 0.5 + 0.5*math.Sin(v*math.Pi*moistureBands)
				m := 0.34*humA + 0.2*humB + 0.14*lat + 0.16*(1-h) + 0.08*band

				// Dry and wet pockets break up the large-scale trends.
				if p := noise.FBM2D(seed, u, v, 3.1, 3, 2.0, 0.5, saltDryPocket); p < pocketThreshold {
					m -= pocketStrength * (pocketThreshold - p) / pocketThreshold
				}
				if p := noise.FBM2D(seed, u, v, 2.7, 3, 2.0, 0.5, saltWetPocket); p > 1-pocketThreshold {
					m += pocketStrength * (p - (1 - pocketThreshold)) / pocketThreshold
				}
				l.Moisture[y][x] = various.Clamp01(m + shiftM)

				// Temperature: latitude dominates, heat noise varies it,
				// altitude cools it down.
				heat := noise.FBM2D(seed, u, v, 2.9, 4, 2.0, 0.5, saltHeat)
				t := 0.58*lat + 0.2*heat + 0.12 - heatAltitudeLoss*math.Max(0, h-l.SeaLevel)
				l.Temperature[y][x] = various.Clamp01(t + shiftT)
			}
		}
	})
}
