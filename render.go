package genmapgrid

import (
	"image"
	"image/color"
	"log"
	"math"

	"github.com/Flokey82/genbiome"
	"github.com/Flokey82/genmapgrid/gridmesh"
	"github.com/Flokey82/genmapgrid/noise"
	"github.com/Flokey82/genmapgrid/various"
	"github.com/Flokey82/go_gens/gameconstants"
	"github.com/Flokey82/go_gens/vectors"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/mazznoer/colorgrad"
)

// RenderMode selects how the layers are colored.
type RenderMode int

const (
	RenderBiomes    RenderMode = iota // biome palette
	RenderElevation                   // blue-to-red elevation gradient
	RenderWhittaker                   // Whittaker biome lookup from temperature/moisture
)

// RenderImage paints the terrain layers onto a width x height raster.
// The grid is point-sampled per pixel and shaded with a simple
// directional hillshade; water gets a subtle simplex texture.
func RenderImage(l *TerrainLayers, width, height int, mode RenderMode) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	lightDir := vectors.Vec3{X: -1.0, Y: 1.0, Z: 1.0}.Normalize()
	waterTex := noise.NewSimplex(3, 0.58, "watertex")

	var colorFunc func(x, y int, shade float64) color.Color
	switch mode {
	case RenderElevation:
		// Blue to red elevation gradient.
		colorGrad := colorgrad.NewGradient()
		colorGrad.Colors(
			color.RGBA{0, 0, 255, 255},
			color.RGBA{0, 255, 255, 255},
			color.RGBA{0, 255, 0, 255},
			color.RGBA{255, 255, 0, 255},
			color.RGBA{255, 0, 0, 255},
		)
		cb, err := colorGrad.Build()
		if err != nil {
			log.Fatal(err)
		}
		colorFunc = func(x, y int, shade float64) color.Color {
			return shadeColor(cb.At(l.Height[y][x]), shade)
		}
	case RenderWhittaker:
		colorFunc = func(x, y int, shade float64) color.Color {
			return l.whittakerColor(x, y, shade)
		}
	default:
		colorFunc = func(x, y int, shade float64) color.Color {
			return shadeColor(l.Biome[y][x].Color(), shade)
		}
	}

	riverCol := color.NRGBA{R: 49, G: 112, B: 189, A: 255}
	for py := 0; py < height; py++ {
		y := py * l.CellsY / height
		v := float64(py) / float64(height)
		for px := 0; px < width; px++ {
			x := px * l.CellsX / width
			u := float64(px) / float64(width)

			var col color.Color
			switch {
			case l.River[y][x] && l.IsLand[y][x] && mode != RenderElevation:
				col = riverCol
			case !l.IsLand[y][x] && mode != RenderElevation:
				// Ripple the water with a touch of simplex noise.
				depth := l.Height[y][x] / math.Max(l.SeaLevel, 0.001)
				col = genBlue(various.Clamp01(depth + 0.08*(waterTex.Eval2(u*8, v*8)-0.5)))
			default:
				col = colorFunc(x, y, l.hillshade(x, y, lightDir))
			}
			img.Set(px, py, col)
		}
	}
	return img
}

// RenderMesh draws the Voronoi cells (filled with the biome color of
// their site), the shared boundaries and the sites themselves.
func RenderMesh(l *TerrainLayers, m *gridmesh.Mesh, width, height int) image.Image {
	dest := image.NewRGBA(image.Rect(0, 0, width, height))
	gc := draw2dimg.NewGraphicContext(dest)
	gc.SetLineWidth(1)

	edgeCol := color.NRGBA{R: 30, G: 30, B: 30, A: 90}
	for _, c := range m.Cells {
		site := m.Points[c.Site]
		gc.SetFillColor(l.biomeColorAt(site.X, site.Y, float64(width), float64(height)))
		gc.SetStrokeColor(edgeCol)
		gc.BeginPath()
		gc.MoveTo(c.Vertices[0][0], c.Vertices[0][1])
		for _, v := range c.Vertices[1:] {
			gc.LineTo(v[0], v[1])
		}
		gc.Close()
		gc.FillStroke()
	}

	gc.SetStrokeColor(color.NRGBA{R: 200, G: 60, B: 40, A: 160})
	for _, b := range m.Boundaries {
		gc.BeginPath()
		gc.MoveTo(b.P1[0], b.P1[1])
		gc.LineTo(b.P2[0], b.P2[1])
		gc.Stroke()
	}
	return dest
}

// biomeColorAt maps a viewport position back to its grid cell's biome color.
func (l *TerrainLayers) biomeColorAt(x, y, width, height float64) color.NRGBA {
	cx := int(x / width * float64(l.CellsX))
	cy := int(y / height * float64(l.CellsY))
	if cx < 0 {
		cx = 0
	} else if cx >= l.CellsX {
		cx = l.CellsX - 1
	}
	if cy < 0 {
		cy = 0
	} else if cy >= l.CellsY {
		cy = l.CellsY - 1
	}
	return l.Biome[cy][cx].Color()
}

// hillshade returns a diffuse shading factor for the cell, using the
// height gradient as surface normal.
func (l *TerrainLayers) hillshade(x, y int, lightDir vectors.Vec3) float64 {
	clampX := func(v int) int {
		if v < 0 {
			return 0
		}
		if v >= l.CellsX {
			return l.CellsX - 1
		}
		return v
	}
	clampY := func(v int) int {
		if v < 0 {
			return 0
		}
		if v >= l.CellsY {
			return l.CellsY - 1
		}
		return v
	}
	hl := l.Height[y][clampX(x-1)]
	hr := l.Height[y][clampX(x+1)]
	hu := l.Height[clampY(y-1)][x]
	hd := l.Height[clampY(y+1)][x]

	normal := vectors.Vec3{X: (hl - hr) * 6, Y: (hu - hd) * 6, Z: 0.35}.Normalize()
	diffuse := math.Max(0, vectors.Dot3(normal, lightDir))
	return 0.55 + 0.45*diffuse
}

// whittakerColor converts the cell's normalized temperature and moisture
// into the units the Whittaker lookup expects.
func (l *TerrainLayers) whittakerColor(x, y int, shade float64) color.NRGBA {
	tempC := float64(genbiome.MinTemperatureC) +
		l.Temperature[y][x]*float64(genbiome.MaxTemperatureC-genbiome.MinTemperatureC)

	// Cool the lookup down with altitude, like the real lapse rate would.
	altMeters := gameconstants.EarthMaxElevation * math.Max(0, l.Height[y][x]-l.SeaLevel)
	tempC -= gameconstants.EarthElevationTemperatureFalloff * altMeters

	precip := l.Moisture[y][x] * float64(genbiome.MaxPrecipitationDM)
	return genbiome.GetWhittakerModBiomeColor(int(tempC), int(precip), shade)
}

// genBlue returns a blue color with the given intensity (0.0-1.0).
func genBlue(intensity float64) color.NRGBA {
	intensity = various.Clamp01(intensity)
	return color.NRGBA{
		R: uint8(intensity * 255),
		G: uint8(intensity * 255),
		B: 255,
		A: 255,
	}
}

// shadeColor multiplies the color's channels by the shading factor.
func shadeColor(col color.Color, shade float64) color.Color {
	cr, cg, cb, _ := col.RGBA()
	return color.NRGBA{
		R: uint8(shade * 255 * float64(cr) / 0xffff),
		G: uint8(shade * 255 * float64(cg) / 0xffff),
		B: uint8(shade * 255 * float64(cb) / 0xffff),
		A: 255,
	}
}
