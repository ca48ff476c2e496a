package main

import (
	"flag"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/Flokey82/genmapgrid"
	"github.com/Flokey82/genmapgrid/gridmesh"
)

var (
	seed     string  = "world-seed-001"
	width    int     = 1024
	height   int     = 512
	seaLevel float64 = 0.5
	climate  string  = string(genmapgrid.ClimateTemperate)
	cellsX   int     = 120
	cellsY   int     = 60
	quality  string  = string(gridmesh.QualityMedium)
	erosion  bool    = false
	outDir   string  = "out"
)

func init() {
	flag.StringVar(&seed, "seed", seed, "the world seed")
	flag.IntVar(&width, "width", width, "viewport width in pixels")
	flag.IntVar(&height, "height", height, "viewport height in pixels")
	flag.Float64Var(&seaLevel, "sea_level", seaLevel, "sea level (0.0-1.0)")
	flag.StringVar(&climate, "climate", climate, "climate preset (temperate, arid, cold)")
	flag.IntVar(&cellsX, "cells_x", cellsX, "grid cells along x")
	flag.IntVar(&cellsY, "cells_y", cellsY, "grid cells along y")
	flag.StringVar(&quality, "quality", quality, "mesh quality (low, medium, high)")
	flag.BoolVar(&erosion, "erosion", erosion, "run thermal erosion")
	flag.StringVar(&outDir, "out", outDir, "output directory")
}

func main() {
	flag.Parse()

	o := genmapgrid.NewGenerationOptions(seed)
	o.Width = width
	o.Height = height
	o.SeaLevel = seaLevel
	o.Climate = genmapgrid.ClimatePreset(climate)
	o.CellsX = cellsX
	o.CellsY = cellsY
	o.Quality = gridmesh.Quality(quality)
	o = o.Normalized()

	var layers *genmapgrid.TerrainLayers
	if erosion {
		layers = genmapgrid.GenerateWithErosion(o)
	} else {
		layers = genmapgrid.Generate(o)
	}

	mesh := genmapgrid.BuildMesh(layers, o.Seed, float64(o.Width), float64(o.Height), o.SeaLevel, o.Quality)

	if err := os.MkdirAll(outDir, 0755); err != nil {
		log.Fatal(err)
	}
	writePNG(filepath.Join(outDir, "biomes.png"),
		genmapgrid.RenderImage(layers, o.Width, o.Height, genmapgrid.RenderBiomes))
	writePNG(filepath.Join(outDir, "elevation.png"),
		genmapgrid.RenderImage(layers, o.Width, o.Height, genmapgrid.RenderElevation))
	writePNG(filepath.Join(outDir, "whittaker.png"),
		genmapgrid.RenderImage(layers, o.Width, o.Height, genmapgrid.RenderWhittaker))
	writePNG(filepath.Join(outDir, "mesh.png"),
		genmapgrid.RenderMesh(layers, mesh, o.Width, o.Height))

	writeGeoJSON(filepath.Join(outDir, "cells.geojson"), func() ([]byte, error) {
		return genmapgrid.ExportCellsGeoJSON(layers, mesh, float64(o.Width), float64(o.Height))
	})
	writeGeoJSON(filepath.Join(outDir, "boundaries.geojson"), func() ([]byte, error) {
		return genmapgrid.ExportBoundariesGeoJSON(mesh)
	})
	writeGeoJSON(filepath.Join(outDir, "rivers.geojson"), func() ([]byte, error) {
		return genmapgrid.ExportRiversGeoJSON(layers, float64(o.Width), float64(o.Height))
	})
	log.Println("wrote", outDir)
}

func writePNG(path string, img image.Image) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		log.Fatal(err)
	}
}

func writeGeoJSON(path string, export func() ([]byte, error)) {
	data, err := export()
	if err != nil {
		log.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Fatal(err)
	}
}
