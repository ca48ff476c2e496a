package main

import (
	"bytes"
	"flag"
	"image"
	"image/png"
	"log"
	"net/http"
	"strconv"

	"github.com/Flokey82/genmapgrid"
	"github.com/Flokey82/genmapgrid/gridmesh"
	"github.com/gorilla/mux"
)

var dispatcher *genmapgrid.Dispatcher
var options genmapgrid.GenerationOptions

var (
	seed     string  = "world-seed-001"
	width    int     = 1024
	height   int     = 512
	seaLevel float64 = 0.5
	climate  string  = string(genmapgrid.ClimateTemperate)
	cellsX   int     = 120
	cellsY   int     = 60
	addr     string  = ":3333"
)

func init() {
	flag.StringVar(&seed, "seed", seed, "the world seed")
	flag.IntVar(&width, "width", width, "viewport width in pixels")
	flag.IntVar(&height, "height", height, "viewport height in pixels")
	flag.Float64Var(&seaLevel, "sea_level", seaLevel, "sea level (0.0-1.0)")
	flag.StringVar(&climate, "climate", climate, "climate preset (temperate, arid, cold)")
	flag.IntVar(&cellsX, "cells_x", cellsX, "grid cells along x")
	flag.IntVar(&cellsY, "cells_y", cellsY, "grid cells along y")
	flag.StringVar(&addr, "addr", addr, "listen address")
}

func main() {
	flag.Parse()

	// Initialize the options.
	o := genmapgrid.NewGenerationOptions(seed)
	o.Width = width
	o.Height = height
	o.SeaLevel = seaLevel
	o.Climate = genmapgrid.ClimatePreset(climate)
	o.CellsX = cellsX
	o.CellsY = cellsY
	options = o.Normalized()

	dispatcher = genmapgrid.NewDispatcher(genmapgrid.NewDispatcherConfig())
	defer dispatcher.Close()

	// Start the server.
	router := mux.NewRouter()
	router.HandleFunc("/map.png", mapHandler)
	router.HandleFunc("/mesh.png", meshHandler)
	router.HandleFunc("/cells.geojson", cellsHandler)
	router.HandleFunc("/cells/{x1}/{y1}/{x2}/{y2}", cellsInRectHandler)
	router.HandleFunc("/boundaries.geojson", boundariesHandler)
	router.HandleFunc("/rivers.geojson", riversHandler)
	log.Fatal(http.ListenAndServe(addr, router))
}

// getLayers fetches the terrain layers through the dispatcher. The
// 'erosion' url parameter selects the simulation fidelity.
func getLayers(req *http.Request) genmapgrid.LayersResponse {
	fidelity := genmapgrid.FidelityDisplay
	if req.URL.Query().Get("erosion") == "true" {
		fidelity = genmapgrid.FidelitySimulation
	}
	_, out := dispatcher.RequestLayers(options, fidelity)
	return <-out
}

// getMesh fetches the render mesh for the layers. The 'q' url parameter
// selects the quality tier.
func getMesh(req *http.Request, lr genmapgrid.LayersResponse) *gridmesh.Mesh {
	quality := gridmesh.Quality(req.URL.Query().Get("q"))
	switch quality {
	case gridmesh.QualityLow, gridmesh.QualityMedium, gridmesh.QualityHigh:
	default:
		quality = options.Quality
	}
	_, out := dispatcher.RequestMesh(genmapgrid.MeshInput{
		Layers:         lr.Layers,
		LayersKey:      lr.CacheKey,
		Seed:           options.Seed,
		ViewportWidth:  float64(options.Width),
		ViewportHeight: float64(options.Height),
		SeaLevel:       options.SeaLevel,
		Quality:        quality,
	})
	resp := <-out
	return resp.Mesh
}

func mapHandler(res http.ResponseWriter, req *http.Request) {
	// Get the url parameter 'd'.
	d := req.URL.Query().Get("d")
	if d == "" {
		d = "0"
	}
	displayMode, err := strconv.Atoi(d)
	if err != nil {
		panic(err)
	}

	lr := getLayers(req)
	img := genmapgrid.RenderImage(lr.Layers, options.Width, options.Height, genmapgrid.RenderMode(displayMode))
	writeImage(res, &img)
}

func meshHandler(res http.ResponseWriter, req *http.Request) {
	lr := getLayers(req)
	img := genmapgrid.RenderMesh(lr.Layers, getMesh(req, lr), options.Width, options.Height)
	writeImage(res, &img)
}

func cellsHandler(res http.ResponseWriter, req *http.Request) {
	lr := getLayers(req)
	data, err := genmapgrid.ExportCellsGeoJSON(lr.Layers, getMesh(req, lr), float64(options.Width), float64(options.Height))
	if err != nil {
		panic(err)
	}
	writeJSON(res, data)
}

func cellsInRectHandler(res http.ResponseWriter, req *http.Request) {
	x1, y1, x2, y2, err := parseRect(req)
	if err != nil {
		panic(err)
	}
	lr := getLayers(req)
	data, err := genmapgrid.ExportCellsInRectGeoJSON(lr.Layers, getMesh(req, lr), x1, y1, x2, y2, float64(options.Width), float64(options.Height))
	if err != nil {
		panic(err)
	}
	writeJSON(res, data)
}

func boundariesHandler(res http.ResponseWriter, req *http.Request) {
	lr := getLayers(req)
	data, err := genmapgrid.ExportBoundariesGeoJSON(getMesh(req, lr))
	if err != nil {
		panic(err)
	}
	writeJSON(res, data)
}

func riversHandler(res http.ResponseWriter, req *http.Request) {
	lr := getLayers(req)
	data, err := genmapgrid.ExportRiversGeoJSON(lr.Layers, float64(options.Width), float64(options.Height))
	if err != nil {
		panic(err)
	}
	writeJSON(res, data)
}

func parseRect(req *http.Request) (x1, y1, x2, y2 float64, err error) {
	vars := mux.Vars(req)
	x1, err = strconv.ParseFloat(vars["x1"], 64)
	if err != nil {
		return
	}
	y1, err = strconv.ParseFloat(vars["y1"], 64)
	if err != nil {
		return
	}
	x2, err = strconv.ParseFloat(vars["x2"], 64)
	if err != nil {
		return
	}
	y2, err = strconv.ParseFloat(vars["y2"], 64)
	if err != nil {
		return
	}
	return
}

// writeImage writes the image to the response writer.
func writeImage(w http.ResponseWriter, img *image.Image) {
	buffer := new(bytes.Buffer)
	if err := png.Encode(buffer, *img); err != nil {
		log.Println("unable to encode image.")
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(buffer.Bytes())))
	if _, err := w.Write(buffer.Bytes()); err != nil {
		log.Println("unable to write image.")
	}
}

func writeJSON(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}
