package genmapgrid

import (
	"encoding/json"

	"github.com/Flokey82/genmapgrid/gridmesh"
	geojson "github.com/paulmach/go.geojson"
)

// ExportCellsGeoJSON serializes every Voronoi cell of the mesh as a
// polygon feature carrying its site index and biome name.
func ExportCellsGeoJSON(l *TerrainLayers, m *gridmesh.Mesh, width, height float64) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, c := range m.Cells {
		fc.AddFeature(cellFeature(l, m, c, width, height))
	}
	return json.Marshal(fc)
}

// ExportCellsInRectGeoJSON serializes only the cells whose site falls
// into the given viewport rectangle. The lookup goes through the mesh's
// site quadtree.
func ExportCellsInRectGeoJSON(l *TerrainLayers, m *gridmesh.Mesh, minX, minY, maxX, maxY, width, height float64) ([]byte, error) {
	inRect := make(map[int]bool)
	for _, site := range m.SitesInRect(minX, minY, maxX, maxY) {
		inRect[site] = true
	}

	fc := geojson.NewFeatureCollection()
	for _, c := range m.Cells {
		if !inRect[c.Site] {
			continue
		}
		fc.AddFeature(cellFeature(l, m, c, width, height))
	}
	return json.Marshal(fc)
}

// ExportBoundariesGeoJSON serializes the mesh boundary segments as
// line string features tagged with the two adjacent sites.
func ExportBoundariesGeoJSON(m *gridmesh.Mesh) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, b := range m.Boundaries {
		f := geojson.NewLineStringFeature([][]float64{
			{b.P1[0], b.P1[1]},
			{b.P2[0], b.P2[1]},
		})
		f.SetProperty("site_a", b.SiteA)
		f.SetProperty("site_b", b.SiteB)
		fc.AddFeature(f)
	}
	return json.Marshal(fc)
}

// ExportRiversGeoJSON serializes the traced river paths as line string
// features in viewport coordinates.
func ExportRiversGeoJSON(l *TerrainLayers, width, height float64) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for i, path := range l.RiverPaths {
		coords := make([][]float64, 0, len(path))
		for _, cell := range path {
			coords = append(coords, []float64{
				(float64(cell[0]) + 0.5) / float64(l.CellsX) * width,
				(float64(cell[1]) + 0.5) / float64(l.CellsY) * height,
			})
		}
		if len(coords) < 2 {
			continue
		}
		f := geojson.NewLineStringFeature(coords)
		f.SetProperty("river", i)
		f.SetProperty("length", len(path))
		fc.AddFeature(f)
	}
	return json.Marshal(fc)
}

func cellFeature(l *TerrainLayers, m *gridmesh.Mesh, c gridmesh.Cell, width, height float64) *geojson.Feature {
	ring := make([][]float64, 0, len(c.Vertices)+1)
	for _, v := range c.Vertices {
		ring = append(ring, []float64{v[0], v[1]})
	}
	// Close the ring.
	ring = append(ring, []float64{c.Vertices[0][0], c.Vertices[0][1]})

	site := m.Points[c.Site]
	f := geojson.NewPolygonFeature([][][]float64{ring})
	f.SetProperty("site", c.Site)

	cx := int(site.X / width * float64(l.CellsX))
	cy := int(site.Y / height * float64(l.CellsY))
	if cx >= 0 && cx < l.CellsX && cy >= 0 && cy < l.CellsY {
		f.SetProperty("biome", l.Biome[cy][cx].String())
		f.SetProperty("land", l.IsLand[cy][cx])
	}
	return f
}
