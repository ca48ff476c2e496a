package gridmesh

import (
	"math"
	"sort"

	"github.com/Flokey82/genmapgrid/various"
)

// signedArea returns the signed area of the polygon (shoelace formula).
func signedArea(verts [][2]float64) float64 {
	var area float64
	for i, v := range verts {
		w := verts[(i+1)%len(verts)]
		area += various.Cross2(v, w)
	}
	return area / 2
}

// buildVoronoi derives the dual Voronoi cells from the triangulation:
// per face one clamped circumcenter, per site the angular sort of its
// incident circumcenters. Sliver cells at the hull boundary are
// filtered by the configured thresholds. On the simulation path it also
// collects the shared boundary segments between adjacent cells.
func buildVoronoi(points []Point, faces []Face, width, height float64, cfg GeomConfig, withBoundaries bool) ([]Cell, []Boundary) {
	centers := make([][2]float64, len(faces))
	siteFaces := make([][]int, len(points))
	for fi, f := range faces {
		a, b, c := points[f.A], points[f.B], points[f.C]
		ux, uy, _, ok := circumcircle(a.X, a.Y, b.X, b.Y, c.X, c.Y, cfg.CollinearEps)
		if !ok {
			// The triangulator already filtered degenerate triples;
			// anything slipping through collapses to the centroid.
			ux = (a.X + b.X + c.X) / 3
			uy = (a.Y + b.Y + c.Y) / 3
		}
		centers[fi] = [2]float64{
			math.Max(0, math.Min(width, ux)),
			math.Max(0, math.Min(height, uy)),
		}
		siteFaces[f.A] = append(siteFaces[f.A], fi)
		siteFaces[f.B] = append(siteFaces[f.B], fi)
		siteFaces[f.C] = append(siteFaces[f.C], fi)
	}

	var cells []Cell
	for site, incident := range siteFaces {
		if len(incident) < 3 {
			continue
		}
		sx, sy := points[site].X, points[site].Y

		verts := make([][2]float64, 0, len(incident))
		for _, fi := range incident {
			verts = append(verts, centers[fi])
		}
		sort.Slice(verts, func(i, j int) bool {
			ai := math.Atan2(verts[i][1]-sy, verts[i][0]-sx)
			aj := math.Atan2(verts[j][1]-sy, verts[j][0]-sx)
			return ai < aj
		})

		// Drop near-duplicate consecutive vertices (including the wrap
		// from last back to first).
		deduped := verts[:0]
		for _, v := range verts {
			if len(deduped) > 0 && various.Dist2(deduped[len(deduped)-1], v) < cfg.VertexMergeDist {
				continue
			}
			deduped = append(deduped, v)
		}
		for len(deduped) >= 2 && various.Dist2(deduped[len(deduped)-1], deduped[0]) < cfg.VertexMergeDist {
			deduped = deduped[:len(deduped)-1]
		}
		if len(deduped) < 3 {
			continue
		}
		if math.Abs(signedArea(deduped)) < cfg.MinCellArea {
			continue // sliver at the hull boundary
		}

		poly := make([][2]float64, len(deduped))
		copy(poly, deduped)
		cells = append(cells, Cell{Site: site, Vertices: poly})
	}

	var boundaries []Boundary
	if withBoundaries {
		boundaries = buildBoundaries(faces, centers)
	}
	return cells, boundaries
}

// buildBoundaries groups faces by shared undirected point-index edge; an
// edge shared by exactly two faces yields one boundary segment between
// their circumcenters.
func buildBoundaries(faces []Face, centers [][2]float64) []Boundary {
	edgeFaces := make(map[[2]int][]int)
	addEdge := func(a, b, fi int) {
		if a > b {
			a, b = b, a
		}
		edgeFaces[[2]int{a, b}] = append(edgeFaces[[2]int{a, b}], fi)
	}
	for fi, f := range faces {
		addEdge(f.A, f.B, fi)
		addEdge(f.B, f.C, fi)
		addEdge(f.C, f.A, fi)
	}

	var boundaries []Boundary
	for e, fs := range edgeFaces {
		if len(fs) != 2 {
			continue // hull edge
		}
		boundaries = append(boundaries, Boundary{
			SiteA: e[0],
			SiteB: e[1],
			P1:    centers[fs[0]],
			P2:    centers[fs[1]],
		})
	}

	// Map iteration order is random; sort for a deterministic result.
	sort.Slice(boundaries, func(i, j int) bool {
		if boundaries[i].SiteA != boundaries[j].SiteA {
			return boundaries[i].SiteA < boundaries[j].SiteA
		}
		return boundaries[i].SiteB < boundaries[j].SiteB
	})
	return boundaries
}
