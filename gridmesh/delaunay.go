package gridmesh

import "math"

// triangle is the working state of the Bowyer-Watson insertion: corner
// indices plus the precomputed circumcircle.
type triangle struct {
	a, b, c int
	cx, cy  float64
	r2      float64
}

// circumcircle computes center and squared radius of the circle through
// the three points. It reports false for near-collinear triples, whose
// determinant magnitude falls below the configured epsilon; those are
// silently skipped as policy.
func circumcircle(ax, ay, bx, by, cx, cy, eps float64) (ux, uy, r2 float64, ok bool) {
	d := 2 * (ax*(by-cy) + bx*(cy-ay) + cx*(ay-by))
	if math.Abs(d) < eps {
		return 0, 0, 0, false
	}
	a2 := ax*ax + ay*ay
	b2 := bx*bx + by*by
	c2 := cx*cx + cy*cy
	ux = (a2*(by-cy) + b2*(cy-ay) + c2*(ay-by)) / d
	uy = (a2*(cx-bx) + b2*(ax-cx) + c2*(bx-ax)) / d
	dx := ax - ux
	dy := ay - uy
	return ux, uy, dx*dx + dy*dy, true
}

// triangulate runs incremental Bowyer-Watson over the sampled points:
// one super-triangle encloses everything with a large margin, points are
// inserted one at a time by removing every triangle whose circumcircle
// contains the point and reconnecting the cavity boundary to it. Faces
// that reference a super-triangle corner are discarded at the end.
func triangulate(points []Point, cfg GeomConfig) []Face {
	n := len(points)
	if n < 3 {
		return nil
	}

	// Working coordinates: the real points plus 3 super-triangle corners.
	coords := make([][2]float64, n, n+3)
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i, p := range points {
		coords[i] = [2]float64{p.X, p.Y}
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	span := math.Max(maxX-minX, maxY-minY) + 1
	midX := (minX + maxX) / 2
	midY := (minY + maxY) / 2
	coords = append(coords,
		[2]float64{midX - 32*span, midY - 16*span},
		[2]float64{midX + 32*span, midY - 16*span},
		[2]float64{midX, midY + 32*span},
	)

	newTriangle := func(a, b, c int) (triangle, bool) {
		ux, uy, r2, ok := circumcircle(
			coords[a][0], coords[a][1],
			coords[b][0], coords[b][1],
			coords[c][0], coords[c][1],
			cfg.CollinearEps,
		)
		if !ok {
			return triangle{}, false
		}
		return triangle{a: a, b: b, c: c, cx: ux, cy: uy, r2: r2}, true
	}

	super, _ := newTriangle(n, n+1, n+2)
	tris := []triangle{super}

	edgeCount := make(map[[2]int]int)
	var edgeOrder [][2]int
	for i := 0; i < n; i++ {
		px, py := coords[i][0], coords[i][1]

		// Find the cavity: every triangle whose circumcircle contains
		// the new point.
		var cavity []triangle
		keep := tris[:0]
		for _, t := range tris {
			dx := px - t.cx
			dy := py - t.cy
			if dx*dx+dy*dy < t.r2 {
				cavity = append(cavity, t)
			} else {
				keep = append(keep, t)
			}
		}
		tris = keep

		// Boundary edges are those that belonged to exactly one cavity
		// triangle. Insertion order is kept so the face list comes out
		// deterministic.
		for k := range edgeCount {
			delete(edgeCount, k)
		}
		edgeOrder = edgeOrder[:0]
		addEdge := func(a, b int) {
			if a > b {
				a, b = b, a
			}
			e := [2]int{a, b}
			if edgeCount[e] == 0 {
				edgeOrder = append(edgeOrder, e)
			}
			edgeCount[e]++
		}
		for _, t := range cavity {
			addEdge(t.a, t.b)
			addEdge(t.b, t.c)
			addEdge(t.c, t.a)
		}

		// Reconnect every boundary edge to the new point.
		for _, e := range edgeOrder {
			if edgeCount[e] != 1 {
				continue
			}
			if nt, ok := newTriangle(e[0], e[1], i); ok {
				tris = append(tris, nt)
			}
		}
	}

	// Discard everything still touching the super-triangle corners.
	var faces []Face
	for _, t := range tris {
		if t.a >= n || t.b >= n || t.c >= n {
			continue
		}
		faces = append(faces, Face{A: t.a, B: t.b, C: t.c})
	}
	return faces
}
