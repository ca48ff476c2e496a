package gridmesh

import (
	"math/rand"
	"reflect"
	"sort"
	"testing"

	"github.com/fogleman/delaunay"
)

// randomPoints returns n points in general position (uniform random
// float64 coordinates never land cocircular).
func randomPoints(n int, width, height float64, seed int64) []Point {
	rnd := rand.New(rand.NewSource(seed))
	points := make([]Point, n)
	for i := range points {
		points[i] = Point{X: rnd.Float64() * width, Y: rnd.Float64() * height, Radius: 1}
	}
	return points
}

func TestTriangulateTooFewPoints(t *testing.T) {
	if faces := triangulate(nil, DefaultGeomConfig()); faces != nil {
		t.Errorf("triangulate(nil) = %v, want nil", faces)
	}
	two := []Point{{X: 0, Y: 0}, {X: 1, Y: 1}}
	if faces := triangulate(two, DefaultGeomConfig()); faces != nil {
		t.Errorf("triangulate with 2 points = %v, want nil", faces)
	}
}

func TestTriangulateFaceIndicesValid(t *testing.T) {
	points := randomPoints(300, 500, 400, 7)
	faces := triangulate(points, DefaultGeomConfig())
	if len(faces) == 0 {
		t.Fatal("no faces produced")
	}
	for fi, f := range faces {
		for _, idx := range []int{f.A, f.B, f.C} {
			if idx < 0 || idx >= len(points) {
				t.Fatalf("face %d references point %d, have %d points", fi, idx, len(points))
			}
		}
		if f.A == f.B || f.B == f.C || f.A == f.C {
			t.Fatalf("face %d is degenerate: %v", fi, f)
		}
	}
}

// The Delaunay condition: no sampled point may lie strictly inside the
// circumcircle of any face.
func TestTriangulateEmptyCircumcircles(t *testing.T) {
	points := randomPoints(250, 500, 400, 11)
	cfg := DefaultGeomConfig()
	faces := triangulate(points, cfg)

	const slack = 1e-7
	for fi, f := range faces {
		a, b, c := points[f.A], points[f.B], points[f.C]
		ux, uy, r2, ok := circumcircle(a.X, a.Y, b.X, b.Y, c.X, c.Y, cfg.CollinearEps)
		if !ok {
			t.Fatalf("face %d is near-collinear, should have been filtered", fi)
		}
		for pi, p := range points {
			if pi == f.A || pi == f.B || pi == f.C {
				continue
			}
			dx := p.X - ux
			dy := p.Y - uy
			if dx*dx+dy*dy < r2-slack {
				t.Fatalf("point %d lies inside the circumcircle of face %d", pi, fi)
			}
		}
	}
}

func TestTriangulateDeterministic(t *testing.T) {
	points := randomPoints(200, 500, 400, 13)
	a := triangulate(points, DefaultGeomConfig())
	b := triangulate(points, DefaultGeomConfig())
	if !reflect.DeepEqual(a, b) {
		t.Error("triangulate should produce identical face lists for identical input")
	}
}

// edgeSet collects the undirected point-index edges of a face list.
func edgeSet(faces []Face) map[[2]int]bool {
	set := make(map[[2]int]bool)
	add := func(a, b int) {
		if a > b {
			a, b = b, a
		}
		set[[2]int{a, b}] = true
	}
	for _, f := range faces {
		add(f.A, f.B)
		add(f.B, f.C)
		add(f.C, f.A)
	}
	return set
}

// Cross-check the incremental triangulator against an independent
// sweep-based implementation: for points in general position the
// Delaunay triangulation is unique, so the edge sets must match.
func TestTriangulateMatchesReference(t *testing.T) {
	points := randomPoints(400, 640, 480, 17)

	ours := edgeSet(triangulate(points, DefaultGeomConfig()))

	refPoints := make([]delaunay.Point, len(points))
	for i, p := range points {
		refPoints[i] = delaunay.Point{X: p.X, Y: p.Y}
	}
	ref, err := delaunay.Triangulate(refPoints)
	if err != nil {
		t.Fatal(err)
	}
	theirs := make(map[[2]int]bool)
	for i := 0; i < len(ref.Triangles); i += 3 {
		fs := edgeSet([]Face{{A: ref.Triangles[i], B: ref.Triangles[i+1], C: ref.Triangles[i+2]}})
		for e := range fs {
			theirs[e] = true
		}
	}

	var missing, extra [][2]int
	for e := range theirs {
		if !ours[e] {
			missing = append(missing, e)
		}
	}
	for e := range ours {
		if !theirs[e] {
			extra = append(extra, e)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i][0] < missing[j][0] })
	sort.Slice(extra, func(i, j int) bool { return extra[i][0] < extra[j][0] })
	if len(missing) > 0 || len(extra) > 0 {
		t.Errorf("edge sets differ: %d missing (%v...), %d extra (%v...)",
			len(missing), firstOf(missing), len(extra), firstOf(extra))
	}
}

func firstOf(edges [][2]int) [2]int {
	if len(edges) == 0 {
		return [2]int{-1, -1}
	}
	return edges[0]
}
