package gridmesh

import (
	"math"
	"reflect"
	"testing"
)

func TestSamplePointsDeterministic(t *testing.T) {
	src := newTestSource()
	p := QualityLow.params()
	a := samplePoints(src, "sampler-seed", 720, 360, src.sea, p)
	b := samplePoints(src, "sampler-seed", 720, 360, src.sea, p)
	if !reflect.DeepEqual(a, b) {
		t.Error("samplePoints should be deterministic for identical inputs")
	}
}

func TestSamplePointsSeparation(t *testing.T) {
	src := newTestSource()
	p := QualityLow.params()
	points := samplePoints(src, "separation-seed", 720, 360, src.sea, p)

	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			limit := math.Min(points[i].Radius, points[j].Radius) * separationScale
			dx := points[i].X - points[j].X
			dy := points[i].Y - points[j].Y
			if dx*dx+dy*dy < limit*limit {
				t.Fatalf("points %d and %d are %.3f apart, separation limit %.3f",
					i, j, math.Sqrt(dx*dx+dy*dy), limit)
			}
		}
	}
}

func TestSamplePointsRadiiWithinTier(t *testing.T) {
	src := newTestSource()
	p := QualityMedium.params()
	points := samplePoints(src, "radius-seed", 720, 360, src.sea, p)

	for i, pt := range points {
		if pt.Radius < p.rMin || pt.Radius > p.rMax {
			t.Fatalf("point %d has radius %f, tier range is [%f, %f]", i, pt.Radius, p.rMin, p.rMax)
		}
		if pt.X < 0 || pt.X > 720 || pt.Y < 0 || pt.Y > 360 {
			t.Fatalf("point %d at (%f, %f) is outside the canvas", i, pt.X, pt.Y)
		}
	}
}

func TestSamplePointsIncludeCorners(t *testing.T) {
	src := newTestSource()
	points := samplePoints(src, "corner-seed", 720, 360, src.sea, QualityLow.params())

	corners := [][2]float64{{0, 0}, {720, 0}, {0, 360}, {720, 360}}
	for _, c := range corners {
		found := false
		for _, pt := range points {
			if pt.X == c[0] && pt.Y == c[1] {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("corner (%v, %v) missing from the sample", c[0], c[1])
		}
	}
}

func TestDensityHigherAtCoast(t *testing.T) {
	src := newTestSource()
	f := newDensityField(src, true)

	// The island coastline crosses the horizontal midline; open sea near
	// the canvas edge is featureless.
	var coastMax float64
	for x := 0; x < src.cellsX; x++ {
		land := src.LandAt(x, src.cellsY/2)
		next := src.LandAt(x+1, src.cellsY/2)
		if x+1 < src.cellsX && land != next {
			u := (float64(x) + 0.5) / float64(src.cellsX)
			if d := f.at(u, 0.5); d > coastMax {
				coastMax = d
			}
		}
	}
	openSea := f.at(0.02, 0.02)
	if coastMax <= openSea {
		t.Errorf("coast density %f should exceed open sea density %f", coastMax, openSea)
	}
}

func TestSampleRadiusTracksDensity(t *testing.T) {
	src := newTestSource()
	points := samplePoints(src, "density-seed", 720, 360, src.sea, QualityMedium.params())
	f := newDensityField(src, true)

	// Points in featureless regions carry the maximum radius, points on
	// the coastline the minimum.
	p := QualityMedium.params()
	for i, pt := range points {
		d := f.at(pt.X/720, pt.Y/360)
		want := p.rMin + (1-d)*(p.rMax-p.rMin)
		if math.Abs(pt.Radius-want) > 1e-9 {
			t.Fatalf("point %d radius %f does not match density %f (want %f)", i, pt.Radius, d, want)
		}
	}
}
