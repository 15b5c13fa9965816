package geom

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want float64
	}{
		{"same point", Point{1, 1}, Point{1, 1}, 0},
		{"unit x", Point{0, 0}, Point{1, 0}, 1},
		{"3-4-5", Point{0, 0}, Point{3, 4}, 5},
		{"negative quadrant", Point{-1, -1}, Point{-4, -5}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Distance(tt.b); math.Abs(got-tt.want) > Eps {
				t.Errorf("distance = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestExtend(t *testing.T) {
	got := Extend(Point{0, 0}, Point{1, 0}, 2)
	if math.Abs(got.X-3) > Eps || math.Abs(got.Y) > Eps {
		t.Errorf("extend along x = %v, want (3, 0)", got)
	}

	// Negative distance walks back toward the first endpoint.
	got = Extend(Point{0, 0}, Point{0, 4}, -1)
	if math.Abs(got.X) > Eps || math.Abs(got.Y-3) > Eps {
		t.Errorf("extend backwards = %v, want (0, 3)", got)
	}
}

func TestPolar(t *testing.T) {
	got := Polar(Point{1, 1}, 2, math.Pi/2)
	if math.Abs(got.X-1) > Eps || math.Abs(got.Y-3) > Eps {
		t.Errorf("polar = %v, want (1, 3)", got)
	}
}

func TestCircleCircleTwoIntersections(t *testing.T) {
	pts, n := CircleCircle(Point{0, 0}, 1, Point{1, 0}, 1, Eps)
	if n != 2 {
		t.Fatalf("expected 2 intersections, got %d", n)
	}

	want := math.Sqrt(3) / 2
	for _, p := range pts {
		if math.Abs(p.X-0.5) > 1e-12 {
			t.Errorf("intersection x = %f, want 0.5", p.X)
		}
		if math.Abs(math.Abs(p.Y)-want) > 1e-12 {
			t.Errorf("intersection |y| = %f, want %f", math.Abs(p.Y), want)
		}
	}
	if pts[0].Y*pts[1].Y >= 0 {
		t.Error("intersections should be on opposite sides of the center line")
	}
}

func TestCircleCircleTangent(t *testing.T) {
	pts, n := CircleCircle(Point{0, 0}, 1, Point{3, 0}, 2, Eps)
	if n != 1 {
		t.Fatalf("expected tangency, got %d intersections", n)
	}
	if math.Abs(pts[0].X-1) > 1e-9 || math.Abs(pts[0].Y) > 1e-9 {
		t.Errorf("tangent point = %v, want (1, 0)", pts[0])
	}
}

func TestCircleCircleNone(t *testing.T) {
	tests := []struct {
		name   string
		c1     Point
		r1     float64
		c2     Point
		r2     float64
	}{
		{"too far apart", Point{0, 0}, 1, Point{5, 0}, 1},
		{"one inside the other", Point{0, 0}, 5, Point{1, 0}, 1},
		{"coincident centers", Point{2, 2}, 1, Point{2, 2}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, n := CircleCircle(tt.c1, tt.r1, tt.c2, tt.r2, Eps); n != 0 {
				t.Errorf("expected no intersections, got %d", n)
			}
		})
	}
}

func TestCircleCircleSatisfiesRadii(t *testing.T) {
	c1, c2 := Point{10, 10}, Point{13.5, 11.25}
	r1, r2 := 3.0, 2.5

	pts, n := CircleCircle(c1, r1, c2, r2, Eps)
	if n != 2 {
		t.Fatalf("expected 2 intersections, got %d", n)
	}
	for i, p := range pts {
		if math.Abs(p.Distance(c1)-r1) > 1e-9 {
			t.Errorf("pts[%d] distance to c1 = %f, want %f", i, p.Distance(c1), r1)
		}
		if math.Abs(p.Distance(c2)-r2) > 1e-9 {
			t.Errorf("pts[%d] distance to c2 = %f, want %f", i, p.Distance(c2), r2)
		}
	}
}

func TestLawOfCosines(t *testing.T) {
	if got := LawOfCosines(3, 4, math.Pi/2); math.Abs(got-5) > 1e-12 {
		t.Errorf("law of cosines = %f, want 5", got)
	}
}
