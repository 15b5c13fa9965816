package geom

import "math"

// Eps is the default relative tolerance for geometric comparisons.
const Eps = 1e-9

// Point is a position in the plane.
type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point      { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point      { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(f float64) Point  { return Point{p.X * f, p.Y * f} }
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

func (p Point) IsValid() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Angle returns the slope of the line a->b as an angle in radians.
func Angle(a, b Point) float64 {
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}

// Extend returns the point on the line through a and b that lies dist
// beyond b. A negative dist walks back toward a.
func Extend(a, b Point, dist float64) Point {
	theta := Angle(a, b)
	return Point{b.X + dist*math.Cos(theta), b.Y + dist*math.Sin(theta)}
}

// Polar returns center offset by radius at the given angle.
func Polar(center Point, radius, theta float64) Point {
	return Point{center.X + radius*math.Cos(theta), center.Y + radius*math.Sin(theta)}
}

// LawOfCosines returns the third side of a triangle with sides a, b and
// opposite angle gamma in radians.
func LawOfCosines(a, b, gamma float64) float64 {
	return math.Sqrt(a*a + b*b - 2*a*b*math.Cos(gamma))
}

// CircleCircle computes the intersection points of the circles
// (c1, r1) and (c2, r2).
//
// The count return value is the number of real intersections: 2 for the
// generic case, 1 when the circles are tangent within tol, and 0 when
// they are too far apart or one contains the other. With count == 1 both
// returned points are the tangent point. Coincident centers yield 0.
func CircleCircle(c1 Point, r1 float64, c2 Point, r2 float64, tol float64) (pts [2]Point, count int) {
	d := c1.Distance(c2)
	if d < tol {
		return pts, 0
	}

	// Distance from c2 along the center line to the chord, then the
	// half-chord height perpendicular to it.
	b := (r2*r2 - r1*r1 + d*d) / (2 * d)
	h2 := r2*r2 - b*b
	if h2 < 0 {
		if h2 > -tol*(r1+r2+d) {
			h2 = 0 // tangent within tolerance
		} else {
			return pts, 0
		}
	}
	h := math.Sqrt(h2)

	foot := Point{
		X: c2.X + b*(c1.X-c2.X)/d,
		Y: c2.Y + b*(c1.Y-c2.Y)/d,
	}
	pts[0] = Point{foot.X + h*(c2.Y-c1.Y)/d, foot.Y - h*(c2.X-c1.X)/d}
	pts[1] = Point{foot.X - h*(c2.Y-c1.Y)/d, foot.Y + h*(c2.X-c1.X)/d}

	if h < tol {
		return pts, 1
	}
	return pts, 2
}
