package mech

import (
	"math"

	"github.com/juxley/linksim/internal/geom"
)

// Driver is an actuator that positions one joint as a pure function of
// the step parameter. PointAt must be total for finite inputs; the
// linkage owns the step parameter and calls PointAt with the step it is
// trying to commit.
type Driver interface {
	Name() string
	Target() *Joint
	Anchor() geom.Point
	PointAt(step float64) geom.Point
}

// Crank rotates its target joint around a fixed anchor at constant
// angular rate.
type Crank struct {
	name         string
	anchor       geom.Point
	target       *Joint
	radius       float64
	stepsPerTurn float64
	phase        float64
}

// NewCrank creates a crank with the given pivot and radius. stepsPerTurn
// is the number of steps per full rotation (360 when non-positive);
// phase is the starting angle in radians.
func NewCrank(name string, anchor geom.Point, target *Joint, radius, stepsPerTurn, phase float64) *Crank {
	if stepsPerTurn <= 0 {
		stepsPerTurn = 360
	}
	return &Crank{name: name, anchor: anchor, target: target, radius: radius, stepsPerTurn: stepsPerTurn, phase: phase}
}

func (c *Crank) Name() string       { return c.name }
func (c *Crank) Target() *Joint     { return c.target }
func (c *Crank) Anchor() geom.Point { return c.anchor }

func (c *Crank) PointAt(step float64) geom.Point {
	theta := c.phase + 2*math.Pi*step/c.stepsPerTurn
	return geom.Polar(c.anchor, c.radius, theta)
}

// Rocker swings its target joint back and forth between two angles
// around a fixed anchor, completing one full oscillation per period.
type Rocker struct {
	name       string
	anchor     geom.Point
	target     *Joint
	radius     float64
	start, end float64 // radians
	period     float64 // steps per full back-and-forth
}

func NewRocker(name string, anchor geom.Point, target *Joint, radius, startAngle, endAngle, period float64) *Rocker {
	if period <= 0 {
		period = 360
	}
	return &Rocker{name: name, anchor: anchor, target: target, radius: radius, start: startAngle, end: endAngle, period: period}
}

func (r *Rocker) Name() string       { return r.name }
func (r *Rocker) Target() *Joint     { return r.target }
func (r *Rocker) Anchor() geom.Point { return r.anchor }

func (r *Rocker) PointAt(step float64) geom.Point {
	theta := r.start + oscillate(step/r.period)*(r.end-r.start)
	return geom.Polar(r.anchor, r.radius, theta)
}

// Slider moves its target joint back and forth along the segment between
// two endpoints, returning to the first endpoint each period.
type Slider struct {
	name     string
	from, to geom.Point
	target   *Joint
	period   float64
}

func NewSlider(name string, from, to geom.Point, target *Joint, period float64) *Slider {
	if period <= 0 {
		period = 360
	}
	return &Slider{name: name, from: from, to: to, target: target, period: period}
}

func (s *Slider) Name() string       { return s.name }
func (s *Slider) Target() *Joint     { return s.target }
func (s *Slider) Anchor() geom.Point { return s.from }

func (s *Slider) PointAt(step float64) geom.Point {
	dist := oscillate(step/s.period) * s.from.Distance(s.to)
	return geom.Polar(s.from, dist, geom.Angle(s.from, s.to))
}

// oscillate maps a phase in periods to a triangle wave in [0, 1]:
// 0 -> 0, half a period -> 1, full period -> 0.
func oscillate(u float64) float64 {
	u = math.Mod(u, 1)
	if u < 0 {
		u += 1
	}
	if u < 0.5 {
		return 2 * u
	}
	return 2 * (1 - u)
}
