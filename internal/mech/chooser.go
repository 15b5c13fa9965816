package mech

import "github.com/juxley/linksim/internal/geom"

// Chooser resolves the two-solution ambiguity of a circle-circle
// intersection. The closed set of named strategies keeps disambiguation
// auditable; CustomChooser is the escape hatch for anything else.
//
// The zero value is ClosestToPrev, which follows the branch nearest the
// joint's last committed position. That is the mechanically meaningful
// default for animating a mechanism smoothly.
type Chooser struct {
	kind chooserKind
	fn   func(a, b, prev geom.Point) geom.Point
}

type chooserKind int

const (
	chooseClosest chooserKind = iota
	chooseGreaterX
	chooseLesserX
	chooseGreaterY
	chooseLesserY
	chooseCustom
)

var (
	// ClosestToPrev picks the candidate nearest the previous position.
	ClosestToPrev = Chooser{kind: chooseClosest}
	// GreaterX picks the candidate with the greater x coordinate.
	GreaterX = Chooser{kind: chooseGreaterX}
	// LesserX picks the candidate with the lesser x coordinate.
	LesserX = Chooser{kind: chooseLesserX}
	// GreaterY picks the candidate with the greater y coordinate.
	GreaterY = Chooser{kind: chooseGreaterY}
	// LesserY picks the candidate with the lesser y coordinate.
	LesserY = Chooser{kind: chooseLesserY}
)

// CustomChooser wraps a pure tie-break function over the two candidates
// and the joint's previous position.
func CustomChooser(fn func(a, b, prev geom.Point) geom.Point) Chooser {
	return Chooser{kind: chooseCustom, fn: fn}
}

func (c Chooser) String() string {
	switch c.kind {
	case chooseGreaterX:
		return "greater_x"
	case chooseLesserX:
		return "lesser_x"
	case chooseGreaterY:
		return "greater_y"
	case chooseLesserY:
		return "lesser_y"
	case chooseCustom:
		return "custom"
	default:
		return "closest"
	}
}

// Pick applies the strategy to two candidate positions. Deterministic:
// equal candidates under the strategy's order fall back to a.
func (c Chooser) Pick(a, b, prev geom.Point) geom.Point {
	switch c.kind {
	case chooseGreaterX:
		if b.X > a.X {
			return b
		}
		return a
	case chooseLesserX:
		if b.X < a.X {
			return b
		}
		return a
	case chooseGreaterY:
		if b.Y > a.Y {
			return b
		}
		return a
	case chooseLesserY:
		if b.Y < a.Y {
			return b
		}
		return a
	case chooseCustom:
		return c.fn(a, b, prev)
	default:
		if b.Distance(prev) < a.Distance(prev) {
			return b
		}
		return a
	}
}
