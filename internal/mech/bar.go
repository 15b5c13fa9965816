package mech

import "fmt"

// Bar is a rigid sequence of fixed-length segments linking two or more
// joints. A bar does not own its joints; joints are shared across bars.
type Bar struct {
	name     string
	joints   []*Joint
	segments []float64
	origin   []float64 // cumulative distance of each joint from joints[0]
}

// NewBar creates a bar over the given joints with one rest length per
// consecutive joint pair. Joints on a bar with more than two joints are
// collinear by construction.
func NewBar(name string, joints []*Joint, lengths []float64) (*Bar, error) {
	if len(joints) < 2 {
		return nil, &ConfigError{Bar: name, Detail: "a bar needs at least two joints", Wrapped: ErrSegmentCount}
	}
	if len(lengths) != len(joints)-1 {
		return nil, &ConfigError{Bar: name, Wrapped: ErrSegmentCount}
	}
	for _, l := range lengths {
		if l <= 0 {
			return nil, &ConfigError{Bar: name, Wrapped: ErrSegmentLength}
		}
	}
	seen := make(map[*Joint]bool, len(joints))
	for _, j := range joints {
		if seen[j] {
			return nil, &ConfigError{Bar: name, Joint: j.name, Detail: "joint appears twice on the bar", Wrapped: ErrDuplicateJoint}
		}
		seen[j] = true
	}

	origin := make([]float64, len(joints))
	for i, l := range lengths {
		origin[i+1] = origin[i] + l
	}
	segs := make([]float64, len(lengths))
	copy(segs, lengths)

	return &Bar{name: name, joints: append([]*Joint(nil), joints...), segments: segs, origin: origin}, nil
}

func (b *Bar) Name() string { return b.name }

// Joints returns the bar's joints in order.
func (b *Bar) Joints() []*Joint {
	return append([]*Joint(nil), b.joints...)
}

// SegmentLength returns the rest length between joints i and i+1.
func (b *Bar) SegmentLength(i int) float64 { return b.segments[i] }

// NumSegments returns the number of consecutive joint pairs.
func (b *Bar) NumSegments() int { return len(b.segments) }

// OriginDistance returns the along-bar distance of j from the bar's first
// joint. ok is false when j is not on the bar.
func (b *Bar) OriginDistance(j *Joint) (dist float64, ok bool) {
	for i, other := range b.joints {
		if other == j {
			return b.origin[i], true
		}
	}
	return 0, false
}

// JointDistance returns the along-bar distance between two joints on the
// bar. ok is false when either joint is not on the bar.
func (b *Bar) JointDistance(j1, j2 *Joint) (dist float64, ok bool) {
	d1, ok1 := b.OriginDistance(j1)
	d2, ok2 := b.OriginDistance(j2)
	if !ok1 || !ok2 {
		return 0, false
	}
	if d1 > d2 {
		return d1 - d2, true
	}
	return d2 - d1, true
}

func (b *Bar) contains(j *Joint) bool {
	_, ok := b.OriginDistance(j)
	return ok
}

// Segment identifies one rigid segment for rendering and reporting.
type Segment struct {
	Bar        string
	A, B       string // joint names
	RestLength float64
}

// Segments lists the bar's consecutive joint pairs.
func (b *Bar) Segments() []Segment {
	out := make([]Segment, 0, len(b.segments))
	for i := range b.segments {
		out = append(out, Segment{
			Bar:        b.name,
			A:          b.joints[i].name,
			B:          b.joints[i+1].name,
			RestLength: b.segments[i],
		})
	}
	return out
}

// validateGeometry checks every segment's rest length against the current
// joint positions.
func (b *Bar) validateGeometry(tol float64) error {
	for i := range b.segments {
		got := b.joints[i].pos.Distance(b.joints[i+1].pos)
		if diff := got - b.segments[i]; diff > tol || diff < -tol {
			return &ConfigError{
				Bar:     b.name,
				Joint:   b.joints[i].name,
				Detail:  formatMismatch(b.segments[i], got),
				Wrapped: ErrLengthMismatch,
			}
		}
	}
	return nil
}

func formatMismatch(want, got float64) string {
	return fmt.Sprintf("rest length %.6g vs measured %.6g", want, got)
}
