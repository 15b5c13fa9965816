package mech

import (
	"github.com/juxley/linksim/internal/geom"
)

// DefaultTolerance is the margin for rest-length validation and for the
// tangency/unreachable boundary in constraint solving.
const DefaultTolerance = 1e-6

// Linkage owns a mechanism's joints, bars and drivers. Construction
// validates the initial geometry and computes the resolution plan once;
// stepping reuses the plan since topology never changes, only positions.
//
// A Linkage is not safe for concurrent use. Independent instances may be
// stepped in parallel; see Ensemble.
type Linkage struct {
	name    string
	joints  []*Joint
	byName  map[string]*Joint
	index   map[*Joint]int
	bars    []*Bar
	drivers []Driver

	plan []resolver
	tol  float64

	step     int
	work     []geom.Point // scratch positions for the in-flight step
	boundary []Event      // tangencies observed during the last committed step
}

// Option adjusts linkage construction.
type Option func(*Linkage)

// WithTolerance overrides DefaultTolerance.
func WithTolerance(tol float64) Option {
	return func(l *Linkage) {
		if tol > 0 {
			l.tol = tol
		}
	}
}

type resolverKind int

const (
	resolveIntersect resolverKind = iota // two-circle intersection
	resolveExtend                        // collinear extension on a multi-joint bar
)

// resolver positions one joint from two already-known joints. For
// intersections a and b are the constraint anchors with radii ra and rb
// taken from the bars' along-bar distances. For extensions a and b are
// collinear joints on the same bar, ordered by origin distance, and dist
// is the target's offset beyond b.
type resolver struct {
	kind   resolverKind
	target int
	a, b   int
	ra, rb float64 // intersect
	dist   float64 // extend
}

// New assembles a linkage and fails with a *ConfigError on duplicate
// names, dangling joint references, invalid driver attachments, rest
// lengths that contradict the initial joint positions, or a topology
// that leaves any free joint unresolvable.
func New(name string, joints []*Joint, bars []*Bar, drivers []Driver, opts ...Option) (*Linkage, error) {
	l := &Linkage{
		name:    name,
		joints:  append([]*Joint(nil), joints...),
		byName:  make(map[string]*Joint, len(joints)),
		index:   make(map[*Joint]int, len(joints)),
		bars:    append([]*Bar(nil), bars...),
		drivers: append([]Driver(nil), drivers...),
		tol:     DefaultTolerance,
	}
	for _, opt := range opts {
		opt(l)
	}

	for i, j := range l.joints {
		if _, dup := l.byName[j.name]; dup {
			return nil, &ConfigError{Joint: j.name, Wrapped: ErrDuplicateJoint}
		}
		l.byName[j.name] = j
		l.index[j] = i
	}

	for _, b := range l.bars {
		for _, j := range b.joints {
			if _, ok := l.index[j]; !ok {
				return nil, &ConfigError{Bar: b.name, Joint: j.name, Wrapped: ErrUnknownJoint}
			}
		}
	}

	for _, d := range l.drivers {
		t := d.Target()
		if t == nil {
			return nil, &ConfigError{Detail: "driver " + d.Name() + " has no target joint", Wrapped: ErrDriverTarget}
		}
		if _, ok := l.index[t]; !ok {
			return nil, &ConfigError{Joint: t.name, Detail: "driver " + d.Name(), Wrapped: ErrUnknownJoint}
		}
		if t.role == RoleFixed {
			return nil, &ConfigError{Joint: t.name, Detail: "driver " + d.Name() + " attached to a fixed joint", Wrapped: ErrDriverTarget}
		}
		if t.role == RoleDriven {
			return nil, &ConfigError{Joint: t.name, Detail: "joint already claimed by another driver", Wrapped: ErrDriverTarget}
		}
		t.role = RoleDriven
	}

	for _, b := range l.bars {
		if err := b.validateGeometry(l.tol); err != nil {
			return nil, err
		}
	}

	if err := l.buildPlan(); err != nil {
		return nil, err
	}

	l.work = make([]geom.Point, len(l.joints))
	return l, nil
}

// candidate is one way to resolve a joint once two prerequisite joints
// are known.
type candidate struct {
	needA, needB int
	res          resolver
}

// buildPlan computes the resolution order: seed the solved set with fixed
// and driven joints, enumerate every way each free joint could be found,
// then order resolvers by fixpoint iteration. Any free joint left over is
// underconstrained.
func (l *Linkage) buildPlan() error {
	solved := make([]bool, len(l.joints))
	unsolved := 0
	for i, j := range l.joints {
		if j.role == RoleFixed || j.role == RoleDriven {
			solved[i] = true
		} else {
			unsolved++
		}
	}

	var candidates []candidate
	for ji, j := range l.joints {
		if solved[ji] {
			continue
		}
		touching := l.barsOf(j)

		// Collinear extension: a joint on a bar with more than two
		// joints is fixed by any two other joints of that bar.
		for _, b := range touching {
			if len(b.joints) <= 2 {
				continue
			}
			dj, _ := b.OriginDistance(j)
			for x := 0; x < len(b.joints); x++ {
				for y := x + 1; y < len(b.joints); y++ {
					jx, jy := b.joints[x], b.joints[y]
					if jx == j || jy == j {
						continue
					}
					// jx precedes jy along the bar, so the extension
					// direction jx->jy follows increasing origin distance.
					dy := b.origin[y]
					candidates = append(candidates, candidate{
						needA: l.index[jx],
						needB: l.index[jy],
						res: resolver{
							kind:   resolveExtend,
							target: ji,
							a:      l.index[jx],
							b:      l.index[jy],
							dist:   dj - dy,
						},
					})
				}
			}
		}

		// Circle intersection: two distinct anchors reachable through
		// two distinct bars.
		for x := 0; x < len(touching); x++ {
			for y := x + 1; y < len(touching); y++ {
				bx, by := touching[x], touching[y]
				for _, ax := range bx.joints {
					if ax == j {
						continue
					}
					for _, ay := range by.joints {
						if ay == j || ay == ax {
							continue
						}
						rx, _ := bx.JointDistance(j, ax)
						ry, _ := by.JointDistance(j, ay)
						candidates = append(candidates, candidate{
							needA: l.index[ax],
							needB: l.index[ay],
							res: resolver{
								kind:   resolveIntersect,
								target: ji,
								a:      l.index[ax],
								b:      l.index[ay],
								ra:     rx,
								rb:     ry,
							},
						})
					}
				}
			}
		}
	}

	for unsolved > 0 {
		progress := false
		remaining := candidates[:0]
		for _, c := range candidates {
			if solved[c.res.target] {
				continue
			}
			if solved[c.needA] && solved[c.needB] {
				l.plan = append(l.plan, c.res)
				solved[c.res.target] = true
				unsolved--
				progress = true
				continue
			}
			remaining = append(remaining, c)
		}
		candidates = remaining
		if !progress {
			for i, j := range l.joints {
				if !solved[i] {
					return &ConfigError{Joint: j.name, Wrapped: ErrUnderconstrained}
				}
			}
		}
	}
	return nil
}

func (l *Linkage) barsOf(j *Joint) []*Bar {
	var out []*Bar
	for _, b := range l.bars {
		if b.contains(j) {
			out = append(out, b)
		}
	}
	return out
}

func (l *Linkage) Name() string { return l.name }

// StepCount returns the number of committed steps.
func (l *Linkage) StepCount() int { return l.step }

// Tolerance returns the solve/validation tolerance.
func (l *Linkage) Tolerance() float64 { return l.tol }

// Joint returns the joint with the given name, or nil.
func (l *Linkage) Joint(name string) *Joint { return l.byName[name] }

// Joints returns the linkage's joints in construction order.
func (l *Linkage) Joints() []*Joint { return append([]*Joint(nil), l.joints...) }

// Drivers returns the linkage's drivers.
func (l *Linkage) Drivers() []Driver { return append([]Driver(nil), l.drivers...) }

// Segments lists every rigid segment of every bar, for rendering and
// reporting consumers.
func (l *Linkage) Segments() []Segment {
	var out []Segment
	for _, b := range l.bars {
		out = append(out, b.Segments()...)
	}
	return out
}
