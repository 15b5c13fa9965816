package mech

import (
	"context"

	"github.com/juxley/linksim/internal/geom"
)

// Snapshot maps joint names to committed positions for one step.
type Snapshot map[string]geom.Point

// Trajectory is the append-only position history of a tracked joint.
type Trajectory []geom.Point

// Event surfaces a non-fatal solve boundary: the constraint circles for
// Joint were exactly tangent, leaving a single candidate.
type Event struct {
	Step  int
	Joint string
}

// Record is the outcome of a Run: how many steps committed, the tracked
// joints' trajectories, and any boundary events observed along the way.
type Record struct {
	StepsCompleted int
	Trajectories   map[string]Trajectory
	Events         []Event
}

// Snapshot returns the last committed positions of every joint.
func (l *Linkage) Snapshot() Snapshot {
	snap := make(Snapshot, len(l.joints))
	for _, j := range l.joints {
		snap[j.name] = j.pos
	}
	return snap
}

// BoundaryEvents returns the tangencies observed during the last
// committed step.
func (l *Linkage) BoundaryEvents() []Event {
	return append([]Event(nil), l.boundary...)
}

// Step advances the mechanism by one driver step and resolves every free
// joint. It commits atomically: on any unreachable constraint it returns
// a *StepError, no positions change, and the step counter stays put.
func (l *Linkage) Step() (Snapshot, error) {
	next := l.step + 1

	for i, j := range l.joints {
		l.work[i] = j.pos
	}
	for _, d := range l.drivers {
		l.work[l.index[d.Target()]] = d.PointAt(float64(next))
	}

	var tangent []Event
	for _, r := range l.plan {
		switch r.kind {
		case resolveExtend:
			l.work[r.target] = geom.Extend(l.work[r.a], l.work[r.b], r.dist)
		case resolveIntersect:
			pts, n := geom.CircleCircle(l.work[r.a], r.ra, l.work[r.b], r.rb, l.tol)
			switch n {
			case 0:
				return nil, &StepError{
					Step:    next,
					Joint:   l.joints[r.target].name,
					Dist:    l.work[r.a].Distance(l.work[r.b]),
					R1:      r.ra,
					R2:      r.rb,
					Wrapped: ErrUnreachable,
				}
			case 1:
				l.work[r.target] = pts[0]
				tangent = append(tangent, Event{Step: next, Joint: l.joints[r.target].name})
			default:
				j := l.joints[r.target]
				l.work[r.target] = j.chooser.Pick(pts[0], pts[1], j.pos)
			}
		}
	}

	if err := l.verify(next); err != nil {
		return nil, err
	}

	for i, j := range l.joints {
		if j.role != RoleFixed {
			j.pos = l.work[i]
		}
	}
	l.step = next
	l.boundary = tangent
	return l.Snapshot(), nil
}

// verify re-checks every bar segment against the solved positions. A
// violation here means the candidate enumeration produced a geometrically
// inconsistent assignment, which presents to the caller the same way as
// a locked mechanism.
func (l *Linkage) verify(step int) error {
	for _, b := range l.bars {
		for i := range b.segments {
			got := l.work[l.index[b.joints[i]]].Distance(l.work[l.index[b.joints[i+1]]])
			if diff := got - b.segments[i]; diff > l.tol || diff < -l.tol {
				return &StepError{
					Step:    step,
					Joint:   b.joints[i+1].name,
					Dist:    got,
					R1:      b.segments[i],
					Wrapped: ErrUnreachable,
				}
			}
		}
	}
	return nil
}

// Run executes n steps, appending each tracked joint's position to its
// trajectory after every successful step. It stops at the first failed
// step, returning the record accumulated so far together with the step's
// error. Cancellation is honored between steps only; a step itself is
// plain algebra with nothing to interrupt.
func (l *Linkage) Run(ctx context.Context, n int, tracked ...string) (*Record, error) {
	for _, name := range tracked {
		if l.byName[name] == nil {
			return nil, &ConfigError{Joint: name, Detail: "tracked joint", Wrapped: ErrUnknownJoint}
		}
	}

	rec := &Record{Trajectories: make(map[string]Trajectory, len(tracked))}
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return rec, ctx.Err()
		default:
		}

		snap, err := l.Step()
		if err != nil {
			return rec, err
		}
		rec.StepsCompleted++
		rec.Events = append(rec.Events, l.boundary...)
		for _, name := range tracked {
			rec.Trajectories[name] = append(rec.Trajectories[name], snap[name])
		}
	}
	return rec, nil
}
