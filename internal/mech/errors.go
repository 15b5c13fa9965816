package mech

import (
	"errors"
	"fmt"
)

// Domain errors for linkage construction and solving.
var (
	// ErrDuplicateJoint indicates two joints share a name.
	ErrDuplicateJoint = errors.New("mech: duplicate joint name")

	// ErrUnknownJoint indicates a bar or driver references a joint that is
	// not part of the linkage.
	ErrUnknownJoint = errors.New("mech: joint not in linkage")

	// ErrSegmentCount indicates a bar's rest length count does not match
	// its joint count.
	ErrSegmentCount = errors.New("mech: bar needs one rest length per consecutive joint pair")

	// ErrSegmentLength indicates a non-positive rest length.
	ErrSegmentLength = errors.New("mech: rest lengths must be positive")

	// ErrLengthMismatch indicates a rest length disagrees with the distance
	// between the joints' positions.
	ErrLengthMismatch = errors.New("mech: rest length does not match joint positions")

	// ErrUnderconstrained indicates a free joint that cannot be resolved
	// from the linkage topology.
	ErrUnderconstrained = errors.New("mech: joint cannot be resolved from the linkage topology")

	// ErrDriverTarget indicates a driver attached to a fixed joint, to a
	// joint already claimed by another driver, or to no joint at all.
	ErrDriverTarget = errors.New("mech: invalid driver attachment")

	// ErrUnreachable indicates a constraint with no real solution: the
	// mechanism has locked or exceeded its range of motion.
	ErrUnreachable = errors.New("mech: no reachable configuration")
)

// ConfigError reports a construction-time problem. No linkage is usable
// after one is returned.
type ConfigError struct {
	Joint   string
	Bar     string
	Detail  string
	Wrapped error
}

func (e *ConfigError) Error() string {
	msg := e.Wrapped.Error()
	if e.Joint != "" {
		msg += fmt.Sprintf(" (joint %q)", e.Joint)
	}
	if e.Bar != "" {
		msg += fmt.Sprintf(" (bar %q)", e.Bar)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}

// StepError reports a failed solve attempt. It aborts only the step it
// occurred in; the linkage remains at its last committed positions.
type StepError struct {
	Step    int
	Joint   string
	Dist    float64 // distance between the constraining anchors
	R1, R2  float64 // constraint radii
	Wrapped error
}

func (e *StepError) Error() string {
	switch {
	case e.R1 != 0 && e.R2 != 0:
		return fmt.Sprintf("step %d: joint %q: %v (anchors %.6g apart, radii %.6g and %.6g)",
			e.Step, e.Joint, e.Wrapped, e.Dist, e.R1, e.R2)
	case e.R1 != 0:
		return fmt.Sprintf("step %d: joint %q: %v (rest length %.6g vs measured %.6g)",
			e.Step, e.Joint, e.Wrapped, e.R1, e.Dist)
	default:
		return fmt.Sprintf("step %d: joint %q: %v", e.Step, e.Joint, e.Wrapped)
	}
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
