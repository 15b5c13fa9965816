// Package mech models and solves planar linkage mechanisms.
//
// A mechanism is assembled from three kinds of parts:
//
//   - [Joint]: a named point, either fixed in space, driven by an
//     actuator, or free and positioned by the solver
//   - [Bar]: a rigid sequence of fixed-length segments between joints
//   - [Driver]: an actuator ([Crank], [Rocker], [Slider]) producing its
//     joint's position as a pure function of the step parameter
//
// [New] validates the assembly and computes a resolution plan once: an
// ordered list of solve operations, each positioning one free joint from
// two already-known joints via circle-circle intersection (or collinear
// extension on bars with more than two joints). [Linkage.Step] advances
// the drivers and walks the plan; a joint's two-candidate ambiguity is
// settled by its [Chooser]. Steps commit atomically: a locked mechanism
// leaves the linkage at its last committed positions.
//
// # Example
//
//	pin := mech.NewJoint("pin", geom.Point{X: 1}, mech.Chooser{})
//	tip := mech.NewJoint("tip", geom.Point{X: 3.5, Y: 2.45}, mech.GreaterY)
//	...
//	l, err := mech.New("fourbar", joints, bars, drivers)
//	rec, err := l.Run(ctx, 360, "tip")
//
// # Thread Safety
//
// Linkage instances are NOT thread-safe. Independent linkages are
// embarrassingly parallel; [Ensemble] manages a batch of them.
package mech
