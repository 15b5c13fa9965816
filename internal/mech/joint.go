package mech

import (
	"fmt"

	"github.com/juxley/linksim/internal/geom"
)

// Role classifies how a joint's position is determined.
type Role int

const (
	// RoleFree joints are positioned by the constraint solver.
	RoleFree Role = iota
	// RoleFixed joints never move after construction.
	RoleFixed
	// RoleDriven joints are positioned by their driver each step.
	RoleDriven
)

func (r Role) String() string {
	switch r {
	case RoleFixed:
		return "fixed"
	case RoleDriven:
		return "driven"
	default:
		return "free"
	}
}

// Joint is one point in the mechanism, shared by the bars that meet there.
// Its current position is the last committed step's solution; the linkage
// owns all position updates after construction.
type Joint struct {
	name    string
	role    Role
	pos     geom.Point
	chooser Chooser
}

// NewJoint creates a free joint with an initial position. The initial
// position must satisfy the rest lengths of every bar touching the joint
// and doubles as the "previous position" for the first step's chooser.
func NewJoint(name string, at geom.Point, chooser Chooser) *Joint {
	return &Joint{name: name, role: RoleFree, pos: at, chooser: chooser}
}

// NewFixedJoint creates an anchor joint that never moves.
func NewFixedJoint(name string, at geom.Point) *Joint {
	return &Joint{name: name, role: RoleFixed, pos: at}
}

func (j *Joint) Name() string      { return j.name }
func (j *Joint) Role() Role        { return j.role }
func (j *Joint) Point() geom.Point { return j.pos }

func (j *Joint) String() string {
	return fmt.Sprintf("(%s: %g, %g)", j.name, j.pos.X, j.pos.Y)
}
