package mech

import (
	"errors"
	"math"
	"testing"

	"github.com/juxley/linksim/internal/geom"
)

// fourbar builds a Grashof crank-rocker: crank of radius 1 about the
// origin, coupler of length 3.5 to the knee, rocker of length 2.5 to a
// fixed pivot at (4, 0). The crank can turn through a full rotation.
func fourbar(t *testing.T, kneeChooser Chooser) *Linkage {
	t.Helper()

	pin := NewJoint("pin", geom.Point{X: 1}, Chooser{})
	knee := NewJoint("knee", geom.Point{X: 3.5, Y: math.Sqrt(6)}, kneeChooser)
	pivot := NewFixedJoint("pivot", geom.Point{X: 4})

	coupler, err := NewBar("coupler", []*Joint{pin, knee}, []float64{3.5})
	if err != nil {
		t.Fatalf("coupler: %v", err)
	}
	rocker, err := NewBar("rocker", []*Joint{knee, pivot}, []float64{2.5})
	if err != nil {
		t.Fatalf("rocker: %v", err)
	}

	crank := NewCrank("motor", geom.Point{}, pin, 1, 360, 0)

	l, err := New("fourbar", []*Joint{pin, knee, pivot}, []*Bar{coupler, rocker}, []Driver{crank})
	if err != nil {
		t.Fatalf("linkage: %v", err)
	}
	return l
}

func TestNewMarksDrivenJoints(t *testing.T) {
	l := fourbar(t, GreaterY)

	if got := l.Joint("pin").Role(); got != RoleDriven {
		t.Errorf("pin role = %v, want driven", got)
	}
	if got := l.Joint("knee").Role(); got != RoleFree {
		t.Errorf("knee role = %v, want free", got)
	}
	if got := l.Joint("pivot").Role(); got != RoleFixed {
		t.Errorf("pivot role = %v, want fixed", got)
	}
}

func TestNewRejectsDuplicateNames(t *testing.T) {
	a := NewFixedJoint("a", geom.Point{})
	a2 := NewFixedJoint("a", geom.Point{X: 1})

	_, err := New("dup", []*Joint{a, a2}, nil, nil)
	if !errors.Is(err, ErrDuplicateJoint) {
		t.Errorf("error = %v, want ErrDuplicateJoint", err)
	}
}

func TestNewRejectsForeignJoints(t *testing.T) {
	a := NewFixedJoint("a", geom.Point{})
	b := NewFixedJoint("b", geom.Point{X: 1})
	stray := NewFixedJoint("stray", geom.Point{Y: 1})

	bar, err := NewBar("bar", []*Joint{a, stray}, []float64{1})
	if err != nil {
		t.Fatalf("bar: %v", err)
	}

	_, err = New("foreign", []*Joint{a, b}, []*Bar{bar}, nil)
	if !errors.Is(err, ErrUnknownJoint) {
		t.Errorf("bar error = %v, want ErrUnknownJoint", err)
	}

	crank := NewCrank("motor", geom.Point{}, stray, 1, 360, 0)
	_, err = New("foreign", []*Joint{a, b}, nil, []Driver{crank})
	if !errors.Is(err, ErrUnknownJoint) {
		t.Errorf("driver error = %v, want ErrUnknownJoint", err)
	}
}

func TestNewRejectsBadDriverAttachments(t *testing.T) {
	t.Run("fixed target", func(t *testing.T) {
		a := NewFixedJoint("a", geom.Point{X: 1})
		crank := NewCrank("motor", geom.Point{}, a, 1, 360, 0)
		_, err := New("bad", []*Joint{a}, nil, []Driver{crank})
		if !errors.Is(err, ErrDriverTarget) {
			t.Errorf("error = %v, want ErrDriverTarget", err)
		}
	})

	t.Run("doubly driven target", func(t *testing.T) {
		pin := NewJoint("pin", geom.Point{X: 1}, Chooser{})
		c1 := NewCrank("m1", geom.Point{}, pin, 1, 360, 0)
		c2 := NewCrank("m2", geom.Point{}, pin, 1, 360, 0)
		_, err := New("bad", []*Joint{pin}, nil, []Driver{c1, c2})
		if !errors.Is(err, ErrDriverTarget) {
			t.Errorf("error = %v, want ErrDriverTarget", err)
		}
	})
}

func TestNewRejectsLengthMismatch(t *testing.T) {
	a := NewFixedJoint("a", geom.Point{})
	b := NewFixedJoint("b", geom.Point{X: 3})

	bar, err := NewBar("bar", []*Joint{a, b}, []float64{2})
	if err != nil {
		t.Fatalf("bar: %v", err)
	}

	_, err = New("stretched", []*Joint{a, b}, []*Bar{bar}, nil)
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("error = %v, want ErrLengthMismatch", err)
	}

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error type = %T, want *ConfigError", err)
	}
	if cfgErr.Bar != "bar" {
		t.Errorf("offending bar = %q, want bar", cfgErr.Bar)
	}
}

func TestNewRejectsUnderconstrainedTopology(t *testing.T) {
	// A free joint touched by a single two-joint bar has one circle of
	// candidates, never a point. Must fail at construction, not at solve.
	a := NewFixedJoint("a", geom.Point{})
	dangling := NewJoint("dangling", geom.Point{X: 1}, Chooser{})

	bar, err := NewBar("only", []*Joint{a, dangling}, []float64{1})
	if err != nil {
		t.Fatalf("bar: %v", err)
	}

	_, err = New("loose", []*Joint{a, dangling}, []*Bar{bar}, nil)
	if !errors.Is(err, ErrUnderconstrained) {
		t.Errorf("error = %v, want ErrUnderconstrained", err)
	}

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error type = %T, want *ConfigError", err)
	}
	if cfgErr.Joint != "dangling" {
		t.Errorf("offending joint = %q, want dangling", cfgErr.Joint)
	}
}

func TestNewRejectsDisconnectedJoint(t *testing.T) {
	a := NewFixedJoint("a", geom.Point{})
	island := NewJoint("island", geom.Point{X: 2}, Chooser{})

	_, err := New("split", []*Joint{a, island}, nil, nil)
	if !errors.Is(err, ErrUnderconstrained) {
		t.Errorf("error = %v, want ErrUnderconstrained", err)
	}
}

func TestSegments(t *testing.T) {
	l := fourbar(t, GreaterY)

	segs := l.Segments()
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if segs[0].Bar != "coupler" || segs[1].Bar != "rocker" {
		t.Errorf("unexpected segment order: %+v", segs)
	}
}

func TestWithTolerance(t *testing.T) {
	a := NewFixedJoint("a", geom.Point{})
	b := NewFixedJoint("b", geom.Point{X: 3.0001})

	bar, err := NewBar("bar", []*Joint{a, b}, []float64{3})
	if err != nil {
		t.Fatalf("bar: %v", err)
	}

	if _, err := New("tight", []*Joint{a, b}, []*Bar{bar}, nil); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("default tolerance should reject 1e-4 slack, got %v", err)
	}
	if _, err := New("loose", []*Joint{a, b}, []*Bar{bar}, nil, WithTolerance(1e-3)); err != nil {
		t.Errorf("loose tolerance should accept 1e-4 slack, got %v", err)
	}
}
