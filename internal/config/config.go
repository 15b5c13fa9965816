package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/juxley/linksim/internal/geom"
	"github.com/juxley/linksim/internal/mech"
)

const (
	DefaultSteps        = 360
	DefaultStepsPerTurn = 360
)

// Mechanism is the on-disk description of a linkage plus run settings.
type Mechanism struct {
	Name      string         `yaml:"name"`
	Tolerance float64        `yaml:"tolerance,omitempty"`
	Joints    []JointConfig  `yaml:"joints"`
	Bars      []BarConfig    `yaml:"bars"`
	Drivers   []DriverConfig `yaml:"drivers"`
	Run       RunConfig      `yaml:"run"`
}

type JointConfig struct {
	Name    string     `yaml:"name"`
	At      [2]float64 `yaml:"at"`
	Fixed   bool       `yaml:"fixed,omitempty"`
	Chooser string     `yaml:"chooser,omitempty"`
}

type BarConfig struct {
	Name    string    `yaml:"name"`
	Joints  []string  `yaml:"joints"`
	Lengths []float64 `yaml:"lengths"`
}

type DriverConfig struct {
	Kind   string     `yaml:"kind"` // crank, rocker, slider
	Name   string     `yaml:"name"`
	Joint  string     `yaml:"joint"`
	Anchor [2]float64 `yaml:"anchor"`
	Radius float64    `yaml:"radius,omitempty"`
	// Crank
	StepsPerTurn float64 `yaml:"steps_per_turn,omitempty"`
	PhaseDeg     float64 `yaml:"phase_deg,omitempty"`
	// Rocker
	StartDeg float64 `yaml:"start_deg,omitempty"`
	EndDeg   float64 `yaml:"end_deg,omitempty"`
	Period   float64 `yaml:"period,omitempty"`
	// Slider
	Endpoint [2]float64 `yaml:"endpoint,omitempty"`
}

type RunConfig struct {
	Steps int      `yaml:"steps"`
	Track []string `yaml:"track,omitempty"`
}

// Load reads a mechanism description from a YAML file.
func Load(path string) (*Mechanism, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Mechanism
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	m.applyDefaults()
	return &m, nil
}

// Save writes a mechanism description to a YAML file.
func Save(path string, m *Mechanism) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (m *Mechanism) applyDefaults() {
	if m.Run.Steps <= 0 {
		m.Run.Steps = DefaultSteps
	}
}

// Build assembles a validated linkage from the description.
func (m *Mechanism) Build() (*mech.Linkage, error) {
	joints := make([]*mech.Joint, 0, len(m.Joints))
	byName := make(map[string]*mech.Joint, len(m.Joints))
	for _, jc := range m.Joints {
		at := geom.Point{X: jc.At[0], Y: jc.At[1]}
		var j *mech.Joint
		if jc.Fixed {
			if jc.Chooser != "" {
				return nil, fmt.Errorf("joint %q: fixed joints take no chooser", jc.Name)
			}
			j = mech.NewFixedJoint(jc.Name, at)
		} else {
			chooser, err := parseChooser(jc.Chooser)
			if err != nil {
				return nil, fmt.Errorf("joint %q: %w", jc.Name, err)
			}
			j = mech.NewJoint(jc.Name, at, chooser)
		}
		joints = append(joints, j)
		byName[jc.Name] = j
	}

	bars := make([]*mech.Bar, 0, len(m.Bars))
	for _, bc := range m.Bars {
		bj := make([]*mech.Joint, 0, len(bc.Joints))
		for _, name := range bc.Joints {
			j, ok := byName[name]
			if !ok {
				return nil, fmt.Errorf("bar %q: unknown joint %q", bc.Name, name)
			}
			bj = append(bj, j)
		}
		b, err := mech.NewBar(bc.Name, bj, bc.Lengths)
		if err != nil {
			return nil, err
		}
		bars = append(bars, b)
	}

	drivers := make([]mech.Driver, 0, len(m.Drivers))
	for _, dc := range m.Drivers {
		target, ok := byName[dc.Joint]
		if !ok {
			return nil, fmt.Errorf("driver %q: unknown joint %q", dc.Name, dc.Joint)
		}
		anchor := geom.Point{X: dc.Anchor[0], Y: dc.Anchor[1]}

		switch dc.Kind {
		case "crank", "":
			steps := dc.StepsPerTurn
			if steps <= 0 {
				steps = DefaultStepsPerTurn
			}
			drivers = append(drivers, mech.NewCrank(dc.Name, anchor, target, dc.Radius, steps, radians(dc.PhaseDeg)))
		case "rocker":
			drivers = append(drivers, mech.NewRocker(dc.Name, anchor, target, dc.Radius,
				radians(dc.StartDeg), radians(dc.EndDeg), dc.Period))
		case "slider":
			end := geom.Point{X: dc.Endpoint[0], Y: dc.Endpoint[1]}
			drivers = append(drivers, mech.NewSlider(dc.Name, anchor, end, target, dc.Period))
		default:
			return nil, fmt.Errorf("driver %q: unknown kind %q", dc.Name, dc.Kind)
		}
	}

	var opts []mech.Option
	if m.Tolerance > 0 {
		opts = append(opts, mech.WithTolerance(m.Tolerance))
	}
	return mech.New(m.Name, joints, bars, drivers, opts...)
}

func parseChooser(name string) (mech.Chooser, error) {
	switch name {
	case "", "closest":
		return mech.ClosestToPrev, nil
	case "greater_x":
		return mech.GreaterX, nil
	case "lesser_x":
		return mech.LesserX, nil
	case "greater_y":
		return mech.GreaterY, nil
	case "lesser_y":
		return mech.LesserY, nil
	default:
		return mech.Chooser{}, fmt.Errorf("unknown chooser %q", name)
	}
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
