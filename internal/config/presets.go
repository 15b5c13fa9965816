package config

// Presets holds ready-to-run mechanisms keyed by family and variant.
// Initial joint positions are consistent with the rest lengths, so every
// preset builds without adjustment.
var Presets = map[string]map[string]*Mechanism{
	"fourbar": {
		// Grashof crank-rocker: the crank turns through full rotations
		// while the rocker oscillates. The knee traces a closed curve.
		"crank_rocker": {
			Name: "fourbar",
			Joints: []JointConfig{
				{Name: "pin", At: [2]float64{1, 0}},
				{Name: "knee", At: [2]float64{3.5, 2.449489742783178}, Chooser: "greater_y"},
				{Name: "pivot", At: [2]float64{4, 0}, Fixed: true},
			},
			Bars: []BarConfig{
				{Name: "coupler", Joints: []string{"pin", "knee"}, Lengths: []float64{3.5}},
				{Name: "rocker", Joints: []string{"knee", "pivot"}, Lengths: []float64{2.5}},
			},
			Drivers: []DriverConfig{
				{Kind: "crank", Name: "motor", Joint: "pin", Anchor: [2]float64{0, 0}, Radius: 1, StepsPerTurn: 360},
			},
			Run: RunConfig{Steps: 360, Track: []string{"knee"}},
		},
		"wide": {
			Name: "fourbar",
			Joints: []JointConfig{
				{Name: "pin", At: [2]float64{1, 0}},
				{Name: "knee", At: [2]float64{3.875, 2.7810744326608736}, Chooser: "greater_y"},
				{Name: "pivot", At: [2]float64{5, 0}, Fixed: true},
			},
			Bars: []BarConfig{
				{Name: "coupler", Joints: []string{"pin", "knee"}, Lengths: []float64{4}},
				{Name: "rocker", Joints: []string{"knee", "pivot"}, Lengths: []float64{3}},
			},
			Drivers: []DriverConfig{
				{Kind: "crank", Name: "motor", Joint: "pin", Anchor: [2]float64{0, 0}, Radius: 1, StepsPerTurn: 360},
			},
			Run: RunConfig{Steps: 360, Track: []string{"knee"}},
		},
	},
	"slider": {
		// A ram sliding along the baseline with a two-bar dyad reaching
		// up to a fixed tower pivot.
		"dyad": {
			Name: "slider",
			Joints: []JointConfig{
				{Name: "ram", At: [2]float64{0, 0}},
				{Name: "elbow", At: [2]float64{2.228259211101294, 2.008696315559482}},
				{Name: "tower", At: [2]float64{2, 5}, Fixed: true},
			},
			Bars: []BarConfig{
				{Name: "lower", Joints: []string{"ram", "elbow"}, Lengths: []float64{3}},
				{Name: "upper", Joints: []string{"elbow", "tower"}, Lengths: []float64{3}},
			},
			Drivers: []DriverConfig{
				{Kind: "slider", Name: "ram_drive", Joint: "ram", Anchor: [2]float64{0, 0}, Endpoint: [2]float64{4, 0}, Period: 360},
			},
			Run: RunConfig{Steps: 720, Track: []string{"elbow"}},
		},
	},
	"rocker": {
		// A rocker arm sweeping between 20 and 70 degrees, dragging a
		// link pinned to a second ground pivot.
		"sweep": {
			Name: "rocker",
			Joints: []JointConfig{
				{Name: "tip", At: [2]float64{1.8793852415718169, 0.6840402866513374}},
				{Name: "end", At: [2]float64{4.00500668631458, 1.999993733263219}},
				{Name: "ground", At: [2]float64{4, 0}, Fixed: true},
			},
			Bars: []BarConfig{
				{Name: "link", Joints: []string{"tip", "end"}, Lengths: []float64{2.5}},
				{Name: "hold", Joints: []string{"end", "ground"}, Lengths: []float64{2}},
			},
			Drivers: []DriverConfig{
				{Kind: "rocker", Name: "arm", Joint: "tip", Anchor: [2]float64{0, 0}, Radius: 2, StartDeg: 20, EndDeg: 70, Period: 240},
			},
			Run: RunConfig{Steps: 480, Track: []string{"end"}},
		},
	},
}

// GetPreset returns the named preset, or nil when either the family or
// the variant does not exist.
func GetPreset(family, name string) *Mechanism {
	variants, ok := Presets[family]
	if !ok {
		return nil
	}
	return variants[name]
}

// ListPresets returns the variant names for a family, or nil.
func ListPresets(family string) []string {
	variants, ok := Presets[family]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	return names
}
