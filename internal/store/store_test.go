package store

import (
	"math"
	"testing"

	"github.com/juxley/linksim/internal/mech"
)

func sampleRecord() *mech.Record {
	return &mech.Record{
		StepsCompleted: 3,
		Trajectories: map[string]mech.Trajectory{
			"knee": {
				{X: 3.5, Y: 2.449489743},
				{X: 3.48, Y: 2.47},
				{X: 3.46, Y: 2.49},
			},
			"pin": {
				{X: 1, Y: 0},
				{X: 0.9998476952, Y: 0.0174524064},
				{X: 0.9993908270, Y: 0.0348994967},
			},
		},
		Events: []mech.Event{{Step: 2, Joint: "knee"}},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	rec := sampleRecord()
	runID, err := st.Save("fourbar", rec)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.Mechanism != "fourbar" {
		t.Errorf("mechanism = %q, want fourbar", meta.Mechanism)
	}
	if meta.Steps != 3 {
		t.Errorf("steps = %d, want 3", meta.Steps)
	}
	if len(meta.Tracked) != 2 {
		t.Errorf("tracked = %v, want two joints", meta.Tracked)
	}
	if meta.Events != 1 {
		t.Errorf("events = %d, want 1", meta.Events)
	}

	trajs, err := st.LoadTrajectories(runID)
	if err != nil {
		t.Fatalf("load trajectories: %v", err)
	}
	for name, want := range rec.Trajectories {
		got := trajs[name]
		if len(got) != len(want) {
			t.Fatalf("%s: got %d points, want %d", name, len(got), len(want))
		}
		for i := range want {
			if math.Abs(got[i].X-want[i].X) > 1e-9 || math.Abs(got[i].Y-want[i].Y) > 1e-9 {
				t.Errorf("%s[%d] = %v, want %v", name, i, got[i], want[i])
			}
		}
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list empty store: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	if _, err := st.Save("fourbar", sampleRecord()); err != nil {
		t.Fatalf("save: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Mechanism != "fourbar" {
		t.Errorf("mechanism = %q, want fourbar", runs[0].Mechanism)
	}
}

func TestListMissingBaseDir(t *testing.T) {
	st := New("/nonexistent/linksim-test")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestSaveWithoutTrackedJoints(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	rec := &mech.Record{StepsCompleted: 5, Trajectories: map[string]mech.Trajectory{}}
	runID, err := st.Save("bare", rec)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	trajs, err := st.LoadTrajectories(runID)
	if err != nil {
		t.Fatalf("load trajectories: %v", err)
	}
	if len(trajs) != 0 {
		t.Errorf("expected no trajectories, got %v", trajs)
	}
}
