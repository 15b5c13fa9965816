package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/juxley/linksim/internal/config"
	"github.com/juxley/linksim/internal/export"
	"github.com/juxley/linksim/internal/mech"
	"github.com/juxley/linksim/internal/store"
	"github.com/juxley/linksim/internal/viz"
)

var (
	dataDir    string
	configFile string
	steps      int
	track      []string
	svgOut     string
	svgWidth   int
	svgHeight  int
	sweepRuns  int
	frameRate  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "linksim",
		Short: "planar linkage mechanism simulator",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".linksim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [family/variant]",
		Short: "simulate a mechanism and store its trajectories",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMechanism,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "mechanism file (yaml)")
	runCmd.Flags().IntVar(&steps, "steps", 0, "number of steps (overrides the mechanism's run block)")
	runCmd.Flags().StringSliceVar(&track, "track", nil, "joints to track (overrides the mechanism's run block)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run's trajectories",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print a stored run's metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render a stored run's trajectories as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  svgRun,
	}
	svgCmd.Flags().StringVarP(&svgOut, "out", "o", "run.svg", "output file")
	svgCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	svgCmd.Flags().IntVar(&svgHeight, "height", 600, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in mechanisms",
		RunE:  listPresets,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [family/variant]",
		Short: "run a mechanism at several drive speeds in parallel",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepMechanism,
	}
	sweepCmd.Flags().StringVar(&configFile, "config", "", "mechanism file (yaml)")
	sweepCmd.Flags().IntVar(&sweepRuns, "runs", 4, "number of speed multiples")
	sweepCmd.Flags().IntVar(&steps, "steps", 0, "steps per run")

	liveCmd := &cobra.Command{
		Use:   "live [family/variant]",
		Short: "animate a mechanism in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  liveMechanism,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "mechanism file (yaml)")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frames per second")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, svgCmd, presetsCmd, sweepCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadMechanism resolves the mechanism from --config or a preset name
// like "fourbar/crank_rocker".
func loadMechanism(args []string) (*config.Mechanism, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("pass a preset (family/variant) or --config; see `linksim presets`")
	}
	family, variant, ok := strings.Cut(args[0], "/")
	if !ok {
		return nil, fmt.Errorf("preset %q: want family/variant", args[0])
	}
	m := config.GetPreset(family, variant)
	if m == nil {
		return nil, fmt.Errorf("unknown preset %q (available: %v)", args[0], config.ListPresets(family))
	}
	return m, nil
}

func runMechanism(cmd *cobra.Command, args []string) error {
	m, err := loadMechanism(args)
	if err != nil {
		return err
	}

	n := m.Run.Steps
	if cmd.Flags().Changed("steps") {
		n = steps
	}
	tracked := m.Run.Track
	if cmd.Flags().Changed("track") {
		tracked = track
	}

	l, err := m.Build()
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s for %d steps...\n", l.Name(), n)
	start := time.Now()

	rec, runErr := l.Run(context.Background(), n, tracked...)
	elapsed := time.Since(start)
	if rec == nil {
		return runErr
	}

	runID, err := st.Save(l.Name(), rec)
	if err != nil {
		return err
	}

	fmt.Printf("completed %d steps in %v\n", rec.StepsCompleted, elapsed)
	fmt.Printf("run id: %s\n", runID)
	for _, ev := range rec.Events {
		fmt.Printf("  tangency at step %d (joint %s)\n", ev.Step, ev.Joint)
	}
	if runErr != nil {
		return fmt.Errorf("mechanism locked: %w", runErr)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := store.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMECHANISM\tTIME\tSTEPS\tTRACKED\tEVENTS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%d\n",
			run.ID,
			run.Mechanism,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			strings.Join(run.Tracked, ","),
			run.Events,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trajs, err := st.LoadTrajectories(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\nmechanism: %s\nsteps: %d\n", meta.ID, meta.Mechanism, meta.Steps)

	for _, name := range meta.Tracked {
		traj := trajs[name]
		if len(traj) == 0 {
			continue
		}
		xs := make([]float64, len(traj))
		ys := make([]float64, len(traj))
		for i, p := range traj {
			xs[i] = p.X
			ys[i] = p.Y
		}
		fmt.Printf("\n%s\n", asciigraph.Plot(xs,
			asciigraph.Height(10), asciigraph.Width(70),
			asciigraph.Caption(name+" x vs step")))
		fmt.Printf("\n%s\n", asciigraph.Plot(ys,
			asciigraph.Height(10), asciigraph.Width(70),
			asciigraph.Caption(name+" y vs step")))
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, err := store.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func svgRun(cmd *cobra.Command, args []string) error {
	trajs, err := store.New(dataDir).LoadTrajectories(args[0])
	if err != nil {
		return err
	}
	doc := export.SVG(svgWidth, svgHeight, nil, nil, trajs)
	if err := os.WriteFile(svgOut, []byte(doc), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tJOINTS\tBARS\tDRIVERS\tSTEPS")
	for family, variants := range config.Presets {
		for name, m := range variants {
			fmt.Fprintf(w, "%s/%s\t%d\t%d\t%d\t%d\n",
				family, name, len(m.Joints), len(m.Bars), len(m.Drivers), m.Run.Steps)
		}
	}
	return w.Flush()
}

func sweepMechanism(cmd *cobra.Command, args []string) error {
	m, err := loadMechanism(args)
	if err != nil {
		return err
	}
	n := m.Run.Steps
	if cmd.Flags().Changed("steps") {
		n = steps
	}

	// Each run drives the same mechanism faster: speed multiple k
	// divides the crank's steps per turn (and oscillation periods), so
	// locking behavior at higher speeds surfaces in one sweep.
	ensemble := mech.NewEnsemble(func(run int) (*mech.Linkage, error) {
		scaled := *m
		scaled.Drivers = make([]config.DriverConfig, len(m.Drivers))
		copy(scaled.Drivers, m.Drivers)
		k := float64(run + 1)
		for i := range scaled.Drivers {
			if scaled.Drivers[i].StepsPerTurn > 0 {
				scaled.Drivers[i].StepsPerTurn /= k
			} else if scaled.Drivers[i].Kind == "crank" || scaled.Drivers[i].Kind == "" {
				scaled.Drivers[i].StepsPerTurn = config.DefaultStepsPerTurn / k
			}
			if scaled.Drivers[i].Period > 0 {
				scaled.Drivers[i].Period /= k
			}
		}
		return scaled.Build()
	}, sweepRuns)

	records, errs := ensemble.Run(context.Background(), n, m.Run.Track...)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SPEED\tSTEPS\tEVENTS\tRESULT")
	for i := 0; i < sweepRuns; i++ {
		result := "ok"
		completed, events := 0, 0
		if records[i] != nil {
			completed = records[i].StepsCompleted
			events = len(records[i].Events)
		}
		if errs[i] != nil {
			result = errs[i].Error()
		}
		fmt.Fprintf(w, "%dx\t%d\t%d\t%s\n", i+1, completed, events, result)
	}
	return w.Flush()
}

func liveMechanism(cmd *cobra.Command, args []string) error {
	m, err := loadMechanism(args)
	if err != nil {
		return err
	}
	l, err := m.Build()
	if err != nil {
		return err
	}
	return viz.RunLive(l, m.Run.Track, frameRate)
}
