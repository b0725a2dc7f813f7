package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/cartpole/internal/analysis"
	"github.com/san-kum/cartpole/internal/cartpole"
	"github.com/san-kum/cartpole/internal/config"
	"github.com/san-kum/cartpole/internal/policy"
	"github.com/san-kum/cartpole/internal/sim"
	"github.com/san-kum/cartpole/internal/viz"
)

var (
	episodes      int
	benchEpisodes int
	policyName    string
	seed          int64
	configFile    string
	preset        string
	csvOut        bool
	frameRate     int
	manualMode    bool
	// Physics overrides
	gravity    float64
	cartMass   float64
	poleMass   float64
	halfLength float64
	forceMag   float64
	tau        float64
	maxSteps   int
	xLimit     float64
	thetaLimit float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cartpole",
		Short: "cart-pole balancing simulation lab",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless episodes",
		RunE:  runEpisodes,
	}
	addCommonFlags(runCmd)
	runCmd.Flags().IntVar(&episodes, "episodes", 1, "number of episodes")
	runCmd.Flags().BoolVar(&csvOut, "csv", false, "dump trajectories as CSV to stdout")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run an episode with live visualization",
		RunE:  runLive,
	}
	addCommonFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	liveCmd.Flags().BoolVar(&manualMode, "manual", false, "steer with the arrow keys instead of a policy")

	benchCmd := &cobra.Command{
		Use:   "bench [policy...]",
		Short: "compare policies over episode batches",
		RunE:  benchPolicies,
	}
	addCommonFlags(benchCmd)
	benchCmd.Flags().IntVar(&benchEpisodes, "episodes", 100, "episodes per policy")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			sort.Strings(names)
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tFORCE\tTAU\tMAX_STEPS\tX_LIMIT\tTHETA_LIMIT")
			for _, name := range names {
				c := config.GetPreset(name).Physics
				fmt.Fprintf(w, "%s\t%.1fN\t%.3fs\t%d\t%.1fm\t%.0f°\n",
					name, c.ForceMag, c.Tau, c.MaxSteps, c.XLimit, c.ThetaLimitDeg)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, benchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&policyName, "policy", config.DefaultPolicy, "action policy")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&gravity, "gravity", 9.8, "gravity (m/s^2)")
	cmd.Flags().Float64Var(&cartMass, "cart-mass", 1.0, "cart mass (kg)")
	cmd.Flags().Float64Var(&poleMass, "pole-mass", 0.1, "pole mass (kg)")
	cmd.Flags().Float64Var(&halfLength, "half-length", 0.5, "pole half-length (m)")
	cmd.Flags().Float64Var(&forceMag, "force", 10.0, "force magnitude (N)")
	cmd.Flags().Float64Var(&tau, "tau", 0.02, "integration timestep (s)")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 500, "step budget per episode")
	cmd.Flags().Float64Var(&xLimit, "x-limit", 2.4, "track half-width (m)")
	cmd.Flags().Float64Var(&thetaLimit, "theta-limit", 12.0, "failure angle (degrees)")
}

// resolveConfig layers preset, then config file, then changed CLI flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			names := config.ListPresets()
			sort.Strings(names)
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, names)
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flagOverrides := map[string]func(){
		"policy":      func() { cfg.Policy = policyName },
		"seed":        func() { cfg.Seed = seed },
		"gravity":     func() { cfg.Physics.Gravity = gravity },
		"cart-mass":   func() { cfg.Physics.CartMass = cartMass },
		"pole-mass":   func() { cfg.Physics.PoleMass = poleMass },
		"half-length": func() { cfg.Physics.HalfLength = halfLength },
		"force":       func() { cfg.Physics.ForceMag = forceMag },
		"tau":         func() { cfg.Physics.Tau = tau },
		"max-steps":   func() { cfg.Physics.MaxSteps = maxSteps },
		"x-limit":     func() { cfg.Physics.XLimit = xLimit },
		"theta-limit": func() { cfg.Physics.ThetaLimitDeg = thetaLimit },
	}
	for name, apply := range flagOverrides {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}

	if cfg.Seed == 0 {
		cfg.Seed = seed
	}
	return cfg, nil
}

func runEpisodes(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	pol, err := policy.New(cfg.Policy, cfg.Seed)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rng := rand.New(rand.NewSource(cfg.Seed))
	runner := sim.New(cfg.Params(), pol)

	batch := make([]*sim.Episode, 0, episodes)
	start := time.Now()

	for i := 0; i < episodes; i++ {
		ep, err := runner.Run(ctx, cartpole.Init(rng))
		if ep != nil {
			batch = append(batch, ep)
		}
		if err != nil {
			// Interrupted: report what completed.
			fmt.Fprintf(os.Stderr, "stopped after %d episodes: %v\n", len(batch), err)
			break
		}
		if !csvOut {
			final := ep.Final()
			fmt.Printf("episode %d: %s after %d steps (x=%+.3f, theta=%+.2f°)\n",
				i+1, ep.Outcome, ep.Steps, final.X, final.Theta*180/math.Pi)
		}
	}
	elapsed := time.Since(start)

	if len(batch) == 0 {
		return fmt.Errorf("no episodes completed")
	}

	if csvOut {
		return writeCSV(os.Stdout, batch)
	}

	printSummary(batch, cfg.Policy, elapsed)
	chartEpisode(batch[len(batch)-1])
	return nil
}

func printSummary(batch []*sim.Episode, policyName string, elapsed time.Duration) {
	s := analysis.Summarize(batch)

	fmt.Printf("\ncompleted %d episodes in %v (policy: %s)\n\n", s.Episodes, elapsed, policyName)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MEAN_STEPS\tSTDDEV\tMIN\tMAX\tPOLE_FELL\tOUT_OF_BOUNDS\tMAX_STEPS\tMANUAL")
	fmt.Fprintf(w, "%.1f\t%.1f\t%d\t%d\t%.0f%%\t%.0f%%\t%.0f%%\t%.0f%%\n",
		s.MeanSteps, s.StdDev, s.MinSteps, s.MaxSteps,
		100*s.Rate(cartpole.PoleFell),
		100*s.Rate(cartpole.OutOfBounds),
		100*s.Rate(cartpole.MaxSteps),
		100*s.Rate(cartpole.ManualStop),
	)
	w.Flush()
}

func chartEpisode(ep *sim.Episode) {
	if len(ep.States) < 2 {
		return
	}
	data := make([]float64, len(ep.States))
	for i, s := range ep.States {
		data[i] = s.Theta * 180 / math.Pi
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("pole angle (deg), final episode"),
	))
}

func writeCSV(out *os.File, batch []*sim.Episode) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	header := []string{"episode", "time", "x", "x_dot", "theta", "theta_dot", "action", "outcome"}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, ep := range batch {
		for j, s := range ep.States {
			action := ""
			if j < len(ep.Actions) {
				action = ep.Actions[j].String()
			}
			row := []string{
				strconv.Itoa(i + 1),
				strconv.FormatFloat(ep.Times[j], 'f', 6, 64),
				strconv.FormatFloat(s.X, 'f', 6, 64),
				strconv.FormatFloat(s.XDot, 'f', 6, 64),
				strconv.FormatFloat(s.Theta, 'f', 6, 64),
				strconv.FormatFloat(s.ThetaDot, 'f', 6, 64),
				action,
				s.Outcome.String(),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	pol, err := policy.New(cfg.Policy, cfg.Seed)
	if err != nil {
		return err
	}

	fps := cfg.FPS
	if cmd.Flags().Changed("fps") {
		fps = frameRate
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	m := viz.NewModel(cfg.Params(), pol, rng, fps, manualMode)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func benchPolicies(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = policy.Names()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("benchmarking %d episodes per policy\n\n", benchEpisodes)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POLICY\tMEAN_STEPS\tSTDDEV\tMIN\tMAX\tPOLE_FELL\tOUT_OF_BOUNDS\tMAX_STEPS\tTIME")

	for _, name := range names {
		pol, err := policy.New(name, cfg.Seed)
		if err != nil {
			return err
		}

		rng := rand.New(rand.NewSource(cfg.Seed))
		runner := sim.New(cfg.Params(), pol)

		batch := make([]*sim.Episode, 0, benchEpisodes)
		start := time.Now()
		for i := 0; i < benchEpisodes; i++ {
			ep, err := runner.Run(ctx, cartpole.Init(rng))
			if err != nil {
				return err
			}
			batch = append(batch, ep)
		}
		elapsed := time.Since(start)

		s := analysis.Summarize(batch)
		fmt.Fprintf(w, "%s\t%.1f\t%.1f\t%d\t%d\t%.0f%%\t%.0f%%\t%.0f%%\t%v\n",
			name, s.MeanSteps, s.StdDev, s.MinSteps, s.MaxSteps,
			100*s.Rate(cartpole.PoleFell),
			100*s.Rate(cartpole.OutOfBounds),
			100*s.Rate(cartpole.MaxSteps),
			elapsed.Round(time.Millisecond),
		)
	}

	return w.Flush()
}
