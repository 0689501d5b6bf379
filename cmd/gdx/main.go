package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"gdx/internal/analyst"
	"gdx/internal/app"
	"gdx/internal/course"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gdx:", err)
		os.Exit(1)
	}
}

// flagValues holds what was typed on the command line. Only flags the user
// actually set override the environment.
type flagValues struct {
	dev          bool
	devHTTP      string
	logPath      string
	debugLayout  bool
	ascii        bool
	dataDir      string
	noStore      bool
	demo         string
	fixture      string
	seed         uint64
	replyDelayMS int
	printDir     string
	style        string
	motion       string
	mouse        string
}

func newRootCmd() *cobra.Command {
	var fv flagValues

	root := &cobra.Command{
		Use:   "gdx",
		Short: "GDX course console: agronomic dashboard for an 18-hole course",
		Long: `gdx opens a terminal dashboard with course health KPIs, an interactive
hole map with a keyword analyst chat, per-hole detail overlays, a disease
forecast and the work order list.

Settings come from GDX_* environment variables; flags win over the environment.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, fv)
			if err != nil {
				return err
			}
			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.Run(ctx)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&fv.fixture, "fixture", "", "Course fixture YAML (default: built-in course)")
	pf.Uint64Var(&fv.seed, "seed", course.DefaultSeed, "Seed for randomised readings (0 = fresh each start)")
	pf.StringVar(&fv.dataDir, "data-dir", "", "Preference store directory")

	f := root.Flags()
	f.BoolVar(&fv.dev, "dev", false, "Enable the local dev HTTP hook")
	f.StringVar(&fv.devHTTP, "dev-http", "", "Dev hook listen address")
	f.StringVar(&fv.logPath, "log", "", "Write JSON logs to this file")
	f.BoolVar(&fv.debugLayout, "debug-layout", false, "Show layout diagnostics in the status bar")
	f.BoolVar(&fv.ascii, "ascii", false, "Draw with ASCII only")
	f.BoolVar(&fv.noStore, "no-store", false, "Do not read or write stored preferences")
	f.StringVar(&fv.demo, "demo", "", "Start in a named demo scenario")
	f.IntVar(&fv.replyDelayMS, "reply-delay", 0, "Analyst reply delay in milliseconds")
	f.StringVar(&fv.printDir, "print-dir", "", "Directory for printed screens")
	f.StringVar(&fv.style, "style", "", "UI style variant (modern_arcade, cozy_clean, retro_terminal)")
	f.StringVar(&fv.motion, "motion", "", "UI motion level (off, reduced, full)")
	f.StringVar(&fv.mouse, "mouse", "", "Mouse scope (off, scoped, full)")

	root.AddCommand(newAskCmd(&fv), newFixturesCmd(&fv), newPrefsCmd(&fv))
	return root
}

func resolveConfig(cmd *cobra.Command, fv flagValues) (app.Config, error) {
	cfg := app.DefaultConfig()
	if err := app.LoadEnv(&cfg); err != nil {
		return cfg, err
	}
	changed := cmd.Flags().Changed
	if changed("dev") {
		cfg.Dev = fv.dev
	}
	if changed("dev-http") {
		cfg.DevHTTP = fv.devHTTP
	}
	if changed("log") {
		cfg.LogPath = fv.logPath
	}
	if changed("debug-layout") {
		cfg.DebugLayout = fv.debugLayout
	}
	if changed("ascii") {
		cfg.ASCIIOnly = fv.ascii
	}
	if changed("data-dir") {
		cfg.DataDir = fv.dataDir
	}
	if changed("no-store") {
		cfg.NoStore = fv.noStore
	}
	if changed("demo") {
		cfg.DemoScenario = fv.demo
	}
	if changed("fixture") {
		cfg.FixturePath = fv.fixture
	}
	if changed("seed") {
		cfg.Seed = fv.seed
	}
	if changed("reply-delay") {
		cfg.ReplyDelayMS = fv.replyDelayMS
	}
	if changed("print-dir") {
		cfg.PrintDir = fv.printDir
	}
	if changed("style") {
		cfg.UI.StyleVariant = fv.style
	}
	if changed("motion") {
		cfg.UI.MotionLevel = fv.motion
	}
	if changed("mouse") {
		cfg.UI.MouseScope = fv.mouse
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newAskCmd(fv *flagValues) *cobra.Command {
	var showKind bool
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Print the analyst's answer to a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadFixture(cmd, fv)
			if err != nil {
				return err
			}
			question := strings.Join(args, " ")
			if strings.TrimSpace(question) == "" {
				return fmt.Errorf("empty question")
			}
			reply := analyst.New(store.Replies()).Respond(question)
			out := cmd.OutOrStdout()
			if showKind {
				fmt.Fprintf(out, "[%s] ", reply.Kind)
			}
			fmt.Fprintln(out, analyst.Plain(reply.Text))
			return nil
		},
	}
	cmd.Flags().BoolVar(&showKind, "kind", false, "Prefix the reply with its classification")
	return cmd
}

func newFixturesCmd(fv *flagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "fixtures",
		Short: "Validate the course fixture and print a summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadFixture(cmd, fv)
			if err != nil {
				return err
			}
			summarize(cmd.OutOrStdout(), store)
			return nil
		},
	}
}

func loadFixture(cmd *cobra.Command, fv *flagValues) (*course.Store, error) {
	cfg := app.DefaultConfig()
	if err := app.LoadEnv(&cfg); err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("fixture") {
		cfg.FixturePath = fv.fixture
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = fv.seed
	}
	opts := course.LoadOptions{Seed: cfg.Seed}
	if cfg.FixturePath != "" {
		return course.LoadFile(cfg.FixturePath, opts)
	}
	return course.Load(opts)
}

func summarize(w io.Writer, s *course.Store) {
	kpi := s.KPI()
	fmt.Fprintf(w, "%s (%s)\n", s.Name(), s.Operator())
	fmt.Fprintf(w, "holes     %d  stable %d  warning %d  critical %d\n",
		len(s.Holes()),
		s.CountByStatus(course.StatusStable),
		s.CountByStatus(course.StatusWarning),
		s.CountByStatus(course.StatusCritical),
	)
	fmt.Fprintf(w, "tqi       %.1f  average score %.1f\n", kpi.TQI, s.AverageScore())
	if h, ok := s.FirstCritical(); ok {
		fmt.Fprintf(w, "critical  hole %d %s\n", h.Number, h.Issue)
	}
	done := s.TaskProgress()
	reported := s.ReportedProgress()
	fmt.Fprintf(w, "tasks     %d/%d done (%d%%), dashboard reports %d%% (%d/%d)\n",
		done.Done, done.Total, done.Percent,
		reported.Percent, reported.Done, reported.Total,
	)
	fmt.Fprintf(w, "alerts    %d\n", len(s.Alerts()))
	fmt.Fprintf(w, "forecast  %d points\n", len(s.Predictions()))
}
