package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/gogpu/gg"
	"github.com/npillmayer/epicycle"
	"github.com/npillmayer/epicycle/config"
	"github.com/npillmayer/epicycle/curve"
	"github.com/npillmayer/epicycle/fourier"
	"github.com/npillmayer/epicycle/knots"
	"github.com/npillmayer/epicycle/render"
	"github.com/npillmayer/epicycle/svgpath"
	"github.com/npillmayer/epicycle/world"
	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"
)

// tracer writes to trace with key 'epicycle'
func tracer() tracing.Trace {
	return tracing.Select("epicycle")
}

var traceKeys = []string{
	"epicycle", "epicycle.config", "epicycle.curve", "epicycle.svgpath",
	"epicycle.fourier", "epicycle.world", "epicycle.render", "epicycle.knots",
}

// ErrNoCurve indicates a command line without any curve source.
var ErrNoCurve = errors.New("no curve given: need an SVG file, --d or --knots")

// app holds the settings shared by all sub-commands.
type app struct {
	configFile string
	traceLevel string
	cfg        *config.Config

	// curve sources
	pathData  string
	knotList  string
	closing   bool
	harmonics int
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "epicycle",
		Short:         "Reconstruct planar curves as chains of rotating vectors",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "TOML configuration file")
	pf.StringVar(&a.traceLevel, "trace", "", "trace level (debug|info|error), overrides configuration")
	pf.StringVar(&a.pathData, "d", "", "SVG path data")
	pf.StringVar(&a.knotList, "knots", "", "knots of a smooth closed curve, as in \"0,0 3,1 4,4\"")
	pf.BoolVar(&a.closing, "closing-lines", false, "draw a line segment for every closepath")
	pf.IntVar(&a.harmonics, "harmonics", 0, "number of harmonics, overrides configuration")
	root.AddCommand(a.analyzeCommand(), a.stateCommand(), a.renderCommand())
	return root
}

// setup loads the configuration and adjusts tracing.
func (a *app) setup() error {
	a.cfg = config.Default()
	if a.configFile != "" {
		cfg, err := config.Open(a.configFile)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if a.traceLevel != "" {
		a.cfg.Trace.Level = a.traceLevel
	}
	if a.harmonics != 0 {
		a.cfg.Analysis.Harmonics = a.harmonics
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	level, _ := config.TraceLevel(a.cfg.Trace.Level)
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
	if level == tracing.LevelDebug {
		gg.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
	return nil
}

// loadCurve reads the curve from the first source given: path data, knots
// or an SVG file.
func (a *app) loadCurve(args []string) (*curve.Composite, error) {
	var opts []svgpath.Option
	if a.closing {
		opts = append(opts, svgpath.ClosingLines())
	}
	switch {
	case a.pathData != "":
		return svgpath.Compile(a.pathData, opts...)
	case a.knotList != "":
		pts, err := parseKnots(a.knotList)
		if err != nil {
			return nil, err
		}
		return knots.Closed(pts)
	case len(args) > 0:
		return svgpath.Open(args[0], opts...)
	}
	return nil, ErrNoCurve
}

// parseKnots reads a list of coordinate pairs, using the path data number
// syntax.
func parseKnots(s string) ([]epicycle.Pair, error) {
	cmds, err := svgpath.Scan("M " + s)
	if err != nil {
		return nil, fmt.Errorf("malformed knot list: %w", err)
	}
	if len(cmds) != 1 {
		return nil, fmt.Errorf("malformed knot list %q", s)
	}
	pts := make([]epicycle.Pair, cmds[0].Groups())
	for i := range pts {
		g := cmds[0].Group(i)
		pts[i] = epicycle.P(g[0], g[1])
	}
	return pts, nil
}

// buildWorld analyzes a curve and orders the resulting rotating vectors as
// configured.
func (a *app) buildWorld(c curve.Parametric) (*world.World, error) {
	an := a.cfg.Analysis
	analyzer := fourier.New(fourier.Samples(an.Samples), fourier.DC(an.DC))
	vs, err := analyzer.Analyze(c, an.Harmonics)
	if err != nil {
		return nil, err
	}
	switch an.Order {
	case config.OrderMagnitude:
		vs = world.SortByMagnitude(vs)
	case config.OrderFrequency:
		vs = world.SortByFrequency(vs)
	}
	return world.New(vs...), nil
}

func (a *app) analyzeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [file.svg]",
		Short: "Print the rotating vectors of a curve",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCurve(args)
			if err != nil {
				return err
			}
			w, err := a.buildWorld(c)
			if err != nil {
				return err
			}
			return printVectors(cmd.OutOrStdout(), w)
		},
	}
}

func printVectors(out io.Writer, w *world.World) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintln(tw, "frequency\tmagnitude\tphase\t"); err != nil {
		return err
	}
	for _, v := range w.Vectors() {
		_, err := fmt.Fprintf(tw, "%g\t%.6f\t%.6f\t\n", v.Frequency, epicycle.Zap(v.Magnitude), epicycle.Zap(v.Phase))
		if err != nil {
			return err
		}
	}
	return tw.Flush()
}

func printState(out io.Writer, w *world.World, t float64) error {
	for i, p := range w.State(t) {
		if _, err := fmt.Fprintf(out, "%4d  %s\n", i, p.Zap()); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) stateCommand() *cobra.Command {
	var t float64
	cmd := &cobra.Command{
		Use:   "state [file.svg]",
		Short: "Print the chain of vector sums at a time value",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCurve(args)
			if err != nil {
				return err
			}
			w, err := a.buildWorld(c)
			if err != nil {
				return err
			}
			return printState(cmd.OutOrStdout(), w, t)
		},
	}
	cmd.Flags().Float64Var(&t, "t", 0, "time value")
	return cmd
}

func (a *app) renderCommand() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "render [file.svg]",
		Short: "Render a sequence of PNG frames",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCurve(args)
			if err != nil {
				return err
			}
			w, err := a.buildWorld(c)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			rc := a.cfg.Render
			vp := render.Fit(render.Bounds(curve.Sample(w, 1024)), rc.Width, rc.Height, rc.Margin)
			err = render.Animate(cmd.Context(), a.cfg, w, vp, func(i int, canvas *render.Canvas) error {
				return canvas.SavePNG(filepath.Join(outDir, fmt.Sprintf("frame%04d.png", i)))
			})
			if err != nil {
				return err
			}
			tracer().Infof("wrote %d frames to %s", rc.Frames, outDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "frames", "output directory")
	return cmd
}
