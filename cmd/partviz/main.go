package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/partviz/internal/colorscale"
	"github.com/san-kum/partviz/internal/config"
	"github.com/san-kum/partviz/internal/geom"
	"github.com/san-kum/partviz/internal/observer"
	"github.com/san-kum/partviz/internal/render"
	"github.com/san-kum/partviz/internal/scene"
	"github.com/san-kum/partviz/internal/storage"
	"github.com/san-kum/partviz/internal/viz"
	"github.com/san-kum/partviz/internal/world"
)

var (
	dataDir    string
	configFile string
	colorsFile string
	outDir     string
	printOut   bool
	verbose    bool
	// Render options; flags override the preset and config file
	format       string
	name         string
	width        int
	height       int
	grid         bool
	wireframe    bool
	maxCount     int
	radius       float64
	seed         uint64
	species      []string
	edges        []float64
	pinnedRefill bool
	interactive  bool
	length       int
	// Chart series
	xSeries  string
	ySeries  []string
	xLabel   string
	yLabel   string
	xLim     []float64
	yLim     []float64
	noLegend bool
	// Gallery server
	bind string
	port int
	// View input
	asTrajectory bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "partviz",
		Short:         "particle simulation visualizer",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".partviz", "artifact store directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	rootCmd.PersistentFlags().StringVar(&colorsFile, "colors", "", "color mapping file, read before and written after rendering")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	worldCmd := &cobra.Command{
		Use:   "world [snapshot]",
		Short: "render the particles of a world snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  runWorld,
	}
	addRenderFlags(worldCmd)
	addWorldFlags(worldCmd)
	worldCmd.Flags().BoolVar(&wireframe, "wireframe", false, "wireframe space mode")
	worldCmd.Flags().BoolVar(&interactive, "view", false, "open the terminal viewer instead of rendering")

	movieCmd := &cobra.Command{
		Use:   "movie [snapshot]...",
		Short: "render consecutive world snapshots as a movie",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runMovie,
	}
	addRenderFlags(movieCmd)
	addWorldFlags(movieCmd)
	movieCmd.Flags().BoolVar(&interactive, "view", false, "open the terminal viewer instead of rendering")

	trajectoryCmd := &cobra.Command{
		Use:   "trajectory [csv]",
		Short: "render particle trajectories",
		Args:  cobra.ExactArgs(1),
		RunE:  runTrajectory,
	}
	addRenderFlags(trajectoryCmd)
	trajectoryCmd.Flags().IntVar(&maxCount, "max", 10, "maximum number of trajectories")
	trajectoryCmd.Flags().Uint64Var(&seed, "seed", 0, "seed for trajectory sampling")
	trajectoryCmd.Flags().BoolVar(&wireframe, "wireframe", false, "wireframe space mode")
	trajectoryCmd.Flags().BoolVar(&interactive, "view", false, "open the terminal viewer instead of rendering")

	volumeCmd := &cobra.Command{
		Use:   "volume [snapshot]",
		Short: "render particle density as a volume texture",
		Args:  cobra.ExactArgs(1),
		RunE:  runVolume,
	}
	addRenderFlags(volumeCmd)
	volumeCmd.Flags().StringSliceVar(&species, "species", nil, "species to include, in order")
	volumeCmd.Flags().Float64SliceVar(&edges, "edge", nil, "world edge lengths x,y,z for csv snapshots")
	volumeCmd.Flags().IntVar(&length, "length", config.DefaultLength, "texture side in voxels (a square number)")

	chartCmd := &cobra.Command{
		Use:   "chart [csv]...",
		Short: "plot number observer series",
		Long:  "plot number observer series as a widget (html, page, json), an image (png, svg) or in the terminal (term); several files overlay on one chart",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runChart,
	}
	addRenderFlags(chartCmd)
	chartCmd.Flags().StringVar(&xSeries, "x", "", "series on the x axis (default time)")
	chartCmd.Flags().StringSliceVar(&ySeries, "y", nil, "series to plot (default all)")
	chartCmd.Flags().StringVar(&xLabel, "xlabel", "", "x axis label")
	chartCmd.Flags().StringVar(&yLabel, "ylabel", "", "y axis label")
	chartCmd.Flags().Float64SliceVar(&xLim, "xlim", nil, "x axis limits min,max")
	chartCmd.Flags().Float64SliceVar(&yLim, "ylim", nil, "y axis limits min,max")
	chartCmd.Flags().BoolVar(&noLegend, "no-legend", false, "hide the legend")

	viewCmd := &cobra.Command{
		Use:   "view [file]...",
		Short: "explore snapshots or trajectories in the terminal",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runView,
	}
	addWorldFlags(viewCmd)
	viewCmd.Flags().BoolVar(&asTrajectory, "trajectory", false, "input is a trajectory csv")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve stored artifacts over http",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&bind, "bind", "127.0.0.1", "bind address")
	serveCmd.Flags().IntVar(&port, "port", 8080, "port")

	colorsCmd := &cobra.Command{
		Use:   "colors [key]...",
		Short: "show the palette or the colors assigned to keys",
		RunE:  runColors,
	}
	colorsCmd.Flags().BoolVar(&pinnedRefill, "pinned-refill", false, "avoid assigned colors when the palette wraps")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored artifacts",
		RunE:  listArtifacts,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				cfg := config.GetPreset(p)
				fmt.Printf("  %-12s %dx%d grid=%t max=%d\n", p, cfg.Width, cfg.Height, cfg.Grid, cfg.MaxCount)
			}
			return nil
		},
	}

	rootCmd.AddCommand(worldCmd, movieCmd, trajectoryCmd, volumeCmd, chartCmd, viewCmd, serveCmd, colorsCmd, listCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&format, "format", "f", config.DefaultFormat, "output format: html, page, json, svg (charts: png, svg, term)")
	cmd.Flags().StringVar(&name, "name", "", "artifact name (default input file name)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "also write the artifact into this directory")
	cmd.Flags().BoolVar(&printOut, "print", false, "also write the artifact to stdout")
	cmd.Flags().IntVar(&width, "width", 0, "canvas width")
	cmd.Flags().IntVar(&height, "height", 0, "canvas height")
	cmd.Flags().BoolVar(&grid, "grid", false, "draw the grid")
	cmd.Flags().BoolVar(&pinnedRefill, "pinned-refill", false, "avoid assigned colors when the palette wraps")
}

func addWorldFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&species, "species", nil, "species to include, in order")
	cmd.Flags().Float64SliceVar(&edges, "edge", nil, "world edge lengths x,y,z for csv snapshots")
	cmd.Flags().IntVar(&maxCount, "max", 1000, "maximum particles per species")
	cmd.Flags().Float64Var(&radius, "radius", 0, "override particle radius")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for particle sampling")
}

// resolveConfig layers the preset for kind, the config file and the flags
// that were set explicitly.
func resolveConfig(cmd *cobra.Command, kind string) (*config.Config, error) {
	cfg := config.GetPreset(kind)
	if configFile != "" {
		if err := config.Decode(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	f := cmd.Flags()
	if f.Changed("format") {
		cfg.Format = format
	}
	if f.Changed("width") {
		cfg.Width = width
	}
	if f.Changed("height") {
		cfg.Height = height
	}
	if f.Changed("grid") {
		cfg.Grid = grid
	}
	if f.Changed("wireframe") {
		cfg.Wireframe = wireframe
	}
	if f.Changed("max") {
		cfg.MaxCount = maxCount
	}
	if f.Changed("radius") {
		cfg.Radius = radius
	}
	if f.Changed("seed") {
		s := seed
		cfg.Seed = &s
	}
	if f.Changed("species") {
		cfg.Species = species
	}
	if f.Changed("length") {
		cfg.Length = length
	}
	return cfg, nil
}

// colorScale seeds a scale with the config colors and the colors file.
func colorScale(cfg *config.Config) (*colorscale.Scale, error) {
	pinned := make(map[string]string, len(cfg.Colors))
	for k, v := range cfg.Colors {
		pinned[k] = v
	}
	if colorsFile != "" {
		saved, err := config.LoadColors(colorsFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		for k, v := range saved {
			pinned[k] = v
		}
	}
	var opts []colorscale.Option
	if pinnedRefill {
		opts = append(opts, colorscale.WithPinnedRefill())
	}
	return colorscale.New(pinned, opts...), nil
}

func saveColors(scale *colorscale.Scale) error {
	if colorsFile == "" {
		return nil
	}
	return config.SaveColors(colorsFile, scale.Config())
}

func edgeLengths() (geom.Vec3, error) {
	switch len(edges) {
	case 0:
		return geom.Vec3{}, nil
	case 3:
		return geom.Vec3{X: edges[0], Y: edges[1], Z: edges[2]}, nil
	default:
		return geom.Vec3{}, fmt.Errorf("--edge needs 3 values, got %d", len(edges))
	}
}

func loadWorlds(paths []string) ([]world.World, error) {
	e, err := edgeLengths()
	if err != nil {
		return nil, err
	}
	worlds := make([]world.World, 0, len(paths))
	for _, path := range paths {
		w, err := world.LoadSnapshot(path, e)
		if err != nil {
			return nil, err
		}
		worlds = append(worlds, w)
	}
	return worlds, nil
}

func artifactName(path string) string {
	if name != "" {
		return name
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// display saves a in the store and copies it to the requested sinks.
func display(ctx context.Context, a render.Artifact) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	sinks := render.Multi{st}
	if outDir != "" {
		sinks = append(sinks, render.FileSink{Dir: outDir})
	}
	if printOut {
		sinks = append(sinks, render.WriterSink{W: os.Stdout})
	}
	if err := sinks.Display(ctx, a); err != nil {
		return err
	}
	loggerFromContext(ctx).Debug("stored artifact", "id", a.ID, "kind", a.Kind, "bytes", len(a.Body))
	return nil
}

// emit renders wd, or opens it in the terminal viewer with --view.
func emit(ctx context.Context, wd *scene.Widget, cfg *config.Config, name string) error {
	if interactive {
		return viz.Run(wd)
	}
	a, err := render.Render(wd, render.Options{Format: cfg.Format, Name: name})
	if err != nil {
		return err
	}
	return display(ctx, a)
}

func runWorld(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	p := newProgress(loggerFromContext(ctx))

	cfg, err := resolveConfig(cmd, config.KindWorld)
	if err != nil {
		return err
	}
	worlds, err := loadWorlds(args)
	if err != nil {
		return err
	}
	scale, err := colorScale(cfg)
	if err != nil {
		return err
	}

	wd, err := scene.World(worlds[0], cfg.WorldOptions(), scale)
	if err != nil {
		return err
	}
	if err := emit(ctx, wd, cfg, artifactName(args[0])); err != nil {
		return err
	}
	if err := saveColors(scale); err != nil {
		return err
	}
	p.done("rendered world", "id", wd.ID, "species", len(wd.Legend))
	return nil
}

func runMovie(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	p := newProgress(loggerFromContext(ctx))

	cfg, err := resolveConfig(cmd, config.KindMovie)
	if err != nil {
		return err
	}
	worlds, err := loadWorlds(args)
	if err != nil {
		return err
	}
	scale, err := colorScale(cfg)
	if err != nil {
		return err
	}

	wd, err := scene.Movie(worlds, cfg.MovieOptions(), scale)
	if err != nil {
		return err
	}
	if err := emit(ctx, wd, cfg, artifactName(args[0])); err != nil {
		return err
	}
	if err := saveColors(scale); err != nil {
		return err
	}
	p.done("rendered movie", "id", wd.ID, "frames", len(worlds))
	return nil
}

func runTrajectory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	p := newProgress(loggerFromContext(ctx))

	cfg, err := resolveConfig(cmd, config.KindTrajectory)
	if err != nil {
		return err
	}
	obs, err := observer.LoadTrajectories(args[0])
	if err != nil {
		return err
	}
	scale, err := colorScale(cfg)
	if err != nil {
		return err
	}

	wd, err := scene.Trajectory(obs, cfg.TrajectoryOptions(), scale)
	if err != nil {
		return err
	}
	if err := emit(ctx, wd, cfg, artifactName(args[0])); err != nil {
		return err
	}
	if err := saveColors(scale); err != nil {
		return err
	}
	p.done("rendered trajectories", "id", wd.ID, "lines", len(wd.Legend), "recorded", len(obs.Paths))
	return nil
}

func runVolume(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	p := newProgress(loggerFromContext(ctx))

	cfg, err := resolveConfig(cmd, config.KindVolume)
	if err != nil {
		return err
	}
	worlds, err := loadWorlds(args)
	if err != nil {
		return err
	}
	scale, err := colorScale(cfg)
	if err != nil {
		return err
	}

	data, err := world.Extract(worlds[0], world.Options{Species: cfg.Species})
	if err != nil {
		return err
	}
	points := make([][]geom.Vec3, len(data))
	names := make([]string, len(data))
	for i, sp := range data {
		points[i] = sp.Points()
		names[i] = sp.Name
	}

	opts := cfg.VolumeOptions()
	opts.Colors = scale.Colors(names)
	wd, err := scene.DenseArray(points, opts, scale)
	if err != nil {
		return err
	}
	if err := emit(ctx, wd, cfg, artifactName(args[0])); err != nil {
		return err
	}
	if err := saveColors(scale); err != nil {
		return err
	}
	p.done("rendered volume", "id", wd.ID, "species", len(names), "length", opts.Length)
	return nil
}

func limits(flag string, v []float64) (*[2]float64, error) {
	switch len(v) {
	case 0:
		return nil, nil
	case 2:
		return &[2]float64{v[0], v[1]}, nil
	default:
		return nil, fmt.Errorf("--%s needs 2 values, got %d", flag, len(v))
	}
}

func runChart(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	p := newProgress(loggerFromContext(ctx))

	cfg, err := resolveConfig(cmd, config.KindChart)
	if err != nil {
		return err
	}
	obs := make([]observer.NumberObserver, 0, len(args))
	for _, path := range args {
		o, err := observer.LoadNumbers(path)
		if err != nil {
			return err
		}
		obs = append(obs, o)
	}
	scale, err := colorScale(cfg)
	if err != nil {
		return err
	}

	opts := cfg.ChartOptions()
	opts.X, opts.Y = xSeries, ySeries
	opts.XLabel, opts.YLabel = xLabel, yLabel
	opts.HideLegend = noLegend
	if opts.XLim, err = limits("xlim", xLim); err != nil {
		return err
	}
	if opts.YLim, err = limits("ylim", yLim); err != nil {
		return err
	}

	switch cfg.Format {
	case "term":
		cd, err := scene.ResolveCharts(obs, opts, scale)
		if err != nil {
			return err
		}
		fmt.Println(viz.Graph(cd, 80, 15))
	case render.FormatPNG, render.FormatSVG:
		cd, err := scene.ResolveCharts(obs, opts, scale)
		if err != nil {
			return err
		}
		a, err := render.ChartArtifact(cd, artifactName(args[0]), cfg.Width, cfg.Height, cfg.Format, scale.Config())
		if err != nil {
			return err
		}
		if err := display(ctx, a); err != nil {
			return err
		}
	default:
		wd, err := scene.NumberCharts(obs, opts, scale)
		if err != nil {
			return err
		}
		if err := emit(ctx, wd, cfg, artifactName(args[0])); err != nil {
			return err
		}
	}
	if err := saveColors(scale); err != nil {
		return err
	}
	p.done("rendered chart", "observers", len(obs))
	return nil
}

func runView(cmd *cobra.Command, args []string) error {
	interactive = true
	if asTrajectory {
		return runTrajectory(cmd, args[:1])
	}
	if len(args) > 1 {
		return runMovie(cmd, args)
	}
	return runWorld(cmd, args)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger := loggerFromContext(ctx)

	gallery := render.NewGallery(render.GalleryConfig{Bind: bind, Port: port}, logger)
	st := storage.New(dataDir)
	stored, err := st.List()
	if err != nil {
		return err
	}
	for _, meta := range stored {
		a, err := st.Artifact(meta.ID)
		if err != nil {
			logger.Warn("skipping artifact", "id", meta.ID, "err", err)
			continue
		}
		if err := gallery.Display(ctx, a); err != nil {
			return err
		}
	}

	logger.Info("serving artifacts", "addr", "http://"+gallery.Addr(), "count", len(gallery.List()))
	return gallery.ListenAndServe(ctx)
}

func runColors(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if configFile != "" {
		if err := config.Decode(configFile, cfg); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}
	scale, err := colorScale(cfg)
	if err != nil {
		return err
	}

	keys := args
	if len(keys) == 0 {
		for i, c := range colorscale.Palette() {
			dot := lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Render("●")
			fmt.Printf("  %2d %s %s\n", i, dot, c)
		}
		return nil
	}
	for _, k := range keys {
		c := scale.Color(k)
		fmt.Printf("  %s %-16s %s\n", scale.Style(k).Render("●"), k, c)
	}
	return saveColors(scale)
}

func listArtifacts(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	stored, err := st.List()
	if err != nil {
		return err
	}

	if len(stored) == 0 {
		fmt.Println("no artifacts found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tKIND\tCREATED\tSIZE\tSPECIES")

	for _, meta := range stored {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			meta.ID,
			meta.Name,
			meta.Kind,
			meta.Created.Format("2006-01-02 15:04:05"),
			meta.Bytes,
			strings.Join(meta.Species, ","),
		)
	}

	return w.Flush()
}
