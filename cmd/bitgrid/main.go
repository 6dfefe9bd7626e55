package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/san-kum/bitgrid/internal/config"
	"github.com/san-kum/bitgrid/internal/export"
	"github.com/san-kum/bitgrid/internal/format"
	"github.com/san-kum/bitgrid/internal/grid"
	"github.com/san-kum/bitgrid/internal/gui"
	"github.com/san-kum/bitgrid/internal/logging"
	"github.com/san-kum/bitgrid/internal/preview"
	"github.com/san-kum/bitgrid/internal/tui"
	"github.com/san-kum/bitgrid/internal/view"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// defaultConfigFile is read when present and --config is not given.
const defaultConfigFile = "bitgrid.yaml"

// defaultTUILog receives log output while the terminal editor owns the screen.
const defaultTUILog = "bitgrid.log"

var (
	configFile string
	file       string
	width      int
	height     int
	logLevel   string
	logFormat  string
	// edit / tui
	strict bool
	// tui
	logFile string
	// new
	force bool
	// show
	blocks bool
	stats  bool
	// export
	svgOut string
	pngOut string
	scale  int
	// config
	writeConfig string
)

// main builds the command tree; with no subcommand the window editor opens.
// It exits with status 1 if the command returns an error.
func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "bitgrid",
		Short:        "on/off grid editor for LED matrix frames",
		SilenceUsage: true,
		RunE:         runEdit,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (yaml), default ./"+defaultConfigFile+" if present")
	pf.StringVarP(&file, "file", "f", config.DefaultFile, "grid file")
	pf.IntVar(&width, "width", config.DefaultWidth, "grid width for a new grid")
	pf.IntVar(&height, "height", config.DefaultHeight, "grid height for a new grid")
	pf.StringVar(&logLevel, "log-level", "info", "log level")
	pf.StringVar(&logFormat, "log-format", "text", "log format (text, json)")
	rootCmd.Flags().BoolVar(&strict, "strict", false, "fail instead of starting empty when the file cannot be parsed")

	editCmd := &cobra.Command{
		Use:   "edit",
		Short: "edit the grid in a window",
		Args:  cobra.NoArgs,
		RunE:  runEdit,
	}
	editCmd.Flags().BoolVar(&strict, "strict", false, "fail instead of starting empty when the file cannot be parsed")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "edit the grid in the terminal",
		Long: "Edit the grid in the terminal. The screen is taken over while editing, so log\n" +
			"lines are appended to --log-file (default " + defaultTUILog + " in the current\n" +
			"directory). Pass --log-file \"\" to discard them.",
		Args: cobra.NoArgs,
		RunE: runTUI,
	}
	tuiCmd.Flags().BoolVar(&strict, "strict", false, "fail instead of starting empty when the file cannot be parsed")
	tuiCmd.Flags().StringVar(&logFile, "log-file", defaultTUILog, "file that receives log lines while the terminal editor runs")

	newCmd := &cobra.Command{
		Use:   "new",
		Short: "write an empty grid file",
		Args:  cobra.NoArgs,
		RunE:  runNew,
	}
	newCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "print the grid in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runShow,
	}
	showCmd.Flags().BoolVar(&blocks, "blocks", false, "one character per cell instead of braille")
	showCmd.Flags().BoolVar(&stats, "stats", false, "plot lit cells per column and row")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "verify the file parses and its bit-string matches the rows",
		Args:  cobra.NoArgs,
		RunE:  runCheck,
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "render the grid to SVG and/or PNG",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}
	exportCmd.Flags().StringVar(&svgOut, "svg", "", "svg output path")
	exportCmd.Flags().StringVar(&pngOut, "png", "", "png output path")
	exportCmd.Flags().IntVar(&scale, "scale", config.DefaultMaxScale, "pixels per cell")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  runConfig,
	}
	configCmd.Flags().StringVar(&writeConfig, "write", "", "save the effective configuration to this yaml file instead of printing it")

	rootCmd.AddCommand(editCmd, tuiCmd, newCmd, showCmd, checkCmd, exportCmd, configCmd)
	return rootCmd
}

// loadConfig merges defaults, the config file, .env / environment and
// explicitly set flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	path := configFile
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(".env"); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.File = file
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setup(cmd *cobra.Command) (*config.Config, *logrus.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// openGrid loads cfg.File. A missing file gives an empty grid; an unreadable
// or malformed one also gives an empty grid with a warning unless strict.
func openGrid(cfg *config.Config, log *logrus.Logger, strict bool) (*grid.Grid, error) {
	entry := log.WithField("file", cfg.File)

	doc, err := format.Load(cfg.File)
	switch {
	case err == nil:
		if doc.BitString != "" && !doc.Consistent() {
			entry.Warn("bit-string does not match the rows; it will be rewritten on save")
		}
		entry.WithFields(logrus.Fields{"width": doc.Grid.Width(), "height": doc.Grid.Height()}).Info("grid loaded")
		return doc.Grid, nil
	case errors.Is(err, fs.ErrNotExist):
		entry.WithFields(logrus.Fields{"width": cfg.Width, "height": cfg.Height}).Info("no grid file, starting empty")
	case strict:
		return nil, err
	default:
		entry.WithError(err).Warn("could not load grid, starting empty; saving will overwrite the file")
	}
	return grid.New(cfg.Width, cfg.Height), nil
}

func saverFor(cfg *config.Config) view.Saver {
	return func(g *grid.Grid) error {
		return format.Save(cfg.File, g, format.WithDeclaration(cfg.Declaration))
	}
}

func paletteFor(cfg *config.Config) (view.Palette, error) {
	p := cfg.Palette
	return view.PaletteFromHex(p.Background, p.On, p.Off, p.Grid)
}

func runEdit(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	g, err := openGrid(cfg, log, strict)
	if err != nil {
		return err
	}
	palette, err := paletteFor(cfg)
	if err != nil {
		return err
	}

	gui.Run(g, saverFor(cfg), gui.Options{
		File:     cfg.File,
		Margin:   cfg.View.Margin,
		MaxScale: cfg.View.MaxScale,
		FPS:      cfg.View.FPS,
		Palette:  palette,
		Log:      log,
	})
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	closeLog, err := redirectLog(log, logFile)
	if err != nil {
		return err
	}
	defer closeLog()

	g, err := openGrid(cfg, log, strict)
	if err != nil {
		return err
	}
	palette, err := paletteFor(cfg)
	if err != nil {
		return err
	}
	return tui.Run(g, saverFor(cfg), palette, cfg.File, log)
}

// redirectLog points log at path, or discards it when path is empty. Log
// lines written to the terminal would tear the alternate screen.
func redirectLog(log *logrus.Logger, path string) (func() error, error) {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() error { return nil }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	log.SetOutput(f)
	return f.Close, nil
}

func runNew(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	if _, err := os.Stat(cfg.File); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfg.File)
	}

	g := grid.New(cfg.Width, cfg.Height)
	if err := saverFor(cfg)(g); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"file": cfg.File, "width": cfg.Width, "height": cfg.Height}).Info("grid created")
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup(cmd)
	if err != nil {
		return err
	}
	doc, err := format.Load(cfg.File)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	g := doc.Grid
	fmt.Fprintf(out, "%s: %dx%d, %d lit\n\n", cfg.File, g.Width(), g.Height(), g.Count())
	if blocks {
		fmt.Fprint(out, preview.Blocks(g, '█', '·'))
	} else {
		fmt.Fprint(out, preview.FromGrid(g).String())
	}
	if stats {
		fmt.Fprintln(out)
		fmt.Fprint(out, preview.Density(g, 8))
	}
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup(cmd)
	if err != nil {
		return err
	}
	doc, err := format.Load(cfg.File)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %dx%d\n", cfg.File, doc.Grid.Width(), doc.Grid.Height())
	if !doc.Consistent() {
		if doc.BitString == "" {
			return fmt.Errorf("%s: no bit-string after the rows", cfg.File)
		}
		return fmt.Errorf("%s: bit-string %q does not match rows %q", cfg.File, doc.BitString, doc.Grid.BitString())
	}
	fmt.Fprintln(out, "ok")
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	if svgOut == "" && pngOut == "" {
		return errors.New("nothing to export: pass --svg and/or --png")
	}
	if scale <= 0 {
		return fmt.Errorf("scale %d must be positive", scale)
	}
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	doc, err := format.Load(cfg.File)
	if err != nil {
		return err
	}
	palette, err := paletteFor(cfg)
	if err != nil {
		return err
	}

	if svgOut != "" {
		if err := os.WriteFile(svgOut, []byte(export.GridToSVG(doc.Grid, scale, palette)), 0644); err != nil {
			return err
		}
		log.WithField("file", svgOut).Info("svg written")
	}
	if pngOut != "" {
		f, err := os.Create(pngOut)
		if err != nil {
			return err
		}
		if err := export.WritePNG(f, doc.Grid, scale, palette); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		log.WithField("file", pngOut).Info("png written")
	}
	return nil
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if writeConfig != "" {
		if err := config.Save(writeConfig, cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", writeConfig)
		return nil
	}
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
