package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"geopan/internal/affine"
	"geopan/internal/config"
	"geopan/internal/geom"
	"geopan/internal/interaction"
	"geopan/internal/logging"
	"geopan/internal/raster"
	"geopan/internal/render"
	"geopan/internal/tui"
)

func main() {
	var (
		cfgPath  = flag.String("config", "", "config file (default $GEOPAN_CONFIG or ./geopan.yaml)")
		region   = flag.String("region", "", "region shown first")
		snapshot = flag.String("snapshot", "", "render the region to this PNG file and exit")
		zoom     = flag.Int("zoom", 0, "zoom-in steps applied before the snapshot")
		commands = flag.String("commands", "", "write the snapshot's draw commands as JSON to this file")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: geopan [flags] [dataset path]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(*cfgPath, *region, *snapshot, *commands, *zoom, flag.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, "geopan:", err)
		os.Exit(1)
	}
}

func run(cfgPath, region, snapshot, commands string, zoom int, dataPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if region != "" {
		cfg.Dataset.Region = region
	}
	if dataPath != "" {
		cfg.Dataset.Path = dataPath
	}

	logOut, err := logging.OpenFile(cfg.Logging.File)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logOut.Close()
	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    logOut,
	})

	ds, err := geom.LoadDataset(cfg.Dataset.Path)
	if err != nil {
		return fmt.Errorf("load dataset %s: %w", cfg.Dataset.Path, err)
	}

	if snapshot != "" || commands != "" {
		return renderSnapshot(cfg, ds, snapshot, commands, zoom)
	}

	opts := cfg.View.ViewOption()
	// labels are offset in braille dots, not pixels
	opts.Font.Size = cfg.View.TerminalFontSize
	m := tui.New(tui.Options{
		Dataset:     ds,
		DatasetPath: cfg.Dataset.Path,
		Region:      cfg.Dataset.Region,
		View:        opts,
		Watch:       cfg.Dataset.Watch,
	})
	defer m.Close()
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		return err
	}
	return nil
}

// renderSnapshot draws the configured region headlessly, zoomed in zoom
// steps about the centre, to a PNG and/or a draw-command log.
func renderSnapshot(cfg *config.Config, ds *geom.Dataset, pngPath, cmdPath string, zoom int) error {
	coll, ok := ds.Region(cfg.Dataset.Region)
	if !ok {
		return fmt.Errorf("unknown region %q (have %v)", cfg.Dataset.Region, ds.Names())
	}
	bg, err := render.ParseColor(cfg.View.Background)
	if err != nil {
		return err
	}
	opts := cfg.View.ViewOption()

	if pngPath != "" {
		c := raster.NewCanvas(cfg.View.Width, cfg.View.Height, bg)
		if err := drive(c, coll, opts, zoom); err != nil {
			return err
		}
		if err := c.SavePNG(pngPath); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		logging.Info().Str("region", coll.Name).Str("file", pngPath).Int("zoom", zoom).Msg("snapshot written")
	}
	if cmdPath != "" {
		rec := render.NewRecorder(cfg.View.Width, cfg.View.Height)
		if err := drive(rec, coll, opts, zoom); err != nil {
			return err
		}
		data, err := rec.MarshalJSON()
		if err != nil {
			return err
		}
		if err := os.WriteFile(cmdPath, data, 0o644); err != nil {
			return fmt.Errorf("write commands: %w", err)
		}
	}
	return nil
}

func drive(s render.Surface, coll geom.Collection, opts render.ViewOption, zoom int) error {
	composer := affine.NewComposer()
	p := render.NewPipeline(s, composer, render.RandomPalette{})
	w, h := s.Size()
	ctl := interaction.New(composer, w, h, func(req affine.Transform) error {
		return p.Render(coll, opts, req)
	})
	if err := ctl.Redraw(); err != nil {
		return err
	}
	for i := 0; i < zoom; i++ {
		if err := ctl.ZoomIn(); err != nil {
			return err
		}
	}
	return nil
}
