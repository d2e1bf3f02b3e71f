package main

import (
	"flag"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/appengine-ltd/mapgen/internal/hostapi"
	"github.com/appengine-ltd/mapgen/internal/mapgen"
	"github.com/appengine-ltd/mapgen/internal/palette"
	"github.com/appengine-ltd/mapgen/internal/worldstats"
)

func main() {
	var configPath string
	var outPath string
	var pngPath string
	var layerName string
	var statsPath string
	var verbose bool

	var seed uint64
	var width int
	var height int
	var worldType string
	var provinces int
	var includeRivers bool

	flag.StringVar(&configPath, "config", "", "JSON config file (defaults apply when empty)")
	flag.StringVar(&outPath, "out", "-", "output path for the result JSON, - for stdout")
	flag.StringVar(&pngPath, "png", "", "optional PNG preview path")
	flag.StringVar(&layerName, "layer", "biomes", "layer rendered to -png")
	flag.StringVar(&statsPath, "stats", "", "optional summary JSON path")
	flag.BoolVar(&verbose, "v", false, "log every pipeline stage")
	flag.Uint64Var(&seed, "seed", 0, "override config seed")
	flag.IntVar(&width, "width", 0, "override config width")
	flag.IntVar(&height, "height", 0, "override config height")
	flag.StringVar(&worldType, "world-type", "", "override config world type")
	flag.IntVar(&provinces, "provinces", 0, "override config province count")
	flag.BoolVar(&includeRivers, "include-rivers", false, "include river paths in the result")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := hostapi.DefaultConfig()
	if strings.TrimSpace(configPath) != "" {
		loaded, err := hostapi.LoadConfig(configPath)
		if err != nil {
			die(err.Error())
		}
		cfg = loaded
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed = seed
		case "width":
			cfg.Width = width
		case "height":
			cfg.Height = height
		case "world-type":
			cfg.WorldType = worldType
		case "provinces":
			cfg.TotalProvinces = provinces
		case "include-rivers":
			cfg.IncludeRivers = includeRivers
		}
	})

	var layer palette.Layer
	if pngPath != "" {
		l, err := palette.ParseLayer(layerName)
		if err != nil {
			die(err.Error())
		}
		layer = l
	}

	host := hostapi.NewHost(hostapi.HostOptions{Logger: log})
	world, err := host.GenerateWorld(cfg)
	if err != nil {
		die(fmt.Sprintf("generate world: %v", err))
	}
	blob, err := hostapi.EncodeResult(world, hostapi.ResultOptions{IncludeRivers: cfg.IncludeRivers})
	if err != nil {
		die(err.Error())
	}
	if err := writeResult(outPath, os.Stdout, blob); err != nil {
		die(fmt.Sprintf("write result: %v", err))
	}
	if outPath != "" && outPath != "-" {
		fmt.Fprintf(os.Stderr, "wrote %s\n", outPath)
	}

	if pngPath != "" {
		if err := writePNG(pngPath, world, layer); err != nil {
			die(fmt.Sprintf("write png: %v", err))
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", pngPath)
	}

	if statsPath != "" {
		s := worldstats.Summarize(world)
		if err := worldstats.WriteSummary(statsPath, s); err != nil {
			die(fmt.Sprintf("write stats: %v", err))
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", statsPath)
		fmt.Fprintf(os.Stderr, "world=%s elev(p10/p50/p90)=%.2f/%.2f/%.2f land=%.3f lake=%.3f rivers=%d regions=%d\n",
			s.WorldType,
			s.ElevP10,
			s.ElevP50,
			s.ElevP90,
			s.LandRatio,
			s.LakeCoverage,
			s.Rivers,
			s.Regions,
		)
	}
}

// writeResult sends blob to stdout when path is empty or "-", otherwise to
// the file at path.
func writeResult(path string, stdout io.Writer, blob []byte) error {
	if path == "" || path == "-" {
		_, err := stdout.Write(append(blob, '\n'))
		return err
	}
	return writeFile(path, blob)
}

func writeFile(path string, blob []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, append(blob, '\n'), 0o644)
}

func writePNG(path string, world *mapgen.World, layer palette.Layer) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, palette.Render(world, layer)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func die(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
