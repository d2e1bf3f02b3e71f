//go:build cgo
// +build cgo

package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/appengine-ltd/mapgen/internal/gui"
	"github.com/appengine-ltd/mapgen/internal/hostapi"
	"github.com/appengine-ltd/mapgen/internal/mapgen"
	"github.com/appengine-ltd/mapgen/internal/palette"
)

// version, commit, date are injected at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		showVersion bool
		configPath  string
		seed        uint64
		worldType   string
		layerName   string
		verbose     bool
	)

	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.StringVar(&configPath, "config", "", "JSON config file (defaults apply when empty)")
	flag.Uint64Var(&seed, "seed", 0, "override config seed")
	flag.StringVar(&worldType, "world-type", "", "override config world type")
	flag.StringVar(&layerName, "layer", "biomes", "initial layer")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	if showVersion {
		fmt.Printf("mapview %s (%s) %s\n", version, commit, date)
		return
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := hostapi.DefaultConfig()
	if strings.TrimSpace(configPath) != "" {
		loaded, err := hostapi.LoadConfig(configPath)
		if err != nil {
			fail(err)
		}
		cfg = loaded
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed = seed
		case "world-type":
			cfg.WorldType = worldType
		}
	})
	layer, err := palette.ParseLayer(layerName)
	if err != nil {
		fail(err)
	}

	host := hostapi.NewHost(hostapi.HostOptions{Logger: log})
	world, err := host.GenerateWorld(cfg)
	if err != nil {
		fail(err)
	}

	app := gui.NewApp(gui.AppConfig{
		World: world,
		Regenerate: func(seed uint64) (*mapgen.World, error) {
			next := cfg
			next.Seed = seed
			return host.GenerateWorld(next)
		},
		Layer:  layer,
		Logger: log,
	})
	if err := app.Run(); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
