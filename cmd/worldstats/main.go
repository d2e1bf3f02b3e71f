package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/appengine-ltd/mapgen/internal/hostapi"
	"github.com/appengine-ltd/mapgen/internal/mapgen"
	"github.com/appengine-ltd/mapgen/internal/worldstats"
)

func main() {
	var force bool
	var only string
	var outDir string
	var seed uint64
	var width int
	var height int
	var provinces int

	flag.BoolVar(&force, "force", false, "regenerate summaries even if JSON exists")
	flag.StringVar(&only, "only", "", "summarize only one world type")
	flag.StringVar(&outDir, "out", filepath.Join("assets", "worldstats"), "output directory")
	flag.Uint64Var(&seed, "seed", 42, "generation seed")
	flag.IntVar(&width, "width", 256, "map width in cells")
	flag.IntVar(&height, "height", 128, "map height in cells")
	flag.IntVar(&provinces, "provinces", 120, "total province count")
	flag.Parse()

	var types []mapgen.WorldType
	for _, wt := range mapgen.WorldTypes() {
		if only != "" && !strings.EqualFold(only, wt.String()) {
			continue
		}
		types = append(types, wt)
	}
	if len(types) == 0 {
		msg := fmt.Sprintf("unknown world type %q", only)
		if hint := hostapi.SuggestWorldType(only); hint != "" {
			msg += fmt.Sprintf(" (did you mean %s?)", hint)
		}
		die(fmt.Errorf("%s", msg))
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		die(err)
	}

	host := hostapi.NewHost(hostapi.HostOptions{
		Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
	})

	wrote := 0
	skipped := 0
	failed := 0
	for _, wt := range types {
		outPath := filepath.Join(outDir, strings.ToLower(wt.String())+".json")
		if !force {
			if _, err := os.Stat(outPath); err == nil {
				fmt.Printf("skip %s (exists)\n", outPath)
				skipped++
				continue
			}
		}

		cfg := hostapi.DefaultConfig()
		cfg.Seed = seed
		cfg.WorldType = wt.String()
		cfg.Width = width
		cfg.Height = height
		cfg.TotalProvinces = provinces
		world, err := host.GenerateWorld(cfg)
		if err != nil {
			fmt.Printf("fail %s: %v\n", wt, err)
			failed++
			continue
		}
		if err := worldstats.WriteSummary(outPath, worldstats.Summarize(world)); err != nil {
			fmt.Printf("fail write %s: %v\n", outPath, err)
			failed++
			continue
		}
		fmt.Printf("wrote %s\n", outPath)
		wrote++
	}

	fmt.Printf("done wrote=%d skipped=%d failed=%d\n", wrote, skipped, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func die(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
