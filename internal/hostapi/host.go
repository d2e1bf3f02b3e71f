package hostapi

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/appengine-ltd/mapgen/internal/mapgen"
)

type HostOptions struct {
	// Logger receives generation diagnostics. Nil discards them.
	Logger *slog.Logger
	// Parallelism caps worker goroutines per call; 0 uses GOMAXPROCS.
	Parallelism int
}

// Host is the entry point a map viewer or editor binds to. A Host holds no
// per-call state and is safe for concurrent use.
type Host struct {
	log         *slog.Logger
	parallelism int
}

func NewHost(opts HostOptions) *Host {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	log.Debug("mapgen host initialized", "schema_version", SchemaVersion)
	return &Host{log: log, parallelism: opts.Parallelism}
}

// Generate decodes cfgJSON, runs the whole pipeline and returns the encoded
// Result. On error nothing is returned.
func (h *Host) Generate(cfgJSON []byte) ([]byte, error) {
	cfg, err := DecodeConfig(cfgJSON)
	if err != nil {
		return nil, err
	}
	w, err := h.GenerateWorld(cfg)
	if err != nil {
		return nil, err
	}
	return EncodeResult(w, ResultOptions{IncludeRivers: cfg.IncludeRivers})
}

// GenerateWorld runs the pipeline for an already decoded config.
func (h *Host) GenerateWorld(cfg Config) (*mapgen.World, error) {
	if _, ok := mapgen.LookupWorldType(cfg.WorldType); !ok && cfg.WorldType != "" {
		attrs := []any{"world_type", cfg.WorldType, "using", mapgen.WorldEarthLike.String()}
		if hint := SuggestWorldType(cfg.WorldType); hint != "" {
			attrs = append(attrs, "did_you_mean", hint)
		}
		h.log.Warn("unknown world type", attrs...)
	}
	params, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	return mapgen.Generate(params, mapgen.WithLogger(h.log), mapgen.WithParallelism(h.parallelism))
}

// GenerateHeightmap runs only the elevation stage with default settings and
// returns the encoded HeightmapResult.
func (h *Host) GenerateHeightmap(seed uint64, width, height int) ([]byte, error) {
	hm, err := mapgen.GenerateHeightmapOnly(seed, width, height)
	if err != nil {
		return nil, err
	}
	out, err := json.Marshal(HeightmapResult{Width: hm.Width, Height: hm.Height, Data: hm.Data})
	if err != nil {
		return nil, fmt.Errorf("%w: encode heightmap: %v", mapgen.ErrInternal, err)
	}
	return out, nil
}
