package hostapi

import (
	"encoding/json"
	"fmt"

	"github.com/appengine-ltd/mapgen/internal/mapgen"
)

// SchemaVersion is bumped whenever Result changes shape.
const SchemaVersion = 1

// Result is the document returned to the host for a full generation.
type Result struct {
	SchemaVersion int            `json:"schemaVersion"`
	Seed          uint64         `json:"seed"`
	WorldType     string         `json:"worldType"`
	Width         int            `json:"width"`
	Height        int            `json:"height"`
	Heightmap     []float32      `json:"heightmap"`
	Biomes        []uint16       `json:"biomes"`
	ProvinceMap   []uint32       `json:"provinceMap"`
	RegionMap     []uint32       `json:"regionMap"`
	Provinces     []ProvinceInfo `json:"provinces"`
	Regions       []RegionInfo   `json:"regions"`
	LandRatio     float64        `json:"landRatio"`
	Rivers        []RiverInfo    `json:"rivers,omitempty"`
}

type ProvinceInfo struct {
	ID      int        `json:"id"`
	IsLand  bool       `json:"isLand"`
	Coastal bool       `json:"coastal"`
	Area    int        `json:"area"`
	Center  [2]float64 `json:"center"`
	Region  int        `json:"region"`
}

type RegionInfo struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	IsLand      bool   `json:"isLand"`
	ProvinceIDs []int  `json:"provinceIds"`
}

type RiverInfo struct {
	Source int    `json:"source"`
	Mouth  int    `json:"mouth"`
	Outlet string `json:"outlet"`
	Path   []int  `json:"path"`
}

// HeightmapResult is the document returned by the heightmap-only entry point.
type HeightmapResult struct {
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Data   []float32 `json:"data"`
}

type ResultOptions struct {
	IncludeRivers bool
}

// BuildResult flattens a World into the host schema. Per-cell and id slices
// are shared with w, not copied.
func BuildResult(w *mapgen.World, opts ResultOptions) Result {
	res := Result{
		SchemaVersion: SchemaVersion,
		Seed:          w.Params.Seed,
		WorldType:     w.Params.WorldType.String(),
		Width:         w.Params.Width,
		Height:        w.Params.Height,
		Heightmap:     w.Heightmap.Data,
		Biomes:        make([]uint16, len(w.Biomes.Data)),
		ProvinceMap:   w.PixelToProvince,
		RegionMap:     w.PixelToRegion,
		Provinces:     make([]ProvinceInfo, len(w.Provinces)),
		Regions:       make([]RegionInfo, len(w.Regions)),
		LandRatio:     w.LandRatio,
	}
	for i, b := range w.Biomes.Data {
		res.Biomes[i] = uint16(b)
	}
	for i, p := range w.Provinces {
		res.Provinces[i] = ProvinceInfo{
			ID:      p.ID,
			IsLand:  p.IsLand,
			Coastal: p.Coastal,
			Area:    p.Area,
			Center:  p.Center,
			Region:  int(w.ProvinceRegion[p.ID]),
		}
	}
	for i, r := range w.Regions {
		res.Regions[i] = RegionInfo{
			ID:          r.ID,
			Name:        r.Name,
			IsLand:      w.Provinces[r.ProvinceIDs[0]].IsLand,
			ProvinceIDs: r.ProvinceIDs,
		}
	}
	if opts.IncludeRivers {
		res.Rivers = make([]RiverInfo, len(w.Rivers.Rivers))
		for i, r := range w.Rivers.Rivers {
			res.Rivers[i] = RiverInfo{
				Source: r.Source,
				Mouth:  r.Mouth,
				Outlet: r.Outlet.String(),
				Path:   r.Path,
			}
		}
	}
	return res
}

// EncodeResult builds and marshals the Result for w.
func EncodeResult(w *mapgen.World, opts ResultOptions) ([]byte, error) {
	out, err := json.Marshal(BuildResult(w, opts))
	if err != nil {
		return nil, fmt.Errorf("%w: encode result: %v", mapgen.ErrInternal, err)
	}
	return out, nil
}
