package mapgen

import (
	"math"

	"github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// fractalNoise layers octaves of normalized simplex noise.
type fractalNoise struct {
	octaves    int
	amplitudes []float64
	norm       float64
	os         opensimplex.Noise
}

func newFractalNoise(seed int64, octaves int, persistence float64) *fractalNoise {
	if octaves < 1 {
		octaves = 1
	}
	n := &fractalNoise{
		octaves:    octaves,
		amplitudes: make([]float64, octaves),
		os:         opensimplex.NewNormalized(seed),
	}
	for i := range n.amplitudes {
		n.amplitudes[i] = math.Pow(persistence, float64(i))
		n.norm += n.amplitudes[i]
	}
	return n
}

// Eval2 returns a value in [0,1].
func (n *fractalNoise) Eval2(x, y float64) float64 {
	sum := 0.0
	freq := 1.0
	for i := 0; i < n.octaves; i++ {
		sum += n.amplitudes[i] * n.os.Eval2(x*freq, y*freq)
		freq *= 2
	}
	return sum / n.norm
}

// jitterNoise wraps Perlin noise for small climate perturbations.
type jitterNoise struct {
	p     *perlin.Perlin
	scale float64
}

func newJitterNoise(seed int64, scale float64) *jitterNoise {
	return &jitterNoise{p: perlin.NewPerlin(2, 2, 3, seed), scale: scale}
}

// Eval2 returns a value roughly in [-1,1] for map-relative coordinates.
func (j *jitterNoise) Eval2(u, v float64) float64 {
	return clampFloat(j.p.Noise2D(u*j.scale, v*j.scale)*1.6, -1, 1)
}
