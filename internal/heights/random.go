package heights

import (
	"context"
	"math"
	"math/rand"
)

// MaxHeight is the top of the height scale used by the remote source and the
// colour gradient.
const MaxHeight = 1000

// GenConfig drives random grid generation.
type GenConfig struct {
	Rows, Cols             int
	MinIslands, MaxIslands int
	MinRadius, MaxRadius   int
	Roughness              float64 // 0 gives smooth cones, 1 very ragged coasts
	Rand                   *rand.Rand
}

// DefaultGenConfig returns settings that resemble the remote 30x30 maps.
func DefaultGenConfig(rows, cols int, rng *rand.Rand) GenConfig {
	return GenConfig{
		Rows:       rows,
		Cols:       cols,
		MinIslands: 4,
		MaxIslands: 9,
		MinRadius:  2,
		MaxRadius:  6,
		Roughness:  0.35,
		Rand:       rng,
	}
}

// Generate builds a grid of conical islands with noisy coasts. At least one
// land tile is always present.
func Generate(cfg GenConfig) Grid {
	g := Grid{Rows: cfg.Rows, Cols: cfg.Cols, Heights: make([]int, cfg.Rows*cfg.Cols)}
	rng := cfg.Rand

	n := cfg.MinIslands
	if cfg.MaxIslands > cfg.MinIslands {
		n += rng.Intn(cfg.MaxIslands - cfg.MinIslands + 1)
	}
	for i := 0; i < n; i++ {
		cx, cy := rng.Intn(cfg.Cols), rng.Intn(cfg.Rows)
		radius := cfg.MinRadius
		if cfg.MaxRadius > cfg.MinRadius {
			radius += rng.Intn(cfg.MaxRadius - cfg.MinRadius + 1)
		}
		peak := 100 + rng.Intn(MaxHeight-99)
		raise(g, cx, cy, radius, peak, cfg.Roughness, rng)
	}

	for _, h := range g.Heights {
		if h > 0 {
			return g
		}
	}
	g.Heights[rng.Intn(len(g.Heights))] = 1 + rng.Intn(MaxHeight)
	return g
}

// raise stamps one cone onto g, keeping the higher value where cones overlap.
func raise(g Grid, cx, cy, radius, peak int, roughness float64, rng *rand.Rand) {
	r := float64(radius)
	for y := cy - radius; y <= cy+radius; y++ {
		for x := cx - radius; x <= cx+radius; x++ {
			if x < 0 || x >= g.Cols || y < 0 || y >= g.Rows {
				continue
			}
			d := math.Hypot(float64(x-cx), float64(y-cy))
			falloff := 1 - d/(r+1)
			falloff += (rng.Float64()*2 - 1) * roughness * (1 - falloff)
			if falloff <= 0 {
				continue
			}
			h := int(float64(peak) * falloff)
			if h < 1 {
				continue
			}
			if h > MaxHeight {
				h = MaxHeight
			}
			idx := y*g.Cols + x
			if h > g.Heights[idx] {
				g.Heights[idx] = h
			}
		}
	}
}

// RandomSource generates a new grid every round from one random stream.
type RandomSource struct {
	cfg GenConfig
}

// NewRandomSource returns a source seeded with seed.
func NewRandomSource(rows, cols int, seed int64) *RandomSource {
	return &RandomSource{cfg: DefaultGenConfig(rows, cols, rand.New(rand.NewSource(seed)))}
}

// Fetch returns the next generated grid.
func (s *RandomSource) Fetch(ctx context.Context) (Grid, error) {
	if err := ctx.Err(); err != nil {
		return Grid{}, err
	}
	return Generate(s.cfg), nil
}
