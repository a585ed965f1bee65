package scripts

import (
	"fmt"
	"math/rand"

	"Puzzle3D/internal/behaviour"

	perlin "github.com/aquilax/go-perlin"
)

// HoverScript drifts its object vertically on smooth noise, the floaty idle
// for pieces that are not socketed yet. Same seed, same trajectory.
type HoverScript struct {
	behaviour.BaseComponent
	Amplitude float32 // Units of vertical drift
	Speed     float32 // Noise samples per second

	noise *perlin.Perlin
	baseY float32
	clock float32
}

func init() {
	behaviour.RegisterScript("HoverScript", func() behaviour.Component {
		return &HoverScript{Amplitude: 0.25, Speed: 1.0}
	})
}

// Configure accepts "amplitude" (units, must not be negative), "speed"
// (noise samples per second) and "seed" (integer, for reproducible drift).
func (h *HoverScript) Configure(params map[string]any) error {
	for key, value := range params {
		switch key {
		case "amplitude":
			v, err := paramFloat(value)
			if err != nil {
				return fmt.Errorf("hover amplitude: %w", err)
			}
			if v < 0 {
				return fmt.Errorf("hover amplitude must not be negative, got %v", v)
			}
			h.Amplitude = v
		case "speed":
			v, err := paramFloat(value)
			if err != nil {
				return fmt.Errorf("hover speed: %w", err)
			}
			h.Speed = v
		case "seed":
			v, err := paramInt(value)
			if err != nil {
				return fmt.Errorf("hover seed: %w", err)
			}
			h.noise = perlin.NewPerlin(2, 2, 3, v)
		default:
			return fmt.Errorf("hover script: unknown param %q", key)
		}
	}
	return nil
}

func (h *HoverScript) Start() {
	if h.noise == nil {
		h.noise = perlin.NewPerlin(2, 2, 3, rand.Int63())
	}
	if obj := h.GetGameObject(); obj != nil {
		h.baseY = obj.Transform.Position.Y()
	}
}

func (h *HoverScript) Update(dt float32) {
	obj := h.GetGameObject()
	if obj == nil || h.noise == nil {
		return
	}
	h.clock += dt * h.Speed
	offset := float32(h.noise.Noise1D(float64(h.clock))) * h.Amplitude
	obj.Transform.Position[1] = h.baseY + offset
}
