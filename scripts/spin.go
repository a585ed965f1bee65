package scripts

import (
	"fmt"

	"Puzzle3D/internal/behaviour"

	"github.com/go-gl/mathgl/mgl32"
)

// SpinScript rotates its object continuously, the idle animation for loose
// puzzle pieces waiting to be picked up.
type SpinScript struct {
	behaviour.BaseComponent
	Speed float32 // Degrees per second
	Axis  mgl32.Vec3
}

func init() {
	behaviour.RegisterScript("SpinScript", func() behaviour.Component {
		return &SpinScript{Speed: 45.0, Axis: mgl32.Vec3{0, 1, 0}}
	})
}

// Configure accepts "speed" (degrees per second, any sign) and "axis"
// (3-element list, must be non-zero).
func (s *SpinScript) Configure(params map[string]any) error {
	for key, value := range params {
		switch key {
		case "speed":
			v, err := paramFloat(value)
			if err != nil {
				return fmt.Errorf("spin speed: %w", err)
			}
			s.Speed = v
		case "axis":
			v, err := paramVec3(value)
			if err != nil {
				return fmt.Errorf("spin axis: %w", err)
			}
			if v.ApproxEqual(mgl32.Vec3{}) {
				return fmt.Errorf("spin axis must be non-zero")
			}
			s.Axis = v.Normalize()
		default:
			return fmt.Errorf("spin script: unknown param %q", key)
		}
	}
	return nil
}

func (s *SpinScript) Update(dt float32) {
	if obj := s.GetGameObject(); obj != nil {
		obj.Transform.Rotate(s.Axis, mgl32.DegToRad(s.Speed*dt))
	}
}
