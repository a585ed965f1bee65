package scripts

import (
	"fmt"

	"Puzzle3D/internal/behaviour"
	"Puzzle3D/internal/interaction"
	"Puzzle3D/internal/logger"

	"go.uber.org/zap"
)

// BlinkScript pulses the object's highlight on and off, attract-mode style.
// It needs a Highlighter on the same object; without one it stays inert.
type BlinkScript struct {
	behaviour.BaseComponent
	Interval float32 // Seconds per half-cycle

	target *interaction.Highlighter
	timer  float32
	lit    bool
}

func init() {
	behaviour.RegisterScript("BlinkScript", func() behaviour.Component {
		return &BlinkScript{Interval: 0.5}
	})
}

// Configure accepts "interval" (seconds per half-cycle, must be positive).
func (b *BlinkScript) Configure(params map[string]any) error {
	for key, value := range params {
		switch key {
		case "interval":
			v, err := paramFloat(value)
			if err != nil {
				return fmt.Errorf("blink interval: %w", err)
			}
			if v <= 0 {
				return fmt.Errorf("blink interval must be positive, got %v", v)
			}
			b.Interval = v
		default:
			return fmt.Errorf("blink script: unknown param %q", key)
		}
	}
	return nil
}

func (b *BlinkScript) Start() {
	obj := b.GetGameObject()
	if obj == nil {
		return
	}
	target, ok := behaviour.ComponentOf[*interaction.Highlighter](obj)
	if !ok {
		logger.Log.Warn("Blink script found no highlighter, staying inert",
			zap.String("object", obj.Name))
		return
	}
	b.target = target
}

func (b *BlinkScript) Update(dt float32) {
	if b.target == nil {
		return
	}
	b.timer += dt
	if b.timer < b.Interval {
		return
	}
	b.timer -= b.Interval
	b.lit = !b.lit
	if b.lit {
		b.target.SetFlagged()
	} else {
		b.target.Restore()
	}
}

// OnDestroy restores the highlight so a torn-down blinker never leaves its
// object stuck in the flagged color.
func (b *BlinkScript) OnDestroy() {
	if b.target != nil && b.lit {
		b.target.Restore()
		b.lit = false
	}
}
