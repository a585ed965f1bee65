package scripts

import (
	"fmt"

	"Puzzle3D/internal/behaviour"
	"Puzzle3D/internal/interaction"
	"Puzzle3D/internal/logger"

	"go.uber.org/zap"
)

// AutoCloseScript closes the object's door again after it has stood fully
// open for Delay seconds. It needs a DoorOpener on the same object; without
// one it stays inert.
type AutoCloseScript struct {
	behaviour.BaseComponent
	Delay float32 // Seconds the door stays open

	door  *interaction.DoorOpener
	timer float32
}

func init() {
	behaviour.RegisterScript("AutoCloseScript", func() behaviour.Component {
		return &AutoCloseScript{Delay: 3.0}
	})
}

// Configure accepts "delay" (seconds, must not be negative).
func (a *AutoCloseScript) Configure(params map[string]any) error {
	for key, value := range params {
		switch key {
		case "delay":
			v, err := paramFloat(value)
			if err != nil {
				return fmt.Errorf("autoclose delay: %w", err)
			}
			if v < 0 {
				return fmt.Errorf("autoclose delay must not be negative, got %v", v)
			}
			a.Delay = v
		default:
			return fmt.Errorf("autoclose script: unknown param %q", key)
		}
	}
	return nil
}

func (a *AutoCloseScript) Start() {
	obj := a.GetGameObject()
	if obj == nil {
		return
	}
	door, ok := behaviour.ComponentOf[*interaction.DoorOpener](obj)
	if !ok {
		logger.Log.Warn("Autoclose script found no door, staying inert",
			zap.String("object", obj.Name))
		return
	}
	a.door = door
}

func (a *AutoCloseScript) Update(dt float32) {
	if a.door == nil {
		return
	}
	if a.door.State() != interaction.DoorOpen {
		a.timer = 0
		return
	}
	a.timer += dt
	if a.timer >= a.Delay {
		a.door.Close()
		a.timer = 0
	}
}
