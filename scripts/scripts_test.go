package scripts

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Puzzle3D/internal/behaviour"
	"Puzzle3D/internal/interaction"
	"Puzzle3D/internal/visual"
)

func TestBundledScriptsAreRegistered(t *testing.T) {
	for _, name := range []string{"SpinScript", "BlinkScript", "AutoCloseScript", "HoverScript"} {
		assert.True(t, behaviour.ScriptRegistered(name), "%s must self-register", name)
	}
}

func TestSpinScriptRotatesOverTime(t *testing.T) {
	obj := behaviour.NewGameObject("gem")
	spin := &SpinScript{Speed: 90, Axis: mgl32.Vec3{0, 1, 0}}
	obj.AddComponent(spin)

	for i := 0; i < 10; i++ {
		spin.Update(0.1)
	}

	// 90 deg/s for one second is a quarter turn about Y.
	want := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0})
	got := obj.Transform.Rotation
	near := got.Sub(want).Len() <= 1e-4 || got.Add(want).Len() <= 1e-4
	assert.True(t, near, "got %v, want %v", got, want)
}

func TestSpinScriptConfigure(t *testing.T) {
	spin := &SpinScript{}

	require.NoError(t, spin.Configure(map[string]any{
		"speed": 120.5,
		"axis":  []any{1, 0, 0},
	}))
	assert.Equal(t, float32(120.5), spin.Speed)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, spin.Axis)

	assert.Error(t, spin.Configure(map[string]any{"speed": "fast"}))
	assert.Error(t, spin.Configure(map[string]any{"axis": []any{0, 0, 0}}))
	assert.Error(t, spin.Configure(map[string]any{"axis": []any{1, 2}}))
	assert.Error(t, spin.Configure(map[string]any{"bogus": 1}))
}

func newBlinkRig(t *testing.T, interval float32) *BlinkScript {
	t.Helper()
	obj := behaviour.NewGameObject("lamp")
	mat := &visual.Material{Name: "lamp", DiffuseColor: [3]float32{0.2, 0.4, 0.6}}
	obj.SetVisual(visual.NewSurfaceWithMaterial("lamp-surface", mat))

	hl := interaction.NewHighlighter([3]float32{1, 0, 0}, nil)
	obj.AddComponent(hl)
	blink := &BlinkScript{Interval: interval}
	obj.AddComponent(blink)
	hl.Start()
	blink.Start()
	return blink
}

func TestBlinkScriptTogglesHighlight(t *testing.T) {
	blink := newBlinkRig(t, 0.5)
	obj := blink.GetGameObject()

	colorNow := func() [3]float32 {
		sfc := obj.Visual().(*visual.Surface)
		return sfc.Material().DiffuseColor
	}

	blink.Update(0.25)
	assert.Equal(t, [3]float32{0.2, 0.4, 0.6}, colorNow(), "below the interval nothing changes")

	blink.Update(0.25)
	assert.Equal(t, [3]float32{1, 0, 0}, colorNow(), "first full interval lights the flag")

	blink.Update(0.5)
	assert.Equal(t, [3]float32{0.2, 0.4, 0.6}, colorNow(), "second interval restores")
}

func TestBlinkScriptConfigure(t *testing.T) {
	blink := &BlinkScript{}

	require.NoError(t, blink.Configure(map[string]any{"interval": 2}))
	assert.Equal(t, float32(2), blink.Interval)

	assert.Error(t, blink.Configure(map[string]any{"interval": 0}))
	assert.Error(t, blink.Configure(map[string]any{"interval": -1}))
	assert.Error(t, blink.Configure(map[string]any{"rate": 1}))
}

func TestBlinkScriptWithoutHighlighterStaysInert(t *testing.T) {
	obj := behaviour.NewGameObject("bare")
	blink := &BlinkScript{Interval: 0.1}
	obj.AddComponent(blink)
	blink.Start()

	assert.NotPanics(t, func() { blink.Update(1) })
}

func TestBlinkScriptRestoresOnDestroy(t *testing.T) {
	blink := newBlinkRig(t, 0.1)
	obj := blink.GetGameObject()

	blink.Update(0.1)
	sfc := obj.Visual().(*visual.Surface)
	require.Equal(t, [3]float32{1, 0, 0}, sfc.Material().DiffuseColor)

	blink.OnDestroy()
	assert.Equal(t, [3]float32{0.2, 0.4, 0.6}, sfc.Material().DiffuseColor)
}

func newAutoCloseRig(t *testing.T, delay float32) (*AutoCloseScript, *interaction.DoorOpener) {
	t.Helper()
	obj := behaviour.NewGameObject("door")
	obj.Transform.Position = mgl32.Vec3{1, 0, 0}
	door, err := interaction.NewDoorOpener(interaction.DoorConfig{
		Pivot:        mgl32.Vec3{0, 0, 0},
		Axis:         mgl32.Vec3{0, 1, 0},
		AngleDegrees: 90,
		Duration:     0,
	}, nil)
	require.NoError(t, err)
	obj.AddComponent(door)
	auto := &AutoCloseScript{Delay: delay}
	obj.AddComponent(auto)
	door.Start()
	auto.Start()
	return auto, door
}

func TestAutoCloseScriptClosesAfterDelay(t *testing.T) {
	auto, door := newAutoCloseRig(t, 1.0)

	door.Open()
	require.Equal(t, interaction.DoorOpen, door.State())

	auto.Update(0.5)
	assert.Equal(t, interaction.DoorOpen, door.State(), "half the delay is not enough")

	auto.Update(0.5)
	assert.Equal(t, interaction.DoorClosed, door.State(), "delay elapsed, door closed")
}

func TestAutoCloseScriptResetsWhileDoorIsShut(t *testing.T) {
	auto, door := newAutoCloseRig(t, 1.0)

	door.Open()
	auto.Update(0.75)
	door.Close()
	auto.Update(0.25)
	require.Equal(t, interaction.DoorClosed, door.State())

	// Reopening starts the countdown from zero.
	door.Open()
	auto.Update(0.75)
	assert.Equal(t, interaction.DoorOpen, door.State())
	auto.Update(0.25)
	assert.Equal(t, interaction.DoorClosed, door.State())
}

func TestAutoCloseScriptConfigure(t *testing.T) {
	auto := &AutoCloseScript{}

	require.NoError(t, auto.Configure(map[string]any{"delay": 0.25}))
	assert.Equal(t, float32(0.25), auto.Delay)

	assert.Error(t, auto.Configure(map[string]any{"delay": -1}))
	assert.Error(t, auto.Configure(map[string]any{"after": 1}))
}

func TestAutoCloseScriptWithoutDoorStaysInert(t *testing.T) {
	obj := behaviour.NewGameObject("bare")
	auto := &AutoCloseScript{Delay: 0.1}
	obj.AddComponent(auto)
	auto.Start()

	assert.NotPanics(t, func() { auto.Update(1) })
}

func newHoverRig(t *testing.T, seed int64) *HoverScript {
	t.Helper()
	obj := behaviour.NewGameObject("gem")
	obj.Transform.Position = mgl32.Vec3{0, 2, 0}
	hover := &HoverScript{Amplitude: 0.25, Speed: 1.0}
	require.NoError(t, hover.Configure(map[string]any{"seed": seed}))
	obj.AddComponent(hover)
	hover.Start()
	return hover
}

func TestHoverScriptDriftIsSeedDeterministic(t *testing.T) {
	a := newHoverRig(t, 42)
	b := newHoverRig(t, 42)

	var trajectoryA, trajectoryB []float32
	for i := 0; i < 50; i++ {
		a.Update(0.05)
		b.Update(0.05)
		trajectoryA = append(trajectoryA, a.GetGameObject().Transform.Position.Y())
		trajectoryB = append(trajectoryB, b.GetGameObject().Transform.Position.Y())
	}

	assert.Equal(t, trajectoryA, trajectoryB, "same seed must drift the same way")
}

func TestHoverScriptStaysNearBase(t *testing.T) {
	hover := newHoverRig(t, 7)
	obj := hover.GetGameObject()

	moved := false
	for i := 0; i < 200; i++ {
		hover.Update(0.05)
		y := obj.Transform.Position.Y()
		assert.InDelta(t, 2.0, y, 1.0, "drift stays near the captured base height")
		if y != 2.0 {
			moved = true
		}
	}
	assert.True(t, moved, "the gem actually drifts")
}

func TestHoverScriptConfigure(t *testing.T) {
	hover := &HoverScript{}

	require.NoError(t, hover.Configure(map[string]any{
		"amplitude": 0.5,
		"speed":     2,
		"seed":      1234567890123,
	}))
	assert.Equal(t, float32(0.5), hover.Amplitude)
	assert.Equal(t, float32(2), hover.Speed)

	assert.Error(t, hover.Configure(map[string]any{"amplitude": -0.1}))
	assert.Error(t, hover.Configure(map[string]any{"seed": "lucky"}))
	assert.Error(t, hover.Configure(map[string]any{"height": 1}))
}

func TestConfiguredScriptsBuildThroughRegistry(t *testing.T) {
	comp, err := behaviour.CreateScriptConfigured("SpinScript", map[string]any{"speed": 10})
	require.NoError(t, err)
	spin, ok := comp.(*SpinScript)
	require.True(t, ok)
	assert.Equal(t, float32(10), spin.Speed)

	_, err = behaviour.CreateScriptConfigured("BlinkScript", map[string]any{"interval": -3})
	assert.Error(t, err)
}
