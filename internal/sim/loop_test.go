package sim

import (
	"context"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Puzzle3D/internal/behaviour"
	"Puzzle3D/internal/interaction"
)

// tickCounter records every update pass it receives.
type tickCounter struct {
	behaviour.BaseComponent
	updates  int
	fixed    int
	lastDt   float32
	fixedDts []float32
}

func (c *tickCounter) Update(dt float32) {
	c.updates++
	c.lastDt = dt
}

func (c *tickCounter) FixedUpdate(dt float32) {
	c.fixed++
	c.fixedDts = append(c.fixedDts, dt)
}

func newCounterLoop(t *testing.T) (*Loop, *tickCounter) {
	t.Helper()
	loop := New(behaviour.NewComponentManager(), nil)
	counter := &tickCounter{}
	obj := behaviour.NewGameObject("counter")
	obj.AddComponent(counter)
	loop.Manager().RegisterGameObject(obj)
	return loop, counter
}

func TestLoopStepDrivesUpdates(t *testing.T) {
	loop, counter := newCounterLoop(t)

	loop.Step(0.016)
	loop.Step(0.032)

	assert.Equal(t, 2, counter.updates)
	assert.Equal(t, float32(0.032), counter.lastDt)
	assert.Equal(t, uint64(2), loop.Frames())
}

func TestLoopNilManagerGetsFreshOne(t *testing.T) {
	loop := New(nil, nil)
	require.NotNil(t, loop.Manager())
	assert.NotPanics(t, func() { loop.Step(0.016) })
}

func TestLoopFixedCadence(t *testing.T) {
	loop, counter := newCounterLoop(t)

	// Default interval is 3: frames 3, 6, 9 carry a fixed pass.
	loop.StepN(9, 0.01)

	assert.Equal(t, 9, counter.updates)
	require.Equal(t, 3, counter.fixed)
	for _, dt := range counter.fixedDts {
		assert.InDelta(t, 0.03, dt, 1e-6, "fixed pass must cover the frames since the last one")
	}
}

func TestLoopFixedIntervalOfOne(t *testing.T) {
	loop, counter := newCounterLoop(t)
	loop.SetFixedInterval(1)

	loop.StepN(4, 0.02)

	assert.Equal(t, 4, counter.fixed)
	for _, dt := range counter.fixedDts {
		assert.InDelta(t, 0.02, dt, 1e-6)
	}
}

func TestLoopFixedIntervalClampedToOne(t *testing.T) {
	loop, counter := newCounterLoop(t)
	loop.SetFixedInterval(0)

	loop.StepN(2, 0.01)

	assert.Equal(t, 2, counter.fixed)
}

func TestLoopNegativeDeltaClamped(t *testing.T) {
	loop, counter := newCounterLoop(t)

	loop.Step(-1)

	assert.Equal(t, 1, counter.updates)
	assert.Equal(t, float32(0), counter.lastDt)
	assert.Equal(t, float32(0), loop.Elapsed())
}

func TestLoopElapsedAccumulates(t *testing.T) {
	loop, _ := newCounterLoop(t)

	loop.StepN(4, 0.25)

	assert.Equal(t, float32(1.0), loop.Elapsed())
}

// Door completion must land on the first frame whose accumulated time reaches
// the configured duration, regardless of how the frames are batched.
func TestLoopStepNDeterministicDoorCompletion(t *testing.T) {
	loop := New(behaviour.NewComponentManager(), nil)

	obj := behaviour.NewGameObject("vault-door")
	obj.Transform.Position = mgl32.Vec3{1, 0, 0}
	door, err := interaction.NewDoorOpener(interaction.DoorConfig{
		Pivot:        mgl32.Vec3{0, 0, 0},
		Axis:         mgl32.Vec3{0, 1, 0},
		AngleDegrees: 90,
		Duration:     0.35,
	}, nil)
	require.NoError(t, err)
	obj.AddComponent(door)
	loop.Manager().RegisterGameObject(obj)

	door.Open()
	loop.StepN(3, 0.1)
	assert.Equal(t, interaction.DoorOpening, door.State(),
		"0.3s into a 0.35s swing the door is still moving")

	loop.Step(0.1)
	assert.Equal(t, interaction.DoorOpen, door.State(),
		"the frame that crosses the duration completes the swing")
}

func TestLoopOnTickCallbackRunsAfterStep(t *testing.T) {
	loop, counter := newCounterLoop(t)

	var seen []float32
	var updatesAtTick []int
	loop.SetOnTickCallback(func(dt float32) {
		seen = append(seen, dt)
		updatesAtTick = append(updatesAtTick, counter.updates)
	})

	loop.Step(0.1)
	loop.Step(0.2)

	require.Equal(t, []float32{0.1, 0.2}, seen)
	assert.Equal(t, []int{1, 2}, updatesAtTick, "callback must observe the stepped scene")
}

func TestLoopRunStopsOnCancel(t *testing.T) {
	loop := New(behaviour.NewComponentManager(), nil)

	ticked := make(chan struct{}, 1)
	loop.SetOnTickCallback(func(float32) {
		select {
		case ticked <- struct{}{}:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx, time.Millisecond) }()

	select {
	case <-ticked:
	case <-time.After(2 * time.Second):
		t.Fatal("loop never ticked")
	}
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop after cancel")
	}
	assert.NotZero(t, loop.Frames())
}
