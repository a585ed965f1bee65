package sim

import (
	"context"
	"time"

	"Puzzle3D/internal/behaviour"
	"Puzzle3D/internal/logger"

	"go.uber.org/zap"
)

// DefaultTickRate is the wall-clock tick interval Run falls back on. 90 Hz
// matches the refresh rate of the headsets the puzzle scenes target.
const DefaultTickRate = time.Second / 90

// DefaultFixedInterval is how many frames pass between fixed-update passes.
const DefaultFixedInterval = 3

// Loop drives a ComponentManager, the headless counterpart of a render loop.
// Each Step is one frame: a fixed-update pass every FixedInterval frames,
// then the per-frame update pass, then the tick callback.
type Loop struct {
	manager       *behaviour.ComponentManager
	log           *zap.Logger
	fixedInterval int
	frameTrack    int
	sinceFixed    float32
	frames        uint64
	elapsed       float32
	onTick        func(dt float32) // Optional callback for custom per-frame work (e.g. host rendering)
}

// New creates a loop around the given manager. A nil manager gets a fresh one.
func New(manager *behaviour.ComponentManager, log *zap.Logger) *Loop {
	if manager == nil {
		manager = behaviour.NewComponentManager()
	}
	return &Loop{
		manager:       manager,
		log:           logger.Or(log),
		fixedInterval: DefaultFixedInterval,
	}
}

// Manager returns the component manager the loop drives.
func (l *Loop) Manager() *behaviour.ComponentManager {
	return l.manager
}

// SetFixedInterval changes how many frames pass between fixed-update passes.
// Values below 1 run the fixed pass every frame.
func (l *Loop) SetFixedInterval(frames int) {
	if frames < 1 {
		frames = 1
	}
	l.fixedInterval = frames
}

// SetOnTickCallback sets a callback invoked each frame after the scene has
// been stepped, with that frame's delta time.
func (l *Loop) SetOnTickCallback(callback func(dt float32)) {
	l.onTick = callback
}

// Step advances the simulation by one frame of dt seconds. Negative deltas
// are clamped to zero so a misbehaving clock can never rewind animations.
func (l *Loop) Step(dt float32) {
	if dt < 0 {
		dt = 0
	}

	l.sinceFixed += dt
	l.frameTrack++
	if l.frameTrack >= l.fixedInterval {
		l.manager.FixedUpdateAll(l.sinceFixed)
		l.sinceFixed = 0
		l.frameTrack = 0
	}
	l.manager.UpdateAll(dt)
	l.frames++
	l.elapsed += dt

	if l.onTick != nil {
		l.onTick(dt)
	}
}

// StepN advances the simulation by n frames of dt seconds each.
func (l *Loop) StepN(n int, dt float32) {
	for i := 0; i < n; i++ {
		l.Step(dt)
	}
}

// Frames reports how many frames have been stepped.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Elapsed reports the total simulated time in seconds.
func (l *Loop) Elapsed() float32 {
	return l.elapsed
}

// Run steps the loop off a wall clock until ctx is done, returning the
// context's error. Frame deltas are measured between ticks, so a stalled
// host advances the simulation by the real time that passed.
func (l *Loop) Run(ctx context.Context, rate time.Duration) error {
	if rate <= 0 {
		rate = DefaultTickRate
	}
	l.log.Info("Simulation loop starting", zap.Duration("tick", rate))

	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			l.log.Info("Simulation loop stopped",
				zap.Uint64("frames", l.frames),
				zap.Float32("elapsed", l.elapsed))
			return ctx.Err()
		case now := <-ticker.C:
			l.Step(float32(now.Sub(last).Seconds()))
			last = now
		}
	}
}
