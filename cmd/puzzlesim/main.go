package main

import (
	"context"
	"fmt"
	"os"
	ossignal "os/signal"
	"path/filepath"
	"syscall"
	"time"

	"Puzzle3D/internal/interaction"
	"Puzzle3D/internal/logger"
	"Puzzle3D/internal/scene"
	"Puzzle3D/internal/signal"
	"Puzzle3D/internal/sim"

	// Bundled scripts register themselves so scenario files can name them.
	_ "Puzzle3D/scripts"

	"github.com/caarlos0/env/v11"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type config struct {
	ScenePath string        `env:"PUZZLE_SCENE"`
	LogLevel  string        `env:"PUZZLE_LOG_LEVEL" envDefault:"info"`
	TickRate  time.Duration `env:"PUZZLE_TICK_RATE" envDefault:"11ms"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "parse env: %v\n", err)
		os.Exit(1)
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	logger.InitWithLevel(level)
	logger.Log.Info("Puzzle simulator starting...")

	sceneCfg, scripted := loadScenario(cfg.ScenePath)
	s, err := scene.Build(sceneCfg, logger.Log)
	if err != nil {
		logger.Log.Fatal("Scene build failed", zap.Error(err))
	}

	for _, name := range []string{
		interaction.SignalOrderCorrect,
		interaction.SignalOrderIncorrect,
		interaction.SignalTriggerEnter,
	} {
		s.Hub.Subscribe(name, func(evt signal.Event) {
			logger.Log.Info("Signal",
				zap.String("name", evt.Name),
				zap.String("source", evt.Source))
		})
	}

	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop := sim.New(s.Manager, logger.Log)
	if scripted {
		d := &director{scene: s, steps: demoScript(), finished: cancel}
		loop.SetOnTickCallback(d.tick)
	} else {
		// A user scenario has no script; sample trigger zones and wait for
		// the host (or Ctrl-C).
		loop.SetOnTickCallback(func(float32) { s.ScanTriggers() })
	}

	loop.Run(ctx, cfg.TickRate)

	metrics := s.Hub.Metrics()
	logger.Log.Info("Simulation finished",
		zap.Uint64("frames", loop.Frames()),
		zap.Float32("elapsed", loop.Elapsed()),
		zap.Uint64("signals_published", metrics.Published),
		zap.Uint64("signals_delivered", metrics.Delivered))
	s.Teardown()
}

// loadScenario resolves the scene config: an explicit path, then the probed
// asset locations, then the built-in vault scenario. The second return says
// whether the built-in demo script should drive the scene.
func loadScenario(explicit string) (*scene.Config, bool) {
	path := explicit
	if path == "" {
		path = findScenario()
	}
	if path == "" {
		logger.Log.Info("No scenario file found, using the built-in vault")
		return builtinScenario(), true
	}

	cfg, err := scene.Load(path)
	if err != nil {
		logger.Log.Warn("Scenario load failed, using the built-in vault",
			zap.String("path", path), zap.Error(err))
		return builtinScenario(), true
	}
	logger.Log.Info("Scenario loaded", zap.String("path", path))
	return cfg, false
}

func findScenario() string {
	exePath, _ := os.Executable()
	exeDir := filepath.Dir(exePath)

	for _, name := range []string{"puzzle.yaml", "puzzle.json"} {
		paths := []string{
			filepath.Join(exeDir, "assets", name),
			filepath.Join(exeDir, name),
			filepath.Join("assets", name),
			name,
		}
		for _, p := range paths {
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}
	return ""
}

// builtinScenario is the fallback scene: three pedestals guarding a hinged
// vault door, a status lamp, and a walk-up trigger in front of the door.
func builtinScenario() *scene.Config {
	pivot := [3]float32{4, 0, 6}
	lampBase := [3]float32{0.9, 0.85, 0.7}
	return &scene.Config{
		Name: "gemstone-vault",
		Sockets: []scene.SocketConfig{
			{Name: "pedestal-0", Position: [3]float32{-2, 1, 0}},
			{Name: "pedestal-1", Position: [3]float32{0, 1, 0}},
			{Name: "pedestal-2", Position: [3]float32{2, 1, 0}},
		},
		ExpectedLabels: []string{"ruby", "topaz", "azure"},
		Doors: []scene.DoorConfig{{
			Name:         "vault-door",
			Position:     [3]float32{2, 0, 6},
			Pivot:        &pivot,
			Axis:         [3]float32{0, 1, 0},
			AngleDegrees: 100,
			Duration:     1.2,
			Scripts: []scene.ScriptConfig{
				{Name: "AutoCloseScript", Params: map[string]any{"delay": 2.0}},
			},
		}},
		Highlights: []scene.HighlightConfig{{
			Name:         "status-lamp",
			Position:     [3]float32{0, 3, 0},
			BaseColor:    &lampBase,
			FlaggedColor: [3]float32{0.95, 0.1, 0.1},
		}},
		Trigger: &scene.TriggerConfig{
			Name:     "door-zone",
			Position: [3]float32{2, 0, 4},
			ActorTag: "visitor",
			Radius:   2.5,
		},
		Occupants: []scene.OccupantConfig{
			{Name: "gem-ruby", Tag: "ruby", Position: [3]float32{-4, 0, -3},
				Scripts: []scene.ScriptConfig{
					{Name: "HoverScript", Params: map[string]any{"amplitude": 0.3, "seed": 101}},
				}},
			{Name: "gem-topaz", Tag: "topaz", Position: [3]float32{-4, 0, -4}},
			{Name: "gem-azure", Tag: "azure", Position: [3]float32{-4, 0, -5}},
			{Name: "gem-obsidian", Tag: "obsidian", Position: [3]float32{-4, 0, -6}},
		},
		Actors: []scene.ActorConfig{
			{Name: "visitor-1", Tag: "visitor", Position: [3]float32{2, 0, 20}},
		},
	}
}

type demoStep struct {
	at   float32 // Seconds from simulation start
	note string
	run  func(s *scene.Scene)
}

// director replays the demo script against the scene from inside the tick
// callback, so every mutation happens on the simulation goroutine.
type director struct {
	scene    *scene.Scene
	steps    []demoStep
	next     int
	clock    float32
	finished func()
}

func (d *director) tick(dt float32) {
	d.scene.ScanTriggers()

	d.clock += dt
	for d.next < len(d.steps) && d.clock >= d.steps[d.next].at {
		step := d.steps[d.next]
		logger.Log.Info("Demo step", zap.String("action", step.note))
		step.run(d.scene)
		d.next++
	}
	if d.next == len(d.steps) {
		d.finished()
	}
}

func demoScript() []demoStep {
	insert := func(socket, gem string) func(*scene.Scene) {
		return func(s *scene.Scene) {
			if err := s.InsertOccupant(socket, gem); err != nil {
				logger.Log.Warn("Insert refused", zap.Error(err))
			}
		}
	}
	return []demoStep{
		{at: 1.0, note: "a wrong gem flags the lamp", run: insert("pedestal-0", "gem-obsidian")},
		{at: 2.0, note: "take the wrong gem back", run: func(s *scene.Scene) {
			if _, err := s.RemoveOccupant("pedestal-0"); err != nil {
				logger.Log.Warn("Remove refused", zap.Error(err))
			}
		}},
		{at: 3.0, note: "place the ruby", run: insert("pedestal-0", "gem-ruby")},
		{at: 4.0, note: "place the topaz", run: insert("pedestal-1", "gem-topaz")},
		{at: 5.0, note: "place the azure, completing the order", run: insert("pedestal-2", "gem-azure")},
		// The vault swings open, then the autoclose script shuts it again.
		{at: 10.0, note: "a visitor walks up to the door", run: func(s *scene.Scene) {
			if actor, ok := s.Actor("visitor-1"); ok {
				actor.Transform.Position = mgl32.Vec3{2, 0, 4.5}
			}
		}},
		{at: 13.0, note: "demo complete", run: func(*scene.Scene) {}},
	}
}
