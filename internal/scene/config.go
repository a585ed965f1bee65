package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"Puzzle3D/internal/behaviour"
	"Puzzle3D/internal/interaction"
)

// Scene-level configuration defects. Validate wraps them with positional
// context; callers match with errors.Is.
var (
	ErrNilConfig     = errors.New("nil scene config")
	ErrNoSockets     = errors.New("scene needs at least one socket")
	ErrLabelCount    = errors.New("expected label count does not match socket count")
	ErrEmptyLabel    = errors.New("expected label must not be empty")
	ErrDuplicateName = errors.New("duplicate object name")
	ErrMissingPivot  = errors.New("door needs a pivot")
	ErrUnknownScript = errors.New("script is not registered")
	ErrUnknownFormat = errors.New("unrecognized scene file extension")
	ErrUnknownSocket = errors.New("no such socket")
	ErrUnknownObject = errors.New("no such object")
)

// Config is the scene file surface: everything designer-tunable, fixed at
// build time. Sockets and ExpectedLabels are deliberately parallel lists so a
// count mismatch is representable and caught by Validate.
type Config struct {
	Name             string            `json:"name" yaml:"name"`
	Sockets          []SocketConfig    `json:"sockets,omitempty" yaml:"sockets,omitempty"`
	ExpectedLabels   []string          `json:"expected_labels,omitempty" yaml:"expected_labels,omitempty"`
	Doors            []DoorConfig      `json:"doors,omitempty" yaml:"doors,omitempty"`
	CloseOnIncorrect bool              `json:"close_on_incorrect,omitempty" yaml:"close_on_incorrect,omitempty"`
	Highlights       []HighlightConfig `json:"highlights,omitempty" yaml:"highlights,omitempty"`
	Trigger          *TriggerConfig    `json:"trigger,omitempty" yaml:"trigger,omitempty"`
	Occupants        []OccupantConfig  `json:"occupants,omitempty" yaml:"occupants,omitempty"`
	Actors           []ActorConfig     `json:"actors,omitempty" yaml:"actors,omitempty"`
}

type SocketConfig struct {
	Name     string     `json:"name" yaml:"name"`
	Position [3]float32 `json:"position" yaml:"position"`
}

type DoorConfig struct {
	Name         string         `json:"name" yaml:"name"`
	Position     [3]float32     `json:"position" yaml:"position"`
	Pivot        *[3]float32    `json:"pivot" yaml:"pivot"`
	Axis         [3]float32     `json:"axis" yaml:"axis"`
	AngleDegrees float32        `json:"angle_degrees" yaml:"angle_degrees"`
	Duration     float32        `json:"duration_seconds" yaml:"duration_seconds"`
	Scripts      []ScriptConfig `json:"scripts,omitempty" yaml:"scripts,omitempty"`
}

type HighlightConfig struct {
	Name         string         `json:"name" yaml:"name"`
	Position     [3]float32     `json:"position" yaml:"position"`
	BaseColor    *[3]float32    `json:"base_color,omitempty" yaml:"base_color,omitempty"`
	FlaggedColor [3]float32     `json:"flagged_color" yaml:"flagged_color"`
	Scripts      []ScriptConfig `json:"scripts,omitempty" yaml:"scripts,omitempty"`
}

type TriggerConfig struct {
	Name     string     `json:"name" yaml:"name"`
	Position [3]float32 `json:"position" yaml:"position"`
	ActorTag string     `json:"actor_tag" yaml:"actor_tag"`
	Radius   float32    `json:"radius" yaml:"radius"`
}

type OccupantConfig struct {
	Name     string         `json:"name" yaml:"name"`
	Tag      string         `json:"tag" yaml:"tag"`
	Position [3]float32     `json:"position" yaml:"position"`
	Scripts  []ScriptConfig `json:"scripts,omitempty" yaml:"scripts,omitempty"`
}

type ActorConfig struct {
	Name     string     `json:"name" yaml:"name"`
	Tag      string     `json:"tag" yaml:"tag"`
	Position [3]float32 `json:"position" yaml:"position"`
}

type ScriptConfig struct {
	Name   string         `json:"name" yaml:"name"`
	Params map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
}

// LoadJSON reads a scene config from a JSON file.
func LoadJSON(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadYAML reads a scene config from a YAML file.
func LoadYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse scene %s: %w", path, err)
	}
	return &cfg, nil
}

// Load picks the decoder from the file extension.
func Load(path string) (*Config, error) {
	switch filepath.Ext(path) {
	case ".json":
		return LoadJSON(path)
	case ".yaml", ".yml":
		return LoadYAML(path)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// Validate checks the whole config eagerly and reports every defect, joined,
// so a designer sees all of them at once instead of one per run.
func (c *Config) Validate() error {
	if c == nil {
		return ErrNilConfig
	}
	var errs []error

	names := make(map[string]bool)
	claim := func(kind, name string) {
		if name == "" {
			errs = append(errs, fmt.Errorf("%s with empty name", kind))
			return
		}
		if names[name] {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateName, name))
		}
		names[name] = true
	}

	if len(c.Sockets) == 0 {
		errs = append(errs, ErrNoSockets)
	}
	for _, s := range c.Sockets {
		claim("socket", s.Name)
	}

	if len(c.ExpectedLabels) != len(c.Sockets) {
		errs = append(errs, fmt.Errorf("%w: %d sockets, %d labels",
			ErrLabelCount, len(c.Sockets), len(c.ExpectedLabels)))
	}
	for i, label := range c.ExpectedLabels {
		if label == "" {
			errs = append(errs, fmt.Errorf("%w: index %d", ErrEmptyLabel, i))
		}
	}

	for _, d := range c.Doors {
		claim("door", d.Name)
		if d.Pivot == nil {
			errs = append(errs, fmt.Errorf("door %q: %w", d.Name, ErrMissingPivot))
		}
		if d.Axis == ([3]float32{}) {
			errs = append(errs, fmt.Errorf("door %q: %w", d.Name, interaction.ErrZeroAxis))
		}
		if d.Duration < 0 {
			errs = append(errs, fmt.Errorf("door %q: %w", d.Name, interaction.ErrNegativeDuration))
		}
		errs = append(errs, validateScripts("door", d.Name, d.Scripts)...)
	}

	for _, h := range c.Highlights {
		claim("highlight", h.Name)
		errs = append(errs, validateScripts("highlight", h.Name, h.Scripts)...)
	}

	if t := c.Trigger; t != nil {
		claim("trigger", t.Name)
		if t.ActorTag == "" {
			errs = append(errs, fmt.Errorf("trigger %q: %w", t.Name, interaction.ErrNoActorTag))
		}
		if t.Radius < 0 {
			errs = append(errs, fmt.Errorf("trigger %q: %w", t.Name, interaction.ErrNegativeRadius))
		}
	}

	for _, o := range c.Occupants {
		claim("occupant", o.Name)
		if o.Tag == "" {
			errs = append(errs, fmt.Errorf("occupant %q has no tag", o.Name))
		}
		errs = append(errs, validateScripts("occupant", o.Name, o.Scripts)...)
	}
	for _, a := range c.Actors {
		claim("actor", a.Name)
	}

	return errors.Join(errs...)
}

func validateScripts(kind, owner string, scripts []ScriptConfig) []error {
	var errs []error
	for _, sc := range scripts {
		if !behaviour.ScriptRegistered(sc.Name) {
			errs = append(errs, fmt.Errorf("%s %q: %w: %q", kind, owner, ErrUnknownScript, sc.Name))
		}
	}
	return errs
}
