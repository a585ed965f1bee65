package behaviour

import (
	"fmt"
	"sort"
)

type ScriptConstructor func() Component

var scriptRegistry = make(map[string]ScriptConstructor)

// Configurable is implemented by scripts that accept parameters from scene
// configuration. Configure runs after Awake and before Start.
type Configurable interface {
	Configure(params map[string]any) error
}

func RegisterScript(name string, constructor ScriptConstructor) {
	scriptRegistry[name] = constructor
}

// ScriptRegistered reports whether a constructor exists for the name.
func ScriptRegistered(name string) bool {
	_, exists := scriptRegistry[name]
	return exists
}

func GetAvailableScripts() []string {
	names := make([]string, 0, len(scriptRegistry))
	for name := range scriptRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func CreateScript(name string) Component {
	if constructor, exists := scriptRegistry[name]; exists {
		return constructor()
	}
	return nil
}

// CreateScriptConfigured instantiates a registered script and applies the
// given parameters when the script supports them. Unknown script names and
// rejected parameters are reported to the caller instead of being dropped.
func CreateScriptConfigured(name string, params map[string]any) (Component, error) {
	constructor, exists := scriptRegistry[name]
	if !exists {
		return nil, fmt.Errorf("script %q is not registered", name)
	}
	script := constructor()
	if len(params) > 0 {
		cfg, ok := script.(Configurable)
		if !ok {
			return nil, fmt.Errorf("script %q does not accept parameters", name)
		}
		if err := cfg.Configure(params); err != nil {
			return nil, fmt.Errorf("configure script %q: %w", name, err)
		}
	}
	return script, nil
}
