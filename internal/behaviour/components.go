package behaviour

// ComponentType names the built-in component kinds a GameObject can carry.
type ComponentType string

const (
	ComponentTypeSocket    ComponentType = "Socket"
	ComponentTypeSequence  ComponentType = "Sequence"
	ComponentTypeDoor      ComponentType = "Door"
	ComponentTypeDoorGroup ComponentType = "DoorGroup"
	ComponentTypeHighlight ComponentType = "Highlight"
	ComponentTypeTrigger   ComponentType = "Trigger"
	ComponentTypeScript    ComponentType = "Script"
	ComponentTypeCustom    ComponentType = "Custom"
)

// TypedComponent is implemented by components that can be looked up through
// GameObject.GetComponent by type name.
type TypedComponent interface {
	Component
	GetComponentType() ComponentType
	GetTypeName() string
}

// ScriptComponent adapts a registered script to the component lifecycle.
// The wrapper's enabled flag gates ticking; the inner script's own flag
// is never consulted.
type ScriptComponent struct {
	BaseComponent
	ScriptName string
	Script     Component // the wrapped script instance
}

func NewScriptComponent(scriptName string, script Component) *ScriptComponent {
	return &ScriptComponent{
		ScriptName: scriptName,
		Script:     script,
	}
}

func (s *ScriptComponent) GetComponentType() ComponentType {
	return ComponentTypeScript
}

func (s *ScriptComponent) GetTypeName() string {
	return s.ScriptName
}

func (s *ScriptComponent) Awake() {
	if s.Script != nil {
		s.Script.SetGameObject(s.GetGameObject())
		s.Script.Awake()
	}
}

func (s *ScriptComponent) Start() {
	if s.Script != nil {
		s.Script.Start()
	}
}

func (s *ScriptComponent) Update(dt float32) {
	if s.Script != nil && s.GetEnabled() {
		s.Script.Update(dt)
	}
}

func (s *ScriptComponent) FixedUpdate(dt float32) {
	if s.Script != nil && s.GetEnabled() {
		s.Script.FixedUpdate(dt)
	}
}

func (s *ScriptComponent) OnDestroy() {
	if s.Script != nil {
		s.Script.OnDestroy()
	}
}
