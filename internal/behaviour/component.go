package behaviour

// Component is the base interface for all components.
// Components can be attached to game objects and are driven by the
// simulation loop.
type Component interface {
	// Lifecycle hooks
	Awake()                 // Called when component is first attached
	Start()                 // Called before first Update (after all Awakes)
	Update(dt float32)      // Called every frame with elapsed seconds
	FixedUpdate(dt float32) // Called at fixed time intervals
	OnDestroy()             // Called when component/object is destroyed

	// Enable state and owner wiring
	GetEnabled() bool
	SetEnabled(bool)
	GetGameObject() *GameObject
	SetGameObject(*GameObject)

	// Start-once bookkeeping lives on BaseComponent. Unexported so every
	// component has to embed BaseComponent to satisfy the interface.
	hasStarted() bool
	markStarted()
}

// BaseComponent supplies no-op defaults for every lifecycle hook.
// Concrete components embed it and override only what they need.
type BaseComponent struct {
	enabled    bool
	gameObject *GameObject
	started    bool
}

func (c *BaseComponent) Awake()                 {}
func (c *BaseComponent) Start()                 {}
func (c *BaseComponent) Update(dt float32)      {}
func (c *BaseComponent) FixedUpdate(dt float32) {}
func (c *BaseComponent) OnDestroy()             {}

func (c *BaseComponent) GetEnabled() bool {
	return c.enabled
}

func (c *BaseComponent) SetEnabled(enabled bool) {
	c.enabled = enabled
}

func (c *BaseComponent) GetGameObject() *GameObject {
	return c.gameObject
}

func (c *BaseComponent) SetGameObject(obj *GameObject) {
	c.gameObject = obj
}

func (c *BaseComponent) hasStarted() bool { return c.started }
func (c *BaseComponent) markStarted()     { c.started = true }

// GameObject represents an object in the scene: a named, taggable transform
// carrying components, plus an opaque visual handle owned by the host
// renderer.
type GameObject struct {
	Name       string
	Tag        string
	Active     bool
	Transform  *Transform
	Components []Component

	visual    any // Renderer-side handle (avoids a renderer import cycle)
	destroyed bool
}

func NewGameObject(name string) *GameObject {
	obj := &GameObject{
		Name:       name,
		Active:     true,
		Components: make([]Component, 0),
		Transform:  NewTransform(),
	}
	obj.Transform.SetGameObject(obj)
	return obj
}

// HasTag reports whether the object carries the given non-empty tag.
func (obj *GameObject) HasTag(tag string) bool {
	return tag != "" && obj.Tag == tag
}

func (obj *GameObject) AddComponent(component Component) {
	component.SetGameObject(obj)
	component.SetEnabled(true)
	obj.Components = append(obj.Components, component)
	component.Awake()
}

// GetComponent returns the first attached component whose type name matches.
// Type names come from TypedComponent; untyped components never match.
func (obj *GameObject) GetComponent(typeName string) Component {
	for _, comp := range obj.Components {
		if typed, ok := comp.(TypedComponent); ok && typed.GetTypeName() == typeName {
			return comp
		}
	}
	return nil
}

func (obj *GameObject) GetComponents(typeName string) []Component {
	var result []Component
	for _, comp := range obj.Components {
		if typed, ok := comp.(TypedComponent); ok && typed.GetTypeName() == typeName {
			result = append(result, comp)
		}
	}
	return result
}

// ComponentOf returns the first attached component of concrete type T.
func ComponentOf[T Component](obj *GameObject) (T, bool) {
	for _, comp := range obj.Components {
		if c, ok := comp.(T); ok {
			return c, true
		}
	}
	var zero T
	return zero, false
}

func (obj *GameObject) RemoveComponent(component Component) {
	for i, comp := range obj.Components {
		if comp == component {
			comp.OnDestroy()
			obj.Components = append(obj.Components[:i], obj.Components[i+1:]...)
			return
		}
	}
}

// SetVisual binds the renderer-side handle for this object.
func (obj *GameObject) SetVisual(v any) {
	obj.visual = v
}

// Visual returns the renderer-side handle, or nil if none was bound.
func (obj *GameObject) Visual() any {
	return obj.visual
}

func (obj *GameObject) internalUpdate(dt float32) {
	if !obj.Active {
		return
	}

	for _, comp := range obj.Components {
		if comp.GetEnabled() {
			if !comp.hasStarted() {
				comp.Start()
				comp.markStarted()
			}
			comp.Update(dt)
		}
	}
}

func (obj *GameObject) internalFixedUpdate(dt float32) {
	if !obj.Active {
		return
	}

	for _, comp := range obj.Components {
		if comp.GetEnabled() {
			if !comp.hasStarted() {
				comp.Start()
				comp.markStarted()
			}
			comp.FixedUpdate(dt)
		}
	}
}

func (obj *GameObject) internalStart() {
	if !obj.Active {
		return
	}

	for _, comp := range obj.Components {
		if comp.GetEnabled() && !comp.hasStarted() {
			comp.Start()
			comp.markStarted()
		}
	}
}

// Destroy tears the object down. OnDestroy runs exactly once per component
// even if Destroy is called again.
func (obj *GameObject) Destroy() {
	if obj.destroyed {
		return
	}
	obj.destroyed = true
	for _, comp := range obj.Components {
		comp.OnDestroy()
	}
	obj.Active = false
}
