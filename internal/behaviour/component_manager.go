package behaviour

// ComponentManager owns a set of GameObjects and drives their lifecycle.
// Every scene holds its own manager; nothing here is global.
type ComponentManager struct {
	gameObjects []*GameObject
	toDestroy   []*GameObject
}

func NewComponentManager() *ComponentManager {
	return &ComponentManager{
		gameObjects: make([]*GameObject, 0),
		toDestroy:   make([]*GameObject, 0),
	}
}

// RegisterGameObject adds a GameObject to the manager and starts its
// components, so observers are wired before the first tick runs.
func (cm *ComponentManager) RegisterGameObject(obj *GameObject) {
	cm.gameObjects = append(cm.gameObjects, obj)
	obj.internalStart()
}

func (cm *ComponentManager) UnregisterGameObject(obj *GameObject) {
	for i, o := range cm.gameObjects {
		if o == obj {
			cm.gameObjects = append(cm.gameObjects[:i], cm.gameObjects[i+1:]...)
			obj.Destroy()
			return
		}
	}
}

// FindGameObject returns the first registered object with the given name,
// or nil.
func (cm *ComponentManager) FindGameObject(name string) *GameObject {
	for _, obj := range cm.gameObjects {
		if obj.Name == name {
			return obj
		}
	}
	return nil
}

// FindGameObjectsWithTag returns every registered object carrying the tag.
func (cm *ComponentManager) FindGameObjectsWithTag(tag string) []*GameObject {
	var result []*GameObject
	for _, obj := range cm.gameObjects {
		if obj.HasTag(tag) {
			result = append(result, obj)
		}
	}
	return result
}

// UpdateAll calls Update on all active GameObjects. Objects marked for
// destruction are removed before the pass, never mid-pass.
func (cm *ComponentManager) UpdateAll(dt float32) {
	if len(cm.toDestroy) > 0 {
		for _, obj := range cm.toDestroy {
			cm.UnregisterGameObject(obj)
		}
		cm.toDestroy = cm.toDestroy[:0]
	}

	for _, obj := range cm.gameObjects {
		if obj.Active {
			obj.internalUpdate(dt)
		}
	}
}

// FixedUpdateAll runs the fixed-step pass over all active objects.
func (cm *ComponentManager) FixedUpdateAll(dt float32) {
	for _, obj := range cm.gameObjects {
		if obj.Active {
			obj.internalFixedUpdate(dt)
		}
	}
}

// DestroyGameObject queues an object for removal at the start of the next
// update pass.
func (cm *ComponentManager) DestroyGameObject(obj *GameObject) {
	cm.toDestroy = append(cm.toDestroy, obj)
}

// GetAllGameObjects returns the live object list; callers must not mutate it.
func (cm *ComponentManager) GetAllGameObjects() []*GameObject {
	return cm.gameObjects
}

// Clear destroys every object and empties the manager.
func (cm *ComponentManager) Clear() {
	for _, obj := range cm.gameObjects {
		obj.Destroy()
	}
	cm.gameObjects = cm.gameObjects[:0]
	cm.toDestroy = cm.toDestroy[:0]
}
