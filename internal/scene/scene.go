package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"Puzzle3D/internal/behaviour"
	"Puzzle3D/internal/interaction"
	"Puzzle3D/internal/logger"
	"Puzzle3D/internal/signal"
	"Puzzle3D/internal/visual"
)

// Scene owns everything a running puzzle needs: the component manager, the
// signal hub, and name lookups for the built objects. Hosts drive it through
// the sim loop and the Insert/Remove helpers.
type Scene struct {
	Name    string
	Hub     *signal.Hub
	Manager *behaviour.ComponentManager

	log        *zap.Logger
	sockets    map[string]*interaction.Socket
	order      []*interaction.Socket
	checker    *interaction.SequenceChecker
	doors      map[string]*interaction.DoorOpener
	group      *interaction.DoorGroup
	highlights map[string]*interaction.Highlighter
	zone       *interaction.TriggerZone
	occupants  map[string]*behaviour.GameObject
	actors     []*behaviour.GameObject
}

// Build instantiates a validated config into live GameObjects and components,
// registered and wired to the hub. An invalid config refuses to build.
func Build(cfg *Config, log *zap.Logger) (*Scene, error) {
	l := logger.Or(log)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene config: %w", err)
	}

	name := cfg.Name
	if name == "" {
		name = "puzzle"
	}
	s := &Scene{
		Name:       name,
		Hub:        signal.NewHub(l),
		Manager:    behaviour.NewComponentManager(),
		log:        l,
		sockets:    make(map[string]*interaction.Socket),
		doors:      make(map[string]*interaction.DoorOpener),
		highlights: make(map[string]*interaction.Highlighter),
		occupants:  make(map[string]*behaviour.GameObject),
	}

	for _, sc := range cfg.Sockets {
		obj := behaviour.NewGameObject(sc.Name)
		obj.Transform.SetPosition(vec3(sc.Position))
		sock := interaction.NewSocket(l)
		obj.AddComponent(sock)
		s.Manager.RegisterGameObject(obj)
		s.sockets[sc.Name] = sock
		s.order = append(s.order, sock)
	}

	checker, err := interaction.NewSequenceChecker(s.Hub, s.order, cfg.ExpectedLabels, l)
	if err != nil {
		return nil, fmt.Errorf("build sequence checker: %w", err)
	}
	checkerObj := behaviour.NewGameObject(name + "-sequence")
	checkerObj.AddComponent(checker)
	s.Manager.RegisterGameObject(checkerObj)
	s.checker = checker

	var doorList []*interaction.DoorOpener
	for _, dc := range cfg.Doors {
		obj := behaviour.NewGameObject(dc.Name)
		obj.Transform.SetPosition(vec3(dc.Position))
		door, err := interaction.NewDoorOpener(interaction.DoorConfig{
			Pivot:        vec3(*dc.Pivot),
			Axis:         vec3(dc.Axis),
			AngleDegrees: dc.AngleDegrees,
			Duration:     dc.Duration,
		}, l)
		if err != nil {
			return nil, fmt.Errorf("build door %q: %w", dc.Name, err)
		}
		obj.AddComponent(door)
		if err := attachScripts(obj, dc.Scripts); err != nil {
			return nil, fmt.Errorf("door %q: %w", dc.Name, err)
		}
		s.Manager.RegisterGameObject(obj)
		s.doors[dc.Name] = door
		doorList = append(doorList, door)
	}

	s.group = interaction.NewDoorGroup(doorList, l)
	groupObj := behaviour.NewGameObject(name + "-doors")
	groupObj.AddComponent(s.group)
	s.group.OpenOn(s.Hub, interaction.SignalOrderCorrect)
	s.group.OpenOn(s.Hub, interaction.SignalTriggerEnter)
	if cfg.CloseOnIncorrect {
		s.group.CloseOn(s.Hub, interaction.SignalOrderIncorrect)
	}
	s.Manager.RegisterGameObject(groupObj)

	for _, hc := range cfg.Highlights {
		obj := behaviour.NewGameObject(hc.Name)
		obj.Transform.SetPosition(vec3(hc.Position))
		mat := visual.DefaultMaterial.Clone()
		mat.Name = hc.Name
		if hc.BaseColor != nil {
			mat.DiffuseColor = *hc.BaseColor
		}
		obj.SetVisual(visual.NewSurfaceWithMaterial(hc.Name, mat))
		h := interaction.NewHighlighter(hc.FlaggedColor, l)
		obj.AddComponent(h)
		h.BindHub(s.Hub)
		if err := attachScripts(obj, hc.Scripts); err != nil {
			return nil, fmt.Errorf("highlight %q: %w", hc.Name, err)
		}
		s.Manager.RegisterGameObject(obj)
		s.highlights[hc.Name] = h
	}

	if tc := cfg.Trigger; tc != nil {
		obj := behaviour.NewGameObject(tc.Name)
		obj.Transform.SetPosition(vec3(tc.Position))
		zone, err := interaction.NewTriggerZone(tc.ActorTag, tc.Radius, s.Hub, l)
		if err != nil {
			return nil, fmt.Errorf("build trigger %q: %w", tc.Name, err)
		}
		obj.AddComponent(zone)
		s.Manager.RegisterGameObject(obj)
		s.zone = zone
	}

	for _, oc := range cfg.Occupants {
		obj := behaviour.NewGameObject(oc.Name)
		obj.Tag = oc.Tag
		obj.Transform.SetPosition(vec3(oc.Position))
		if err := attachScripts(obj, oc.Scripts); err != nil {
			return nil, fmt.Errorf("occupant %q: %w", oc.Name, err)
		}
		s.Manager.RegisterGameObject(obj)
		s.occupants[oc.Name] = obj
	}

	for _, ac := range cfg.Actors {
		obj := behaviour.NewGameObject(ac.Name)
		obj.Tag = ac.Tag
		obj.Transform.SetPosition(vec3(ac.Position))
		s.Manager.RegisterGameObject(obj)
		s.actors = append(s.actors, obj)
	}

	l.Info("Scene built",
		zap.String("scene", name),
		zap.Int("sockets", len(s.sockets)),
		zap.Int("doors", len(s.doors)),
		zap.Int("highlights", len(s.highlights)),
		zap.Int("occupants", len(s.occupants)))
	return s, nil
}

func attachScripts(obj *behaviour.GameObject, scripts []ScriptConfig) error {
	for _, sc := range scripts {
		script, err := behaviour.CreateScriptConfigured(sc.Name, sc.Params)
		if err != nil {
			return err
		}
		obj.AddComponent(behaviour.NewScriptComponent(sc.Name, script))
	}
	return nil
}

// InsertOccupant places a built occupant into a socket, by name.
func (s *Scene) InsertOccupant(socketName, occupantName string) error {
	sock, ok := s.sockets[socketName]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSocket, socketName)
	}
	occ, ok := s.occupants[occupantName]
	if !ok {
		return fmt.Errorf("%w: occupant %q", ErrUnknownObject, occupantName)
	}
	return sock.Insert(occ)
}

// RemoveOccupant empties a socket, by name.
func (s *Scene) RemoveOccupant(socketName string) (*behaviour.GameObject, error) {
	sock, ok := s.sockets[socketName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSocket, socketName)
	}
	occ, _ := sock.Remove()
	return occ, nil
}

func (s *Scene) Socket(name string) (*interaction.Socket, bool) {
	sock, ok := s.sockets[name]
	return sock, ok
}

func (s *Scene) Door(name string) (*interaction.DoorOpener, bool) {
	d, ok := s.doors[name]
	return d, ok
}

func (s *Scene) Highlighter(name string) (*interaction.Highlighter, bool) {
	h, ok := s.highlights[name]
	return h, ok
}

func (s *Scene) Checker() *interaction.SequenceChecker {
	return s.checker
}

func (s *Scene) DoorGroup() *interaction.DoorGroup {
	return s.group
}

// TriggerZone returns the built zone, or nil when the config had none.
func (s *Scene) TriggerZone() *interaction.TriggerZone {
	return s.zone
}

// Actor returns a built actor object by name.
func (s *Scene) Actor(name string) (*behaviour.GameObject, bool) {
	for _, a := range s.actors {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// ScanTriggers edge-detects actor entry into the trigger zone. Hosts call it
// once per tick; without a zone it is a no-op.
func (s *Scene) ScanTriggers() {
	if s.zone != nil {
		s.zone.Scan(s.actors)
	}
}

// Teardown destroys every object and closes the hub.
func (s *Scene) Teardown() {
	s.Manager.Clear()
	s.Hub.Close()
	s.log.Info("Scene torn down", zap.String("scene", s.Name))
}

func vec3(a [3]float32) mgl32.Vec3 {
	return mgl32.Vec3{a[0], a[1], a[2]}
}
