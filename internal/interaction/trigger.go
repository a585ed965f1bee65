package interaction

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"Puzzle3D/internal/behaviour"
	"Puzzle3D/internal/logger"
	"Puzzle3D/internal/signal"
)

// TriggerZone is a spherical region around its GameObject that fires a
// trigger-enter signal when an actor carrying the configured tag enters.
// The host decides when an actor "enters": either by calling NotifyEnter
// from its own overlap detection, or by handing actor lists to Scan every
// tick and letting the zone edge-detect.
type TriggerZone struct {
	behaviour.BaseComponent
	actorTag string
	radius   float32
	hub      *signal.Hub
	log      *zap.Logger

	inside map[*behaviour.GameObject]bool
}

func NewTriggerZone(actorTag string, radius float32, hub *signal.Hub, log *zap.Logger) (*TriggerZone, error) {
	if actorTag == "" {
		return nil, ErrNoActorTag
	}
	if radius < 0 {
		return nil, ErrNegativeRadius
	}
	return &TriggerZone{
		actorTag: actorTag,
		radius:   radius,
		hub:      hub,
		log:      logger.Or(log),
		inside:   make(map[*behaviour.GameObject]bool),
	}, nil
}

func (z *TriggerZone) GetComponentType() behaviour.ComponentType {
	return behaviour.ComponentTypeTrigger
}

func (z *TriggerZone) GetTypeName() string {
	return "TriggerZone"
}

func (z *TriggerZone) ActorTag() string {
	return z.actorTag
}

func (z *TriggerZone) Radius() float32 {
	return z.radius
}

// Contains reports whether a world-space point lies inside the zone.
func (z *TriggerZone) Contains(point mgl32.Vec3) bool {
	obj := z.GetGameObject()
	if obj == nil {
		return false
	}
	return point.Sub(obj.Transform.Position).Len() <= z.radius
}

// NotifyEnter handles an actor entering the zone. Actors without the
// configured tag are ignored quietly.
func (z *TriggerZone) NotifyEnter(actor *behaviour.GameObject) {
	if actor == nil {
		z.log.Debug("Trigger enter with nil actor ignored")
		return
	}
	if !actor.HasTag(z.actorTag) {
		z.log.Debug("Trigger enter ignored, tag mismatch",
			zap.String("zone", z.name()),
			zap.String("actor", actor.Name),
			zap.String("tag", actor.Tag))
		return
	}
	z.log.Info("Actor entered trigger zone",
		zap.String("zone", z.name()),
		zap.String("actor", actor.Name))
	if z.hub != nil {
		z.hub.Emit(SignalTriggerEnter, z.name())
	}
}

// Scan edge-detects zone entry for the given actors: NotifyEnter fires only
// on the outside-to-inside transition, not while an actor stays inside.
func (z *TriggerZone) Scan(actors []*behaviour.GameObject) {
	for _, actor := range actors {
		if actor == nil {
			continue
		}
		in := z.Contains(actor.Transform.Position)
		if in && !z.inside[actor] {
			z.NotifyEnter(actor)
		}
		if in {
			z.inside[actor] = true
		} else {
			delete(z.inside, actor)
		}
	}
}

func (z *TriggerZone) OnDestroy() {
	z.inside = make(map[*behaviour.GameObject]bool)
}

func (z *TriggerZone) name() string {
	if obj := z.GetGameObject(); obj != nil {
		return obj.Name
	}
	return "<detached>"
}
