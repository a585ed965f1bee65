package interaction

import (
	"go.uber.org/zap"

	"Puzzle3D/internal/behaviour"
	"Puzzle3D/internal/logger"
	"Puzzle3D/internal/signal"
)

// DoorGroup fans one open or close action out to a set of doors. Each door
// animates independently: nil entries are skipped with a warning and a no-op
// on one door never stops the rest of the batch.
type DoorGroup struct {
	behaviour.BaseComponent
	doors []*DoorOpener
	log   *zap.Logger
	subs  []*signal.Subscription
}

func NewDoorGroup(doors []*DoorOpener, log *zap.Logger) *DoorGroup {
	return &DoorGroup{
		doors: doors,
		log:   logger.Or(log),
	}
}

func (g *DoorGroup) GetComponentType() behaviour.ComponentType {
	return behaviour.ComponentTypeDoorGroup
}

func (g *DoorGroup) GetTypeName() string {
	return "DoorGroup"
}

func (g *DoorGroup) Doors() []*DoorOpener {
	return g.doors
}

// OpenAll requests open on every door in the group.
func (g *DoorGroup) OpenAll() {
	for i, d := range g.doors {
		if d == nil {
			g.log.Warn("Skipping nil door in group", zap.Int("index", i))
			continue
		}
		d.Open()
	}
}

// CloseAll requests close on every door in the group.
func (g *DoorGroup) CloseAll() {
	for i, d := range g.doors {
		if d == nil {
			g.log.Warn("Skipping nil door in group", zap.Int("index", i))
			continue
		}
		d.Close()
	}
}

// OpenOn subscribes the group to a hub signal that opens every door.
func (g *DoorGroup) OpenOn(hub *signal.Hub, name string) {
	if hub == nil {
		return
	}
	g.subs = append(g.subs, hub.Subscribe(name, func(signal.Event) {
		g.OpenAll()
	}))
}

// CloseOn subscribes the group to a hub signal that closes every door.
func (g *DoorGroup) CloseOn(hub *signal.Hub, name string) {
	if hub == nil {
		return
	}
	g.subs = append(g.subs, hub.Subscribe(name, func(signal.Event) {
		g.CloseAll()
	}))
}

// OnDestroy cancels the group's hub subscriptions.
func (g *DoorGroup) OnDestroy() {
	for _, sub := range g.subs {
		sub.Cancel()
	}
	g.subs = nil
}
