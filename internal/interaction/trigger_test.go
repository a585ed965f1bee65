package interaction

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Puzzle3D/internal/behaviour"
	"Puzzle3D/internal/signal"
)

func newTestZone(t *testing.T, hub *signal.Hub) (*behaviour.GameObject, *TriggerZone) {
	t.Helper()
	obj := behaviour.NewGameObject("portal")
	obj.Transform.SetPosition(mgl32.Vec3{0, 0, 0})
	z, err := NewTriggerZone("player", 2.0, hub, nil)
	require.NoError(t, err)
	obj.AddComponent(z)
	return obj, z
}

func TestNewTriggerZoneValidation(t *testing.T) {
	_, err := NewTriggerZone("", 1, nil, nil)
	require.ErrorIs(t, err, ErrNoActorTag)

	_, err = NewTriggerZone("player", -1, nil, nil)
	require.ErrorIs(t, err, ErrNegativeRadius)
}

func TestTriggerZoneContains(t *testing.T) {
	_, z := newTestZone(t, nil)

	assert.True(t, z.Contains(mgl32.Vec3{1, 0, 0}))
	assert.True(t, z.Contains(mgl32.Vec3{0, 2, 0}), "boundary counts as inside")
	assert.False(t, z.Contains(mgl32.Vec3{0, 0, 3}))
}

func TestTriggerZoneNotifyEnterFiltersByTag(t *testing.T) {
	hub := signal.NewHub(nil)
	fired := 0
	hub.Subscribe(SignalTriggerEnter, func(signal.Event) { fired++ })
	_, z := newTestZone(t, hub)

	player := behaviour.NewGameObject("hero")
	player.Tag = "player"
	crate := behaviour.NewGameObject("crate")
	crate.Tag = "prop"

	z.NotifyEnter(crate)
	assert.Equal(t, 0, fired, "non-matching tag must not fire")

	z.NotifyEnter(player)
	assert.Equal(t, 1, fired)

	z.NotifyEnter(nil)
	assert.Equal(t, 1, fired, "nil actor is skipped")
}

func TestTriggerZoneScanEdgeDetects(t *testing.T) {
	hub := signal.NewHub(nil)
	fired := 0
	hub.Subscribe(SignalTriggerEnter, func(signal.Event) { fired++ })
	_, z := newTestZone(t, hub)

	player := behaviour.NewGameObject("hero")
	player.Tag = "player"
	player.Transform.SetPosition(mgl32.Vec3{5, 0, 0})
	actors := []*behaviour.GameObject{player}

	z.Scan(actors)
	assert.Equal(t, 0, fired, "outside the radius")

	player.Transform.SetPosition(mgl32.Vec3{1, 0, 0})
	z.Scan(actors)
	assert.Equal(t, 1, fired, "entering fires once")

	z.Scan(actors)
	assert.Equal(t, 1, fired, "staying inside must not re-fire")

	player.Transform.SetPosition(mgl32.Vec3{5, 0, 0})
	z.Scan(actors)
	player.Transform.SetPosition(mgl32.Vec3{0, 1, 0})
	z.Scan(actors)
	assert.Equal(t, 2, fired, "re-entering fires again")
}

func TestTriggerZoneScanSkipsNilActors(t *testing.T) {
	_, z := newTestZone(t, nil)

	require.NotPanics(t, func() {
		z.Scan([]*behaviour.GameObject{nil})
	})
}

func TestTriggerZoneOpensDoors(t *testing.T) {
	hub := signal.NewHub(nil)
	door := instantDoor(t, "gate")
	group := NewDoorGroup([]*DoorOpener{door}, nil)
	group.OpenOn(hub, SignalTriggerEnter)
	_, z := newTestZone(t, hub)

	player := behaviour.NewGameObject("hero")
	player.Tag = "player"
	z.NotifyEnter(player)

	assert.Equal(t, DoorOpen, door.State())
}
