package interaction

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"Puzzle3D/internal/behaviour"
	"Puzzle3D/internal/logger"
)

// DoorState tracks where a door is in its open/close cycle.
type DoorState int32

const (
	DoorClosed DoorState = iota
	DoorOpening
	DoorOpen
	DoorClosing
)

func (s DoorState) String() string {
	switch s {
	case DoorClosed:
		return "closed"
	case DoorOpening:
		return "opening"
	case DoorOpen:
		return "open"
	case DoorClosing:
		return "closing"
	}
	return "unknown"
}

// DoorConfig describes a hinged swing: a world-space pivot, the hinge axis,
// the swept angle and the animation duration in seconds. Duration 0 swings
// instantly.
type DoorConfig struct {
	Pivot        mgl32.Vec3
	Axis         mgl32.Vec3
	AngleDegrees float32
	Duration     float32
}

// DoorOpener swings its GameObject about the configured pivot, hinge style.
// The closed pose is captured once when the component starts; every
// open/close cycle converges back to the same two endpoint poses no matter
// how many cycles run. Open and Close requests while animating, or for a
// state the door is already in, are no-ops.
type DoorOpener struct {
	behaviour.BaseComponent
	cfg  DoorConfig
	axis mgl32.Vec3
	log  *zap.Logger

	state   DoorState
	elapsed float32

	// Endpoint poses, captured once.
	captured bool
	startPos mgl32.Vec3
	startRot mgl32.Quat
	openPos  mgl32.Vec3
	openRot  mgl32.Quat

	// Orientation endpoints of the cycle currently animating.
	fromRot mgl32.Quat
	toRot   mgl32.Quat

	warnedDetached bool
}

func NewDoorOpener(cfg DoorConfig, log *zap.Logger) (*DoorOpener, error) {
	if cfg.Axis.ApproxEqual(mgl32.Vec3{}) {
		return nil, ErrZeroAxis
	}
	if cfg.Duration < 0 {
		return nil, fmt.Errorf("%w: %v", ErrNegativeDuration, cfg.Duration)
	}
	return &DoorOpener{
		cfg:   cfg,
		axis:  cfg.Axis.Normalize(),
		log:   logger.Or(log),
		state: DoorClosed,
	}, nil
}

func (d *DoorOpener) GetComponentType() behaviour.ComponentType {
	return behaviour.ComponentTypeDoor
}

func (d *DoorOpener) GetTypeName() string {
	return "DoorOpener"
}

func (d *DoorOpener) State() DoorState {
	return d.state
}

func (d *DoorOpener) IsAnimating() bool {
	return d.state == DoorOpening || d.state == DoorClosing
}

// Start captures the pristine closed pose. The pose is remembered, never
// re-derived from the current orientation, so repeated cycles cannot drift.
func (d *DoorOpener) Start() {
	d.ensurePose()
}

func (d *DoorOpener) ensurePose() bool {
	if d.captured {
		return true
	}
	obj := d.GetGameObject()
	if obj == nil {
		if !d.warnedDetached {
			d.warnedDetached = true
			d.log.Error("Door opener has no game object, ignoring requests")
		}
		return false
	}
	t := obj.Transform
	d.startPos = t.Position
	d.startRot = t.Rotation
	full := mgl32.QuatRotate(mgl32.DegToRad(d.cfg.AngleDegrees), d.axis)
	d.openRot = full.Mul(d.startRot).Normalize()
	d.openPos = d.cfg.Pivot.Add(full.Rotate(d.startPos.Sub(d.cfg.Pivot)))
	d.captured = true
	return true
}

// Open swings the door to its open pose. No-op while animating or already
// open.
func (d *DoorOpener) Open() {
	if !d.ensurePose() {
		return
	}
	switch d.state {
	case DoorOpen, DoorOpening, DoorClosing:
		d.log.Debug("Open request ignored",
			zap.String("door", d.name()),
			zap.String("state", d.state.String()))
		return
	}
	d.beginCycle(DoorOpening, d.openRot)
}

// Close swings the door back to the pose captured at start. No-op while
// animating or already closed.
func (d *DoorOpener) Close() {
	if !d.ensurePose() {
		return
	}
	switch d.state {
	case DoorClosed, DoorOpening, DoorClosing:
		d.log.Debug("Close request ignored",
			zap.String("door", d.name()),
			zap.String("state", d.state.String()))
		return
	}
	d.beginCycle(DoorClosing, d.startRot)
}

// Toggle opens a closed door and closes an open one. No-op while animating.
func (d *DoorOpener) Toggle() {
	switch d.state {
	case DoorClosed:
		d.Open()
	case DoorOpen:
		d.Close()
	}
}

func (d *DoorOpener) beginCycle(state DoorState, target mgl32.Quat) {
	t := d.GetGameObject().Transform
	d.fromRot = t.Rotation
	d.toRot = target
	d.elapsed = 0
	d.state = state
	d.log.Info("Door animating",
		zap.String("door", d.name()),
		zap.String("state", state.String()),
		zap.Float32("duration", d.cfg.Duration))
	if d.cfg.Duration == 0 {
		d.finishCycle()
	}
}

// Update advances an in-flight animation by dt seconds. Each tick slerps the
// cycle endpoints to the orientation for the elapsed fraction, then applies
// the shortest-path delta from the current orientation about the pivot, so
// off-center hinges carry the position along. Applying the delta about the
// body's own origin instead would spin the door in place.
func (d *DoorOpener) Update(dt float32) {
	if !d.IsAnimating() {
		return
	}
	obj := d.GetGameObject()
	if obj == nil {
		return
	}

	d.elapsed += dt
	t := d.elapsed / d.cfg.Duration
	if t >= 1 {
		d.finishCycle()
		return
	}

	target := mgl32.QuatSlerp(d.fromRot, d.toRot, t)
	tr := obj.Transform
	delta := target.Mul(tr.Rotation.Inverse()).Normalize()
	tr.ApplyDeltaAround(d.cfg.Pivot, delta)
}

// finishCycle snaps to the exact endpoint pose so floating-point drift never
// accumulates across cycles.
func (d *DoorOpener) finishCycle() {
	tr := d.GetGameObject().Transform
	if d.state == DoorOpening {
		tr.SetPosition(d.openPos)
		tr.SetRotation(d.openRot)
		d.state = DoorOpen
	} else {
		tr.SetPosition(d.startPos)
		tr.SetRotation(d.startRot)
		d.state = DoorClosed
	}
	d.elapsed = 0
	d.log.Info("Door settled",
		zap.String("door", d.name()),
		zap.String("state", d.state.String()))
}

func (d *DoorOpener) name() string {
	if obj := d.GetGameObject(); obj != nil {
		return obj.Name
	}
	return "<detached>"
}
