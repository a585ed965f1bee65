package behaviour

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform component: position, orientation and scale of a GameObject.
type Transform struct {
	BaseComponent
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
	Parent   *Transform
	Children []*Transform
}

func NewTransform() *Transform {
	return &Transform{
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

func (t *Transform) Translate(delta mgl32.Vec3) {
	t.Position = t.Position.Add(delta)
}

func (t *Transform) Rotate(axis mgl32.Vec3, angle float32) {
	rotation := mgl32.QuatRotate(angle, axis)
	t.Rotation = t.Rotation.Mul(rotation)
}

// RotateAround swings the transform about a world-space pivot, hinge style:
// the position orbits the pivot by angle radians about axis while the
// orientation turns by the same rotation. Axis must be non-zero; a zero axis
// leaves the transform unchanged.
func (t *Transform) RotateAround(pivot, axis mgl32.Vec3, angle float32) {
	if axis.ApproxEqual(mgl32.Vec3{}) {
		return
	}
	t.ApplyDeltaAround(pivot, mgl32.QuatRotate(angle, axis.Normalize()))
}

// ApplyDeltaAround applies a world-frame rotation delta about a pivot point.
// Both position and orientation move rigidly, so the offset between the
// transform and the pivot keeps its length.
func (t *Transform) ApplyDeltaAround(pivot mgl32.Vec3, delta mgl32.Quat) {
	t.Position = pivot.Add(delta.Rotate(t.Position.Sub(pivot)))
	t.Rotation = delta.Mul(t.Rotation).Normalize()
}

func (t *Transform) SetPosition(pos mgl32.Vec3) {
	t.Position = pos
}

func (t *Transform) SetRotation(rot mgl32.Quat) {
	t.Rotation = rot
}

func (t *Transform) SetScale(scale mgl32.Vec3) {
	t.Scale = scale
}

func (t *Transform) Forward() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{0, 0, -1})
}

func (t *Transform) Up() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{0, 1, 0})
}

func (t *Transform) Right() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{1, 0, 0})
}
