// Package animate computes per-frame item transforms: exponential
// smoothing toward static layout targets, camera tracking for the focused
// item, and the shared wall rotation that follows the viewer.
package animate

import "github.com/go-gl/mathgl/mgl64"

// Transform is an ephemeral per-frame position/orientation/scale triple.
type Transform struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Scale       mgl64.Vec3
}

// UnitScale is the resting scale of an unfocused item.
var UnitScale = mgl64.Vec3{1, 1, 1}

// StepToward moves the transform a fraction of the way to target. The
// fraction is rate*delta clamped to [0,1], which approximates a
// frame-rate-independent exponential decay: slower frames (larger delta)
// move proportionally further. With delta of zero the transform is
// returned unchanged, and with a constant target each step shrinks the
// remaining distance, so the motion converges without overshoot.
func (t Transform) StepToward(target Transform, delta, rate float64) Transform {
	f := clamp01(rate * delta)
	if f == 0 {
		return t
	}

	return Transform{
		Position:    lerpVec3(t.Position, target.Position, f),
		Orientation: mgl64.QuatSlerp(t.Orientation, target.Orientation, f),
		Scale:       lerpVec3(t.Scale, target.Scale, f),
	}
}

func lerpVec3(a, b mgl64.Vec3, f float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(f))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Camera is the render client's camera pose, read-only to this package.
type Camera struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// Forward returns the camera's forward axis in world space.
func (c Camera) Forward() mgl64.Vec3 {
	return c.Orientation.Rotate(mgl64.Vec3{0, 0, -1})
}
