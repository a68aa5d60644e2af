package animate

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ikeee/Photos-Wall-3D/internal/layout"
	"github.com/ikeee/Photos-Wall-3D/internal/pose"
)

// Animation tuning.
const (
	// UnfocusedRate and FocusedRate are the exponential smoothing rates
	// (per second) for items settling onto the wall and for the focused
	// item chasing the camera.
	UnfocusedRate = 3.0
	FocusedRate   = 8.0

	// GroupRate smooths the whole-wall rotation toward the viewer's
	// offset.
	GroupRate = 1.5

	// FocusDistance is how far in front of the camera the focused item
	// floats; FocusScale is its enlarged uniform scale.
	FocusDistance = 4.0
	FocusScale    = 2.2

	// IdleSpinRate is the slow constant wall rotation (rad/s) used when
	// no confident pose signal is available.
	IdleSpinRate = 0.05

	// ScoreThreshold is the minimum signal confidence before the wall
	// follows the viewer instead of idling.
	ScoreThreshold = 0.3

	// MaxYaw and MaxPitch bound the wall rotation (radians) at full
	// viewer displacement.
	MaxYaw   = 0.6
	MaxPitch = 0.35
)

// ItemFrame is one item's transform for the current render frame.
// RenderOrder is a draw priority: the focused item must draw above all
// other items.
type ItemFrame struct {
	ID          string
	Transform   Transform
	RenderOrder int
}

// Frame is the animator's per-frame output, consumed by the render client.
type Frame struct {
	Items     []ItemFrame
	Group     mgl64.Quat
	FocusedID string
	Signal    *pose.Signal
}

// yFlip turns an item around so its front faces back along the camera's
// forward axis.
var yFlip = mgl64.QuatRotate(math.Pi, mgl64.Vec3{0, 1, 0})

// Animator holds the per-item current transforms, the shared wall
// rotation, and the last reported camera pose. Advance is driven once per
// render frame by the host loop; the camera pose may be updated from the
// render client between frames.
type Animator struct {
	mu      sync.Mutex
	layout  *layout.Layout
	current map[string]Transform
	group   mgl64.Quat
	camera  Camera
}

// New creates an Animator over the given layout.
func New(l *layout.Layout) *Animator {
	return &Animator{
		layout:  l,
		current: make(map[string]Transform),
		group:   mgl64.QuatIdent(),
		camera:  Camera{Orientation: mgl64.QuatIdent()},
	}
}

// SetCamera records the render client's current camera pose.
func (a *Animator) SetCamera(c Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// Camera returns the last reported camera pose.
func (a *Animator) Camera() Camera {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.camera
}

// Advance computes the frame transforms for elapsed time delta (seconds).
// Unfocused items ease toward their static layout targets; the focused
// item chases a camera-anchored target re-derived every frame; the group
// rotation follows the viewer offset when the signal is confident and
// idles at a slow spin otherwise.
func (a *Animator) Advance(delta float64, sig *pose.Signal, focusedID string) Frame {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.advanceGroup(delta, sig)

	entries := a.layout.Entries()
	items := make([]ItemFrame, 0, len(entries))
	seen := make(map[string]bool, len(entries))

	for _, entry := range entries {
		seen[entry.ID] = true

		target := Transform{
			Position:    entry.Position,
			Orientation: entry.Orientation,
			Scale:       UnitScale,
		}
		rate := UnfocusedRate
		order := 0

		if entry.ID == focusedID {
			target = a.focusTarget()
			rate = FocusedRate
			order = 1
		}

		cur, ok := a.current[entry.ID]
		if !ok {
			// New items appear directly at their wall slot.
			cur = Transform{
				Position:    entry.Position,
				Orientation: entry.Orientation,
				Scale:       UnitScale,
			}
		}

		next := cur.StepToward(target, delta, rate)
		a.current[entry.ID] = next

		items = append(items, ItemFrame{
			ID:          entry.ID,
			Transform:   next,
			RenderOrder: order,
		})
	}

	// Drop state for items that left the collection.
	if len(a.current) != len(entries) {
		for id := range a.current {
			if !seen[id] {
				delete(a.current, id)
			}
		}
	}

	return Frame{
		Items:     items,
		Group:     a.group,
		FocusedID: focusedID,
		Signal:    sig,
	}
}

// focusTarget is the camera-anchored transform for the focused item: a
// fixed distance along the camera's forward axis, front turned back toward
// the viewer, enlarged. It moves with the camera, so the focused item
// keeps tracking orbit controls while focused.
func (a *Animator) focusTarget() Transform {
	return Transform{
		Position:    a.camera.Position.Add(a.camera.Forward().Mul(FocusDistance)),
		Orientation: a.camera.Orientation.Mul(yFlip),
		Scale:       mgl64.Vec3{FocusScale, FocusScale, FocusScale},
	}
}

// advanceGroup updates the shared wall rotation.
func (a *Animator) advanceGroup(delta float64, sig *pose.Signal) {
	if sig != nil && sig.Score > ScoreThreshold {
		// Follow the viewer: lateral offset turns into yaw, vertical
		// offset into pitch.
		target := mgl64.AnglesToQuat(-sig.OffsetY*MaxPitch, -sig.OffsetX*MaxYaw, 0, mgl64.XYZ)
		a.group = mgl64.QuatSlerp(a.group, target, clamp01(GroupRate*delta))
		return
	}

	if delta == 0 {
		return
	}
	spin := mgl64.QuatRotate(IdleSpinRate*delta, mgl64.Vec3{0, 1, 0})
	a.group = spin.Mul(a.group).Normalize()
}

// Group returns the current shared wall rotation.
func (a *Animator) Group() mgl64.Quat {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.group
}
