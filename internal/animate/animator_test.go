package animate

import (
	"fmt"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ikeee/Photos-Wall-3D/internal/layout"
	"github.com/ikeee/Photos-Wall-3D/internal/pose"
)

func testLayout(n int) *layout.Layout {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("item-%02d", i)
	}
	l := layout.New(10)
	l.Update(ids)
	return l
}

func TestStepToward_ZeroDeltaIsIdentity(t *testing.T) {
	cur := Transform{
		Position:    mgl64.Vec3{1, 2, 3},
		Orientation: mgl64.QuatRotate(0.5, mgl64.Vec3{0, 1, 0}),
		Scale:       UnitScale,
	}
	target := Transform{
		Position:    mgl64.Vec3{9, 9, 9},
		Orientation: mgl64.QuatIdent(),
		Scale:       mgl64.Vec3{2, 2, 2},
	}

	for i := 0; i < 5; i++ {
		if got := cur.StepToward(target, 0, UnfocusedRate); got != cur {
			t.Fatalf("step %d with delta=0 moved the transform: %+v", i, got)
		}
	}
}

func TestStepToward_MonotoneConvergence(t *testing.T) {
	cur := Transform{
		Position:    mgl64.Vec3{10, 0, 0},
		Orientation: mgl64.QuatIdent(),
		Scale:       UnitScale,
	}
	target := Transform{
		Position:    mgl64.Vec3{0, 0, 0},
		Orientation: mgl64.QuatRotate(1.2, mgl64.Vec3{0, 1, 0}),
		Scale:       mgl64.Vec3{2, 2, 2},
	}

	prev := cur.Position.Sub(target.Position).Len()
	for i := 0; i < 50; i++ {
		cur = cur.StepToward(target, 0.05, UnfocusedRate)
		d := cur.Position.Sub(target.Position).Len()
		if d > prev+1e-12 {
			t.Fatalf("step %d overshot: distance %f > %f", i, d, prev)
		}
		prev = d
	}

	if prev > 5 {
		t.Errorf("distance after 50 steps = %f, expected substantial convergence", prev)
	}
}

func TestStepToward_FullStepClamped(t *testing.T) {
	cur := Transform{Position: mgl64.Vec3{4, 0, 0}, Orientation: mgl64.QuatIdent(), Scale: UnitScale}
	target := Transform{Position: mgl64.Vec3{0, 0, 0}, Orientation: mgl64.QuatIdent(), Scale: UnitScale}

	// rate*delta far above 1 must land exactly on the target, not past it.
	got := cur.StepToward(target, 10, FocusedRate)
	if got.Position.Len() > 1e-12 {
		t.Errorf("position = %v, want target", got.Position)
	}
}

func TestAdvance_UnfocusedSettleOnLayout(t *testing.T) {
	l := testLayout(8)
	a := New(l)

	var frame Frame
	for i := 0; i < 10; i++ {
		frame = a.Advance(0.033, nil, "")
	}

	if len(frame.Items) != 8 {
		t.Fatalf("frame has %d items, want 8", len(frame.Items))
	}
	for _, item := range frame.Items {
		entry, _ := l.Get(item.ID)
		if item.Transform.Position.Sub(entry.Position).Len() > 1e-9 {
			t.Errorf("item %s away from its wall slot", item.ID)
		}
		if item.RenderOrder != 0 {
			t.Errorf("item %s render order = %d, want 0", item.ID, item.RenderOrder)
		}
	}
}

func TestAdvance_FocusedTracksCamera(t *testing.T) {
	l := testLayout(4)
	a := New(l)

	cam := Camera{
		Position:    mgl64.Vec3{0, 0, 2},
		Orientation: mgl64.QuatIdent(),
	}
	a.SetCamera(cam)

	focused := l.Entries()[0].ID
	var frame Frame
	for i := 0; i < 120; i++ {
		frame = a.Advance(0.033, nil, focused)
	}

	wantPos := cam.Position.Add(cam.Forward().Mul(FocusDistance))
	for _, item := range frame.Items {
		if item.ID != focused {
			continue
		}
		if item.Transform.Position.Sub(wantPos).Len() > 1e-6 {
			t.Errorf("focused position %v, want camera anchor %v", item.Transform.Position, wantPos)
		}
		if math.Abs(item.Transform.Scale.X()-FocusScale) > 1e-6 {
			t.Errorf("focused scale %v, want %f", item.Transform.Scale, FocusScale)
		}
		if item.RenderOrder != 1 {
			t.Errorf("focused render order = %d, want 1", item.RenderOrder)
		}
	}

	// Moving the camera moves the target: the focused item must follow.
	a.SetCamera(Camera{Position: mgl64.Vec3{3, 1, 2}, Orientation: mgl64.QuatIdent()})
	for i := 0; i < 120; i++ {
		frame = a.Advance(0.033, nil, focused)
	}
	wantPos = mgl64.Vec3{3, 1, 2}.Add(mgl64.Vec3{0, 0, -FocusDistance})
	if frame.Items[0].Transform.Position.Sub(wantPos).Len() > 1e-6 {
		t.Errorf("focused item did not follow the camera: %v", frame.Items[0].Transform.Position)
	}
}

func TestAdvance_ReleaseReturnsToWall(t *testing.T) {
	l := testLayout(4)
	a := New(l)
	focused := l.Entries()[0].ID

	for i := 0; i < 60; i++ {
		a.Advance(0.033, nil, focused)
	}
	var frame Frame
	for i := 0; i < 240; i++ {
		frame = a.Advance(0.033, nil, "")
	}

	entry, _ := l.Get(focused)
	if frame.Items[0].Transform.Position.Sub(entry.Position).Len() > 1e-6 {
		t.Errorf("released item did not return to its wall slot")
	}
	if frame.Items[0].Transform.Scale.Sub(UnitScale).Len() > 1e-6 {
		t.Errorf("released item did not return to unit scale")
	}
}

func TestAdvance_GroupIdleSpin(t *testing.T) {
	a := New(testLayout(2))

	before := a.Group()
	a.Advance(0.5, nil, "")
	after := a.Group()

	if before == after {
		t.Error("group rotation did not idle-spin without a signal")
	}

	// Low-confidence signals also idle.
	weak := &pose.Signal{OffsetX: 1, Score: 0.1}
	mid := a.Group()
	a.Advance(0.5, weak, "")
	if a.Group() == mid {
		t.Error("group rotation froze on a low-confidence signal")
	}
}

func TestAdvance_GroupFollowsViewer(t *testing.T) {
	a := New(testLayout(2))

	sig := &pose.Signal{OffsetX: 1, OffsetY: 0, Score: 0.9}
	for i := 0; i < 300; i++ {
		a.Advance(0.033, sig, "")
	}

	want := mgl64.AnglesToQuat(0, -MaxYaw, 0, mgl64.XYZ)
	got := a.Group()
	if math.Abs(got.W-want.W) > 1e-3 || got.V.Sub(want.V).Len() > 1e-3 {
		t.Errorf("group = %+v, want convergence to %+v", got, want)
	}
}

func TestAdvance_ZeroDeltaLeavesFrameUnchanged(t *testing.T) {
	a := New(testLayout(4))
	a.Advance(0.033, nil, "")

	before := a.Advance(0, nil, "")
	after := a.Advance(0, nil, "")

	if before.Group != after.Group {
		t.Error("group changed across delta=0 frames")
	}
	for i := range before.Items {
		if before.Items[i].Transform != after.Items[i].Transform {
			t.Errorf("item %s transform changed across delta=0 frames", before.Items[i].ID)
		}
	}
}

func TestAdvance_PrunesRemovedItems(t *testing.T) {
	l := layout.New(10)
	l.Update([]string{"a", "b", "c"})
	a := New(l)
	a.Advance(0.033, nil, "")

	l.Update([]string{"a"})
	frame := a.Advance(0.033, nil, "")

	if len(frame.Items) != 1 || frame.Items[0].ID != "a" {
		t.Errorf("frame items = %+v, want only item a", frame.Items)
	}
}
