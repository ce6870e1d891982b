package easel

import (
	"math"
	"testing"
)

// gestureTarget builds a canvas plus a 100x60 object whose top-left corner
// sits at scene (0, 0), so the world matrix is the identity and start-frame
// math reads straight off the pointer coordinates.
func gestureTarget(t *testing.T) (*Canvas, *Object) {
	t.Helper()
	c := NewCanvas(800, 600)
	o := NewObject("target", 100, 60)
	o.X = 50
	o.Y = 30
	c.Add(o)
	return c, o
}

func beginControl(t *testing.T, c *Canvas, o *Object, name string, x, y float64, mods KeyModifiers) *Transform {
	t.Helper()
	ctl, ok := o.Controls.Get(name)
	if !ok {
		t.Fatalf("control %q not registered", name)
	}
	tr := c.machine.begin(o, name, ctl, x, y, 0, MouseButtonLeft, mods)
	if tr == nil {
		t.Fatalf("begin(%q) returned nil", name)
	}
	return tr
}

// --- actionEventKind ---

func TestActionEventKinds(t *testing.T) {
	cases := []struct {
		action string
		want   EventKind
	}{
		{ActionDrag, EventMoving},
		{ActionScale, EventScaling},
		{ActionScaleX, EventScaling},
		{ActionScaleY, EventScaling},
		{ActionRotate, EventRotating},
		{ActionSkewX, EventSkewing},
		{ActionSkewY, EventSkewing},
		{ActionResize, EventResizing},
	}
	for _, tc := range cases {
		if got := actionEventKind(tc.action); got != tc.want {
			t.Errorf("actionEventKind(%q) = %v, want %v", tc.action, got, tc.want)
		}
	}
}

// --- Drag ---

func TestDragKeepsGrabOffset(t *testing.T) {
	c, o := gestureTarget(t)
	tr := c.machine.begin(o, "", nil, 60, 40, 0, MouseButtonLeft, 0)
	if tr == nil {
		t.Fatal("begin returned nil")
	}
	assertNear(t, "OffsetX", tr.OffsetX, 10)
	assertNear(t, "OffsetY", tr.OffsetY, 10)

	if !c.machine.move(tr, 100, 80, 0) {
		t.Fatal("move should report a change")
	}
	assertNear(t, "X", o.X, 90)
	assertNear(t, "Y", o.Y, 70)
	if !tr.ActionPerformed {
		t.Error("ActionPerformed should be armed")
	}
}

func TestDragLockedAxis(t *testing.T) {
	c, o := gestureTarget(t)
	o.LockMovementX = true
	tr := c.machine.begin(o, "", nil, 50, 30, 0, MouseButtonLeft, 0)

	c.machine.move(tr, 120, 90, 0)
	assertNear(t, "X (locked)", o.X, 50)
	assertNear(t, "Y", o.Y, 90)
}

func TestDragStationaryPointerChangesNothing(t *testing.T) {
	c, o := gestureTarget(t)
	tr := c.machine.begin(o, "", nil, 60, 40, 0, MouseButtonLeft, 0)

	if c.machine.move(tr, 60, 40, 0) {
		t.Error("no movement should report no change")
	}
	if tr.ActionPerformed {
		t.Error("ActionPerformed should stay unarmed")
	}
}

func TestBodyDragRequiresMovable(t *testing.T) {
	c, o := gestureTarget(t)
	o.Movable = false
	if tr := c.machine.begin(o, "", nil, 50, 30, 0, MouseButtonLeft, 0); tr != nil {
		t.Error("body drag on an immovable object should not start")
	}
}

// --- Corner scaling ---

func TestScaleCornerProportional(t *testing.T) {
	c, o := gestureTarget(t)
	tr := beginControl(t, c, o, "br", 100, 60, 0)

	assertVec(t, "anchor", tr.anchor, Vec2{0, 0})

	c.machine.move(tr, 200, 120, 0)
	assertNear(t, "ScaleX", o.ScaleX, 2)
	assertNear(t, "ScaleY", o.ScaleY, 2)
	assertVec(t, "tl pinned", o.AnchorPoint(0, 0), Vec2{0, 0})
	assertVec(t, "br follows", o.AnchorPoint(1, 1), Vec2{200, 120})
}

func TestScaleCornerShiftFreesAxes(t *testing.T) {
	c, o := gestureTarget(t)
	tr := beginControl(t, c, o, "br", 100, 60, ModShift)

	c.machine.move(tr, 200, 90, ModShift)
	assertNear(t, "ScaleX", o.ScaleX, 2)
	assertNear(t, "ScaleY", o.ScaleY, 1.5)
}

func TestScaleThroughAnchorFlips(t *testing.T) {
	c, o := gestureTarget(t)
	tr := beginControl(t, c, o, "br", 100, 60, 0)

	c.machine.move(tr, -100, -60, 0)
	assertNear(t, "ScaleX", o.ScaleX, 1)
	assertNear(t, "ScaleY", o.ScaleY, 1)
	if !o.FlipX || !o.FlipY {
		t.Error("dragging through the anchor should flip both axes")
	}
	assertVec(t, "tl pinned", o.AnchorPoint(0, 0), Vec2{0, 0})
}

func TestScaleLockedAxisHolds(t *testing.T) {
	c, o := gestureTarget(t)
	o.LockScalingX = true
	tr := beginControl(t, c, o, "br", 100, 60, 0)

	c.machine.move(tr, 200, 120, 0)
	assertNear(t, "ScaleX (locked)", o.ScaleX, 1)
	assertNear(t, "ScaleY", o.ScaleY, 2)
}

// --- Edge scaling ---

func TestScaleXEdge(t *testing.T) {
	c, o := gestureTarget(t)
	tr := beginControl(t, c, o, "mr", 100, 30, 0)

	assertVec(t, "anchor", tr.anchor, Vec2{0, 30})

	c.machine.move(tr, 150, 30, 0)
	assertNear(t, "ScaleX", o.ScaleX, 1.5)
	assertNear(t, "ScaleY", o.ScaleY, 1)
	assertVec(t, "left edge pinned", o.AnchorPoint(0, 0.5), Vec2{0, 30})
	if tr.Action != ActionScaleX {
		t.Errorf("Action = %q, want scaleX", tr.Action)
	}
}

func TestScaleYEdge(t *testing.T) {
	c, o := gestureTarget(t)
	tr := beginControl(t, c, o, "mb", 50, 60, 0)

	c.machine.move(tr, 50, 120, 0)
	assertNear(t, "ScaleY", o.ScaleY, 2)
	assertNear(t, "ScaleX", o.ScaleX, 1)
	assertVec(t, "top edge pinned", o.AnchorPoint(0.5, 0), Vec2{50, 0})
}

// --- Skewing via Shift on edge handles ---

func TestShiftEdgeSkewsX(t *testing.T) {
	c, o := gestureTarget(t)
	tr := beginControl(t, c, o, "mt", 50, 0, ModShift)

	// Horizontal travel equal to the anchor span gives tan = 1.
	c.machine.move(tr, 110, 0, ModShift)
	assertNear(t, "SkewX", o.SkewX, math.Pi/4)
	if tr.Action != ActionSkewX {
		t.Errorf("Action = %q, want skewX", tr.Action)
	}
	assertVec(t, "bottom edge pinned", o.AnchorPoint(0.5, 1), Vec2{50, 60})
}

func TestShiftEdgeSkewsY(t *testing.T) {
	c, o := gestureTarget(t)
	tr := beginControl(t, c, o, "mr", 100, 30, ModShift)

	c.machine.move(tr, 100, 130, ModShift)
	assertNear(t, "SkewY", o.SkewY, math.Atan(1))
	if tr.Action != ActionSkewY {
		t.Errorf("Action = %q, want skewY", tr.Action)
	}
}

func TestSkewLockHolds(t *testing.T) {
	c, o := gestureTarget(t)
	o.LockSkewingX = true
	tr := beginControl(t, c, o, "mt", 50, 0, ModShift)

	if c.machine.move(tr, 110, 0, ModShift) {
		t.Error("locked skew should report no change")
	}
	assertNear(t, "SkewX", o.SkewX, 0)
}

// --- Rotation ---

func TestRotateTracksAngleDelta(t *testing.T) {
	c, o := gestureTarget(t)
	// Press east of the pivot, drag to south: a quarter turn.
	tr := beginControl(t, c, o, "mtr", 130, 30, 0)

	assertVec(t, "pivot", tr.anchor, Vec2{50, 30})

	c.machine.move(tr, 50, 110, 0)
	assertNear(t, "Rotation", o.Rotation, math.Pi/2)
	assertVec(t, "pivot fixed", o.AnchorPoint(0.5, 0.5), Vec2{50, 30})
}

func TestRotateSnapWithinThreshold(t *testing.T) {
	c, o := gestureTarget(t)
	o.SnapAngle = math.Pi / 2
	o.SnapThreshold = 0.2
	tr := beginControl(t, c, o, "mtr", 130, 30, 0)

	// 80° is within 0.2 rad of 90°: snaps.
	angle := 80 * math.Pi / 180
	c.machine.move(tr, 50+80*math.Cos(angle), 30+80*math.Sin(angle), 0)
	assertNear(t, "Rotation (snapped)", o.Rotation, math.Pi/2)

	// 50° is outside the threshold: stays free.
	angle = 50 * math.Pi / 180
	c.machine.move(tr, 50+80*math.Cos(angle), 30+80*math.Sin(angle), 0)
	assertNear(t, "Rotation (free)", o.Rotation, angle)
}

func TestRotateLockHolds(t *testing.T) {
	c, o := gestureTarget(t)
	o.LockRotation = true
	tr := beginControl(t, c, o, "mtr", 130, 30, 0)

	if c.machine.move(tr, 50, 110, 0) {
		t.Error("locked rotation should report no change")
	}
	assertNear(t, "Rotation", o.Rotation, 0)
}

// --- Resizing ---

func TestResizeChangesWidthNotScale(t *testing.T) {
	c, o := gestureTarget(t)
	o.Controls.Set("mr", &Control{
		ActionName: ActionResize,
		X:          0.5,
		Visible:    true,
		Handler:    resizeHandler,
	})
	tr := beginControl(t, c, o, "mr", 100, 30, 0)

	c.machine.move(tr, 150, 30, 0)
	assertNear(t, "Width", o.Width, 150)
	assertNear(t, "ScaleX", o.ScaleX, 1)
	assertVec(t, "left edge pinned", o.AnchorPoint(0, 0.5), Vec2{0, 30})
}

func TestResizeClampsToMinimumWidth(t *testing.T) {
	c, o := gestureTarget(t)
	o.Controls.Set("mr", &Control{
		ActionName: ActionResize,
		X:          0.5,
		Visible:    true,
		Handler:    resizeHandler,
	})
	tr := beginControl(t, c, o, "mr", 100, 30, 0)

	c.machine.move(tr, 0.5, 30, 0)
	assertNear(t, "Width", o.Width, 1)
}

// --- Alt anchor ---

func TestAltRecentersAnchor(t *testing.T) {
	c, o := gestureTarget(t)
	tr := beginControl(t, c, o, "br", 100, 60, ModAlt)

	// With Alt held the gesture anchors on the body center.
	assertVec(t, "anchor", tr.anchor, Vec2{50, 30})

	c.machine.move(tr, 150, 90, ModAlt)
	assertNear(t, "ScaleX", o.ScaleX, 2)
	assertNear(t, "ScaleY", o.ScaleY, 2)
	assertVec(t, "center pinned", o.AnchorPoint(0.5, 0.5), Vec2{50, 30})
}
