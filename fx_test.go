package easel

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestAnimatePositionReachesTarget(t *testing.T) {
	o := NewObject("pos", 40, 40)
	o.X = 10
	o.Y = 20

	g := AnimatePosition(o, 100, 200, 1.0, ease.Linear)

	// Run for full duration using exact halves to avoid float32 accumulation drift.
	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(o.X-100) > 0.5 {
		t.Errorf("X = %f, want ~100", o.X)
	}
	if math.Abs(o.Y-200) > 0.5 {
		t.Errorf("Y = %f, want ~200", o.Y)
	}
}

func TestAnimateScaleReachesTarget(t *testing.T) {
	o := NewObject("scale", 40, 40)

	g := AnimateScale(o, 2.0, 3.0, 0.5, ease.Linear)

	g.Update(0.25)
	g.Update(0.25)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(o.ScaleX-2.0) > 0.01 {
		t.Errorf("ScaleX = %f, want ~2.0", o.ScaleX)
	}
	if math.Abs(o.ScaleY-3.0) > 0.01 {
		t.Errorf("ScaleY = %f, want ~3.0", o.ScaleY)
	}
}

func TestAnimateOpacityInterpolates(t *testing.T) {
	o := NewObject("opacity", 40, 40)
	o.Opacity = 1.0

	g := AnimateOpacity(o, 0.0, 1.0, ease.Linear)

	// Halfway through.
	g.Update(0.5)
	if g.Done {
		t.Fatal("should not be done at halfway")
	}
	if math.Abs(o.Opacity-0.5) > 0.05 {
		t.Errorf("Opacity = %f, want ~0.5 at halfway", o.Opacity)
	}

	// Finish.
	g.Update(0.5)
	if !g.Done {
		t.Fatal("should be done after full duration")
	}
	if math.Abs(o.Opacity-0.0) > 0.01 {
		t.Errorf("Opacity = %f, want ~0.0", o.Opacity)
	}
}

func TestAnimateRotationReachesTarget(t *testing.T) {
	o := NewObject("rot", 40, 40)
	o.Rotation = 0

	g := AnimateRotation(o, math.Pi, 1.0, ease.Linear)

	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected done after full duration")
	}
	if math.Abs(o.Rotation-math.Pi) > 0.05 {
		t.Errorf("Rotation = %f, want ~%f", o.Rotation, math.Pi)
	}
}

func TestAnimGroupDoneFlagTransition(t *testing.T) {
	o := NewObject("done", 40, 40)
	g := AnimatePosition(o, 50, 50, 0.5, ease.Linear)

	if g.Done {
		t.Fatal("should not be Done at start")
	}

	// Partway through — not done.
	g.Update(0.25)
	if g.Done {
		t.Fatal("should not be Done partway through")
	}

	// Complete.
	g.Update(0.25)
	if !g.Done {
		t.Fatal("should be Done after full duration")
	}

	// Update after done — should be a no-op, not panic.
	g.Update(0.1)
	if !g.Done {
		t.Fatal("should remain Done")
	}
}

func TestAnimGroupMarksDirty(t *testing.T) {
	o := NewObject("dirty", 40, 40)

	// Clear the dirty flag first.
	o.geometryDirty = false

	g := AnimatePosition(o, 100, 100, 1.0, ease.Linear)
	g.Update(0.1)

	if !o.geometryDirty {
		t.Fatal("expected object to be marked dirty after AnimGroup update")
	}
}

func TestAnimGroupOnCompleteRunsOnce(t *testing.T) {
	o := NewObject("complete", 40, 40)
	g := AnimatePosition(o, 100, 100, 0.5, ease.Linear)

	var calls int
	g.OnComplete = func() { calls++ }

	g.Update(0.25)
	if calls != 0 {
		t.Fatal("OnComplete must not run before the group finishes")
	}
	g.Update(0.25)
	if calls != 1 {
		t.Fatalf("OnComplete ran %d times, want 1", calls)
	}
	g.Update(0.1)
	if calls != 1 {
		t.Fatal("OnComplete must not run again after done")
	}
}

func TestAnimGroupDisposedTarget(t *testing.T) {
	o := NewObject("disposed", 40, 40)
	o.X = 10
	o.Y = 20

	g := AnimatePosition(o, 100, 200, 1.0, ease.Linear)
	var completed bool
	g.OnComplete = func() { completed = true }

	// Dispose the object before animating.
	o.Dispose()

	g.Update(0.1)

	if !g.Done {
		t.Fatal("expected Done after disposed target detected")
	}
	// Values should not have changed, and the completion hook must not run.
	if o.X != 10 {
		t.Errorf("X changed to %f on disposed object", o.X)
	}
	if o.Y != 20 {
		t.Errorf("Y changed to %f on disposed object", o.Y)
	}
	if completed {
		t.Error("OnComplete must not run when the group stops early")
	}
}

func TestAnimGroupDisposedMidAnimation(t *testing.T) {
	o := NewObject("mid-dispose", 40, 40)

	g := AnimatePosition(o, 100, 100, 1.0, ease.Linear)

	// Run a few frames.
	g.Update(0.1)
	g.Update(0.1)
	if g.Done {
		t.Fatal("should not be Done yet")
	}

	// Dispose mid-animation.
	o.Dispose()
	savedX := o.X
	savedY := o.Y

	g.Update(0.1)
	if !g.Done {
		t.Fatal("expected Done after target disposed mid-animation")
	}
	if o.X != savedX || o.Y != savedY {
		t.Error("object fields should not change after disposal")
	}
}

func TestCanvasAnimateStepsAndDrops(t *testing.T) {
	c := NewCanvas(800, 600)
	o := NewObject("anim", 40, 40)
	c.Add(o)

	g := AnimatePosition(o, 100, 100, 0.5, ease.Linear)
	c.Animate(g)
	if len(c.anims) != 1 {
		t.Fatalf("expected 1 registered group, got %d", len(c.anims))
	}

	c.stepAnims(0.25)
	if len(c.anims) != 1 {
		t.Fatal("unfinished group should stay registered")
	}
	c.stepAnims(0.25)
	if len(c.anims) != 0 {
		t.Fatal("finished group should be dropped")
	}
	if !g.Done {
		t.Fatal("group should be done")
	}
}

func TestCanvasAnimateIgnoresNilAndDone(t *testing.T) {
	c := NewCanvas(800, 600)

	c.Animate(nil)
	if len(c.anims) != 0 {
		t.Fatal("nil group should not register")
	}

	o := NewObject("done", 40, 40)
	g := AnimatePosition(o, 10, 10, 0.1, ease.Linear)
	g.Done = true
	c.Animate(g)
	if len(c.anims) != 0 {
		t.Fatal("finished group should not register")
	}
}

// --- Straighten ---

func TestStraightenSnapsToNearestRightAngle(t *testing.T) {
	o := NewObject("straighten", 100, 60)

	o.Rotation = -0.2
	o.Straighten()
	assertNear(t, "Rotation", o.Rotation, 0)

	o.Rotation = 1.4
	o.Straighten()
	assertNear(t, "Rotation", o.Rotation, math.Pi/2)

	o.Rotation = 3.0
	o.Straighten()
	assertNear(t, "Rotation", o.Rotation, math.Pi)
}

func TestFxStraightenSettlesExactAngle(t *testing.T) {
	c := NewCanvas(800, 600)
	o := NewObject("straighten", 100, 60)
	o.Rotation = 1.4
	c.Add(o)

	g := c.FxStraighten(o, 0.5)

	c.stepAnims(0.25)
	c.stepAnims(0.25)

	if !g.Done {
		t.Fatal("expected the straighten animation to finish")
	}
	// The completion hook writes the target through SetRotation, so the final
	// angle is exact rather than a float32 approximation.
	assertNear(t, "Rotation", o.Rotation, math.Pi/2)
}

// --- FxRemove ---

func TestFxRemoveFadesThenRemoves(t *testing.T) {
	c := NewCanvas(800, 600)
	o := NewObject("fade", 100, 60)
	c.Add(o)

	var removed int
	c.On(EventRemoved, func(*Event) { removed++ })

	g := c.FxRemove(o, 0.5)

	c.stepAnims(0.25)
	if c.IndexOf(o) < 0 {
		t.Fatal("object must stay on the canvas while fading")
	}
	c.stepAnims(0.25)

	if !g.Done {
		t.Fatal("expected the fade to finish")
	}
	if c.IndexOf(o) >= 0 {
		t.Error("object should be removed after the fade")
	}
	if removed != 1 {
		t.Errorf("removed fired %d times, want 1", removed)
	}
}

func TestFxRemoveVetoKeepsFadedObject(t *testing.T) {
	c := NewCanvas(800, 600)
	o := NewObject("fade", 100, 60)
	c.Add(o)

	c.OnBefore(EventRemoved, func(e *Event) { e.PreventDefault() })

	c.FxRemove(o, 0.5)
	c.stepAnims(0.25)
	c.stepAnims(0.25)

	if c.IndexOf(o) < 0 {
		t.Fatal("vetoed removal must leave the object on the canvas")
	}
	if math.Abs(o.Opacity) > 0.01 {
		t.Errorf("Opacity = %f, want ~0 after the fade", o.Opacity)
	}
}

func TestAnimGroupUpdateZeroAlloc(t *testing.T) {
	o := NewObject("alloc", 40, 40)
	g := AnimatePosition(o, 100, 100, 1.0, ease.Linear)

	// Warm up — first call might differ.
	g.Update(0.01)

	result := testing.AllocsPerRun(100, func() {
		g.Update(0.001)
	})
	if result > 0 {
		t.Errorf("AnimGroup.Update allocated %f times per run, want 0", result)
	}
}
