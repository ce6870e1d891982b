package easel

import (
	"testing"
	"time"
)

// --- Construction ---

func TestNewCanvasDefaults(t *testing.T) {
	c := NewCanvas(800, 600)

	w, h := c.Size()
	if w != 800 || h != 600 {
		t.Errorf("Size() = (%f, %f), want (800, 600)", w, h)
	}
	assertNear(t, "Zoom", c.Zoom(), 1.0)
	assertNear(t, "DragDeadZone", c.DragDeadZone, defaultDragDeadZone)
	if c.DoubleClickInterval != defaultDoubleClickInterval {
		t.Errorf("DoubleClickInterval = %v, want %v", c.DoubleClickInterval, defaultDoubleClickInterval)
	}
	assertNear(t, "DoubleClickRadius", c.DoubleClickRadius, defaultDoubleClickRadius)
	if !c.SelectionEnabled {
		t.Error("selection should be enabled by default")
	}
	if !c.NeedsRender() {
		t.Error("a fresh canvas should want an initial render")
	}
	if len(c.Objects()) != 0 {
		t.Error("a fresh canvas should be empty")
	}
}

func TestSetSizeMarksDirty(t *testing.T) {
	c := NewCanvas(800, 600)
	c.Render(nil)

	c.SetSize(1024, 768)
	w, h := c.Size()
	if w != 1024 || h != 768 {
		t.Errorf("Size() = (%f, %f), want (1024, 768)", w, h)
	}
	if !c.NeedsRender() {
		t.Error("resizing should mark the canvas dirty")
	}
}

// --- Stack management ---

func TestAddAppendsInPainterOrder(t *testing.T) {
	c := NewCanvas(800, 600)
	a := NewObject("a", 10, 10)
	b := NewObject("b", 10, 10)

	var added int
	c.On(EventAdded, func(*Event) { added++ })

	c.Add(a, b)

	objs := c.Objects()
	if len(objs) != 2 || objs[0] != a || objs[1] != b {
		t.Fatal("objects should stack in add order")
	}
	if a.Canvas() != c || b.Canvas() != c {
		t.Error("added objects should reference the canvas")
	}
	if added != 2 {
		t.Errorf("added fired %d times, want 2", added)
	}
}

func TestAddDuplicateIsIgnored(t *testing.T) {
	c := NewCanvas(800, 600)
	a := NewObject("a", 10, 10)

	var added int
	c.On(EventAdded, func(*Event) { added++ })

	c.Add(a)
	c.Add(a)

	if len(c.Objects()) != 1 {
		t.Fatalf("expected 1 object, got %d", len(c.Objects()))
	}
	if added != 1 {
		t.Errorf("added fired %d times, want 1", added)
	}
}

func TestAddVetoSkipsObject(t *testing.T) {
	c := NewCanvas(800, 600)
	a := NewObject("a", 10, 10)
	b := NewObject("b", 10, 10)

	c.OnBefore(EventAdded, func(e *Event) {
		if e.Target.Name == "b" {
			e.PreventDefault()
		}
	})

	c.Add(a, b)

	if c.IndexOf(a) != 0 {
		t.Error("a should have been added")
	}
	if c.IndexOf(b) >= 0 {
		t.Error("b should have been vetoed")
	}
	if b.Canvas() != nil {
		t.Error("a vetoed object must not reference the canvas")
	}
}

func TestAddParentedObjectPanics(t *testing.T) {
	c := NewCanvas(800, 600)
	parent := NewObject("parent", 100, 100)
	child := NewObject("child", 10, 10)
	parent.AddChild(child)

	defer func() {
		if recover() == nil {
			t.Error("expected panic when adding a parented object")
		}
	}()
	c.Add(child)
}

func TestAddAtInsertsAtIndex(t *testing.T) {
	c := NewCanvas(800, 600)
	a := NewObject("a", 10, 10)
	b := NewObject("b", 10, 10)
	c.Add(a, b)

	x := NewObject("x", 10, 10)
	c.AddAt(x, 0)

	objs := c.Objects()
	if objs[0] != x || objs[1] != a || objs[2] != b {
		t.Error("AddAt(0) should insert at the bottom of the stack")
	}
}

func TestAddAtOutOfRangePanics(t *testing.T) {
	c := NewCanvas(800, 600)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range index")
		}
	}()
	c.AddAt(NewObject("x", 10, 10), 5)
}

func TestRemoveTakesObjectOff(t *testing.T) {
	c := NewCanvas(800, 600)
	a := NewObject("a", 10, 10)
	b := NewObject("b", 10, 10)
	c.Add(a, b)

	if !c.Remove(a) {
		t.Fatal("Remove should report true")
	}
	if c.IndexOf(a) >= 0 {
		t.Error("a should be off the canvas")
	}
	if a.Canvas() != nil {
		t.Error("a removed object must not reference the canvas")
	}
	if c.Remove(a) {
		t.Error("removing twice should report false")
	}
}

func TestRemoveVetoKeepsObject(t *testing.T) {
	c := NewCanvas(800, 600)
	a := NewObject("a", 10, 10)
	c.Add(a)

	c.OnBefore(EventRemoved, func(e *Event) { e.PreventDefault() })

	if c.Remove(a) {
		t.Error("a vetoed removal should report false")
	}
	if c.IndexOf(a) != 0 {
		t.Error("a vetoed removal must leave the object in place")
	}
}

func TestRemoveCancelsActiveTransform(t *testing.T) {
	c := NewCanvas(800, 600)
	o := namedBox("box", 0, 0, 100, 60)
	c.Add(o)

	var modified int
	c.On(EventModified, func(*Event) { modified++ })

	press(c, 50, 30)
	drag(c, 120, 90)
	if c.TransformOf(o) == nil {
		t.Fatal("expected an active transform")
	}

	c.Remove(o)

	if c.TransformOf(o) != nil {
		t.Error("removal should cancel the active transform")
	}
	if modified != 1 {
		t.Errorf("modified fired %d times, want 1", modified)
	}
}

func TestRemoveDropsSelectionAndEditing(t *testing.T) {
	c := NewCanvas(800, 600)
	o := namedBox("box", 0, 0, 100, 60)
	c.Add(o)
	c.SetSelection(o)
	c.editing = o

	c.Remove(o)

	if len(c.Selection()) != 0 {
		t.Error("removal should drop the object from the selection")
	}
	if c.editing != nil {
		t.Error("removal should end editing on the object")
	}
}

func TestMoveObjectToReorders(t *testing.T) {
	c := NewCanvas(800, 600)
	a := NewObject("a", 10, 10)
	b := NewObject("b", 10, 10)
	d := NewObject("d", 10, 10)
	c.Add(a, b, d)

	c.MoveObjectTo(a, 2)
	objs := c.Objects()
	if objs[0] != b || objs[1] != d || objs[2] != a {
		t.Fatal("MoveObjectTo should shift neighbors")
	}

	c.BringToFront(b)
	objs = c.Objects()
	if objs[2] != b {
		t.Error("BringToFront should put the object on top")
	}

	c.SendToBack(b)
	objs = c.Objects()
	if objs[0] != b {
		t.Error("SendToBack should put the object at the bottom")
	}
}

func TestMoveObjectToPanics(t *testing.T) {
	c := NewCanvas(800, 600)
	a := NewObject("a", 10, 10)
	c.Add(a)

	t.Run("not on canvas", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic for a foreign object")
			}
		}()
		c.MoveObjectTo(NewObject("x", 10, 10), 0)
	})

	t.Run("index out of range", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Error("expected panic for out-of-range index")
			}
		}()
		c.MoveObjectTo(a, 3)
	})
}

// --- Viewport ---

func TestViewportConversionRoundTrip(t *testing.T) {
	c := NewCanvas(800, 600)
	c.ZoomToPoint(Vec2{}, 2.0)
	c.AbsolutePan(Vec2{X: 100, Y: 50})

	if p := c.Pan(); p.X != -200 || p.Y != -100 {
		t.Errorf("Pan() = %+v, want (-200, -100)", p)
	}

	sx, sy := c.ViewportToScene(0, 0)
	assertNear(t, "sx", sx, 100)
	assertNear(t, "sy", sy, 50)

	vx, vy := c.SceneToViewport(sx, sy)
	assertNear(t, "vx", vx, 0)
	assertNear(t, "vy", vy, 0)
}

func TestZoomToPointKeepsPointFixed(t *testing.T) {
	c := NewCanvas(800, 600)
	p := Vec2{X: 400, Y: 300}

	// The scene point under p before zooming must still sit at p after.
	sx, sy := c.ViewportToScene(p.X, p.Y)
	c.ZoomToPoint(p, 2.0)
	vx, vy := c.SceneToViewport(sx, sy)
	assertNear(t, "vx", vx, p.X)
	assertNear(t, "vy", vy, p.Y)

	sx, sy = c.ViewportToScene(p.X, p.Y)
	c.ZoomToPoint(p, 0.5)
	vx, vy = c.SceneToViewport(sx, sy)
	assertNear(t, "vx", vx, p.X)
	assertNear(t, "vy", vy, p.Y)
}

func TestZoomToPointRejectsNonPositive(t *testing.T) {
	c := NewCanvas(800, 600)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zoom <= 0")
		}
	}()
	c.ZoomToPoint(Vec2{}, 0)
}

func TestViewMatrixMatchesZoomAndPan(t *testing.T) {
	c := NewCanvas(800, 600)
	c.ZoomToPoint(Vec2{}, 2.0)
	c.RelativePan(Vec2{X: 10, Y: 20})

	assertMatrix(t, "view", c.ViewMatrix(), [6]float64{2, 0, 0, 2, 10, 20})
}

func TestVisibleBounds(t *testing.T) {
	c := NewCanvas(800, 600)
	c.ZoomToPoint(Vec2{}, 2.0)
	c.AbsolutePan(Vec2{X: 100, Y: 50})

	b := c.VisibleBounds()
	assertNear(t, "X", b.X, 100)
	assertNear(t, "Y", b.Y, 50)
	assertNear(t, "Width", b.Width, 400)
	assertNear(t, "Height", b.Height, 300)
}

// --- Render boundary ---

func TestRenderRunsDrawAndClearsDirty(t *testing.T) {
	c := NewCanvas(800, 600)

	var order []string
	c.OnBefore(EventRender, func(*Event) { order = append(order, "before") })
	c.On(EventRender, func(*Event) { order = append(order, "after") })

	ok := c.Render(func() { order = append(order, "draw") })

	if !ok {
		t.Fatal("Render should report that draw ran")
	}
	if len(order) != 3 || order[0] != "before" || order[1] != "draw" || order[2] != "after" {
		t.Errorf("order = %v, want [before draw after]", order)
	}
	if c.NeedsRender() {
		t.Error("Render should clear the dirty flag")
	}
}

func TestRenderVetoSkipsDrawAndStaysDirty(t *testing.T) {
	c := NewCanvas(800, 600)
	c.OnBefore(EventRender, func(e *Event) { e.PreventDefault() })

	var drew bool
	if c.Render(func() { drew = true }) {
		t.Error("a vetoed render should report false")
	}
	if drew {
		t.Error("a vetoed render must not call draw")
	}
	if !c.NeedsRender() {
		t.Error("a vetoed render should leave the canvas dirty")
	}
}

func TestGeometryChangesMarkDirty(t *testing.T) {
	c := NewCanvas(800, 600)
	o := NewObject("box", 100, 60)
	c.Add(o)
	c.Render(nil)

	o.SetPosition(10, 20)
	if !c.NeedsRender() {
		t.Error("moving an object should mark the canvas dirty")
	}
}

// --- Cursor ---

func TestCursorHookReceivesChanges(t *testing.T) {
	c := NewCanvas(800, 600)

	var pushed []Cursor
	c.SetCursorHook(func(cur Cursor) { pushed = append(pushed, cur) })

	c.setCursor(CursorMove)
	c.pushCursor()
	c.pushCursor() // unchanged, must not push again
	c.setCursor(CursorDefault)
	c.pushCursor()

	if len(pushed) != 2 || pushed[0] != CursorMove || pushed[1] != CursorDefault {
		t.Errorf("pushed = %v, want [CursorMove CursorDefault]", pushed)
	}
}

// --- Clock ---

func TestCanvasClockIsSwappable(t *testing.T) {
	c := NewCanvas(800, 600)
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }

	if !c.now().Equal(fixed) {
		t.Error("the canvas clock should be swappable for tests")
	}
}
