package easel

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Canvas is the top-level object that owns the object stack, selection,
// viewport transform, input state, and the transform machine. Hosts call
// Update once per tick and Render once per frame, and draw the objects
// themselves in stack order using ViewMatrix and each object's world matrix.
type Canvas struct {
	// Interaction tuning. May be adjusted at any time.
	DragDeadZone        float64       // movement below this never counts as a drag
	DoubleClickInterval time.Duration // max delay between two clicks of a double click
	DoubleClickRadius   float64       // max distance between two clicks of a double click
	SkipOffscreen       bool          // skip hit testing objects fully outside the viewport
	SelectionEnabled    bool          // dragging on empty space builds a selection box
	DefaultCursor       Cursor        // cursor when nothing interactive is under the pointer

	objects []*Object // painter order: later entries draw, and hit test, on top

	width, height float64

	// Viewport. Scene coordinates map to viewport coordinates through
	// [zoom, 0, 0, zoom, panX, panY].
	zoom       float64
	panX, panY float64

	handlers emitter
	machine  *transformMachine

	selection []*Object

	// Input state
	pointers     [maxPointers]pointerState
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
	injected     []syntheticPointerEvent
	script       *GestureScript
	now          func() time.Time // swappable clock for double-click timing

	// Text editing
	editing  *Object
	editKeys editKeyState

	// Animations registered through Animate, stepped each Update.
	anims []*AnimGroup

	cursorHook func(Cursor)
	wantCursor Cursor
	lastCursor Cursor

	needsRender bool
	debug       bool
}

// NewCanvas creates an empty canvas with the given viewport size in logical
// pixels. Selection is enabled by default.
func NewCanvas(width, height float64) *Canvas {
	c := &Canvas{
		DragDeadZone:        defaultDragDeadZone,
		DoubleClickInterval: defaultDoubleClickInterval,
		DoubleClickRadius:   defaultDoubleClickRadius,
		SelectionEnabled:    true,
		width:               width,
		height:              height,
		zoom:                1.0,
		now:                 time.Now,
		needsRender:         true,
	}
	c.machine = newTransformMachine(c)
	return c
}

// Size returns the viewport size in logical pixels.
func (c *Canvas) Size() (width, height float64) {
	return c.width, c.height
}

// SetSize updates the viewport size in logical pixels.
func (c *Canvas) SetSize(width, height float64) {
	c.width, c.height = width, height
	c.requestRender()
}

// Add appends objects to the top of the canvas stack. Each addition emits an
// added event pair; a vetoed before phase skips that object. Objects must be
// parentless (remove them from any group first).
func (c *Canvas) Add(objs ...*Object) {
	for _, o := range objs {
		if globalDebug {
			debugCheckDisposed(o, "Add")
		}
		if o.Parent != nil {
			panic("easel: Add: object has a parent; remove it from its group first")
		}
		if o.canvas == c {
			continue
		}
		ev := &Event{Kind: EventAdded, Target: o}
		c.fire(ev, func() {
			c.objects = append(c.objects, o)
			o.canvas = c
			markSubtreeDirty(o)
			updateWorldTransforms(o, identityMatrix, 1.0, false)
			o.SetCoords()
			c.requestRender()
		})
	}
}

// AddAt inserts an object at the given stack index (0 = bottom).
func (c *Canvas) AddAt(o *Object, index int) {
	if index < 0 || index > len(c.objects) {
		panic("easel: AddAt: index out of range")
	}
	if o.Parent != nil {
		panic("easel: AddAt: object has a parent; remove it from its group first")
	}
	if o.canvas == c {
		return
	}
	ev := &Event{Kind: EventAdded, Target: o}
	c.fire(ev, func() {
		c.objects = append(c.objects, nil)
		copy(c.objects[index+1:], c.objects[index:])
		c.objects[index] = o
		o.canvas = c
		markSubtreeDirty(o)
		updateWorldTransforms(o, identityMatrix, 1.0, false)
		o.SetCoords()
		c.requestRender()
	})
}

// Remove takes an object off the canvas. Any transform active on the object
// is cancelled first (its modified event still fires if an action was
// performed), then the removed event pair is emitted. A vetoed before phase
// leaves the object on the canvas and reports false.
func (c *Canvas) Remove(o *Object) bool {
	idx := c.IndexOf(o)
	if idx < 0 {
		return false
	}
	ev := &Event{Kind: EventRemoved, Target: o}
	return c.fire(ev, func() {
		c.CancelTransform(o)
		c.dropFromSelection(o)
		if c.editing == o {
			c.editing = nil
		}
		c.detach(o)
	})
}

// detach removes an object from the stack without emitting events. Dispose
// falls back to this when a removal veto would otherwise strand a disposed
// object on the canvas.
func (c *Canvas) detach(o *Object) {
	idx := c.IndexOf(o)
	if idx < 0 {
		return
	}
	copy(c.objects[idx:], c.objects[idx+1:])
	c.objects = c.objects[:len(c.objects)-1]
	o.canvas = nil
	c.requestRender()
}

// Objects returns the canvas stack in painter order (index 0 draws first,
// the last entry draws on top). The returned slice MUST NOT be mutated.
func (c *Canvas) Objects() []*Object {
	return c.objects
}

// IndexOf returns the stack index of an object, or -1 if it is not on the
// canvas.
func (c *Canvas) IndexOf(o *Object) int {
	for i, obj := range c.objects {
		if obj == o {
			return i
		}
	}
	return -1
}

// MoveObjectTo moves an object to the given stack index, shifting its
// neighbors.
func (c *Canvas) MoveObjectTo(o *Object, index int) {
	cur := c.IndexOf(o)
	if cur < 0 {
		panic("easel: MoveObjectTo: object is not on this canvas")
	}
	if index < 0 || index >= len(c.objects) {
		panic("easel: MoveObjectTo: index out of range")
	}
	if cur == index {
		return
	}
	copy(c.objects[cur:], c.objects[cur+1:])
	c.objects = c.objects[:len(c.objects)-1]
	c.objects = append(c.objects, nil)
	copy(c.objects[index+1:], c.objects[index:])
	c.objects[index] = o
	c.requestRender()
}

// BringToFront moves an object to the top of the stack.
func (c *Canvas) BringToFront(o *Object) {
	c.MoveObjectTo(o, len(c.objects)-1)
}

// SendToBack moves an object to the bottom of the stack.
func (c *Canvas) SendToBack(o *Object) {
	c.MoveObjectTo(o, 0)
}

// Update processes input, advances animations, and steps any gesture script.
// Call it once per tick from the host's update loop.
func (c *Canvas) Update() {
	dt := float32(1.0 / float64(ebiten.TPS()))

	// Refresh world transforms first so hit testing and control placement see
	// accurate positions this frame.
	c.refreshWorld()

	if c.script != nil && !c.script.Done() {
		c.script.step(c)
	}
	c.stepAnims(dt)

	if !c.processInjectedInput() {
		c.processRealInput()
	}
	c.processEditingKeys()
	c.pushCursor()
}

func (c *Canvas) refreshWorld() {
	for _, o := range c.objects {
		updateWorldTransforms(o, identityMatrix, 1.0, false)
	}
}

// Render brackets the host's draw pass with the render boundary events and
// clears the dirty flag. A vetoed before phase skips draw and leaves the
// canvas dirty. Reports whether draw ran.
func (c *Canvas) Render(draw func()) bool {
	ev := &Event{Kind: EventRender}
	return c.fire(ev, func() {
		if draw != nil {
			draw()
		}
		c.needsRender = false
	})
}

// NeedsRender reports whether anything changed since the last Render.
func (c *Canvas) NeedsRender() bool {
	return c.needsRender
}

func (c *Canvas) requestRender() {
	c.needsRender = true
}

// Zoom returns the current viewport zoom factor.
func (c *Canvas) Zoom() float64 {
	return c.zoom
}

// SetZoom zooms the viewport about its origin, keeping the scene point at
// viewport (0,0) fixed.
func (c *Canvas) SetZoom(zoom float64) {
	c.ZoomToPoint(Vec2{}, zoom)
}

// ZoomToPoint zooms the viewport keeping the scene point currently under the
// given viewport point fixed on screen.
func (c *Canvas) ZoomToPoint(p Vec2, zoom float64) {
	if zoom <= 0 {
		panic("easel: ZoomToPoint: zoom must be positive")
	}
	sx := (p.X - c.panX) / c.zoom
	sy := (p.Y - c.panY) / c.zoom
	c.zoom = zoom
	c.panX = p.X - sx*zoom
	c.panY = p.Y - sy*zoom
	c.requestRender()
}

// Pan returns the current viewport translation.
func (c *Canvas) Pan() Vec2 {
	return Vec2{X: c.panX, Y: c.panY}
}

// AbsolutePan scrolls the viewport so the given scene point sits at viewport
// (0,0).
func (c *Canvas) AbsolutePan(p Vec2) {
	c.panX = -p.X * c.zoom
	c.panY = -p.Y * c.zoom
	c.requestRender()
}

// RelativePan scrolls the viewport by the given delta in viewport pixels.
func (c *Canvas) RelativePan(d Vec2) {
	c.panX += d.X
	c.panY += d.Y
	c.requestRender()
}

// ViewMatrix returns the scene-to-viewport affine matrix. Hosts fold this
// into each object's world matrix when drawing.
func (c *Canvas) ViewMatrix() [6]float64 {
	return [6]float64{c.zoom, 0, 0, c.zoom, c.panX, c.panY}
}

// ViewportToScene converts viewport (screen) coordinates to scene coordinates.
func (c *Canvas) ViewportToScene(x, y float64) (float64, float64) {
	return (x - c.panX) / c.zoom, (y - c.panY) / c.zoom
}

// SceneToViewport converts scene coordinates to viewport coordinates.
func (c *Canvas) SceneToViewport(x, y float64) (float64, float64) {
	return x*c.zoom + c.panX, y*c.zoom + c.panY
}

// VisibleBounds returns the scene-space rectangle currently visible through
// the viewport.
func (c *Canvas) VisibleBounds() Rect {
	x0, y0 := c.ViewportToScene(0, 0)
	x1, y1 := c.ViewportToScene(c.width, c.height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// TransformOf returns the transform currently active on the given object, or
// nil when the object is idle.
func (c *Canvas) TransformOf(o *Object) *Transform {
	return c.machine.transformOf(o)
}

// CancelTransform force-finishes any transform active on the object. The
// object keeps the geometry of the last applied action mutation (no
// rollback), and a modified event still fires if an action was performed.
// Reports whether a transform was active.
func (c *Canvas) CancelTransform(o *Object) bool {
	t := c.machine.transformOf(o)
	if t == nil {
		return false
	}
	c.machine.cancel(t)
	c.clearPointerTransform(t)
	return true
}

// Animate registers an animation group to be stepped by Update until done.
func (c *Canvas) Animate(g *AnimGroup) {
	if g == nil || g.Done {
		return
	}
	c.anims = append(c.anims, g)
}

func (c *Canvas) stepAnims(dt float32) {
	if len(c.anims) == 0 {
		return
	}
	live := c.anims[:0]
	for _, g := range c.anims {
		g.Update(dt)
		if !g.Done {
			live = append(live, g)
		}
	}
	for i := len(live); i < len(c.anims); i++ {
		c.anims[i] = nil
	}
	c.anims = live
}

// SetCursorHook overrides how the canvas applies the pointer cursor. By
// default cursor changes are pushed to ebiten.SetCursorShape; hosts that
// render their own cursor can intercept them here.
func (c *Canvas) SetCursorHook(fn func(Cursor)) {
	c.cursorHook = fn
}

func (c *Canvas) setCursor(cur Cursor) {
	c.wantCursor = cur
}

func (c *Canvas) pushCursor() {
	if c.wantCursor == c.lastCursor {
		return
	}
	c.lastCursor = c.wantCursor
	if c.cursorHook != nil {
		c.cursorHook(c.wantCursor)
		return
	}
	ebiten.SetCursorShape(c.wantCursor.EbitenShape())
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-object
// access panics, tree depth and reactor recursion warnings are logged, and
// transform and event lifecycles are traced at logrus debug level.
func (c *Canvas) SetDebugMode(enabled bool) {
	c.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Canvas debug flag so that object
// operations (which lack a Canvas pointer) can check it cheaply. Only valid
// with a single Canvas; multiple Canvases with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool
