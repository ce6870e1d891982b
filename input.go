package easel

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constants ---

const (
	maxPointers         = 10  // pointer 0 = mouse, 1-9 = touch
	defaultDragDeadZone = 4.0 // pixels

	defaultDoubleClickInterval = 500 * time.Millisecond
	defaultDoubleClickRadius   = 5.0 // pixels
)

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a convex polygon hit area in local coordinates.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside a convex polygon using cross-product sign test.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}

	// Check that the point is on the same side of every edge.
	var positive, negative bool
	for i := 0; i < n; i++ {
		x1 := p.Points[i].X
		y1 := p.Points[i].Y
		j := (i + 1) % n
		x2 := p.Points[j].X
		y2 := p.Points[j].Y

		cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// --- Target resolution ---

// resolution is the outcome of resolving a scene point against the stack:
// the topmost hit object, plus the innermost-first chain of descendants
// under the point when the hit is a group that opts into subtarget checks.
type resolution struct {
	target     *Object
	subtargets []*Object // innermost-first, excludes target
}

func (r resolution) innermost() *Object {
	if len(r.subtargets) > 0 {
		return r.subtargets[0]
	}
	return r.target
}

// chain appends the resolution's objects innermost-first, target last.
func (r resolution) chain(buf []*Object) []*Object {
	buf = append(buf, r.subtargets...)
	if r.target != nil {
		buf = append(buf, r.target)
	}
	return buf
}

func (r resolution) equal(other resolution) bool {
	if r.target != other.target || len(r.subtargets) != len(other.subtargets) {
		return false
	}
	for i := range r.subtargets {
		if r.subtargets[i] != other.subtargets[i] {
			return false
		}
	}
	return true
}

// objectContainsLocal tests whether (lx, ly) falls inside an object's hit
// region. Uses HitShape if set; otherwise the body rectangle.
func objectContainsLocal(o *Object, lx, ly float64) bool {
	if o.HitShape != nil {
		return o.HitShape.Contains(lx, ly)
	}
	if o.Width == 0 && o.Height == 0 {
		return false
	}
	return lx >= 0 && lx <= o.Width && ly >= 0 && ly <= o.Height
}

func objectContains(o *Object, x, y float64) bool {
	lx, ly := o.SceneToLocal(x, y)
	return objectContainsLocal(o, lx, ly)
}

// FindTarget resolves the topmost interactable object under a scene point,
// walking the stack in reverse painter order. Groups that opt into subtarget
// checks also report the innermost-first chain of descendants under the
// point. The target is nil when only empty space is hit.
func (c *Canvas) FindTarget(x, y float64) (*Object, []*Object) {
	res := c.resolve(x, y)
	return res.target, res.subtargets
}

func (c *Canvas) resolve(x, y float64) resolution {
	var visible Rect
	if c.SkipOffscreen {
		visible = c.VisibleBounds()
	}
	for i := len(c.objects) - 1; i >= 0; i-- {
		o := c.objects[i]
		if !o.Visible || !o.Interactable {
			continue
		}
		if c.SkipOffscreen && !o.AABB().Intersects(visible) {
			continue
		}
		if !objectContains(o, x, y) {
			continue
		}
		res := resolution{target: o}
		if o.Kind == KindGroup && o.SubtargetCheck {
			res.subtargets = descendChain(o, x, y)
		}
		return res
	}
	return resolution{}
}

// descendChain finds the innermost-first chain of group descendants hit at
// (x, y). Children test topmost-first. Nil when no child is hit, leaving the
// group itself as the innermost hit.
func descendChain(group *Object, x, y float64) []*Object {
	for i := len(group.children) - 1; i >= 0; i-- {
		child := group.children[i]
		if !child.Visible || !child.Interactable || !objectContains(child, x, y) {
			continue
		}
		if child.Kind == KindGroup && child.SubtargetCheck {
			if sub := descendChain(child, x, y); sub != nil {
				return append(sub, child)
			}
		}
		return []*Object{child}
	}
	return nil
}

// resolveDrop finds the topmost drop acceptor under the point, skipping the
// drag source itself.
func (c *Canvas) resolveDrop(src *Object, x, y float64) resolution {
	for i := len(c.objects) - 1; i >= 0; i-- {
		o := c.objects[i]
		if o == src || !o.Visible || !o.Interactable || !o.AcceptsDrop {
			continue
		}
		if objectContains(o, x, y) {
			return resolution{target: o}
		}
	}
	return resolution{}
}

// cornerAt tests the selected object's controls. Controls extend past the
// body (the rotation handle floats above it), so they are checked before
// stack resolution, and only a single selected object shows controls.
func (c *Canvas) cornerAt(x, y float64, touch bool) (string, *Control) {
	if len(c.selection) != 1 {
		return "", nil
	}
	o := c.selection[0]
	if o.Controls == nil || !o.Visible || !o.Interactable {
		return "", nil
	}
	return o.Controls.hitTest(o, x, y, touch, defaultCornerSize)
}

// chainDiff returns the entries of a that are absent from b, order preserved.
func chainDiff(a, b []*Object) []*Object {
	var out []*Object
	for _, o := range a {
		if !containsObject(b, o) {
			out = append(out, o)
		}
	}
	return out
}

func containsObject(s []*Object, o *Object) bool {
	for _, e := range s {
		if e == o {
			return true
		}
	}
	return false
}

// --- Per-pointer state ---

type pointerState struct {
	down           bool
	button         MouseButton // button captured at press time
	startX, startY float64     // scene position at press
	lastX, lastY   float64
	isClick        bool // no movement beyond the dead zone since press

	// Gesture resolution pinned at press. Later moves and the release route
	// to it even when the pointer wanders off the object.
	target     *Object
	subtargets []*Object
	corner     string

	transform *Transform

	hover resolution // last idle resolution, for over/out diffing

	// Payload drag
	dragging    bool
	dragRefused bool // dragstart was vetoed; gesture stays inert until release
	dropHover   resolution

	// Selection box armed by a press on empty space.
	boxActive bool

	// Selected co-members following a multi-select body drag.
	followers []follower

	// Double click
	lastClickAt time.Time
	lastClickX  float64
	lastClickY  float64
}

type follower struct {
	obj    *Object
	x0, y0 float64
}

// --- Input processing ---

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

// processRealInput is called from Canvas.Update to route all mouse and touch
// input. World transforms are already refreshed for this tick.
func (c *Canvas) processRealInput() {
	mods := readModifiers()
	c.processMousePointer(mods)
	c.processTouchPointers(mods)
	c.processWheel(mods)
}

// processMousePointer handles mouse input (pointer 0).
func (c *Canvas) processMousePointer(mods KeyModifiers) {
	mx, my := ebiten.CursorPosition()
	vx, vy := float64(mx), float64(my)

	// Detect which button is pressed. If the pointer is already down, the
	// stored button wins so it cannot change mid-gesture.
	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}

	c.processPointer(0, vx, vy, pressed, button, mods, false)
}

// processTouchPointers handles touch input (pointers 1-9).
func (c *Canvas) processTouchPointers(mods KeyModifiers) {
	touchIDs := ebiten.AppendTouchIDs(c.prevTouchIDs[:0])
	c.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := c.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true

		tx, ty := ebiten.TouchPosition(tid)
		c.processPointer(slot, float64(tx), float64(ty), true, MouseButtonLeft, mods, true)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if c.touchUsed[i] && !activeSlots[i] {
			ps := &c.pointers[i]
			if ps.down {
				vx, vy := c.SceneToViewport(ps.lastX, ps.lastY)
				c.processPointer(i, vx, vy, false, MouseButtonLeft, mods, true)
			}
			c.touchUsed[i] = false
			c.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (c *Canvas) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if c.touchUsed[i] && c.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !c.touchUsed[i] {
			c.touchUsed[i] = true
			c.touchMap[i] = tid
			return i
		}
	}
	return -1
}

func (c *Canvas) processWheel(mods KeyModifiers) {
	dx, dy := ebiten.Wheel()
	if dx == 0 && dy == 0 {
		return
	}
	mx, my := ebiten.CursorPosition()
	c.fireWheel(float64(mx), float64(my), dx, dy, mods)
}

func (c *Canvas) fireWheel(vx, vy, dx, dy float64, mods KeyModifiers) {
	x, y := c.ViewportToScene(vx, vy)
	res := c.resolve(x, y)
	ev := c.pointerEvent(EventWheel, res, 0, x, y, Vec2{X: vx, Y: vy}, 0, mods)
	ev.WheelDX = dx
	ev.WheelDY = dy
	c.fire(ev, nil)
}

// processPointer runs the router for a single pointer. Coordinates arrive in
// viewport space raw from the device; everything downstream of the viewport
// inverse works in scene space.
func (c *Canvas) processPointer(pointerID int, vx, vy float64, pressed bool, button MouseButton, mods KeyModifiers, touch bool) {
	ps := &c.pointers[pointerID]
	x, y := c.ViewportToScene(vx, vy)
	vp := Vec2{X: vx, Y: vy}

	switch {
	case pressed && !ps.down:
		c.pointerDown(ps, pointerID, x, y, vp, button, mods, touch)
	case !pressed && ps.down:
		c.pointerUp(ps, pointerID, x, y, vp, mods, touch)
	case pressed && ps.down:
		c.pointerDrag(ps, pointerID, x, y, vp, mods)
	default:
		c.pointerHover(ps, pointerID, x, y, vp, mods, touch)
	}
}

// pointerHover routes an unpressed pointer: reconcile over/out, then emit a
// move when the position changed. The move's default action updates the
// cursor, so a vetoed move leaves the cursor alone.
func (c *Canvas) pointerHover(ps *pointerState, pointerID int, x, y float64, vp Vec2, mods KeyModifiers, touch bool) {
	res := c.resolve(x, y)
	if _, ctl := c.cornerAt(x, y, touch); ctl != nil {
		// Hovering a control counts as hovering its object.
		res = resolution{target: c.selection[0]}
	}
	moved := x != ps.lastX || y != ps.lastY
	c.diffHover(ps, res, pointerID, x, y, vp, mods)
	if moved {
		ev := c.pointerEvent(EventMove, res, pointerID, x, y, vp, 0, mods)
		c.fire(ev, func() {
			c.setCursor(c.hoverCursor(x, y, res, touch))
		})
		ps.lastX, ps.lastY = x, y
	} else if pointerID == 0 {
		// Keep the cursor current even without movement; controls can move
		// under a resting pointer when their object animates.
		c.setCursor(c.hoverCursor(x, y, res, touch))
	}
}

// diffHover reconciles the pointer's previous resolution against the current
// one: everything departed gets one out event, everything entered gets one
// over event, with chain order preserved. Previous and Next always carry the
// innermost object of each side so listeners can tell a crossing from an
// entry out of empty space.
func (c *Canvas) diffHover(ps *pointerState, next resolution, pointerID int, x, y float64, vp Vec2, mods KeyModifiers) {
	prev := ps.hover
	if prev.equal(next) {
		return
	}
	ps.hover = next

	prevChain := prev.chain(nil)
	nextChain := next.chain(nil)
	left := chainDiff(prevChain, nextChain)
	entered := chainDiff(nextChain, prevChain)
	prevInner := prev.innermost()
	nextInner := next.innermost()

	if len(left) > 0 {
		ev := c.pointerEvent(EventOut, resolution{
			target:     left[len(left)-1],
			subtargets: left[:len(left)-1],
		}, pointerID, x, y, vp, 0, mods)
		ev.Previous = prevInner
		ev.Next = nextInner
		c.fire(ev, nil)
	}
	if len(entered) > 0 {
		ev := c.pointerEvent(EventOver, resolution{
			target:     entered[len(entered)-1],
			subtargets: entered[:len(entered)-1],
		}, pointerID, x, y, vp, 0, mods)
		ev.Previous = prevInner
		ev.Next = nextInner
		c.fire(ev, nil)
	}
}

// pointerDown routes a fresh press. The down default action is the gesture
// arm: text editing exit, selection update, and transform or payload-drag
// start. A vetoed down leaves the pointer tracked but arms nothing.
func (c *Canvas) pointerDown(ps *pointerState, pointerID int, x, y float64, vp Vec2, button MouseButton, mods KeyModifiers, touch bool) {
	res := c.resolve(x, y)
	corner, ctl := c.cornerAt(x, y, touch)
	if ctl != nil {
		// The grabbed control belongs to the selected object, which may sit
		// under or beside the resolved target.
		res = resolution{target: c.selection[0]}
	}
	c.diffHover(ps, res, pointerID, x, y, vp, mods)

	ps.down = true
	ps.button = button
	ps.startX, ps.startY = x, y
	ps.lastX, ps.lastY = x, y
	ps.isClick = true
	ps.target = res.target
	ps.subtargets = res.subtargets
	ps.corner = corner
	ps.transform = nil
	ps.dragging = false
	ps.dragRefused = false
	ps.boxActive = false
	ps.followers = nil

	ev := c.pointerEvent(EventDown, res, pointerID, x, y, vp, button, mods)
	c.fire(ev, func() {
		c.armGesture(ps, res, corner, ctl, pointerID, x, y, button, mods)
	})
}

// armGesture is the down default action: exit text editing when the press
// lands elsewhere, update the selection, then arm whichever gesture the
// press starts (control transform, body drag, payload drag, or box).
func (c *Canvas) armGesture(ps *pointerState, res resolution, corner string, ctl *Control, pointerID int, x, y float64, button MouseButton, mods KeyModifiers) {
	if c.editing != nil && c.editing != res.target {
		c.ExitEditing()
	}

	target := res.target
	if target == nil {
		if c.SelectionEnabled {
			ps.boxActive = true
		}
		return
	}

	if ctl == nil && target.Selectable {
		c.selectGesture(target, mods&ModShift != 0)
	}

	if target.Draggable && ctl == nil {
		// Payload drags replace body-drag transforms on draggable objects;
		// the drag itself starts once the dead zone breaks.
		return
	}

	t := c.machine.begin(target, corner, ctl, x, y, pointerID, button, mods)
	if t == nil {
		return
	}
	ps.transform = t
	if t.Action == ActionDrag && len(c.selection) > 1 && c.IsSelected(target) {
		for _, m := range c.selection {
			if m != target {
				ps.followers = append(ps.followers, follower{obj: m, x0: m.X, y0: m.Y})
			}
		}
	}
}

// pointerDrag routes a pressed move. The move's default action is the
// gesture routing itself, so a vetoed move skips exactly one handler call.
func (c *Canvas) pointerDrag(ps *pointerState, pointerID int, x, y float64, vp Vec2, mods KeyModifiers) {
	if x == ps.lastX && y == ps.lastY {
		return
	}
	if ps.isClick {
		dx := x - ps.startX
		dy := y - ps.startY
		if math.Sqrt(dx*dx+dy*dy) > c.DragDeadZone {
			ps.isClick = false
		}
	}

	res := resolution{target: ps.target, subtargets: ps.subtargets}
	ev := c.pointerEvent(EventMove, res, pointerID, x, y, vp, ps.button, mods)
	c.fire(ev, func() {
		c.routeDragMove(ps, pointerID, x, y, vp, mods)
	})
	ps.lastX, ps.lastY = x, y
}

func (c *Canvas) routeDragMove(ps *pointerState, pointerID int, x, y float64, vp Vec2, mods KeyModifiers) {
	switch {
	case ps.transform != nil:
		changed := c.machine.move(ps.transform, x, y, mods)
		if changed && len(ps.followers) > 0 {
			c.moveFollowers(ps.transform, ps.followers)
		}
		c.setCursor(transformCursor(ps.transform))
	case ps.target != nil && ps.target.Draggable:
		c.routePayloadDrag(ps, pointerID, x, y, vp, mods)
	case ps.boxActive && !ps.isClick:
		// The box rectangle is derived from pointer state when drawn.
		c.requestRender()
	}
}

func transformCursor(t *Transform) Cursor {
	if t.control != nil && t.control.CursorHandler != nil {
		return t.control.CursorHandler(t.control, t.Target)
	}
	return CursorMove
}

func (c *Canvas) routePayloadDrag(ps *pointerState, pointerID int, x, y float64, vp Vec2, mods KeyModifiers) {
	if ps.dragRefused {
		return
	}
	src := ps.target
	if !ps.dragging {
		if ps.isClick {
			return // still inside the dead zone
		}
		ev := c.pointerEvent(EventDragStart, resolution{target: src}, pointerID, x, y, vp, ps.button, mods)
		ev.Source = src
		ev.Payload = src.DragPayload
		if !c.fire(ev, nil) {
			ps.dragRefused = true
			return
		}
		ps.dragging = true
	}

	// drag fires on the source for every routed move while the drag is live.
	dragEv := c.pointerEvent(EventDrag, resolution{target: src}, pointerID, x, y, vp, ps.button, mods)
	dragEv.Source = src
	dragEv.Payload = src.DragPayload
	c.fire(dragEv, nil)

	drop := c.resolveDrop(src, x, y)
	c.diffDropHover(ps, drop, pointerID, x, y, vp, mods)
	if drop.target != nil {
		overEv := c.pointerEvent(EventDragOver, drop, pointerID, x, y, vp, ps.button, mods)
		overEv.Source = src
		overEv.Payload = src.DragPayload
		c.fire(overEv, nil)
	}
}

// diffDropHover mirrors diffHover for the drop-acceptor chain during a
// payload drag, emitting dragleave and dragenter instead of out and over.
func (c *Canvas) diffDropHover(ps *pointerState, next resolution, pointerID int, x, y float64, vp Vec2, mods KeyModifiers) {
	prev := ps.dropHover
	if prev.equal(next) {
		return
	}
	ps.dropHover = next
	src := ps.target

	if prev.target != nil {
		ev := c.pointerEvent(EventDragLeave, prev, pointerID, x, y, vp, ps.button, mods)
		ev.Source = src
		ev.Payload = src.DragPayload
		ev.Previous = prev.target
		ev.Next = next.target
		c.fire(ev, nil)
	}
	if next.target != nil {
		ev := c.pointerEvent(EventDragEnter, next, pointerID, x, y, vp, ps.button, mods)
		ev.Source = src
		ev.Payload = src.DragPayload
		ev.Previous = prev.target
		ev.Next = next.target
		c.fire(ev, nil)
	}
}

// pointerUp routes a release. The up default action completes click-level
// gestures (empty-space selection changes); transform finalization and
// payload-drag teardown are driven by the physical release itself and happen
// even when the up's before phase was vetoed.
func (c *Canvas) pointerUp(ps *pointerState, pointerID int, x, y float64, vp Vec2, mods KeyModifiers, touch bool) {
	res := resolution{target: ps.target, subtargets: ps.subtargets}
	ev := c.pointerEvent(EventUp, res, pointerID, x, y, vp, ps.button, mods)
	ev.IsClick = ps.isClick
	upOK := c.fire(ev, func() {
		if ps.target == nil {
			c.finishEmptyGesture(ps, x, y, mods)
		}
	})

	if ps.transform != nil {
		c.machine.end(ps.transform, x, y, mods)
		ps.transform = nil
	}
	if ps.dragging {
		c.finishPayloadDrag(ps, pointerID, x, y, vp, mods)
	}

	if upOK && ps.isClick {
		c.maybeDoubleClick(ps, res, pointerID, x, y, vp, mods)
	}

	ps.down = false
	ps.target = nil
	ps.subtargets = nil
	ps.corner = ""
	ps.dragging = false
	ps.dragRefused = false
	ps.boxActive = false
	ps.followers = nil

	if touch {
		// Touch pointers leave when they lift.
		c.diffHover(ps, resolution{}, pointerID, x, y, vp, mods)
	}
}

func (c *Canvas) finishPayloadDrag(ps *pointerState, pointerID int, x, y float64, vp Vec2, mods KeyModifiers) {
	src := ps.target
	if drop := ps.dropHover; drop.target != nil {
		ev := c.pointerEvent(EventDrop, drop, pointerID, x, y, vp, ps.button, mods)
		ev.Source = src
		ev.Payload = src.DragPayload
		c.fire(ev, nil)
		c.diffDropHover(ps, resolution{}, pointerID, x, y, vp, mods)
	}
	endEv := c.pointerEvent(EventDragEnd, resolution{target: src}, pointerID, x, y, vp, ps.button, mods)
	endEv.Source = src
	endEv.Payload = src.DragPayload
	c.fire(endEv, nil)
}

func (c *Canvas) maybeDoubleClick(ps *pointerState, res resolution, pointerID int, x, y float64, vp Vec2, mods KeyModifiers) {
	now := c.now()
	dx := x - ps.lastClickX
	dy := y - ps.lastClickY
	if !ps.lastClickAt.IsZero() &&
		now.Sub(ps.lastClickAt) <= c.DoubleClickInterval &&
		math.Sqrt(dx*dx+dy*dy) <= c.DoubleClickRadius {
		ps.lastClickAt = time.Time{} // a triple click is a double plus a click
		ev := c.pointerEvent(EventDoubleClick, res, pointerID, x, y, vp, ps.button, mods)
		ev.IsClick = true
		c.fire(ev, func() {
			if res.target != nil && res.target.Text != nil && res.target.Text.Editable {
				c.EnterEditing(res.target)
			}
		})
		return
	}
	ps.lastClickAt = now
	ps.lastClickX, ps.lastClickY = x, y
}

func (c *Canvas) pointerEvent(kind EventKind, res resolution, pointerID int, x, y float64, vp Vec2, button MouseButton, mods KeyModifiers) *Event {
	return &Event{
		Kind:          kind,
		Target:        res.target,
		Subtargets:    res.subtargets,
		ScenePoint:    Vec2{X: x, Y: y},
		ViewportPoint: vp,
		PointerID:     pointerID,
		Button:        button,
		Modifiers:     mods,
	}
}

// hoverCursor picks the cursor for an idle pointer: the hovered control's
// cursor on the selected object, the text cursor inside an edited text body,
// a move cursor over anything movable, else the canvas default.
func (c *Canvas) hoverCursor(x, y float64, res resolution, touch bool) Cursor {
	if _, ctl := c.cornerAt(x, y, touch); ctl != nil {
		if ctl.CursorHandler != nil {
			return ctl.CursorHandler(ctl, c.selection[0])
		}
		return CursorPointer
	}
	if res.target == nil {
		return c.DefaultCursor
	}
	if res.target.Text != nil && c.editing == res.target {
		return CursorText
	}
	if res.target.HoverCursor != CursorDefault {
		return res.target.HoverCursor
	}
	if res.target.Movable {
		return CursorMove
	}
	return c.DefaultCursor
}

// clearPointerTransform detaches a cancelled transform from whichever
// pointer drives it, so later moves of that pointer do not resurrect it.
func (c *Canvas) clearPointerTransform(t *Transform) {
	for i := range c.pointers {
		if c.pointers[i].transform == t {
			c.pointers[i].transform = nil
		}
	}
}

// CancelPointer force-resets one pointer's gesture: any transform it drives
// is cancelled (keeping the geometry already applied), a live payload drag
// ends without a drop, and an armed selection box is abandoned. Hover state
// survives so over/out pairing stays intact.
func (c *Canvas) CancelPointer(pointerID int) {
	if pointerID < 0 || pointerID >= maxPointers {
		return
	}
	ps := &c.pointers[pointerID]
	if !ps.down {
		return
	}
	if ps.transform != nil {
		c.machine.cancel(ps.transform)
		ps.transform = nil
	}
	if ps.dragging {
		vx, vy := c.SceneToViewport(ps.lastX, ps.lastY)
		vp := Vec2{X: vx, Y: vy}
		c.diffDropHover(ps, resolution{}, pointerID, ps.lastX, ps.lastY, vp, 0)
		endEv := c.pointerEvent(EventDragEnd, resolution{target: ps.target}, pointerID, ps.lastX, ps.lastY, vp, ps.button, 0)
		endEv.Source = ps.target
		endEv.Payload = ps.target.DragPayload
		c.fire(endEv, nil)
	}
	ps.down = false
	ps.target = nil
	ps.subtargets = nil
	ps.corner = ""
	ps.dragging = false
	ps.dragRefused = false
	ps.boxActive = false
	ps.followers = nil
}
