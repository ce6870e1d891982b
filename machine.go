package easel

// Snapshot is a copy of every geometry property a transform gesture can
// touch, captured when the gesture starts. It rides on the Transform so
// modified listeners can diff against it and Revert can restore it.
type Snapshot struct {
	X, Y             float64
	Width, Height    float64
	ScaleX, ScaleY   float64
	Rotation         float64
	SkewX, SkewY     float64
	OriginX, OriginY float64
	FlipX, FlipY     bool
}

func snapshotOf(o *Object) Snapshot {
	return Snapshot{
		X: o.X, Y: o.Y,
		Width: o.Width, Height: o.Height,
		ScaleX: o.ScaleX, ScaleY: o.ScaleY,
		Rotation: o.Rotation,
		SkewX:    o.SkewX, SkewY: o.SkewY,
		OriginX: o.OriginX, OriginY: o.OriginY,
		FlipX: o.FlipX, FlipY: o.FlipY,
	}
}

// applyTo writes the snapshot back through the property plumbing, so
// reactors observe the restoration like any other mutation.
func (s Snapshot) applyTo(o *Object) {
	o.SetPosition(s.X, s.Y)
	o.SetSize(s.Width, s.Height)
	o.SetScale(s.ScaleX, s.ScaleY)
	o.SetRotation(s.Rotation)
	o.SetSkew(s.SkewX, s.SkewY)
	o.SetOrigin(s.OriginX, s.OriginY)
	o.SetFlip(s.FlipX, s.FlipY)
}

// Transform is the live state of one manipulation gesture on one target.
// Created when a pressed pointer grabs a body or control, destroyed when the
// pointer releases. At most one transform runs per target at a time;
// different targets can transform concurrently under multi-touch.
type Transform struct {
	Target *Object

	// Action names the running action ("drag", "scale", "rotate", ...).
	// Handlers may refine it mid-gesture (Shift turns edge scaling into
	// skewing); modification events always report the refined name.
	Action string

	// Corner is the control name that started the gesture, "" for a
	// whole-body drag.
	Corner string

	// Geometry captured at gesture start.
	ScaleX, ScaleY float64
	SkewX, SkewY   float64
	Theta          float64 // rotation at start, radians
	Width, Height  float64 // untransformed dimensions at start

	// OffsetX, OffsetY hold the grab offset for drags: pointer position in
	// the target's parent space minus the target's X/Y at start.
	OffsetX, OffsetY float64

	// OriginX, OriginY are the gesture's anchor fractions: the point of the
	// body held fixed while scaling and skewing, the pivot while rotating.
	OriginX, OriginY float64

	// Ex, Ey is the pointer's scene position at gesture start; LastX, LastY
	// the most recent position routed to the handler.
	Ex, Ey       float64
	LastX, LastY float64

	// Shift tracks the live Shift key; Alt is captured at start because it
	// selects the anchor, which cannot move mid-gesture.
	Shift, Alt bool

	// Original is the target's geometry at gesture start.
	Original Snapshot

	// ActionPerformed arms once the handler first changes a property and is
	// never reset, gating the single modified event at release.
	ActionPerformed bool

	control   *Control
	handler   ActionHandler
	anchor    Vec2       // scene position of the anchor at start
	invStart  [6]float64 // inverse world matrix at start
	pointerID int
	button    MouseButton
}

// Revert writes the start snapshot back to the target. Cancellation never
// does this on its own; hosts wire it to an escape key or an undo action
// when they want gestures to be revertible.
func (t *Transform) Revert() {
	t.Original.applyTo(t.Target)
	t.Target.SetCoords()
}

// pointerInParent converts a scene point into the target's parent space,
// where X/Y live.
func (t *Transform) pointerInParent(x, y float64) (float64, float64) {
	if t.Target.Parent == nil {
		return x, y
	}
	return transformPoint(invertAffine(t.Target.Parent.worldMatrixNow()), x, y)
}

// --- Machine ---

// transformMachine tracks every running transform, one per target.
type transformMachine struct {
	canvas *Canvas
	active map[*Object]*Transform
}

func newTransformMachine(c *Canvas) *transformMachine {
	return &transformMachine{canvas: c, active: make(map[*Object]*Transform)}
}

// begin starts a gesture on target. Returns nil without side effects when
// the target is nil, already mid-gesture, or cannot run the action: a press
// that starts nothing is not an error.
func (m *transformMachine) begin(target *Object, corner string, ctl *Control, x, y float64, pointerID int, button MouseButton, mods KeyModifiers) *Transform {
	if target == nil || m.active[target] != nil {
		return nil
	}

	action := ActionDrag
	handler := ActionHandler(dragHandler)
	if ctl != nil {
		action = ctl.ActionName
		handler = ctl.Handler
		if handler == nil {
			return nil
		}
	} else if !target.Movable {
		return nil
	}

	t := &Transform{
		Target:    target,
		Action:    action,
		Corner:    corner,
		ScaleX:    target.ScaleX,
		ScaleY:    target.ScaleY,
		SkewX:     target.SkewX,
		SkewY:     target.SkewY,
		Theta:     target.Rotation,
		Width:     target.Width,
		Height:    target.Height,
		Ex:        x,
		Ey:        y,
		LastX:     x,
		LastY:     y,
		Shift:     mods&ModShift != 0,
		Alt:       mods&ModAlt != 0,
		Original:  snapshotOf(target),
		control:   ctl,
		handler:   handler,
		pointerID: pointerID,
		button:    button,
	}

	// Anchor: rotation pivots on the object's own origin; controls hold the
	// opposite fraction fixed; Alt recenters the anchor for the gesture.
	switch {
	case action == ActionRotate:
		t.OriginX, t.OriginY = target.OriginX, target.OriginY
	case t.Alt || ctl == nil:
		t.OriginX, t.OriginY = 0.5, 0.5
	default:
		t.OriginX, t.OriginY = 0.5-ctl.X, 0.5-ctl.Y
	}

	t.anchor = target.AnchorPoint(t.OriginX, t.OriginY)
	t.invStart = invertAffine(target.worldMatrixNow())
	px, py := t.pointerInParent(x, y)
	t.OffsetX = px - target.X
	t.OffsetY = py - target.Y

	m.active[target] = t
	if m.canvas.debug {
		traceTransform("begin", t)
	}
	return t
}

// move routes one pointer position to the gesture's handler. A change arms
// ActionPerformed, refreshes the target's coordinates, and emits the
// action's modification event pair. Reports whether anything changed.
func (m *transformMachine) move(t *Transform, x, y float64, mods KeyModifiers) bool {
	if m.active[t.Target] != t {
		return false
	}
	t.Shift = mods&ModShift != 0

	changed := t.handler(t, x, y)
	t.LastX, t.LastY = x, y
	if !changed {
		return false
	}
	t.ActionPerformed = true
	t.Target.SetCoords()

	ev := &Event{
		Kind:       actionEventKind(t.Action),
		Target:     t.Target,
		Transform:  t,
		Action:     t.Action,
		ScenePoint: Vec2{x, y},
		PointerID:  t.pointerID,
		Button:     t.button,
		Modifiers:  mods,
	}
	m.canvas.fire(ev, nil)
	return true
}

// end finalizes the gesture: Active to Idle, unconditionally. If any move
// changed a property, exactly one modified event pair fires, carrying the
// transform with its start snapshot.
func (m *transformMachine) end(t *Transform, x, y float64, mods KeyModifiers) {
	if m.active[t.Target] != t {
		return
	}
	delete(m.active, t.Target)
	if m.canvas.debug {
		traceTransform("end", t)
	}
	m.fireModified(t, x, y, mods)
}

// cancel force-finishes the gesture without a release: Active to Idle, the
// target keeping whatever geometry the last handler change left. The
// modified gate is evaluated exactly as on release.
func (m *transformMachine) cancel(t *Transform) {
	if m.active[t.Target] != t {
		return
	}
	delete(m.active, t.Target)
	if m.canvas.debug {
		traceTransform("cancel", t)
	}
	m.fireModified(t, t.LastX, t.LastY, 0)
}

func (m *transformMachine) fireModified(t *Transform, x, y float64, mods KeyModifiers) {
	if !t.ActionPerformed {
		return
	}
	ev := &Event{
		Kind:       EventModified,
		Target:     t.Target,
		Transform:  t,
		Action:     t.Action,
		ScenePoint: Vec2{x, y},
		PointerID:  t.pointerID,
		Button:     t.button,
		Modifiers:  mods,
	}
	m.canvas.fire(ev, func() {
		t.Target.SetCoords()
	})
}

// transformOf returns the running transform for target, or nil.
func (m *transformMachine) transformOf(target *Object) *Transform {
	return m.active[target]
}
