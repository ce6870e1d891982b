package easel

// Selection state lives on the Canvas: an ordered list of canvas-level
// objects. One object shows its controls; two or more move as a unit while a
// member's body is dragged, with scale and rotate handles unavailable until
// the selection collapses back to one.

// Selection returns the selected objects in selection order. The returned
// slice MUST NOT be mutated.
func (c *Canvas) Selection() []*Object {
	return c.selection
}

// IsSelected reports whether an object is part of the current selection.
func (c *Canvas) IsSelected(o *Object) bool {
	return containsObject(c.selection, o)
}

// SetSelection replaces the selection programmatically. Non-selectable
// objects and objects not on the canvas are dropped; the change batches into
// the same single event pair a pointer gesture would produce.
func (c *Canvas) SetSelection(objs ...*Object) {
	next := make([]*Object, 0, len(objs))
	for _, o := range objs {
		if o == nil || !o.Selectable || c.IndexOf(o) < 0 {
			continue
		}
		if !containsObject(next, o) {
			next = append(next, o)
		}
	}
	c.applySelection(next)
}

// ClearSelection empties the selection, emitting exactly one cleared pair
// carrying every deselected object. No-op when nothing is selected.
func (c *Canvas) ClearSelection() {
	c.applySelection(nil)
}

// applySelection is the single mutation point for the selection list. It
// diffs the requested selection against the current one, picks the event
// kind, and emits exactly one pair per change: created (none to some),
// updated (some to different some), cleared (some to none). An unchanged
// selection emits nothing. The before phase can veto, leaving the selection
// as it was.
func (c *Canvas) applySelection(next []*Object) bool {
	prev := c.selection
	added := chainDiff(next, prev)
	removed := chainDiff(prev, next)
	if len(added) == 0 && len(removed) == 0 {
		return true
	}
	var kind EventKind
	switch {
	case len(prev) == 0:
		kind = EventSelectionCreated
	case len(next) == 0:
		kind = EventSelectionCleared
	default:
		kind = EventSelectionUpdated
	}
	ev := &Event{Kind: kind, Selected: added, Deselected: removed}
	return c.fire(ev, func() {
		c.selection = next
		c.requestRender()
	})
}

// selectGesture applies one click's worth of selection change: plain click
// selects the target (replacing anything else), shift-click toggles the
// target's membership. Clicking inside the current selection keeps it, so a
// multi-select can be dragged by any member.
func (c *Canvas) selectGesture(target *Object, shift bool) {
	if shift {
		if c.IsSelected(target) {
			next := make([]*Object, 0, len(c.selection)-1)
			for _, o := range c.selection {
				if o != target {
					next = append(next, o)
				}
			}
			c.applySelection(next)
			return
		}
		next := make([]*Object, 0, len(c.selection)+1)
		next = append(next, c.selection...)
		next = append(next, target)
		c.applySelection(next)
		return
	}
	if c.IsSelected(target) {
		return
	}
	c.applySelection([]*Object{target})
}

// finishEmptyGesture completes a press that started on empty space: a plain
// click clears the selection in one batched pair, and releasing a dragged
// box selects everything it touched.
func (c *Canvas) finishEmptyGesture(ps *pointerState, x, y float64, mods KeyModifiers) {
	if ps.isClick {
		if mods&ModShift == 0 {
			c.ClearSelection()
		}
		return
	}
	if !ps.boxActive {
		return
	}
	box := rectBetween(ps.startX, ps.startY, x, y)
	c.boxSelect(box, mods&ModShift != 0)
}

// boxSelect selects every selectable object whose bounds intersect the box,
// in stack order. Shift unions with the current selection instead of
// replacing it.
func (c *Canvas) boxSelect(box Rect, union bool) {
	var next []*Object
	if union {
		next = append(next, c.selection...)
	}
	for _, o := range c.objects {
		if !o.Visible || !o.Interactable || !o.Selectable {
			continue
		}
		if !box.Intersects(o.AABB()) {
			continue
		}
		if !containsObject(next, o) {
			next = append(next, o)
		}
	}
	c.applySelection(next)
}

// SelectionBox returns the live drag-box rectangle in scene space while one
// is being dragged out. Hosts draw it themselves.
func (c *Canvas) SelectionBox() (Rect, bool) {
	for i := range c.pointers {
		ps := &c.pointers[i]
		if ps.down && ps.boxActive && !ps.isClick {
			return rectBetween(ps.startX, ps.startY, ps.lastX, ps.lastY), true
		}
	}
	return Rect{}, false
}

func rectBetween(x0, y0, x1, y1 float64) Rect {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// moveFollowers keeps the rest of a multi-selection riding along with the
// grabbed member during a body drag. Canvas-level objects share the scene
// frame, so the leader's delta applies directly, honoring each member's own
// movement locks.
func (c *Canvas) moveFollowers(t *Transform, followers []follower) {
	dx := t.Target.X - t.Original.X
	dy := t.Target.Y - t.Original.Y
	for _, f := range followers {
		o := f.obj
		if o.IsDisposed() || !o.Movable {
			continue
		}
		nx, ny := f.x0+dx, f.y0+dy
		if o.LockMovementX {
			nx = o.X
		}
		if o.LockMovementY {
			ny = o.Y
		}
		o.SetPosition(nx, ny)
		o.SetCoords()
	}
}

// dropFromSelection removes an object leaving the canvas without an event;
// removal is structural and hosts reconcile against the removed event.
func (c *Canvas) dropFromSelection(o *Object) {
	for i, s := range c.selection {
		if s == o {
			c.selection = append(c.selection[:i], c.selection[i+1:]...)
			return
		}
	}
}
