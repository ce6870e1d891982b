package easel

import "math"

// Action names recorded on transforms. The name tells subscribers which
// modification event family a gesture emits; the handler does the work.
const (
	ActionDrag   = "drag"
	ActionScale  = "scale"
	ActionScaleX = "scaleX"
	ActionScaleY = "scaleY"
	ActionRotate = "rotate"
	ActionSkewX  = "skewX"
	ActionSkewY  = "skewY"
	ActionResize = "resize"
)

// actionEventKind maps an action name to the modification event it emits
// while running.
func actionEventKind(action string) EventKind {
	switch action {
	case ActionDrag:
		return EventMoving
	case ActionScale, ActionScaleX, ActionScaleY:
		return EventScaling
	case ActionRotate:
		return EventRotating
	case ActionSkewX, ActionSkewY:
		return EventSkewing
	case ActionResize:
		return EventResizing
	default:
		return EventMoving
	}
}

// minScaleRatio guards against collapsing an axis to zero, which would make
// the object's matrix singular and unrecoverable by dragging.
const minScaleRatio = 1e-4

// --- Drag ---

// dragHandler moves the whole body: the pointer keeps the grab offset
// captured at gesture start. Locked axes stay put.
func dragHandler(t *Transform, x, y float64) bool {
	o := t.Target
	if !o.Movable {
		return false
	}
	px, py := t.pointerInParent(x, y)
	nx, ny := px-t.OffsetX, py-t.OffsetY
	if o.LockMovementX {
		nx = o.X
	}
	if o.LockMovementY {
		ny = o.Y
	}
	if nx == o.X && ny == o.Y {
		return false
	}
	o.SetPosition(nx, ny)
	return true
}

// --- Scaling ---

// startFramePoint maps a scene point into the target's gesture-start local
// frame, where the untransformed body spanned (0, 0) to (Width, Height).
// Working in the start frame keeps the math stable while the gesture itself
// mutates the live matrix.
func (t *Transform) startFramePoint(x, y float64) (float64, float64) {
	return transformPoint(t.invStart, x, y)
}

// anchorSpan returns the start-frame vector from the gesture anchor to the
// dragged control, per axis. Zero components mean the control cannot drive
// that axis (edge midpoint handles).
func (t *Transform) anchorSpan() (sx, sy float64) {
	if t.control == nil {
		return 0, 0
	}
	sx = (t.control.X + 0.5 - t.OriginX) * t.Original.Width
	sy = (t.control.Y + 0.5 - t.OriginY) * t.Original.Height
	return sx, sy
}

// scaleHandler scales both axes from a corner handle, holding the opposite
// anchor fixed. Proportional by default; Shift scales each axis
// independently. Dragging through the anchor flips the object.
func scaleHandler(t *Transform, x, y float64) bool {
	if t.Shift {
		return applyScale(t, x, y, true, true, false)
	}
	return applyScale(t, x, y, true, true, true)
}

// scaleXHandler scales the X axis from an edge midpoint handle. With Shift
// held it skews the Y axis instead, matching the corner-free edge gesture.
func scaleXHandler(t *Transform, x, y float64) bool {
	if t.Shift {
		t.Action = ActionSkewY
		return applySkewY(t, x, y)
	}
	t.Action = ActionScaleX
	return applyScale(t, x, y, true, false, false)
}

// scaleYHandler scales the Y axis from an edge midpoint handle, or skews the
// X axis with Shift held.
func scaleYHandler(t *Transform, x, y float64) bool {
	if t.Shift {
		t.Action = ActionSkewX
		return applySkewX(t, x, y)
	}
	t.Action = ActionScaleY
	return applyScale(t, x, y, false, true, false)
}

// applyScale recomputes scale factors from the pointer's start-frame offset
// relative to the anchor, then repositions the target so the anchor point
// stays fixed in scene space.
func applyScale(t *Transform, x, y float64, axisX, axisY, proportional bool) bool {
	o := t.Target
	lx, ly := t.startFramePoint(x, y)
	spanX, spanY := t.anchorSpan()
	vx := lx - t.OriginX*t.Original.Width
	vy := ly - t.OriginY*t.Original.Height

	var rx, ry float64
	if axisX && spanX != 0 {
		rx = vx / spanX
	}
	if axisY && spanY != 0 {
		ry = vy / spanY
	}

	if proportional {
		denom := math.Abs(spanX) + math.Abs(spanY)
		if denom == 0 {
			return false
		}
		r := (math.Abs(vx) + math.Abs(vy)) / denom
		rx = math.Copysign(r, rx)
		ry = math.Copysign(r, ry)
	}

	newSX, newSY := o.ScaleX, o.ScaleY
	newFX, newFY := o.FlipX, o.FlipY
	if axisX && spanX != 0 && !o.LockScalingX && math.Abs(rx) > minScaleRatio {
		newSX = t.Original.ScaleX * math.Abs(rx)
		newFX = t.Original.FlipX != (rx < 0)
	}
	if axisY && spanY != 0 && !o.LockScalingY && math.Abs(ry) > minScaleRatio {
		newSY = t.Original.ScaleY * math.Abs(ry)
		newFY = t.Original.FlipY != (ry < 0)
	}

	if newSX == o.ScaleX && newSY == o.ScaleY && newFX == o.FlipX && newFY == o.FlipY {
		return false
	}
	o.SetScale(newSX, newSY)
	o.SetFlip(newFX, newFY)
	o.moveAnchorTo(t.OriginX, t.OriginY, t.anchor)
	return true
}

// --- Rotation ---

// rotateHandler rotates the body around its origin anchor, tracking the
// pointer's angle delta since gesture start. SnapAngle > 0 snaps to
// multiples within SnapThreshold (threshold 0 snaps always).
func rotateHandler(t *Transform, x, y float64) bool {
	o := t.Target
	if o.LockRotation {
		return false
	}
	pivot := t.anchor
	cur := math.Atan2(y-pivot.Y, x-pivot.X)
	start := math.Atan2(t.Ey-pivot.Y, t.Ex-pivot.X)
	rotation := t.Theta + (cur - start)

	if o.SnapAngle > 0 {
		snapped := math.Round(rotation/o.SnapAngle) * o.SnapAngle
		threshold := o.SnapThreshold
		if threshold <= 0 {
			threshold = o.SnapAngle
		}
		if math.Abs(rotation-snapped) <= threshold {
			rotation = snapped
		}
	}

	if rotation == o.Rotation {
		return false
	}
	o.SetRotation(rotation)
	return true
}

// --- Skewing ---

// applySkewY skews the Y axis: the pointer's vertical travel in the start
// frame shifts the skew tangent, scaled by the handle's horizontal distance
// from the anchor.
func applySkewY(t *Transform, x, y float64) bool {
	o := t.Target
	if o.LockSkewingY {
		return false
	}
	spanX, _ := t.anchorSpan()
	if math.Abs(spanX) < 1e-9 {
		return false
	}
	_, ly := t.startFramePoint(x, y)
	_, ey := t.startFramePoint(t.Ex, t.Ey)
	skew := math.Atan(math.Tan(t.Original.SkewY) + (ly-ey)/math.Abs(spanX))
	if skew == o.SkewY {
		return false
	}
	o.SetSkew(o.SkewX, skew)
	o.moveAnchorTo(t.OriginX, t.OriginY, t.anchor)
	return true
}

// applySkewX skews the X axis from vertical edge handles.
func applySkewX(t *Transform, x, y float64) bool {
	o := t.Target
	if o.LockSkewingX {
		return false
	}
	_, spanY := t.anchorSpan()
	if math.Abs(spanY) < 1e-9 {
		return false
	}
	lx, _ := t.startFramePoint(x, y)
	ex, _ := t.startFramePoint(t.Ex, t.Ey)
	skew := math.Atan(math.Tan(t.Original.SkewX) + (lx-ex)/math.Abs(spanY))
	if skew == o.SkewX {
		return false
	}
	o.SetSkew(skew, o.SkewY)
	o.moveAnchorTo(t.OriginX, t.OriginY, t.anchor)
	return true
}

// --- Resizing ---

// resizeHandler changes the untransformed Width instead of the scale,
// holding the anchor edge fixed. Text objects use this for their side
// handles so glyphs reflow instead of stretching.
func resizeHandler(t *Transform, x, y float64) bool {
	o := t.Target
	lx, _ := t.startFramePoint(x, y)
	vx := lx - t.OriginX*t.Original.Width
	w := math.Abs(vx)
	if w < 1 {
		w = 1
	}
	if w == o.Width {
		return false
	}
	o.SetSize(w, o.Height)
	o.moveAnchorTo(t.OriginX, t.OriginY, t.anchor)
	return true
}
