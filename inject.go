package easel

// syntheticPointerEvent represents a single injected pointer event. Viewport
// coordinates are used (matching what a host or test sees on screen) and
// converted to scene coordinates by the router, identical to real mouse
// input. Modifiers ride along so scripted gestures never depend on the real
// keyboard.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
	button  MouseButton
	mods    KeyModifiers
}

// InjectPress queues a pointer press event at the given viewport coordinates
// (left button). The event is consumed on the next Update call.
func (c *Canvas) InjectPress(x, y float64) {
	c.InjectPressWith(x, y, MouseButtonLeft, 0)
}

// InjectPressWith queues a pointer press with an explicit button and modifiers.
func (c *Canvas) InjectPressWith(x, y float64, button MouseButton, mods KeyModifiers) {
	c.injected = append(c.injected, syntheticPointerEvent{
		x: x, y: y,
		pressed: true,
		button:  button,
		mods:    mods,
	})
}

// InjectMove queues a pointer move event at the given viewport coordinates
// with the button held down. Use this between InjectPress and InjectRelease
// to simulate a drag.
func (c *Canvas) InjectMove(x, y float64) {
	c.InjectMoveWith(x, y, MouseButtonLeft, 0)
}

// InjectMoveWith queues a held move with an explicit button and modifiers.
func (c *Canvas) InjectMoveWith(x, y float64, button MouseButton, mods KeyModifiers) {
	c.injected = append(c.injected, syntheticPointerEvent{
		x: x, y: y,
		pressed: true,
		button:  button,
		mods:    mods,
	})
}

// InjectHover queues a pointer move with no button held. Hover resolution and
// enter/leave events run exactly as they would for a resting mouse.
func (c *Canvas) InjectHover(x, y float64) {
	c.injected = append(c.injected, syntheticPointerEvent{
		x: x, y: y,
		pressed: false,
		button:  MouseButtonLeft,
	})
}

// InjectRelease queues a pointer release event at the given viewport
// coordinates.
func (c *Canvas) InjectRelease(x, y float64) {
	c.InjectReleaseWith(x, y, MouseButtonLeft, 0)
}

// InjectReleaseWith queues a release with an explicit button and modifiers.
func (c *Canvas) InjectReleaseWith(x, y float64, button MouseButton, mods KeyModifiers) {
	c.injected = append(c.injected, syntheticPointerEvent{
		x: x, y: y,
		pressed: false,
		button:  button,
		mods:    mods,
	})
}

// InjectClick is a convenience that queues a press followed by a release at
// the same viewport coordinates. Consumes two frames.
func (c *Canvas) InjectClick(x, y float64) {
	c.InjectPress(x, y)
	c.InjectRelease(x, y)
}

// InjectClickWith queues a press/release pair with an explicit button and
// modifiers. A shift-click toggles selection membership this way.
func (c *Canvas) InjectClickWith(x, y float64, button MouseButton, mods KeyModifiers) {
	c.InjectPressWith(x, y, button, mods)
	c.InjectReleaseWith(x, y, button, mods)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate frames, and release at
// (toX, toY). The last move lands exactly on the destination, because the
// release itself never routes to gesture handlers. The total sequence
// consumes `frames` frames, minimum 2 (press + release).
func (c *Canvas) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	c.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		c.InjectMove(x, y)
	}
	c.InjectRelease(toX, toY)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the pointer router as pointer 0. Returns true if an event was
// consumed (real input is skipped that frame so synthetic gestures cannot
// interleave with the mouse).
func (c *Canvas) processInjectedInput() bool {
	if len(c.injected) == 0 {
		return false
	}
	evt := c.injected[0]
	copy(c.injected, c.injected[1:])
	c.injected = c.injected[:len(c.injected)-1]

	c.processPointer(0, evt.x, evt.y, evt.pressed, evt.button, evt.mods, false)
	return true
}
