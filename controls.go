package easel

import (
	"math"

	"github.com/pkg/errors"
)

// defaultCornerSize is the default control hit area edge, in pixels.
const defaultCornerSize = 13.0

// ErrControlNotFound is returned by ControlSet.Lookup for unregistered names.
var ErrControlNotFound = errors.New("control not found")

// ActionHandler mutates the transform target from the current pointer
// position (scene space). Reports whether any property actually changed;
// the machine uses that to arm the exactly-once modified event.
type ActionHandler func(t *Transform, x, y float64) bool

// CursorHandler resolves the cursor to show while the pointer hovers the
// control on the given object.
type CursorHandler func(ctl *Control, o *Object) Cursor

// Control describes one interactive handle on an object: where it sits on
// the body, how big its hit area is, which action it starts, and which
// cursor it shows. Controls carry no per-gesture state; everything mutable
// lives on the Transform.
type Control struct {
	// ActionName is recorded on transforms this control starts ("scale",
	// "rotate", ...). Purely informative; the Handler does the work.
	ActionName string

	// X, Y position the control relative to the body center, as fractions
	// in [-0.5, 0.5]: (-0.5, -0.5) is the top-left corner, (0, 0.5) the
	// bottom edge midpoint.
	X, Y float64

	// OffsetX, OffsetY displace the control by a fixed pixel amount after
	// positioning, rotating with the object. The rotation handle floats
	// above the top edge this way.
	OffsetX, OffsetY float64

	// SizeX, SizeY set the hit area in pixels; zero uses the canvas corner
	// size. TouchSizeX, TouchSizeY apply to touch pointers instead, falling
	// back to SizeX/SizeY when zero.
	SizeX, SizeY           float64
	TouchSizeX, TouchSizeY float64

	// Visible controls both hit testing and whether the host should draw
	// the handle. Invisible controls never grab input.
	Visible bool

	// Handler performs the control's action. Controls with a nil Handler
	// are inert: drawn but never hit.
	Handler ActionHandler

	// CursorHandler resolves the hover cursor. Nil falls back to the
	// canvas default.
	CursorHandler CursorHandler
}

// Position returns the control's current scene-space position on the object,
// derived from the cached corner coordinates. Hosts draw handles here.
func (ctl *Control) Position(o *Object) Vec2 {
	p := o.boxPoint(ctl.X+0.5, ctl.Y+0.5)
	if ctl.OffsetX != 0 || ctl.OffsetY != 0 {
		sin, cos := math.Sincos(o.worldRotation())
		p.X += ctl.OffsetX*cos - ctl.OffsetY*sin
		p.Y += ctl.OffsetX*sin + ctl.OffsetY*cos
	}
	return p
}

// hit tests the scene point (x, y) against the control's hit area on o.
// The area is a rectangle centered on the control, rotated with the object,
// inflated by the object's Padding.
func (ctl *Control) hit(o *Object, x, y float64, touch bool, cornerSize float64) bool {
	if !ctl.Visible || ctl.Handler == nil {
		return false
	}
	sx, sy := ctl.SizeX, ctl.SizeY
	if sx == 0 {
		sx = cornerSize
	}
	if sy == 0 {
		sy = cornerSize
	}
	if touch {
		if ctl.TouchSizeX != 0 {
			sx = ctl.TouchSizeX
		}
		if ctl.TouchSizeY != 0 {
			sy = ctl.TouchSizeY
		}
	}
	sx += 2 * o.Padding
	sy += 2 * o.Padding

	p := ctl.Position(o)
	sin, cos := math.Sincos(-o.worldRotation())
	dx, dy := x-p.X, y-p.Y
	rx := dx*cos - dy*sin
	ry := dx*sin + dy*cos
	return math.Abs(rx) <= sx/2 && math.Abs(ry) <= sy/2
}

// --- ControlSet ---

// ControlSet is an ordered control registry. Hit testing asks each control
// in registry order whether the pointer hits it and the first hit wins, so
// insertion order is the stable tie-break for overlapping controls.
// DefaultControls registers in hit priority order for that reason.
//
// Each object owns its own set (DefaultControls allocates per object), so
// per-control Visible flags can be toggled without affecting other objects.
// Sets can still be shared deliberately between objects that want identical
// handles.
type ControlSet struct {
	order  []string
	byName map[string]*Control
}

// NewControlSet creates an empty control registry.
func NewControlSet() *ControlSet {
	return &ControlSet{byName: make(map[string]*Control)}
}

// Set registers ctl under name. Registering an existing name replaces the
// control but keeps its position in the order.
func (cs *ControlSet) Set(name string, ctl *Control) {
	if ctl == nil {
		panic("easel: cannot register nil control")
	}
	if _, ok := cs.byName[name]; !ok {
		cs.order = append(cs.order, name)
	}
	cs.byName[name] = ctl
}

// Get returns the control registered under name.
func (cs *ControlSet) Get(name string) (*Control, bool) {
	ctl, ok := cs.byName[name]
	return ctl, ok
}

// Lookup returns the control registered under name, or an error identifying
// the missing name for callers that treat absence as a failure.
func (cs *ControlSet) Lookup(name string) (*Control, error) {
	ctl, ok := cs.byName[name]
	if !ok {
		return nil, errors.Wrapf(ErrControlNotFound, "easel: lookup control %q", name)
	}
	return ctl, nil
}

// Remove unregisters name. Reports whether it was present.
func (cs *ControlSet) Remove(name string) bool {
	if _, ok := cs.byName[name]; !ok {
		return false
	}
	delete(cs.byName, name)
	for i, n := range cs.order {
		if n == name {
			copy(cs.order[i:], cs.order[i+1:])
			cs.order = cs.order[:len(cs.order)-1]
			break
		}
	}
	return true
}

// Len returns the number of registered controls.
func (cs *ControlSet) Len() int {
	return len(cs.order)
}

// ForEach visits every control in registry order. Returning false stops the
// walk.
func (cs *ControlSet) ForEach(fn func(name string, ctl *Control) bool) {
	for _, name := range cs.order {
		if !fn(name, cs.byName[name]) {
			return
		}
	}
}

// Clone deep-copies the set so per-control fields (Visible, sizes) can be
// adjusted independently.
func (cs *ControlSet) Clone() *ControlSet {
	out := &ControlSet{
		order:  append([]string(nil), cs.order...),
		byName: make(map[string]*Control, len(cs.byName)),
	}
	for name, ctl := range cs.byName {
		copied := *ctl
		out.byName[name] = &copied
	}
	return out
}

// hitTest returns the first control in registry order whose hit area
// contains the scene point (x, y), or "" and nil if none does.
func (cs *ControlSet) hitTest(o *Object, x, y float64, touch bool, cornerSize float64) (string, *Control) {
	for _, name := range cs.order {
		ctl := cs.byName[name]
		if ctl.hit(o, x, y, touch, cornerSize) {
			return name, ctl
		}
	}
	return "", nil
}

// --- Default controls ---

// DefaultControls returns the standard nine-handle set: four corner scale
// handles (tl, tr, bl, br), four edge-midpoint single-axis handles (ml, mr,
// mt, mb), and a rotation handle (mtr) floating above the top edge.
// Registered in hit priority order: rotation first, corners before edges.
func DefaultControls() *ControlSet {
	cs := NewControlSet()
	cs.Set("mtr", &Control{
		ActionName:    ActionRotate,
		X:             0,
		Y:             -0.5,
		OffsetY:       -40,
		Visible:       true,
		Handler:       rotateHandler,
		CursorHandler: rotationCursor,
	})
	for _, corner := range [4]struct {
		name string
		x, y float64
	}{
		{"tl", -0.5, -0.5},
		{"tr", 0.5, -0.5},
		{"bl", -0.5, 0.5},
		{"br", 0.5, 0.5},
	} {
		cs.Set(corner.name, &Control{
			ActionName:    ActionScale,
			X:             corner.x,
			Y:             corner.y,
			Visible:       true,
			Handler:       scaleHandler,
			CursorHandler: scalingCursor,
		})
	}
	cs.Set("ml", &Control{
		ActionName:    ActionScaleX,
		X:             -0.5,
		Visible:       true,
		Handler:       scaleXHandler,
		CursorHandler: scalingCursor,
	})
	cs.Set("mr", &Control{
		ActionName:    ActionScaleX,
		X:             0.5,
		Visible:       true,
		Handler:       scaleXHandler,
		CursorHandler: scalingCursor,
	})
	cs.Set("mt", &Control{
		ActionName:    ActionScaleY,
		Y:             -0.5,
		Visible:       true,
		Handler:       scaleYHandler,
		CursorHandler: scalingCursor,
	})
	cs.Set("mb", &Control{
		ActionName:    ActionScaleY,
		Y:             0.5,
		Visible:       true,
		Handler:       scaleYHandler,
		CursorHandler: scalingCursor,
	})
	return cs
}

// --- Cursor resolution ---

// directionCursor buckets a scene-space direction into one of the four
// resize cursors. Zero radians points east; buckets are 45 degrees wide.
func directionCursor(angle float64) Cursor {
	deg := math.Mod(angle*180/math.Pi+360, 360)
	switch {
	case deg < 22.5 || deg >= 337.5:
		return CursorEWResize // east
	case deg < 67.5:
		return CursorNWSEResize // southeast
	case deg < 112.5:
		return CursorNSResize // south
	case deg < 157.5:
		return CursorNESWResize // southwest
	case deg < 202.5:
		return CursorEWResize // west
	case deg < 247.5:
		return CursorNWSEResize // northwest
	case deg < 292.5:
		return CursorNSResize // north
	default:
		return CursorNESWResize // northeast
	}
}

// scalingCursor picks the resize cursor matching the control's direction
// under the object's current rotation, or CursorNotAllowed when every axis
// the control drives is locked.
func scalingCursor(ctl *Control, o *Object) Cursor {
	lockedX := o.LockScalingX
	lockedY := o.LockScalingY
	switch {
	case ctl.X != 0 && ctl.Y != 0 && lockedX && lockedY:
		return CursorNotAllowed
	case ctl.X != 0 && ctl.Y == 0 && lockedX:
		return CursorNotAllowed
	case ctl.Y != 0 && ctl.X == 0 && lockedY:
		return CursorNotAllowed
	}
	return directionCursor(o.worldRotation() + math.Atan2(ctl.Y, ctl.X))
}

// rotationCursor resolves the rotation handle cursor.
func rotationCursor(ctl *Control, o *Object) Cursor {
	if o.LockRotation {
		return CursorNotAllowed
	}
	return CursorCrosshair
}
