package easel

import "github.com/hajimehoshi/ebiten/v2"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is pure opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// ContainsRect reports whether other lies entirely inside r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.X+other.Width <= r.X+r.Width &&
		other.Y+other.Height <= r.Y+r.Height
}

// ObjectKind distinguishes interaction behavior for an Object.
type ObjectKind uint8

const (
	KindShape ObjectKind = iota // generic leaf object (rendering is up to the host)
	KindGroup                   // container; hit testing may descend into children
	KindText                    // editable text payload; double-click enters editing
)

// EventKind identifies a kind of canvas event. Every kind is emitted in two
// phases: a cancellable before phase and a committed after phase. Subscribe
// with On for the after phase and OnBefore for the before phase.
type EventKind uint8

const (
	// Pointer events.
	EventDown        EventKind = iota // pointer button pressed
	EventMove                         // pointer moved (pressed or hovering)
	EventUp                           // pointer button released
	EventDoubleClick                  // second click within the double-click window
	EventWheel                        // scroll wheel turned
	EventOver                         // pointer entered an object (carries Previous/Next)
	EventOut                          // pointer left an object (carries Previous/Next)

	// Drag-and-drop events.
	EventDragStart // draggable object began a payload drag
	EventDrag      // fires on the source each frame while a payload drag is live
	EventDragOver  // fires on the object under the pointer while dragging
	EventDragEnter // drag target gained (carries Previous/Next)
	EventDragLeave // drag target lost (carries Previous/Next)
	EventDragEnd   // fires on the source when the drag ends, dropped or not
	EventDrop      // fires on the accepting target at release

	// Object modification events. Fired by transform actions; Modified fires
	// at most once per gesture, after release, and only if something changed.
	EventMoving
	EventScaling
	EventRotating
	EventSkewing
	EventResizing
	EventModified

	// Selection events. Batched: one event per gesture regardless of how many
	// objects entered or left the selection.
	EventSelectionCreated
	EventSelectionUpdated
	EventSelectionCleared

	// Object tree events.
	EventAdded
	EventRemoved

	// Text editing events.
	EventTextEditingEntered
	EventTextEditingExited
	EventTextChanged
	EventTextSelectionChanged

	// Render markers. The canvas does not draw objects itself; these bracket
	// the host's render pass so overlays can hook in.
	EventRender

	eventKindCount // number of event kinds; keep last
)

var eventKindNames = [eventKindCount]string{
	EventDown:                 "down",
	EventMove:                 "move",
	EventUp:                   "up",
	EventDoubleClick:          "dblclick",
	EventWheel:                "wheel",
	EventOver:                 "over",
	EventOut:                  "out",
	EventDragStart:            "dragstart",
	EventDrag:                 "drag",
	EventDragOver:             "dragover",
	EventDragEnter:            "dragenter",
	EventDragLeave:            "dragleave",
	EventDragEnd:              "dragend",
	EventDrop:                 "drop",
	EventMoving:               "moving",
	EventScaling:              "scaling",
	EventRotating:             "rotating",
	EventSkewing:              "skewing",
	EventResizing:             "resizing",
	EventModified:             "modified",
	EventSelectionCreated:     "selection:created",
	EventSelectionUpdated:     "selection:updated",
	EventSelectionCleared:     "selection:cleared",
	EventAdded:                "added",
	EventRemoved:              "removed",
	EventTextEditingEntered:   "text:editing:entered",
	EventTextEditingExited:    "text:editing:exited",
	EventTextChanged:          "text:changed",
	EventTextSelectionChanged: "text:selection:changed",
	EventRender:               "render",
}

// String returns the event name used in debug traces and gesture scripts.
func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Cursor selects a pointer cursor shape. Each maps to a specific
// ebiten.CursorShapeType; the canvas applies it through an overridable hook
// so hosts (and tests) can substitute their own cursor handling.
type Cursor uint8

const (
	CursorDefault    Cursor = iota // arrow
	CursorMove                     // four-way move, shown over draggable bodies
	CursorCrosshair                // crosshair
	CursorPointer                  // pointing hand
	CursorText                     // I-beam, shown over editable text
	CursorNotAllowed               // action unavailable (locked objects)
	CursorEWResize                 // horizontal resize
	CursorNSResize                 // vertical resize
	CursorNESWResize               // diagonal resize, bottom-left/top-right
	CursorNWSEResize               // diagonal resize, top-left/bottom-right
)

// EbitenShape returns the ebiten.CursorShapeType corresponding to this Cursor.
func (c Cursor) EbitenShape() ebiten.CursorShapeType {
	switch c {
	case CursorMove:
		return ebiten.CursorShapeMove
	case CursorCrosshair:
		return ebiten.CursorShapeCrosshair
	case CursorPointer:
		return ebiten.CursorShapePointer
	case CursorText:
		return ebiten.CursorShapeText
	case CursorNotAllowed:
		return ebiten.CursorShapeNotAllowed
	case CursorEWResize:
		return ebiten.CursorShapeEWResize
	case CursorNSResize:
		return ebiten.CursorShapeNSResize
	case CursorNESWResize:
		return ebiten.CursorShapeNESWResize
	case CursorNWSEResize:
		return ebiten.CursorShapeNWSEResize
	default:
		return ebiten.CursorShapeDefault
	}
}

// TextAlign controls horizontal text alignment within a Text object.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // align text to the left edge (default)
	TextAlignCenter                  // center text horizontally
	TextAlignRight                   // align text to the right edge
)
