package easel

// HitShape is a custom hit testing region in the object's local coordinate
// space, where the untransformed body spans (0, 0) to (Width, Height).
// When nil, the body rectangle is used.
type HitShape interface {
	Contains(x, y float64) bool
}

// --- ID counter ---

// objectIDCounter is a plain counter (no atomic — easel is single-threaded).
var objectIDCounter uint32

func nextObjectID() uint32 {
	objectIDCounter++
	return objectIDCounter
}

// --- Object ---

// Object is the fundamental manipulable element on a canvas. A single flat
// struct is used for all object kinds to avoid interface dispatch on the hot
// path. Rendering is up to the host; easel owns geometry, hit testing,
// selection, and the transform lifecycle.
type Object struct {
	// Identity
	ID   uint32
	Name string
	Kind ObjectKind

	// Hierarchy
	Parent   *Object
	children []*Object

	// Geometry (local). X/Y position the origin anchor in the parent's
	// space; OriginX/OriginY are fractions of the body, 0.5 = center.
	X, Y             float64
	Width, Height    float64
	ScaleX, ScaleY   float64
	Rotation         float64
	SkewX, SkewY     float64
	OriginX, OriginY float64
	FlipX, FlipY     bool
	Opacity          float64

	// Computed (unexported, refreshed during traversal and by SetCoords)
	worldMatrix   [6]float64
	worldOpacity  float64
	geometryDirty bool
	coords        [4]Vec2
	aabb          Rect
	coordsValid   bool

	// Visibility & interaction
	Visible      bool
	Interactable bool // hit testing skips objects explicitly marked non-interactive
	Selectable   bool
	Movable      bool
	HoverCursor  Cursor // cursor over the body; CursorDefault picks the canvas policy

	// Transform locks. A locked axis leaves the corresponding property
	// untouched mid-gesture; the gesture itself still runs.
	LockMovementX bool
	LockMovementY bool
	LockScalingX  bool
	LockScalingY  bool
	LockRotation  bool
	LockSkewingX  bool
	LockSkewingY  bool

	// Rotation snapping. SnapAngle > 0 snaps the rotate action to multiples
	// of it once within SnapThreshold (both in radians).
	SnapAngle     float64
	SnapThreshold float64

	// Drag and drop. A Draggable object starts a payload drag instead of a
	// move transform; AcceptsDrop marks valid drop targets.
	Draggable   bool
	AcceptsDrop bool
	DragPayload any

	// Groups. SubtargetCheck lets hit testing descend into children,
	// reporting the deepest hit leaf and the chain above it.
	SubtargetCheck bool

	// Controls & hit testing
	Controls *ControlSet
	HitShape HitShape
	Padding  float64 // inflates the control interaction area, in pixels

	// Filters applied by the host's renderer. The canvas never runs them;
	// see filter.go for the boundary contract.
	Filters []Filter

	// Text payload (KindText)
	Text *Text

	// Events & reactors
	handlers emitter
	reactors []*SideEffect

	// Metadata
	UserData any

	// Internal
	canvas   *Canvas // set on canvas-level objects by Add/Remove
	disposed bool
}

// objectDefaults sets the common default field values shared by all constructors.
func objectDefaults(o *Object) {
	o.ID = nextObjectID()
	o.ScaleX = 1
	o.ScaleY = 1
	o.Opacity = 1
	o.OriginX = OriginCenter
	o.OriginY = OriginCenter
	o.Visible = true
	o.Interactable = true
	o.Selectable = true
	o.Movable = true
	o.geometryDirty = true
	o.Controls = DefaultControls()
}

// NewObject creates a generic object with the given untransformed dimensions.
func NewObject(name string, width, height float64) *Object {
	o := &Object{Name: name, Kind: KindShape, Width: width, Height: height}
	objectDefaults(o)
	return o
}

// NewGroup creates a group object containing the given children. Children are
// authored in group-local coordinates; the group's dimensions are derived
// from their bounds. Set SubtargetCheck to let hit testing descend into the
// children.
func NewGroup(name string, children ...*Object) *Object {
	o := &Object{Name: name, Kind: KindGroup}
	objectDefaults(o)
	for _, child := range children {
		o.AddChild(child)
	}
	o.RecalcBounds()
	return o
}

// RecalcBounds recomputes a group's Width and Height from the local-space
// bounds of its children. No-op for empty groups.
func (o *Object) RecalcBounds() {
	if len(o.children) == 0 {
		return
	}
	first := true
	var minX, minY, maxX, maxY float64
	for _, child := range o.children {
		local := computeLocalMatrix(child)
		w, h := child.Width, child.Height
		for _, pt := range [4][2]float64{{0, 0}, {w, 0}, {w, h}, {0, h}} {
			x, y := transformPoint(local, pt[0], pt[1])
			if first {
				minX, maxX, minY, maxY = x, x, y, y
				first = false
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	o.setGeometry(PropWidth, &o.Width, maxX-minX)
	o.setGeometry(PropHeight, &o.Height, maxY-minY)
}

// --- Tree manipulation ---

// AddChild appends child to this object's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this object (cycle).
func (o *Object) AddChild(child *Object) {
	if child == nil {
		panic("easel: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(o, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, o) {
		panic("easel: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = o
	o.children = append(o.children, child)
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (o *Object) AddChildAt(child *Object, index int) {
	if child == nil {
		panic("easel: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(o, "AddChildAt (parent)")
		debugCheckDisposed(child, "AddChildAt (child)")
	}
	if isAncestor(child, o) {
		panic("easel: adding child would create a cycle")
	}
	if index < 0 || index > len(o.children) {
		panic("easel: child index out of range")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = o
	o.children = append(o.children, nil)
	copy(o.children[index+1:], o.children[index:])
	o.children[index] = child
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
	}
}

// RemoveChild detaches child from this object.
// Panics if child.Parent != o.
func (o *Object) RemoveChild(child *Object) {
	if globalDebug {
		debugCheckDisposed(o, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != o {
		panic("easel: child's parent is not this object")
	}
	o.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveChildAt removes and returns the child at the given index.
func (o *Object) RemoveChildAt(index int) *Object {
	if globalDebug {
		debugCheckDisposed(o, "RemoveChildAt")
	}
	if index < 0 || index >= len(o.children) {
		panic("easel: child index out of range")
	}
	child := o.children[index]
	copy(o.children[index:], o.children[index+1:])
	o.children[len(o.children)-1] = nil
	o.children = o.children[:len(o.children)-1]
	child.Parent = nil
	markSubtreeDirty(child)
	return child
}

// RemoveFromParent detaches this object from its parent.
// No-op if this object has no parent.
func (o *Object) RemoveFromParent() {
	if o.Parent == nil {
		return
	}
	o.Parent.RemoveChild(o)
}

// RemoveChildren detaches all children from this object.
// Children are NOT disposed.
func (o *Object) RemoveChildren() {
	for _, child := range o.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	o.children = o.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (o *Object) Children() []*Object {
	return o.children
}

// NumChildren returns the number of children.
func (o *Object) NumChildren() int {
	return len(o.children)
}

// ChildAt returns the child at the given index.
func (o *Object) ChildAt(index int) *Object {
	return o.children[index]
}

// SetChildIndex moves child to a new index among its siblings.
func (o *Object) SetChildIndex(child *Object, index int) {
	if child.Parent != o {
		panic("easel: child's parent is not this object")
	}
	nc := len(o.children)
	if index < 0 || index >= nc {
		panic("easel: child index out of range")
	}
	oldIndex := -1
	for i, c := range o.children {
		if c == child {
			oldIndex = i
			break
		}
	}
	if oldIndex == index {
		return
	}
	// Shift elements to fill the gap and open the target slot.
	if oldIndex < index {
		copy(o.children[oldIndex:], o.children[oldIndex+1:index+1])
	} else {
		copy(o.children[index+1:], o.children[index:oldIndex])
	}
	o.children[index] = child
}

// --- Events ---

// On subscribes fn to the committed (after) phase of the given event kind on
// this object. Returns a Subscription whose Remove detaches it.
func (o *Object) On(kind EventKind, fn Handler) Subscription {
	return o.handlers.on(kind, false, fn)
}

// OnBefore subscribes fn to the cancellable before phase of the given event
// kind on this object. Calling PreventDefault on the event suppresses the
// default action and the after phase.
func (o *Object) OnBefore(kind EventKind, fn Handler) Subscription {
	return o.handlers.on(kind, true, fn)
}

// --- Disposal ---

// Dispose removes this object from its parent, marks it as disposed,
// and recursively disposes all descendants. Canvas-level objects go through
// the removal event pair first; if a listener vetoes it, the object is
// detached silently so disposal never strands it on the canvas.
func (o *Object) Dispose() {
	if o.disposed {
		return
	}
	if o.canvas != nil {
		if !o.canvas.Remove(o) {
			o.canvas.detach(o)
		}
	}
	o.RemoveFromParent()
	o.dispose()
}

func (o *Object) dispose() {
	o.disposed = true
	o.ID = 0
	for _, child := range o.children {
		child.Parent = nil
		child.dispose()
	}
	o.children = nil
	o.Parent = nil
	o.Controls = nil
	o.HitShape = nil
	o.Filters = nil
	o.Text = nil
	o.DragPayload = nil
	o.UserData = nil
	o.handlers.clear()
	o.reactors = nil
	o.canvas = nil
}

// IsDisposed returns true if this object has been disposed.
func (o *Object) IsDisposed() bool {
	return o.disposed
}

// --- Helpers ---

// Canvas returns the canvas this object (or its root ancestor) was added to,
// or nil if detached.
func (o *Object) Canvas() *Canvas {
	return o.canvasRef()
}

func (o *Object) canvasRef() *Canvas {
	r := o
	for r.Parent != nil {
		r = r.Parent
	}
	return r.canvas
}

// isAncestor reports whether candidate is an ancestor of obj.
func isAncestor(candidate, obj *Object) bool {
	for p := obj; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from o.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (o *Object) removeChildByPtr(child *Object) {
	for i, c := range o.children {
		if c == child {
			copy(o.children[i:], o.children[i+1:])
			o.children[len(o.children)-1] = nil
			o.children = o.children[:len(o.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets geometryDirty on obj and all its descendants and
// invalidates their corner coordinate caches.
func markSubtreeDirty(obj *Object) {
	obj.geometryDirty = true
	obj.coordsValid = false
	for _, child := range obj.children {
		markSubtreeDirty(child)
	}
}
