package easel

import "github.com/sirupsen/logrus"

// Handler is an event callback. Handlers run synchronously, in registration
// order, canvas scope before object scope; a handler panic is isolated and
// logged so one broken listener cannot stall the input pipeline.
type Handler func(*Event)

// Event carries the data for a single canvas event. A single flat struct is
// used for every kind; fields outside the kind's family are zero. Exactly one
// Event value is built per physical input and shared by both phases and all
// scopes, so state set by one listener is visible to the next.
type Event struct {
	Kind   EventKind
	Canvas *Canvas

	// Target is the top-level object the event resolved to, nil for empty
	// space. Subtargets is the descendant chain under the pointer inside a
	// group with SubtargetCheck, innermost first.
	Target     *Object
	Subtargets []*Object

	// Pointer data. ScenePoint is in scene space (viewport-independent);
	// ViewportPoint is the raw screen position.
	ScenePoint    Vec2
	ViewportPoint Vec2
	PointerID     int
	Button        MouseButton
	Modifiers     KeyModifiers

	// IsClick is set on up events when the press never left the drag dead
	// zone: a click, not the tail of a drag.
	IsClick bool

	// Wheel deltas (EventWheel).
	WheelDX, WheelDY float64

	// Live transform. Set on object modification events and on pointer
	// events that happen while a transform gesture is running.
	Transform *Transform
	// Action names which transform action produced a modification event.
	Action string

	// Hover and drag-target deltas (EventOver/EventOut and
	// EventDragEnter/EventDragLeave): the object the pointer (or drag)
	// came from and the one it moved to. Either may be nil.
	Previous *Object
	Next     *Object

	// Drag and drop. Source is the dragged object; Payload its DragPayload.
	Source  *Object
	Payload any

	// Selection deltas (selection events). Batched per gesture: every
	// object that entered or left the selection, not one event each.
	Selected   []*Object
	Deselected []*Object

	prevented bool
}

// PreventDefault, called from a before-phase handler, suppresses the event's
// default action and its after phase. The physical gesture itself still
// advances: a vetoed up still ends the transform that the gesture started.
// Calling it in the after phase has no effect.
func (e *Event) PreventDefault() {
	e.prevented = true
}

// DefaultPrevented reports whether a handler vetoed this event.
func (e *Event) DefaultPrevented() bool {
	return e.prevented
}

// --- Emitter ---

type subscriber struct {
	id     uint32
	kind   EventKind
	before bool
	fn     Handler
}

// emitter is an ordered subscriber registry for one scope (a canvas or an
// object). A plain counter hands out IDs (no atomic — easel is
// single-threaded).
type emitter struct {
	subs   []subscriber
	nextID uint32
}

func (e *emitter) on(kind EventKind, before bool, fn Handler) Subscription {
	e.nextID++
	id := e.nextID
	e.subs = append(e.subs, subscriber{id: id, kind: kind, before: before, fn: fn})
	return Subscription{id: id, em: e}
}

// emit dispatches ev to subscribers of its kind in the given phase, in
// registration order.
func (e *emitter) emit(ev *Event, before bool) {
	for i := 0; i < len(e.subs); i++ {
		s := e.subs[i]
		if s.kind != ev.Kind || s.before != before {
			continue
		}
		safeCall(s.fn, ev)
	}
}

func (e *emitter) remove(id uint32) {
	for i := range e.subs {
		if e.subs[i].id == id {
			copy(e.subs[i:], e.subs[i+1:])
			e.subs[len(e.subs)-1] = subscriber{}
			e.subs = e.subs[:len(e.subs)-1]
			return
		}
	}
}

func (e *emitter) clear() {
	e.subs = nil
}

// safeCall invokes a handler, isolating panics.
func safeCall(fn Handler, ev *Event) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("event", ev.Kind.String()).Errorf("easel: event handler panicked: %v", r)
		}
	}()
	fn(ev)
}

// Subscription allows removing a registered event handler.
type Subscription struct {
	id uint32
	em *emitter
}

// Remove unregisters this handler so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (s Subscription) Remove() {
	if s.em == nil {
		return
	}
	s.em.remove(s.id)
}

// --- Two-phase emission ---

// fire runs the full two-phase emission for ev: the cancellable before phase
// across canvas, target, and subtarget scopes, then, unless a handler called
// PreventDefault, the default action followed by the committed after phase
// across the same scopes. Reports whether the default action ran.
//
// Every event a physical input produces passes through here exactly once, so
// each input yields exactly one before/after pair per emitted kind.
func (c *Canvas) fire(ev *Event, defaultAction func()) bool {
	ev.Canvas = c
	if c.debug {
		traceEvent(ev, "before")
	}
	c.emitScopes(ev, true)
	if ev.prevented {
		if c.debug {
			traceEvent(ev, "vetoed")
		}
		return false
	}
	if defaultAction != nil {
		defaultAction()
	}
	if c.debug {
		traceEvent(ev, "after")
	}
	c.emitScopes(ev, false)
	return true
}

func (c *Canvas) emitScopes(ev *Event, before bool) {
	c.handlers.emit(ev, before)
	if ev.Target != nil {
		ev.Target.handlers.emit(ev, before)
	}
	for _, sub := range ev.Subtargets {
		sub.handlers.emit(ev, before)
	}
}

// --- Canvas-level event registration ---

// On subscribes fn to the committed (after) phase of the given event kind at
// canvas scope. Canvas handlers run before the target object's own.
func (c *Canvas) On(kind EventKind, fn Handler) Subscription {
	return c.handlers.on(kind, false, fn)
}

// OnBefore subscribes fn to the cancellable before phase of the given event
// kind at canvas scope. Calling PreventDefault on the event suppresses the
// default action and the after phase.
func (c *Canvas) OnBefore(kind EventKind, fn Handler) Subscription {
	return c.handlers.on(kind, true, fn)
}
