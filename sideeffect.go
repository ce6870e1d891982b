package easel

import "github.com/sirupsen/logrus"

// Property keys observed by side-effect reactors. Every setter names the key
// it mutates; reactors watch keys by these names.
const (
	PropX        = "x"
	PropY        = "y"
	PropWidth    = "width"
	PropHeight   = "height"
	PropScaleX   = "scaleX"
	PropScaleY   = "scaleY"
	PropRotation = "rotation"
	PropSkewX    = "skewX"
	PropSkewY    = "skewY"
	PropOriginX  = "originX"
	PropOriginY  = "originY"
	PropFlipX    = "flipX"
	PropFlipY    = "flipY"
	PropOpacity  = "opacity"
	PropVisible  = "visible"
	PropText     = "text"
)

// Change describes a single property mutation delivered to a reactor.
// Old and New hold the boxed before/after values of the key.
type Change struct {
	Object *Object
	Key    string
	Old    any
	New    any
}

// SideEffect reacts to property mutations on the objects it is attached to.
// It watches either every key or an explicit key set; the callback runs
// synchronously inside the mutating call, after the field has been assigned.
//
// A reactor only fires when the new value differs from the old under Go's !=
// on the boxed values. Assigning an equal value never reaches the reactor.
// Watched values are comparable by construction (floats, bools, strings).
type SideEffect struct {
	Name string

	watchAll bool
	keys     map[string]struct{}
	fn       func(Change)
}

// WatchAll creates a reactor invoked for every property mutation.
func WatchAll(name string, fn func(Change)) *SideEffect {
	return &SideEffect{Name: name, watchAll: true, fn: fn}
}

// WatchKeys creates a reactor invoked only for mutations of the given keys.
func WatchKeys(name string, fn func(Change), keys ...string) *SideEffect {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return &SideEffect{Name: name, keys: set, fn: fn}
}

// Watches reports whether the reactor observes the given key.
func (s *SideEffect) Watches(key string) bool {
	if s.watchAll {
		return true
	}
	_, ok := s.keys[key]
	return ok
}

// invoke runs the reactor callback, isolating panics so one broken reactor
// cannot take down the mutation that triggered it.
func (s *SideEffect) invoke(ch Change) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("reactor", s.Name).Errorf("easel: reactor panicked on %q: %v", ch.Key, r)
		}
	}()
	s.fn(ch)
}

// --- Object attachment ---

// React attaches a reactor to this object. Attaching the same reactor twice
// is a no-op. A reactor may be attached to any number of objects.
func (o *Object) React(s *SideEffect) {
	if s == nil {
		panic("easel: cannot attach nil reactor")
	}
	for _, existing := range o.reactors {
		if existing == s {
			return
		}
	}
	o.reactors = append(o.reactors, s)
}

// Unreact detaches a reactor from this object. No-op if not attached.
func (o *Object) Unreact(s *SideEffect) {
	for i, existing := range o.reactors {
		if existing == s {
			copy(o.reactors[i:], o.reactors[i+1:])
			o.reactors[len(o.reactors)-1] = nil
			o.reactors = o.reactors[:len(o.reactors)-1]
			return
		}
	}
}

// Reactors returns the attached reactors. The returned slice MUST NOT be
// mutated by the caller.
func (o *Object) Reactors() []*SideEffect {
	return o.reactors
}

// --- Property plumbing ---

// notifyDepth tracks reactor re-entrancy. Reactors may mutate properties,
// re-entering the plumbing; runaway cycles are a programmer error surfaced
// in debug mode.
var notifyDepth int

// notifyChange invalidates the canvas and dispatches the mutation to every
// attached reactor watching the key. Runs to completion before the mutating
// setter returns.
func (o *Object) notifyChange(key string, old, new any) {
	if c := o.canvasRef(); c != nil {
		c.requestRender()
	}
	if len(o.reactors) == 0 {
		return
	}
	if globalDebug {
		notifyDepth++
		debugCheckNotifyDepth(o, key)
		defer func() { notifyDepth-- }()
	}
	ch := Change{Object: o, Key: key, Old: old, New: new}
	for _, s := range o.reactors {
		if s.Watches(key) {
			s.invoke(ch)
		}
	}
}

// setGeometry assigns a float geometry field through the plumbing: equal
// values are a no-op; different values mark geometry dirty and notify.
func (o *Object) setGeometry(key string, field *float64, v float64) {
	old := *field
	if old == v {
		return
	}
	*field = v
	o.geometryDirty = true
	o.coordsValid = false
	o.notifyChange(key, old, v)
}

// setGeometryBool is setGeometry for boolean geometry fields (flips).
func (o *Object) setGeometryBool(key string, field *bool, v bool) {
	old := *field
	if old == v {
		return
	}
	*field = v
	o.geometryDirty = true
	o.coordsValid = false
	o.notifyChange(key, old, v)
}

// setProp assigns a non-geometry field through the plumbing.
func (o *Object) setProp(key string, field *string, v string) {
	old := *field
	if old == v {
		return
	}
	*field = v
	o.notifyChange(key, old, v)
}

// SetVisible sets the object's visibility.
func (o *Object) SetVisible(v bool) {
	old := o.Visible
	if old == v {
		return
	}
	o.Visible = v
	o.notifyChange(PropVisible, old, v)
}
