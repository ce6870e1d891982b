package easel

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// debugCheckDisposed panics with a descriptive message when a disposed object
// is used in a tree operation. Only called when debug mode is on. In release
// mode callers skip this entirely.
func debugCheckDisposed(o *Object, op string) {
	if o.disposed {
		panic(fmt.Sprintf("easel debug: %s on disposed object %q (ID was %d)", op, o.Name, o.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(o *Object) {
	depth := 0
	for p := o; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logrus.Warnf("easel: tree depth %d exceeds %d (object %q)", depth, debugMaxTreeDepth, o.Name)
	}
}

// debugCheckNotifyDepth warns when reactors keep re-entering the property
// plumbing, which usually means two reactors are feeding each other.
const debugMaxNotifyDepth = 8

func debugCheckNotifyDepth(o *Object, key string) {
	if notifyDepth > debugMaxNotifyDepth {
		logrus.Warnf("easel: reactor recursion depth %d on object %q key %q", notifyDepth, o.Name, key)
	}
}

// traceTransform logs a transform lifecycle stage.
func traceTransform(stage string, t *Transform) {
	logrus.WithFields(logrus.Fields{
		"target": t.Target.Name,
		"action": t.Action,
		"corner": t.Corner,
	}).Debugf("easel: transform %s (performed=%v)", stage, t.ActionPerformed)
}

// traceEvent logs one emission phase of an event.
func traceEvent(ev *Event, phase string) {
	f := logrus.Fields{"event": ev.Kind.String()}
	if ev.Target != nil {
		f["target"] = ev.Target.Name
	}
	logrus.WithFields(f).Debugf("easel: %s", phase)
}
